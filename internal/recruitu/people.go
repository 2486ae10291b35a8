package recruitu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const PeoplePath = "/people"

// FetchPeople fetches full records for the given candidate identifiers and
// returns them keyed by identifier. The ids filter is a bracketed literal
// ([a,b]), not URL-encoded JSON; the backend does not accept the encoded
// form. The results field may be a list of single-key objects or one keyed
// object; a body that is neither yields an empty map.
func (c *Client) FetchPeople(ctx context.Context, ids []string) (map[string]any, error) {
	if len(ids) == 0 {
		return nil, errors.New("at least one candidate id is required")
	}

	url := fmt.Sprintf("%s%s?ids=[%s]", c.APIURL, PeoplePath, strings.Join(ids, ","))

	body, err := c.getBody(ctx, url)
	if err != nil {
		return nil, err
	}

	var response struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		c.logger.Debug("unusable people response", zap.Strings("ids", ids), zap.Error(err))
		return map[string]any{}, nil
	}

	return flattenResults(response.Results), nil
}

// flattenResults merges the results payload into a flat id-to-record map.
func flattenResults(raw json.RawMessage) map[string]any {
	flat := make(map[string]any)
	if len(raw) == 0 {
		return flat
	}

	var asList []map[string]any
	if err := json.Unmarshal(raw, &asList); err == nil {
		for _, entry := range asList {
			for id, record := range entry {
				flat[id] = record
			}
		}
		return flat
	}

	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return asMap
	}

	return flat
}
