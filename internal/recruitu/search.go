package recruitu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const SearchPath = "/search"

// SearchParams describes one candidate search. CurrentCompany and
// PreviousCompany are mutually exclusive; callers set exactly one.
type SearchParams struct {
	Sector            string `ruparam:"sector"`
	Title             string `ruparam:"title"`
	UndergraduateYear int    `ruparam:"undergraduate_year"`
	CurrentCompany    string `ruparam:"current_company"`
	PreviousCompany   string `ruparam:"previous_company"`
}

// SearchPage is the usable content of one result page.
type SearchPage struct {
	IDs []string
	// TotalPages is the page count declared by the backend, 0 when the
	// response does not declare one.
	TotalPages int
}

type searchItem struct {
	ID string `json:"id"`
}

// SearchIDsPage requests a single page of candidate identifiers. The page
// number is sent under both page parameter names the backend is known to
// accept; whichever it supports wins. The response body may be a bare array
// of items or a {results, num_pages} object; anything else yields an empty
// page.
func (c *Client) SearchIDsPage(ctx context.Context, params *SearchParams, page int) (*SearchPage, error) {
	q := buildParams(params)
	q.Set("page_num", strconv.Itoa(page))
	q.Set("page", strconv.Itoa(page))

	body, err := c.getBody(ctx, fmt.Sprintf("%s%s?%s", c.APIURL, SearchPath, q.Encode()))
	if err != nil {
		return nil, err
	}

	result := &SearchPage{}

	var items []any
	if err := json.Unmarshal(body, &items); err != nil {
		var wrapped struct {
			Results  []any `json:"results"`
			NumPages int   `json:"num_pages"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			c.logger.Debug("unusable search response", zap.Int("page", page), zap.Error(err))
			return result, nil
		}
		items = wrapped.Results
		result.TotalPages = wrapped.NumPages
	}

	result.IDs = extractIDs(items)
	return result, nil
}

// extractIDs pulls the id field out of every item that has one, skipping
// anything that is not an object with a string id.
func extractIDs(items []any) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		var decoded searchItem
		cfg := &mapstructure.DecoderConfig{
			Result:  &decoded,
			TagName: "json",
		}
		decoder, _ := mapstructure.NewDecoder(cfg)
		if err := decoder.Decode(item); err != nil {
			continue
		}
		if decoded.ID != "" {
			ids = append(ids, decoded.ID)
		}
	}
	return ids
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))
	for _, field := range fields {
		key := field.Tag.Get("ruparam")
		if key == "" {
			continue
		}

		value := fmt.Sprintf("%v", reflect.ValueOf(params).Elem().Field(field.Index[0]).Interface())
		if value != "" && value != "0" {
			q.Set(key, value)
		}
	}

	return q
}
