// Package gemini implements the AI capabilities of the sourcing pipeline on
// top of Gemini structured outputs: profile extraction, lightweight candidate
// scoring and deep candidate analysis.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Default models, matching the cost profile of each call: the one-off
// extraction and the top-K analysis use the pro model, the high-volume
// scoring uses the lite one.
const (
	DefaultProfileModel  = "gemini-2.5-pro"
	DefaultScoringModel  = "gemini-2.5-flash-lite"
	DefaultAnalysisModel = "gemini-2.5-pro"
)

const defaultMaxLogLength = 200

// contentGenerator abstracts the Client for tests.
type contentGenerator interface {
	Generate(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error)
}

// extractJSON strips a markdown code fence if the model wrapped its response
// in one.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func candidateJSON(candidate any) (string, error) {
	raw, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate payload: %w", err)
	}
	return string(raw), nil
}
