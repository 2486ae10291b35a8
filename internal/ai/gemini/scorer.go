package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/talentcompass/sourcer/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

//go:embed prompt_score.md
var scorePromptTemplate string

var scoreSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"compatibilityScore": {
			Type:        genai.TypeNumber,
			Description: "A score from 0 to 100 representing how well the candidate matches the job description.",
		},
	},
	Required: []string{"compatibilityScore"},
}

// Scorer produces a lightweight compatibility score for one candidate.
type Scorer struct {
	generator contentGenerator
	model     string
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator contentGenerator, model string, log *zap.Logger) *Scorer {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultScoringModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		model:     model,
		logger:    log,
		maxLogLen: defaultMaxLogLength,
	}
}

func (s *Scorer) Score(ctx context.Context, jobText string, candidate any) (float64, error) {
	payload, err := candidateJSON(candidate)
	if err != nil {
		return 0, err
	}

	prompt := strings.ReplaceAll(scorePromptTemplate, "{{JOB_DESCRIPTION}}", jobText)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE_JSON}}", payload)

	s.logger.Debug("scoring request",
		zap.String("model", s.model),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := s.generator.Generate(ctx, s.model, prompt, scoreSchema)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("scoring response",
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	var result struct {
		CompatibilityScore float64 `json:"compatibilityScore"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return 0, fmt.Errorf("parse scoring response: %w", err)
	}

	return result.CompatibilityScore, nil
}
