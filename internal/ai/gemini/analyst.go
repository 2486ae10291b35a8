package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/talentcompass/sourcer/internal/ai"
	"github.com/talentcompass/sourcer/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

//go:embed prompt_analyze.md
var analyzePromptTemplate string

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"compatibilityScore": {
			Type:        genai.TypeNumber,
			Description: "Re-evaluated score from 0 to 100 based on full profile context.",
		},
		"pros": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Key strengths or alignment points for this candidate.",
		},
		"cons": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Potential risks, gaps, or misalignments.",
		},
	},
	Required: []string{"compatibilityScore", "pros", "cons"},
}

// Analyst re-scores a candidate with the full profile as context, producing
// pros and cons alongside the updated score.
type Analyst struct {
	generator contentGenerator
	model     string
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyst(generator contentGenerator, model string, log *zap.Logger) *Analyst {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultAnalysisModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyst{
		generator: generator,
		model:     model,
		logger:    log,
		maxLogLen: defaultMaxLogLength,
	}
}

func (a *Analyst) Analyze(ctx context.Context, jobText string, candidate any) (*ai.Analysis, error) {
	payload, err := candidateJSON(candidate)
	if err != nil {
		return nil, err
	}

	prompt := strings.ReplaceAll(analyzePromptTemplate, "{{JOB_DESCRIPTION}}", jobText)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE_JSON}}", payload)

	a.logger.Debug("analysis request",
		zap.String("model", a.model),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := a.generator.Generate(ctx, a.model, prompt, analysisSchema)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("analysis response",
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	var analysis ai.Analysis
	if err := json.Unmarshal([]byte(extractJSON(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}

	if analysis.Pros == nil {
		analysis.Pros = []string{}
	}
	if analysis.Cons == nil {
		analysis.Cons = []string{}
	}

	return &analysis, nil
}
