package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/talentcompass/sourcer/internal/ai"
	"github.com/talentcompass/sourcer/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

//go:embed prompt_extract.md
var extractPromptTemplate string

var profileSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"targetCompanies": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "List of companies that would be ideal targets for this role",
		},
		"sector": {
			Type:        genai.TypeString,
			Enum:        []string{ai.SectorConsulting, ai.SectorFinance},
			Description: "Primary sector for this role",
		},
		"title": {
			Type:        genai.TypeString,
			Description: "Job title for the ideal candidate",
		},
		"undergraduateYear": {
			Type:        genai.TypeInteger,
			Description: "Year the ideal candidate should be in undergraduate studies",
		},
		"city": {
			Type:        genai.TypeString,
			Description: "Preferred city for the candidate",
		},
	},
	Required: []string{"sector", "title"},
}

// Extractor derives a structured ideal-candidate profile from a raw job
// description in a single structured-output call.
type Extractor struct {
	generator contentGenerator
	model     string
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(generator contentGenerator, model string, log *zap.Logger) *Extractor {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultProfileModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		model:     model,
		logger:    log,
		maxLogLen: defaultMaxLogLength,
	}
}

// Extract builds the profile-extraction prompt and parses the schema-shaped
// response. A response that does not parse, or that lacks sector or title, is
// an error: the pipeline cannot proceed without a profile.
func (e *Extractor) Extract(ctx context.Context, jobText string) (*ai.Profile, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, errors.New("job description is required")
	}

	prompt := strings.ReplaceAll(extractPromptTemplate, "{{JOB_DESCRIPTION}}", jobText)

	e.logger.Debug("profile extraction request",
		zap.String("model", e.model),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.Generate(ctx, e.model, prompt, profileSchema)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("profile extraction response",
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	var profile ai.Profile
	if err := json.Unmarshal([]byte(extractJSON(raw)), &profile); err != nil {
		return nil, fmt.Errorf("parse profile response: %w", err)
	}

	if profile.Sector == "" || profile.Title == "" {
		return nil, fmt.Errorf("profile response is missing sector or title: %s", logger.TruncateForLog(raw, e.maxLogLen))
	}

	return &profile, nil
}
