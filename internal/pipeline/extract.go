package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentcompass/sourcer/internal/ai"
	"go.uber.org/zap"
)

// runExtract derives the structured ideal-candidate profile from the job
// description. This is the only stage whose failure aborts the whole
// pipeline: without a profile there is nothing to search for.
func (p *Pipeline) runExtract(ctx context.Context, jobText string) (*ai.Profile, error) {
	if !p.extractLatch.TryAcquire() {
		return nil, fmt.Errorf("profile extraction already started")
	}

	p.extract.Start()

	profile, err := p.deps.Extractor.Extract(ctx, jobText)
	if err != nil {
		p.extract.Fail()
		return nil, fmt.Errorf("extracting candidate profile: %w", err)
	}

	summary, _ := json.Marshal(profile)
	p.extract.AppendLog(LogEntry{
		ID:      "profile",
		Label:   "Ideal candidate profile created",
		Status:  StatusCompleted,
		Details: string(summary),
	})

	p.deps.Logger.Info("candidate profile extracted",
		zap.String("sector", profile.Sector),
		zap.String("title", profile.Title),
		zap.Int("target_companies", len(profile.TargetCompanies)),
	)

	p.extract.Complete()
	return profile, nil
}
