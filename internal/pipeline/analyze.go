package pipeline

import (
	"context"
	"fmt"

	"github.com/talentcompass/sourcer/internal/ranking"
	"go.uber.org/zap"
)

const analyzeLogID = "advanced-analysis"

// runAnalyze re-scores the best-ranked candidates with full-profile context,
// attaching pros and cons. Sentinel-scored candidates never qualify. A failed
// analysis leaves the candidate exactly as stage 3 stored it.
func (p *Pipeline) runAnalyze(ctx context.Context, jobText string) error {
	if !p.analyzeLatch.TryAcquire() {
		return nil
	}

	if p.score.Status() != StatusCompleted {
		return fmt.Errorf("starting advanced analysis: candidate evaluation has not completed")
	}

	p.analyze.Start()

	people, err := p.deps.Store.ReadPeople()
	if err != nil {
		p.analyze.Fail()
		return fmt.Errorf("reading candidate details: %w", err)
	}

	top := ranking.Top(people, p.cfg.TopCandidates)
	if len(top) == 0 {
		p.analyze.AppendLog(LogEntry{
			ID:     "no-candidates",
			Label:  "No candidates to analyze, skipping advanced analysis",
			Status: StatusCompleted,
		})
		p.analyze.Complete()
		return nil
	}

	total := len(top)
	p.analyze.AppendLog(LogEntry{
		ID:      analyzeLogID,
		Label:   "Running extensive analysis on top candidates",
		Status:  StatusProcessing,
		Details: fmt.Sprintf("Processed 0/%d", total),
	})

	tracker := &progress{stage: p.analyze, logID: analyzeLogID, total: total}

	runPool(p.cfg.AnalysisWorkers, total, func(index int) {
		p.analyzeOne(ctx, jobText, top[index], tracker)
	})

	p.analyze.SetProgress(100)
	p.analyze.UpdateLog(analyzeLogID, StatusCompleted, "")
	p.analyze.Complete()
	return nil
}

func (p *Pipeline) analyzeOne(ctx context.Context, jobText string, candidate ranking.Candidate, tracker *progress) {
	defer tracker.bump(0)

	analysis, err := p.deps.Analyst.Analyze(ctx, jobText, candidate.Record)
	if err != nil {
		p.deps.Logger.Debug("candidate analysis failed",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
		return
	}

	record, ok := candidate.Record.(map[string]any)
	if !ok {
		return
	}

	updated := make(map[string]any, len(record)+3)
	for k, v := range record {
		updated[k] = v
	}
	updated["compatibilityScore"] = analysis.CompatibilityScore
	updated["pros"] = analysis.Pros
	updated["cons"] = analysis.Cons

	if _, err := p.deps.Store.MergePeople(map[string]any{candidate.ID: updated}); err != nil {
		p.deps.Logger.Debug("merging analysis failed",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
	}
}
