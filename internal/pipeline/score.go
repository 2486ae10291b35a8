package pipeline

import (
	"context"
	"fmt"

	"github.com/talentcompass/sourcer/internal/ranking"
	"go.uber.org/zap"
)

const scoreLogID = "evaluation"

// runScore fetches details and a compatibility score for every stored
// identifier using a bounded worker pool. The identifier set is read once at
// stage start; ids added later belong to the next run. Any per-candidate
// failure is absorbed: a failed fetch skips the candidate, a failed scoring
// call records the sentinel score instead.
func (p *Pipeline) runScore(ctx context.Context, jobText string) error {
	if !p.scoreLatch.TryAcquire() {
		return nil
	}

	if p.search.Status() != StatusCompleted {
		return fmt.Errorf("starting candidate evaluation: candidate search has not completed")
	}

	p.score.Start()

	ids, err := p.deps.Store.ReadIDs()
	if err != nil {
		p.score.Fail()
		return fmt.Errorf("reading candidate ids: %w", err)
	}

	if len(ids) == 0 {
		p.score.AppendLog(LogEntry{
			ID:     "no-ids",
			Label:  "No candidate IDs found, skipping evaluation",
			Status: StatusCompleted,
		})
		p.score.Complete()
		return nil
	}

	total := len(ids)
	p.score.AppendLog(LogEntry{
		ID:      scoreLogID,
		Label:   "Evaluating candidates",
		Status:  StatusProcessing,
		Details: fmt.Sprintf("Processed 0/%d", total),
	})

	tracker := &progress{stage: p.score, logID: scoreLogID, total: total, showSaved: true}

	runPool(p.cfg.ScoringWorkers, total, func(index int) {
		p.scoreOne(ctx, jobText, ids[index], tracker)
	})

	p.score.SetProgress(100)
	p.score.UpdateLog(scoreLogID, StatusCompleted, "")
	p.score.Complete()
	return nil
}

// scoreOne handles a single identifier: fetch the record, score it, merge the
// result. The processed counter is bumped no matter what happened.
func (p *Pipeline) scoreOne(ctx context.Context, jobText, id string, tracker *progress) {
	saved := 0
	defer func() { tracker.bump(saved) }()

	people, err := p.deps.Client.FetchPeople(ctx, []string{id})
	if err != nil {
		p.deps.Logger.Debug("candidate fetch failed",
			zap.String("candidate_id", id),
			zap.Error(err),
		)
		return
	}
	if len(people) == 0 {
		return
	}

	for candidateID, record := range people {
		score, err := p.deps.Scorer.Score(ctx, jobText, record)
		if err != nil {
			p.deps.Logger.Debug("candidate scoring failed",
				zap.String("candidate_id", candidateID),
				zap.Error(err),
			)
			score = ranking.SentinelScore
		}

		// Records that are not objects cannot carry a score; they are
		// merged as-is and excluded from ranking later.
		if m, ok := record.(map[string]any); ok {
			m["compatibilityScore"] = score
		}
	}

	if _, err := p.deps.Store.MergePeople(people); err != nil {
		p.deps.Logger.Debug("merging candidate details failed",
			zap.String("candidate_id", id),
			zap.Error(err),
		)
		return
	}
	saved = len(people)
}
