// Package pipeline implements the four-stage candidate sourcing flow:
// profile extraction, candidate-ID search, concurrent detail fetch + scoring,
// and deep re-analysis of the top candidates. Stages run strictly in order,
// each gated on the previous stage completing, and report status, logs and
// progress to an Observer.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/talentcompass/sourcer/internal/ai"
	"github.com/talentcompass/sourcer/internal/recruitu"
	"github.com/talentcompass/sourcer/internal/store"
	"go.uber.org/zap"
)

const (
	defaultScoringWorkers  = 10
	defaultAnalysisWorkers = 5
	defaultTopCandidates   = 25
	defaultSearchCap       = 50
)

// Searcher is the candidate API surface the pipeline consumes.
type Searcher interface {
	SearchIDsPage(ctx context.Context, params *recruitu.SearchParams, page int) (*recruitu.SearchPage, error)
	FetchPeople(ctx context.Context, ids []string) (map[string]any, error)
}

// Deps aggregates the pipeline's collaborators.
type Deps struct {
	Extractor ai.ProfileExtractor
	Scorer    ai.Scorer
	Analyst   ai.Analyst
	Client    Searcher
	Store     store.Store
	Logger    *zap.Logger
	Observer  Observer
}

// Config holds the pipeline tuning knobs. Zero values select the defaults.
type Config struct {
	// ScoringWorkers caps stage-3 concurrency.
	ScoringWorkers int `mapstructure:"scoring-workers"`
	// AnalysisWorkers caps stage-4 concurrency.
	AnalysisWorkers int `mapstructure:"analysis-workers"`
	// TopCandidates is how many of the best-scored candidates stage 4
	// re-analyzes.
	TopCandidates int `mapstructure:"top-candidates"`
	// SearchCap bounds how many identifiers a single search call may
	// collect across its pages.
	SearchCap int `mapstructure:"search-cap"`
}

func (c Config) withDefaults() Config {
	if c.ScoringWorkers <= 0 {
		c.ScoringWorkers = defaultScoringWorkers
	}
	if c.AnalysisWorkers <= 0 {
		c.AnalysisWorkers = defaultAnalysisWorkers
	}
	if c.TopCandidates <= 0 {
		c.TopCandidates = defaultTopCandidates
	}
	if c.SearchCap <= 0 {
		c.SearchCap = defaultSearchCap
	}
	return c
}

// Pipeline is a single-use run of the sourcing flow. Stage entries are
// guarded by one-shot latches, so even re-entrant invocation runs each stage
// body at most once; build a new Pipeline for a new job description.
type Pipeline struct {
	deps Deps
	cfg  Config

	extract *Stage
	search  *Stage
	score   *Stage
	analyze *Stage

	extractLatch latch
	searchLatch  latch
	scoreLatch   latch
	analyzeLatch latch
}

func New(deps Deps, cfg Config) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Pipeline{
		deps:    deps,
		cfg:     cfg.withDefaults(),
		extract: newStage(StageExtract, deps.Observer),
		search:  newStage(StageSearch, deps.Observer),
		score:   newStage(StageScore, deps.Observer),
		analyze: newStage(StageAnalyze, deps.Observer),
	}
}

// Run executes the whole pipeline for the given job description. A new run
// clears previously stored identifiers and candidate details. The returned
// error reflects a stage-level failure; per-search and per-candidate failures
// are absorbed by their stages.
func (p *Pipeline) Run(ctx context.Context, jobText string) error {
	if err := p.deps.Store.ClearIDs(); err != nil {
		return fmt.Errorf("clearing candidate ids: %w", err)
	}
	if err := p.deps.Store.ClearPeople(); err != nil {
		return fmt.Errorf("clearing candidate details: %w", err)
	}
	if err := p.deps.Store.SetJobDescription(jobText); err != nil {
		return fmt.Errorf("storing job description: %w", err)
	}

	profile, err := p.runExtract(ctx, jobText)
	if err != nil {
		return err
	}

	if err := p.runSearch(ctx, profile); err != nil {
		return err
	}

	if err := p.runScore(ctx, jobText); err != nil {
		return err
	}

	return p.runAnalyze(ctx, jobText)
}

// Stages returns snapshots of all four stages in pipeline order.
func (p *Pipeline) Stages() []Snapshot {
	return []Snapshot{
		p.extract.Snapshot(),
		p.search.Snapshot(),
		p.score.Snapshot(),
		p.analyze.Snapshot(),
	}
}

// progress tracks shared processed/saved counters for a worker pool and
// mirrors them into the stage's single progress log entry.
type progress struct {
	stage     *Stage
	logID     string
	total     int
	showSaved bool

	mu        sync.Mutex
	processed int
	saved     int
}

// bump records one processed unit of work. It is called unconditionally,
// success or failure, so progress always reaches 100%.
func (t *progress) bump(saved int) {
	t.mu.Lock()
	t.processed++
	t.saved += saved
	processed, savedTotal := t.processed, t.saved
	t.mu.Unlock()

	percent := int(math.Round(float64(processed) / float64(t.total) * 100))
	t.stage.SetProgress(percent)

	details := fmt.Sprintf("Processed %d/%d", processed, t.total)
	if t.showSaved {
		details = fmt.Sprintf("Processed %d/%d • Saved %d", processed, t.total, savedTotal)
	}
	t.stage.UpdateLog(t.logID, "", details)
}

// runPool drains indexes [0, total) with the given number of workers. Workers
// claim indexes from a shared cursor with a single atomic increment, so every
// index is processed exactly once regardless of pool size.
func runPool(workers, total int, work func(index int)) {
	var cursor atomicCursor
	var wg sync.WaitGroup

	for range min(workers, total) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				index := cursor.next()
				if index >= total {
					return
				}
				work(index)
			}
		}()
	}

	wg.Wait()
}
