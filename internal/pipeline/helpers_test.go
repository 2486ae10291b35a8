package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/talentcompass/sourcer/internal/ai"
	"github.com/talentcompass/sourcer/internal/recruitu"
	"github.com/talentcompass/sourcer/internal/store"
	"go.uber.org/zap"
)

type stubExtractor struct {
	profile *ai.Profile
	err     error
}

func (s *stubExtractor) Extract(context.Context, string) (*ai.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type stubScorer struct {
	fn func(candidate any) (float64, error)
}

func (s *stubScorer) Score(_ context.Context, _ string, candidate any) (float64, error) {
	if s.fn == nil {
		return 0, errors.New("no scorer configured")
	}
	return s.fn(candidate)
}

type stubAnalyst struct {
	fn func(candidate any) (*ai.Analysis, error)
}

func (s *stubAnalyst) Analyze(_ context.Context, _ string, candidate any) (*ai.Analysis, error) {
	if s.fn == nil {
		return nil, errors.New("no analyst configured")
	}
	return s.fn(candidate)
}

type searchCall struct {
	params recruitu.SearchParams
	page   int
}

// fakeClient records every call and delegates to the configured functions.
type fakeClient struct {
	mu          sync.Mutex
	searchCalls []searchCall
	peopleCalls [][]string

	search func(params *recruitu.SearchParams, page int) (*recruitu.SearchPage, error)
	people func(ids []string) (map[string]any, error)
}

func (f *fakeClient) SearchIDsPage(_ context.Context, params *recruitu.SearchParams, page int) (*recruitu.SearchPage, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, searchCall{params: *params, page: page})
	f.mu.Unlock()

	if f.search == nil {
		return &recruitu.SearchPage{}, nil
	}
	return f.search(params, page)
}

func (f *fakeClient) FetchPeople(_ context.Context, ids []string) (map[string]any, error) {
	f.mu.Lock()
	f.peopleCalls = append(f.peopleCalls, ids)
	f.mu.Unlock()

	if f.people == nil {
		return map[string]any{}, nil
	}
	return f.people(ids)
}

func (f *fakeClient) calls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]searchCall, len(f.searchCalls))
	copy(out, f.searchCalls)
	return out
}

func (f *fakeClient) fetches() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.peopleCalls))
	copy(out, f.peopleCalls)
	return out
}

type testDeps struct {
	extractor *stubExtractor
	scorer    *stubScorer
	analyst   *stubAnalyst
	client    *fakeClient
	store     *store.Memory
}

func newTestPipeline(cfg Config) (*Pipeline, *testDeps) {
	deps := &testDeps{
		extractor: &stubExtractor{},
		scorer:    &stubScorer{},
		analyst:   &stubAnalyst{},
		client:    &fakeClient{},
		store:     store.NewMemory(),
	}

	p := New(Deps{
		Extractor: deps.extractor,
		Scorer:    deps.scorer,
		Analyst:   deps.analyst,
		Client:    deps.client,
		Store:     deps.store,
		Logger:    zap.NewNop(),
	}, cfg)

	return p, deps
}
