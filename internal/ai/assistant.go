package ai

import "context"

// Sector values the profile extractor is allowed to produce.
const (
	SectorConsulting = "CONSULTING"
	SectorFinance    = "FINANCE"
)

// Profile is the structured ideal-candidate profile derived from a job
// description. Sector and Title are always present; the rest is optional.
type Profile struct {
	TargetCompanies   []string `json:"targetCompanies,omitempty"`
	Sector            string   `json:"sector"`
	Title             string   `json:"title"`
	UndergraduateYear int      `json:"undergraduateYear,omitempty"`
	City              string   `json:"city,omitempty"`
}

// Analysis is the deep-analysis result for a single candidate.
type Analysis struct {
	CompatibilityScore float64  `json:"compatibilityScore"`
	Pros               []string `json:"pros"`
	Cons               []string `json:"cons"`
}

// ProfileExtractor turns a raw job description into a structured profile.
// Extraction failure is fatal to the pipeline run.
type ProfileExtractor interface {
	Extract(ctx context.Context, jobText string) (*Profile, error)
}

// Scorer produces a 0-100 compatibility score for one candidate record
// against the job description.
type Scorer interface {
	Score(ctx context.Context, jobText string, candidate any) (float64, error)
}

// Analyst re-scores a candidate with full-profile context, producing pros and
// cons alongside the updated score.
type Analyst interface {
	Analyze(ctx context.Context, jobText string, candidate any) (*Analysis, error)
}
