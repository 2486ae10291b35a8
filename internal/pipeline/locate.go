package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/talentcompass/sourcer/internal/ai"
	"github.com/talentcompass/sourcer/internal/recruitu"
)

// runSearch discovers candidate identifiers for the extracted profile. For
// every target company it runs two searches, one binding the company as the
// current employer and one as a former employer. Searches are strictly
// sequential; the volume is small and the search backend dislikes bursts.
// A failed search finalizes its own log entry and never aborts its siblings.
func (p *Pipeline) runSearch(ctx context.Context, profile *ai.Profile) error {
	if !p.searchLatch.TryAcquire() {
		return nil
	}

	if p.extract.Status() != StatusCompleted {
		return fmt.Errorf("starting candidate search: profile extraction has not completed")
	}

	p.search.Start()

	companies := dedupeCompanies(profile.TargetCompanies)
	if len(companies) == 0 {
		p.search.AppendLog(LogEntry{
			ID:     "no-companies",
			Label:  "No target companies provided, skipping candidate search",
			Status: StatusCompleted,
		})
		p.search.Complete()
		return nil
	}

	base := recruitu.SearchParams{
		Sector:            profile.Sector,
		Title:             profile.Title,
		UndergraduateYear: profile.UndergraduateYear,
	}

	for _, company := range companies {
		params := base
		params.CurrentCompany = company
		label := fmt.Sprintf("Searching for %s candidates who work at %s", profile.Title, company)
		p.searchOne(ctx, "current-"+company, label, &params)
	}

	for _, company := range companies {
		params := base
		params.PreviousCompany = company
		label := fmt.Sprintf("Searching for %s candidates who worked at %s", profile.Title, company)
		p.searchOne(ctx, "previous-"+company, label, &params)
	}

	p.search.Complete()
	return nil
}

// searchOne runs a single paginated search and stores every identifier it
// finds. It stops when a page yields no usable identifiers, when the declared
// page count is exhausted or when the per-call cap is reached, whichever
// comes first.
func (p *Pipeline) searchOne(ctx context.Context, logID, label string, params *recruitu.SearchParams) {
	p.search.AppendLog(LogEntry{ID: logID, Label: label, Status: StatusProcessing})

	collected := 0
	totalPages := 0

	for page := 1; collected < p.cfg.SearchCap; page++ {
		result, err := p.deps.Client.SearchIDsPage(ctx, params, page)
		if err != nil {
			p.search.UpdateLog(logID, StatusError, err.Error())
			return
		}

		if len(result.IDs) == 0 {
			break
		}

		if _, err := p.deps.Store.AddIDs(result.IDs); err != nil {
			p.search.UpdateLog(logID, StatusError, err.Error())
			return
		}
		collected += len(result.IDs)

		if result.TotalPages > 0 {
			totalPages = result.TotalPages
		}
		if totalPages > 0 && page >= totalPages {
			break
		}
	}

	p.search.UpdateLog(logID, StatusCompleted, fmt.Sprintf("%d IDs saved", collected))
}

// dedupeCompanies trims and collapses whitespace in each company name and
// drops case-insensitive duplicates, keeping the first-seen form and order.
func dedupeCompanies(companies []string) []string {
	seen := make(map[string]struct{}, len(companies))
	out := make([]string, 0, len(companies))

	for _, company := range companies {
		normalized := strings.Join(strings.Fields(company), " ")
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}

	return out
}
