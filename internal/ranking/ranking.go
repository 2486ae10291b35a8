package ranking

import "sort"

// Top returns the successfully scored candidates from the detail map, sorted
// by score descending and truncated to limit. Sentinel-scored and unscored
// records are excluded. Ties break on identifier for a stable order.
func Top(people map[string]any, limit int) []Candidate {
	candidates := make([]Candidate, 0, len(people))
	for id, record := range people {
		c := Candidate{ID: id, Record: record}
		if c.Scored() {
			candidates = append(candidates, c)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, _ := candidates[i].Score()
		sj, _ := candidates[j].Score()
		if si != sj {
			return si > sj
		}
		return candidates[i].ID < candidates[j].ID
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
