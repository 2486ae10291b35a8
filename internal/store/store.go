// Package store persists the work products shared between pipeline stages:
// the job-description slot, the deduplicated candidate identifier set and the
// identifier-keyed candidate detail map. A new sourcing run clears the set and
// the map; the detail map survives the process so the report command can read
// it later.
package store

// Store is the key-value storage used by the pipeline. Implementations must
// make MergePeople safe to call from concurrent workers: each call applies its
// additions to the current map as one atomic read-modify-write, so two
// near-simultaneous flushes never lose each other's keys.
type Store interface {
	JobDescription() (string, error)
	SetJobDescription(text string) error

	// ReadIDs returns the identifier set in first-added order.
	ReadIDs() ([]string, error)
	// AddIDs adds the given identifiers, ignoring empty strings and
	// duplicates, and returns the resulting set size.
	AddIDs(ids []string) (int, error)
	ClearIDs() error

	ReadPeople() (map[string]any, error)
	// MergePeople overwrites the stored value for every key in m
	// (last-writer-wins per key) and returns the resulting map size.
	MergePeople(m map[string]any) (int, error)
	ClearPeople() error

	Close() error
}
