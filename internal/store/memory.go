package store

import "sync"

// Memory is an in-process Store. It keeps nothing beyond the lifetime of the
// process and is used by tests and throwaway runs.
type Memory struct {
	mu             sync.Mutex
	jobDescription string
	ids            []string
	seen           map[string]struct{}
	people         map[string]any
}

func NewMemory() *Memory {
	return &Memory{
		seen:   make(map[string]struct{}),
		people: make(map[string]any),
	}
}

func (m *Memory) JobDescription() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jobDescription, nil
}

func (m *Memory) SetJobDescription(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobDescription = text
	return nil
}

func (m *Memory) ReadIDs() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out, nil
}

func (m *Memory) AddIDs(ids []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := m.seen[id]; ok {
			continue
		}
		m.seen[id] = struct{}{}
		m.ids = append(m.ids, id)
	}
	return len(m.ids), nil
}

func (m *Memory) ClearIDs() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = nil
	m.seen = make(map[string]struct{})
	return nil
}

func (m *Memory) ReadPeople() (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]any, len(m.people))
	for k, v := range m.people {
		out[k] = v
	}
	return out, nil
}

// MergePeople reads the whole current map, applies the additions and writes
// the whole map back under one lock acquisition.
func (m *Memory) MergePeople(add map[string]any) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := make(map[string]any, len(m.people)+len(add))
	for k, v := range m.people {
		current[k] = v
	}
	for k, v := range add {
		if k == "" {
			continue
		}
		current[k] = v
	}
	m.people = current

	return len(m.people), nil
}

func (m *Memory) ClearPeople() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people = make(map[string]any)
	return nil
}

func (m *Memory) Close() error { return nil }
