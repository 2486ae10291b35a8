package pipeline

import "sync"

// Status is the lifecycle state shared by stages and their log entries.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// StageName identifies one of the four pipeline stages.
type StageName string

const (
	StageExtract StageName = "extract-profile"
	StageSearch  StageName = "search-candidates"
	StageScore   StageName = "evaluate-candidates"
	StageAnalyze StageName = "analyze-top-candidates"
)

// LogEntry is a single line of stage activity. Search stages append one entry
// per search call; the evaluation and analysis stages keep a single entry
// under a fixed id and update it in place.
type LogEntry struct {
	ID      string
	Label   string
	Status  Status
	Details string
}

// Snapshot is a point-in-time copy of a stage's observable state.
type Snapshot struct {
	Name     StageName
	Status   Status
	Progress int
	Logs     []LogEntry
}

// Observer receives stage state changes as they happen. Implementations must
// be safe for concurrent use; scoring and analysis workers report progress
// concurrently.
type Observer interface {
	StageStatus(name StageName, status Status)
	StageLog(name StageName, entry LogEntry)
	StageProgress(name StageName, percent int)
}

type nopObserver struct{}

func (nopObserver) StageStatus(StageName, Status)  {}
func (nopObserver) StageLog(StageName, LogEntry)   {}
func (nopObserver) StageProgress(StageName, int)   {}

// Stage tracks status, logs and progress for one pipeline stage. All methods
// are safe for concurrent use.
type Stage struct {
	name     StageName
	observer Observer

	mu       sync.Mutex
	status   Status
	progress int
	logs     []LogEntry
}

func newStage(name StageName, observer Observer) *Stage {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Stage{
		name:     name,
		observer: observer,
		status:   StatusPending,
	}
}

func (s *Stage) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	s.observer.StageStatus(s.name, status)
}

func (s *Stage) Start()    { s.setStatus(StatusProcessing) }
func (s *Stage) Complete() { s.setStatus(StatusCompleted) }
func (s *Stage) Fail()     { s.setStatus(StatusError) }

func (s *Stage) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Stage) SetProgress(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	s.mu.Lock()
	s.progress = percent
	s.mu.Unlock()
	s.observer.StageProgress(s.name, percent)
}

// AppendLog adds a new entry to the stage log.
func (s *Stage) AppendLog(entry LogEntry) {
	s.mu.Lock()
	s.logs = append(s.logs, entry)
	s.mu.Unlock()
	s.observer.StageLog(s.name, entry)
}

// UpdateLog rewrites the entry with the given id in place. An empty status or
// details leaves the corresponding field unchanged. Unknown ids are ignored.
func (s *Stage) UpdateLog(id string, status Status, details string) {
	s.mu.Lock()
	var updated *LogEntry
	for i := range s.logs {
		if s.logs[i].ID != id {
			continue
		}
		if status != "" {
			s.logs[i].Status = status
		}
		if details != "" {
			s.logs[i].Details = details
		}
		entry := s.logs[i]
		updated = &entry
		break
	}
	s.mu.Unlock()

	if updated != nil {
		s.observer.StageLog(s.name, *updated)
	}
}

// Snapshot returns a copy of the stage's current state.
func (s *Stage) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]LogEntry, len(s.logs))
	copy(logs, s.logs)

	return Snapshot{
		Name:     s.name,
		Status:   s.status,
		Progress: s.progress,
		Logs:     logs,
	}
}
