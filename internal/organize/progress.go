package organize

import (
	"sync"
	"time"
)

// Status describes what the worker is doing with the current file.
type Status string

const (
	StatusScanning  Status = "scanning"
	StatusReading   Status = "reading tags"
	StatusBuilding  Status = "building path"
	StatusMoving    Status = "moving"
	StatusMoved     Status = "moved"
	StatusSkipped   Status = "skipped"
	StatusDuplicate Status = "duplicate"
	StatusFailed    Status = "failed"
)

// Progress is one update on the event stream.
// Index is 1-based and strictly increasing within a run, matching
// enumeration order.
type Progress struct {
	Index  int
	Total  int
	Path   string
	Status Status
}

// Snapshot is a point-in-time view of a run, safe to read from the caller
// while the worker advances.
type Snapshot struct {
	Index     int
	Total     int
	Path      string
	Status    Status
	Elapsed   time.Duration
	Remaining time.Duration // linear extrapolation; zero until estimable
}

// Tracker accumulates run progress. The worker writes through begin/update;
// any other goroutine may call Snapshot concurrently.
type Tracker struct {
	mu      sync.Mutex
	started time.Time
	index   int
	total   int
	path    string
	status  Status
}

func (t *Tracker) begin(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = time.Now()
	t.index = 0
	t.total = total
	t.path = ""
	t.status = StatusScanning
}

func (t *Tracker) update(index int, path string, status Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.index = index
	t.path = path
	t.status = status
}

// Snapshot returns the current progress with elapsed time and an estimate of
// the time remaining, extrapolated from the fraction complete.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		Index:  t.index,
		Total:  t.total,
		Path:   t.path,
		Status: t.status,
	}
	if t.started.IsZero() {
		return s
	}
	s.Elapsed = time.Since(t.started)

	if t.index > 0 && t.total > 0 && t.index <= t.total {
		fraction := float64(t.index) / float64(t.total)
		estimated := time.Duration(float64(s.Elapsed) / fraction)
		if remaining := estimated - s.Elapsed; remaining > 0 {
			s.Remaining = remaining
		}
	}
	return s
}
