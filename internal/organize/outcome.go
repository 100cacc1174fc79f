package organize

import "time"

// Failure records one file the run could not relocate.
type Failure struct {
	Path   string
	Kind   Kind
	Detail string
}

// Outcome summarizes a finished or cancelled run.
// It is owned by the worker for the run's duration and handed to the caller
// once, over the completion channel.
type Outcome struct {
	Source      string
	Destination string
	Started     time.Time
	Finished    time.Time

	Scanned            int // files enumerated under the source
	Processed          int // files that went through the per-file pipeline
	Moved              int
	Duplicates         int // byte-identical files already at the destination
	SkippedUnsupported int
	Failed             int
	BytesMoved         int64

	Cancelled bool
	Failures  []Failure
}

// Elapsed returns the run's wall-clock duration.
func (o *Outcome) Elapsed() time.Duration {
	return o.Finished.Sub(o.Started)
}

func (o *Outcome) fail(path string, kind Kind, detail string) {
	o.Failed++
	o.Failures = append(o.Failures, Failure{Path: path, Kind: kind, Detail: detail})
}
