// Package organize drives the relocation of music files from a source
// folder into an Artist/Album/Title hierarchy at a destination. One
// background worker walks the source tree, reads tags, computes a safe
// destination for each file and moves it, reporting progress over channels
// and tolerating per-file failures.
package organize

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/llehouerou/shelf/internal/errmsg"
	"github.com/llehouerou/shelf/internal/relocate"
	"github.com/llehouerou/shelf/internal/rename"
	"github.com/llehouerou/shelf/internal/tags"
)

// progressBuffer bounds the progress channel. Updates beyond it are dropped
// rather than blocking the worker on a slow caller.
const progressBuffer = 64

// DuplicatePolicy decides what happens when a byte-identical file already
// exists at the computed destination.
type DuplicatePolicy string

const (
	DuplicateSkip      DuplicatePolicy = "skip"
	DuplicateOverwrite DuplicatePolicy = "overwrite"
)

// Options configures one organization run.
type Options struct {
	Source        string
	Destination   string
	SanitizeNames bool
	Duplicates    DuplicatePolicy // zero value means DuplicateSkip
}

// TagReader is the capability the engine needs from a tag-decoding library.
// A test double can supply deterministic metadata without real audio files.
type TagReader interface {
	Read(path string) (*tags.Tag, error)
}

// ReaderFunc adapts a function to the TagReader interface.
type ReaderFunc func(path string) (*tags.Tag, error)

func (f ReaderFunc) Read(path string) (*tags.Tag, error) { return f(path) }

// Engine runs organization passes. At most one run is active at a time.
type Engine struct {
	reader TagReader

	mu      sync.Mutex
	running bool
	cancel  atomic.Bool
	tracker Tracker
}

// New returns an Engine reading tags with the given reader.
// A nil reader means the real tag decoders.
func New(reader TagReader) *Engine {
	if reader == nil {
		reader = ReaderFunc(tags.Read)
	}
	return &Engine{reader: reader}
}

// Start validates the folders and launches the run on a background worker.
// It returns immediately with the progress stream and the completion
// channel, which receives the final Outcome exactly once. A *ConfigError is
// returned when either folder is missing, not a directory, or inaccessible;
// ErrRunInProgress when a run is already active.
func (e *Engine) Start(opts Options) (<-chan Progress, <-chan *Outcome, error) {
	if err := validate(opts); err != nil {
		return nil, nil, err
	}

	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, nil, ErrRunInProgress
	}
	e.running = true
	e.cancel.Store(false)
	e.mu.Unlock()

	progress := make(chan Progress, progressBuffer)
	done := make(chan *Outcome, 1)
	go e.run(opts, progress, done)
	return progress, done, nil
}

// Cancel requests cooperative cancellation of the active run. The file being
// moved completes; no further files are touched. Safe to call at any time,
// including when no run is active.
func (e *Engine) Cancel() {
	e.cancel.Store(true)
}

// Running reports whether a run is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Progress returns a snapshot of the active (or last) run's progress.
func (e *Engine) Progress() Snapshot {
	return e.tracker.Snapshot()
}

func validate(opts Options) error {
	checks := []struct {
		field string
		path  string
	}{
		{"source", opts.Source},
		{"destination", opts.Destination},
	}
	for _, c := range checks {
		if c.path == "" {
			return &ConfigError{Field: c.field, Path: c.path, Err: errors.New("not set")}
		}
		info, err := os.Stat(c.path)
		if err != nil {
			return &ConfigError{Field: c.field, Path: c.path, Err: err}
		}
		if !info.IsDir() {
			return &ConfigError{Field: c.field, Path: c.path, Err: errors.New("not a directory")}
		}
		// Stat succeeds on a directory whose mode forbids reading it,
		// so probe with an actual directory read.
		f, err := os.Open(c.path)
		if err != nil {
			return &ConfigError{Field: c.field, Path: c.path, Err: err}
		}
		_, err = f.Readdirnames(1)
		f.Close()
		if err != nil && !errors.Is(err, io.EOF) {
			return &ConfigError{Field: c.field, Path: c.path, Err: err}
		}
	}
	return nil
}

func (e *Engine) run(opts Options, progress chan<- Progress, done chan<- *Outcome) {
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(progress)
	}()

	out := &Outcome{
		Source:      opts.Source,
		Destination: opts.Destination,
		Started:     time.Now(),
	}

	files := discover(opts.Source, out)
	out.Scanned = len(files)
	e.tracker.begin(len(files))

	for i, path := range files {
		if e.cancel.Load() {
			out.Cancelled = true
			break
		}
		e.processFile(i+1, len(files), path, opts, out, progress)
		out.Processed++
	}

	out.Finished = time.Now()
	done <- out
}

// discover enumerates every regular file under root in a single
// deterministic lexical pass. A subtree that cannot be read is recorded as
// a failure on the outcome and the walk continues with its siblings.
func discover(root string, out *Outcome) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			out.fail(path, KindDiscovery, errmsg.Format(errmsg.OpScanFiles, walkErr))
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files
}

func (e *Engine) processFile(index, total int, path string, opts Options, out *Outcome, progress chan<- Progress) {
	emit := func(status Status) {
		e.tracker.update(index, path, status)
		select {
		case progress <- Progress{Index: index, Total: total, Path: path, Status: status}:
		default: // drop when the caller lags; the worker never blocks here
		}
	}

	if !tags.IsSupported(path) {
		out.SkippedUnsupported++
		emit(StatusSkipped)
		return
	}

	emit(StatusReading)
	t, err := e.reader.Read(path)
	if err != nil {
		out.fail(path, KindMetadata, errmsg.Format(errmsg.OpReadTags, err))
		emit(StatusFailed)
		return
	}

	emit(StatusBuilding)
	built, err := rename.Build(rename.Metadata{
		Artist:      t.AlbumArtist,
		Album:       t.Album,
		Title:       t.Title,
		TrackNumber: t.TrackNumber,
		SourcePath:  path,
	}, opts.Destination, opts.SanitizeNames)
	if err != nil {
		out.fail(path, KindPathSecurity, errmsg.Format(errmsg.OpBuildPath, err))
		emit(StatusFailed)
		return
	}

	dest, duplicate, err := rename.Resolve(built, path, relocate.ContentsEqual)
	if err != nil {
		out.fail(path, KindRelocation, errmsg.Format(errmsg.OpBuildPath, err))
		emit(StatusFailed)
		return
	}
	if duplicate && opts.Duplicates != DuplicateOverwrite {
		out.Duplicates++
		emit(StatusDuplicate)
		return
	}

	var size int64
	if info, statErr := os.Stat(path); statErr == nil {
		size = info.Size()
	}

	emit(StatusMoving)
	if err := relocate.Move(path, dest); err != nil {
		out.fail(path, KindRelocation, errmsg.Format(errmsg.OpMoveFile, err))
		emit(StatusFailed)
		return
	}

	out.Moved++
	out.BytesMoved += size
	emit(StatusMoved)
}
