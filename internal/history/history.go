// Package history persists summaries of finished organization runs in a
// local SQLite database, so past runs and their failures can be reviewed.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/shelf/internal/db"
	"github.com/llehouerou/shelf/internal/organize"
)

const (
	appName    = "shelf"
	dbFileName = "shelf.db"
)

// Store records and queries run history.
type Store struct {
	db *sql.DB
}

// Open opens the history database in the XDG data directory, creating it on
// first use.
func Open() (*Store, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath)
}

// OpenAt opens the history database at an explicit path.
func OpenAt(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(database); err != nil {
		database.Close()
		return nil, err
	}
	return &Store{db: database}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one recorded organization run.
type Run struct {
	ID          int64
	Source      string
	Destination string
	Started     time.Time
	Finished    time.Time

	Scanned            int
	Moved              int
	Duplicates         int
	SkippedUnsupported int
	Failed             int
	BytesMoved         int64
	Cancelled          bool
}

// Record stores a finished run and its failures, returning the run id.
func (s *Store) Record(out *organize.Outcome) (int64, error) {
	var runID int64
	err := db.WithTx(s.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO runs (
				source, destination, started_at, finished_at,
				scanned, moved, duplicates, skipped_unsupported, failed,
				bytes_moved, cancelled
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			out.Source, out.Destination,
			out.Started.Unix(), out.Finished.Unix(),
			out.Scanned, out.Moved, out.Duplicates, out.SkippedUnsupported, out.Failed,
			out.BytesMoved, boolToInt(out.Cancelled),
		)
		if err != nil {
			return err
		}
		runID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, f := range out.Failures {
			if _, err := tx.Exec(`
				INSERT INTO run_failures (run_id, path, kind, detail)
				VALUES (?, ?, ?, ?)
			`, runID, f.Path, string(f.Kind), f.Detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return runID, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, source, destination, started_at, finished_at,
		       scanned, moved, duplicates, skipped_unsupported, failed,
		       bytes_moved, cancelled
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		var cancelled int
		if err := rows.Scan(
			&r.ID, &r.Source, &r.Destination, &started, &finished,
			&r.Scanned, &r.Moved, &r.Duplicates, &r.SkippedUnsupported, &r.Failed,
			&r.BytesMoved, &cancelled,
		); err != nil {
			return nil, err
		}
		r.Started = time.Unix(started, 0)
		r.Finished = time.Unix(finished, 0)
		r.Cancelled = cancelled != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Failures returns the recorded failures for a run, in insertion order.
func (s *Store) Failures(runID int64) ([]organize.Failure, error) {
	rows, err := s.db.Query(`
		SELECT path, kind, detail FROM run_failures
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []organize.Failure
	for rows.Next() {
		var f organize.Failure
		var kind string
		if err := rows.Scan(&f.Path, &kind, &f.Detail); err != nil {
			return nil, err
		}
		f.Kind = organize.Kind(kind)
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
