package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/shelf/internal/organize"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleOutcome() *organize.Outcome {
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &organize.Outcome{
		Source:      "/music/incoming",
		Destination: "/music/library",
		Started:     started,
		Finished:    started.Add(42 * time.Second),
		Scanned:     120,
		Processed:   120,
		Moved:       110,
		Duplicates:  3,

		SkippedUnsupported: 5,
		Failed:             2,
		BytesMoved:         987654321,
		Failures: []organize.Failure{
			{Path: "/music/incoming/broken.flac", Kind: organize.KindMetadata, Detail: "no tags"},
			{Path: "/music/incoming/evil.mp3", Kind: organize.KindPathSecurity, Detail: "escapes destination"},
		},
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Record(sampleOutcome())
	require.NoError(t, err)
	assert.Positive(t, id)

	runs, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "/music/incoming", run.Source)
	assert.Equal(t, "/music/library", run.Destination)
	assert.Equal(t, 120, run.Scanned)
	assert.Equal(t, 110, run.Moved)
	assert.Equal(t, 3, run.Duplicates)
	assert.Equal(t, 5, run.SkippedUnsupported)
	assert.Equal(t, 2, run.Failed)
	assert.Equal(t, int64(987654321), run.BytesMoved)
	assert.False(t, run.Cancelled)
	assert.Equal(t, 42*time.Second, run.Finished.Sub(run.Started))
}

func TestRecordFailures(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Record(sampleOutcome())
	require.NoError(t, err)

	failures, err := store.Failures(id)
	require.NoError(t, err)
	require.Len(t, failures, 2)
	assert.Equal(t, "/music/incoming/broken.flac", failures[0].Path)
	assert.Equal(t, organize.KindMetadata, failures[0].Kind)
	assert.Equal(t, "no tags", failures[0].Detail)
	assert.Equal(t, organize.KindPathSecurity, failures[1].Kind)
}

func TestRecentOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	first := sampleOutcome()
	second := sampleOutcome()
	second.Started = first.Started.Add(time.Hour)
	second.Finished = second.Started.Add(time.Minute)
	second.Cancelled = true

	_, err := store.Record(first)
	require.NoError(t, err)
	secondID, err := store.Record(second)
	require.NoError(t, err)

	runs, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, secondID, runs[0].ID)
	assert.True(t, runs[0].Cancelled)
}

func TestFailuresForUnknownRun(t *testing.T) {
	store := openTestStore(t)

	failures, err := store.Failures(42)
	require.NoError(t, err)
	assert.Empty(t, failures)
}

func TestOpenAtCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := OpenAt(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Recent(1)
	assert.NoError(t, err)
}
