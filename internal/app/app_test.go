package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/shelf/internal/config"
	"github.com/llehouerou/shelf/internal/history"
	"github.com/llehouerou/shelf/internal/organize"
)

func testConfig() *config.Config {
	return &config.Config{
		SourceFolder:      "/music/incoming",
		DestinationFolder: "/music/library",
		DuplicatePolicy:   config.DuplicateSkip,
	}
}

func testModel(t *testing.T) Model {
	t.Helper()
	return New(testConfig(), organize.New(nil), nil, nil)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNewStartsOnFormWithConfigValues(t *testing.T) {
	m := testModel(t)

	assert.Equal(t, StateForm, m.State())
	assert.Equal(t, "/music/incoming", m.inputs[fieldSource].Value())
	assert.Equal(t, "/music/library", m.inputs[fieldDestination].Value())
}

func TestTabCyclesFocus(t *testing.T) {
	m := testModel(t)
	require.Equal(t, fieldSource, m.focused)

	next, _ := m.Update(keyMsg("tab"))
	m = next.(Model)
	assert.Equal(t, fieldDestination, m.focused)
	assert.True(t, m.inputs[fieldDestination].Focused())
	assert.False(t, m.inputs[fieldSource].Focused())

	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	assert.Equal(t, fieldSource, m.focused)
}

func TestStartWithMissingFoldersShowsError(t *testing.T) {
	m := testModel(t)
	m.inputs[fieldSource].SetValue("/nonexistent/source")
	m.inputs[fieldDestination].SetValue("/nonexistent/dest")

	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)

	assert.Equal(t, StateForm, m.State())
	assert.NotEmpty(t, m.errMsg)
}

func TestStartValidRunSwitchesToRunning(t *testing.T) {
	m := testModel(t)
	m.inputs[fieldSource].SetValue(t.TempDir())
	m.inputs[fieldDestination].SetValue(t.TempDir())

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)

	assert.Equal(t, StateRunning, m.State())
	assert.Empty(t, m.errMsg)
	assert.NotNil(t, cmd)
	assert.NotNil(t, m.progressCh)
	assert.NotNil(t, m.outcomeCh)
}

func TestProgressMsgUpdatesLastAndRearms(t *testing.T) {
	m := testModel(t)
	m.state = StateRunning
	m.progressCh = make(chan organize.Progress)

	next, cmd := m.Update(ProgressMsg{
		Progress: organize.Progress{Index: 3, Total: 10, Path: "a.mp3", Status: organize.StatusMoved},
		Open:     true,
	})
	m = next.(Model)

	assert.Equal(t, "a.mp3", m.last.Path)
	assert.Equal(t, organize.StatusMoved, m.last.Status)
	assert.NotNil(t, cmd, "should keep watching the progress channel")
}

func TestClosedProgressChannelStopsWatching(t *testing.T) {
	m := testModel(t)
	m.state = StateRunning

	_, cmd := m.Update(ProgressMsg{Open: false})
	assert.Nil(t, cmd)
}

func TestOutcomeMsgSwitchesToDone(t *testing.T) {
	m := testModel(t)
	m.state = StateRunning

	out := &organize.Outcome{
		Scanned:  5,
		Moved:    4,
		Failed:   1,
		Started:  time.Now().Add(-time.Minute),
		Finished: time.Now(),
	}
	next, _ := m.Update(OutcomeMsg{Outcome: out})
	m = next.(Model)

	assert.Equal(t, StateDone, m.State())
	assert.Same(t, out, m.Outcome())
	assert.Nil(t, m.progressCh)
}

func TestDoneEnterReturnsToForm(t *testing.T) {
	m := testModel(t)
	m.state = StateDone
	m.outcome = &organize.Outcome{}
	m.errMsg = "history: boom"

	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)

	assert.Equal(t, StateForm, m.State())
	assert.Empty(t, m.errMsg)
	assert.True(t, m.inputs[fieldSource].Focused())
}

func TestDoneQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := testModel(t)
		m.state = StateDone
		m.outcome = &organize.Outcome{}

		_, cmd := m.Update(keyMsg(key))
		require.NotNil(t, cmd, "key %q should quit", key)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestFailureScrollBounds(t *testing.T) {
	m := testModel(t)
	m.state = StateDone
	m.outcome = &organize.Outcome{
		Failures: []organize.Failure{
			{Path: "a.mp3"}, {Path: "b.mp3"},
		},
	}

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	assert.Equal(t, 1, m.failOffset)

	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	assert.Equal(t, 1, m.failOffset, "offset must not pass the last failure")

	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	assert.Equal(t, 0, m.failOffset)

	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	assert.Equal(t, 0, m.failOffset)
}

func TestFormViewShowsFields(t *testing.T) {
	m := testModel(t)
	m.width = 80

	view := m.View()
	assert.Contains(t, view, "Source")
	assert.Contains(t, view, "Library")
	assert.Contains(t, view, "enter organize")
}

func TestSummaryViewShowsCounts(t *testing.T) {
	m := testModel(t)
	m.state = StateDone
	m.outcome = &organize.Outcome{
		Scanned:    12,
		Moved:      9,
		Duplicates: 1,
		Failed:     2,
		BytesMoved: 1 << 20,
		Started:    time.Now().Add(-30 * time.Second),
		Finished:   time.Now(),
		Failures: []organize.Failure{
			{Path: "/in/bad.flac", Kind: organize.KindMetadata, Detail: "no tags"},
		},
	}

	view := m.View()
	assert.Contains(t, view, "12")
	assert.Contains(t, view, "/in/bad.flac")
	assert.Contains(t, view, "no tags")
	assert.True(t, strings.Contains(view, "errors"), "title should flag failures")
}

func TestFormViewShowsLastRun(t *testing.T) {
	store, err := history.OpenAt(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Record(&organize.Outcome{
		Moved:    7,
		Failed:   1,
		Started:  time.Now().Add(-time.Hour),
		Finished: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	m := New(testConfig(), organize.New(nil), store, nil)
	view := m.View()
	assert.Contains(t, view, "last run: 7 moved, 1 failed")
}

func TestSummaryViewCancelled(t *testing.T) {
	m := testModel(t)
	m.state = StateDone
	m.outcome = &organize.Outcome{Cancelled: true}

	assert.Contains(t, m.View(), "cancelled")
}
