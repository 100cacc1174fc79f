// Package app contains the Bubble Tea model driving the organizer UI:
// a folder form, a live progress view while a run is active, and a
// summary screen once the run finishes.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/llehouerou/shelf/internal/config"
	"github.com/llehouerou/shelf/internal/errmsg"
	"github.com/llehouerou/shelf/internal/history"
	"github.com/llehouerou/shelf/internal/notify"
	"github.com/llehouerou/shelf/internal/organize"
)

// State represents the current screen of the organizer UI.
type State int

const (
	StateForm    State = iota // Folder form, waiting for the user to start
	StateRunning              // A run is active, progress streaming in
	StateDone                 // Run finished, summary displayed
)

// Field indexes into the form inputs.
const (
	fieldSource = iota
	fieldDestination
	fieldCount
)

// Model is the root Bubble Tea model.
type Model struct {
	state State

	cfg      *config.Config
	engine   *organize.Engine
	store    *history.Store // nil when history is disabled
	notifier notify.Notifier

	inputs  []textinput.Model
	focused int
	errMsg  string
	lastRun *history.Run

	// Run state
	progressCh <-chan organize.Progress
	outcomeCh  <-chan *organize.Outcome
	bar        progress.Model
	last       organize.Progress
	outcome    *organize.Outcome

	failOffset int // scroll offset into the failure list

	width  int
	height int
}

// New creates the root model from configuration and wires the run
// dependencies. store may be nil when history is disabled.
func New(cfg *config.Config, engine *organize.Engine, store *history.Store, notifier notify.Notifier) Model {
	inputs := make([]textinput.Model, fieldCount)

	src := textinput.New()
	src.Prompt = ""
	src.Placeholder = "folder to organize"
	src.SetValue(cfg.SourceFolder)
	src.Focus()
	inputs[fieldSource] = src

	dst := textinput.New()
	dst.Prompt = ""
	dst.Placeholder = "library folder"
	dst.SetValue(cfg.DestinationFolder)
	inputs[fieldDestination] = dst

	var lastRun *history.Run
	var errMsg string
	if store != nil {
		runs, err := store.Recent(1)
		switch {
		case err != nil:
			errMsg = errmsg.Format(errmsg.OpHistoryLoad, err)
		case len(runs) > 0:
			lastRun = &runs[0]
		}
	}

	return Model{
		state:    StateForm,
		cfg:      cfg,
		engine:   engine,
		store:    store,
		notifier: notifier,
		inputs:   inputs,
		lastRun:  lastRun,
		errMsg:   errMsg,
		bar:      progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current screen.
func (m Model) State() State {
	return m.state
}

// Outcome returns the finished run's outcome, nil before the first run ends.
func (m Model) Outcome() *organize.Outcome {
	return m.outcome
}
