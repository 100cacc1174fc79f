package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/llehouerou/shelf/internal/errmsg"
	"github.com/llehouerou/shelf/internal/organize"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-4, 60)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ProgressMsg:
		if !msg.Open {
			// Channel closed; the outcome watcher delivers the final state.
			return m, nil
		}
		m.last = msg.Progress
		return m, WatchProgress(m.progressCh)

	case OutcomeMsg:
		m.state = StateDone
		m.outcome = msg.Outcome
		m.progressCh = nil
		m.outcomeCh = nil
		var cmds []tea.Cmd
		if m.cfg.HistoryEnabled() {
			if cmd := RecordRunCmd(m.store, msg.Outcome); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		if m.cfg.NotificationsEnabled() {
			if cmd := NotifyCmd(m.notifier, msg.Outcome); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case HistoryRecordedMsg:
		if msg.Err != nil {
			m.errMsg = errmsg.Format(errmsg.OpHistorySave, msg.Err)
		}
		return m, nil

	case NotifiedMsg:
		// A failed notification is not worth surfacing.
		return m, nil
	}

	if m.state == StateForm {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateForm:
		return m.handleFormKey(msg)
	case StateRunning:
		return m.handleRunningKey(msg)
	case StateDone:
		return m.handleDoneKey(msg)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		return m.focusField((m.focused + 1) % fieldCount), nil
	case "shift+tab", "up":
		return m.focusField((m.focused + fieldCount - 1) % fieldCount), nil
	case "enter":
		return m.startRun()
	}
	return m.updateInputs(msg)
}

func (m Model) handleRunningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "c":
		m.engine.Cancel()
	case "ctrl+c":
		m.engine.Cancel()
		// Keep the UI alive until the engine confirms via the outcome.
	}
	return m, nil
}

func (m Model) handleDoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	failures := 0
	if m.outcome != nil {
		failures = len(m.outcome.Failures)
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter", "r":
		m.state = StateForm
		m.errMsg = ""
		m.failOffset = 0
		return m.focusField(fieldSource), textinput.Blink
	case "j", "down":
		if m.failOffset < failures-1 {
			m.failOffset++
		}
	case "k", "up":
		if m.failOffset > 0 {
			m.failOffset--
		}
	}
	return m, nil
}

func (m Model) focusField(i int) Model {
	m.focused = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	opts := organize.Options{
		Source:        strings.TrimSpace(m.inputs[fieldSource].Value()),
		Destination:   strings.TrimSpace(m.inputs[fieldDestination].Value()),
		SanitizeNames: m.cfg.Sanitize(),
		Duplicates:    organize.DuplicatePolicy(m.cfg.DuplicatePolicy),
	}

	progressCh, outcomeCh, err := m.engine.Start(opts)
	if err != nil {
		m.errMsg = errmsg.Format(errmsg.OpRunStart, err)
		return m, nil
	}

	m.state = StateRunning
	m.errMsg = ""
	m.last = organize.Progress{}
	m.outcome = nil
	m.progressCh = progressCh
	m.outcomeCh = outcomeCh
	return m, tea.Batch(WatchProgress(progressCh), WatchOutcome(outcomeCh))
}
