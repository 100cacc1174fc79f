package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shelf/internal/history"
	"github.com/llehouerou/shelf/internal/notify"
	"github.com/llehouerou/shelf/internal/organize"
)

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchProgress returns a command that waits for the next progress event.
func WatchProgress(ch <-chan organize.Progress) tea.Cmd {
	return waitForChannel(ch, func(p organize.Progress, ok bool) tea.Msg {
		return ProgressMsg{Progress: p, Open: ok}
	})
}

// WatchOutcome returns a command that waits for the run's outcome.
func WatchOutcome(ch <-chan *organize.Outcome) tea.Cmd {
	return waitForChannel(ch, func(out *organize.Outcome, _ bool) tea.Msg {
		return OutcomeMsg{Outcome: out}
	})
}

// RecordRunCmd persists a finished run to the history store.
func RecordRunCmd(store *history.Store, out *organize.Outcome) tea.Cmd {
	if store == nil || out == nil {
		return nil
	}
	return func() tea.Msg {
		id, err := store.Record(out)
		return HistoryRecordedMsg{RunID: id, Err: err}
	}
}

// NotifyCmd sends the run-summary desktop notification.
func NotifyCmd(notifier notify.Notifier, out *organize.Outcome) tea.Cmd {
	if notifier == nil || out == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := notifier.Notify(notify.Summary(out))
		return NotifiedMsg{Err: err}
	}
}
