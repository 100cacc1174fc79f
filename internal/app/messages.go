package app

import "github.com/llehouerou/shelf/internal/organize"

// ProgressMsg carries one per-file progress event from the engine.
type ProgressMsg struct {
	Progress organize.Progress
	Open     bool // false once the progress channel has closed
}

// OutcomeMsg is sent when the run finishes and the outcome channel delivers.
type OutcomeMsg struct {
	Outcome *organize.Outcome
}

// HistoryRecordedMsg is sent after the outcome has been written to history.
type HistoryRecordedMsg struct {
	RunID int64
	Err   error
}

// NotifiedMsg is sent after the completion notification has been dispatched.
type NotifiedMsg struct {
	Err error
}
