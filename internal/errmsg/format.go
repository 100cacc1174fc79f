// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Run operations
	OpRunStart Op = "start organization run"

	// Per-file operations
	OpScanFiles Op = "scan source folder"
	OpReadTags  Op = "read file tags"
	OpBuildPath Op = "build destination path"
	OpMoveFile  Op = "move file"

	// Configuration
	OpConfigLoad Op = "load configuration"

	// History operations
	OpHistoryOpen Op = "open run history"
	OpHistorySave Op = "save run to history"
	OpHistoryLoad Op = "load run history"

	// Notifications
	OpNotify Op = "send notification"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
