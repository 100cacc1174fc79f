package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpRunStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpRunStart,
			err:      errors.New("source folder missing"),
			expected: "Failed to start organization run: source folder missing",
		},
		{
			name:     "move operation",
			op:       OpMoveFile,
			err:      errors.New("permission denied"),
			expected: "Failed to move file: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpReadTags,
			context:  "track.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpReadTags,
			context:  "",
			err:      errors.New("corrupt header"),
			expected: "Failed to read file tags: corrupt header",
		},
		{
			name:     "includes context",
			op:       OpReadTags,
			context:  "track.mp3",
			err:      errors.New("corrupt header"),
			expected: "Failed to read file tags 'track.mp3': corrupt header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWith(tt.op, tt.context, tt.err); got != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", got, tt.expected)
			}
		})
	}
}
