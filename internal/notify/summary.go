package notify

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/shelf/internal/organize"
)

// Summary builds a desktop notification describing a finished run.
func Summary(out *organize.Outcome) Notification {
	title := "Organization complete"
	urgency := UrgencyNormal
	switch {
	case out.Cancelled:
		title = "Organization cancelled"
	case out.Failed > 0:
		title = "Organization finished with errors"
		urgency = UrgencyCritical
	}

	body := fmt.Sprintf("%d moved (%s)", out.Moved, humanize.Bytes(uint64(out.BytesMoved)))
	if out.Duplicates > 0 {
		body += fmt.Sprintf(", %d duplicates", out.Duplicates)
	}
	if out.Failed > 0 {
		body += fmt.Sprintf(", %d failed", out.Failed)
	}

	return Notification{
		Title:   title,
		Body:    body,
		Timeout: 5000,
		Urgency: urgency,
	}
}
