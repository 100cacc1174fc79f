package notify

import (
	"strings"
	"testing"

	"github.com/llehouerou/shelf/internal/organize"
)

func TestSummarySuccess(t *testing.T) {
	n := Summary(&organize.Outcome{Moved: 42, BytesMoved: 1 << 20})
	if n.Title != "Organization complete" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Urgency != UrgencyNormal {
		t.Errorf("Urgency = %d, want UrgencyNormal", n.Urgency)
	}
	if !strings.Contains(n.Body, "42 moved") {
		t.Errorf("Body = %q, want moved count", n.Body)
	}
	if strings.Contains(n.Body, "failed") {
		t.Errorf("Body = %q, should not mention failures", n.Body)
	}
}

func TestSummaryWithFailures(t *testing.T) {
	n := Summary(&organize.Outcome{Moved: 10, Failed: 3})
	if n.Title != "Organization finished with errors" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Urgency != UrgencyCritical {
		t.Errorf("Urgency = %d, want UrgencyCritical", n.Urgency)
	}
	if !strings.Contains(n.Body, "3 failed") {
		t.Errorf("Body = %q, want failure count", n.Body)
	}
}

func TestSummaryCancelled(t *testing.T) {
	n := Summary(&organize.Outcome{Moved: 5, Cancelled: true, Failed: 1})
	if n.Title != "Organization cancelled" {
		t.Errorf("Title = %q", n.Title)
	}
}

func TestSummaryDuplicates(t *testing.T) {
	n := Summary(&organize.Outcome{Moved: 2, Duplicates: 4})
	if !strings.Contains(n.Body, "4 duplicates") {
		t.Errorf("Body = %q, want duplicate count", n.Body)
	}
}
