package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Symbols for status indicators
const (
	movedSymbol  = "✔"
	failedSymbol = "✗"
)

const maxFailureRows = 8

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // orange
)

// View implements tea.Model.
func (m Model) View() string {
	switch m.state {
	case StateForm:
		return m.renderForm()
	case StateRunning:
		return m.renderRunning()
	case StateDone:
		return m.renderSummary()
	}
	return ""
}

func (m Model) renderForm() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Shelf"))
	b.WriteString("\n\n")

	labels := []string{"Source", "Library"}
	for i, input := range m.inputs {
		label := labelStyle.Render(labels[i])
		if i == m.focused {
			label = focusedLabelStyle.Render(labels[i])
		}
		b.WriteString(fmt.Sprintf("  %s\n  %s\n\n", label, input.View()))
	}

	if m.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n\n")
	}

	if m.lastRun != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  last run: %d moved, %d failed · %s",
			m.lastRun.Moved, m.lastRun.Failed, humanize.Time(m.lastRun.Finished))))
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render("  enter organize · tab switch field · esc quit"))
	return b.String()
}

func (m Model) renderRunning() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Organizing"))
	b.WriteString("\n\n")

	snap := m.engine.Progress()

	percent := 0.0
	if snap.Total > 0 {
		percent = float64(snap.Index) / float64(snap.Total)
	}
	b.WriteString("  " + m.bar.ViewAs(percent) + "\n\n")

	b.WriteString(fmt.Sprintf("  %s %s\n",
		labelStyle.Render(fmt.Sprintf("%d/%d", snap.Index, snap.Total)),
		valueStyle.Render(m.last.Path)))
	b.WriteString("  " + dimStyle.Render(string(m.last.Status)) + "\n\n")

	b.WriteString(fmt.Sprintf("  %s %s",
		labelStyle.Render("elapsed"), valueStyle.Render(formatDuration(snap.Elapsed))))
	if snap.Remaining > 0 {
		b.WriteString(fmt.Sprintf("  %s %s",
			labelStyle.Render("remaining"), valueStyle.Render(formatDuration(snap.Remaining))))
	}
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("  esc cancel"))
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder

	out := m.outcome
	if out == nil {
		return ""
	}

	title := successStyle.Render(movedSymbol + " Organization complete")
	switch {
	case out.Cancelled:
		title = warnStyle.Render("Organization cancelled")
	case out.Failed > 0:
		title = errorStyle.Render(failedSymbol + " Organization finished with errors")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"scanned", fmt.Sprintf("%d", out.Scanned)},
		{"moved", fmt.Sprintf("%d (%s)", out.Moved, humanize.Bytes(uint64(out.BytesMoved)))},
		{"duplicates", fmt.Sprintf("%d", out.Duplicates)},
		{"unsupported", fmt.Sprintf("%d", out.SkippedUnsupported)},
		{"failed", fmt.Sprintf("%d", out.Failed)},
		{"elapsed", formatDuration(out.Elapsed())},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-12s", r.label)),
			valueStyle.Render(r.value)))
	}

	if len(out.Failures) > 0 {
		b.WriteString("\n" + errorStyle.Render("  Failures") + "\n")
		end := min(m.failOffset+maxFailureRows, len(out.Failures))
		for _, f := range out.Failures[m.failOffset:end] {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				errorStyle.Render(failedSymbol),
				valueStyle.Render(f.Path),
				dimStyle.Render(f.Detail)))
		}
		if len(out.Failures) > maxFailureRows {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %d more, j/k to scroll\n",
				len(out.Failures)-end)))
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n  " + warnStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  enter run again · q quit"))
	return b.String()
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
