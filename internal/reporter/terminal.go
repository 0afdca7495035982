package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/scorer"
	"github.com/pthm/solidscore/internal/ui"
	"github.com/pthm/solidscore/internal/version"
)

const (
	nameWidth      = 40
	separatorWidth = 75
	tableHeader    = "Class                                      SRP   OCP   LSP   ISP   DIP   Total"
)

// TerminalReporter prints a fixed-width score table
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	return &TerminalReporter{w: w, styles: styles}
}

// Report outputs results as a table followed by the average row
func (r *TerminalReporter) Report(results []scorer.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(r.w, EmptyMessage)
		return err
	}

	s := r.styles
	var sb strings.Builder
	sb.WriteString(s.Render(s.Header, version.Banner()) + "\n\n")
	fmt.Fprintf(&sb, "Analyzed %d class(es)\n\n", len(results))
	sb.WriteString(s.Render(s.Header, tableHeader) + "\n")

	separator := s.Render(s.Separator, strings.Repeat("-", separatorWidth)) + "\n"
	sb.WriteString(separator)
	for _, res := range results {
		sb.WriteString(r.row(truncate(res.ClassName, nameWidth), res))
	}
	sb.WriteString(separator)
	sb.WriteString(r.row("Average", scorer.Summarize(results).Average))

	_, err := io.WriteString(r.w, sb.String())
	return err
}

func (r *TerminalReporter) row(name string, res scorer.Result) string {
	s := r.styles
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s", nameWidth, name)
	for _, p := range model.Principles {
		score := res.Score(p)
		sb.WriteString(" " + s.Render(s.ScoreStyle(score), fmt.Sprintf("%5.1f", score)))
	}
	total := res.Total()
	sb.WriteString(" " + s.Render(s.ScoreStyle(total), fmt.Sprintf("%7.1f", total)))
	sb.WriteString("\n")
	return sb.String()
}
