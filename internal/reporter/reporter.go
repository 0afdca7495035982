// Package reporter renders score results in the supported output formats.
package reporter

import (
	"fmt"
	"io"

	"github.com/pthm/solidscore/internal/config"
	"github.com/pthm/solidscore/internal/scorer"
	"github.com/pthm/solidscore/internal/ui"
)

// EmptyMessage is printed instead of a table when nothing was analyzed.
const EmptyMessage = "No classes found to analyze."

// Reporter defines the interface for outputting score results
type Reporter interface {
	// Report outputs the score results
	Report(results []scorer.Result) error
}

// New returns the reporter for a configured format. Styles only affect the
// terminal reporter and may be nil.
func New(format string, w io.Writer, styles *ui.Styles) (Reporter, error) {
	if styles == nil {
		styles = ui.NewStyles(false)
	}

	switch config.NormalizeFormat(format) {
	case config.FormatTerminal:
		return NewTerminalReporter(w, styles), nil
	case config.FormatJSON:
		return NewJSONReporter(w), nil
	case config.FormatMarkdown:
		return NewMarkdownReporter(w), nil
	case config.FormatHTML:
		return NewHTMLReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// truncate shortens names longer than limit, keeping the result at limit
// characters including the trailing "...".
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
