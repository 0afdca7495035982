package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pthm/solidscore/internal/scorer"
	"github.com/pthm/solidscore/internal/version"
)

const htmlStyle = `body{font-family:sans-serif;margin:2em}
table{border-collapse:collapse}
th,td{border:1px solid #ccc;padding:4px 8px}
td{font-variant-numeric:tabular-nums}`

// HTMLReporter renders the Markdown report as a standalone HTML page
type HTMLReporter struct {
	w  io.Writer
	md goldmark.Markdown
}

// NewHTMLReporter creates a new HTML reporter
func NewHTMLReporter(w io.Writer) *HTMLReporter {
	return &HTMLReporter{
		w:  w,
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Report outputs results as HTML
func (r *HTMLReporter) Report(results []scorer.Result) error {
	var body strings.Builder
	if err := r.md.Convert(renderMarkdown(results), &body); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}

	_, err := fmt.Fprintf(r.w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n%s</body>\n</html>\n",
		version.Banner(), htmlStyle, body.String())
	return err
}
