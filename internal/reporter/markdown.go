package reporter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/scorer"
	"github.com/pthm/solidscore/internal/version"
)

// MarkdownReporter outputs results as a GitHub-flavored Markdown table
type MarkdownReporter struct {
	w io.Writer
}

// NewMarkdownReporter creates a new Markdown reporter
func NewMarkdownReporter(w io.Writer) *MarkdownReporter {
	return &MarkdownReporter{w: w}
}

// Report outputs results as Markdown
func (r *MarkdownReporter) Report(results []scorer.Result) error {
	_, err := r.w.Write(renderMarkdown(results))
	return err
}

func renderMarkdown(results []scorer.Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# SOLID scores\n\n_%s_\n\n", version.Banner())

	if len(results) == 0 {
		buf.WriteString(EmptyMessage + "\n")
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "Analyzed %d class(es).\n\n", len(results))
	buf.WriteString("| Class | File |")
	for _, p := range model.Principles {
		fmt.Fprintf(&buf, " %s |", strings.ToUpper(p.String()))
	}
	buf.WriteString(" Total |\n|---|---|")
	for range model.Principles {
		buf.WriteString("---:|")
	}
	buf.WriteString("---:|\n")

	for _, res := range results {
		fmt.Fprintf(&buf, "| %s | %s |", escapeCell(res.ClassName), escapeCell(location(res)))
		writeScores(&buf, res)
	}

	buf.WriteString("| **Average** | |")
	writeScores(&buf, scorer.Summarize(results).Average)
	return buf.Bytes()
}

func writeScores(buf *bytes.Buffer, res scorer.Result) {
	for _, p := range model.Principles {
		fmt.Fprintf(buf, " %.1f |", res.Score(p))
	}
	fmt.Fprintf(buf, " %.1f |\n", res.Total())
}

func location(res scorer.Result) string {
	if res.LineStart > 0 {
		return fmt.Sprintf("`%s:%d`", res.FilePath, res.LineStart)
	}
	return fmt.Sprintf("`%s`", res.FilePath)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
