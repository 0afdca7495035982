// Package diff scopes analysis to the files and lines changed against a git
// reference.
package diff

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/parser"
)

const devNull = "/dev/null"

// LineRange is a 1-based inclusive span of lines.
type LineRange struct {
	Start int
	End   int
}

// Overlaps reports whether r and o share at least one line.
func (r LineRange) Overlaps(o LineRange) bool {
	return r.Start <= o.End && o.Start <= r.End
}

// Ranges maps a normalized file path to its changed line ranges.
type Ranges map[string][]LineRange

// Analyzer answers diff questions against one base reference.
type Analyzer struct {
	ref string
	git Git
}

// New creates an analyzer for ref. A nil git selects ExecGit in the current
// directory.
func New(ref string, git Git) *Analyzer {
	if git == nil {
		git = &ExecGit{}
	}
	return &Analyzer{ref: ref, git: git}
}

// Ref returns the base reference.
func (a *Analyzer) Ref() string {
	return a.ref
}

// ChangedFiles lists the Ruby files that differ from the base reference.
func (a *Analyzer) ChangedFiles(ctx context.Context) ([]string, error) {
	out, err := a.git.Run(ctx, "diff", "--name-only", a.ref)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	var files []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" && parser.IsRubyFile(name) {
			files = append(files, NormalizePath(name))
		}
	}
	return files, scanner.Err()
}

// ChangedLineRanges returns the new-side line ranges of every hunk.
func (a *Analyzer) ChangedLineRanges(ctx context.Context) (Ranges, error) {
	out, err := a.git.Run(ctx, "diff", "--no-color", "--no-ext-diff", a.ref)
	if err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}
	return ParseRanges(out)
}

// SourceAt returns the content of path at the base reference.
func (a *Analyzer) SourceAt(ctx context.Context, path string) ([]byte, error) {
	out, err := a.git.Run(ctx, "show", a.ref+":"+NormalizePath(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", path, a.ref, err)
	}
	return out, nil
}

// ParseRanges extracts changed line ranges from a unified diff. A hunk that
// only deletes lines maps to the single line at its new-side start.
func ParseRanges(patch []byte) (Ranges, error) {
	ranges := make(Ranges)
	if len(bytes.TrimSpace(patch)) == 0 {
		return ranges, nil
	}

	files, err := godiff.ParseMultiFileDiff(patch)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	for _, fd := range files {
		if fd.NewName == "" || fd.NewName == devNull {
			continue
		}
		path := NormalizePath(strings.TrimPrefix(fd.NewName, "b/"))

		for _, h := range fd.Hunks {
			start := int(h.NewStartLine)
			end := start + int(h.NewLines) - 1
			if h.NewLines == 0 {
				end = start
			}
			ranges[path] = append(ranges[path], LineRange{Start: start, End: end})
		}
	}
	return ranges, nil
}

// FilterClasses keeps the classes whose span overlaps a changed range of
// their file.
func FilterClasses(classes []*model.ClassInfo, ranges Ranges) []*model.ClassInfo {
	var kept []*model.ClassInfo
	for _, ci := range classes {
		span := LineRange{Start: ci.LineStart, End: ci.LineEnd}
		for _, r := range ranges[NormalizePath(ci.FilePath)] {
			if r.Overlaps(span) {
				kept = append(kept, ci)
				break
			}
		}
	}
	return kept
}

// NormalizePath cleans a relative path and uses forward slashes, so that
// "./app/a.rb" and "app/a.rb" compare equal.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
