// Package advisor asks Claude for refactoring advice on classes that fail
// the score gate. Advice is informational and never changes a score.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/scorer"
)

// maxSourceBytes bounds the class source embedded in a prompt.
const maxSourceBytes = 8000

// ErrUnavailable indicates that no Claude backend can be used.
var ErrUnavailable = errors.New("advisor unavailable")

// Request is one class to advise on.
type Request struct {
	Class  *model.ClassInfo
	Result scorer.Result
	// Source is the class's source text; may be empty.
	Source string
}

// Suggestion is one refactoring hint.
type Suggestion struct {
	Principle   string `json:"principle"`
	Line        int    `json:"line,omitempty"`
	Message     string `json:"message"`
	Refactoring string `json:"refactoring,omitempty"`
}

// Advice is the answer for one class.
type Advice struct {
	ClassName   string
	FilePath    string
	Suggestions []Suggestion
}

// Advisor produces refactoring advice.
type Advisor interface {
	Name() string
	Advise(ctx context.Context, req Request) (*Advice, error)
}

// completeFunc sends a prompt and returns the model's text answer.
type completeFunc func(ctx context.Context, prompt string) (string, error)

// New returns the API advisor when ANTHROPIC_API_KEY is set and the Claude
// Code CLI advisor otherwise.
func New(cwd string) (Advisor, error) {
	if os.Getenv(APIKeyEnv) != "" {
		return NewAPIAdvisor()
	}
	return NewCLIAdvisor(cwd)
}

func advise(ctx context.Context, complete completeFunc, req Request) (*Advice, error) {
	if req.Class == nil {
		return nil, errors.New("advisor: request has no class")
	}

	text, err := complete(ctx, Prompt(req.Class, req.Result, req.Source))
	if err != nil {
		return nil, err
	}

	suggestions, err := ParseSuggestions(text)
	if err != nil {
		return nil, err
	}
	return &Advice{
		ClassName:   req.Class.Name,
		FilePath:    req.Class.FilePath,
		Suggestions: suggestions,
	}, nil
}

// Prompt builds the advice prompt for a class. The output depends only on
// its arguments.
func Prompt(ci *model.ClassInfo, result scorer.Result, source string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are reviewing a Ruby class for SOLID design problems.\n\n")
	fmt.Fprintf(&sb, "Class: %s\nFile: %s (lines %d-%d)\n", ci.Name, ci.FilePath, ci.LineStart, ci.LineEnd)
	if ci.HasSuperclass() {
		fmt.Fprintf(&sb, "Superclass: %s\n", ci.Superclass)
	}

	sb.WriteString("\nHeuristic scores (0-100, higher is better):\n")
	for _, p := range model.Principles {
		fmt.Fprintf(&sb, "- %s (%s): %.1f\n", strings.ToUpper(p.String()), p.Title(), result.Score(p))
	}
	fmt.Fprintf(&sb, "- Total: %.1f\n", result.Total())

	if weakest := weakestPrinciples(result); len(weakest) > 0 {
		fmt.Fprintf(&sb, "\nFocus on: %s\n", strings.Join(weakest, ", "))
	}

	if len(ci.Methods) > 0 {
		sb.WriteString("\nMethods:\n")
		for _, m := range ci.Methods {
			fmt.Fprintf(&sb, "- %s %s (complexity %d)\n", m.Visibility, m.Name, m.Complexity)
		}
	}

	if source != "" {
		fmt.Fprintf(&sb, "\nSource:\n```ruby\n%s\n```\n", truncateContent(strings.TrimRight(source, "\n"), maxSourceBytes))
	}

	sb.WriteString(`
Suggest concrete refactorings that would improve the weakest scores.
Provide a JSON response with the following structure:
{
  "suggestions": [
    {
      "principle": "srp|ocp|lsp|isp|dip",
      "line": 0,
      "message": "what is wrong",
      "refactoring": "how to fix it"
    }
  ]
}

Return ONLY the JSON, no other text.`)
	return sb.String()
}

// weakestPrinciples lists the principles scoring below 80, lowest first.
func weakestPrinciples(result scorer.Result) []string {
	ps := make([]model.Principle, 0, len(model.Principles))
	for _, p := range model.Principles {
		if result.Score(p) < 80 {
			ps = append(ps, p)
		}
	}
	sort.SliceStable(ps, func(i, j int) bool {
		return result.Score(ps[i]) < result.Score(ps[j])
	})

	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, strings.ToUpper(p.String()))
	}
	return names
}

// ParseSuggestions decodes a model answer, tolerating Markdown fences and
// surrounding prose.
func ParseSuggestions(text string) ([]Suggestion, error) {
	var resp struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	raw := ExtractJSON(text)
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse advice: %w (response: %s)", err, TruncateForError(raw))
	}

	out := resp.Suggestions[:0]
	for _, s := range resp.Suggestions {
		if strings.TrimSpace(s.Message) == "" {
			continue
		}
		s.Principle = strings.ToLower(s.Principle)
		out = append(out, s)
	}
	return out, nil
}

// ExtractJSON attempts to extract JSON from a response that might be wrapped in markdown
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "{") {
		return s
	}

	if idx := strings.Index(s, "```json"); idx != -1 {
		start := idx + 7
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	if idx := strings.Index(s, "```"); idx != -1 {
		start := idx + 3
		// Skip any language identifier
		if nlIdx := strings.Index(s[start:], "\n"); nlIdx != -1 {
			start += nlIdx + 1
		}
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}

	return s
}

// TruncateForError truncates a string for inclusion in error messages
func TruncateForError(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

func truncateContent(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen] + "\n...[truncated]..."
}

// ClassSource returns lines start through end (1-based, inclusive) of src.
func ClassSource(src []byte, start, end int) string {
	lines := strings.Split(string(src), "\n")
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}
