package analyzer

import (
	"strings"

	"github.com/pthm/solidscore/internal/model"
)

const extraRaisePenalty = 15

// LSPOptions tunes the override heuristics.
type LSPOptions struct {
	// SimpleMaxLines is the largest LineEnd-LineStart of a simple method.
	SimpleMaxLines int `yaml:"simple_max_lines" json:"simple_max_lines"`
	// ReducedPenalty applies to overrides that skip super.
	ReducedPenalty float64 `yaml:"reduced_penalty" json:"reduced_penalty"`
	// AbstractPatterns are substrings marking an abstract superclass name.
	AbstractPatterns []string `yaml:"abstract_patterns" json:"abstract_patterns"`
}

// DefaultLSPOptions returns the stock heuristics.
func DefaultLSPOptions() LSPOptions {
	return LSPOptions{
		SimpleMaxLines:   3,
		ReducedPenalty:   5,
		AbstractPatterns: []string{"Base", "Abstract"},
	}
}

// LSPAnalyzer checks that subclass methods keep the parent's contract.
type LSPAnalyzer struct {
	opts LSPOptions
}

// NewLSPAnalyzer creates an analyzer with the given heuristics.
func NewLSPAnalyzer(opts LSPOptions) *LSPAnalyzer {
	return &LSPAnalyzer{opts: opts}
}

func (a *LSPAnalyzer) Principle() model.Principle {
	return model.LSP
}

func (a *LSPAnalyzer) Name() string {
	return "lsp-overrides"
}

func (a *LSPAnalyzer) Description() string {
	return "Penalizes subclass methods that raise new exceptions or replace parent behaviour without calling super"
}

func (a *LSPAnalyzer) Analyze(ci *model.ClassInfo) float64 {
	if !ci.HasSuperclass() {
		return MaxScore
	}

	score := MaxScore
	for _, m := range ci.Methods {
		if m.Name == model.ConstructorName {
			continue
		}
		score -= a.raisePenalty(m)
		score -= a.noSuperPenalty(m, ci)
	}
	return clamp(score)
}

func (a *LSPAnalyzer) raisePenalty(m *model.MethodInfo) float64 {
	for _, r := range m.Raises {
		if r != NotImplementedMarker {
			return extraRaisePenalty
		}
	}
	return 0
}

func (a *LSPAnalyzer) noSuperPenalty(m *model.MethodInfo, ci *model.ClassInfo) float64 {
	switch {
	case m.CallsSuper:
		return 0
	case a.isSimple(m):
		return 0
	case a.hasAbstractParent(ci):
		return 0
	default:
		return a.opts.ReducedPenalty
	}
}

// isSimple reports whether m is a short branch-free method, typically a
// hook or a complete override.
func (a *LSPAnalyzer) isSimple(m *model.MethodInfo) bool {
	return m.Complexity == 1 && m.BodyLines() <= a.opts.SimpleMaxLines
}

func (a *LSPAnalyzer) hasAbstractParent(ci *model.ClassInfo) bool {
	for _, pattern := range a.opts.AbstractPatterns {
		if pattern != "" && strings.Contains(ci.Superclass, pattern) {
			return true
		}
	}
	return false
}
