package analyzer

import (
	"slices"
	"strings"

	"github.com/pthm/solidscore/internal/model"
)

const injectionBonus = 15

// DefaultWhitelist returns the core and standard library types whose
// instantiation is not a concrete dependency.
func DefaultWhitelist() []string {
	return []string{
		"Array", "Hash", "Set", "SortedSet",
		"Thread", "Mutex", "Monitor", "ConditionVariable", "Queue", "SizedQueue",
		"Time", "Date", "DateTime",
		"BigDecimal", "Rational", "Complex",
		"String", "StringIO", "Regexp",
		"File", "Dir", "IO", "Tempfile",
		"Struct", "OpenStruct",
		"StandardError", "RuntimeError", "ArgumentError", "TypeError",
		"Range", "Enumerator", "Proc", "Method",
		"Logger",
		"URI",
		"JSON",
		"CSV",
		"Socket",
		"Net::HTTP",
	}
}

// DIPAnalyzer compares concrete instantiations against injected
// collaborators.
type DIPAnalyzer struct {
	whitelist []string
}

// NewDIPAnalyzer creates an analyzer that ignores the given types. A nil
// whitelist selects DefaultWhitelist.
func NewDIPAnalyzer(whitelist []string) *DIPAnalyzer {
	if whitelist == nil {
		whitelist = DefaultWhitelist()
	}
	return &DIPAnalyzer{whitelist: slices.Clone(whitelist)}
}

func (a *DIPAnalyzer) Principle() model.Principle {
	return model.DIP
}

func (a *DIPAnalyzer) Name() string {
	return "dip-instantiation"
}

func (a *DIPAnalyzer) Description() string {
	return "Compares instantiated concrete collaborators with keyword-injected ones"
}

func (a *DIPAnalyzer) Analyze(ci *model.ClassInfo) float64 {
	concrete := a.ConcreteDependencies(ci)
	injected := injectedDependencies(ci)
	total := concrete + injected
	if total == 0 {
		return MaxScore
	}

	score := MaxScore - MaxScore*float64(concrete)/float64(total)
	if injected > 0 {
		score += injectionBonus
	}

	switch {
	case concrete > 20:
		score -= 20
	case concrete > 10:
		score -= 10
	}
	return clamp(score)
}

// ConcreteDependencies counts instantiations of non-whitelisted named
// types. Methods without call site data fall back to counting bare `new`
// calls.
func (a *DIPAnalyzer) ConcreteDependencies(ci *model.ClassInfo) int {
	n := 0
	for _, m := range ci.Methods {
		if len(m.CallSites) == 0 {
			n += m.CountCalls(model.InstantiationMethod)
			continue
		}
		for _, cs := range m.CallSites {
			if cs.IsInstantiation() && !a.Whitelisted(cs.Receiver.Name) {
				n++
			}
		}
	}
	return n
}

// Whitelisted reports whether name, or its last namespace segments, match a
// whitelisted type.
func (a *DIPAnalyzer) Whitelisted(name string) bool {
	if name == "" {
		return false
	}
	for _, w := range a.whitelist {
		if name == w || strings.HasSuffix(name, "::"+w) {
			return true
		}
	}
	return false
}

func injectedDependencies(ci *model.ClassInfo) int {
	ctor := ci.Constructor()
	if ctor == nil {
		return 0
	}
	return ctor.KeywordParamCount()
}
