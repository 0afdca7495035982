package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm/solidscore/internal/model"
)

func constructor(params ...model.Param) *model.MethodInfo {
	m := method("initialize", 2, 5)
	m.Params = params
	return m
}

func kw(name string) model.Param {
	return model.Param{Kind: model.ParamKeywordRequired, Name: name}
}

func TestDIPAnalyze(t *testing.T) {
	a := NewDIPAnalyzer(nil)

	tests := []struct {
		name     string
		class    *model.ClassInfo
		expected float64
	}{
		{"no dependencies", class("A", method("a", 1, 3)), 100},
		{
			name: "whitelisted only",
			class: class("DataProcessor", withSites(method("process", 2, 18),
				newOf("Array"), newOf("Hash"), newOf("Time"), newOf("Mutex"))),
			expected: 100,
		},
		{
			name:     "namespaced whitelist match",
			class:    class("Client", withSites(method("get", 2, 4), newOf("Net::HTTP"), newOf("Vendor::JSON"))),
			expected: 100,
		},
		{
			name:     "one collaborator, no injection",
			class:    class("A", withSites(method("a", 1, 3), newOf("OrderRepository"))),
			expected: 0,
		},
		{
			name:     "injected only",
			class:    class("A", constructor(kw("repository"), kw("notifier"))),
			expected: 100,
		},
		{
			name: "mixed",
			class: class("MixedProcessor",
				constructor(kw("service")),
				withSites(method("process", 6, 14), newOf("Hash"), newOf("Time"), newOf("ProcessingHelper")),
			),
			expected: 65,
		},
		{
			name: "instantiation on a variable is not concrete",
			class: class("A", withSites(method("a", 1, 3), model.CallSite{
				Method:   "new",
				Receiver: model.LocalVarReceiver("klass"),
			})),
			expected: 100,
		},
		{
			name:     "fallback to bare new calls",
			class:    class("A", constructor(kw("x")), withCalls(method("a", 1, 3), "new", "new", "new")),
			expected: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.Analyze(tt.class))
		})
	}
}

func TestDIPCouplingPenalty(t *testing.T) {
	a := NewDIPAnalyzer(nil)

	sites := make([]model.CallSite, 0, 12)
	for i := 0; i < 12; i++ {
		sites = append(sites, newOf("Collaborator"))
	}
	ci := class("A",
		constructor(kw("a"), kw("b"), kw("c"), kw("d"), kw("e"), kw("f"), kw("g"), kw("h"), kw("i"), kw("j"), kw("k"), kw("l")),
		withSites(method("a", 6, 30), sites...),
	)

	// 100 - 50 + 15 - 10
	assert.Equal(t, 55.0, a.Analyze(ci))
	assert.Equal(t, 12, a.ConcreteDependencies(ci))
}

func TestDIPWhitelistOverride(t *testing.T) {
	ci := class("A", withSites(method("a", 1, 3), newOf("Array"), newOf("OrderRepository")))

	assert.Equal(t, 0.0, NewDIPAnalyzer(nil).Analyze(ci))
	assert.Equal(t, 0.0, NewDIPAnalyzer([]string{"OrderRepository"}).Analyze(ci))
	assert.Equal(t, 100.0, NewDIPAnalyzer([]string{"OrderRepository", "Array"}).Analyze(ci))

	assert.True(t, NewDIPAnalyzer(nil).Whitelisted("Net::HTTP"))
	assert.False(t, NewDIPAnalyzer(nil).Whitelisted("HTTPClient"))
	assert.False(t, NewDIPAnalyzer(nil).Whitelisted(""))
}
