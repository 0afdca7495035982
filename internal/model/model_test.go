package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassInfoBasics(t *testing.T) {
	ci := &ClassInfo{
		Name:      "Calculator",
		LineStart: 3,
		LineEnd:   12,
		Methods: []*MethodInfo{
			{Name: "initialize"},
			{Name: "calculate"},
			{Name: "tax_amount", Visibility: Private},
		},
		Includes: []string{"Comparable"},
		Extends:  []string{"Forwardable"},
	}

	assert.Equal(t, 10, ci.LineCount())
	assert.False(t, ci.HasSuperclass())
	assert.Equal(t, 2, ci.MixinCount())
	require.NotNil(t, ci.Constructor())
	assert.Nil(t, ci.Method("missing"))

	public := ci.PublicMethods()
	require.Len(t, public, 1)
	assert.Equal(t, "calculate", public[0].Name)
}

func TestIsDataClass(t *testing.T) {
	tests := []struct {
		name     string
		class    *ClassInfo
		expected bool
	}{
		{
			name:     "no attributes",
			class:    &ClassInfo{Name: "A", Methods: []*MethodInfo{{Name: "initialize"}}},
			expected: false,
		},
		{
			name: "only constructor and readers",
			class: &ClassInfo{
				Name:        "UserData",
				AttrReaders: []string{"name", "email"},
				Methods:     []*MethodInfo{{Name: "initialize"}},
			},
			expected: true,
		},
		{
			name: "method named after a writer",
			class: &ClassInfo{
				Name:        "B",
				AttrWriters: []string{"name"},
				Methods:     []*MethodInfo{{Name: "name"}},
			},
			expected: true,
		},
		{
			name: "behaviour method",
			class: &ClassInfo{
				Name:        "C",
				AttrReaders: []string{"name"},
				Methods:     []*MethodInfo{{Name: "name"}, {Name: "greet"}},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.class.IsDataClass())
		})
	}
}

func TestWithMethodsCopies(t *testing.T) {
	m := &MethodInfo{Name: "run"}
	ci := &ClassInfo{Name: "Job", Superclass: "Base", Includes: []string{"X"}, Methods: []*MethodInfo{m, {Name: "other"}}}

	only := ci.WithMethods([]*MethodInfo{m})
	assert.Equal(t, "Job", only.Name)
	assert.Len(t, only.Methods, 1)
	assert.Empty(t, only.Includes)
	assert.False(t, only.HasSuperclass())
}

func TestMethodInfoHelpers(t *testing.T) {
	m := &MethodInfo{
		Name:              "process",
		LineStart:         4,
		LineEnd:           4,
		InstanceVariables: []string{"@a", "@b"},
		CalledMethods:     []string{"is_a?", "save", "is_a?"},
		Params: []Param{
			{Kind: ParamRequired, Name: "x"},
			{Kind: ParamKeywordOptional, Name: "y"},
			{Kind: ParamBlock, Name: "blk"},
		},
		Raises: []string{"ArgumentError"},
	}
	other := &MethodInfo{Name: "other", InstanceVariables: []string{"@b"}}

	assert.True(t, m.IsPublic())
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.BodyLines())
	assert.True(t, m.SharesInstanceVariables(other))
	assert.True(t, m.Calls("save"))
	assert.Equal(t, 2, m.CountCalls("is_a?", "kind_of?"))
	assert.True(t, m.RaisesType("ArgumentError"))
	assert.True(t, m.HasBlockParam())
	assert.Equal(t, 1, m.KeywordParamCount())
}

func TestCallSiteIsInstantiation(t *testing.T) {
	assert.True(t, CallSite{Method: "new", Receiver: NamedTypeReceiver("Foo")}.IsInstantiation())
	assert.False(t, CallSite{Method: "new", Receiver: LocalVarReceiver("foo")}.IsInstantiation())
	assert.False(t, CallSite{Method: "build", Receiver: NamedTypeReceiver("Foo")}.IsInstantiation())
}

func TestReceiverString(t *testing.T) {
	assert.Equal(t, "const(Net::HTTP)", NamedTypeReceiver("Net::HTTP").String())
	assert.Equal(t, "none", NoReceiver.String())
	assert.Equal(t, "chained", ChainedReceiver.String())
}

func TestParseHelpers(t *testing.T) {
	v, ok := ParseVisibility("protected")
	assert.True(t, ok)
	assert.Equal(t, Protected, v)

	_, ok = ParseVisibility("module_function")
	assert.False(t, ok)

	p, ok := ParsePrinciple("DIP")
	assert.True(t, ok)
	assert.Equal(t, DIP, p)
	assert.Equal(t, "Dependency Inversion", p.Title())

	assert.Equal(t, "keyword-rest", ParamKeywordRest.String())
	assert.True(t, ParamKeywordRequired.IsKeyword())
	assert.False(t, ParamOptional.IsKeyword())
}
