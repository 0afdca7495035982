package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/solidscore/internal/syntax"
)

func parse(t *testing.T, src string) *syntax.Node {
	t.Helper()
	root, err := NewRubyParser().Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, root)
	require.Equal(t, syntax.KindProgram, root.Kind)
	return root
}

// find returns the first node of the given kind in depth-first order.
func find(root *syntax.Node, kind syntax.Kind, value string) *syntax.Node {
	var found *syntax.Node
	root.Walk(func(n *syntax.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == kind && (value == "" || n.Value == value) {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestIsRubyFile(t *testing.T) {
	assert.True(t, IsRubyFile("app/models/user.rb"))
	assert.True(t, IsRubyFile("LEGACY.RB"))
	assert.False(t, IsRubyFile("Gemfile"))
	assert.False(t, IsRubyFile("script.py"))
}

func TestParseClass(t *testing.T) {
	root := parse(t, `class Calculator < Base
  def initialize(tax_rate)
    @tax_rate = tax_rate
  end
end
`)

	class := find(root, syntax.KindClass, "")
	require.NotNil(t, class)
	assert.Equal(t, "Calculator", class.Child(0).ConstName())
	assert.Equal(t, "Base", class.Child(1).ConstName())
	assert.Equal(t, 1, class.StartLine)
	assert.Equal(t, 5, class.EndLine)

	def := find(class, syntax.KindDef, "initialize")
	require.NotNil(t, def)
	assert.Equal(t, 2, def.StartLine)
	assert.Equal(t, 4, def.EndLine)

	args := def.Child(0)
	require.True(t, args.Is(syntax.KindArgs))
	require.Len(t, args.Children, 1)
	assert.Equal(t, syntax.KindArg, args.Children[0].Kind)
	assert.Equal(t, "tax_rate", args.Children[0].Value)

	asgn := find(def, syntax.KindIvasgn, "@tax_rate")
	require.NotNil(t, asgn)
	assert.True(t, asgn.Child(0).Is(syntax.KindLvar))
}

func TestParseNamespacedClass(t *testing.T) {
	root := parse(t, "class Billing::Invoice < ActiveRecord::Base\nend\n")

	class := find(root, syntax.KindClass, "")
	require.NotNil(t, class)
	assert.Equal(t, "Billing::Invoice", class.Child(0).ConstName())
	assert.Equal(t, "ActiveRecord::Base", class.Child(1).ConstName())
}

func TestParseLocalsAndCalls(t *testing.T) {
	root := parse(t, `def total(amount)
  amount + tax
end
`)

	plus := find(root, syntax.KindSend, "+")
	require.NotNil(t, plus)
	assert.True(t, plus.Child(0).Is(syntax.KindLvar))
	assert.Equal(t, "amount", plus.Child(0).Value)

	tax := plus.Child(1)
	require.True(t, tax.Is(syntax.KindSend))
	assert.Equal(t, "tax", tax.Value)
	assert.Nil(t, tax.Child(0))
}

func TestParseLocalScopeEndsWithMethod(t *testing.T) {
	root := parse(t, `class A
  def one
    value = 1
    value
  end

  def two
    value
  end
end
`)

	two := find(root, syntax.KindDef, "two")
	require.NotNil(t, two)
	body := two.Child(1)
	require.True(t, body.Is(syntax.KindSend))
	assert.Equal(t, "value", body.Value)
}

func TestParseVisibility(t *testing.T) {
	root := parse(t, `class A
  private

  def helper; end

  protected :compare
  private def secret; end
end
`)

	var levels []string
	root.Walk(func(n *syntax.Node) bool {
		if n.Is(syntax.KindVisibility) {
			levels = append(levels, n.Value)
		}
		return true
	})
	assert.Equal(t, []string{"private", "protected", "private"}, levels)

	protected := find(root, syntax.KindVisibility, "protected")
	require.Len(t, protected.Children, 1)
	assert.Equal(t, syntax.KindSym, protected.Children[0].Kind)
	assert.Equal(t, "compare", protected.Children[0].Value)

	private := protected
	root.Walk(func(n *syntax.Node) bool {
		if n.Is(syntax.KindVisibility) && len(n.Children) > 0 && n.Value == "private" {
			private = n
		}
		return true
	})
	require.Len(t, private.Children, 1)
	assert.Equal(t, syntax.KindDef, private.Children[0].Kind)
	assert.Equal(t, "secret", private.Children[0].Value)
}

func TestParseBranches(t *testing.T) {
	root := parse(t, `def route(kind)
  return nil unless kind
  case kind
  when :a then 1
  when :b, :c then 2
  else 3
  end
  ready? && go! || stop
  retry_count += 1 while pending?
end
`)

	assert.Equal(t, 1, root.Count(func(n *syntax.Node) bool { return n.Is(syntax.KindIf) }))
	assert.Equal(t, 1, root.Count(func(n *syntax.Node) bool { return n.Is(syntax.KindAnd) }))
	assert.Equal(t, 1, root.Count(func(n *syntax.Node) bool { return n.Is(syntax.KindOr) }))
	assert.Equal(t, 1, root.Count(func(n *syntax.Node) bool { return n.Is(syntax.KindWhile) }))

	cs := find(root, syntax.KindCase, "")
	require.NotNil(t, cs)
	assert.True(t, cs.Child(0).Is(syntax.KindLvar))
	whens := 0
	for _, child := range cs.Children {
		if child.Is(syntax.KindWhen) {
			whens++
		}
	}
	assert.Equal(t, 2, whens)
}

func TestParseRescue(t *testing.T) {
	root := parse(t, `def fetch
  client.get
rescue Timeout::Error => e
  log(e)
rescue IOError
  nil
end
`)

	rescue := find(root, syntax.KindRescue, "")
	require.NotNil(t, rescue)
	assert.Equal(t, 1, root.Count(func(n *syntax.Node) bool { return n.Is(syntax.KindRescue) }))
	assert.Equal(t, 2, rescue.Count(func(n *syntax.Node) bool { return n.Is(syntax.KindResBody) }))

	logCall := find(rescue, syntax.KindSend, "log")
	require.NotNil(t, logCall)
	require.Len(t, logCall.Children, 2)
	assert.True(t, logCall.Child(1).Is(syntax.KindLvar))
}

func TestParseSuper(t *testing.T) {
	root := parse(t, `class Child < Parent
  def a(x)
    super(x)
  end

  def b
    super
  end
end
`)

	a := find(root, syntax.KindDef, "a")
	require.NotNil(t, a)
	assert.NotNil(t, find(a, syntax.KindSuper, ""))

	b := find(root, syntax.KindDef, "b")
	require.NotNil(t, b)
	assert.NotNil(t, find(b, syntax.KindZSuper, ""))
}

func TestParseParams(t *testing.T) {
	root := parse(t, "def call(a, b = 1, *rest, repo:, logger: nil, **opts, &blk)\nend\n")

	def := find(root, syntax.KindDef, "call")
	require.NotNil(t, def)

	var kinds []syntax.Kind
	for _, p := range def.Child(0).Children {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []syntax.Kind{
		syntax.KindArg,
		syntax.KindOptArg,
		syntax.KindRestArg,
		syntax.KindKwArg,
		syntax.KindKwOptArg,
		syntax.KindKwRestArg,
		syntax.KindBlockArg,
	}, kinds)
}

func TestParseBlockParamsAreLocals(t *testing.T) {
	root := parse(t, `def names
  users.map { |user| user.name }
end
`)

	block := find(root, syntax.KindBlock, "")
	require.NotNil(t, block)
	assert.Equal(t, "map", block.Child(0).Value)

	name := find(block, syntax.KindSend, "name")
	require.NotNil(t, name)
	assert.True(t, name.Child(0).Is(syntax.KindLvar))
}

func TestParseErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewRubyParser().Parse(ctx, []byte("class Broken\n  def x(\nend\n"))
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = NewRubyParser().Parse(ctx, []byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = NewRubyParser(WithMaxFileSize(8)).Parse(ctx, []byte("class LongerThanEight\nend\n"))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewRubyParser().Parse(canceled, []byte("class A; end"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.rb")
	require.NoError(t, os.WriteFile(path, []byte("class Widget\nend\n"), 0o644))

	root, err := NewRubyParser().ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.NotNil(t, find(root, syntax.KindClass, ""))

	_, err = NewRubyParser().ParseFile(context.Background(), filepath.Join(dir, "missing.rb"))
	assert.Error(t, err)
}
