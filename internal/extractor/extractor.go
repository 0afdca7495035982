// Package extractor builds class and method descriptors from a syntax tree.
package extractor

import (
	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/syntax"
)

// Attribute and mixin directives recognized in class bodies.
const (
	directiveInclude      = "include"
	directiveExtend       = "extend"
	directiveAttrReader   = "attr_reader"
	directiveAttrWriter   = "attr_writer"
	directiveAttrAccessor = "attr_accessor"
)

// Extract returns a descriptor for every class definition under root, in
// source order. Nested classes are reported as classes of their own. A nil or
// malformed tree yields no classes.
func Extract(root *syntax.Node, filePath string) (classes []*model.ClassInfo) {
	if root == nil {
		return nil
	}

	// Malformed trees contribute no classes.
	defer func() {
		if r := recover(); r != nil {
			classes = nil
		}
	}()

	v := &visitor{filePath: filePath}
	root.Walk(v.visit)
	return v.classes
}

// visitor accumulates the classes of one Extract call.
type visitor struct {
	filePath string
	classes  []*model.ClassInfo
}

func (v *visitor) visit(n *syntax.Node) bool {
	if n.Is(syntax.KindClass) {
		if ci := v.buildClass(n); ci != nil {
			v.classes = append(v.classes, ci)
		}
	}
	return true
}

func (v *visitor) buildClass(n *syntax.Node) *model.ClassInfo {
	name := n.Child(0).ConstName()
	if name == "" {
		name = n.Child(0).Describe()
	}
	if name == "" {
		return nil
	}

	b := &classBuilder{
		class: &model.ClassInfo{
			Name:       name,
			FilePath:   v.filePath,
			LineStart:  n.StartLine,
			LineEnd:    max(n.EndLine, n.StartLine),
			Superclass: superclassName(n.Child(1)),
		},
	}

	vis := model.Public
	for _, stmt := range statements(n.Child(2)) {
		vis = b.member(stmt, vis)
	}

	b.class.InstanceVariables = b.instanceVariables()
	return b.class
}

func superclassName(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	if name := n.ConstName(); name != "" {
		return name
	}
	return n.Describe()
}

// statements flattens a body into its top-level statements.
func statements(body *syntax.Node) []*syntax.Node {
	switch {
	case body == nil:
		return nil
	case body.Is(syntax.KindBegin):
		return body.Children
	default:
		return []*syntax.Node{body}
	}
}

// classBuilder fills in one ClassInfo while its body is scanned.
type classBuilder struct {
	class *model.ClassInfo
}

// member handles one class body statement and returns the visibility in
// effect for the statements that follow it.
func (b *classBuilder) member(stmt *syntax.Node, vis model.Visibility) model.Visibility {
	if stmt == nil {
		return vis
	}

	switch stmt.Kind {
	case syntax.KindBegin:
		for _, child := range stmt.Children {
			vis = b.member(child, vis)
		}
		return vis

	case syntax.KindDef:
		b.class.Methods = append(b.class.Methods, buildMethod(stmt, vis))
		return vis

	case syntax.KindVisibility:
		level, ok := model.ParseVisibility(stmt.Value)
		if !ok {
			return vis
		}
		if len(stmt.Children) == 0 {
			return level
		}
		b.applyVisibility(stmt.Children, level, vis)
		return vis

	case syntax.KindSend:
		if stmt.Child(0) == nil {
			b.directive(stmt)
		}
		return vis
	}

	return vis
}

// applyVisibility handles `private def x`, `private :x, :y` and the like,
// leaving the body's visibility untouched.
func (b *classBuilder) applyVisibility(args []*syntax.Node, level, current model.Visibility) {
	for _, arg := range args {
		switch {
		case arg.Is(syntax.KindDef):
			b.class.Methods = append(b.class.Methods, buildMethod(arg, level))
		case arg.Is(syntax.KindSym), arg.Is(syntax.KindStr):
			for _, m := range b.class.Methods {
				if m.Name == arg.Value {
					m.Visibility = level
				}
			}
		case arg.Is(syntax.KindSend):
			b.member(arg, current)
		}
	}
}

func (b *classBuilder) directive(send *syntax.Node) {
	args := arguments(send)

	switch send.Value {
	case directiveInclude:
		b.class.Includes = append(b.class.Includes, constNames(args)...)
	case directiveExtend:
		b.class.Extends = append(b.class.Extends, constNames(args)...)
	case directiveAttrReader:
		b.class.AttrReaders = append(b.class.AttrReaders, symbolNames(args)...)
	case directiveAttrWriter:
		b.class.AttrWriters = append(b.class.AttrWriters, symbolNames(args)...)
	case directiveAttrAccessor:
		names := symbolNames(args)
		b.class.AttrReaders = append(b.class.AttrReaders, names...)
		b.class.AttrWriters = append(b.class.AttrWriters, names...)
	}
}

func (b *classBuilder) instanceVariables() []string {
	var ivars []string
	seen := make(map[string]bool)
	for _, m := range b.class.Methods {
		for _, iv := range m.InstanceVariables {
			if !seen[iv] {
				seen[iv] = true
				ivars = append(ivars, iv)
			}
		}
	}
	return ivars
}

// arguments returns the argument nodes of a Send.
func arguments(send *syntax.Node) []*syntax.Node {
	if len(send.Children) < 2 {
		return nil
	}
	return send.Children[1:]
}

func constNames(args []*syntax.Node) []string {
	var names []string
	for _, arg := range args {
		if name := arg.ConstName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func symbolNames(args []*syntax.Node) []string {
	var names []string
	for _, arg := range args {
		if arg.Is(syntax.KindSym) || arg.Is(syntax.KindStr) {
			names = append(names, arg.Value)
		}
	}
	return names
}
