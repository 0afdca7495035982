// Package syntax defines the language-neutral syntax tree consumed by the
// extractor.
//
// A Node carries a Kind, an optional Value (identifier, constant segment,
// method name, parameter name), ordered Children and a 1-based inclusive line
// span. Children are positional for some kinds and may contain nil entries:
//
//	Program, Begin      statements...
//	Class               [name Const, superclass | nil, body | nil]
//	Module              [name Const, body | nil]
//	SClass              [target, body | nil]
//	Def                 Value=name; [Args, body | nil]
//	Defs                Value=name; [target, Args, body | nil]
//	Args                parameter nodes (Arg, OptArg, RestArg, KwArg, KwOptArg, KwRestArg, BlockArg)
//	Send                Value=method; [receiver | nil, arguments...]
//	Block               [Send, Args, body | nil]
//	Visibility          Value=public|private|protected; arguments...
//	Const               Value=segment; [scope Const | nil]
//	Ivar, Lvar, Sym     Value=name
//	Ivasgn, Lvasgn      Value=name; [value | nil]
//	Super               arguments...
//	If, While, Until    [condition, branches...]
//	Case                [subject | nil, When..., else | nil]
//	When                [patterns..., body | nil]
//	Rescue              [body | nil, ResBody..., else | nil]
package syntax

import "strings"

// Kind tags a Node.
type Kind int

const (
	KindOther Kind = iota
	KindProgram
	KindBegin
	KindClass
	KindModule
	KindSClass
	KindDef
	KindDefs
	KindArgs
	KindArg
	KindOptArg
	KindRestArg
	KindKwArg
	KindKwOptArg
	KindKwRestArg
	KindBlockArg
	KindSend
	KindBlock
	KindVisibility
	KindConst
	KindSelf
	KindIvar
	KindIvasgn
	KindLvar
	KindLvasgn
	KindSym
	KindStr
	KindSuper
	KindZSuper
	KindIf
	KindWhile
	KindUntil
	KindFor
	KindCase
	KindWhen
	KindAnd
	KindOr
	KindRescue
	KindResBody
)

var kindNames = map[Kind]string{
	KindOther:      "other",
	KindProgram:    "program",
	KindBegin:      "begin",
	KindClass:      "class",
	KindModule:     "module",
	KindSClass:     "sclass",
	KindDef:        "def",
	KindDefs:       "defs",
	KindArgs:       "args",
	KindArg:        "arg",
	KindOptArg:     "optarg",
	KindRestArg:    "restarg",
	KindKwArg:      "kwarg",
	KindKwOptArg:   "kwoptarg",
	KindKwRestArg:  "kwrestarg",
	KindBlockArg:   "blockarg",
	KindSend:       "send",
	KindBlock:      "block",
	KindVisibility: "visibility",
	KindConst:      "const",
	KindSelf:       "self",
	KindIvar:       "ivar",
	KindIvasgn:     "ivasgn",
	KindLvar:       "lvar",
	KindLvasgn:     "lvasgn",
	KindSym:        "sym",
	KindStr:        "str",
	KindSuper:      "super",
	KindZSuper:     "zsuper",
	KindIf:         "if",
	KindWhile:      "while",
	KindUntil:      "until",
	KindFor:        "for",
	KindCase:       "case",
	KindWhen:       "when",
	KindAnd:        "and",
	KindOr:         "or",
	KindRescue:     "rescue",
	KindResBody:    "resbody",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsParam reports whether k is one of the parameter kinds found under Args.
func (k Kind) IsParam() bool {
	return k >= KindArg && k <= KindBlockArg
}

// Node is one syntax tree node.
type Node struct {
	Kind      Kind
	Value     string
	Children  []*Node
	StartLine int
	EndLine   int
}

// New creates a node spanning the given lines.
func New(kind Kind, value string, start, end int, children ...*Node) *Node {
	return &Node{
		Kind:      kind,
		Value:     value,
		Children:  children,
		StartLine: start,
		EndLine:   end,
	}
}

// Child returns the i-th child, or nil when n is nil or i is out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Is reports whether n is non-nil and of the given kind.
func (n *Node) Is(kind Kind) bool {
	return n != nil && n.Kind == kind
}

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n matching pred.
func (n *Node) Count(pred func(*Node) bool) int {
	count := 0
	n.Walk(func(node *Node) bool {
		if pred(node) {
			count++
		}
		return true
	})
	return count
}

// ConstName renders a Const node as a namespace-joined name ("A::B::C").
// Scopes that are not constants are dropped. Non-Const nodes yield "".
func (n *Node) ConstName() string {
	if !n.Is(KindConst) {
		return ""
	}
	scope := n.Child(0).ConstName()
	if scope == "" {
		return n.Value
	}
	return scope + "::" + n.Value
}

// Describe renders a compact, human readable form of an expression. It is
// used where a name is expected but the source holds an arbitrary expression,
// such as `class Point < Struct.new(:x, :y)`.
func (n *Node) Describe() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindConst:
		return n.ConstName()
	case KindSelf:
		return "self"
	case KindIvar, KindLvar:
		return n.Value
	case KindSym:
		return ":" + n.Value
	case KindSend:
		recv := n.Child(0)
		if recv == nil {
			return n.Value
		}
		return recv.Describe() + "." + n.Value
	default:
		return n.Kind.String()
	}
}

// String renders the subtree as an s-expression, mostly for tests and the
// report command.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("nil")
		return
	}
	sb.WriteString("(")
	sb.WriteString(n.Kind.String())
	if n.Value != "" {
		sb.WriteString(" ")
		sb.WriteString(n.Value)
	}
	for _, child := range n.Children {
		sb.WriteString(" ")
		child.write(sb)
	}
	sb.WriteString(")")
}
