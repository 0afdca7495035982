package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pthm/solidscore/internal/syntax"
)

// visibilityKeywords become Visibility nodes when called without a receiver.
var visibilityKeywords = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
}

// kindByType maps tree-sitter node types whose children convert one to one.
var kindByType = map[string]syntax.Kind{
	"if":              syntax.KindIf,
	"unless":          syntax.KindIf,
	"elsif":           syntax.KindIf,
	"conditional":     syntax.KindIf,
	"if_modifier":     syntax.KindIf,
	"unless_modifier": syntax.KindIf,
	"while":           syntax.KindWhile,
	"while_modifier":  syntax.KindWhile,
	"until":           syntax.KindUntil,
	"until_modifier":  syntax.KindUntil,
	"when":            syntax.KindWhen,
}

// sequenceTypes hold a list of statements, possibly with rescue clauses.
var sequenceTypes = map[string]bool{
	"begin":                    true,
	"body_statement":           true,
	"block_body":               true,
	"then":                     true,
	"else":                     true,
	"do":                       true,
	"ensure":                   true,
	"parenthesized_statements": true,
	"interpolation":            true,
	"begin_block":              true,
	"end_block":                true,
}

// converter maps one tree-sitter tree onto syntax nodes. It tracks local
// variables per method scope so that bare identifiers can be told apart from
// receiverless calls.
type converter struct {
	src    []byte
	scopes []map[string]bool
}

func newConverter(src []byte) *converter {
	c := &converter{src: src}
	c.pushScope()
	return c
}

func (c *converter) pushScope() {
	c.scopes = append(c.scopes, make(map[string]bool))
}

func (c *converter) popScope() {
	if len(c.scopes) > 1 {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}
}

func (c *converter) declare(name string) {
	if name != "" {
		c.scopes[len(c.scopes)-1][name] = true
	}
}

func (c *converter) isLocal(name string) bool {
	return c.scopes[len(c.scopes)-1][name]
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(c.src[n.StartByte():n.EndByte()])
}

// lines returns the 1-based inclusive line span of n. A node ending at
// column 0 of a later row ends on the previous line.
func lines(n *sitter.Node) (int, int) {
	start := int(n.StartPoint().Row) + 1
	end := int(n.EndPoint().Row) + 1
	if n.EndPoint().Column == 0 && end > start {
		end--
	}
	return start, end
}

// named returns the named, non-comment children of n.
func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() &&
		a.EndByte() == b.EndByte() &&
		a.Type() == b.Type()
}

// except returns nodes minus any of skip.
func except(nodes []*sitter.Node, skip ...*sitter.Node) []*sitter.Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		keep := true
		for _, s := range skip {
			if sameNode(n, s) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, n)
		}
	}
	return out
}

func (c *converter) program(root *sitter.Node) *syntax.Node {
	start, end := lines(root)
	return syntax.New(syntax.KindProgram, "", start, end, c.convertAll(named(root))...)
}

func (c *converter) convertAll(nodes []*sitter.Node) []*syntax.Node {
	out := make([]*syntax.Node, 0, len(nodes))
	for _, n := range nodes {
		if converted := c.convert(n); converted != nil {
			out = append(out, converted)
		}
	}
	return out
}

func (c *converter) convert(n *sitter.Node) *syntax.Node {
	if n == nil {
		return nil
	}

	start, end := lines(n)
	typ := n.Type()

	if kind, ok := kindByType[typ]; ok {
		return syntax.New(kind, "", start, end, c.convertAll(named(n))...)
	}
	if sequenceTypes[typ] {
		return c.sequence(named(n), n)
	}

	switch typ {
	case "comment":
		return nil
	case "class":
		return c.class(n)
	case "module":
		return c.module(n)
	case "singleton_class":
		return c.singletonClass(n)
	case "method":
		return c.method(n)
	case "singleton_method":
		return c.singletonMethod(n)
	case "call":
		return c.call(n)
	case "identifier":
		return c.identifier(n)
	case "constant":
		return syntax.New(syntax.KindConst, c.text(n), start, end, nil)
	case "scope_resolution":
		var scope *syntax.Node
		if s := n.ChildByFieldName("scope"); s != nil {
			scope = c.convert(s)
		}
		return syntax.New(syntax.KindConst, c.text(n.ChildByFieldName("name")), start, end, scope)
	case "instance_variable":
		return syntax.New(syntax.KindIvar, c.text(n), start, end)
	case "self":
		return syntax.New(syntax.KindSelf, "", start, end)
	case "super":
		return syntax.New(syntax.KindZSuper, "", start, end)
	case "simple_symbol":
		return syntax.New(syntax.KindSym, strings.TrimPrefix(c.text(n), ":"), start, end)
	case "hash_key_symbol":
		return syntax.New(syntax.KindSym, c.text(n), start, end)
	case "delimited_symbol":
		return syntax.New(syntax.KindSym, strings.Trim(strings.TrimPrefix(c.text(n), ":"), `"'`), start, end)
	case "string":
		return c.str(n)
	case "assignment", "operator_assignment":
		return c.assignment(n)
	case "binary":
		return c.binary(n)
	case "unary":
		op := c.text(n.ChildByFieldName("operator"))
		return syntax.New(syntax.KindSend, op, start, end, c.convert(n.ChildByFieldName("operand")))
	case "for":
		return c.forLoop(n)
	case "case":
		return c.caseExpr(n)
	case "rescue_modifier":
		body := c.convert(n.ChildByFieldName("body"))
		handler := c.convert(n.ChildByFieldName("handler"))
		return syntax.New(syntax.KindRescue, "", start, end, body,
			syntax.New(syntax.KindResBody, "", start, end, handler))
	case "lambda":
		args := c.params(n.ChildByFieldName("parameters"), start, end)
		var body *syntax.Node
		if b := n.ChildByFieldName("body"); b != nil {
			body = c.body(b, b.ChildByFieldName("parameters"))
		}
		return syntax.New(syntax.KindOther, typ, start, end, args, body)
	case "element_reference":
		object := n.ChildByFieldName("object")
		children := []*syntax.Node{c.convert(object)}
		children = append(children, c.convertAll(except(named(n), object))...)
		return syntax.New(syntax.KindSend, "[]", start, end, children...)
	default:
		return syntax.New(syntax.KindOther, typ, start, end, c.convertAll(named(n))...)
	}
}

// sequence converts a statement list. Rescue clauses wrap the preceding
// statements in one Rescue node; an ensure clause wraps the result again.
func (c *converter) sequence(nodes []*sitter.Node, parent *sitter.Node) *syntax.Node {
	start, end := lines(parent)

	var stmts, clauses []*syntax.Node
	var elseBody, ensureBody *syntax.Node
	for _, n := range nodes {
		switch n.Type() {
		case "rescue":
			clauses = append(clauses, c.rescueClause(n))
		case "else":
			if len(clauses) > 0 {
				elseBody = c.convert(n)
				continue
			}
			stmts = append(stmts, c.convert(n))
		case "ensure":
			ensureBody = c.convert(n)
		default:
			if converted := c.convert(n); converted != nil {
				stmts = append(stmts, converted)
			}
		}
	}

	var body *syntax.Node
	switch len(stmts) {
	case 0:
	case 1:
		body = stmts[0]
	default:
		body = syntax.New(syntax.KindBegin, "", start, end, stmts...)
	}

	if len(clauses) > 0 {
		children := append([]*syntax.Node{body}, clauses...)
		children = append(children, elseBody)
		body = syntax.New(syntax.KindRescue, "", start, end, children...)
	}
	if ensureBody != nil {
		body = syntax.New(syntax.KindOther, "ensure", start, end, body, ensureBody)
	}
	return body
}

func (c *converter) rescueClause(n *sitter.Node) *syntax.Node {
	start, end := lines(n)

	var children []*syntax.Node
	if exceptions := n.ChildByFieldName("exceptions"); exceptions != nil {
		children = append(children, c.convertAll(named(exceptions))...)
	}
	if variable := n.ChildByFieldName("variable"); variable != nil {
		for _, v := range named(variable) {
			if v.Type() == "identifier" {
				c.declare(c.text(v))
			}
		}
	}
	children = append(children, c.convert(n.ChildByFieldName("body")))
	return syntax.New(syntax.KindResBody, "", start, end, children...)
}

// body converts the statements of a definition. Depending on the grammar
// version the statements sit under a "body" field or directly under n, next
// to the nodes listed in skip.
func (c *converter) body(n *sitter.Node, skip ...*sitter.Node) *syntax.Node {
	if b := n.ChildByFieldName("body"); b != nil {
		if sequenceTypes[b.Type()] {
			return c.sequence(named(b), b)
		}
		return c.convert(b)
	}

	stmts := except(named(n), skip...)
	if len(stmts) == 0 {
		return nil
	}
	return c.sequence(stmts, n)
}

func (c *converter) class(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	nameNode := n.ChildByFieldName("name")
	superNode := n.ChildByFieldName("superclass")

	var super *syntax.Node
	if superNode != nil {
		if exprs := named(superNode); len(exprs) > 0 {
			super = c.convert(exprs[0])
		}
	}

	c.pushScope()
	defer c.popScope()
	return syntax.New(syntax.KindClass, "", start, end,
		c.convert(nameNode), super, c.body(n, nameNode, superNode))
}

func (c *converter) module(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	nameNode := n.ChildByFieldName("name")

	c.pushScope()
	defer c.popScope()
	return syntax.New(syntax.KindModule, "", start, end, c.convert(nameNode), c.body(n, nameNode))
}

func (c *converter) singletonClass(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	value := n.ChildByFieldName("value")

	c.pushScope()
	defer c.popScope()
	return syntax.New(syntax.KindSClass, "", start, end, c.convert(value), c.body(n, value))
}

func (c *converter) method(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	nameNode := n.ChildByFieldName("name")
	paramsNode := n.ChildByFieldName("parameters")

	c.pushScope()
	defer c.popScope()
	args := c.params(paramsNode, start, end)
	return syntax.New(syntax.KindDef, c.text(nameNode), start, end, args, c.body(n, nameNode, paramsNode))
}

func (c *converter) singletonMethod(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	object := n.ChildByFieldName("object")
	nameNode := n.ChildByFieldName("name")
	paramsNode := n.ChildByFieldName("parameters")

	target := c.convert(object)
	c.pushScope()
	defer c.popScope()
	args := c.params(paramsNode, start, end)
	return syntax.New(syntax.KindDefs, c.text(nameNode), start, end,
		target, args, c.body(n, object, nameNode, paramsNode))
}

// params converts a parameter list and declares every parameter as a local.
func (c *converter) params(n *sitter.Node, start, end int) *syntax.Node {
	args := syntax.New(syntax.KindArgs, "", start, end)
	if n == nil {
		return args
	}
	args.StartLine, args.EndLine = lines(n)

	for _, p := range named(n) {
		kind, name, ok := c.param(p)
		if !ok {
			continue
		}
		c.declare(name)
		pStart, pEnd := lines(p)
		args.Children = append(args.Children, syntax.New(kind, name, pStart, pEnd))
	}
	return args
}

func (c *converter) param(p *sitter.Node) (syntax.Kind, string, bool) {
	name := c.text(p.ChildByFieldName("name"))

	switch p.Type() {
	case "identifier":
		return syntax.KindArg, c.text(p), true
	case "destructured_parameter":
		for _, id := range named(p) {
			if id.Type() == "identifier" {
				c.declare(c.text(id))
			}
		}
		return syntax.KindArg, c.text(p), true
	case "optional_parameter":
		return syntax.KindOptArg, name, true
	case "splat_parameter":
		return syntax.KindRestArg, name, true
	case "hash_splat_parameter":
		return syntax.KindKwRestArg, name, true
	case "block_parameter":
		return syntax.KindBlockArg, name, true
	case "keyword_parameter":
		if p.ChildByFieldName("value") != nil {
			return syntax.KindKwOptArg, name, true
		}
		return syntax.KindKwArg, name, true
	case "forward_parameter":
		return syntax.KindRestArg, "...", true
	default:
		return syntax.KindOther, "", false
	}
}

func (c *converter) call(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	receiver := n.ChildByFieldName("receiver")
	methodNode := n.ChildByFieldName("method")
	argsNode := n.ChildByFieldName("arguments")
	blockNode := n.ChildByFieldName("block")

	args := c.arguments(argsNode)

	var node *syntax.Node
	switch {
	case methodNode != nil && methodNode.Type() == "super":
		node = syntax.New(syntax.KindSuper, "", start, end, args...)
	case receiver == nil && visibilityKeywords[c.text(methodNode)]:
		node = syntax.New(syntax.KindVisibility, c.text(methodNode), start, end, args...)
	default:
		name := c.text(methodNode)
		if methodNode == nil {
			// recv.(args)
			name = "call"
		}
		children := append([]*syntax.Node{c.convert(receiver)}, args...)
		node = syntax.New(syntax.KindSend, name, start, end, children...)
	}

	if blockNode == nil {
		return node
	}
	return c.block(node, blockNode, start, end)
}

func (c *converter) arguments(n *sitter.Node) []*syntax.Node {
	if n == nil {
		return nil
	}
	return c.convertAll(named(n))
}

func (c *converter) block(call *syntax.Node, n *sitter.Node, start, end int) *syntax.Node {
	paramsNode := n.ChildByFieldName("parameters")
	args := c.params(paramsNode, start, end)
	return syntax.New(syntax.KindBlock, "", start, end, call, args, c.body(n, paramsNode))
}

// identifier converts a bare identifier: a local variable read when the
// name is known in the current scope, a visibility declaration for
// public/private/protected, otherwise a receiverless call.
func (c *converter) identifier(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	name := c.text(n)

	switch {
	case c.isLocal(name):
		return syntax.New(syntax.KindLvar, name, start, end)
	case visibilityKeywords[name]:
		return syntax.New(syntax.KindVisibility, name, start, end)
	default:
		return syntax.New(syntax.KindSend, name, start, end, nil)
	}
}

func (c *converter) str(n *sitter.Node) *syntax.Node {
	start, end := lines(n)

	var value strings.Builder
	var parts []*syntax.Node
	for _, child := range named(n) {
		switch child.Type() {
		case "string_content", "escape_sequence":
			value.WriteString(c.text(child))
		default:
			if converted := c.convert(child); converted != nil {
				parts = append(parts, converted)
			}
		}
	}
	return syntax.New(syntax.KindStr, value.String(), start, end, parts...)
}

func (c *converter) assignment(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")

	if left != nil {
		switch left.Type() {
		case "identifier":
			name := c.text(left)
			c.declare(name)
			return syntax.New(syntax.KindLvasgn, name, start, end, c.convert(right))
		case "instance_variable":
			return syntax.New(syntax.KindIvasgn, c.text(left), start, end, c.convert(right))
		case "left_assignment_list", "destructured_left_assignment":
			c.declareTargets(left)
		}
	}

	return syntax.New(syntax.KindOther, n.Type(), start, end, c.convert(left), c.convert(right))
}

// declareTargets declares every identifier of a multiple-assignment target.
func (c *converter) declareTargets(n *sitter.Node) {
	for _, child := range named(n) {
		switch child.Type() {
		case "identifier":
			c.declare(c.text(child))
		case "rest_assignment", "destructured_left_assignment", "left_assignment_list":
			c.declareTargets(child)
		}
	}
}

func (c *converter) binary(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	left := c.convert(n.ChildByFieldName("left"))
	right := c.convert(n.ChildByFieldName("right"))

	switch op := c.text(n.ChildByFieldName("operator")); op {
	case "&&", "and":
		return syntax.New(syntax.KindAnd, "", start, end, left, right)
	case "||", "or":
		return syntax.New(syntax.KindOr, "", start, end, left, right)
	default:
		return syntax.New(syntax.KindSend, op, start, end, left, right)
	}
}

func (c *converter) forLoop(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	pattern := n.ChildByFieldName("pattern")
	if pattern != nil {
		if pattern.Type() == "identifier" {
			c.declare(c.text(pattern))
		} else {
			c.declareTargets(pattern)
		}
	}

	value := n.ChildByFieldName("value")
	if value != nil && value.Type() == "in" {
		if exprs := named(value); len(exprs) > 0 {
			value = exprs[0]
		}
	}
	return syntax.New(syntax.KindFor, "", start, end,
		c.convert(pattern), c.convert(value), c.convert(n.ChildByFieldName("body")))
}

func (c *converter) caseExpr(n *sitter.Node) *syntax.Node {
	start, end := lines(n)
	value := n.ChildByFieldName("value")

	children := []*syntax.Node{c.convert(value)}
	var elseBody *syntax.Node
	for _, child := range except(named(n), value) {
		switch child.Type() {
		case "when":
			children = append(children, c.convert(child))
		case "else":
			elseBody = c.convert(child)
		}
	}
	return syntax.New(syntax.KindCase, "", start, end, append(children, elseBody)...)
}
