package extractor

import (
	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/syntax"
)

// raiseMethods are the calls whose constant argument is a raised type.
var raiseMethods = map[string]bool{
	"raise": true,
	"fail":  true,
}

// branchKinds each add one to a method's cyclomatic complexity.
var branchKinds = map[syntax.Kind]bool{
	syntax.KindIf:     true,
	syntax.KindWhile:  true,
	syntax.KindUntil:  true,
	syntax.KindFor:    true,
	syntax.KindWhen:   true,
	syntax.KindAnd:    true,
	syntax.KindOr:     true,
	syntax.KindRescue: true,
}

var paramKinds = map[syntax.Kind]model.ParamKind{
	syntax.KindArg:       model.ParamRequired,
	syntax.KindOptArg:    model.ParamOptional,
	syntax.KindRestArg:   model.ParamRest,
	syntax.KindKwArg:     model.ParamKeywordRequired,
	syntax.KindKwOptArg:  model.ParamKeywordOptional,
	syntax.KindKwRestArg: model.ParamKeywordRest,
	syntax.KindBlockArg:  model.ParamBlock,
}

func buildMethod(def *syntax.Node, vis model.Visibility) *model.MethodInfo {
	m := &model.MethodInfo{
		Name:       def.Value,
		Visibility: vis,
		LineStart:  def.StartLine,
		LineEnd:    max(def.EndLine, def.StartLine),
		Params:     params(def.Child(0)),
		Complexity: 1,
	}

	body := def.Child(1)
	if body == nil {
		return m
	}

	c := &bodyCollector{method: m, ivars: make(map[string]bool)}
	body.Walk(c.visit)
	return m
}

func params(args *syntax.Node) []model.Param {
	if args == nil {
		return nil
	}
	var out []model.Param
	for _, arg := range args.Children {
		if arg == nil {
			continue
		}
		if kind, ok := paramKinds[arg.Kind]; ok {
			out = append(out, model.Param{Kind: kind, Name: arg.Value})
		}
	}
	return out
}

// bodyCollector gathers per-method facts in a single traversal.
type bodyCollector struct {
	method *model.MethodInfo
	ivars  map[string]bool
}

func (c *bodyCollector) visit(n *syntax.Node) bool {
	m := c.method

	if branchKinds[n.Kind] {
		m.Complexity++
	}

	switch n.Kind {
	case syntax.KindIvar, syntax.KindIvasgn:
		if !c.ivars[n.Value] {
			c.ivars[n.Value] = true
			m.InstanceVariables = append(m.InstanceVariables, n.Value)
		}

	case syntax.KindSend:
		m.CalledMethods = append(m.CalledMethods, n.Value)
		m.CallSites = append(m.CallSites, model.CallSite{
			Method:   n.Value,
			Receiver: classifyReceiver(n.Child(0)),
		})
		if raiseMethods[n.Value] {
			if name := n.Child(1).ConstName(); name != "" {
				m.Raises = append(m.Raises, name)
			}
		}

	case syntax.KindSuper, syntax.KindZSuper:
		m.CallsSuper = true

	case syntax.KindCase:
		for _, child := range n.Children {
			if child.Is(syntax.KindWhen) {
				m.CaseArms++
			}
		}
	}

	return true
}

func classifyReceiver(n *syntax.Node) model.Receiver {
	if n == nil {
		return model.NoReceiver
	}

	switch n.Kind {
	case syntax.KindConst:
		return model.NamedTypeReceiver(n.ConstName())
	case syntax.KindIvar:
		return model.InstanceVarReceiver(n.Value)
	case syntax.KindLvar:
		return model.LocalVarReceiver(n.Value)
	case syntax.KindSelf:
		return model.SelfReceiver
	case syntax.KindSend:
		return model.ChainedReceiver
	default:
		return model.UnknownReceiver
	}
}
