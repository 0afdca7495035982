package analyzer

import "github.com/pthm/solidscore/internal/model"

// method builds a method spanning start..end with complexity 1.
func method(name string, start, end int) *model.MethodInfo {
	return &model.MethodInfo{Name: name, LineStart: start, LineEnd: end, Complexity: 1}
}

func withIvars(m *model.MethodInfo, ivars ...string) *model.MethodInfo {
	m.InstanceVariables = ivars
	return m
}

func withCalls(m *model.MethodInfo, calls ...string) *model.MethodInfo {
	m.CalledMethods = append(m.CalledMethods, calls...)
	return m
}

func withSites(m *model.MethodInfo, sites ...model.CallSite) *model.MethodInfo {
	m.CallSites = append(m.CallSites, sites...)
	for _, s := range sites {
		m.CalledMethods = append(m.CalledMethods, s.Method)
	}
	return m
}

func newOf(typ string) model.CallSite {
	return model.CallSite{Method: model.InstantiationMethod, Receiver: model.NamedTypeReceiver(typ)}
}

func class(name string, methods ...*model.MethodInfo) *model.ClassInfo {
	return &model.ClassInfo{Name: name, LineStart: 1, LineEnd: 50, Methods: methods}
}
