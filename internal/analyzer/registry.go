package analyzer

import "github.com/pthm/solidscore/internal/model"

// Options tunes the configurable analyzers.
type Options struct {
	// Whitelist replaces DefaultWhitelist when non-nil.
	Whitelist []string
	LSP       LSPOptions
}

// DefaultOptions returns the options the default registry is built with.
func DefaultOptions() Options {
	return Options{
		Whitelist: DefaultWhitelist(),
		LSP:       DefaultLSPOptions(),
	}
}

// Registry holds one analyzer per principle.
type Registry struct {
	analyzers []Analyzer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		analyzers: make([]Analyzer, 0, len(model.Principles)),
	}
}

// Register adds an analyzer, replacing any analyzer already registered for
// the same principle.
func (r *Registry) Register(a Analyzer) {
	for i, existing := range r.analyzers {
		if existing.Principle() == a.Principle() {
			r.analyzers[i] = a
			return
		}
	}
	r.analyzers = append(r.analyzers, a)
}

// Analyzers returns the registered analyzers in registration order.
func (r *Registry) Analyzers() []Analyzer {
	return r.analyzers
}

// Get returns the analyzer for a principle, or nil.
func (r *Registry) Get(p model.Principle) Analyzer {
	for _, a := range r.analyzers {
		if a.Principle() == p {
			return a
		}
	}
	return nil
}

// DefaultRegistry returns a registry with all five analyzers at their
// default settings.
func DefaultRegistry() *Registry {
	return NewRegistryWithOptions(DefaultOptions())
}

// NewRegistryWithOptions returns a registry with all five analyzers.
func NewRegistryWithOptions(opts Options) *Registry {
	r := NewRegistry()
	r.Register(&SRPAnalyzer{})
	r.Register(&OCPAnalyzer{})
	r.Register(NewLSPAnalyzer(opts.LSP))
	r.Register(&ISPAnalyzer{})
	r.Register(NewDIPAnalyzer(opts.Whitelist))
	return r
}
