// Package scorer combines the principle analyzers into weighted results.
package scorer

import (
	"math"

	"github.com/pthm/solidscore/internal/analyzer"
	"github.com/pthm/solidscore/internal/model"
)

// Scorer runs every registered analyzer over a class. It holds no mutable
// state and may be shared between goroutines.
type Scorer struct {
	registry *analyzer.Registry
	weights  Weights
}

// New creates a scorer. A nil registry selects analyzer.DefaultRegistry.
func New(registry *analyzer.Registry, weights Weights) *Scorer {
	if registry == nil {
		registry = analyzer.DefaultRegistry()
	}
	return &Scorer{registry: registry, weights: weights}
}

// Default creates a scorer with the default analyzers and weights.
func Default() *Scorer {
	return New(nil, DefaultWeights())
}

// Weights returns the weights applied to every result.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score evaluates one class.
func (s *Scorer) Score(ci *model.ClassInfo) Result {
	r := Result{
		ClassName: ci.Name,
		FilePath:  ci.FilePath,
		LineStart: ci.LineStart,
		LineEnd:   ci.LineEnd,
		Weights:   s.weights,
	}

	for _, a := range s.registry.Analyzers() {
		score := a.Analyze(ci)
		switch a.Principle() {
		case model.SRP:
			r.SRP = score
		case model.OCP:
			r.OCP = score
		case model.LSP:
			r.LSP = score
		case model.ISP:
			r.ISP = score
		case model.DIP:
			r.DIP = score
		}
	}
	return r
}

// ScoreAll evaluates every class, preserving order.
func (s *Scorer) ScoreAll(classes []*model.ClassInfo) []Result {
	results := make([]Result, 0, len(classes))
	for _, ci := range classes {
		results = append(results, s.Score(ci))
	}
	return results
}

// Summary aggregates a set of results.
type Summary struct {
	TotalClasses int
	Average      Result
}

// AverageScore is the mean total, rounded to one decimal.
func (s Summary) AverageScore() float64 {
	return Round(s.Average.Total())
}

// Summarize averages every principle score across results. The averaged
// result carries the weights of the first result.
func Summarize(results []Result) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	avg := Result{ClassName: "Average", Weights: results[0].Weights}
	for _, r := range results {
		avg.SRP += r.SRP
		avg.OCP += r.OCP
		avg.LSP += r.LSP
		avg.ISP += r.ISP
		avg.DIP += r.DIP
	}
	n := float64(len(results))
	avg.SRP /= n
	avg.OCP /= n
	avg.LSP /= n
	avg.ISP /= n
	avg.DIP /= n

	return Summary{TotalClasses: len(results), Average: avg}
}

// Round rounds to one decimal.
func Round(v float64) float64 {
	return math.Round(v*10) / 10
}
