package scorer

import "github.com/pthm/solidscore/internal/model"

// Confidence levels express how much a principle's heuristic can be trusted.
const (
	ConfidenceHigh       = "high"
	ConfidenceMediumHigh = "medium-high"
	ConfidenceLowMedium  = "low-medium"
	ConfidenceLow        = "low"
)

var confidence = map[model.Principle]string{
	model.SRP: ConfidenceHigh,
	model.OCP: ConfidenceLow,
	model.LSP: ConfidenceLowMedium,
	model.ISP: ConfidenceMediumHigh,
	model.DIP: ConfidenceHigh,
}

// Weights are the per-principle factors of the total score.
type Weights struct {
	SRP float64 `yaml:"srp" json:"srp"`
	OCP float64 `yaml:"ocp" json:"ocp"`
	LSP float64 `yaml:"lsp" json:"lsp"`
	ISP float64 `yaml:"isp" json:"isp"`
	DIP float64 `yaml:"dip" json:"dip"`
}

// DefaultWeights returns the stock weighting, which sums to 1.
func DefaultWeights() Weights {
	return Weights{SRP: 0.30, OCP: 0.15, LSP: 0.10, ISP: 0.20, DIP: 0.25}
}

// Of returns the weight of one principle.
func (w Weights) Of(p model.Principle) float64 {
	switch p {
	case model.SRP:
		return w.SRP
	case model.OCP:
		return w.OCP
	case model.LSP:
		return w.LSP
	case model.ISP:
		return w.ISP
	case model.DIP:
		return w.DIP
	default:
		return 0
	}
}

// Sum is the total of all weights.
func (w Weights) Sum() float64 {
	return w.SRP + w.OCP + w.LSP + w.ISP + w.DIP
}

// Result is the score card of one class.
type Result struct {
	ClassName string
	FilePath  string
	LineStart int
	LineEnd   int

	SRP float64
	OCP float64
	LSP float64
	ISP float64
	DIP float64

	Weights Weights
}

// Score returns the score of one principle.
func (r Result) Score(p model.Principle) float64 {
	switch p {
	case model.SRP:
		return r.SRP
	case model.OCP:
		return r.OCP
	case model.LSP:
		return r.LSP
	case model.ISP:
		return r.ISP
	case model.DIP:
		return r.DIP
	default:
		return 0
	}
}

// Total is the weighted sum of the principle scores. It is not normalized
// by the weight sum.
func (r Result) Total() float64 {
	total := 0.0
	for _, p := range model.Principles {
		total += r.Score(p) * r.Weights.Of(p)
	}
	return total
}

// Confidence returns the fixed confidence level of every principle, keyed
// by principle name.
func (r Result) Confidence() map[string]string {
	out := make(map[string]string, len(confidence))
	for p, level := range confidence {
		out[p.String()] = level
	}
	return out
}

// ConfidenceOf returns the confidence level of one principle.
func ConfidenceOf(p model.Principle) string {
	return confidence[p]
}
