// Package analyzer scores a class descriptor against each SOLID principle.
//
// Analyzers are pure functions of a ClassInfo: they never fail, never mutate
// their input and always return a score in [0, 100] rounded to one decimal.
package analyzer

import (
	"math"

	"github.com/pthm/solidscore/internal/model"
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// NotImplementedMarker is the exception type that marks an abstract
// method. Raising it is an extension point, not a contract violation.
const NotImplementedMarker = "NotImplementedError"

// Analyzer scores one principle.
type Analyzer interface {
	Principle() model.Principle
	Name() string
	Description() string
	Analyze(ci *model.ClassInfo) float64
}

// clamp bounds score to [MinScore, MaxScore] and rounds it to one decimal.
func clamp(score float64) float64 {
	score = max(MinScore, min(MaxScore, score))
	return math.Round(score*10) / 10
}
