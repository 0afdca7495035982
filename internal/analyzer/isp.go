package analyzer

import "github.com/pthm/solidscore/internal/model"

const cohesionPenalty = 15

// ISPAnalyzer penalizes wide public interfaces.
type ISPAnalyzer struct{}

func (a *ISPAnalyzer) Principle() model.Principle {
	return model.ISP
}

func (a *ISPAnalyzer) Name() string {
	return "isp-surface"
}

func (a *ISPAnalyzer) Description() string {
	return "Scores the size, mixin count and cohesion of the public interface"
}

func (a *ISPAnalyzer) Analyze(ci *model.ClassInfo) float64 {
	public := ci.PublicMethods()
	if len(public) == 0 {
		return MaxScore
	}

	score := surfaceScore(len(public))
	score -= mixinPenalty(ci.MixinCount())
	if len(public) > 2 && LCOM4(ci.WithMethods(public)) > 2 {
		score -= cohesionPenalty
	}
	return clamp(score)
}

func surfaceScore(n int) float64 {
	switch {
	case n <= 5:
		return 100
	case n <= 10:
		return 80
	case n <= 15:
		return 60
	case n <= 20:
		return 40
	default:
		return 20
	}
}

func mixinPenalty(n int) float64 {
	switch {
	case n >= 7:
		return 20
	case n >= 4:
		return 10
	default:
		return 0
	}
}
