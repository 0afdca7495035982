package analyzer

import "github.com/pthm/solidscore/internal/model"

var typeCheckMethods = []string{"is_a?", "kind_of?", "instance_of?"}

const (
	typeCheckPenalty    = 10
	maxTypeCheckPenalty = 40
	caseArmPenalty      = 5
	maxCaseArmPenalty   = 30
	extensionBonus      = 10
	maxExtensionBonus   = 20
)

// OCPAnalyzer penalizes branching on types and rewards extension points.
type OCPAnalyzer struct{}

func (a *OCPAnalyzer) Principle() model.Principle {
	return model.OCP
}

func (a *OCPAnalyzer) Name() string {
	return "ocp-branching"
}

func (a *OCPAnalyzer) Description() string {
	return "Penalizes conditional density, type checks and case arms; rewards abstract methods and block parameters"
}

func (a *OCPAnalyzer) Analyze(ci *model.ClassInfo) float64 {
	if len(ci.Methods) == 0 {
		return MaxScore
	}

	score := MaxScore
	score -= conditionalDensityPenalty(ci)
	score -= min(float64(typeChecks(ci)*typeCheckPenalty), maxTypeCheckPenalty)
	score -= min(float64(caseArms(ci)*caseArmPenalty), maxCaseArmPenalty)
	score += min(float64(extensionPoints(ci)*extensionBonus), maxExtensionBonus)

	return clamp(score)
}

func conditionalDensityPenalty(ci *model.ClassInfo) float64 {
	branches := 0
	for _, m := range ci.Methods {
		branches += m.Complexity - 1
	}

	switch density := float64(branches) / float64(len(ci.Methods)); {
	case density > 1.0:
		return 40
	case density > 0.5:
		return 20
	default:
		return 0
	}
}

func typeChecks(ci *model.ClassInfo) int {
	n := 0
	for _, m := range ci.Methods {
		n += m.CountCalls(typeCheckMethods...)
	}
	return n
}

func caseArms(ci *model.ClassInfo) int {
	n := 0
	for _, m := range ci.Methods {
		n += m.CaseArms
	}
	return n
}

// extensionPoints counts abstract methods plus methods taking a block.
func extensionPoints(ci *model.ClassInfo) int {
	n := 0
	for _, m := range ci.Methods {
		if m.RaisesType(NotImplementedMarker) {
			n++
		}
		if m.HasBlockParam() {
			n++
		}
	}
	return n
}
