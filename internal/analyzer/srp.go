package analyzer

import "github.com/pthm/solidscore/internal/model"

// Data classes are never scored below this floor.
const dataClassFloor = 90.0

// SRPAnalyzer measures cohesion with LCOM4.
type SRPAnalyzer struct{}

func (a *SRPAnalyzer) Principle() model.Principle {
	return model.SRP
}

func (a *SRPAnalyzer) Name() string {
	return "srp-lcom4"
}

func (a *SRPAnalyzer) Description() string {
	return "Scores cohesion by counting groups of methods that share no state or calls (LCOM4)"
}

func (a *SRPAnalyzer) Analyze(ci *model.ClassInfo) float64 {
	if len(analyzableMethods(ci)) == 0 {
		return MaxScore
	}

	score := lcom4Score(LCOM4(ci))
	if ci.IsDataClass() {
		score = max(score, dataClassFloor)
	}

	score -= wmcPenalty(ci)
	score -= sizePenalty(ci)

	return clamp(score)
}

// LCOM4 is the number of connected components of the method graph, where
// two methods are linked if they share an instance variable or either calls
// the other by name. Constructors and empty methods are left out. Classes
// with at most one such method have an LCOM4 of 1.
func LCOM4(ci *model.ClassInfo) int {
	methods := analyzableMethods(ci)
	if len(methods) <= 1 {
		return 1
	}

	adjacency := make(map[string][]string)
	for i, m1 := range methods {
		for _, m2 := range methods[i+1:] {
			if m1.SharesInstanceVariables(m2) || m1.Calls(m2.Name) || m2.Calls(m1.Name) {
				adjacency[m1.Name] = append(adjacency[m1.Name], m2.Name)
				adjacency[m2.Name] = append(adjacency[m2.Name], m1.Name)
			}
		}
	}

	visited := make(map[string]bool)
	components := 0
	for _, m := range methods {
		if visited[m.Name] {
			continue
		}
		components++

		queue := []string{m.Name}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			if visited[current] {
				continue
			}
			visited[current] = true
			for _, neighbor := range adjacency[current] {
				if !visited[neighbor] {
					queue = append(queue, neighbor)
				}
			}
		}
	}
	return components
}

func analyzableMethods(ci *model.ClassInfo) []*model.MethodInfo {
	var methods []*model.MethodInfo
	for _, m := range ci.Methods {
		if m.Name == model.ConstructorName || m.IsEmpty() {
			continue
		}
		methods = append(methods, m)
	}
	return methods
}

func lcom4Score(lcom4 int) float64 {
	switch lcom4 {
	case 1:
		return 100
	case 2:
		return 60
	case 3:
		return 30
	default:
		return 0
	}
}

// wmcPenalty penalizes the weighted method count (summed complexity).
func wmcPenalty(ci *model.ClassInfo) float64 {
	wmc := 0
	for _, m := range ci.Methods {
		wmc += m.Complexity
	}

	switch {
	case wmc > 40:
		return 20
	case wmc > 20:
		return 10
	default:
		return 0
	}
}

func sizePenalty(ci *model.ClassInfo) float64 {
	switch lines := ci.LineCount(); {
	case lines > 400:
		return 20
	case lines > 200:
		return 10
	default:
		return 0
	}
}
