package runner

import (
	"fmt"

	"github.com/pthm/solidscore/internal/config"
	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/scorer"
)

// TotalMetric names the weighted total in a Violation.
const TotalMetric = "total"

// Violation is one score below its configured minimum.
type Violation struct {
	ClassName string
	FilePath  string
	Metric    string
	Score     float64
	Threshold float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s (%s): %s %.1f is below %.1f", v.ClassName, v.FilePath, v.Metric, v.Score, v.Threshold)
}

// Gate returns every threshold a result fails, in result order. An empty
// result set passes.
func Gate(results []scorer.Result, thresholds config.Thresholds) []Violation {
	var violations []Violation
	for _, r := range results {
		if total := r.Total(); total < thresholds.Total {
			violations = append(violations, violation(r, TotalMetric, total, thresholds.Total))
		}
		for _, p := range model.Principles {
			if score, threshold := r.Score(p), thresholds.Of(p); score < threshold {
				violations = append(violations, violation(r, p.String(), score, threshold))
			}
		}
	}
	return violations
}

// Failing returns the results with at least one violation.
func Failing(results []scorer.Result, thresholds config.Thresholds) []scorer.Result {
	var failing []scorer.Result
	for _, r := range results {
		if len(Gate([]scorer.Result{r}, thresholds)) > 0 {
			failing = append(failing, r)
		}
	}
	return failing
}

func violation(r scorer.Result, metric string, score, threshold float64) Violation {
	return Violation{
		ClassName: r.ClassName,
		FilePath:  r.FilePath,
		Metric:    metric,
		Score:     score,
		Threshold: threshold,
	}
}
