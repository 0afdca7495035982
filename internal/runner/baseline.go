package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm/solidscore/internal/extractor"
	"github.com/pthm/solidscore/internal/scorer"
)

// ErrNoDiff indicates a baseline comparison outside diff mode.
var ErrNoDiff = errors.New("baseline comparison requires a diff reference")

// Regression is a class that got worse than the diff policy allows.
type Regression struct {
	ClassName string
	FilePath  string
	// Before is the total at the base reference; unset for new classes.
	Before float64
	After  float64
	New    bool
	// Limit is the allowed decrease, or the minimum for new classes.
	Limit float64
}

func (r Regression) String() string {
	if r.New {
		return fmt.Sprintf("%s (%s): new class scores %.1f, minimum is %.1f", r.ClassName, r.FilePath, r.After, r.Limit)
	}
	return fmt.Sprintf("%s (%s): total dropped from %.1f to %.1f (max decrease %.1f)",
		r.ClassName, r.FilePath, r.Before, r.After, r.Limit)
}

// CompareBaseline re-scores the base reference version of every file in
// results and reports classes whose total dropped by more than the allowed
// decrease, and new classes below the minimum. Classes are matched by name
// within a file.
func (r *Runner) CompareBaseline(ctx context.Context, results []scorer.Result) ([]Regression, error) {
	if r.diff == nil {
		return nil, ErrNoDiff
	}
	policy := r.cfg.Diff
	if policy.MaxDecrease == nil && policy.NewClassMin == nil {
		return nil, nil
	}

	r.observer.SetStage(StageBaseline)
	before := make(map[string]map[string]float64)
	var regressions []Regression
	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		totals, ok := before[res.FilePath]
		if !ok {
			totals = r.baselineTotals(ctx, res.FilePath)
			before[res.FilePath] = totals
		}

		after := res.Total()
		prev, existed := totals[res.ClassName]
		switch {
		case existed && policy.MaxDecrease != nil:
			if prev-after > *policy.MaxDecrease {
				regressions = append(regressions, Regression{
					ClassName: res.ClassName,
					FilePath:  res.FilePath,
					Before:    prev,
					After:     after,
					Limit:     *policy.MaxDecrease,
				})
			}
		case !existed && policy.NewClassMin != nil:
			if after < *policy.NewClassMin {
				regressions = append(regressions, Regression{
					ClassName: res.ClassName,
					FilePath:  res.FilePath,
					After:     after,
					New:       true,
					Limit:     *policy.NewClassMin,
				})
			}
		}
	}
	return regressions, nil
}

// baselineTotals scores a file as of the base reference. Files missing
// there, or failing to parse, have no baseline classes.
func (r *Runner) baselineTotals(ctx context.Context, path string) map[string]float64 {
	totals := make(map[string]float64)

	src, err := r.diff.SourceAt(ctx, path)
	if err != nil {
		r.logger.Debug("no baseline", slog.String("path", path), slog.Any("error", err))
		return totals
	}
	root, err := r.parser.Parse(ctx, src)
	if err != nil {
		r.logger.Debug("baseline does not parse", slog.String("path", path), slog.Any("error", err))
		return totals
	}

	for _, res := range r.scorer.ScoreAll(extractor.Extract(root, path)) {
		if _, dup := totals[res.ClassName]; !dup {
			totals[res.ClassName] = res.Total()
		}
	}
	return totals
}
