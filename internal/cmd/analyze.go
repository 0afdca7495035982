package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/solidscore/internal/advisor"
	"github.com/pthm/solidscore/internal/config"
	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/reporter"
	"github.com/pthm/solidscore/internal/runner"
	"github.com/pthm/solidscore/internal/scorer"
	"github.com/pthm/solidscore/internal/ui"
)

// ErrGateFailed is returned when a threshold or diff policy is not met.
var ErrGateFailed = errors.New("quality gate failed")

var (
	minScore     float64
	minPrinciple = make(map[model.Principle]*float64)
	diffRef      string
	maxDecrease  float64
	exclude      string
	workers      int
	deep         bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Score Ruby classes against the SOLID principles",
	Long: `Score every class in the given files and directories (default: the
configured paths, or the current directory).

The command exits non-zero when a class scores below a configured minimum
or, in diff mode, when a class got worse than the diff policy allows.

Examples:
  solidscore analyze app lib
  solidscore analyze --min-score 70 --min-dip 50 .
  solidscore analyze --diff origin/main --max-decrease 5
  solidscore analyze --format json . > scores.json
  solidscore analyze --deep --min-score 60 app`,
	RunE: runAnalyze,
}

func init() {
	flags := analyzeCmd.Flags()
	flags.Float64Var(&minScore, "min-score", 0, "Minimum total score")
	for _, p := range model.Principles {
		v := new(float64)
		minPrinciple[p] = v
		flags.Float64Var(v, "min-"+p.String(), 0, fmt.Sprintf("Minimum %s score", strings.ToUpper(p.String())))
	}
	flags.StringVar(&diffRef, "diff", "", "Only analyze classes changed since this git reference")
	flags.Float64Var(&maxDecrease, "max-decrease", 0, "Maximum total score decrease per class in diff mode")
	flags.StringVar(&exclude, "exclude", "", "Exclude patterns (comma-separated)")
	flags.IntVar(&workers, "workers", 0, "Parallel parser workers (default: number of CPUs)")
	flags.BoolVar(&deep, "deep", false, "Ask Claude for refactoring advice on failing classes")
	RootCmd.AddCommand(analyzeCmd)
}

func analyzeOverrides(cmd *cobra.Command, args []string) config.Overrides {
	flags := cmd.Flags()
	o := config.Overrides{
		Paths:   args,
		DiffRef: diffRef,
		Exclude: exclude,
		Workers: workers,
	}
	if flags.Changed("min-score") {
		o.MinScore = &minScore
	}
	if flags.Changed("max-decrease") {
		o.MaxDecrease = &maxDecrease
	}
	for p, v := range minPrinciple {
		if flags.Changed("min-" + p.String()) {
			if o.MinScores == nil {
				o.MinScores = make(map[model.Principle]float64)
			}
			o.MinScores[p] = *v
		}
	}
	return o
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(analyzeOverrides(cmd, args))
	if err != nil {
		return err
	}
	u := newUI(cmd, cfg)

	rep, err := reporter.New(cfg.Format, u.Writer, u.Styles)
	if err != nil {
		return err
	}

	opts := []runner.Option{}
	progress := u.StartProgress()
	if progress != nil {
		opts = append(opts, runner.WithObserver(progress))
	}
	r := runner.New(cfg, opts...)

	ctx := cmd.Context()
	result, err := r.Run(ctx)
	var regressions []runner.Regression
	if err == nil && cfg.Diff.Enabled() {
		regressions, err = r.CompareBaseline(ctx, result.Results)
	}
	progress.Done(err)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		for _, skipped := range result.Skipped {
			warn(u, "skipped %s: %v", skipped.Path, skipped.Err)
		}
	}

	if err := rep.Report(result.Results); err != nil {
		return err
	}

	violations := runner.Gate(result.Results, cfg.Thresholds)
	printFailures(u, violations, regressions)

	if deep {
		adviseFailing(ctx, u, cfg, result)
	}

	if n := len(violations) + len(regressions); n > 0 {
		return fmt.Errorf("%w: %d problem(s)", ErrGateFailed, n)
	}
	return nil
}

func printFailures(u *ui.UI, violations []runner.Violation, regressions []runner.Regression) {
	if len(violations) == 0 && len(regressions) == 0 {
		return
	}

	s := u.Styles
	fmt.Fprintln(u.ErrWriter)
	for _, v := range violations {
		fmt.Fprintln(u.ErrWriter, s.Render(s.Error, s.IconError+" "+v.String()))
	}
	for _, r := range regressions {
		fmt.Fprintln(u.ErrWriter, s.Render(s.Error, s.IconError+" "+r.String()))
	}
}

// adviseFailing asks the advisor about every class failing the thresholds,
// or scoring below the fair band when no threshold is configured. Failures
// are reported as warnings and never change the outcome.
func adviseFailing(ctx context.Context, u *ui.UI, cfg *config.Config, result *runner.Report) {
	requests := adviceRequests(cfg, result)
	if len(requests) == 0 {
		return
	}

	cwd, _ := os.Getwd()
	adv, err := advisor.New(cwd)
	if err != nil {
		warn(u, "deep analysis disabled: %v", err)
		return
	}

	out := u.Writer
	if u.IsMachine() {
		out = u.ErrWriter
	}

	for _, req := range requests {
		spinner := u.StartSimpleSpinner(u.ErrWriter, fmt.Sprintf("Asking %s about %s...", adv.Name(), req.Class.Name))
		advice, err := adv.Advise(ctx, req)
		spinner.Stop()
		if err != nil {
			warn(u, "advice for %s failed: %v", req.Class.Name, err)
			if errors.Is(err, advisor.ErrUnavailable) {
				return
			}
			continue
		}
		printAdvice(out, u.Styles, advice)
	}
}

func adviceRequests(cfg *config.Config, result *runner.Report) []advisor.Request {
	gate := cfg.Thresholds
	if gate == (config.Thresholds{}) {
		gate.Total = ui.FairScore
	}

	var requests []advisor.Request
	sources := make(map[string][]byte)
	for i, res := range result.Results {
		if len(runner.Gate([]scorer.Result{res}, gate)) == 0 {
			continue
		}
		ci := result.Classes[i]

		src, ok := sources[ci.FilePath]
		if !ok {
			src, _ = os.ReadFile(ci.FilePath)
			sources[ci.FilePath] = src
		}
		requests = append(requests, advisor.Request{
			Class:  ci,
			Result: res,
			Source: advisor.ClassSource(src, ci.LineStart, ci.LineEnd),
		})
	}
	return requests
}

func printAdvice(w io.Writer, s *ui.Styles, advice *advisor.Advice) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Render(s.Header, "Advice for "+advice.ClassName)+" "+s.Render(s.Path, advice.FilePath))
	if len(advice.Suggestions) == 0 {
		fmt.Fprintln(w, "  "+s.Render(s.Success, s.IconSuccess+" no suggestions"))
		return
	}
	for _, sg := range advice.Suggestions {
		where := ""
		if sg.Line > 0 {
			where = fmt.Sprintf(" line %d:", sg.Line)
		}
		fmt.Fprintf(w, "  %s%s %s\n", s.Render(s.Info, "["+strings.ToUpper(sg.Principle)+"]"), where, sg.Message)
		if sg.Refactoring != "" {
			fmt.Fprintf(w, "      %s %s\n", s.Render(s.Subheader, "->"), sg.Refactoring)
		}
	}
}
