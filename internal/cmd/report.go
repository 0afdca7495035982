package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/solidscore/internal/config"
	"github.com/pthm/solidscore/internal/reporter"
	"github.com/pthm/solidscore/internal/runner"
)

var reportCmd = &cobra.Command{
	Use:   "report [paths...]",
	Short: "Show the class model the analyzers see",
	Long: `Print every class found in the given paths with the facts extracted
from it: superclass, mixins, attributes, instance variables and, per
method, visibility, parameters, complexity and call sites.

This is the input of the scoring heuristics; use it to understand why a
class scored the way it did.

Examples:
  solidscore report app/models/user.rb
  solidscore report --format json app > classes.json`,
	RunE: runReport,
}

func init() {
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(config.Overrides{Paths: args})
	if err != nil {
		return err
	}
	u := newUI(cmd, cfg)

	rep, err := reporter.NewClassReporter(cfg.Format, u.Writer, u.Styles)
	if err != nil {
		return err
	}

	spinner := u.StartSimpleSpinner(u.ErrWriter, "Extracting classes...")
	result, err := runner.New(cfg).Run(cmd.Context())
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	for _, skipped := range result.Skipped {
		warn(u, "skipped %s: %v", skipped.Path, skipped.Err)
	}
	return rep.Report(result.Classes)
}
