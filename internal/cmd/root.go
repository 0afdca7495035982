package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm/solidscore/internal/config"
	"github.com/pthm/solidscore/internal/ui"
)

var (
	// Global flags
	verbose    bool
	format     string
	configPath string
)

// RootCmd is the solidscore command tree.
var RootCmd = &cobra.Command{
	Use:   "solidscore",
	Short: "SOLID principle scores for Ruby classes",
	Long: `solidscore statically analyzes Ruby classes and scores each one from
0 to 100 on the five SOLID principles, plus a weighted total.

Use it as a CI quality gate: thresholds set with flags or in
.solid-score.yml make the analyze command exit non-zero, and --diff
restricts the gate to classes touched since a git reference.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), verbose)
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Output format (terminal, json, markdown, html)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default "+config.DefaultFileName+")")
}

// setupLogging routes slog to w: warnings by default, everything with
// --verbose.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadConfig reads the configuration file and applies the global flags and
// any command specific overrides.
func loadConfig(o config.Overrides) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	o.Format = format
	cfg.Apply(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newUI creates the UI for one command run.
func newUI(cmd *cobra.Command, cfg *config.Config) *ui.UI {
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Format)
}

// warn prints a styled warning on the error writer.
func warn(u *ui.UI, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(u.ErrWriter, u.Styles.Render(u.Styles.Warning, u.Styles.IconWarning+" "+msg))
}
