// Package config loads solidscore settings from the embedded defaults, an
// optional YAML file and command line overrides, in that order.
package config

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/solidscore/internal/analyzer"
	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/scorer"
)

// DefaultFileName is the project configuration file looked up in the
// working directory.
const DefaultFileName = ".solid-score.yml"

//go:embed defaults.yaml
var defaultsFS embed.FS

// ErrInvalidConfig indicates a configuration value that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Output formats.
const (
	FormatTerminal = "terminal"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists the supported output formats.
var Formats = []string{FormatTerminal, FormatJSON, FormatMarkdown, FormatHTML}

// Thresholds are the minimum scores a class must reach.
type Thresholds struct {
	Total float64 `yaml:"total"`
	SRP   float64 `yaml:"srp"`
	OCP   float64 `yaml:"ocp"`
	LSP   float64 `yaml:"lsp"`
	ISP   float64 `yaml:"isp"`
	DIP   float64 `yaml:"dip"`
}

// Of returns the threshold of one principle.
func (t Thresholds) Of(p model.Principle) float64 {
	switch p {
	case model.SRP:
		return t.SRP
	case model.OCP:
		return t.OCP
	case model.LSP:
		return t.LSP
	case model.ISP:
		return t.ISP
	case model.DIP:
		return t.DIP
	default:
		return 0
	}
}

func (t *Thresholds) set(p model.Principle, v float64) {
	switch p {
	case model.SRP:
		t.SRP = v
	case model.OCP:
		t.OCP = v
	case model.LSP:
		t.LSP = v
	case model.ISP:
		t.ISP = v
	case model.DIP:
		t.DIP = v
	}
}

// Diff configures diff mode. Ref is only set from the command line.
type Diff struct {
	Ref         string   `yaml:"-"`
	MaxDecrease *float64 `yaml:"max_decrease"`
	NewClassMin *float64 `yaml:"new_class_min"`
}

// Enabled reports whether analysis is scoped to a diff.
func (d Diff) Enabled() bool {
	return d.Ref != ""
}

// Config is the effective configuration of one run.
type Config struct {
	Paths      []string            `yaml:"paths"`
	Exclude    []string            `yaml:"exclude"`
	Format     string              `yaml:"format"`
	Workers    int                 `yaml:"workers"`
	Thresholds Thresholds          `yaml:"thresholds"`
	Weights    scorer.Weights      `yaml:"weights"`
	Whitelist  []string            `yaml:"whitelist"`
	LSP        analyzer.LSPOptions `yaml:"lsp"`
	Diff       Diff                `yaml:"diff"`
}

// Default returns the built-in configuration.
func Default() *Config {
	data, err := defaultsFS.ReadFile("defaults.yaml")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults missing: %v", err))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return &cfg
}

// Load returns the defaults merged with the file at path. An empty path
// looks for DefaultFileName in the working directory and silently falls
// back to the defaults when it does not exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := cfg.merge(data); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	slog.Debug("loaded config", slog.String("path", path))
	return cfg, nil
}

// merge decodes YAML over the current values. Mapping keys that are absent
// keep their value; lists are replaced.
func (c *Config) merge(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Overrides carries command line settings. Zero values leave the
// configuration untouched.
type Overrides struct {
	Paths       []string
	Format      string
	DiffRef     string
	MinScore    *float64
	MinScores   map[model.Principle]float64
	MaxDecrease *float64
	Exclude     string
	Workers     int
}

// Apply merges command line overrides into c.
func (c *Config) Apply(o Overrides) {
	if len(o.Paths) > 0 {
		c.Paths = slices.Clone(o.Paths)
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.DiffRef != "" {
		c.Diff.Ref = o.DiffRef
	}
	if o.MinScore != nil {
		c.Thresholds.Total = *o.MinScore
	}
	for p, v := range o.MinScores {
		c.Thresholds.set(p, v)
	}
	if o.MaxDecrease != nil {
		v := *o.MaxDecrease
		c.Diff.MaxDecrease = &v
	}
	if o.Exclude != "" {
		c.Exclude = splitList(o.Exclude)
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
}

// Validate checks the values that cannot be used as given. Weights and
// thresholds are taken as they are.
func (c *Config) Validate() error {
	c.Format = NormalizeFormat(c.Format)
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: unknown format %q (want one of %s)", ErrInvalidConfig, c.Format, strings.Join(Formats, ", "))
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if len(c.Paths) == 0 {
		c.Paths = []string{"."}
	}
	return nil
}

// AnalyzerOptions returns the analyzer settings of c.
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		Whitelist: c.Whitelist,
		LSP:       c.LSP,
	}
}

// NormalizeFormat lower-cases a format name and maps "text" to terminal.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "text" || format == "" {
		return FormatTerminal
	}
	return format
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
