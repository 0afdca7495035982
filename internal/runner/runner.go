// Package runner drives one analysis: file discovery, parallel parsing and
// extraction, diff scoping, scoring, gating and baseline comparison.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/pthm/solidscore/internal/analyzer"
	"github.com/pthm/solidscore/internal/config"
	"github.com/pthm/solidscore/internal/diff"
	"github.com/pthm/solidscore/internal/extractor"
	"github.com/pthm/solidscore/internal/model"
	"github.com/pthm/solidscore/internal/parser"
	"github.com/pthm/solidscore/internal/scorer"
)

// Stage names reported to the observer.
const (
	StageDiscover = "Discovering files"
	StageDiff     = "Reading git diff"
	StageParse    = "Parsing files"
	StageScore    = "Scoring classes"
	StageBaseline = "Comparing with baseline"
)

// Observer receives progress notifications. Implementations must be safe
// for concurrent use; FileDone is called from worker goroutines.
type Observer interface {
	SetStage(stage string)
	SetTotal(files int)
	FileDone(path string)
}

type nopObserver struct{}

func (nopObserver) SetStage(string) {}
func (nopObserver) SetTotal(int)    {}
func (nopObserver) FileDone(string) {}

// FileError records a file that contributed no classes because it could
// not be read or parsed.
type FileError struct {
	Path string
	Err  error
}

// Report is the outcome of Run.
type Report struct {
	Files   []string
	Classes []*model.ClassInfo
	Results []scorer.Result
	Skipped []FileError
}

// Runner analyzes the files selected by a configuration.
type Runner struct {
	cfg      *config.Config
	parser   *parser.RubyParser
	scorer   *scorer.Scorer
	git      diff.Git
	diff     *diff.Analyzer
	observer Observer
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver reports progress to o.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithLogger sets the logger for skipped files and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithGit replaces the git executor used in diff mode.
func WithGit(g diff.Git) Option {
	return func(r *Runner) {
		r.git = g
	}
}

// WithParser replaces the Ruby parser.
func WithParser(p *parser.RubyParser) Option {
	return func(r *Runner) {
		if p != nil {
			r.parser = p
		}
	}
}

// New creates a runner for cfg.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		parser:   parser.NewRubyParser(),
		scorer:   scorer.New(analyzer.NewRegistryWithOptions(cfg.AnalyzerOptions()), cfg.Weights),
		observer: nopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.Diff.Enabled() {
		r.diff = diff.New(cfg.Diff.Ref, r.git)
	}
	return r
}

// Scorer returns the scorer used for every class.
func (r *Runner) Scorer() *scorer.Scorer {
	return r.scorer
}

// Run performs the analysis.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	r.observer.SetStage(StageDiscover)
	files, err := r.Discover()
	if err != nil {
		return nil, err
	}

	var ranges diff.Ranges
	if r.diff != nil {
		r.observer.SetStage(StageDiff)
		files, ranges, err = r.scopeToDiff(ctx, files)
		if err != nil {
			return nil, err
		}
	}

	r.observer.SetTotal(len(files))
	r.observer.SetStage(StageParse)
	classes, skipped, err := r.extractAll(ctx, files)
	if err != nil {
		return nil, err
	}

	if r.diff != nil {
		classes = diff.FilterClasses(classes, ranges)
	}

	r.observer.SetStage(StageScore)
	return &Report{
		Files:   files,
		Classes: classes,
		Results: r.scorer.ScoreAll(classes),
		Skipped: skipped,
	}, nil
}

// Discover lists the Ruby files selected by the configured paths, minus
// excluded ones. Paths naming a file are taken as they are; directories are
// searched recursively for *.rb files.
func (r *Runner) Discover() ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		path = diff.NormalizePath(path)
		if seen[path] || r.excluded(path) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, root := range r.cfg.Paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("analysis path: %w", err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(root), "**/*.rb")
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", root, err)
		}
		for _, m := range matches {
			add(filepath.Join(root, filepath.FromSlash(m)))
		}
	}
	return files, nil
}

func (r *Runner) excluded(path string) bool {
	for _, pattern := range r.cfg.Exclude {
		ok, err := doublestar.Match(filepath.ToSlash(pattern), path)
		if err != nil {
			r.logger.Warn("invalid exclude pattern", slog.String("pattern", pattern), slog.Any("error", err))
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

func (r *Runner) scopeToDiff(ctx context.Context, files []string) ([]string, diff.Ranges, error) {
	changed, err := r.diff.ChangedFiles(ctx)
	if err != nil {
		return nil, nil, err
	}
	ranges, err := r.diff.ChangedLineRanges(ctx)
	if err != nil {
		return nil, nil, err
	}

	inDiff := make(map[string]bool, len(changed))
	for _, f := range changed {
		inDiff[f] = true
	}

	var scoped []string
	for _, f := range files {
		if inDiff[f] {
			scoped = append(scoped, f)
		}
	}
	r.logger.Debug("scoped to diff",
		slog.String("ref", r.diff.Ref()),
		slog.Int("changed", len(changed)),
		slog.Int("analyzed", len(scoped)))
	return scoped, ranges, nil
}

// extractAll parses files on a bounded worker pool. Each task writes only
// its own slot, so the output keeps the order of files.
func (r *Runner) extractAll(ctx context.Context, files []string) ([]*model.ClassInfo, []FileError, error) {
	perFile := make([][]*model.ClassInfo, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perFile[i], errs[i] = r.extractFile(gctx, path)
			r.observer.FileDone(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var classes []*model.ClassInfo
	var skipped []FileError
	for i, path := range files {
		if errs[i] != nil {
			skipped = append(skipped, FileError{Path: path, Err: errs[i]})
			continue
		}
		classes = append(classes, perFile[i]...)
	}
	return classes, skipped, nil
}

func (r *Runner) extractFile(ctx context.Context, path string) ([]*model.ClassInfo, error) {
	root, err := r.parser.ParseFile(ctx, path)
	if err != nil {
		r.logger.Debug("skipping file", slog.String("path", path), slog.Any("error", err))
		return nil, err
	}
	return extractor.Extract(root, path), nil
}

func (r *Runner) workers() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	return runtime.NumCPU()
}
