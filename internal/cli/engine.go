package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/baristacx/internal/cache"
	"github.com/ppiankov/baristacx/internal/coach"
	"github.com/ppiankov/baristacx/internal/model"
	"github.com/ppiankov/baristacx/internal/pipeline"
	"github.com/spf13/viper"
)

// app bundles what every scoring command needs
type app struct {
	cfg      *model.Config
	engine   *pipeline.Engine
	renderer *pipeline.Renderer
	coach    *coach.Coach
	logger   *slog.Logger
}

// newLogger builds the stderr text logger for a level name
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// setup loads config and content. Content problems fail here, before any
// session starts.
func setup() (*app, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return newApp(cfg, os.Stderr)
}

func newApp(cfg *model.Config, logOut io.Writer) (*app, error) {
	logger, err := newLogger(logOut, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	engine, err := pipeline.NewEngineFromConfig(cfg, cache.NewMemoryCache(time.Hour, 10*time.Minute), pipeline.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := engine.Load(); err != nil {
		return nil, err
	}

	c, err := coach.New(coach.ConfigFromModel(cfg.Coach), logger)
	if err != nil {
		// Scoring continues without a coach
		logger.Warn("coach disabled", "error", err)
		c = nil
	}

	return &app{
		cfg:      cfg,
		engine:   engine,
		renderer: pipeline.NewRenderer(),
		coach:    c,
		logger:   logger,
	}, nil
}

// header prints the banner with the content version
func (a *app) header(w io.Writer) {
	c, err := a.engine.Content()
	if err != nil {
		return
	}
	fmt.Fprintf(w, "Barista CX Bot · content v%s\n", c.Scenarios.Meta.DisplayVersion())
}

// deliver prints, exports and optionally coaches one report
func (a *app) deliver(ctx context.Context, out io.Writer, rep *model.Report) error {
	a.renderer.RenderSummary(out, rep)

	paths, err := a.renderer.Export(rep, a.cfg.Output.Dir, a.cfg.Output.Formats)
	if err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	for _, p := range paths {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", p)
	}

	a.writeCoachNote(ctx, rep, paths)
	return nil
}

// writeCoachNote adds a coaching note beside the first export.
// Failures are reported and never block the report.
func (a *app) writeCoachNote(ctx context.Context, rep *model.Report, paths []string) {
	if !a.coach.Enabled() || len(paths) == 0 {
		return
	}

	note, err := a.coach.Generate(ctx, *rep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Coaching note failed: %v\n", err)
		return
	}

	path := strings.TrimSuffix(paths[0], filepath.Ext(paths[0])) + ".coach.md"
	if err := a.renderer.RenderCoachNote(note.Text, path); err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to write coaching note: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "✓ Wrote coaching note (%s/%s): %s\n", note.Provider, note.Model, path)
}
