package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ppiankov/baristacx/internal/analyze"
	"github.com/ppiankov/baristacx/internal/cache"
	"github.com/ppiankov/baristacx/internal/content"
	"github.com/ppiankov/baristacx/internal/lexicon"
	"github.com/ppiankov/baristacx/internal/model"
	"github.com/ppiankov/baristacx/internal/report"
	"github.com/ppiankov/baristacx/internal/score"
	"github.com/ppiankov/baristacx/internal/session"
)

var (
	// ErrContentNotLoaded is returned when a session is opened or scored
	// before reference data has loaded
	ErrContentNotLoaded = errors.New("content not loaded")

	// ErrUnknownScenario is returned for a scenario id missing from the content
	ErrUnknownScenario = errors.New("unknown scenario")
)

// ContentLoader supplies reference data
type ContentLoader interface {
	Load() (*model.Content, error)
}

// Engine wires the analyzer, scorer and report assembler behind a content gate.
// After Load it only reads shared state, so independent sessions may be
// scored from several goroutines.
type Engine struct {
	loader   ContentLoader
	analyzer *analyze.Analyzer
	scorer   *score.Scorer
	content  atomic.Pointer[model.Content]
	now      func() time.Time
	logger   *slog.Logger
}

// Option customizes an Engine
type Option func(*Engine)

// WithClock replaces the wall clock (used for durations and timestamps)
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates an engine over an explicit loader and analyzer
func NewEngine(loader ContentLoader, analyzer *analyze.Analyzer, opts ...Option) *Engine {
	e := &Engine{
		loader:   loader,
		analyzer: analyzer,
		scorer:   score.NewScorer(),
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromConfig builds the loader and lexicon described by cfg
func NewEngineFromConfig(cfg *model.Config, c cache.Cache, opts ...Option) (*Engine, error) {
	lex := lexicon.Default()
	if len(cfg.Lexicon) > 0 {
		var err error
		lex, err = lex.Override(cfg.Lexicon)
		if err != nil {
			return nil, fmt.Errorf("lexicon: %w", err)
		}
	}

	e := NewEngine(nil, analyze.NewAnalyzer(lex), opts...)
	e.loader = content.NewLoader(content.Source(cfg.Content.Dir), c, e.logger)
	return e, nil
}

// Load reads reference data. Sessions cannot be opened until it succeeds.
func (e *Engine) Load() error {
	c, err := e.loader.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	e.content.Store(c)
	e.logger.Info("content ready",
		"version", c.Scenarios.Meta.DisplayVersion(),
		"scenarios", len(c.Scenarios.Scenarios))
	return nil
}

// Content returns the loaded reference data
func (e *Engine) Content() (*model.Content, error) {
	c := e.content.Load()
	if c == nil {
		return nil, ErrContentNotLoaded
	}
	return c, nil
}

// Analyzer returns the analyzer sessions are opened with
func (e *Engine) Analyzer() *analyze.Analyzer {
	return e.analyzer
}

// Open starts a session for the given scenario
func (e *Engine) Open(scenarioID string) (*session.Session, error) {
	return e.OpenAt(scenarioID, e.now())
}

// OpenAt starts a session whose clock began at startedAt
func (e *Engine) OpenAt(scenarioID string, startedAt time.Time) (*session.Session, error) {
	c, err := e.Content()
	if err != nil {
		return nil, err
	}
	sc, ok := c.Scenarios.Find(scenarioID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, scenarioID)
	}

	s := session.New(sc, e.analyzer, startedAt)
	e.logger.Debug("session opened", "session", s.ID, "scenario", sc.ID)
	return s, nil
}

// Finish scores a session now and returns its report
func (e *Engine) Finish(s *session.Session) (*model.Report, error) {
	return e.FinishAt(s, e.now())
}

// FinishAt scores a session as of the given time. Scoring the same session
// again yields the same score fields; only timestamp and duration move.
func (e *Engine) FinishAt(s *session.Session, at time.Time) (*model.Report, error) {
	c, err := e.Content()
	if err != nil {
		return nil, err
	}

	rescored := s.Finished()
	s.Finish()
	result := e.scorer.Calculate(s.Signals(), s.Scenario, c.Rubric, c.Missteps)
	r := report.Assemble(result, s, at)

	e.logger.Info("session scored",
		"session", s.ID,
		"scenario", s.Scenario.ID,
		"score", r.Score,
		"band", r.Band,
		"messages", s.OperatorMessages(),
		"rescored", rescored)

	return &r, nil
}

// ScoreTranscript replays a recorded transcript through a fresh session
func (e *Engine) ScoreTranscript(t *Transcript) (*model.Report, error) {
	started := t.StartedAt
	if started.IsZero() {
		started = e.now()
	}
	finished := t.FinishedAt
	if finished.IsZero() {
		finished = e.now()
	}

	s, err := e.OpenAt(t.ScenarioID, started)
	if err != nil {
		return nil, err
	}
	for _, text := range t.Messages {
		if _, err := s.Send(text); err != nil {
			return nil, fmt.Errorf("replay message: %w", err)
		}
	}
	return e.FinishAt(s, finished)
}
