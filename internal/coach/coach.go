package coach

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/baristacx/internal/model"
)

// Note is a generated coaching note
type Note struct {
	Provider   string
	Model      string
	Text       string
	TokensUsed int
}

// Coach wraps a provider. A Coach without a provider is disabled and
// produces no notes.
type Coach struct {
	provider Provider
	config   Config
	logger   *slog.Logger
}

// New creates a coach from config
func New(config Config, logger *slog.Logger) (*Coach, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return NewWithProvider(provider, config, logger), nil
}

// NewWithProvider creates a coach around an existing provider
func NewWithProvider(provider Provider, config Config, logger *slog.Logger) *Coach {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coach{provider: provider, config: config, logger: logger}
}

// Enabled reports whether a provider is configured
func (c *Coach) Enabled() bool {
	return c != nil && c.provider != nil
}

// Generate writes a note for r. It returns nil, nil when disabled.
// The report is passed by value and is never modified.
func (c *Coach) Generate(ctx context.Context, r model.Report) (*Note, error) {
	if !c.Enabled() {
		return nil, nil
	}

	if !c.provider.IsAvailable(ctx) {
		return nil, fmt.Errorf("coach provider %s is not available", c.provider.Name())
	}

	resp, err := c.provider.Coach(ctx, Request{
		Report:    r,
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate note: %w", err)
	}

	c.logger.Debug("coaching note generated",
		"provider", c.provider.Name(),
		"model", resp.Model,
		"tokens", resp.TokensUsed)

	return &Note{
		Provider:   c.provider.Name(),
		Model:      resp.Model,
		Text:       resp.Note,
		TokensUsed: resp.TokensUsed,
	}, nil
}
