// Package coach generates an optional language-model coaching note for a
// scored session. The note is advisory and never feeds back into scoring.
package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/baristacx/internal/model"
)

// Provider generates coaching text
type Provider interface {
	// Name returns the provider name
	Name() string

	// Coach writes a note for a scored report
	Coach(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks that the endpoint answers
	IsAvailable(ctx context.Context) bool
}

// Request is the input for one coaching note
type Request struct {
	Report    model.Report
	Prompt    string // Empty = BuildPrompt(Report)
	Model     string
	MaxTokens int
}

// Response is a provider's note
type Response struct {
	Note       string
	Model      string
	TokensUsed int
}

// Config holds provider settings
type Config struct {
	Provider  string // "", "openai" or "ollama"
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
}

// ConfigFromModel converts the application config section
func ConfigFromModel(c model.CoachConfig) Config {
	return Config{
		Provider:   c.Provider,
		Model:      c.Model,
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		MaxTokens:  c.MaxTokens,
		HTTPProxy:  c.HTTPProxy,
		HTTPSProxy: c.HTTPSProxy,
	}
}

const systemPrompt = "You are a cafe shift coach. You review a barista's practice session against the LEAST service model (Listen, Empathize, Apologize, Solutionize, Thank). Baristas may remake drinks and fix orders but must never promise refunds or discounts; delivery-app orders are refunded through the app."

// BuildPrompt describes the scored session for the model
func BuildPrompt(r model.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Scenario: %s\n", r.ScenarioTitle)
	fmt.Fprintf(&sb, "Score: %d/100 (%s)\n\n", r.Score, r.Band)

	sb.WriteString("LEAST steps:\n")
	steps := []struct {
		name string
		hit  bool
	}{
		{"Listen", r.Breakdown.LEAST.Listen},
		{"Empathize", r.Breakdown.LEAST.Empathize},
		{"Apologize", r.Breakdown.LEAST.Apologize},
		{"Solutionize", r.Breakdown.LEAST.Solutionize},
		{"Thank", r.Breakdown.LEAST.Thank},
	}
	for _, s := range steps {
		mark := "missed"
		if s.hit {
			mark = "hit"
		}
		fmt.Fprintf(&sb, "- %s: %s\n", s.name, mark)
	}

	if len(r.Missteps) > 0 {
		sb.WriteString("\nMissteps:\n")
		for _, m := range r.Missteps {
			fmt.Fprintf(&sb, "- %s: %s\n", m.Key, m.Explain)
		}
	}

	sb.WriteString("\nBarista messages:\n")
	for _, msg := range r.Messages {
		if msg.Role == model.RoleUser {
			fmt.Fprintf(&sb, "> %s\n", msg.Text)
		}
	}

	if len(r.GoldScript) > 0 {
		sb.WriteString("\nReference script:\n")
		for _, line := range r.GoldScript {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
	}

	sb.WriteString("\nWrite 3-4 sentences of encouraging, specific coaching for the next attempt. Do not restate or change the score.")
	return sb.String()
}
