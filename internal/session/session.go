// Package session tracks one scenario attempt from the opening prompt to scoring.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/baristacx/internal/model"
)

// ErrFinished is returned when a message is sent to a scored session
var ErrFinished = errors.New("session already finished")

// Analyzer maps operator text to signals
type Analyzer interface {
	Analyze(text string) model.SignalSet
}

// Session is one attempt at one scenario. It is owned by a single caller
// and is not safe for concurrent use.
type Session struct {
	ID        string
	Scenario  model.Scenario
	StartedAt time.Time

	analyzer   Analyzer
	messages   []model.Message
	cumulative model.SignalSet
	finished   bool
}

// New opens a session for scenario, starting the clock at startedAt.
// The transcript starts with the scenario prompt as a system message.
func New(scenario model.Scenario, analyzer Analyzer, startedAt time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Scenario:  scenario,
		StartedAt: startedAt,
		analyzer:  analyzer,
		messages: []model.Message{{
			Role: model.RoleSystem,
			Text: fmt.Sprintf("Scenario: %s\n%s", scenario.Title, scenario.Trigger),
		}},
	}
}

// Send records an operator message and folds its signals into the session.
// Blank or whitespace-only text is ignored: nothing is appended and the
// analyzer is not called. It returns whether the message was accepted.
func (s *Session) Send(text string) (bool, error) {
	if s.finished {
		return false, ErrFinished
	}
	if strings.TrimSpace(text) == "" {
		return false, nil
	}

	s.cumulative = s.cumulative.Merge(s.analyzer.Analyze(text))
	s.messages = append(s.messages, model.Message{Role: model.RoleUser, Text: text})
	return true, nil
}

// Signals returns the cumulative signals so far
func (s *Session) Signals() model.SignalSet {
	return s.cumulative
}

// Messages returns a copy of the transcript
func (s *Session) Messages() []model.Message {
	return append([]model.Message(nil), s.messages...)
}

// OperatorMessages counts messages sent by the operator
func (s *Session) OperatorMessages() int {
	count := 0
	for _, m := range s.messages {
		if m.Role == model.RoleUser {
			count++
		}
	}
	return count
}

// Finish freezes the session; later sends fail with ErrFinished
func (s *Session) Finish() {
	s.finished = true
}

// Finished reports whether the session has been scored
func (s *Session) Finished() bool {
	return s.finished
}
