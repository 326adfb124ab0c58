package session

import (
	"testing"
	"time"

	"github.com/ppiankov/baristacx/internal/analyze"
	"github.com/ppiankov/baristacx/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAnalyzer records how often it is called
type countingAnalyzer struct {
	calls int
	inner *analyze.Analyzer
}

func (c *countingAnalyzer) Analyze(text string) model.SignalSet {
	c.calls++
	return c.inner.Analyze(text)
}

func newTestSession(a Analyzer) *Session {
	scenario := model.Scenario{
		ID:      "cold-latte",
		Title:   "Cold latte",
		Level:   1,
		Trigger: "This latte is cold.",
	}
	return New(scenario, a, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
}

func TestNew_OpensWithSystemMessage(t *testing.T) {
	s := newTestSession(analyze.NewAnalyzer(nil))

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleSystem, msgs[0].Role)
	assert.Equal(t, "Scenario: Cold latte\nThis latte is cold.", msgs[0].Text)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, model.SignalSet{}, s.Signals())
	assert.Zero(t, s.OperatorMessages())
}

func TestSend_IgnoresBlankInput(t *testing.T) {
	counter := &countingAnalyzer{inner: analyze.NewAnalyzer(nil)}
	s := newTestSession(counter)

	for _, text := range []string{"", "   ", "\n\t"} {
		accepted, err := s.Send(text)
		require.NoError(t, err)
		assert.False(t, accepted)
	}

	assert.Zero(t, counter.calls, "analyzer must not run on blank input")
	assert.Len(t, s.Messages(), 1)
}

func TestSend_AccumulatesMonotonically(t *testing.T) {
	s := newTestSession(analyze.NewAnalyzer(nil))

	_, err := s.Send("I'm sorry about that.")
	require.NoError(t, err)
	assert.True(t, s.Signals().Apologize)

	_, err = s.Send("Your drink is ready.")
	require.NoError(t, err)
	assert.True(t, s.Signals().Apologize, "signals never reset within a session")

	_, err = s.Send("Thank you for your patience.")
	require.NoError(t, err)

	assert.Equal(t, model.SignalSet{Apologize: true, Thank: true}, s.Signals())
	assert.Equal(t, 3, s.OperatorMessages())

	msgs := s.Messages()
	assert.Equal(t, model.Message{Role: model.RoleUser, Text: "Your drink is ready."}, msgs[2])
}

func TestSend_AfterFinish(t *testing.T) {
	s := newTestSession(analyze.NewAnalyzer(nil))
	s.Finish()

	accepted, err := s.Send("thank you")
	assert.ErrorIs(t, err, ErrFinished)
	assert.False(t, accepted)
	assert.True(t, s.Finished())
	assert.Equal(t, model.SignalSet{}, s.Signals())
}

func TestMessages_ReturnsCopy(t *testing.T) {
	s := newTestSession(analyze.NewAnalyzer(nil))

	msgs := s.Messages()
	msgs[0].Text = "changed"

	assert.NotEqual(t, "changed", s.Messages()[0].Text)
}
