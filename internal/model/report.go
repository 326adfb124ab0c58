package model

import "time"

// Role identifies who wrote a transcript message
type Role string

const (
	RoleSystem Role = "system" // Scenario prompt shown to the operator
	RoleUser   Role = "user"   // Operator response
)

// Message is one transcript entry
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Report is the immutable outcome of one scored session.
// Exporters format it as-is and never recompute fields.
type Report struct {
	SessionID     string    `json:"sessionId,omitempty"`
	ScenarioID    string    `json:"scenarioId"`
	ScenarioTitle string    `json:"scenarioTitle"`
	Timestamp     time.Time `json:"timestamp"`   // UTC scoring time
	DurationSec   int       `json:"durationSec"` // Session start to scoring, rounded

	Score     int       `json:"score"` // 0-100
	Band      Band      `json:"band"`
	Breakdown Breakdown `json:"breakdown"`

	Missteps      []Misstep `json:"missteps"`
	GoldScript    []string  `json:"goldScript"`
	NextChecklist []string  `json:"nextChecklist"` // At most 3 entries
	Messages      []Message `json:"messages"`
}

// ScoreResult is what the scorer produces before session metadata is attached
type ScoreResult struct {
	Score         int       `json:"score"`
	Band          Band      `json:"band"`
	Breakdown     Breakdown `json:"breakdown"`
	Missteps      []Misstep `json:"missteps"`
	NextChecklist []string  `json:"nextChecklist"`
}

// Breakdown exposes the signals and arithmetic behind a score
type Breakdown struct {
	RecognitionTone     bool        `json:"recognition_tone"`
	LEAST               LEASTSteps  `json:"LEAST"`
	EmpowermentOK       bool        `json:"empowerment_ok"`
	EscalationMentioned bool        `json:"escalation_mentioned"`
	EscalationRequired  bool        `json:"escalation_required"`
	AggregatorRoute     bool        `json:"aggregator_route"`
	Credits             []Credit    `json:"credits"`
	Penalties           []Deduction `json:"penalties"`
	RawTotal            float64     `json:"raw_total"` // Credits minus penalties, before clamping
}

// LEASTSteps records which LEAST steps the operator hit
type LEASTSteps struct {
	Listen      bool `json:"listen"`
	Empathize   bool `json:"empathize"`
	Apologize   bool `json:"apologize"`
	Solutionize bool `json:"solutionize"`
	Thank       bool `json:"thank"`
}

// Credit is one rubric dimension and the points it contributed
type Credit struct {
	Name    string  `json:"name"`
	Awarded bool    `json:"awarded"`
	Points  float64 `json:"points"`
	Reason  string  `json:"reason,omitempty"`
}

// Deduction is a penalty that was applied
type Deduction struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// Misstep is a detected policy violation with its correction
type Misstep struct {
	Key     string `json:"key"`
	Explain string `json:"explain"`
	Fix     string `json:"fix"`
}

// Section is one labeled block of a document export
type Section struct {
	Label string   `json:"label"`
	Lines []string `json:"lines"`
}
