package model

// Empowerment describes what remedy scope a scenario expects from the barista
type Empowerment string

const (
	EmpowermentBarista     Empowerment = "barista"      // Fix within frontline scope
	EmpowermentEscalateMod Empowerment = "escalate_mod" // Hand off to the manager on duty
)

// TagAggregator marks scenarios about third-party delivery orders
const TagAggregator = "aggregator"

// Expected holds the behavior a scenario expects from the operator
type Expected struct {
	Empowerment Empowerment `json:"empowerment"`
}

// Scenario is one customer situation the operator must handle
type Scenario struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Level      int      `json:"level"`                 // Severity, 1 = routine
	Trigger    string   `json:"trigger"`               // What the customer says or does
	Tags       []string `json:"tags,omitempty"`        // e.g. "aggregator", "quality"
	Expected   Expected `json:"expected"`              // Expected empowerment scope
	EscalateIf []string `json:"escalate_if,omitempty"` // Conditions that call for escalation (absent = none)
	GoldScript []string `json:"gold_script,omitempty"` // Reference responses, in order
}

// HasTag reports whether the scenario carries the given tag
func (s Scenario) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NeedsEscalation reports whether the scenario expects a handoff to a supervisor
func (s Scenario) NeedsEscalation() bool {
	if s.Expected.Empowerment == EmpowermentEscalateMod {
		return true
	}
	return len(s.EscalateIf) > 0 && s.Level >= 2
}

// ContentMeta describes a content bundle
type ContentMeta struct {
	Version string `json:"version,omitempty"`
	Title   string `json:"title,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// DisplayVersion returns the content version, defaulting to "1.0"
func (m ContentMeta) DisplayVersion() string {
	if m.Version == "" {
		return "1.0"
	}
	return m.Version
}

// ScenarioSet is the decoded scenarios file
type ScenarioSet struct {
	Meta      ContentMeta `json:"meta"`
	Scenarios []Scenario  `json:"scenarios"`
}

// Find returns the scenario with the given id
func (s ScenarioSet) Find(id string) (Scenario, bool) {
	for _, sc := range s.Scenarios {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scenario{}, false
}
