package model

// Weights are the credit awarded for each rubric dimension
type Weights struct {
	RecognitionTone  float64 `json:"recognition_tone"`
	LEAST            float64 `json:"least"`
	Empowerment      float64 `json:"empowerment"`
	Escalation       float64 `json:"escalation"`
	ScriptQuality    float64 `json:"script_quality"`
	OpsFollowthrough float64 `json:"ops_followthrough"`
}

// Penalties are deducted for policy violations
type Penalties struct {
	RefundDiscountPromise float64 `json:"refund_discount_promise"`
	AggregatorMisroute    float64 `json:"aggregator_misroute"`
}

// BandRange is an inclusive [low, high] score range
type BandRange [2]float64

// Low returns the lower bound
func (r BandRange) Low() float64 { return r[0] }

// High returns the upper bound
func (r BandRange) High() float64 { return r[1] }

// BandKeyCoachMe is the key of the coaching band inside Rubric.Bands
const BandKeyCoachMe = "coach_me"

// Rubric is shared by all scenarios
type Rubric struct {
	Weights       Weights              `json:"weights"`
	Penalties     Penalties            `json:"penalties"`
	PassThreshold float64              `json:"pass_threshold"`
	Bands         map[string]BandRange `json:"bands"`
}

// CoachMe returns the coaching band range
func (r Rubric) CoachMe() BandRange {
	return r.Bands[BandKeyCoachMe]
}

// Band is the categorical outcome of a scored session
type Band string

const (
	BandPass    Band = "PASS"
	BandCoachMe Band = "COACH-ME"
	BandRedo    Band = "REDO"
)

// Misstep keys the scorer can emit
const (
	MisstepRefundOffer        = "refund_offer"
	MisstepAggregatorMisroute = "aggregator_misroute"
)

// MisstepInfo explains a policy violation and how to fix it
type MisstepInfo struct {
	Explain string `json:"explain"`
	Fix     string `json:"fix"`
}

// MisstepLibrary is the decoded missteps file
type MisstepLibrary struct {
	Library map[string]MisstepInfo `json:"library"`
}

// Hints is auxiliary coaching text keyed by scenario id or "general"
type Hints struct {
	Hints map[string][]string `json:"hints"`
}

// HintsGeneralKey selects hints that apply to every scenario
const HintsGeneralKey = "general"

// For returns the general hints followed by the scenario-specific ones
func (h Hints) For(scenarioID string) []string {
	var out []string
	out = append(out, h.Hints[HintsGeneralKey]...)
	if scenarioID != HintsGeneralKey {
		out = append(out, h.Hints[scenarioID]...)
	}
	return out
}

// Content bundles all reference data a session needs
type Content struct {
	Scenarios ScenarioSet
	Rubric    Rubric
	Missteps  MisstepLibrary
	Hints     Hints
}
