package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/baristacx/internal/model"
)

// Credit and penalty names used in the breakdown
const (
	CreditRecognitionTone  = "recognition_tone"
	CreditLEAST            = "least"
	CreditEmpowerment      = "empowerment"
	CreditEscalation       = "escalation"
	CreditScriptQuality    = "script_quality"
	CreditOpsFollowthrough = "ops_followthrough"

	PenaltyRefundDiscountPromise = "refund_discount_promise"
	PenaltyAggregatorMisroute    = "aggregator_misroute"
)

// MaxChecklistItems caps the next-attempt checklist
const MaxChecklistItems = 3

// Checklist lines, in priority order
const (
	HintEmpathy         = "Add one empathy line early."
	HintApology         = "Include a clean apology (no legal repeat)."
	HintSolutionize     = "Offer the fix that’s within barista empowerment."
	HintThank           = "Close with a thank-you/assurance."
	HintAggregatorRoute = "Politely route via app for aggregator orders."
	HintGoodFlow        = "Great flow. Add timing or concrete follow-up next time."
)

// Scorer reduces cumulative session signals to a score, band and coaching
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate scores a session's cumulative signals against a scenario and rubric.
// It is pure: the same inputs always give the same result.
func (s *Scorer) Calculate(signals model.SignalSet, scenario model.Scenario, rubric model.Rubric, library model.MisstepLibrary) model.ScoreResult {
	w := rubric.Weights
	p := rubric.Penalties
	aggregator := scenario.HasTag(model.TagAggregator)
	needsEscalation := scenario.NeedsEscalation()

	var credits []model.Credit

	// 1. Recognition / tone
	credits = append(credits, award(CreditRecognitionTone, signals.RecognitionTone(), w.RecognitionTone,
		"listen, empathize or apologize"))

	// 2. LEAST completeness (fractional)
	leastCount := signals.LEASTCount()
	credits = append(credits, model.Credit{
		Name:    CreditLEAST,
		Awarded: leastCount > 0,
		Points:  float64(leastCount) / 5 * w.LEAST,
		Reason:  fmt.Sprintf("%d/5 LEAST steps", leastCount),
	})

	// 3. Empowerment: any refund/discount language voids the whole credit
	credits = append(credits, award(CreditEmpowerment, !signals.ForbiddenRefund, w.Empowerment,
		"no refund or discount promised"))

	// 4. Escalation: only earned by escalating when the scenario requires it
	if needsEscalation {
		credits = append(credits, award(CreditEscalation, signals.Escalation, w.Escalation,
			"escalation required"))
	} else {
		credits = append(credits, award(CreditEscalation, true, w.Escalation,
			"escalation not required"))
	}

	// 5. Script quality needs both empathy and apology
	credits = append(credits, award(CreditScriptQuality, signals.Empathize && signals.Apologize, w.ScriptQuality,
		"empathize and apologize"))

	// 6. Ops follow-through
	credits = append(credits, award(CreditOpsFollowthrough, signals.Solutionize, w.OpsFollowthrough,
		"solutionize"))

	// 7. Penalties
	penalties := []model.Deduction{}
	if signals.ForbiddenRefund {
		penalties = append(penalties, model.Deduction{Name: PenaltyRefundDiscountPromise, Points: p.RefundDiscountPromise})
	}
	if aggregator && !signals.AggregatorRoute {
		penalties = append(penalties, model.Deduction{Name: PenaltyAggregatorMisroute, Points: p.AggregatorMisroute})
	}

	// 8. Finalize
	total := 0.0
	for _, c := range credits {
		total += c.Points
	}
	for _, d := range penalties {
		total -= d.Points
	}
	score := Round(Clamp(total, 0, 100))

	return model.ScoreResult{
		Score: score,
		Band:  DetermineBand(score, rubric),
		Breakdown: model.Breakdown{
			RecognitionTone: signals.RecognitionTone(),
			LEAST: model.LEASTSteps{
				Listen:      signals.Listen,
				Empathize:   signals.Empathize,
				Apologize:   signals.Apologize,
				Solutionize: signals.Solutionize,
				Thank:       signals.Thank,
			},
			EmpowermentOK:       !signals.ForbiddenRefund,
			EscalationMentioned: signals.Escalation,
			EscalationRequired:  needsEscalation,
			AggregatorRoute:     signals.AggregatorRoute,
			Credits:             credits,
			Penalties:           penalties,
			RawTotal:            total,
		},
		Missteps:      s.missteps(signals, aggregator, library),
		NextChecklist: s.checklist(signals, aggregator),
	}
}

// DetermineBand maps a score to its band. COACH-ME has no explicit upper
// bound: the pass threshold is its effective ceiling.
func DetermineBand(score int, rubric model.Rubric) model.Band {
	if float64(score) >= rubric.PassThreshold {
		return model.BandPass
	}
	if float64(score) >= rubric.CoachMe().Low() {
		return model.BandCoachMe
	}
	return model.BandRedo
}

// missteps lists detected policy violations in a fixed order
func (s *Scorer) missteps(signals model.SignalSet, aggregator bool, library model.MisstepLibrary) []model.Misstep {
	out := []model.Misstep{}
	if signals.ForbiddenRefund {
		out = append(out, lookup(library, model.MisstepRefundOffer))
	}
	if aggregator && !signals.AggregatorRoute {
		out = append(out, lookup(library, model.MisstepAggregatorMisroute))
	}
	return out
}

// checklist suggests up to three things to do better next attempt
func (s *Scorer) checklist(signals model.SignalSet, aggregator bool) []string {
	var out []string
	if !signals.Empathize {
		out = append(out, HintEmpathy)
	}
	if !signals.Apologize {
		out = append(out, HintApology)
	}
	if !signals.Solutionize {
		out = append(out, HintSolutionize)
	}
	if !signals.Thank {
		out = append(out, HintThank)
	}
	if aggregator && !signals.AggregatorRoute {
		out = append(out, HintAggregatorRoute)
	}
	if len(out) == 0 {
		out = append(out, HintGoodFlow)
	}
	if len(out) > MaxChecklistItems {
		out = out[:MaxChecklistItems]
	}
	return out
}

func award(name string, ok bool, weight float64, reason string) model.Credit {
	c := model.Credit{Name: name, Awarded: ok, Reason: reason}
	if ok {
		c.Points = weight
	}
	return c
}

func lookup(library model.MisstepLibrary, key string) model.Misstep {
	info := library.Library[key]
	return model.Misstep{Key: key, Explain: info.Explain, Fix: info.Fix}
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round rounds to the nearest integer, halves rounding up
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
