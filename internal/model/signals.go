package model

// Category names one behavioral signal tracked by the analyzer
type Category string

const (
	CategoryListen          Category = "listen"
	CategoryEmpathize       Category = "empathize"
	CategoryApologize       Category = "apologize"
	CategorySolutionize     Category = "solutionize"
	CategoryThank           Category = "thank"
	CategoryEscalation      Category = "escalation"
	CategoryForbiddenRefund Category = "forbidden_refund"
	CategoryAggregatorRoute Category = "aggregator_route"
)

// Categories lists every tracked category in canonical order
var Categories = []Category{
	CategoryListen,
	CategoryEmpathize,
	CategoryApologize,
	CategorySolutionize,
	CategoryThank,
	CategoryEscalation,
	CategoryForbiddenRefund,
	CategoryAggregatorRoute,
}

// LEASTCategories are the five steps of the LEAST framework, in order
var LEASTCategories = []Category{
	CategoryListen,
	CategoryEmpathize,
	CategoryApologize,
	CategorySolutionize,
	CategoryThank,
}

// Valid reports whether c is one of the tracked categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// SignalSet is the fixed set of behavioral signals detected in text.
// A session's cumulative set only ever flips fields from false to true.
type SignalSet struct {
	Listen          bool `json:"listen"`
	Empathize       bool `json:"empathize"`
	Apologize       bool `json:"apologize"`
	Solutionize     bool `json:"solutionize"`
	Thank           bool `json:"thank"`
	Escalation      bool `json:"escalation"`
	ForbiddenRefund bool `json:"forbidden_refund"`
	AggregatorRoute bool `json:"aggregator_route"`
}

// Merge returns the field-wise OR of s and other
func (s SignalSet) Merge(other SignalSet) SignalSet {
	return SignalSet{
		Listen:          s.Listen || other.Listen,
		Empathize:       s.Empathize || other.Empathize,
		Apologize:       s.Apologize || other.Apologize,
		Solutionize:     s.Solutionize || other.Solutionize,
		Thank:           s.Thank || other.Thank,
		Escalation:      s.Escalation || other.Escalation,
		ForbiddenRefund: s.ForbiddenRefund || other.ForbiddenRefund,
		AggregatorRoute: s.AggregatorRoute || other.AggregatorRoute,
	}
}

// Get returns the value of a single category (false for unknown categories)
func (s SignalSet) Get(c Category) bool {
	switch c {
	case CategoryListen:
		return s.Listen
	case CategoryEmpathize:
		return s.Empathize
	case CategoryApologize:
		return s.Apologize
	case CategorySolutionize:
		return s.Solutionize
	case CategoryThank:
		return s.Thank
	case CategoryEscalation:
		return s.Escalation
	case CategoryForbiddenRefund:
		return s.ForbiddenRefund
	case CategoryAggregatorRoute:
		return s.AggregatorRoute
	default:
		return false
	}
}

// With returns a copy of s with category c set to v
func (s SignalSet) With(c Category, v bool) SignalSet {
	switch c {
	case CategoryListen:
		s.Listen = v
	case CategoryEmpathize:
		s.Empathize = v
	case CategoryApologize:
		s.Apologize = v
	case CategorySolutionize:
		s.Solutionize = v
	case CategoryThank:
		s.Thank = v
	case CategoryEscalation:
		s.Escalation = v
	case CategoryForbiddenRefund:
		s.ForbiddenRefund = v
	case CategoryAggregatorRoute:
		s.AggregatorRoute = v
	}
	return s
}

// LEASTCount counts how many LEAST steps fired (0-5)
func (s SignalSet) LEASTCount() int {
	count := 0
	for _, c := range LEASTCategories {
		if s.Get(c) {
			count++
		}
	}
	return count
}

// RecognitionTone is true when the operator listened, empathized or apologized
func (s SignalSet) RecognitionTone() bool {
	return s.Listen || s.Empathize || s.Apologize
}
