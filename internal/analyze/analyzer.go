// Package analyze turns operator text into behavioral signals.
package analyze

import (
	"strings"

	"github.com/ppiankov/baristacx/internal/lexicon"
	"github.com/ppiankov/baristacx/internal/model"
	"golang.org/x/text/unicode/norm"
)

// Analyzer detects LEAST and policy signals by phrase containment
type Analyzer struct {
	lexicon *lexicon.Lexicon
}

// NewAnalyzer creates an analyzer over the given lexicon.
// A nil lexicon selects lexicon.Default().
func NewAnalyzer(lex *lexicon.Lexicon) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Analyzer{lexicon: lex}
}

// Match is a phrase that fired for a category
type Match struct {
	Category model.Category `json:"category"`
	Phrase   string         `json:"phrase"`
}

// Analyze returns the signals present in text.
// Matching is substring containment on the lowercased input: no tokenization,
// no stemming, and a phrase inside a longer word still counts.
func (a *Analyzer) Analyze(text string) model.SignalSet {
	lower := normalize(text)

	var signals model.SignalSet
	for _, category := range model.Categories {
		if a.hit(lower, category) {
			signals = signals.With(category, true)
		}
	}
	return signals
}

// Explain lists every phrase that matched, in category order
func (a *Analyzer) Explain(text string) []Match {
	lower := normalize(text)

	var matches []Match
	for _, category := range model.Categories {
		for _, phrase := range a.lexicon.Phrases(category) {
			if strings.Contains(lower, phrase) {
				matches = append(matches, Match{Category: category, Phrase: phrase})
			}
		}
	}
	return matches
}

func (a *Analyzer) hit(lower string, category model.Category) bool {
	for _, phrase := range a.lexicon.Phrases(category) {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func normalize(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}
