// Package lexicon holds the phrase tables the analyzer matches against.
package lexicon

import (
	"fmt"
	"strings"

	"github.com/ppiankov/baristacx/internal/model"
	"golang.org/x/text/unicode/norm"
)

// Lexicon maps each behavioral category to its trigger phrases.
// A Lexicon is immutable once built; phrases are stored lowercased.
type Lexicon struct {
	phrases map[model.Category][]string
}

// New builds a lexicon from a category -> phrases table.
// Every phrase is NFC-normalized and lowercased; blank phrases are dropped.
// A category left with no phrases is an error, since its signal could never fire.
func New(table map[model.Category][]string) (*Lexicon, error) {
	phrases := make(map[model.Category][]string, len(model.Categories))
	for category, list := range table {
		if !category.Valid() {
			return nil, fmt.Errorf("unknown lexicon category: %q", category)
		}
		clean := make([]string, 0, len(list))
		for _, p := range list {
			p = strings.ToLower(norm.NFC.String(p))
			if strings.TrimSpace(p) == "" {
				continue
			}
			clean = append(clean, p)
		}
		if len(clean) == 0 {
			return nil, fmt.Errorf("lexicon category %q has no phrases", category)
		}
		phrases[category] = clean
	}
	return &Lexicon{phrases: phrases}, nil
}

// FromStrings builds a lexicon from a config-style table with string keys
func FromStrings(table map[string][]string) (*Lexicon, error) {
	typed := make(map[model.Category][]string, len(table))
	for k, v := range table {
		typed[model.Category(strings.ToLower(k))] = v
	}
	return New(typed)
}

// Override returns a copy of l where every category present in table
// replaces the corresponding phrase list
func (l *Lexicon) Override(table map[string][]string) (*Lexicon, error) {
	over, err := FromStrings(table)
	if err != nil {
		return nil, err
	}
	merged := make(map[model.Category][]string, len(model.Categories))
	for c, p := range l.phrases {
		merged[c] = p
	}
	for c, p := range over.phrases {
		merged[c] = p
	}
	return &Lexicon{phrases: merged}, nil
}

// Phrases returns a copy of the phrases for a category
func (l *Lexicon) Phrases(c model.Category) []string {
	return append([]string(nil), l.phrases[c]...)
}

// Table returns a copy of the whole table keyed by category name
func (l *Lexicon) Table() map[string][]string {
	out := make(map[string][]string, len(l.phrases))
	for c, p := range l.phrases {
		out[string(c)] = append([]string(nil), p...)
	}
	return out
}

// Default returns the barista CX phrase table
func Default() *Lexicon {
	l, err := New(map[model.Category][]string{
		model.CategoryListen: {
			"could you tell me", "may i know", "what happened", "help me understand", "can you share",
		},
		model.CategoryEmpathize: {
			"i understand", "that wasn't ideal", "i get it", "i know this is frustrating", "i see how",
		},
		model.CategoryApologize: {
			"i'm sorry", "i am sorry", "we're sorry", "we are sorry", "apologize",
		},
		model.CategorySolutionize: {
			"let me replace", "i'll replace", "allow me to replace", "i will replace",
			"i'll check your kot", "let me check your kot", "i'll get it out", "i will fix it", "i'll fix it now",
		},
		model.CategoryThank: {
			"thank you", "thanks", "appreciate your patience", "we appreciate",
		},
		model.CategoryEscalation: {
			"manager", "mod", "supervisor",
		},
		model.CategoryForbiddenRefund: {
			"refund", "discount", "compensate", "100% off", "credit note",
		},
		model.CategoryAggregatorRoute: {
			"raise the request through the app", "through the app you ordered", "in the app you ordered",
		},
	})
	if err != nil {
		// The built-in table only uses known categories
		panic(err)
	}
	return l
}
