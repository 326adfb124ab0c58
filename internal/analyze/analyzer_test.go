package analyze

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/ppiankov/baristacx/internal/lexicon"
	"github.com/ppiankov/baristacx/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Categories(t *testing.T) {
	a := NewAnalyzer(nil)

	tests := []struct {
		name string
		text string
		want model.SignalSet
	}{
		{
			name: "listen",
			text: "Could you tell me what was wrong with the drink?",
			want: model.SignalSet{Listen: true},
		},
		{
			name: "empathy and apology",
			text: "I understand, and I'm sorry about that.",
			want: model.SignalSet{Empathize: true, Apologize: true},
		},
		{
			name: "solutionize and thank",
			text: "Let me replace it right away. Thanks for waiting!",
			want: model.SignalSet{Solutionize: true, Thank: true},
		},
		{
			name: "escalation",
			text: "I'll bring my supervisor over.",
			want: model.SignalSet{Escalation: true},
		},
		{
			name: "refund language",
			text: "We can give you a DISCOUNT next time.",
			want: model.SignalSet{ForbiddenRefund: true},
		},
		{
			name: "aggregator routing",
			text: "Please raise the request through the app you used.",
			want: model.SignalSet{AggregatorRoute: true},
		},
		{
			name: "phrase inside a longer word",
			text: "That's a modern cup.",
			want: model.SignalSet{Escalation: true},
		},
		{
			name: "no phrases",
			text: "Your latte is ready.",
			want: model.SignalSet{},
		},
		{
			name: "empty",
			text: "",
			want: model.SignalSet{},
		},
		{
			name: "whitespace",
			text: " \t\n ",
			want: model.SignalSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Analyze(tt.text))
		})
	}
}

func TestAnalyze_EveryDefaultPhraseFires(t *testing.T) {
	a := NewAnalyzer(nil)
	lex := lexicon.Default()

	for _, category := range model.Categories {
		phrases := lex.Phrases(category)
		require.NotEmpty(t, phrases, "category %s has no phrases", category)
		for _, phrase := range phrases {
			text := "well, " + strings.ToUpper(phrase) + " okay"
			assert.True(t, a.Analyze(text).Get(category), "%q should fire %s", phrase, category)
		}
	}
}

func TestAnalyze_NormalizesDecomposedInput(t *testing.T) {
	lex, err := lexicon.New(map[model.Category][]string{
		model.CategoryThank: {"merci, caf\u00e9"},
	})
	require.NoError(t, err)
	a := NewAnalyzer(lex)

	// "café" with a combining acute accent
	assert.True(t, a.Analyze("Merci, cafe\u0301!").Thank)
}

func TestExplain(t *testing.T) {
	a := NewAnalyzer(nil)

	matches := a.Explain("I'm sorry, thank you so much, thanks")

	assert.Equal(t, []Match{
		{Category: model.CategoryApologize, Phrase: "i'm sorry"},
		{Category: model.CategoryThank, Phrase: "thank you"},
		{Category: model.CategoryThank, Phrase: "thanks"},
	}, matches)
}

func TestAnalyzeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	a := NewAnalyzer(nil)

	// Digits and spaces never contain any default phrase
	properties.Property("text without phrases yields no signals", prop.ForAll(
		func(s string) bool {
			return a.Analyze(s) == model.SignalSet{}
		},
		gen.NumString(),
	))

	properties.Property("analysis is pure", prop.ForAll(
		func(s string) bool {
			return a.Analyze(s) == a.Analyze(s)
		},
		gen.AnyString(),
	))

	properties.Property("a phrase fires wherever it appears", prop.ForAll(
		func(prefix, suffix string, idx int) bool {
			phrases := lexicon.Default().Phrases(model.CategoryEmpathize)
			phrase := phrases[idx%len(phrases)]
			return a.Analyze(prefix + phrase + suffix).Empathize
		},
		gen.AlphaString(), gen.AlphaString(), gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
