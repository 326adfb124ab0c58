package content

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/ppiankov/baristacx/internal/cache"
	"github.com/ppiankov/baristacx/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScenarios = `{
  "meta": {"version": "2.1"},
  "scenarios": [
    {"id": "s1", "title": "One", "level": 1, "trigger": "t", "expected": {"empowerment": "barista"}}
  ]
}`

const validRubric = `{
  "weights": {"recognition_tone": 10, "least": 40, "empowerment": 20, "escalation": 10, "script_quality": 10, "ops_followthrough": 10},
  "penalties": {"refund_discount_promise": 30, "aggregator_misroute": 15},
  "pass_threshold": 70,
  "bands": {"coach_me": [50, 69]}
}`

const validMissteps = `{
  "library": {
    "refund_offer": {"explain": "e1", "fix": "f1"},
    "aggregator_misroute": {"explain": "e2", "fix": "f2"}
  }
}`

func validFS() fstest.MapFS {
	return fstest.MapFS{
		"scenarios.json": {Data: []byte(validScenarios)},
		"rubric.json":    {Data: []byte(validRubric)},
		"missteps.json":  {Data: []byte(validMissteps)},
	}
}

func TestLoad_Builtin(t *testing.T) {
	c, err := NewLoader(Builtin(), nil, nil).Load()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Scenarios.Scenarios)
	assert.Equal(t, "1.0", c.Scenarios.Meta.DisplayVersion())
	assert.Equal(t, 70.0, c.Rubric.PassThreshold)
	assert.Equal(t, model.BandRange{50, 69}, c.Rubric.CoachMe())
	assert.NotEmpty(t, c.Hints.For("aggregator-late"))

	sc, ok := c.Scenarios.Find("aggregator-late")
	require.True(t, ok)
	assert.True(t, sc.HasTag(model.TagAggregator))

	angry, ok := c.Scenarios.Find("angry-regular")
	require.True(t, ok)
	assert.True(t, angry.NeedsEscalation())
}

func TestLoad_MinimalWithoutHints(t *testing.T) {
	c, err := NewLoader(validFS(), nil, nil).Load()
	require.NoError(t, err)

	assert.Equal(t, "2.1", c.Scenarios.Meta.Version)
	assert.Nil(t, c.Scenarios.Scenarios[0].EscalateIf, "absent escalate_if decodes as empty")
	assert.Empty(t, c.Hints.For("s1"))
	assert.Equal(t, "e2", c.Missteps.Library[model.MisstepAggregatorMisroute].Explain)
}

func TestLoad_YAMLTwin(t *testing.T) {
	fsys := validFS()
	delete(fsys, "rubric.json")
	fsys["rubric.yaml"] = &fstest.MapFile{Data: []byte(`
weights:
  recognition_tone: 5
  least: 50
  empowerment: 20
  escalation: 10
  script_quality: 10
  ops_followthrough: 5
penalties:
  refund_discount_promise: 25
  aggregator_misroute: 10
pass_threshold: 75
bands:
  coach_me: [55, 74]
`)}

	c, err := NewLoader(fsys, nil, nil).Load()
	require.NoError(t, err)

	assert.Equal(t, 75.0, c.Rubric.PassThreshold)
	assert.Equal(t, 50.0, c.Rubric.Weights.LEAST)
	assert.Equal(t, 55.0, c.Rubric.CoachMe().Low())
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	fsys := validFS()
	delete(fsys, "missteps.json")

	_, err := NewLoader(fsys, nil, nil).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{
			name: "scenario without expected",
			file: "scenarios.json",
			data: `{"scenarios": [{"id": "s1", "title": "One", "level": 1, "trigger": "t"}]}`,
		},
		{
			name: "scenario level zero",
			file: "scenarios.json",
			data: `{"scenarios": [{"id": "s1", "title": "One", "level": 0, "trigger": "t", "expected": {"empowerment": "barista"}}]}`,
		},
		{
			name: "no scenarios",
			file: "scenarios.json",
			data: `{"scenarios": []}`,
		},
		{
			name: "rubric missing weight",
			file: "rubric.json",
			data: `{"weights": {"least": 40}, "penalties": {"refund_discount_promise": 1, "aggregator_misroute": 1}, "pass_threshold": 70, "bands": {"coach_me": [50, 69]}}`,
		},
		{
			name: "rubric without coach_me",
			file: "rubric.json",
			data: `{"weights": {"recognition_tone": 10, "least": 40, "empowerment": 20, "escalation": 10, "script_quality": 10, "ops_followthrough": 10}, "penalties": {"refund_discount_promise": 30, "aggregator_misroute": 15}, "pass_threshold": 70, "bands": {}}`,
		},
		{
			name: "negative penalty",
			file: "rubric.json",
			data: `{"weights": {"recognition_tone": 10, "least": 40, "empowerment": 20, "escalation": 10, "script_quality": 10, "ops_followthrough": 10}, "penalties": {"refund_discount_promise": -30, "aggregator_misroute": 15}, "pass_threshold": 70, "bands": {"coach_me": [50, 69]}}`,
		},
		{
			name: "misstep library missing key",
			file: "missteps.json",
			data: `{"library": {"refund_offer": {"explain": "e", "fix": "f"}}}`,
		},
		{
			name: "malformed json",
			file: "scenarios.json",
			data: `{"scenarios": [`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := validFS()
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}

			_, err := NewLoader(fsys, nil, nil).Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidContent)
		})
	}
}

func TestLoad_DuplicateScenarioIDs(t *testing.T) {
	fsys := validFS()
	fsys["scenarios.json"] = &fstest.MapFile{Data: []byte(`{"scenarios": [
		{"id": "s1", "title": "One", "level": 1, "trigger": "t", "expected": {"empowerment": "barista"}},
		{"id": "s1", "title": "Two", "level": 2, "trigger": "t", "expected": {"empowerment": "barista"}}
	]}`)}

	_, err := NewLoader(fsys, nil, nil).Load()
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestLoad_UsesCache(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	loader := NewLoader(validFS(), c, nil)

	_, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	// A second load of unchanged files reuses the validated entries
	_, err = loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}
