package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/baristacx/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *app {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Output.Dir = t.TempDir()
	cfg.Log.Level = "error"

	a, err := newApp(cfg, io.Discard)
	require.NoError(t, err)
	return a
}

func TestRunPractice_ScoreCommand(t *testing.T) {
	a := testApp(t)
	in := strings.NewReader("I'm sorry about that, I understand.\n\n   \nLet me replace it.\n/score\nignored after score\n")
	var out bytes.Buffer

	rep, err := runPractice(a.engine, "cold-latte", in, &out, true)
	require.NoError(t, err)

	assert.Equal(t, 84, rep.Score)
	assert.Equal(t, model.BandPass, rep.Band)
	assert.Len(t, rep.Messages, 3, "system prompt plus two accepted replies")
	assert.Contains(t, out.String(), "Scenario: Latte served lukewarm")
	assert.Contains(t, out.String(), "content v1.0")
}

func TestRunPractice_EOFFinishes(t *testing.T) {
	a := testApp(t)
	var out bytes.Buffer

	rep, err := runPractice(a.engine, "aggregator-late", strings.NewReader("I can give you a refund."), &out, false)
	require.NoError(t, err)

	assert.Equal(t, model.BandRedo, rep.Band)
	require.Len(t, rep.Missteps, 2)
	assert.Equal(t, model.MisstepRefundOffer, rep.Missteps[0].Key)
	assert.NotContains(t, out.String(), "Hints:")
}

func TestRunPractice_HintsCommand(t *testing.T) {
	a := testApp(t)
	var out bytes.Buffer

	_, err := runPractice(a.engine, "aggregator-late", strings.NewReader("/hints\n/score\n"), &out, false)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Hints:")
}

func TestRunPractice_UnknownScenario(t *testing.T) {
	a := testApp(t)

	_, err := runPractice(a.engine, "nope", strings.NewReader(""), io.Discard, false)
	assert.Error(t, err)
}

func TestDeliver_ExportsReports(t *testing.T) {
	a := testApp(t)
	rep, err := runPractice(a.engine, "cold-latte", strings.NewReader("thank you\n"), io.Discard, false)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, a.deliver(t.Context(), &out, rep))

	entries, err := os.ReadDir(a.cfg.Output.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e.Name(), "cx_session_cold-latte_"), e.Name())
	}
	assert.Contains(t, out.String(), "Band: ")
}

func TestNewApp_InvalidContentDir(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Content.Dir = filepath.Join(t.TempDir(), "missing")

	_, err := newApp(cfg, io.Discard)
	assert.Error(t, err)
}

func TestNewApp_InvalidLogLevel(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Log.Level = "chatty"

	_, err := newApp(cfg, io.Discard)
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v, model.DefaultConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "./cx-reports", cfg.Output.Dir)
	assert.Equal(t, []string{"json", "md"}, cfg.Output.Formats)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  dir: /tmp/reports
  formats: [json]
batch:
  workers: 9
lexicon:
  thank: ["cheers"]
`), 0o644))

	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reports", cfg.Output.Dir)
	assert.Equal(t, []string{"json"}, cfg.Output.Formats)
	assert.Equal(t, 9, cfg.Batch.Workers)
	assert.Equal(t, []string{"cheers"}, cfg.Lexicon["thank"])
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("BARISTACX_OUTPUT_DIR", "/srv/cx")

	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.SetEnvPrefix("BARISTACX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/srv/cx", cfg.Output.Dir)
}

func TestInitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".baristacx", "config.yaml")

	require.NoError(t, initConfigFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Barista CX Configuration File")
	assert.Contains(t, string(data), "workers: 4")

	assert.Error(t, initConfigFile(path), "existing file must not be overwritten")
}

func TestListScenarios(t *testing.T) {
	a := testApp(t)
	c, err := a.engine.Content()
	require.NoError(t, err)

	var out bytes.Buffer
	listScenarios(&out, c.Scenarios)

	assert.Contains(t, out.String(), "[L1] Latte served lukewarm  (cold-latte)")
	assert.Contains(t, out.String(), "tags: aggregator, delivery")
	assert.Contains(t, out.String(), "escalation expected")
}

func TestExplainMessages(t *testing.T) {
	a := testApp(t)
	var out bytes.Buffer

	explainMessages(&out, a.engine.Analyzer(), []string{"Thanks for waiting", "ok"})

	assert.Contains(t, out.String(), `[1] thank: "thanks"`)
	assert.Contains(t, out.String(), "[2] no signals")
}

func TestRunPractice_LongLine(t *testing.T) {
	a := testApp(t)
	long := "I'm sorry, " + strings.Repeat("truly ", 30000) + "let me replace it."
	in := strings.NewReader(long + "\n/score\n")

	rep, err := runPractice(a.engine, "cold-latte", in, io.Discard, false)
	require.NoError(t, err)

	assert.Len(t, rep.Messages, 2, "system prompt plus the long reply")
	assert.True(t, rep.Breakdown.LEAST.Apologize)
	assert.True(t, rep.Breakdown.LEAST.Solutionize)
}
