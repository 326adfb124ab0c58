// Package report turns a scored session into the exported report.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/baristacx/internal/model"
	"github.com/ppiankov/baristacx/internal/score"
	"github.com/ppiankov/baristacx/internal/session"
)

// Title heads every document export
const Title = "Barista CX Bot — Session Report"

// isoMillis matches the export timestamp layout (UTC, millisecond precision)
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Assemble attaches session metadata to a score result.
// now is the scoring time; the assembler performs no I/O.
func Assemble(result model.ScoreResult, s *session.Session, now time.Time) model.Report {
	goldScript := append([]string{}, s.Scenario.GoldScript...)
	missteps := append([]model.Misstep{}, result.Missteps...)
	checklist := append([]string{}, result.NextChecklist...)

	return model.Report{
		SessionID:     s.ID,
		ScenarioID:    s.Scenario.ID,
		ScenarioTitle: s.Scenario.Title,
		Timestamp:     now.UTC(),
		DurationSec:   durationSec(s.StartedAt, now),
		Score:         result.Score,
		Band:          result.Band,
		Breakdown:     result.Breakdown,
		Missteps:      missteps,
		GoldScript:    goldScript,
		NextChecklist: checklist,
		Messages:      s.Messages(),
	}
}

// durationSec returns elapsed whole seconds, halves rounding up
func durationSec(start, end time.Time) int {
	elapsed := end.Sub(start).Seconds()
	if elapsed < 0 {
		return 0
	}
	return score.Round(elapsed)
}

// Sections lays the report out as labeled blocks for document export:
// header, scenario, score/band, timestamp, duration, breakdown, missteps,
// gold script, checklist. Empty optional blocks are left out.
func Sections(r model.Report) []model.Section {
	sections := []model.Section{
		{Label: "Header", Lines: []string{Title}},
		{Label: "Scenario", Lines: []string{r.ScenarioTitle}},
		{Label: "Score", Lines: []string{fmt.Sprintf("Score: %d  |  Band: %s", r.Score, r.Band)}},
		{Label: "Timestamp", Lines: []string{FormatTimestamp(r.Timestamp)}},
		{Label: "Duration", Lines: []string{fmt.Sprintf("%ds", r.DurationSec)}},
		{Label: "Breakdown", Lines: breakdownLines(r.Breakdown)},
	}

	if len(r.Missteps) > 0 {
		var lines []string
		for _, m := range r.Missteps {
			lines = append(lines, fmt.Sprintf("• %s: %s", m.Key, m.Explain))
			lines = append(lines, fmt.Sprintf("  Fix: %s", m.Fix))
		}
		sections = append(sections, model.Section{Label: "Missteps & Fixes", Lines: lines})
	}

	if len(r.GoldScript) > 0 {
		sections = append(sections, model.Section{Label: "Gold Script", Lines: bullets(r.GoldScript)})
	}

	if len(r.NextChecklist) > 0 {
		sections = append(sections, model.Section{Label: "Next Attempt Checklist", Lines: bullets(r.NextChecklist)})
	}

	return sections
}

// Filename names an export file after the scenario and scoring time,
// e.g. cx_session_cold-latte_2025-03-01T09-00-00.000Z.json
func Filename(r model.Report, ext string) string {
	ts := strings.ReplaceAll(FormatTimestamp(r.Timestamp), ":", "-")
	return fmt.Sprintf("cx_session_%s_%s.%s", sanitize(r.ScenarioID), ts, strings.TrimPrefix(ext, "."))
}

// FormatTimestamp renders t in UTC with millisecond precision
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func breakdownLines(b model.Breakdown) []string {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return []string{fmt.Sprintf("(breakdown unavailable: %v)", err)}
	}
	return strings.Split(string(data), "\n")
}

func bullets(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = "• " + item
	}
	return out
}

// sanitize keeps scenario ids safe to use in a file name
func sanitize(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)
	if s == "" {
		s = "scenario"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
