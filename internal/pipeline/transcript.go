package pipeline

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// scenarioDirective opens a plain-text transcript
const scenarioDirective = "# scenario:"

// MaxLineBytes is the longest message line accepted from text input
const MaxLineBytes = 1 << 20

// NewLineScanner returns a line scanner that accepts lines up to MaxLineBytes
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	return scanner
}

// Transcript is a recorded attempt replayed by the score and batch commands
type Transcript struct {
	ScenarioID string    `json:"scenarioId"`
	StartedAt  time.Time `json:"startedAt,omitempty"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
	Messages   []string  `json:"messages"`

	// Source is the file the transcript was read from
	Source string `json:"-"`
}

// ReadTranscript loads a transcript file. JSON files carry the full
// structure; any other file is plain text whose first non-blank line is
// "# scenario: <id>" followed by one operator message per line.
func ReadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var t *Transcript
	if strings.EqualFold(filepath.Ext(path), ".json") {
		t, err = parseJSONTranscript(data)
	} else {
		t, err = ParseTextTranscript(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Source = path
	return t, nil
}

func parseJSONTranscript(data []byte) (*Transcript, error) {
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}
	if strings.TrimSpace(t.ScenarioID) == "" {
		return nil, fmt.Errorf("transcript has no scenarioId")
	}
	return &t, nil
}

// ParseTextTranscript parses the plain-text transcript format
func ParseTextTranscript(data []byte) (*Transcript, error) {
	var t Transcript
	scanner := NewLineScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if t.ScenarioID == "" {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if !strings.HasPrefix(strings.ToLower(trimmed), scenarioDirective) {
				return nil, fmt.Errorf("transcript must start with %q", scenarioDirective+" <id>")
			}
			t.ScenarioID = strings.TrimSpace(trimmed[len(scenarioDirective):])
			if t.ScenarioID == "" {
				return nil, fmt.Errorf("transcript has an empty scenario id")
			}
			continue
		}
		t.Messages = append(t.Messages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}
	if t.ScenarioID == "" {
		return nil, fmt.Errorf("transcript is empty")
	}
	return &t, nil
}
