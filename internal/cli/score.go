package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/baristacx/internal/analyze"
	"github.com/ppiankov/baristacx/internal/pipeline"
	"github.com/spf13/cobra"
)

// scoreCmd scores a recorded transcript
var scoreCmd = &cobra.Command{
	Use:   "score <transcript>",
	Short: "Score a recorded transcript",
	Long: `Score replays a recorded session and exports its report.

Transcripts are either JSON:
  {"scenarioId": "cold-latte", "messages": ["I'm sorry...", "..."]}

or plain text whose first line names the scenario:
  # scenario: cold-latte
  I'm sorry about that.
  Let me replace it right now.

Example:
  baristacx score attempt.txt
  baristacx score attempt.json --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		t, err := pipeline.ReadTranscript(args[0])
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Scoring %s (%s, %d messages)\n", t.Source, t.ScenarioID, len(t.Messages))
			explainMessages(os.Stderr, a.engine.Analyzer(), t.Messages)
		}

		rep, err := a.engine.ScoreTranscript(t)
		if err != nil {
			return fmt.Errorf("score failed: %w", err)
		}
		return a.deliver(context.Background(), cmd.OutOrStdout(), rep)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

// explainMessages lists the phrases that fired in each message
func explainMessages(w io.Writer, analyzer *analyze.Analyzer, messages []string) {
	for i, m := range messages {
		matches := analyzer.Explain(m)
		if len(matches) == 0 {
			fmt.Fprintf(w, "  [%d] no signals\n", i+1)
			continue
		}
		for _, match := range matches {
			fmt.Fprintf(w, "  [%d] %s: %q\n", i+1, match.Category, match.Phrase)
		}
	}
}
