package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/baristacx/internal/model"
	"github.com/ppiankov/baristacx/internal/pipeline"
	"github.com/spf13/cobra"
)

// Practice chat commands
const (
	cmdScore = "/score"
	cmdHints = "/hints"
)

var noHints bool

// practiceCmd runs an interactive session
var practiceCmd = &cobra.Command{
	Use:   "practice <scenario-id>",
	Short: "Practice a scenario interactively",
	Long: `Practice opens a session for one scenario. Type your replies to the
guest one line at a time. Blank lines are ignored.

  /hints   show the hints for this scenario
  /score   finish and score the session (end of input does the same)

The report is printed and exported to the output directory.

Example:
  baristacx practice cold-latte
  baristacx practice aggregator-late --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		rep, err := runPractice(a.engine, args[0], cmd.InOrStdin(), cmd.OutOrStdout(), !noHints)
		if err != nil {
			return err
		}
		return a.deliver(context.Background(), cmd.OutOrStdout(), rep)
	},
}

func init() {
	rootCmd.AddCommand(practiceCmd)
	practiceCmd.Flags().BoolVar(&noHints, "no-hints", false, "do not show hints when the session opens")
}

// runPractice drives one session from line-oriented input until /score or EOF
func runPractice(engine *pipeline.Engine, scenarioID string, in io.Reader, out io.Writer, showHints bool) (*model.Report, error) {
	s, err := engine.Open(scenarioID)
	if err != nil {
		return nil, err
	}
	c, err := engine.Content()
	if err != nil {
		return nil, err
	}
	hints := c.Hints.For(s.Scenario.ID)

	fmt.Fprintf(out, "Barista CX Bot · content v%s\n\n", c.Scenarios.Meta.DisplayVersion())
	for _, m := range s.Messages() {
		fmt.Fprintf(out, "%s\n\n", m.Text)
	}
	if showHints {
		printHints(out, hints)
	}
	fmt.Fprintf(out, "Reply to the guest. Type %s when done.\n", cmdScore)

	scanner := pipeline.NewLineScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		switch strings.TrimSpace(strings.ToLower(line)) {
		case cmdScore:
			return engine.Finish(s)
		case cmdHints:
			printHints(out, hints)
			continue
		}

		if _, err := s.Send(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	fmt.Fprintln(out)
	return engine.Finish(s)
}

func printHints(w io.Writer, hints []string) {
	if len(hints) == 0 {
		return
	}
	fmt.Fprintln(w, "Hints:")
	for _, h := range hints {
		fmt.Fprintf(w, "  • %s\n", h)
	}
	fmt.Fprintln(w)
}
