package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/baristacx/internal/model"
	"github.com/spf13/cobra"
)

// scenariosCmd lists the available scenarios
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List practice scenarios",
	Long: `List every scenario in the loaded content with its level, tags and the
guest's opening line.

Example:
  baristacx scenarios
  baristacx scenarios --content-dir ./my-cafe`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		c, err := a.engine.Content()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		a.header(out)
		fmt.Fprintln(out)
		listScenarios(out, c.Scenarios)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

// listScenarios prints one block per scenario
func listScenarios(w io.Writer, set model.ScenarioSet) {
	for _, sc := range set.Scenarios {
		fmt.Fprintf(w, "[L%d] %s  (%s)\n", sc.Level, sc.Title, sc.ID)
		fmt.Fprintf(w, "     %s\n", sc.Trigger)
		if len(sc.Tags) > 0 {
			fmt.Fprintf(w, "     tags: %s\n", strings.Join(sc.Tags, ", "))
		}
		if sc.NeedsEscalation() {
			fmt.Fprintln(w, "     escalation expected")
		}
		fmt.Fprintln(w)
	}
}
