package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/baristacx/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var batchTimeout time.Duration

// batchCmd scores many transcripts
var batchCmd = &cobra.Command{
	Use:   "batch <dir|transcript>...",
	Short: "Score many transcripts in parallel",
	Long: `Batch scores every transcript it is given:
- Directories contribute their .json and .txt files
- Transcripts are scored in parallel with a configurable worker count
- Each report is exported to the output directory

Example:
  baristacx batch ./shift-2025-03-01
  baristacx batch ./attempts --workers 8 --output-dir ./reports
  baristacx batch a.txt b.json --writes-per-second 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().Float64("writes-per-second", 0, "throttle report writes (0 = unthrottled)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	_ = viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("batch.writes_per_second", batchCmd.Flags().Lookup("writes-per-second"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	a, err := setup()
	if err != nil {
		return err
	}

	paths, err := worker.CollectTranscripts(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no transcripts found in %v", args)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Barista CX Batch Scoring\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Transcripts:  %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", a.cfg.Batch.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", a.cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(a.engine, a.renderer, a.cfg.Batch, a.cfg.Output)
	results := processor.ProcessFiles(ctx, paths)

	success, failure := 0, 0
	bands := make(map[string]int)
	for _, res := range results {
		if res.Error != nil {
			failure++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Error)
			continue
		}
		success++
		bands[string(res.Report.Band)]++
		fmt.Fprintf(os.Stderr, "✓ %s → %s %d/100 (%s)\n", res.Path, res.Report.ScenarioID, res.Report.Score, res.Report.Band)
		a.writeCoachNote(ctx, res.Report, res.Files)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d transcripts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d (PASS %d, COACH-ME %d, REDO %d)\n", success, bands["PASS"], bands["COACH-ME"], bands["REDO"])
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failure)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", a.cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	if failure > 0 {
		return fmt.Errorf("%d of %d transcripts failed", failure, len(results))
	}
	return nil
}
