package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"classscout/internal/pipeline"
	"classscout/internal/schedule"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduler until interrupted",
	Long: `Run keeps scraping every configured source on its own timeframe:
- Each source is scraped once on start
- Rescrapes follow the source's timeframe ("30m", "12h", "7d")
- Every cycle appends its records to the configured sinks

The process runs until interrupted with Ctrl-C or SIGTERM.

Example:
  classscout run
  classscout run --config ./classscout.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, err := buildSink(ctx, cfg, false)
	if err != nil {
		return err
	}

	fetcher, cleanup := buildFetcher(cfg, cfg.Sources, false)
	defer cleanup()

	p := pipeline.NewPipeline(fetcher, out)

	fmt.Fprintf(os.Stderr, "Scheduling %d sources; Ctrl-C to stop\n", len(cfg.Sources))

	schedule.New(p).Start(ctx, cfg.Sources)

	fmt.Fprintln(os.Stderr, "Stopped")

	return nil
}
