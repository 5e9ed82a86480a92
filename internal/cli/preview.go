package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"classscout/internal/config"
	"classscout/internal/model"
	"classscout/internal/pipeline"
	"classscout/internal/sink"
)

var (
	previewName    string
	previewRender  string
	previewSchema  []string
	previewTimeout time.Duration
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview <url>",
	Short: "Scrape one page and print the records",
	Long: `Preview scrapes a single page without touching any sink, for
checking what an adapter extracts before adding the source to the
config file.

Example:
  classscout preview https://example.com/classes
  classscout preview https://example.com/classes --name "My Gym Hoboken" --render js
  classscout preview https://example.com/classes --schema Title,AgeRange,Times`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewName, "name", "", "source name used for adapter dispatch")
	previewCmd.Flags().StringVar(&previewRender, "render", "", `force fetch mode ("static" or "js")`)
	previewCmd.Flags().StringSliceVar(&previewSchema, "schema", nil, "columns to print (default full schema)")
	previewCmd.Flags().DurationVar(&previewTimeout, "timeout", 2*time.Minute, "scrape timeout")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
	defer cancel()

	src := model.Source{
		Name:   previewName,
		URL:    args[0],
		Schema: previewSchema,
		Render: model.RenderMode(previewRender),
	}
	if src.Name == "" {
		src.Name = args[0]
	}

	switch src.Render {
	case model.RenderAuto, model.RenderStatic, model.RenderJS:
	default:
		return fmt.Errorf(`render must be "static", "js" or empty, got %q`, previewRender)
	}

	fetcher, cleanup := buildFetcher(config.Default(), []model.Source{src}, false)
	defer cleanup()

	p := pipeline.NewPipeline(fetcher, sink.NewPreview(os.Stdout))

	return p.Run(ctx, src)
}
