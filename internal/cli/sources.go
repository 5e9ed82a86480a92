package cli

import (
	"os"

	"github.com/spf13/cobra"

	"classscout/internal/format"
	"classscout/internal/schedule"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources",
	Long: `Display every usable source from the config file with its resolved
render mode and rescrape interval.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(cfg.Sources))
		for _, src := range cfg.Sources {
			render := string(src.Render)
			if render == "" {
				render = "auto"
			}
			rows = append(rows, []string{
				src.Name,
				src.URL,
				render,
				schedule.ParseTimeframe(src.Timeframe).String(),
			})
		}

		return format.Table(os.Stdout, []string{"Name", "URL", "Render", "Interval"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
