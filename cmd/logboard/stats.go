package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nginsight/logboard/analytics"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a one-shot summary of the access log",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit raw JSON instead of styled text")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	analyzer := analytics.NewAnalyzer(viper.GetString("access_log"), viper.GetInt("window"))
	store := analytics.NewSourceStore(viper.GetString("sources"))

	summary := analyzer.Stats()
	summary.Sources = store.Tally()

	var r Renderer
	if statsJSON {
		r = NewJSONRenderer(os.Stdout)
	} else {
		r = NewTextRenderer(os.Stdout)
	}
	return r.Render(summary)
}
