// Command logboard serves access-log statistics with a polling dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nginsight/logboard"
	"github.com/nginsight/logboard/analytics"
)

// version is set at build time via ldflags.
var version = "dev"

var cfgFile string

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "logboard",
	Short: "Access-log statistics with a polling dashboard",
	Long: `logboard reads a web server's access log, aggregates visit statistics
over a bounded trailing window, and serves them as JSON together with a
small polling dashboard. A tracking endpoint collects traffic-source
events into an append-only JSON-lines store.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./logboard.yaml)")
	rootCmd.PersistentFlags().String("access-log", "", "access log path")
	rootCmd.PersistentFlags().String("sources", "", "tracking store path")
	rootCmd.PersistentFlags().Int("window", 0, "trailing log lines scanned per stats pass")

	_ = viper.BindPFlag("access_log", rootCmd.PersistentFlags().Lookup("access-log"))
	_ = viper.BindPFlag("sources", rootCmd.PersistentFlags().Lookup("sources"))
	_ = viper.BindPFlag("window", rootCmd.PersistentFlags().Lookup("window"))

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the logboard version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("logboard %s\n", version)
	},
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/logboard")
		viper.SetConfigName("logboard")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("name", "logboard")
	viper.SetDefault("addr", ":9000")
	viper.SetDefault("access_log", "/var/log/nginx/access.log")
	viper.SetDefault("sources", "data/sources.jsonl")
	viper.SetDefault("window", analytics.DefaultWindow)
	viper.SetDefault("track_rate", 60)

	viper.SetEnvPrefix("logboard")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// buildConfig assembles the app configuration from flags, environment, and
// config file, in viper's usual precedence order.
func buildConfig() logboard.Config {
	return logboard.Config{
		Name:        viper.GetString("name"),
		Addr:        viper.GetString("addr"),
		AccessLog:   viper.GetString("access_log"),
		SourcesPath: viper.GetString("sources"),
		Window:      viper.GetInt("window"),
		TrackRate:   viper.GetInt("track_rate"),
	}
}
