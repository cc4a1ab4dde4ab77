package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nginsight/logboard"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stats API and dashboard",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address")
	serveCmd.Flags().String("name", "", "site name shown on the dashboard")
	serveCmd.Flags().Int("track-rate", 0, "max tracking posts per address per minute")

	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("name", serveCmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("track_rate", serveCmd.Flags().Lookup("track-rate"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := buildConfig()
	app := logboard.New(cfg)
	defer app.Close()

	log.Printf("logboard: reading %s, tracking to %s", cfg.AccessLog, cfg.SourcesPath)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
