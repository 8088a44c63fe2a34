package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/jonathan/proverb-studio/internal/config"
	"github.com/jonathan/proverb-studio/internal/reconcile"
	"github.com/jonathan/proverb-studio/internal/store"
	"github.com/jonathan/proverb-studio/internal/synthesia"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll Synthesia for status changes on in-progress videos",
	Long:  "Run the status reconciliation loop: on a fixed interval, query Synthesia for every video still marked in_progress and persist any status change. Runs until the process is terminated.",
	RunE:  runWatch,
}

var (
	watchInterval    int
	watchAPIKey      string
	watchDatabaseURL string
)

func init() {
	watchCmd.Flags().IntVar(&watchInterval, "interval", 0, "Seconds between reconciliation passes (overrides VIDEO_STATUS_CHECK_INTERVAL)")
	watchCmd.Flags().StringVar(&watchAPIKey, "api-key", "", "Synthesia API key (overrides SYNTHESIA_API_KEY env var)")
	watchCmd.Flags().StringVar(&watchDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if watchInterval > 0 {
		cfg.CheckInterval = time.Duration(watchInterval) * time.Second
	}
	if watchAPIKey != "" {
		cfg.SynthesiaKey = watchAPIKey
	}
	if watchDatabaseURL != "" {
		cfg.DatabaseURL = watchDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	client, err := synthesia.NewClient(cfg.SynthesiaKey, "")
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr))
	connect := func(ctx context.Context) (reconcile.VideoStore, error) {
		return store.Connect(ctx, cfg.DatabaseURL)
	}

	watcher := reconcile.NewWatcher(cfg.CheckInterval, connect, client, logger)
	logger.Info("status watcher started", slog.Duration("interval", cfg.CheckInterval))

	return watcher.Run(context.Background())
}
