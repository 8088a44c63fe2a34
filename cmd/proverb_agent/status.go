package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/proverb-studio/internal/synthesia"
)

var statusCmd = &cobra.Command{
	Use:   "status <video-id>",
	Short: "Query the current status of a single Synthesia video",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var statusAPIKey string

func init() {
	statusCmd.Flags().StringVar(&statusAPIKey, "api-key", "", "Synthesia API key (overrides SYNTHESIA_API_KEY env var)")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, args []string) error {
	client, err := synthesia.NewClient(statusAPIKey, "")
	if err != nil {
		return err
	}

	status, err := client.GetVideoStatus(context.Background(), args[0])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", status.ID, status.Status)
	return nil
}
