// Package main provides the Proverb Studio command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "proverb_agent",
	Short: "Proverb Studio video pipeline",
	Long:  "Proverb Studio turns a proverb into a short story and a screenplay, submits the screenplay to Synthesia as an avatar video, and tracks the video's rendering status.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
