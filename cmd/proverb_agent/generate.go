package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/jonathan/proverb-studio/internal/config"
	"github.com/jonathan/proverb-studio/internal/llm"
	"github.com/jonathan/proverb-studio/internal/pipeline"
	"github.com/jonathan/proverb-studio/internal/store"
	"github.com/jonathan/proverb-studio/internal/synthesia"
)

var generateCmd = &cobra.Command{
	Use:   "generate <proverb>",
	Short: "Generate a story and screenplay from a proverb and submit a video",
	Long:  "Generate a short story illustrating the given proverb, convert it into a screenplay, submit the screenplay to Synthesia, and store the video job's metadata.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var (
	generateModel       string
	generateTemperature float32
	generatePromptsDir  string
	generateMode        string
	generateTemplateID  string
	generateTitle       string
	generateDescription string
	generateProduction  bool
	generateAPIKey      string
	generateDatabaseURL string
)

func init() {
	generateCmd.Flags().StringVar(&generateModel, "model", "", "OpenAI model to use (default: gpt-4o)")
	generateCmd.Flags().Float32Var(&generateTemperature, "temperature", llm.DefaultTemperature, "Sampling temperature for the LLM")
	generateCmd.Flags().StringVar(&generatePromptsDir, "prompts-dir", "", "Directory where prompt templates are stored (default: data/prompts)")
	generateCmd.Flags().StringVar(&generateMode, "mode", pipeline.ModeDirect, "Submission mode: direct or template")
	generateCmd.Flags().StringVar(&generateTemplateID, "template-id", "", "Explicit Synthesia template id (template mode only)")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "Video title (default: the proverb)")
	generateCmd.Flags().StringVar(&generateDescription, "description", "", "Video description")
	generateCmd.Flags().BoolVar(&generateProduction, "production", false, "Submit a billed, non-test video")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Synthesia API key (overrides SYNTHESIA_API_KEY env var)")
	generateCmd.Flags().StringVar(&generateDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, args []string) error {
	if generateMode != pipeline.ModeDirect && generateMode != pipeline.ModeTemplate {
		return fmt.Errorf("invalid mode %q: must be %q or %q", generateMode, pipeline.ModeDirect, pipeline.ModeTemplate)
	}

	cfg := config.FromEnv()
	if generateModel != "" {
		cfg.Model = generateModel
	}
	if generatePromptsDir != "" {
		cfg.PromptsDir = generatePromptsDir
	}
	if generateAPIKey != "" {
		cfg.SynthesiaKey = generateAPIKey
	}
	if generateDatabaseURL != "" {
		cfg.DatabaseURL = generateDatabaseURL
	}

	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	llmClient, err := llm.NewOpenAIClient(cfg.OpenAIKey, cfg.Model, generateTemperature)
	if err != nil {
		return err
	}

	videoClient, err := synthesia.NewClient(cfg.SynthesiaKey, "")
	if err != nil {
		return err
	}

	ctx := context.Background()

	deps := pipeline.Deps{
		LLM:    llmClient,
		Videos: videoClient,
		Logger: slog.New(slog.NewTextHandler(os.Stderr)),
	}

	if cfg.DatabaseURL != "" {
		videos, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open metadata store: %w", err)
		}
		defer videos.Close()
		deps.Store = videos
	} else {
		fmt.Fprintf(os.Stderr, "Warning: DATABASE_URL not set, video metadata will not be persisted.\n")
	}

	_, err = pipeline.Run(ctx, deps, pipeline.RunOptions{
		Proverb:     args[0],
		PromptsDir:  cfg.PromptsDir,
		Mode:        generateMode,
		TemplateID:  generateTemplateID,
		Title:       generateTitle,
		Description: generateDescription,
		Test:        !generateProduction,
	})
	return err
}
