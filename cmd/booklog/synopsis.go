package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/booklog-plus/internal/llm"
	"github.com/jonathan/booklog-plus/internal/synopsis"
	"github.com/spf13/cobra"
)

var synopsisCommand = &cobra.Command{
	Use:   "synopsis",
	Short: "Generate a short synopsis for a single book",
	Long: `Calls the model once for a synopsis of the given book and prints it to stdout.
If the model is unreachable a deterministic fallback is printed instead, so the
command always succeeds once its arguments are valid.`,
	RunE: runSynopsisCmd,
}

var (
	synTitle  string
	synAuthor string
	synSource string
	synAPIKey string
)

func init() {
	synopsisCommand.Flags().StringVarP(&synTitle, "title", "t", "", "Book title (required)")
	synopsisCommand.Flags().StringVarP(&synAuthor, "author", "a", "", "Book author (required)")
	synopsisCommand.Flags().StringVar(&synSource, "source", "history", "Which shelf the book comes from: history or future")
	synopsisCommand.Flags().StringVar(&synAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	_ = synopsisCommand.MarkFlagRequired("title")
	_ = synopsisCommand.MarkFlagRequired("author")

	rootCmd.AddCommand(synopsisCommand)
}

func runSynopsisCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	var source synopsis.Source
	switch synSource {
	case "history":
		source = synopsis.SourceHistory
	case "future":
		source = synopsis.SourceFuture
	default:
		return fmt.Errorf("invalid --source %q: must be history or future", synSource)
	}

	apiKey := synAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	generator := synopsis.NewGenerator(client)
	fmt.Println(generator.Synopsis(ctx, synTitle, synAuthor, source))
	return nil
}
