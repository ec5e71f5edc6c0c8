package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/booklog-plus/internal/config"
	"github.com/jonathan/booklog-plus/internal/db"
	"github.com/jonathan/booklog-plus/internal/llm"
	"github.com/jonathan/booklog-plus/internal/recs"
	"github.com/spf13/cobra"
)

var recommendCommand = &cobra.Command{
	Use:   "recommend",
	Short: "Generate book recommendations for a user from the command line",
	Long: `Fetches the user's reading history and to-read list, builds the recommendation
prompt, calls the model, and prints the validated recommendation set as JSON.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runRecommendCmd,
}

var (
	recConfigPath  string
	recUserID      string
	recQuiz        bool
	recMaxAttempts int
	recAPIKey      string
	recDatabaseURL string
	recVerbose     bool
)

func init() {
	// Config file flag (processed first)
	recommendCommand.Flags().StringVar(&recConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	recommendCommand.Flags().StringVarP(&recUserID, "user-id", "u", "", "User UUID whose shelves feed the prompt")
	recommendCommand.Flags().BoolVar(&recQuiz, "quiz", false, "Use the user's saved quiz answers instead of reading history")
	recommendCommand.Flags().IntVar(&recMaxAttempts, "max-attempts", 0, "Model call budget (0 uses the default)")
	recommendCommand.Flags().BoolVarP(&recVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	recommendCommand.Flags().StringVar(&recAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	recommendCommand.Flags().StringVar(&recDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(recommendCommand)
}

func runRecommendCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if recConfigPath != "" {
		loadedCfg, err := config.LoadConfig(recConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if recVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", recConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = recAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = recDatabaseURL
	}
	if cmd.Flags().Changed("max-attempts") {
		cfg.MaxAttempts = recMaxAttempts
	}

	// Step 3: Environment fallbacks for required fields
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	if recUserID == "" {
		return fmt.Errorf("--user-id is required")
	}
	uid, err := uuid.Parse(recUserID)
	if err != nil {
		return fmt.Errorf("invalid user-id format: %w", err)
	}

	// Connect to DB to fetch the user's shelves
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	generator := recs.NewGenerator(client)
	if cfg.MaxAttempts > 0 {
		generator = generator.WithMaxAttempts(cfg.MaxAttempts)
	}

	var set recs.RecommendationSet
	if recQuiz {
		set, err = recommendFromQuiz(ctx, database, generator, uid)
	} else {
		set, err = recommendFromHistory(ctx, database, generator, uid)
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(set)
}

func recommendFromHistory(ctx context.Context, database *db.DB, generator *recs.Generator, uid uuid.UUID) (recs.RecommendationSet, error) {
	logs, err := database.ListBookEntries(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reading history: %w", err)
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("no logged books for user %s; log at least one book first", uid)
	}

	toRead, err := database.ListToReadEntries(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch to-read list: %w", err)
	}

	read := make([]recs.ReadEntry, 0, len(logs))
	for _, bl := range logs {
		read = append(read, recs.ReadEntry{
			Title:      bl.BookName,
			Author:     bl.AuthorName,
			Reflection: bl.Reflection,
		})
	}
	planned := make([]recs.PlannedEntry, 0, len(toRead))
	for _, e := range toRead {
		planned = append(planned, recs.PlannedEntry{
			Title:  e.BookName,
			Author: e.AuthorName,
		})
	}

	return generator.Recommend(ctx, read, planned)
}

func recommendFromQuiz(ctx context.Context, database *db.DB, generator *recs.Generator, uid uuid.UUID) (recs.RecommendationSet, error) {
	saved, err := database.GetQuizResponse(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz answers: %w", err)
	}
	if saved == nil {
		return nil, fmt.Errorf("user %s has not taken the reading quiz", uid)
	}

	profile := recs.QuizProfile{
		Genres:              saved.Genres,
		ReadingTime:         saved.ReadingTime,
		ContentPreference:   saved.ContentPreference,
		Motivation:          saved.Motivation,
		FavoriteMovieGenres: saved.FavoriteMovies,
		LearningInterests:   saved.LearningInterests,
	}

	return generator.RecommendFromQuiz(ctx, profile)
}
