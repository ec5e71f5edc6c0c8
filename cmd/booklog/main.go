// Package main provides the entry point for the BookLog+ HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "booklog",
	Short: "BookLog+ reading log and recommendation server",
	Long:  "BookLog+ tracks finished books with reflections and generates personalized book recommendations and synopses via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
