// Package synopsis generates single-shot book synopses. Unlike the
// recommendation engine there is no structural contract and no retry loop:
// any failure is absorbed into a deterministic fallback string.
package synopsis

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/booklog-plus/internal/llm"
	"github.com/jonathan/booklog-plus/internal/prompts"
)

// Source says which shelf the book comes from; it selects the prompt persona.
type Source string

const (
	// SourceHistory is a book the user has already finished.
	SourceHistory Source = "history"
	// SourceFuture is a book on the user's to-read list.
	SourceFuture Source = "future"
)

const (
	samplingTemperature = 0.7
	maxTokens           = 100
)

// Generator produces synopses through an injected model client.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a synopsis Generator.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Synopsis returns a short synopsis for the given book. One model call,
// no retry; transport errors, empty responses, and anything else fall back
// to Fallback. A caller always gets usable text.
func (g *Generator) Synopsis(ctx context.Context, title, author string, source Source) string {
	key := "future"
	if source == SourceHistory {
		key = "history"
	}

	user := prompts.Format(prompts.MustGet("synopsis.json", key), map[string]string{
		"Title":  title,
		"Author": author,
	})

	raw, err := g.client.Generate(ctx, llm.Request{
		User:        user,
		Temperature: samplingTemperature,
		MaxTokens:   maxTokens,
	}, llm.TierLite)
	if err != nil {
		log.Printf("[synopsis] generation failed for %q, using fallback: %v", title, err)
		return Fallback(author)
	}

	text := llm.StripSurroundingQuotes(raw)
	if text == "" {
		return Fallback(author)
	}
	return text
}

// Fallback is the deterministic synopsis used when generation fails.
func Fallback(author string) string {
	return fmt.Sprintf("A notable work by %s. A synopsis isn't available right now, but readers keep coming back to it.", author)
}
