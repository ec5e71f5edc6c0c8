package recs

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jonathan/booklog-plus/internal/llm"
)

const (
	// DefaultMaxAttempts bounds the generate-parse loop. Three attempts cap
	// latency and model cost while still giving the model several chances
	// to satisfy a contract it is only instructed, not constrained, to follow.
	DefaultMaxAttempts = 3

	// samplingTemperature trades consistency for some creativity in picks.
	samplingTemperature = 0.7

	historyMaxTokens int32 = 300
	quizMaxTokens    int32 = 400
)

// Generator orchestrates one recommendation request: validate input
// records, build the prompt, call the model, parse and sanitize the
// response, and retry on contract violations up to a bound. The model call
// is the only non-deterministic step; everything around it is pure.
type Generator struct {
	client      llm.Client
	maxAttempts int
}

// NewGenerator creates a Generator around an injected model client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{
		client:      client,
		maxAttempts: DefaultMaxAttempts,
	}
}

// WithMaxAttempts returns a Generator with a different attempt bound.
// Values below 1 are ignored.
func (g *Generator) WithMaxAttempts(n int) *Generator {
	if n < 1 {
		return g
	}
	return &Generator{client: g.client, maxAttempts: n}
}

// Recommend produces exactly RecommendationCount recommendations from the
// user's reading history and to-read list. Malformed input records are
// dropped, not fatal. On success the returned set always has valid-or-absent
// links; on failure the error is either an APICallError (model service
// unreachable, fail fast) or an ExhaustedError (contract violations on
// every attempt).
func (g *Generator) Recommend(ctx context.Context, read []ReadEntry, planned []PlannedEntry) (RecommendationSet, error) {
	prompt := BuildHistoryPrompt(FilterReadEntries(read), FilterPlannedEntries(planned))
	return g.generate(ctx, prompt, historyMaxTokens)
}

// RecommendFromQuiz produces recommendations from a personality-quiz
// profile instead of reading history. The profile must be complete.
func (g *Generator) RecommendFromQuiz(ctx context.Context, profile QuizProfile) (RecommendationSet, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	prompt := BuildQuizPrompt(profile)
	return g.generate(ctx, prompt, quizMaxTokens)
}

// generate runs the bounded call-parse loop. The prompt is fixed across
// attempts, so only model sampling varies between them.
func (g *Generator) generate(ctx context.Context, prompt Prompt, maxTokens int32) (RecommendationSet, error) {
	req := llm.Request{
		System:      prompt.Instruction,
		User:        prompt.Context,
		Temperature: samplingTemperature,
		MaxTokens:   maxTokens,
		JSONOutput:  true,
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		raw, err := g.client.Generate(ctx, req, llm.TierStandard)
		if err != nil {
			return nil, &APICallError{Message: "recommendation request failed", Cause: err}
		}

		set, err := parseRecommendations(raw)
		if err != nil {
			log.Printf("[recs] attempt %d/%d rejected: %v", attempt, g.maxAttempts, err)
			lastErr = err
			continue
		}
		return set, nil
	}

	return nil, &ExhaustedError{Attempts: g.maxAttempts, Last: lastErr}
}

// parseRecommendations enforces the output contract on a raw model
// response and sanitizes links. Links that fail the syntactic gate are
// removed; the recommendation itself is kept.
func parseRecommendations(raw string) (RecommendationSet, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := validateContract(cleaned); err != nil {
		return nil, err
	}

	var set RecommendationSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return nil, &ContractError{Reason: "failed to decode recommendation array", Cause: err}
	}

	for i := range set {
		if set[i].Link != "" && !IsValidBookLink(set[i].Link) {
			log.Printf("[recs] stripping invalid link from %q: %s", set[i].Title, set[i].Link)
			set[i].Link = ""
		}
	}
	return set, nil
}
