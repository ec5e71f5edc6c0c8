package recs

import (
	"fmt"
	"strings"

	"github.com/jonathan/booklog-plus/internal/prompts"
)

// Prompt is the instruction/context pair sent to the model: Instruction
// carries the persona and the structural output contract, Context carries
// the serialized reading history or quiz profile. The two are separate
// fields rather than a line-split convention so the separation survives
// any prompt wording change.
type Prompt struct {
	Instruction string
	Context     string
}

// Phrase tables for the free-text quiz preference fields. Unknown values
// fall back to a generic phrase rather than failing the request.
var contentPreferencePhrases = map[string]string{
	"light":    "easygoing reads that don't demand too much",
	"balanced": "a balance of substance and accessibility",
	"deep":     "dense, challenging books that reward close attention",
}

var motivationPhrases = map[string]string{
	"entertainment": "pure enjoyment and a good story",
	"learning":      "learning something new about the world",
	"escape":        "escaping into a world unlike my own",
	"inspiration":   "inspiration and a fresh outlook on life",
}

const genericPreferencePhrase = "a mix of books across styles and moods"

// BuildHistoryPrompt builds the librarian prompt from validated reading
// history and to-read records. Output is byte-identical for identical
// input: no randomness, no timestamps. Retries therefore exercise only
// model sampling, never prompt drift.
func BuildHistoryPrompt(read []ReadEntry, planned []PlannedEntry) Prompt {
	var history strings.Builder
	for _, book := range read {
		history.WriteString(fmt.Sprintf("- %s by %s. I enjoyed the book because it made me reflect on %s\n",
			book.Title, book.Author, book.Reflection))
	}

	var future string
	if len(planned) > 0 {
		var sb strings.Builder
		sb.WriteString("\nBooks already on my to-read list (do not recommend these again):\n")
		for _, book := range planned {
			sb.WriteString(fmt.Sprintf("- %s by %s\n", book.Title, book.Author))
		}
		future = sb.String()
	}

	context := prompts.Format(prompts.MustGet("recommend.json", "librarian-context"), map[string]string{
		"History": history.String(),
		"Future":  future,
	})

	return Prompt{
		Instruction: prompts.MustGet("recommend.json", "librarian-system"),
		Context:     context,
	}
}

// BuildQuizPrompt builds the curator prompt from a validated quiz profile.
// Deterministic for identical profiles.
func BuildQuizPrompt(profile QuizProfile) Prompt {
	context := prompts.Format(prompts.MustGet("recommend.json", "curator-context"), map[string]string{
		"Genres":            strings.Join(profile.Genres, ", "),
		"ReadingTime":       profile.ReadingTime,
		"ContentPreference": preferencePhrase(contentPreferencePhrases, profile.ContentPreference),
		"Motivation":        preferencePhrase(motivationPhrases, profile.Motivation),
		"MovieGenres":       strings.Join(profile.FavoriteMovieGenres, ", "),
		"LearningInterests": strings.Join(profile.LearningInterests, ", "),
	})

	return Prompt{
		Instruction: prompts.MustGet("recommend.json", "curator-system"),
		Context:     context,
	}
}

// preferencePhrase maps a quiz answer through its phrase table, falling
// back to a generic phrase for unmapped values.
func preferencePhrase(table map[string]string, value string) string {
	if phrase, ok := table[strings.ToLower(strings.TrimSpace(value))]; ok {
		return phrase
	}
	return genericPreferencePhrase
}
