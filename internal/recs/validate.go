package recs

import (
	"log"

	"github.com/go-playground/validator/v10"
)

// FilterReadEntries validates raw read records against their schema and
// drops the ones that fail, logging each skip. A malformed entry never
// aborts the whole request.
func FilterReadEntries(entries []ReadEntry) []ReadEntry {
	validate := validator.New()

	valid := make([]ReadEntry, 0, len(entries))
	for i, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			log.Printf("[recs] skipping invalid read entry %d (%q): %v", i, entry.Title, err)
			continue
		}
		valid = append(valid, entry)
	}
	return valid
}

// FilterPlannedEntries validates raw to-read records and drops the ones
// that fail, logging each skip.
func FilterPlannedEntries(entries []PlannedEntry) []PlannedEntry {
	validate := validator.New()

	valid := make([]PlannedEntry, 0, len(entries))
	for i, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			log.Printf("[recs] skipping invalid to-read entry %d (%q): %v", i, entry.Title, err)
			continue
		}
		valid = append(valid, entry)
	}
	return valid
}

// Validate checks that all six quiz fields are present and non-empty.
func (p *QuizProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
