package recs

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// recommendationSetSchema is the structural contract a model response must
// satisfy: an array of exactly 3 objects, each with non-empty title,
// author, and description, and an optional link. A null link is the same
// as an absent one; the sanitizer strips it rather than rejecting the
// response. The prompt states the same contract, but only this parser
// enforces it.
const recommendationSetSchema = `{
	"type": "array",
	"minItems": 3,
	"maxItems": 3,
	"items": {
		"type": "object",
		"required": ["title", "author", "description"],
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"author": {"type": "string", "minLength": 1},
			"description": {"type": "string", "minLength": 1},
			"link": {"type": ["string", "null"]}
		}
	}
}`

// validateContract checks a raw model response against the recommendation
// set schema. Any failure, including malformed JSON, is a ContractError.
func validateContract(jsonText string) error {
	schemaLoader := gojsonschema.NewStringLoader(recommendationSetSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// The schema is a compile-time constant, so a load error here means
		// the document is not valid JSON.
		return &ContractError{Reason: "response is not valid JSON", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		reasons = append(reasons, field+": "+desc.Description())
	}
	return &ContractError{Reason: strings.Join(reasons, "; ")}
}
