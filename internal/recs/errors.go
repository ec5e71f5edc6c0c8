package recs

import "fmt"

// APICallError represents a transport or authentication failure talking to
// the model service. These are not retried: a dead service will not come
// back within a request, unlike a model that merely replied off-contract.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ContractError represents a model response that violates the output
// contract: malformed JSON, wrong array length, or missing fields.
// Contract violations are retryable up to the attempt bound.
type ContractError struct {
	Reason string
	Cause  error
}

func (e *ContractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("response contract violation: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("response contract violation: %s", e.Reason)
}

func (e *ContractError) Unwrap() error {
	return e.Cause
}

// ExhaustedError is the terminal failure after every attempt produced a
// contract violation. Callers must treat this as a hard error, never as an
// empty recommendation set.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("unable to obtain a valid recommendation set after %d attempts: %v", e.Attempts, e.Last)
	}
	return fmt.Sprintf("unable to obtain a valid recommendation set after %d attempts", e.Attempts)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}
