package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// IndexMissing indicates an expected index document was not found at load time
	IndexMissing ErrorCode = "INDEX_MISSING"
	// NotFound indicates a valid query with no matching entity/path/item
	NotFound ErrorCode = "NOT_FOUND"
	// Timeout indicates a module execution exceeded its budget
	Timeout ErrorCode = "TIMEOUT"
	// CorruptState indicates the pattern-statistics file failed to parse
	CorruptState ErrorCode = "CORRUPT_STATE"
	// MalformedInput indicates an entity/property record missing required fields
	MalformedInput ErrorCode = "MALFORMED_INPUT"
	// EmbeddingUnavailable indicates the embedding service is not reachable
	EmbeddingUnavailable ErrorCode = "EMBEDDING_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// KbError represents a flexkb error with code, message, and a suggested next step
type KbError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // underlying error (not exported to JSON)
}

// New creates a new KbError
func New(code ErrorCode, message string) *KbError {
	return &KbError{Code: code, Message: message}
}

// Wrap creates a new KbError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *KbError {
	return &KbError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *KbError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *KbError) Unwrap() error {
	return e.cause
}

// WithHint adds a suggested next step to the error
func (e *KbError) WithHint(hint string) *KbError {
	e.Hint = hint
	return e
}

// WithDetails adds details to the error
func (e *KbError) WithDetails(details interface{}) *KbError {
	e.Details = details
	return e
}

// Hints maps error codes to default suggested next steps, surfaced to the
// calling agent so it can recover without guessing.
var Hints = map[ErrorCode]string{
	IndexMissing:         "Run the extractor refresh pipeline to regenerate the index documents, then call refresh_index.",
	NotFound:             "Try search_by_capability with a broader query, or list_categories to explore the available APIs.",
	Timeout:              "Reduce the amount of data the module touches, or raise timeout_seconds.",
	CorruptState:         "The pattern store was reset; recorded statistics start fresh from this point.",
	EmbeddingUnavailable: "Keyword search remains available; start the embedding service to restore semantic search.",
}

// HintFor returns the default hint for an error code, or "".
func HintFor(code ErrorCode) string {
	return Hints[code]
}

// CodeOf extracts the ErrorCode from an error, or InternalError for
// untyped errors.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var kb *KbError
	if stderrors.As(err, &kb) {
		return kb.Code
	}
	return InternalError
}
