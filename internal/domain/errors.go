package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeInvalidConfiguration = "INVALID_CONFIGURATION"
	ErrCodeInvalidArgument      = "INVALID_ARGUMENT"
	ErrCodeIndexingFailed       = "INDEXING_FAILED"
	ErrCodeReviewFailed         = "REVIEW_FAILED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// Configuration errors; fatal at startup, not recoverable.
var (
	ErrInvalidChunkConfig     = NewDomainError(ErrCodeInvalidConfiguration, "invalid chunking parameters")
	ErrInvalidRetrieverConfig = NewDomainError(ErrCodeInvalidConfiguration, "invalid retriever parameters")
)

// Argument errors
var (
	ErrInvalidSearchLimit = NewDomainError(ErrCodeInvalidArgument, "search limit must be positive")
)

// NewIndexingFailed wraps an embedding or storage failure that aborted
// knowledge base indexing. The review may still run with a partial index.
func NewIndexingFailed(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeIndexingFailed, "knowledge base indexing failed", err)
}

// NewReviewFailed wraps a retrieval or generation failure. No verdict can
// be produced without a model response, so this propagates to the caller.
func NewReviewFailed(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeReviewFailed, "review pipeline failed", err)
}
