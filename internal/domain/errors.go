package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Pipeline errors
	ErrUnsupportedFormat    ErrorCode = "UNSUPPORTED_FORMAT"
	ErrExtractionFailed     ErrorCode = "EXTRACTION_FAILED"
	ErrGenerationFailed     ErrorCode = "GENERATION_FAILED"
	ErrGenerationInProgress ErrorCode = "GENERATION_IN_PROGRESS"
	ErrIngestInProgress     ErrorCode = "INGEST_IN_PROGRESS"
	ErrPersistenceFailed    ErrorCode = "PERSISTENCE_FAILED"
	ErrQueryFailed          ErrorCode = "QUERY_FAILED"
	ErrBackendProvisioning  ErrorCode = "BACKEND_PROVISIONING"

	// Workspace errors
	ErrInvalidCategory   ErrorCode = "INVALID_CATEGORY"
	ErrInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrNoActiveDeck      ErrorCode = "NO_ACTIVE_DECK"
	ErrDeckNotFound      ErrorCode = "DECK_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewUnsupportedFormatError(filename, contentType string) *DomainError {
	return NewError(ErrUnsupportedFormat,
		fmt.Sprintf("Unsupported file format: %s (%s). Only PDF is supported", filename, contentType), nil)
}

func NewExtractionError(err error) *DomainError {
	return NewError(ErrExtractionFailed, "Failed to extract text from document", err)
}

func NewGenerationError(err error) *DomainError {
	return NewError(ErrGenerationFailed, "Failed to generate study material", err)
}

func NewPersistenceError(err error) *DomainError {
	return NewError(ErrPersistenceFailed, "Failed to save deck", err)
}

func NewQueryError(err error) *DomainError {
	return NewError(ErrQueryFailed, "Failed to load decks", err)
}

func NewProvisioningError(err error) *DomainError {
	return NewError(ErrBackendProvisioning, "Deck store is not provisioned yet", err)
}

func NewInvalidCategoryError(category string) *DomainError {
	return NewError(ErrInvalidCategory, fmt.Sprintf("Invalid category: %s", category), nil)
}

func NewInvalidTransitionError(err error) *DomainError {
	return NewError(ErrInvalidTransition, "Action not allowed in the current state", err)
}

func NewNoActiveDeckError() *DomainError {
	return NewError(ErrNoActiveDeck, "No active deck", nil)
}

func NewDeckNotFoundError(id string) *DomainError {
	return NewError(ErrDeckNotFound, fmt.Sprintf("Deck not found with ID: %s", id), nil)
}
