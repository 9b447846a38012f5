package validation

import (
	"fmt"
	"strings"

	"study-deck/internal/domain"

	"github.com/oklog/ulid/v2"
)

// Validator checks request parameters before they reach the pipeline.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDeckID accepts the ULIDs issued by the deck stores.
func (v *Validator) ValidateDeckID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewInvalidInputError("Deck ID is required")
	}
	if _, err := ulid.ParseStrict(id); err != nil {
		return domain.NewInvalidInputError(fmt.Sprintf("Invalid deck ID format: %s", id))
	}
	return nil
}

// ValidateUpload checks the multipart metadata of an uploaded document.
func (v *Validator) ValidateUpload(filename string, size, limit int64) error {
	if strings.TrimSpace(filename) == "" {
		return domain.NewInvalidInputError("Uploaded file has no name")
	}
	if size <= 0 {
		return domain.NewInvalidInputError("Uploaded file is empty")
	}
	if size > limit {
		return domain.NewInvalidInputError(fmt.Sprintf("File exceeds %d bytes", limit))
	}
	return nil
}
