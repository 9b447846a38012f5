package validation

import (
	"testing"

	"study-deck/internal/domain"
	"study-deck/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidateDeckID(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateDeckID(util.NewULID()))
	assert.NoError(t, v.ValidateDeckID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))

	for _, id := range []string{"", "   ", "deck-1", "01ARZ3NDEKTSV4RRFFQ69G5FA", "01ARZ3NDEKTSV4RRFFQ69G5FAVX", "01ARZ3NDEKTSV4RRFFQ69G5FAU"} {
		err := v.ValidateDeckID(id)
		assert.True(t, domain.IsCode(err, domain.ErrInvalidInput), "id %q", id)
	}
}

func TestValidateUpload(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateUpload("notes.pdf", 10, 100))
	assert.NoError(t, v.ValidateUpload("notes.pdf", 100, 100))

	tests := map[string]struct {
		filename string
		size     int64
	}{
		"no name":   {"", 10},
		"empty":     {"notes.pdf", 0},
		"too large": {"notes.pdf", 101},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := v.ValidateUpload(tt.filename, tt.size, 100)
			assert.True(t, domain.IsCode(err, domain.ErrInvalidInput))
		})
	}
}
