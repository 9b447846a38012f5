package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a lexicographically sortable id using crypto/rand entropy.
func NewULID() string {
	return ulid.Make().String()
}
