package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewSessionID returns a URL-safe 21 character id for anonymous workspaces.
func NewSessionID() (string, error) {
	return gonanoid.New()
}

// ValidSessionID accepts ids made of the nanoid alphabet with a sane length.
func ValidSessionID(id string) bool {
	if len(id) < 8 || len(id) > 64 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}
