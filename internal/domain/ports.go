package domain

import "context"

// ContentExtractor turns an uploaded document into plain text.
type ContentExtractor interface {
	Extract(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// MaterialGenerator produces a study set for the given text and category.
// Its output is untrusted and must already be validated when returned.
type MaterialGenerator interface {
	Generate(ctx context.Context, text, category string) (*StudySet, error)
}

// DeckStore is an append-only per-owner store of study sets.
type DeckStore interface {
	// Create stores a new copy of deck for ownerID and returns the assigned id
	// and creation time in unix milliseconds.
	Create(ctx context.Context, ownerID string, deck *StudySet) (string, int64, error)
	// Query returns the owner's decks, newest first.
	Query(ctx context.Context, ownerID string) ([]*StudySet, error)
}
