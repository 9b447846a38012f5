package repository

import (
	"context"
	"sync"
	"time"

	"study-deck/internal/domain"
	"study-deck/internal/util"
)

// MemoryDeckStore keeps decks in process. It backs local runs without a
// database and is safe for concurrent use.
type MemoryDeckStore struct {
	mu    sync.RWMutex
	decks map[string][]*domain.StudySet
	now   func() time.Time
}

func NewMemoryDeckStore() *MemoryDeckStore {
	return &MemoryDeckStore{decks: make(map[string][]*domain.StudySet), now: time.Now}
}

func (m *MemoryDeckStore) Create(ctx context.Context, ownerID string, deck *domain.StudySet) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, domain.NewPersistenceError(err)
	}
	if deck == nil {
		return "", 0, domain.NewInvalidInputError("deck is required")
	}
	stored := deck.Clone()
	stored.ID = util.NewULID()
	stored.UserID = ownerID
	stored.CreatedAt = m.now().UnixMilli()

	m.mu.Lock()
	m.decks[ownerID] = append(m.decks[ownerID], stored)
	m.mu.Unlock()
	return stored.ID, stored.CreatedAt, nil
}

func (m *MemoryDeckStore) Query(ctx context.Context, ownerID string) ([]*domain.StudySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewQueryError(err)
	}
	m.mu.RLock()
	out := make([]*domain.StudySet, 0, len(m.decks[ownerID]))
	for i := len(m.decks[ownerID]) - 1; i >= 0; i-- {
		out = append(out, m.decks[ownerID][i].Clone())
	}
	m.mu.RUnlock()
	SortNewestFirst(out)
	return out, nil
}

var _ domain.DeckStore = (*MemoryDeckStore)(nil)
