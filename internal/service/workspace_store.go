package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"study-deck/internal/cache"
	"study-deck/internal/domain"
	"study-deck/internal/logger"
	"study-deck/internal/workspace"

	"go.uber.org/zap"
)

// WorkspaceStore persists one workspace.State per session key. A key that
// was never saved loads as workspace.NewState().
type WorkspaceStore interface {
	Load(ctx context.Context, sessionKey string) (workspace.State, error)
	Save(ctx context.Context, sessionKey string, state workspace.State) error
}

// cacheWorkspaceStore keeps workspaces as JSON in the shared cache.
type cacheWorkspaceStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewWorkspaceStore returns a cache-backed store, or an in-process one when
// no cache is configured.
func NewWorkspaceStore(c domain.Cache, ttl time.Duration) WorkspaceStore {
	if c == nil {
		logger.Get().Warn("WorkspaceStore initialized without cache. Workspaces are kept in memory.")
		return NewMemoryWorkspaceStore()
	}
	return &cacheWorkspaceStore{cache: c, ttl: ttl}
}

func (s *cacheWorkspaceStore) Load(ctx context.Context, sessionKey string) (workspace.State, error) {
	data, err := s.cache.Get(ctx, cache.WorkspaceKey(sessionKey))
	if errors.Is(err, domain.ErrCacheMiss) {
		return workspace.NewState(), nil
	}
	if err != nil {
		return workspace.State{}, domain.NewInternalError("failed to load workspace", err)
	}

	state := workspace.NewState()
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		logger.Get().Error("Corrupt workspace in cache, starting fresh",
			zap.String("session", sessionKey), zap.Error(err))
		return workspace.NewState(), nil
	}
	return state, nil
}

func (s *cacheWorkspaceStore) Save(ctx context.Context, sessionKey string, state workspace.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return domain.NewInternalError("failed to encode workspace", err)
	}
	if err := s.cache.Set(ctx, cache.WorkspaceKey(sessionKey), string(data), s.ttl); err != nil {
		return domain.NewInternalError("failed to save workspace", fmt.Errorf("session %s: %w", sessionKey, err))
	}
	return nil
}

type memoryWorkspaceStore struct {
	mu     sync.RWMutex
	states map[string]workspace.State
}

func NewMemoryWorkspaceStore() WorkspaceStore {
	return &memoryWorkspaceStore{states: make(map[string]workspace.State)}
}

func (s *memoryWorkspaceStore) Load(_ context.Context, sessionKey string) (workspace.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.states[sessionKey]; ok {
		return state, nil
	}
	return workspace.NewState(), nil
}

func (s *memoryWorkspaceStore) Save(_ context.Context, sessionKey string, state workspace.State) error {
	s.mu.Lock()
	s.states[sessionKey] = state
	s.mu.Unlock()
	return nil
}
