// Package session provides an in-process SessionStore used in tests and in
// tools that run without Redis.
package session

import (
	"context"
	"sync"

	"github.com/roomly/rental-system/internal/core/domain"
)

// MemoryStore holds the single session snapshot in memory. Setting a new
// snapshot replaces the previous one; the snapshot is lost when the process
// ends.
type MemoryStore struct {
	mu      sync.RWMutex
	current *domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Set(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := session
	s.current = &snapshot
	return nil
}

func (s *MemoryStore) Get(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, nil
	}
	snapshot := *s.current
	return &snapshot, nil
}

func (s *MemoryStore) LoggedIn(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return nil
}
