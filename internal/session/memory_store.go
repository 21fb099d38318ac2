package session

import (
	"context"
	"sync"
)

// MemoryStore keeps selections for the lifetime of the process
type MemoryStore struct {
	mu   sync.RWMutex
	sels map[string]Selection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sels: make(map[string]Selection)}
}

func (s *MemoryStore) Save(_ context.Context, sel Selection) error {
	if _, err := sanitizeID(sel.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sels[sel.ID] = sel
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (Selection, error) {
	if _, err := sanitizeID(id); err != nil {
		return Selection{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel, ok := s.sels[id]
	if !ok {
		return Selection{ID: id}, nil
	}
	return sel, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sels, id)
	return nil
}
