package store

import (
	"context"
	"sync"

	"agentstudio-backend/models"
)

// MemoryStore keeps the document in process memory only. It is the dev
// variant: state is lost on restart.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *models.Document
}

// NewMemoryStore creates an in-memory store with an empty document.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: models.NewDocument()}
}

// View runs fn against the current document under a read lock.
func (s *MemoryStore) View(ctx context.Context, fn func(doc *models.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.doc)
}

// Update applies fn to a copy of the document and swaps it in on success.
func (s *MemoryStore) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.doc.Clone()
	if err != nil {
		return err
	}
	if err := fn(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
