package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"agentstudio-backend/models"
)

// FileStore persists the document as a single JSON file on disk. The whole
// file is rewritten on every update; writes go through a temp file and a
// rename so the document is never half-written at the JSON-syntax level.
type FileStore struct {
	mu   sync.RWMutex
	path string
	doc  *models.Document
}

// NewFileStore opens the JSON document at path, creating a fresh document
// with empty arrays if the file does not exist yet. A corrupt file is a
// fatal error; there is no recovery or schema migration.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &FileStore{path: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.doc = models.NewDocument()
		if err := s.persist(s.doc); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	doc := models.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("store file %s is corrupt: %w", path, err)
	}
	s.doc = doc
	return s, nil
}

// View runs fn against the in-memory document under a read lock.
func (s *FileStore) View(ctx context.Context, fn func(doc *models.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.doc)
}

// Update applies fn to a copy, writes the full document back to disk, and
// swaps the copy in. If fn or the write fails the prior state is kept.
func (s *FileStore) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.doc.Clone()
	if err != nil {
		return err
	}
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// Close is a no-op: every update is already flushed.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) persist(doc *models.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
