package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalArchive implements Archive on the local filesystem
type LocalArchive struct {
	basePath string
}

// NewLocalArchive creates a new local archive instance
func NewLocalArchive(basePath string) (*LocalArchive, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return &LocalArchive{
		basePath: basePath,
	}, nil
}

// Put writes a snapshot file under the base directory
func (a *LocalArchive) Put(ctx context.Context, name string, data []byte) (string, error) {
	fullPath := filepath.Join(a.basePath, filepath.Base(name))
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return fullPath, nil
}
