package store

import (
	"context"
	"fmt"
	"os"

	"agentstudio-backend/models"
)

// Store is the narrow contract over the state document. Every handler
// performs a whole-document read-modify-write through it; Update runs fn
// on a private copy and persists atomically, so concurrent requests are
// serialized rather than racing the way the original flat-file service did.
type Store interface {
	// View runs fn against a read-only snapshot of the document.
	View(ctx context.Context, fn func(doc *models.Document) error) error

	// Update runs fn against a mutable copy of the document and persists
	// the result if fn returns nil. On error nothing is changed.
	Update(ctx context.Context, fn func(doc *models.Document) error) error

	// Close releases any underlying resources.
	Close() error
}

// Driver represents the store backend type
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverPostgres Driver = "postgres"
)

// NewStoreFromEnv creates a store instance from environment variables.
// STORE_DRIVER selects the variant; exactly one variant runs per deployment.
func NewStoreFromEnv(ctx context.Context) (Store, error) {
	driver := os.Getenv("STORE_DRIVER")
	if driver == "" {
		driver = "file" // Default to the flat-file variant
	}

	switch Driver(driver) {
	case DriverMemory:
		return NewMemoryStore(), nil

	case DriverFile:
		path := os.Getenv("DATABASE_PATH")
		if path == "" {
			path = "./data/studio.json"
		}
		return NewFileStore(path)

	case DriverPostgres:
		connString := os.Getenv("DATABASE_URL")
		if connString == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for the postgres store")
		}
		return NewPostgresStore(ctx, connString)

	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}
