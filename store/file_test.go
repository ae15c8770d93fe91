package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"agentstudio-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreInitializesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "store file should be created on first start")

	err = s.View(context.Background(), func(doc *models.Document) error {
		assert.Empty(t, doc.Users)
		assert.Empty(t, doc.Agents)
		assert.Empty(t, doc.Wallets)
		assert.Empty(t, doc.Logs)
		assert.Empty(t, doc.Commands)
		assert.Empty(t, doc.Actions)
		return nil
	})
	require.NoError(t, err)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)

	err = s.Update(ctx, func(doc *models.Document) error {
		doc.Users = append(doc.Users, models.User{ID: "user_1", Email: "a@b.c"})
		return nil
	})
	require.NoError(t, err)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	err = reopened.View(ctx, func(doc *models.Document) error {
		require.Len(t, doc.Users, 1)
		assert.Equal(t, "a@b.c", doc.Users[0].Email)
		return nil
	})
	require.NoError(t, err)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestFileStoreFailedUpdateKeepsPriorState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Update(ctx, func(doc *models.Document) error {
		doc.Users = append(doc.Users, models.User{ID: "user_1"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.View(ctx, func(doc *models.Document) error {
		assert.Empty(t, doc.Users, "failed update must not leak mutations")
		return nil
	})
	require.NoError(t, err)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	err = reopened.View(ctx, func(doc *models.Document) error {
		assert.Empty(t, doc.Users, "failed update must not be persisted")
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		id := i
		go func() {
			done <- s.Update(ctx, func(doc *models.Document) error {
				doc.Agents = append(doc.Agents, models.Agent{ID: string(rune('a' + id))})
				return nil
			})
		}()
	}
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	err := s.View(ctx, func(doc *models.Document) error {
		assert.Len(t, doc.Agents, 2, "serialized updates must both survive")
		return nil
	})
	require.NoError(t, err)
}
