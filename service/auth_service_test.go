package service

import (
	"context"
	"strings"
	"testing"

	"agentstudio-backend/models"
	"agentstudio-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T, opts ...AuthServiceOption) (*AuthService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	opts = append([]AuthServiceOption{WithAuthStore(st)}, opts...)
	return NewAuthService(opts...), st
}

func userCount(t *testing.T, st store.Store) int {
	t.Helper()
	n := 0
	err := st.View(context.Background(), func(doc *models.Document) error {
		n = len(doc.Users)
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestRegisterCreatesUser(t *testing.T) {
	auth, _ := newAuthFixture(t)

	user, err := auth.Register(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(user.ID, "user_"))
	assert.True(t, strings.HasPrefix(user.Token, "nexus_"))
	assert.Equal(t, "alice", user.Name)
	assert.Empty(t, user.Password, "password hash must not cross the API boundary")
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, st := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "alice@example.com", "other456")
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, userCount(t, st), "duplicate register must not add a user")
}

func TestLoginWrongPasswordDoesNotRotateToken(t *testing.T) {
	auth, st := newAuthFixture(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = st.View(ctx, func(doc *models.Document) error {
		require.Len(t, doc.Users, 1)
		assert.Equal(t, registered.Token, doc.Users[0].Token)
		return nil
	})
	require.NoError(t, err)
}

func TestLoginRotatesToken(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	logged, err := auth.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEqual(t, registered.Token, logged.Token)

	// last login wins: the previous token stops matching
	_, err = auth.UserByToken(ctx, registered.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	user, err := auth.UserByToken(ctx, logged.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLoginUnknownAccountRequiresRegistration(t *testing.T) {
	auth, st := newAuthFixture(t)

	_, err := auth.Login(context.Background(), "nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrAccountNotFound)
	assert.Equal(t, 0, userCount(t, st))
}

func TestLoginAutoRegisterPolicy(t *testing.T) {
	auth, st := newAuthFixture(t, WithAutoRegister(true))
	ctx := context.Background()

	user, err := auth.Login(ctx, "fresh@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, 1, userCount(t, st))
	assert.Equal(t, "fresh", user.Name)

	// second login authenticates against the stored hash
	_, err = auth.Login(ctx, "fresh@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserByTokenFallsBackToScan(t *testing.T) {
	st := store.NewMemoryStore()
	seeded := NewAuthService(WithAuthStore(st))
	ctx := context.Background()

	registered, err := seeded.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	// a fresh service instance has an empty token index, as after a restart
	fresh := NewAuthService(WithAuthStore(st))
	user, err := fresh.UserByToken(ctx, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestCheckUser(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	exists, err := auth.CheckUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = auth.Register(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	exists, err = auth.CheckUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}
