package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"agentstudio-backend/models"
	"agentstudio-backend/store"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and bearer-token resolution.
// It keeps a token index so protected requests resolve the caller in O(1)
// instead of scanning the user list.
type AuthService struct {
	store        store.Store
	autoRegister bool

	mu     sync.RWMutex
	tokens map[string]string // token -> user id
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// WithAuthStore sets the backing store
func WithAuthStore(s store.Store) AuthServiceOption {
	return func(a *AuthService) {
		a.store = s
	}
}

// WithAutoRegister enables the dev login policy: unknown emails are
// registered on the fly instead of rejected with "Account not found".
func WithAutoRegister(enabled bool) AuthServiceOption {
	return func(a *AuthService) {
		a.autoRegister = enabled
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{tokens: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AutoRegister reports the active login policy.
func (s *AuthService) AutoRegister() bool {
	return s.autoRegister
}

// Register creates a new account. Fails with ErrEmailTaken if the email is
// already present; emails are compared case-sensitively as stored.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errValidation("Email and password required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var created models.User
	err = s.store.Update(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				return ErrEmailTaken
			}
		}
		created = newUser(email, string(hash))
		doc.Users = append(doc.Users, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.indexToken(created.Token, created.ID)
	out := created.Sanitized()
	return &out, nil
}

// Login authenticates an email/password pair and rotates the bearer token.
// Unknown emails are rejected with ErrAccountNotFound unless the
// auto-register policy is enabled, in which case the account is created.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errValidation("Email and password required")
	}

	var (
		result   models.User
		oldToken string
	)
	err := s.store.Update(ctx, func(doc *models.Document) error {
		for i, u := range doc.Users {
			if u.Email != email {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
				return ErrInvalidCredentials
			}
			oldToken = u.Token
			doc.Users[i].Token = newSessionToken()
			result = doc.Users[i]
			return nil
		}
		if !s.autoRegister {
			return ErrAccountNotFound
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		result = newUser(email, string(hash))
		doc.Users = append(doc.Users, result)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if oldToken != "" {
		delete(s.tokens, oldToken)
	}
	s.tokens[result.Token] = result.ID
	s.mu.Unlock()

	out := result.Sanitized()
	return &out, nil
}

// CheckUser reports whether an account exists for the email.
func (s *AuthService) CheckUser(ctx context.Context, email string) (bool, error) {
	exists := false
	err := s.store.View(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

// UserByID loads a user record by id.
func (s *AuthService) UserByID(ctx context.Context, id string) (*models.User, error) {
	var found *models.User
	err := s.store.View(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.ID == id {
				copied := u
				found = &copied
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// UserByToken resolves a bearer token to its user. The index is consulted
// first; a miss falls back to a scan so tokens issued before this process
// started still resolve. Last login wins: a rotated-away token no longer
// matches any user.
func (s *AuthService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	s.mu.RLock()
	id, ok := s.tokens[token]
	s.mu.RUnlock()

	if ok {
		u, err := s.UserByID(ctx, id)
		if err == nil && u.Token == token {
			return u, nil
		}
		// stale index entry; drop it and fall through to the scan
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
	}

	var found *models.User
	err := s.store.View(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Token == token {
				copied := u
				found = &copied
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrInvalidToken
	}
	s.indexToken(token, found.ID)
	return found, nil
}

func (s *AuthService) indexToken(token, userID string) {
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
}

func newUser(email, passwordHash string) models.User {
	name := email
	if i := strings.Index(email, "@"); i > 0 {
		name = email[:i]
	}
	return models.User{
		ID:        newUserID(),
		Email:     email,
		Password:  passwordHash,
		Name:      name,
		Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=" + email,
		Token:     newSessionToken(),
		Settings:  models.NewSettings(),
		CreatedAt: time.Now().UTC(),
	}
}
