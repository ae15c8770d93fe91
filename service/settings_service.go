package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"agentstudio-backend/models"
	"agentstudio-backend/provider"
	"agentstudio-backend/store"
)

// SettingsService handles user configuration and connector probes.
type SettingsService struct {
	store store.Store
	ai    provider.AIProvider

	mu  sync.Mutex
	rng *rand.Rand
}

// SettingsServiceOption is a functional option for SettingsService
type SettingsServiceOption func(*SettingsService)

// WithSettingsStore sets the backing store
func WithSettingsStore(s store.Store) SettingsServiceOption {
	return func(svc *SettingsService) {
		svc.store = s
	}
}

// WithAIProvider sets the AI provider used for connector probes
func WithAIProvider(p provider.AIProvider) SettingsServiceOption {
	return func(svc *SettingsService) {
		svc.ai = p
	}
}

// NewSettingsService creates a new settings service
func NewSettingsService(opts ...SettingsServiceOption) *SettingsService {
	s := &SettingsService{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSettings returns the caller's settings block.
func (s *SettingsService) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	var out *models.Settings
	err := s.store.View(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.ID == userID {
				settings := u.Settings
				if settings.AI == nil {
					settings.AI = map[string]string{}
				}
				if settings.Connectors == nil {
					settings.Connectors = map[string]string{}
				}
				out = &settings
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSettings replaces the caller's settings block as given.
func (s *SettingsService) UpdateSettings(ctx context.Context, userID string, settings models.Settings) (*models.Settings, error) {
	if settings.AI == nil {
		settings.AI = map[string]string{}
	}
	if settings.Connectors == nil {
		settings.Connectors = map[string]string{}
	}
	err := s.store.Update(ctx, func(doc *models.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == userID {
				doc.Users[i].Settings = settings
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// TestConnector probes one configured integration. The "ai" target goes
// through the AI provider; any other target is a simulated handshake that
// succeeds iff the matching connector field is non-empty.
func (s *SettingsService) TestConnector(ctx context.Context, user *models.User, target string) (*provider.ProbeResult, error) {
	if target == "" {
		target = "ai"
	}

	if target == "ai" {
		if s.ai == nil {
			return nil, errors.New("ai provider not set")
		}
		cfg := user.Settings.AI
		if cfg == nil {
			cfg = map[string]string{}
		}
		return s.ai.Probe(ctx, cfg)
	}

	s.mu.Lock()
	latency := 20 + s.rng.Int63n(151)
	s.mu.Unlock()

	value := ""
	if user.Settings.Connectors != nil {
		value = user.Settings.Connectors[target]
	}
	if value == "" {
		return &provider.ProbeResult{
			Success: false,
			Latency: latency,
			Message: fmt.Sprintf("%s connector is not configured", target),
		}, nil
	}
	return &provider.ProbeResult{
		Success: true,
		Latency: latency,
		Message: fmt.Sprintf("%s connector handshake OK", target),
	}, nil
}
