package service

import (
	"context"
	"time"

	"agentstudio-backend/models"
	"agentstudio-backend/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletService handles business logic for wallets
type WalletService struct {
	store store.Store
}

// WalletServiceOption is a functional option for WalletService
type WalletServiceOption func(*WalletService)

// WithWalletStore sets the backing store
func WithWalletStore(s store.Store) WalletServiceOption {
	return func(w *WalletService) {
		w.store = s
	}
}

// NewWalletService creates a new wallet service
func NewWalletService(opts ...WalletServiceOption) *WalletService {
	s := &WalletService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WalletInput carries the fields of a wallet upsert.
type WalletInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Balance string `json:"balance"`
	AgentID string `json:"agentId"`
}

// ListWallets returns the caller's wallets in stored order.
func (s *WalletService) ListWallets(ctx context.Context, userID string) ([]models.Wallet, error) {
	var out []models.Wallet
	err := s.store.View(ctx, func(doc *models.Document) error {
		out = make([]models.Wallet, 0)
		for _, w := range doc.Wallets {
			if w.UserID == userID {
				out = append(out, w)
			}
		}
		return nil
	})
	return out, err
}

// UpsertWallet creates or merges a wallet keyed by (address, userId).
// Re-submission merges the incoming fields into the existing record.
func (s *WalletService) UpsertWallet(ctx context.Context, userID string, in WalletInput) (*models.Wallet, error) {
	if in.Address == "" {
		return nil, errValidation("Wallet address required")
	}

	balance := ""
	if in.Balance != "" {
		d, err := decimal.NewFromString(in.Balance)
		if err != nil {
			return nil, errValidation("Invalid balance value")
		}
		balance = d.StringFixed(liquidityPlaces)
	}

	now := time.Now().UTC()
	var result models.Wallet
	err := s.store.Update(ctx, func(doc *models.Document) error {
		for i, w := range doc.Wallets {
			if w.UserID != userID || w.Address != in.Address {
				continue
			}
			if in.Name != "" {
				w.Name = in.Name
			}
			if balance != "" {
				w.Balance = balance
			}
			if in.AgentID != "" {
				w.AgentID = in.AgentID
			}
			w.SynchronizedAt = now
			doc.Wallets[i] = w
			result = w
			return nil
		}

		result = models.Wallet{
			ID:             uuid.NewString(),
			UserID:         userID,
			Name:           in.Name,
			Address:        in.Address,
			Balance:        balance,
			AgentID:        in.AgentID,
			CreatedAt:      now,
			SynchronizedAt: now,
		}
		doc.Wallets = append(doc.Wallets, result)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
