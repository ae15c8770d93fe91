package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agentstudio-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// stateRowID is the primary key of the single row holding the document.
const stateRowID = 1

// PostgresStore keeps the document in one JSONB row of a hosted database.
// Updates lock the row for the duration of the read-modify-write so
// concurrent mutations are serialized by the database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database, ensures the state table
// exists and seeds the initial empty document if the row is absent.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.ensureState(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureState(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS studio_state (
			id INT PRIMARY KEY,
			doc JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create state table: %w", err)
	}

	raw, err := json.Marshal(models.NewDocument())
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO studio_state (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`, stateRowID, raw)
	if err != nil {
		return fmt.Errorf("failed to seed state row: %w", err)
	}
	return nil
}

// View loads the document and runs fn against it.
func (s *PostgresStore) View(ctx context.Context, fn func(doc *models.Document) error) error {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM studio_state WHERE id = $1`, stateRowID).Scan(&raw)
	if err != nil {
		return fmt.Errorf("failed to load state document: %w", err)
	}

	doc := models.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("state document is corrupt: %w", err)
	}
	return fn(doc)
}

// Update runs fn against the document inside a transaction holding a row
// lock, then writes the full document back.
func (s *PostgresStore) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT doc FROM studio_state WHERE id = $1 FOR UPDATE`, stateRowID).Scan(&raw)
	if err != nil {
		return fmt.Errorf("failed to load state document: %w", err)
	}

	doc := models.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("state document is corrupt: %w", err)
	}
	if err := fn(doc); err != nil {
		return err
	}

	next, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize state document: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE studio_state SET doc = $1, updated_at = $2 WHERE id = $3`,
		next, time.Now().UTC(), stateRowID)
	if err != nil {
		return fmt.Errorf("failed to write state document: %w", err)
	}
	return tx.Commit(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
