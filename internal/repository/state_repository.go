package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/apperrors"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
)

// StateRepository provides durable key/value storage of convergence state in
// the kv_store table. It has no transactional guarantees beyond a single
// upsert; serializing writers is the caller's job.
type StateRepository struct {
	db    *sql.DB
	codec *StateCodec
}

// NewStateRepository creates a new StateRepository with the provided database connection.
func NewStateRepository(db *sql.DB, codec *StateCodec) *StateRepository {
	return &StateRepository{db: db, codec: codec}
}

// Get returns the record stored under key, or nil when no record exists.
func (r *StateRepository) Get(ctx context.Context, key string) (*model.PersistedState, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE "key" = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query kv_store: %w", err)
	}

	state, err := r.codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return state, nil
}

// Set stores state under key, replacing any existing record.
func (r *StateRepository) Set(ctx context.Context, key string, state model.PersistedState) error {
	raw, err := r.codec.Encode(state)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO kv_store ("key", value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, raw, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to upsert kv_store: %w", err)
	}
	return nil
}

// UnavailableStateStore is the durable backing used when persistence is
// disabled. Every call fails, which routes the state store onto its
// in-memory fallback path.
type UnavailableStateStore struct {
	reason string
}

// NewUnavailableStateStore creates a store that always fails with reason.
func NewUnavailableStateStore(reason string) *UnavailableStateStore {
	return &UnavailableStateStore{reason: reason}
}

// Get always fails.
func (u *UnavailableStateStore) Get(_ context.Context, _ string) (*model.PersistedState, error) {
	return nil, fmt.Errorf("%w: %s", apperrors.ErrPersistenceUnavailable, u.reason)
}

// Set always fails.
func (u *UnavailableStateStore) Set(_ context.Context, _ string, _ model.PersistedState) error {
	return fmt.Errorf("%w: %s", apperrors.ErrPersistenceUnavailable, u.reason)
}
