package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/repository"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/service"
)

// TestStoreTimeout bounds durable calls made by services built here.
const TestStoreTimeout = 2 * time.Second

// NewTestPiService creates a PiService backed by store.
func NewTestPiService(t *testing.T, store service.StateStore) *service.PiService {
	t.Helper()

	return service.NewPiService(store, TestStoreTimeout)
}

// NewTestStateRepository creates an unencrypted StateRepository on db.
func NewTestStateRepository(t *testing.T, db *sql.DB) *repository.StateRepository {
	t.Helper()

	codec, err := repository.NewStateCodec("")
	if err != nil {
		t.Fatalf("Failed to create state codec: %v", err)
	}
	return repository.NewStateRepository(db, codec)
}

// NewTestDBPiService creates a PiService persisting to a fresh in-memory database.
func NewTestDBPiService(t *testing.T) (*service.PiService, *sql.DB) {
	t.Helper()

	db := SetupTestDB(t)
	return NewTestPiService(t, NewTestStateRepository(t, db)), db
}

// NewTestSystemService creates a SystemService. db may be nil to simulate
// disabled persistence.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{"debug_dump": true})
}
