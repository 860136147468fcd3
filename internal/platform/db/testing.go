//go:build integration

package db

import (
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/gopherkit/env"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// Setup connects to the test database, applies the schema and returns a
// transaction that is rolled back when the test ends.
func Setup(t *testing.T) (*sql.DB, *sql.Tx) {
	t.Helper()

	const projRoot = "../../"

	if err := env.Load(projRoot + ".env.testing"); err != nil {
		t.Fatalf("failed to load environment file: %v", err)
	}

	cfg, err := config.Load(projRoot + "config.json")
	if err != nil {
		t.Fatalf("failed to load config file: %v", err)
	}

	conn, err := NewConnection(t.Context(), cfg.DB)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	migrateOnce.Do(func() {
		migrateErr = Migrate(t.Context(), conn)
	})
	if migrateErr != nil {
		t.Fatalf("failed to migrate database: %v", migrateErr)
	}

	tx, err := conn.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Logf("failed to rollback transaction: %v", err)
		}
	})

	return conn, tx
}

const queryCreateUser = `
INSERT INTO users (email, password_hash, first_name, last_name, nick, age)
VALUES ($1, 'hash', $2, 'Tester', $2, $3)
RETURNING id`

// CreateUser inserts an active user with the given nick inside tx and returns its id.
// The email is derived from the test name so parallel tests never collide.
func CreateUser(t *testing.T, tx *sql.Tx, nick string, age *int) int64 {
	t.Helper()

	email := strings.ToLower(strings.ReplaceAll(t.Name(), "/", ".")) + "." + nick + "@example.com"

	var id int64
	if err := tx.QueryRowContext(t.Context(), queryCreateUser, email, nick, age).Scan(&id); err != nil {
		t.Fatalf("failed to create user %q: %v", nick, err)
	}
	return id
}
