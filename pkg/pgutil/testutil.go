package pgutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"

	"github.com/chainsafe/token-launchpad/pkg/config"
)

const (
	testImage    = "postgres:16-alpine"
	testDatabase = "launchpad_test"
	testUser     = "launchpad"
	testPassword = "launchpad"

	connectDeadline = 15 * time.Second
)

// SetupTestDB starts a throwaway Postgres container and returns a connection
// to it. The container is removed when the test finishes. Tests are skipped
// when no container runtime is available.
func SetupTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, testImage,
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	db := connectWithin(t, &config.DatabaseConfig{
		Host:     host,
		Port:     port.Int(),
		User:     testUser,
		Password: testPassword,
		Database: testDatabase,
		SSLMode:  "disable",
	})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// connectWithin retries ConnectDB with doubling delays until connectDeadline.
func connectWithin(t *testing.T, cfg *config.DatabaseConfig) *bun.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), connectDeadline)
	defer cancel()

	delay := 100 * time.Millisecond
	for {
		db, err := ConnectDB(ctx, cfg, nil)
		if err == nil {
			return db
		}
		select {
		case <-ctx.Done():
			t.Fatalf("connect to test database: %v", err)
		case <-time.After(delay):
			delay *= 2
		}
	}
}

func exists(t *testing.T, db *bun.DB, query string, args ...any) bool {
	t.Helper()
	var found bool
	if err := db.NewSelect().ColumnExpr("EXISTS ("+query+")", args...).Scan(context.Background(), &found); err != nil {
		t.Fatalf("catalog lookup failed: %v", err)
	}
	return found
}

func tableExists(t *testing.T, db *bun.DB, table string) bool {
	t.Helper()
	return exists(t, db,
		"SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?", table)
}

// AssertTableExists fails the test if table is missing from the public schema.
func AssertTableExists(t *testing.T, db *bun.DB, table string) {
	t.Helper()
	if !tableExists(t, db, table) {
		t.Errorf("table %s does not exist", table)
	}
}

// AssertTableNotExists fails the test if table is present in the public schema.
func AssertTableNotExists(t *testing.T, db *bun.DB, table string) {
	t.Helper()
	if tableExists(t, db, table) {
		t.Errorf("table %s should not exist", table)
	}
}

// AssertIndexExists fails the test if index is missing from the public schema.
func AssertIndexExists(t *testing.T, db *bun.DB, index string) {
	t.Helper()
	if !exists(t, db, "SELECT 1 FROM pg_indexes WHERE schemaname = 'public' AND indexname = ?", index) {
		t.Errorf("index %s does not exist", index)
	}
}
