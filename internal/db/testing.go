package db

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/jackc/pgx/v4/pgxpool"
)

func testMigrationsPath() string {
	if path := os.Getenv("TEST_MIGRATIONS_PATH"); path != "" {
		return path
	}
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

type testingT interface {
	Skip(args ...interface{})
	Fatalf(format string, args ...interface{})
}

// CreateTestPool connects to TEST_POSTGRESQL_URL after applying migrations.
// Tests are skipped when the variable is not set.
func CreateTestPool(t testingT) *pgxpool.Pool {
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set")
	}
	if err := Migrate(connString, testMigrationsPath()); err != nil {
		t.Fatalf("%v", err)
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		t.Fatalf("could not connect to the database: %v", err)
	}
	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE users_register RESTART IDENTITY")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
