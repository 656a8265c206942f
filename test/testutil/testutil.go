// Package testutil provides shared fixtures for strata integration tests.
//
// Databases run in testcontainers started once per test binary; each call to
// Session creates a fresh database in the shared server. Set
// STRATA_TEST_POSTGRES_URL or STRATA_TEST_MYSQL_URL to use an existing server
// instead.
package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pthm/strata/pkg/database"
)

// Singleton container state, one per driver.
var (
	postgresOnce sync.Once
	postgresDSN  string
	postgresErr  error

	mysqlOnce sync.Once
	mysqlDSN  string
	mysqlErr  error
)

// Drivers lists the drivers integration tests run against.
var Drivers = []string{database.DriverMySQL, database.DriverPgx, database.DriverPostgres}

// ensurePostgres lazily starts the PostgreSQL container.
// Safe for concurrent access via sync.Once.
func ensurePostgres() (string, error) {
	postgresOnce.Do(func() {
		if cfg := GetDatabaseConfig(); cfg.PostgresURL != "" {
			postgresDSN = cfg.PostgresURL
			return
		}

		ctx := context.Background()
		container, err := postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("postgres"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			postgresErr = fmt.Errorf("failed to start PostgreSQL container: %w", err)
			return
		}

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			_ = container.Terminate(ctx)
			postgresErr = fmt.Errorf("failed to get PostgreSQL connection string: %w", err)
			return
		}
		postgresDSN = dsn
		// Container is not stored - ryuk will handle cleanup automatically
	})
	return postgresDSN, postgresErr
}

// ensureMySQL lazily starts the MySQL container.
// Safe for concurrent access via sync.Once.
func ensureMySQL() (string, error) {
	mysqlOnce.Do(func() {
		if cfg := GetDatabaseConfig(); cfg.MySQLURL != "" {
			mysqlDSN = cfg.MySQLURL
			return
		}

		ctx := context.Background()
		container, err := mysql.Run(ctx,
			"mysql:8.4",
			mysql.WithDatabase("strata"),
			mysql.WithUsername("root"),
			mysql.WithPassword("test"),
		)
		if err != nil {
			mysqlErr = fmt.Errorf("failed to start MySQL container: %w", err)
			return
		}

		dsn, err := container.ConnectionString(ctx)
		if err != nil {
			_ = container.Terminate(ctx)
			mysqlErr = fmt.Errorf("failed to get MySQL connection string: %w", err)
			return
		}
		mysqlDSN = dsn
	})
	return mysqlDSN, mysqlErr
}

func adminDSN(driver string) (string, error) {
	switch driver {
	case database.DriverMySQL:
		return ensureMySQL()
	case database.DriverPostgres, database.DriverPgx:
		return ensurePostgres()
	}
	return "", fmt.Errorf("%w: %q", database.ErrUnknownDriver, driver)
}

// Session returns a session on a new, empty database served by driver. The
// session logs to tb's temp dir and the database is dropped when the test
// completes.
func Session(tb testing.TB, driver string, opts ...database.Option) *database.Session {
	tb.Helper()

	admin, err := adminDSN(driver)
	require.NoError(tb, err, "failed to start database server")

	name := uniqueDBName("strata")
	require.NoError(tb, execAdmin(context.Background(), driver, admin, "CREATE DATABASE "+name),
		"failed to create test database")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts = append([]database.Option{database.WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	s, err := database.Open(ctx, database.Config{
		Driver: driver,
		DSN:    replaceDBName(admin, name),
		LogDir: tb.TempDir(),
	}, opts...)
	require.NoError(tb, err, "failed to connect to test database")

	tb.Cleanup(func() {
		_ = s.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = execAdmin(ctx, driver, admin, dropDatabase(driver, name))
	})
	return s
}

// RecordsSession returns a Session with the records table created.
func RecordsSession(tb testing.TB, driver string, opts ...database.Option) *database.Session {
	tb.Helper()
	s := Session(tb, driver, opts...)
	for _, stmt := range RecordsSchema(driver) {
		_, err := s.Exec(context.Background(), stmt, nil)
		require.NoError(tb, err, "failed to create records table")
	}
	return s
}

// RecordsSchema returns the statements that create the records table and its
// creator index.
func RecordsSchema(driver string) []string {
	if driver == database.DriverMySQL {
		return []string{`CREATE TABLE records (
			record_id BIGINT AUTO_INCREMENT PRIMARY KEY,
			creator_id BIGINT NULL,
			creation_date DATETIME NULL,
			modified_date DATETIME NULL,
			activity_date DATETIME NULL,
			deleted TINYINT(1) NOT NULL DEFAULT 0,
			INDEX by_creator (creator_id)
		)`}
	}
	return []string{
		`CREATE TABLE records (
			record_id BIGSERIAL PRIMARY KEY,
			creator_id BIGINT,
			creation_date TIMESTAMP,
			modified_date TIMESTAMP,
			activity_date TIMESTAMP,
			deleted SMALLINT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX records_by_creator ON records (creator_id)`,
	}
}

// dropDatabase returns the statement dropping name. PostgreSQL force
// disconnects remaining sessions first.
func dropDatabase(driver, name string) string {
	if driver == database.DriverMySQL {
		return "DROP DATABASE IF EXISTS " + name
	}
	return "DROP DATABASE IF EXISTS " + name + " WITH (FORCE)"
}

func execAdmin(ctx context.Context, driver, dsn, stmt string) error {
	sqlDriver := driver
	if driver == database.DriverPostgres {
		sqlDriver = database.DriverPgx
	}
	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, stmt)
	return err
}

// uniqueDBName generates a unique database name with the given prefix.
func uniqueDBName(prefix string) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b))
}

// replaceDBName replaces the database name in a PostgreSQL URL or a MySQL
// DSN. Both keep the name after the last slash and before any parameters.
func replaceDBName(dsn, newDB string) string {
	for i := len(dsn) - 1; i >= 0; i-- {
		if dsn[i] == '/' {
			rest := ""
			for j := i + 1; j < len(dsn); j++ {
				if dsn[j] == '?' {
					rest = dsn[j:]
					break
				}
			}
			return dsn[:i+1] + newDB + rest
		}
	}
	return dsn
}
