package testutil

import (
	"fmt"
	"os"
)

// DatabaseConfig holds the connection strings of servers supplied by the
// environment. An empty field signals to use a testcontainer.
type DatabaseConfig struct {
	PostgresURL string
	MySQLURL    string
}

// GetDatabaseConfig reads database configuration from environment variables.
// STRATA_TEST_POSTGRES_URL and STRATA_TEST_MYSQL_URL take priority; otherwise
// the PostgreSQL URL may be assembled from STRATA_TEST_POSTGRES_HOST and its
// companion variables.
func GetDatabaseConfig() DatabaseConfig {
	cfg := DatabaseConfig{
		PostgresURL: os.Getenv("STRATA_TEST_POSTGRES_URL"),
		MySQLURL:    os.Getenv("STRATA_TEST_MYSQL_URL"),
	}

	if host := os.Getenv("STRATA_TEST_POSTGRES_HOST"); cfg.PostgresURL == "" && host != "" {
		cfg.PostgresURL = buildPostgresURL(
			getEnv("STRATA_TEST_POSTGRES_USER", "postgres"),
			getEnv("STRATA_TEST_POSTGRES_PASSWORD", ""),
			host,
			getEnv("STRATA_TEST_POSTGRES_PORT", "5432"),
			getEnv("STRATA_TEST_POSTGRES_DB", "postgres"),
			getEnv("STRATA_TEST_POSTGRES_SSLMODE", "prefer"),
		)
	}
	return cfg
}

// buildPostgresURL constructs a PostgreSQL connection string.
func buildPostgresURL(user, password, host, port, dbname, sslmode string) string {
	if password != "" {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			user, password, host, port, dbname, sslmode)
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s",
		user, host, port, dbname, sslmode)
}

// getEnv gets an environment variable with a fallback default value.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
