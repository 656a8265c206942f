package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DataSourceName(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "explicit dsn wins",
			cfg:  Config{Driver: DriverMySQL, DSN: "user@tcp(x)/db", Host: "ignored"},
			want: "user@tcp(x)/db",
		},
		{
			name: "mysql",
			cfg:  Config{Driver: DriverMySQL, Host: "db", Port: 3306, User: "app", Password: "pw", Database: "app"},
			want: "app:pw@tcp(db:3306)/app",
		},
		{
			name: "postgres",
			cfg: Config{
				Driver: DriverPostgres, Host: "db", Port: 5432, User: "app", Password: "pw", Database: "app",
				Params: map[string]string{"sslmode": "disable"},
			},
			want: "postgres://app:pw@db:5432/app?sslmode=disable",
		},
		{
			name: "pgx without password",
			cfg:  Config{Driver: DriverPgx, Host: "db", User: "app", Database: "app"},
			want: "postgres://app@db/app",
		},
		{
			name: "sqlite",
			cfg:  Config{Driver: DriverSQLite, Database: "/tmp/strata.db"},
			want: "/tmp/strata.db",
		},
		{name: "mysql missing host", cfg: Config{Driver: DriverMySQL, Database: "app"}, wantErr: true},
		{name: "sqlite missing path", cfg: Config{Driver: DriverSQLite}, wantErr: true},
		{name: "unknown driver", cfg: Config{Driver: "oracle"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.DataSourceName()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"pgx", &pgconn.PgError{Code: "42P01"}, "42P01"},
		{"lib/pq", &pq.Error{Code: "23505"}, "23505"},
		{"mysql", &mysql.MySQLError{Number: 1062}, "1062"},
		{"wrapped", fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1146}), "1146"},
		{"plain", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err))
		})
	}
}

func TestQueryError(t *testing.T) {
	err := newQueryError("SELECT 1", &pq.Error{Code: "42P01", Message: "relation does not exist"})

	assert.True(t, IsQueryErr(err))
	assert.True(t, IsQueryErr(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsQueryErr(errors.New("other")))
	assert.Equal(t, "42P01", err.Code)
	assert.Contains(t, err.Error(), "42P01")
}
