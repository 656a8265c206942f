package database

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
)

var (
	// ErrQuery is matched by every *QueryError.
	ErrQuery = errors.New("strata: query failed")

	// ErrEmptyTransaction is returned by RunTransaction when no statements
	// are given.
	ErrEmptyTransaction = errors.New("strata: transaction has no statements")

	// ErrUnknownDriver is returned by Open for unsupported driver names.
	ErrUnknownDriver = errors.New("strata: unknown database driver")
)

// QueryError reports a failed statement.
type QueryError struct {
	// Statement is the SQL that failed.
	Statement string
	// Code is the driver error code, if the driver reported one: SQLSTATE
	// for PostgreSQL, the error number for MySQL and the result code for
	// SQLite.
	Code string
	Err  error
}

func (e *QueryError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("query failed (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrQuery.
func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

// IsQueryErr returns true if err is or wraps a *QueryError.
func IsQueryErr(err error) bool {
	return errors.Is(err, ErrQuery)
}

func newQueryError(stmt string, err error) *QueryError {
	return &QueryError{Statement: stmt, Code: errorCode(err), Err: err}
}

// errorCode extracts the driver-specific error code from err.
func errorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return strconv.Itoa(int(myErr.Number))
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return strconv.Itoa(liteErr.Code())
	}
	return ""
}
