// Package database runs statements built by sqldsl against a relational
// database.
//
// A Session wraps a *sql.DB together with its SQL dialect. It executes single
// statements, runs statement batches as one transaction, and provides
// convenience wrappers for CRUD and schema statements:
//
//	s, err := database.Open(ctx, database.Config{
//	    Driver:   "mysql",
//	    Host:     "localhost",
//	    User:     "app",
//	    Database: "app",
//	    LogDir:   "/var/log/app/sql",
//	})
//	resp, err := s.RunTransaction(ctx,
//	    s.Dialect().BuildQueryInsert("records", values),
//	)
//
// # Drivers
//
// The mysql (go-sql-driver), postgres (lib/pq), pgx (pgx stdlib) and sqlite
// (modernc.org/sqlite) drivers are registered by this package.
//
// # Query log
//
// When a log directory is configured, every successful statement is appended
// to an hour-bucketed log file (see internal/auditlog).
//
// # Errors
//
// Statement failures are reported as *QueryError, which carries the driver's
// message and error code. Use IsQueryErr to test for them.
package database
