package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/maypok86/otter"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/pthm/strata/internal/auditlog"
	"github.com/pthm/strata/pkg/sqldsl"
)

var tracer = otel.Tracer("github.com/pthm/strata/pkg/database")

// columnCacheCapacity bounds the number of cached column lookups.
const columnCacheCapacity = 10000

// Session runs statements against one database.
// It is safe for concurrent use; connections come from the *sql.DB pool.
type Session struct {
	db      *sql.DB
	owned   bool
	dialect sqldsl.Dialect

	logDir string
	clock  func() time.Time
	audit  *auditlog.Writer
	logger *slog.Logger

	columnTTL time.Duration
	columns   *otter.Cache[string, bool]

	registerer prometheus.Registerer
	metrics    *metrics
}

// Option configures a Session.
type Option func(*Session)

// WithLogDir enables the query log rooted at dir.
func WithLogDir(dir string) Option {
	return func(s *Session) {
		s.logDir = dir
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithClock sets the time source for query log entries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.clock = now
	}
}

// WithColumnCache caches HasColumn results for ttl. Schema changes made
// through the session clear the cache; changes made elsewhere are picked up
// after ttl.
func WithColumnCache(ttl time.Duration) Option {
	return func(s *Session) {
		s.columnTTL = ttl
	}
}

// WithMetrics registers statement and transaction metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Session) {
		s.registerer = reg
	}
}

// DefaultLogger returns the logger used when WithLogger is not given:
// warnings and errors on stderr.
func DefaultLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}))
}

// New wraps an open database handle. The caller keeps ownership of db.
func New(db *sql.DB, dialect sqldsl.Dialect, opts ...Option) *Session {
	s := &Session{
		db:      db,
		dialect: dialect,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = DefaultLogger()
	}
	if s.logDir != "" {
		var aopts []auditlog.Option
		if s.clock != nil {
			aopts = append(aopts, auditlog.WithClock(s.clock))
		}
		s.audit = auditlog.New(s.logDir, aopts...)
	}
	if s.columnTTL > 0 {
		cache, err := otter.MustBuilder[string, bool](columnCacheCapacity).
			WithTTL(s.columnTTL).
			Build()
		if err != nil {
			s.logger.Warn("column cache disabled", "error", err)
		} else {
			s.columns = &cache
		}
	}
	if s.registerer != nil {
		s.metrics = newMetrics(s.registerer)
	}
	return s
}

// Open connects to the database described by cfg and verifies the
// connection. The returned session owns the connection pool.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Session, error) {
	dialect, ok := sqldsl.DialectFor(cfg.Driver)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	dsn, err := cfg.DataSourceName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if cfg.LogDir != "" {
		opts = append([]Option{WithLogDir(cfg.LogDir)}, opts...)
	}
	s := New(db, dialect, opts...)
	s.owned = true
	return s, nil
}

// Close releases the column cache and, for sessions created by Open, the
// connection pool.
func (s *Session) Close() error {
	if s.columns != nil {
		s.columns.Close()
	}
	if s.owned {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying database handle.
func (s *Session) DB() *sql.DB {
	return s.db
}

// Dialect returns the session's SQL dialect.
func (s *Session) Dialect() sqldsl.Dialect {
	return s.dialect
}

// Logger returns the session's logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// LogDir returns the query log directory, or "" when logging is disabled.
func (s *Session) LogDir() string {
	return s.logDir
}

// logQuery appends msg to the query log if one is configured.
func (s *Session) logQuery(msg string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Write(msg); err != nil {
		s.logger.Warn("writing query log", "dir", s.logDir, "error", err)
	}
}
