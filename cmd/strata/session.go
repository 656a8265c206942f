package main

import (
	"context"
	"errors"

	"github.com/pthm/strata/internal/cli"
	"github.com/pthm/strata/pkg/database"
)

// resolveDSN returns the connection string from the flag or the config.
func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return "", cli.ConfigError("database configuration", err)
	}
	if dsn == "" {
		return "", cli.ConfigError("database connection is required (use --db or set in config)", nil)
	}
	return dsn, nil
}

// openSession connects with the effective configuration. The caller closes
// the session.
func openSession(ctx context.Context) (*database.Session, error) {
	dsn, err := resolveDSN(dbURL)
	if err != nil {
		return nil, err
	}

	sc := cfg.Session()
	sc.DSN = dsn

	opts := []database.Option{database.WithLogger(logger)}
	if cfg.ColumnCacheTTL > 0 {
		opts = append(opts, database.WithColumnCache(cfg.ColumnCacheTTL))
	}

	s, err := database.Open(ctx, sc, opts...)
	if err != nil {
		if errors.Is(err, database.ErrUnknownDriver) {
			return nil, cli.ConfigError("database configuration", err)
		}
		return nil, cli.DBConnectError("connecting to database", err)
	}
	logger.Info("connected", "driver", sc.Driver, "log_dir", s.LogDir())
	return s, nil
}

// withSession opens a session, runs fn and closes the session.
func withSession(ctx context.Context, fn func(*database.Session) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(s)
}
