package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// Supported driver names.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite"
)

// Config holds the parameters for Open.
type Config struct {
	// Driver is one of mysql, postgres, pgx or sqlite.
	Driver string

	// DSN is used as-is when set. Otherwise it is built from the fields
	// below.
	DSN string

	Host     string
	Port     int
	User     string
	Password string
	// Database is the database name, or the file path for sqlite.
	Database string
	// Params are extra driver parameters (e.g. sslmode, charset).
	Params map[string]string

	// LogDir enables the query log when set.
	LogDir string
}

// DataSourceName returns the driver-specific connection string.
func (c Config) DataSourceName() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}

	switch c.Driver {
	case DriverMySQL:
		if c.Host == "" || c.Database == "" {
			return "", fmt.Errorf("host and database are required for %s", c.Driver)
		}
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = c.Host
		if c.Port != 0 {
			mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		}
		mc.DBName = c.Database
		if len(c.Params) > 0 {
			mc.Params = make(map[string]string, len(c.Params))
			for k, v := range c.Params {
				mc.Params[k] = v
			}
		}
		return mc.FormatDSN(), nil

	case DriverPostgres, DriverPgx:
		if c.Host == "" || c.Database == "" {
			return "", fmt.Errorf("host and database are required for %s", c.Driver)
		}
		host := c.Host
		if c.Port != 0 {
			host = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		}
		u := &url.URL{
			Scheme: "postgres",
			Host:   host,
			Path:   "/" + c.Database,
		}
		if c.User != "" {
			if c.Password != "" {
				u.User = url.UserPassword(c.User, c.Password)
			} else {
				u.User = url.User(c.User)
			}
		}
		if len(c.Params) > 0 {
			q := u.Query()
			for k, v := range c.Params {
				q.Set(k, v)
			}
			u.RawQuery = q.Encode()
		}
		return u.String(), nil

	case DriverSQLite:
		if c.Database == "" {
			return "", fmt.Errorf("database path is required for %s", c.Driver)
		}
		return c.Database, nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}
