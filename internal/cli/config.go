package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pthm/strata/pkg/database"
)

const (
	maxWalkDepth = 25
)

// Config represents the strata configuration from strata.yaml.
type Config struct {
	// Database configuration
	Database DatabaseConfig `mapstructure:"database" json:"database"`

	// LogDir enables the query log when set.
	LogDir string `mapstructure:"log_dir" json:"log_dir"`

	// ColumnCacheTTL caches column lookups when positive.
	ColumnCacheTTL time.Duration `mapstructure:"column_cache_ttl" json:"column_cache_ttl"`

	// Per-command configuration
	Records RecordsConfig `mapstructure:"records" json:"records"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string            `mapstructure:"driver" json:"driver"`
	URL      string            `mapstructure:"url" json:"url"`
	Host     string            `mapstructure:"host" json:"host"`
	Port     int               `mapstructure:"port" json:"port"`
	Name     string            `mapstructure:"name" json:"name"`
	User     string            `mapstructure:"user" json:"user"`
	Password string            `mapstructure:"password" json:"password"`
	SSLMode  string            `mapstructure:"sslmode" json:"sslmode"`
	Params   map[string]string `mapstructure:"params" json:"params,omitempty"`
}

// RecordsConfig holds record command settings.
type RecordsConfig struct {
	Table string `mapstructure:"table" json:"table"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	// 1. Set defaults first (lowest precedence)
	setDefaults(v)

	// 2. Set up environment variable binding
	v.SetEnvPrefix("STRATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Find and load config file
	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	// 4. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.driver", database.DriverMySQL)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "")

	// Session defaults
	v.SetDefault("log_dir", "")
	v.SetDefault("column_cache_ttl", "0s")

	// Records defaults
	v.SetDefault("records.table", "records")
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for strata.yaml or strata.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for range maxWalkDepth {
		for _, name := range []string{"strata.yaml", "strata.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Check for repo boundary (.git file or directory)
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil // No config found, use defaults
}

// Session returns the session settings described by the configuration.
// The PostgreSQL sslmode is passed as a connection parameter.
func (c *Config) Session() database.Config {
	db := c.Database

	params := make(map[string]string, len(db.Params)+1)
	for k, v := range db.Params {
		params[k] = v
	}
	if db.SSLMode != "" && db.Driver != database.DriverMySQL && db.Driver != database.DriverSQLite {
		params["sslmode"] = db.SSLMode
	}
	if len(params) == 0 {
		params = nil
	}

	return database.Config{
		Driver:   db.Driver,
		DSN:      db.URL,
		Host:     db.Host,
		Port:     db.Port,
		User:     db.User,
		Password: db.Password,
		Database: db.Name,
		Params:   params,
		LogDir:   c.LogDir,
	}
}

// DSN returns the database connection string.
// If database.url is set, it's returned directly.
// Otherwise, builds a driver-specific DSN from discrete fields.
func (c *Config) DSN() (string, error) {
	db := c.Database

	if db.URL != "" {
		return db.URL, nil
	}

	if db.Driver != database.DriverSQLite && db.Host == "" {
		return "", fmt.Errorf("database.host is required when database.url is not set")
	}
	if db.Name == "" {
		return "", fmt.Errorf("database.name is required when database.url is not set")
	}

	return c.Session().DataSourceName()
}
