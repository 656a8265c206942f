package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/strata/internal/cli"
	"github.com/pthm/strata/pkg/database"
)

const recordsTable = `CREATE TABLE records (
	record_id INTEGER PRIMARY KEY AUTOINCREMENT,
	creator_id INTEGER,
	creation_date TEXT,
	modified_date TEXT,
	activity_date TEXT,
	deleted INTEGER NOT NULL DEFAULT 0
)`

// setup creates a SQLite database with a records table and a config file
// pointing at it, and returns the config path.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "strata.db")

	s, err := database.Open(context.Background(), database.Config{Driver: database.DriverSQLite, Database: dbPath})
	require.NoError(t, err)
	_, err = s.Exec(context.Background(), recordsTable, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	configPath := filepath.Join(dir, "strata.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"database:\n  driver: sqlite\n  name: "+dbPath+"\nlog_dir: "+filepath.Join(dir, "logs")+"\n",
	), 0o644))
	return configPath
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI with args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRecordCommands(t *testing.T) {
	config := setup(t)

	out, err := run(t, "--config", config, "record", "create", "--creator", "7")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "record_id=1 creator_id=7 "), out)
	assert.Contains(t, out, "deleted=false")

	_, err = run(t, "--config", config, "record", "create", "--creator", "8")
	require.NoError(t, err)

	out, err = run(t, "--config", config, "record", "count", "--creator", "7")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "--config", config, "record", "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "delete 1: 1 row(s)\n", out)

	out, err = run(t, "--config", config, "record", "count")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "--config", config, "record", "count", "--include-deleted")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	_, err = run(t, "--config", config, "record", "get", "1")
	require.Error(t, err)
	assert.Equal(t, cli.ExitGeneral, cli.ExitCode(err))

	out, err = run(t, "--config", config, "record", "get", "1", "--include-deleted")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted=true")

	_, err = run(t, "--config", config, "record", "restore", "1")
	require.NoError(t, err)
	out, err = run(t, "--config", config, "record", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted=false")

	_, err = run(t, "--config", config, "record", "destroy", "1")
	require.NoError(t, err)
	_, err = run(t, "--config", config, "record", "destroy", "1")
	require.Error(t, err)

	_, err = run(t, "--config", config, "record", "get", "abc")
	require.Error(t, err)

	_, err = run(t, "--config", config, "record", "count", "--table", "missing")
	require.Error(t, err)
	assert.Equal(t, cli.ExitQuery, cli.ExitCode(err))

	_, err = run(t, "--config", config, "record", "count", "--kind", "nope")
	require.Error(t, err)
}

func TestSchemaCommands(t *testing.T) {
	config := setup(t)

	_, err := run(t, "--config", config, "record", "create", "--creator", "7")
	require.NoError(t, err)

	out, err := run(t, "--config", config, "status", "records")
	require.NoError(t, err)
	assert.Contains(t, out, "Dialect:      sqlite")
	assert.Contains(t, out, "Columns:      6")
	assert.Contains(t, out, "Soft delete:  yes")
	assert.Contains(t, out, "Rows:         1 (1 active, 0 deleted)")

	out, err = run(t, "--config", config, "columns", "records")
	require.NoError(t, err)
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "creator_id")

	out, err = run(t, "--config", config, "table", "clone", "records", "archive")
	require.NoError(t, err)
	assert.Equal(t, "Created archive from records.\n", out)

	_, err = run(t, "--config", config, "table", "alter", "archive", "add", "notes", "TEXT")
	require.NoError(t, err)

	out, err = run(t, "--config", config, "columns", "archive")
	require.NoError(t, err)
	assert.Contains(t, out, "notes")

	_, err = run(t, "--config", config, "table", "alter", "archive", "rename", "notes")
	require.Error(t, err)

	out, err = run(t, "--config", config, "record", "count", "--table", "archive")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	_, err = run(t, "--config", config, "table", "drop", "archive")
	require.NoError(t, err)

	_, err = run(t, "--config", config, "status", "archive")
	require.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	config := setup(t)

	out, err := run(t, "--config", config, "config", "show", "--source")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file: "+config)
	assert.Contains(t, out, "driver: sqlite")
	assert.Contains(t, out, "table: records")
}

func TestConfigErrors(t *testing.T) {
	_, err := run(t, "--config", "/nonexistent/strata.yaml", "status", "records")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfig, cli.ExitCode(err))

	config := setup(t)
	_, err = run(t, "--config", config, "--driver", "oracle", "--db", "x", "status", "records")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfig, cli.ExitCode(err))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "strata "), out)
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	l := newLogger(&buf, 0, false)
	assert.False(t, l.Enabled(ctx, -4))
	assert.True(t, l.Enabled(ctx, 4))

	assert.True(t, newLogger(&buf, 1, false).Enabled(ctx, 0))
	assert.True(t, newLogger(&buf, 2, false).Enabled(ctx, -4))
	assert.False(t, newLogger(&buf, 2, true).Enabled(ctx, 4))
}

func TestDoctorCommand(t *testing.T) {
	config := setup(t)

	out, err := run(t, "--config", config, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "strata doctor - Health Check")
	assert.Contains(t, out, "Table records")
	assert.Contains(t, out, "Summary: 5 passed, 1 warnings, 0 errors")

	out, err = run(t, "--config", config, "doctor", "--table", "missing")
	require.Error(t, err)
	assert.Equal(t, cli.ExitGeneral, cli.ExitCode(err))
	assert.Contains(t, out, "Table missing does not exist")
}
