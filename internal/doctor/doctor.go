// Package doctor provides health checks for a strata deployment.
//
// The doctor command validates that the database is reachable, that a
// resource table carries the columns the resource helper relies on, and that
// the query log directory is usable.
//
// Example usage:
//
//	d := doctor.New(session, "records", "record_id")
//	report, err := d.Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report.Print(os.Stdout, true) // verbose=true
package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/pthm/strata/pkg/database"
	"github.com/pthm/strata/pkg/resource"
	"github.com/pthm/strata/pkg/sqldsl"
)

// Status represents the result of a health check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates a critical issue that will cause failures.
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns a status indicator symbol for terminal output.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "✓"
	case StatusWarn:
		return "⚠"
	case StatusFail:
		return "✗"
	default:
		return "?"
	}
}

// CheckResult represents the outcome of a single health check.
type CheckResult struct {
	// Category groups related checks (e.g., "Connection", "Table records").
	Category string

	// Name is a short identifier for the check.
	Name string

	// Status is the check outcome.
	Status Status

	// Message is a human-readable description of the result.
	Message string

	// Details provides additional information for verbose output.
	Details string

	// FixHint suggests how to resolve issues.
	FixHint string
}

// Report contains all health check results.
type Report struct {
	Checks []CheckResult

	// Summary counts.
	Passed   int
	Warnings int
	Errors   int
}

// AddCheck adds a check result and updates summary counts.
func (r *Report) AddCheck(check CheckResult) {
	r.Checks = append(r.Checks, check)
	switch check.Status {
	case StatusPass:
		r.Passed++
	case StatusWarn:
		r.Warnings++
	case StatusFail:
		r.Errors++
	}
}

// Find returns the first check with the given category and name.
func (r *Report) Find(category, name string) (CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Category == category && c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}

// Print writes the report to the given writer.
func (r *Report) Print(w io.Writer, verbose bool) {
	categories := make(map[string][]CheckResult)
	var categoryOrder []string
	for _, check := range r.Checks {
		if _, exists := categories[check.Category]; !exists {
			categoryOrder = append(categoryOrder, check.Category)
		}
		categories[check.Category] = append(categories[check.Category], check)
	}

	for _, cat := range categoryOrder {
		_, _ = fmt.Fprintf(w, "\n%s\n", cat)
		for _, check := range categories[cat] {
			_, _ = fmt.Fprintf(w, "  %s %s\n", check.Status.Symbol(), check.Message)
			if verbose && check.Details != "" {
				for _, line := range strings.Split(check.Details, "\n") {
					_, _ = fmt.Fprintf(w, "      %s\n", line)
				}
			}
			if check.Status != StatusPass && check.FixHint != "" {
				_, _ = fmt.Fprintf(w, "      Fix: %s\n", check.FixHint)
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\nSummary: %d passed, %d warnings, %d errors\n",
		r.Passed, r.Warnings, r.Errors)
}

// HasErrors returns true if any check failed.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// Category names used in reports.
const (
	CategoryConnection = "Connection"
	CategoryQueryLog   = "Query Log"
)

// baseColumns are the columns every resource table is expected to carry.
var baseColumns = []string{
	resource.KeyCreatorID,
	resource.KeyCreationDate,
	resource.KeyModifiedDate,
	resource.KeyActivityDate,
	resource.KeyDeleted,
}

// Doctor performs health checks against a session and one resource table.
type Doctor struct {
	session    *database.Session
	table      string
	primaryKey string
}

// New creates a new Doctor instance for table, whose primary key column is
// primaryKey.
func New(session *database.Session, table, primaryKey string) *Doctor {
	return &Doctor{
		session:    session,
		table:      table,
		primaryKey: primaryKey,
	}
}

// TableCategory returns the report category used for table checks.
func TableCategory(table string) string {
	return "Table " + table
}

// Run executes all health checks and returns a report. Checks that depend
// on an unreachable database are skipped.
func (d *Doctor) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	if !d.checkConnection(ctx, report) {
		return report, nil
	}
	if err := d.checkTable(ctx, report); err != nil {
		return nil, fmt.Errorf("checking table %s: %w", d.table, err)
	}
	d.checkQueryLog(report)

	return report, nil
}

func (d *Doctor) checkConnection(ctx context.Context, report *Report) bool {
	if err := d.session.DB().PingContext(ctx); err != nil {
		report.AddCheck(CheckResult{
			Category: CategoryConnection,
			Name:     "ping",
			Status:   StatusFail,
			Message:  "Database is unreachable",
			Details:  err.Error(),
			FixHint:  "Check the database URL or the database.* settings in strata.yaml",
		})
		return false
	}

	report.AddCheck(CheckResult{
		Category: CategoryConnection,
		Name:     "ping",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Connected (%s dialect)", d.session.Dialect().Name),
	})
	return true
}

func (d *Doctor) checkTable(ctx context.Context, report *Report) error {
	category := TableCategory(d.table)

	rows, err := d.session.ShowColumns(ctx, d.table)
	if err != nil && !database.IsQueryErr(err) {
		return err
	}
	if len(rows) == 0 {
		check := CheckResult{
			Category: category,
			Name:     "exists",
			Status:   StatusFail,
			Message:  fmt.Sprintf("Table %s does not exist", d.table),
			FixHint:  fmt.Sprintf("Create %s or set records.table in strata.yaml", d.table),
		}
		if err != nil {
			check.Details = err.Error()
		}
		report.AddCheck(check)
		return nil
	}

	columns := make([]string, 0, len(rows))
	var keyColumns []string
	for _, row := range rows {
		field := cast.ToString(row["Field"])
		columns = append(columns, field)
		if cast.ToString(row["Key"]) == "PRI" {
			keyColumns = append(keyColumns, field)
		}
	}
	report.AddCheck(CheckResult{
		Category: category,
		Name:     "exists",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Table %s exists (%d columns)", d.table, len(columns)),
		Details:  strings.Join(columns, ", "),
	})

	indexes, err := d.session.Indexes(ctx, d.table)
	if err != nil {
		return err
	}
	if len(keyColumns) == 0 {
		// PostgreSQL reports keys through its indexes only.
		for _, idx := range indexes {
			if idx.KeyName == sqldsl.PrimaryKeyName {
				keyColumns = idx.Columns
			}
		}
	}
	d.checkPrimaryKey(report, category, keyColumns)
	d.checkColumns(report, category, columns)
	d.checkCreatorIndex(report, category, columns, indexes)
	return nil
}

func (d *Doctor) checkPrimaryKey(report *Report, category string, keyColumns []string) {
	if slices.Equal(keyColumns, []string{d.primaryKey}) {
		report.AddCheck(CheckResult{
			Category: category,
			Name:     "primary_key",
			Status:   StatusPass,
			Message:  fmt.Sprintf("Primary key is %s", d.primaryKey),
		})
		return
	}

	report.AddCheck(CheckResult{
		Category: category,
		Name:     "primary_key",
		Status:   StatusFail,
		Message:  fmt.Sprintf("%s is not the primary key", d.primaryKey),
		Details:  fmt.Sprintf("primary key columns: [%s]", strings.Join(keyColumns, ", ")),
		FixHint:  fmt.Sprintf("Declare %s as the table's single-column primary key", d.primaryKey),
	})
}

func (d *Doctor) checkColumns(report *Report, category string, columns []string) {
	var missing []string
	for _, col := range baseColumns {
		if !slices.Contains(columns, col) {
			missing = append(missing, col)
		}
	}

	if len(missing) == 0 {
		report.AddCheck(CheckResult{
			Category: category,
			Name:     "base_columns",
			Status:   StatusPass,
			Message:  "All resource columns present",
		})
		return
	}

	check := CheckResult{
		Category: category,
		Name:     "base_columns",
		Status:   StatusWarn,
		Message:  fmt.Sprintf("Missing %d resource column(s)", len(missing)),
		Details:  strings.Join(missing, ", "),
		FixHint:  fmt.Sprintf("strata table alter %s ADD <column> <type>", d.table),
	}
	if slices.Contains(missing, resource.KeyDeleted) {
		check.Message += "; soft delete is disabled"
	}
	report.AddCheck(check)
}

func (d *Doctor) checkCreatorIndex(report *Report, category string, columns []string, indexes []sqldsl.TableIndex) {
	if !slices.Contains(columns, resource.KeyCreatorID) {
		return
	}
	for _, idx := range indexes {
		if len(idx.Columns) > 0 && idx.Columns[0] == resource.KeyCreatorID {
			report.AddCheck(CheckResult{
				Category: category,
				Name:     "creator_index",
				Status:   StatusPass,
				Message:  fmt.Sprintf("%s is indexed by %s", resource.KeyCreatorID, idx.KeyName),
			})
			return
		}
	}

	report.AddCheck(CheckResult{
		Category: category,
		Name:     "creator_index",
		Status:   StatusWarn,
		Message:  fmt.Sprintf("No index leads with %s", resource.KeyCreatorID),
		Details:  "Lookups by creator scan the whole table",
		FixHint:  fmt.Sprintf("Add an index on %s(%s)", d.table, resource.KeyCreatorID),
	})
}

func (d *Doctor) checkQueryLog(report *Report) {
	dir := d.session.LogDir()
	if dir == "" {
		report.AddCheck(CheckResult{
			Category: CategoryQueryLog,
			Name:     "enabled",
			Status:   StatusPass,
			Message:  "Query log disabled",
		})
		return
	}

	if err := writable(dir); err != nil {
		report.AddCheck(CheckResult{
			Category: CategoryQueryLog,
			Name:     "writable",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("Query log directory %s is not writable", dir),
			Details:  err.Error(),
			FixHint:  "Fix the directory permissions or change log_dir",
		})
		return
	}

	report.AddCheck(CheckResult{
		Category: CategoryQueryLog,
		Name:     "writable",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Query log directory %s is writable", dir),
	})
}

func writable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
