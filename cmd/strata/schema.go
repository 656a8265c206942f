package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/pthm/strata/internal/cli"
	"github.com/pthm/strata/pkg/database"
	"github.com/pthm/strata/pkg/resource"
	"github.com/pthm/strata/pkg/sqldsl"
)

var statusCmd = &cobra.Command{
	Use:   "status <table>",
	Short: "Summarize a table",
	Long:  `Show the column and index counts of a table, whether it supports soft deletes, and its row counts.`,
	Example: `  # Summarize the records table
  strata status records --db "app:secret@tcp(localhost:3306)/app"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(s *database.Session) error {
			return runStatus(cmd, s, args[0])
		})
	},
}

func runStatus(cmd *cobra.Command, s *database.Session, table string) error {
	ctx := cmd.Context()

	cols, err := s.ShowColumns(ctx, table)
	if err != nil {
		return cli.QueryError("reading columns", err)
	}
	if len(cols) == 0 {
		return cli.GeneralError(fmt.Sprintf("table %q not found", table), nil)
	}
	indexes, err := s.Indexes(ctx, table)
	if err != nil {
		return cli.QueryError("reading indexes", err)
	}
	soft, err := s.HasColumn(ctx, table, resource.KeyDeleted)
	if err != nil {
		return cli.QueryError("reading columns", err)
	}
	total, err := s.Count(ctx, table, "", nil, "")
	if err != nil {
		return cli.QueryError("counting rows", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Table:        %s\n", table)
	fmt.Fprintf(w, "Dialect:      %s\n", s.Dialect())
	fmt.Fprintf(w, "Columns:      %d\n", len(cols))
	fmt.Fprintf(w, "Indexes:      %d\n", len(indexes))
	if !soft {
		fmt.Fprintln(w, "Soft delete:  no")
		fmt.Fprintf(w, "Rows:         %d\n", total)
		return nil
	}

	active, err := s.Count(ctx, table, "", sqldsl.Eq(resource.KeyDeleted, false), "")
	if err != nil {
		return cli.QueryError("counting rows", err)
	}
	fmt.Fprintln(w, "Soft delete:  yes")
	fmt.Fprintf(w, "Rows:         %d (%d active, %d deleted)\n", total, active, total-active)
	return nil
}

var columnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "List the columns of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(s *database.Session) error {
			rows, err := s.ShowColumns(cmd.Context(), args[0])
			if err != nil {
				return cli.QueryError("reading columns", err)
			}
			printColumns(cmd.OutOrStdout(), rows)
			return nil
		})
	},
}

func printColumns(out io.Writer, rows []database.Row) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTYPE\tNULL\tKEY\tDEFAULT")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			cast.ToString(r["Field"]),
			cast.ToString(r["Type"]),
			cast.ToString(r["Null"]),
			cast.ToString(r["Key"]),
			cast.ToString(r["Default"]),
		)
	}
	_ = w.Flush()
}

var indexesCmd = &cobra.Command{
	Use:   "indexes <table>",
	Short: "List the indexes of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(s *database.Session) error {
			indexes, err := s.Indexes(cmd.Context(), args[0])
			if err != nil {
				return cli.QueryError("reading indexes", err)
			}
			printIndexes(cmd.OutOrStdout(), indexes)
			return nil
		})
	},
}

func printIndexes(out io.Writer, indexes []sqldsl.TableIndex) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLUMNS")
	for _, idx := range indexes {
		fmt.Fprintf(w, "%s\t%s\n", idx.KeyName, strings.Join(idx.Columns, ", "))
	}
	_ = w.Flush()
}
