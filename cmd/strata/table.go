package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/strata/internal/cli"
	"github.com/pthm/strata/pkg/database"
	"github.com/pthm/strata/pkg/sqldsl"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Change table structure",
}

var tableCloneCmd = &cobra.Command{
	Use:   "clone <source> <target>",
	Short: "Create a table with the structure and indexes of another",
	Example: `  # Create an empty archive table shaped like records
  strata table clone records records_archive`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(s *database.Session) error {
			if err := s.CreateTable(cmd.Context(), args[1], nil, args[0]); err != nil {
				return cli.QueryError("cloning table", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s from %s.\n", args[1], args[0])
			}
			return nil
		})
	},
}

var tableDropCmd = &cobra.Command{
	Use:   "drop <table>",
	Short: "Drop a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(s *database.Session) error {
			if err := s.DropTable(cmd.Context(), args[0]); err != nil {
				return cli.QueryError("dropping table", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Dropped %s.\n", args[0])
			}
			return nil
		})
	},
}

var tableAlterCmd = &cobra.Command{
	Use:   "alter <table> <ADD|DROP|MODIFY> <column> [type]",
	Short: "Add, drop or modify a column",
	Example: `  # Add a notes column
  strata table alter records ADD notes TEXT

  # Drop it again
  strata table alter records DROP notes`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		op := sqldsl.AlterOp(strings.ToUpper(args[1]))
		if !op.Valid() {
			return cli.GeneralError(fmt.Sprintf("unknown operation %q (want ADD, DROP or MODIFY)", args[1]), nil)
		}
		datatype := ""
		if len(args) == 4 {
			datatype = args[3]
		}
		if op != sqldsl.AlterDrop && datatype == "" {
			return cli.GeneralError(fmt.Sprintf("%s requires a column type", op), nil)
		}

		return withSession(cmd.Context(), func(s *database.Session) error {
			if err := s.AlterTable(cmd.Context(), args[0], op, args[2], datatype); err != nil {
				return cli.QueryError("altering table", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Altered %s: %s %s.\n", args[0], op, args[2])
			}
			return nil
		})
	},
}

func init() {
	tableCmd.AddCommand(tableCloneCmd, tableDropCmd, tableAlterCmd)
}
