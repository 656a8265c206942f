package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/strata/internal/cli"
	"github.com/pthm/strata/internal/doctor"
	"github.com/pthm/strata/pkg/database"
	"github.com/pthm/strata/pkg/resource"
)

var (
	doctorTable   string
	doctorDetails bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks",
	Long: `Run health checks on the database connection, a resource table and the
query log directory.`,
	Example: `  # Check the configured records table
  strata doctor

  # Check another table with detailed output
  strata doctor --table notes --details`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := resolveString(doctorTable, cfg.Records.Table)
		return withSession(cmd.Context(), func(s *database.Session) error {
			return runDoctor(cmd, s, table)
		})
	},
}

func init() {
	f := doctorCmd.Flags()
	f.StringVar(&doctorTable, "table", "", "table to check (default: records.table from config)")
	f.BoolVar(&doctorDetails, "details", false, "show detailed output")
}

func runDoctor(cmd *cobra.Command, s *database.Session, table string) error {
	w := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintln(w, "strata doctor - Health Check")
	}

	report, err := doctor.New(s, table, resource.KeyRecordID).Run(cmd.Context())
	if err != nil {
		return cli.QueryError("running doctor", err)
	}

	report.Print(w, doctorDetails)

	if report.HasErrors() {
		return cli.GeneralError("health checks failed", nil)
	}
	return nil
}
