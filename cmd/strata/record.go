package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/pthm/strata/internal/cli"
	"github.com/pthm/strata/pkg/database"
	"github.com/pthm/strata/pkg/resource"
	"github.com/pthm/strata/pkg/sqldsl"
)

// kinds holds the resource kinds the record commands can manage.
var kinds = resource.NewRegistry()

func init() {
	if err := resource.Register(kinds, "record", resource.NewRecord); err != nil {
		panic(err)
	}
}

var (
	recordTable          string
	recordKind           string
	recordCreator        int64
	recordIncludeDeleted bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage rows of the records table",
	Long: `Create, read, count and delete rows of the records table.

delete and restore toggle the soft-delete flag; destroy removes the row.`,
}

// recordHelper opens a helper for the configured table and kind.
func recordHelper(s *database.Session) (*resource.Helper[resource.Resource], error) {
	factory, err := kinds.Factory(recordKind)
	if err != nil {
		return nil, cli.GeneralError("resolving kind", err)
	}
	table := resolveString(recordTable, cfg.Records.Table)
	h, err := resource.NewHelper(s, table, factory)
	if err != nil {
		return nil, cli.GeneralError("binding table", err)
	}
	return h, nil
}

func withRecords(cmd *cobra.Command, fn func(*resource.Strict[resource.Resource]) error) error {
	return withSession(cmd.Context(), func(s *database.Session) error {
		h, err := recordHelper(s)
		if err != nil {
			return err
		}
		return fn(h.Strict())
	})
}

func parseID(arg string) (int64, error) {
	id, err := cast.ToInt64E(arg)
	if err != nil || id <= 0 {
		return 0, cli.GeneralError(fmt.Sprintf("invalid id %q", arg), err)
	}
	return id, nil
}

// printResource writes "pk=id col=value ..." on one line.
func printResource(w io.Writer, r resource.Resource) {
	parts := []string{fmt.Sprintf("%s=%v", r.PrimaryKey(), r.ID())}
	for _, c := range r.DataMap() {
		parts = append(parts, fmt.Sprintf("%s=%v", c.Name, c.Value))
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

var recordCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a record",
	Example: `  # Create a record owned by entity 7
  strata record create --creator 7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := resource.TimestampOf(time.Now())
		attrs := resource.Attributes{
			resource.KeyCreationDate: now,
			resource.KeyModifiedDate: now,
			resource.KeyActivityDate: now,
			resource.KeyDeleted:      false,
		}
		if cmd.Flags().Changed("creator") {
			attrs[resource.KeyCreatorID] = recordCreator
		}
		r, err := kinds.New(recordKind, attrs)
		if err != nil {
			return cli.GeneralError("building record", err)
		}

		return withRecords(cmd, func(h *resource.Strict[resource.Resource]) error {
			created, err := h.Create(cmd.Context(), r)
			if err != nil {
				return err
			}
			printResource(cmd.OutOrStdout(), created)
			return nil
		})
	},
}

var recordGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		opts := resource.OnlyOneResult
		if recordIncludeDeleted {
			opts |= resource.IncludeDeleted
		}

		return withRecords(cmd, func(h *resource.Strict[resource.Resource]) error {
			res, err := h.Fetch(cmd.Context(), resource.ByKey(id), opts)
			if err != nil {
				return err
			}
			r, ok := res.First()
			if !ok {
				return cli.GeneralError(fmt.Sprintf("record %d not found", id), resource.ErrNotFound)
			}
			printResource(cmd.OutOrStdout(), r)
			return nil
		})
	},
}

var recordCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := resource.All()
		if cmd.Flags().Changed("creator") {
			sel = resource.ByFilter(sqldsl.Eq(resource.KeyCreatorID, recordCreator))
		}
		var opts resource.FetchOptions
		if recordIncludeDeleted {
			opts |= resource.IncludeDeleted
		}

		return withRecords(cmd, func(h *resource.Strict[resource.Resource]) error {
			n, err := h.Count(cmd.Context(), sel, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		})
	},
}

// affectedCmd builds the delete, restore and destroy commands.
func affectedCmd(use, short string, op func(*resource.Strict[resource.Resource], *cobra.Command, resource.Selector) (int64, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withRecords(cmd, func(h *resource.Strict[resource.Resource]) error {
				n, err := op(h, cmd, resource.ByKey(id))
				if err != nil {
					return err
				}
				if n == 0 {
					return cli.GeneralError(fmt.Sprintf("record %d not found", id), resource.ErrNotFound)
				}
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %d: %d row(s)\n", use, id, n)
				}
				return nil
			})
		},
	}
}

var (
	recordDeleteCmd = affectedCmd("delete", "Soft-delete a record",
		func(h *resource.Strict[resource.Resource], cmd *cobra.Command, sel resource.Selector) (int64, error) {
			return h.Delete(cmd.Context(), sel)
		})
	recordRestoreCmd = affectedCmd("restore", "Restore a soft-deleted record",
		func(h *resource.Strict[resource.Resource], cmd *cobra.Command, sel resource.Selector) (int64, error) {
			return h.Restore(cmd.Context(), sel)
		})
	recordDestroyCmd = affectedCmd("destroy", "Permanently delete a record",
		func(h *resource.Strict[resource.Resource], cmd *cobra.Command, sel resource.Selector) (int64, error) {
			return h.Destroy(cmd.Context(), sel)
		})
)

func init() {
	pf := recordCmd.PersistentFlags()
	pf.StringVar(&recordTable, "table", "", "table name (default: records.table from config)")
	pf.StringVar(&recordKind, "kind", "record", "resource kind")

	recordCreateCmd.Flags().Int64Var(&recordCreator, "creator", 0, "creator id")
	recordCountCmd.Flags().Int64Var(&recordCreator, "creator", 0, "only count records with this creator id")
	recordGetCmd.Flags().BoolVar(&recordIncludeDeleted, "include-deleted", false, "show soft-deleted records")
	recordCountCmd.Flags().BoolVar(&recordIncludeDeleted, "include-deleted", false, "count soft-deleted records")

	recordCmd.AddCommand(recordCreateCmd, recordGetCmd, recordCountCmd,
		recordDeleteCmd, recordRestoreCmd, recordDestroyCmd)
}
