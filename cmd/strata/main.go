// Package main provides an admin CLI over a strata database.
//
// The CLI supports:
//   - status, columns, indexes: inspect a table
//   - table clone/drop/alter: change table structure
//   - record: create, read, count and delete rows of the records table
//   - config show, version: utilities
//
// Usage:
//
//	strata [flags] <command>
//
// Connection settings come from strata.yaml, STRATA_* environment variables
// or the --db and --driver flags.
package main

func main() {
	Execute()
}
