// Package sqldsl builds SQL statement strings for the strata data-access layer.
//
// # Quoting
//
// Every builder composes through two functions, Key and Value. Key quotes an
// identifier with the dialect's identifier quote; Value renders a Go value as
// a SQL literal:
//
//	Key("user")          // `user`
//	Value(42)            // 42
//	Value(true)          // 1
//	Value("")            // null
//	Value("O'Brien")     // 'O\'Brien'   (MySQL)
//	Postgres.Value("O'Brien") // 'O''Brien'
//
// Numeric Go types render unquoted. Strings are always quoted, including
// strings that happen to contain digits.
//
// # Filters
//
// Filter is a single "key relation value" predicate. Filters compose with
// Group (AND) and GroupAlternatives (OR), which always parenthesize:
//
//	Group(Eq("creator_id", 7), Eq("deleted", 0))
//	// (`creator_id` = 7 AND `deleted` = 0)
//
// Seq renders its parts joined by single spaces and adds no logic operators,
// and Raw passes a caller-built predicate through verbatim.
//
// # Statements
//
// The Build* functions render complete statements. A nil where omits the
// WHERE clause. Each takes an optional trailing Suffix appended verbatim:
//
//	BuildQuerySelect("records", nil, Eq("record_id", 1), "LIMIT 1")
//	// SELECT * FROM `records` WHERE `record_id` = 1 LIMIT 1
//
// Package-level functions use the MySQL dialect. Postgres and SQLite differ
// in identifier quoting, string escaping, introspection queries and index
// naming; use the Dialect methods directly for those.
package sqldsl
