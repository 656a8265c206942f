package sqldsl

import (
	"strings"
)

// Suffix is a raw trailing clause (ORDER BY, JOIN, LIMIT, ...) appended
// verbatim to a statement. It is never escaped: do not build a Suffix from
// untrusted input.
type Suffix string

// Limit returns a LIMIT suffix.
func Limit(n int) Suffix {
	return Suffix("LIMIT " + Default.Value(n))
}

// HasLimit reports whether any of the suffixes contains a LIMIT keyword.
func HasLimit(more ...Suffix) bool {
	for _, sfx := range more {
		for _, f := range strings.Fields(string(sfx)) {
			if strings.EqualFold(f, "LIMIT") {
				return true
			}
		}
	}
	return false
}

// ColumnDef is one column in a CREATE TABLE statement.
type ColumnDef struct {
	Name string
	Type string
}

// TableIndex describes a (possibly multi-column) index.
type TableIndex struct {
	KeyName string
	Columns []string
}

// PrimaryKeyName is the key name reported for primary key indexes.
const PrimaryKeyName = "PRIMARY"

// AlterOp is an ALTER TABLE column operation.
type AlterOp string

// Supported column operations.
const (
	AlterAdd    AlterOp = "ADD"
	AlterDrop   AlterOp = "DROP"
	AlterModify AlterOp = "MODIFY"
)

// Valid reports whether op is a supported operation.
func (op AlterOp) Valid() bool {
	switch op {
	case AlterAdd, AlterDrop, AlterModify:
		return true
	}
	return false
}

// statement joins non-empty clauses with single spaces.
func statement(clauses []string, more []Suffix) string {
	parts := make([]string, 0, len(clauses)+len(more))
	for _, c := range clauses {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	for _, m := range more {
		if s := strings.TrimSpace(string(m)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (d Dialect) whereClause(where Expr) string {
	w := d.FormatWhere(where)
	if w == "" {
		return ""
	}
	return "WHERE " + w
}

// BuildQuerySelect renders SELECT columns FROM table WHERE where.
func (d Dialect) BuildQuerySelect(table string, columns []string, where Expr, more ...Suffix) string {
	return statement([]string{
		"SELECT " + d.FormatColumns(columns),
		"FROM " + d.Key(table),
		d.whereClause(where),
	}, more)
}

// BuildQueryCount renders SELECT COUNT(column) AS alias FROM table WHERE where.
// column is an expression and is not quoted; an empty column counts rows.
// An empty alias defaults to "count".
func (d Dialect) BuildQueryCount(table, column string, where Expr, alias string, more ...Suffix) string {
	if column == "" {
		column = "*"
	}
	if alias == "" {
		alias = "count"
	}
	return statement([]string{
		"SELECT COUNT(" + column + ") AS " + d.Key(alias),
		"FROM " + d.Key(table),
		d.whereClause(where),
	}, more)
}

// BuildQueryInsert renders INSERT INTO table (columns) VALUES (values). An
// empty value list inserts a row of column defaults.
func (d Dialect) BuildQueryInsert(table string, values Values, more ...Suffix) string {
	body := d.FormatValues(values)
	if len(values) == 0 && d.Name != MySQL.Name {
		body = "DEFAULT VALUES"
	}
	return statement([]string{
		"INSERT INTO " + d.Key(table),
		body,
	}, more)
}

// BuildQueryUpdate renders UPDATE table SET pairs WHERE where.
func (d Dialect) BuildQueryUpdate(table string, values Values, where Expr, more ...Suffix) string {
	return statement([]string{
		"UPDATE " + d.Key(table),
		"SET " + d.FormatKeyValuePairs(values),
		d.whereClause(where),
	}, more)
}

// BuildQueryDelete renders DELETE FROM table WHERE where.
func (d Dialect) BuildQueryDelete(table string, where Expr, more ...Suffix) string {
	return statement([]string{
		"DELETE FROM " + d.Key(table),
		d.whereClause(where),
	}, more)
}

// BuildQueryCreateTable renders CREATE TABLE. When ref is set the new table
// copies the structure of ref (AS SELECT * FROM ref LIMIT 0). The column list
// is omitted when empty.
func (d Dialect) BuildQueryCreateTable(table string, columns []ColumnDef, ref string, more ...Suffix) string {
	clauses := []string{"CREATE TABLE " + d.Key(table)}
	if len(columns) > 0 {
		defs := make([]string, len(columns))
		for i, c := range columns {
			defs[i] = strings.TrimSpace(d.Key(c.Name) + " " + c.Type)
		}
		clauses = append(clauses, "( "+strings.Join(defs, ", ")+" )")
	}
	if ref != "" {
		clauses = append(clauses, "AS SELECT * FROM "+d.Key(ref)+" LIMIT 0")
	}
	return statement(clauses, more)
}

// BuildQueryShowColumns renders a query listing the columns of table. Result
// columns are named Field, Type, Null, Key and Default on every dialect.
func (d Dialect) BuildQueryShowColumns(table string, more ...Suffix) string {
	return d.showColumns(table, "", more)
}

// BuildQueryHasColumn renders a query that returns one row when table has
// column.
func (d Dialect) BuildQueryHasColumn(table, column string, more ...Suffix) string {
	return d.showColumns(table, column, more)
}

func (d Dialect) showColumns(table, column string, more []Suffix) string {
	switch d.Name {
	case Postgres.Name:
		q := `SELECT column_name AS "Field", data_type AS "Type", is_nullable AS "Null", ` +
			`'' AS "Key", column_default AS "Default" FROM information_schema.columns ` +
			`WHERE table_schema = current_schema() AND table_name = ` + d.quoteString(table)
		if column != "" {
			q += " AND column_name = " + d.quoteString(column)
		}
		return statement([]string{q, "ORDER BY ordinal_position"}, more)
	case SQLite.Name:
		q := `SELECT name AS "Field", type AS "Type", ` +
			`CASE WHEN "notnull" = 0 THEN 'YES' ELSE 'NO' END AS "Null", ` +
			`CASE WHEN pk > 0 THEN 'PRI' ELSE '' END AS "Key", dflt_value AS "Default" ` +
			`FROM pragma_table_info(` + d.quoteString(table) + `)`
		if column != "" {
			q += " WHERE name = " + d.quoteString(column)
		}
		return statement([]string{q, "ORDER BY cid"}, more)
	default:
		q := "SHOW COLUMNS FROM " + d.Key(table)
		if column != "" {
			q += " LIKE " + d.quoteString(column)
		}
		return statement([]string{q}, more)
	}
}

// BuildQueryShowIndex renders a query listing the indexes of table, one row
// per indexed column. Result columns are named Key_name, Column_name,
// Seq_in_index and Non_unique on every dialect; primary keys are reported as
// PRIMARY and table-scoped index names are reported without their prefix.
func (d Dialect) BuildQueryShowIndex(table string, more ...Suffix) string {
	t := d.quoteString(table)
	switch d.Name {
	case Postgres.Name:
		return statement([]string{
			`SELECT CASE WHEN ix.indisprimary THEN 'PRIMARY' ` +
				`WHEN left(i.relname, length(t.relname) + 1) = t.relname || '_' ` +
				`THEN substr(i.relname, length(t.relname) + 2) ELSE i.relname END AS "Key_name", ` +
				`a.attname AS "Column_name", ` +
				`array_position(ix.indkey::int2[], a.attnum) AS "Seq_in_index", ` +
				`CASE WHEN ix.indisunique THEN 0 ELSE 1 END AS "Non_unique" ` +
				`FROM pg_index ix ` +
				`JOIN pg_class t ON t.oid = ix.indrelid ` +
				`JOIN pg_class i ON i.oid = ix.indexrelid ` +
				`JOIN pg_namespace n ON n.oid = t.relnamespace ` +
				`JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey) ` +
				`WHERE n.nspname = current_schema() AND t.relname = ` + t,
			`ORDER BY "Key_name", "Seq_in_index"`,
		}, more)
	case SQLite.Name:
		return statement([]string{
			`SELECT CASE WHEN il.origin = 'pk' THEN 'PRIMARY' ` +
				`WHEN substr(il.name, 1, length(` + t + `) + 1) = ` + t + ` || '_' ` +
				`THEN substr(il.name, length(` + t + `) + 2) ELSE il.name END AS "Key_name", ` +
				`ii.name AS "Column_name", ii.seqno + 1 AS "Seq_in_index", ` +
				`CASE WHEN il."unique" THEN 0 ELSE 1 END AS "Non_unique" ` +
				`FROM pragma_index_list(` + t + `) AS il ` +
				`JOIN pragma_index_info(il.name) AS ii ` +
				`WHERE il.origin != 'u'`,
			`ORDER BY "Key_name", "Seq_in_index"`,
		}, more)
	default:
		return statement([]string{"SHOW INDEX FROM " + d.Key(table)}, more)
	}
}

func (d Dialect) formatIndexColumns(columns []string) string {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = d.Key(c)
	}
	return "(" + strings.Join(cols, ", ") + ")"
}

// BuildQueryAddIndex renders the statement that adds index to table.
func (d Dialect) BuildQueryAddIndex(table string, index TableIndex, more ...Suffix) string {
	if d.scopedIndexes {
		return statement([]string{
			"CREATE INDEX " + d.Key(d.indexName(table, index.KeyName)),
			"ON " + d.Key(table),
			d.formatIndexColumns(index.Columns),
		}, more)
	}
	return statement([]string{
		"ALTER TABLE " + d.Key(table),
		"ADD INDEX " + d.Key(index.KeyName),
		d.formatIndexColumns(index.Columns),
	}, more)
}

// BuildQueryDropIndex renders the statement that drops the index keyName
// from table.
func (d Dialect) BuildQueryDropIndex(table, keyName string, more ...Suffix) string {
	if d.scopedIndexes {
		return statement([]string{"DROP INDEX " + d.Key(d.indexName(table, keyName))}, more)
	}
	return statement([]string{
		"ALTER TABLE " + d.Key(table),
		"DROP INDEX " + d.Key(keyName),
	}, more)
}

// BuildQueryAlterTable renders ALTER TABLE table op COLUMN column datatype.
// On Postgres MODIFY renders as ALTER COLUMN column TYPE datatype.
func (d Dialect) BuildQueryAlterTable(table string, op AlterOp, column, datatype string, more ...Suffix) string {
	if d.Name == Postgres.Name && op == AlterModify {
		return statement([]string{
			"ALTER TABLE " + d.Key(table),
			"ALTER COLUMN " + d.Key(column),
			"TYPE " + datatype,
		}, more)
	}
	return statement([]string{
		"ALTER TABLE " + d.Key(table),
		string(op) + " COLUMN " + d.Key(column),
		datatype,
	}, more)
}

// BuildQueryDropTable renders DROP TABLE table.
func (d Dialect) BuildQueryDropTable(table string, more ...Suffix) string {
	return statement([]string{"DROP TABLE " + d.Key(table)}, more)
}
