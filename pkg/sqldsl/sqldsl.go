package sqldsl

// The functions below render with the Default dialect.

// Key quotes an identifier.
func Key(name string) string { return Default.Key(name) }

// Value renders a SQL literal.
func Value(v any) string { return Default.Value(v) }

// FormatColumns renders a select list.
func FormatColumns(columns ...string) string { return Default.FormatColumns(columns) }

// FormatValues renders "(c1, c2) VALUES (v1, v2)".
func FormatValues(values Values) string { return Default.FormatValues(values) }

// FormatKeyValuePairs renders "c1 = v1, c2 = v2".
func FormatKeyValuePairs(values Values) string { return Default.FormatKeyValuePairs(values) }

// FormatWhere renders a where expression.
func FormatWhere(where Expr) string { return Default.FormatWhere(where) }

// BuildQuerySelect renders a SELECT statement.
func BuildQuerySelect(table string, columns []string, where Expr, more ...Suffix) string {
	return Default.BuildQuerySelect(table, columns, where, more...)
}

// BuildQueryCount renders a SELECT COUNT statement.
func BuildQueryCount(table, column string, where Expr, alias string, more ...Suffix) string {
	return Default.BuildQueryCount(table, column, where, alias, more...)
}

// BuildQueryInsert renders an INSERT statement.
func BuildQueryInsert(table string, values Values, more ...Suffix) string {
	return Default.BuildQueryInsert(table, values, more...)
}

// BuildQueryUpdate renders an UPDATE statement.
func BuildQueryUpdate(table string, values Values, where Expr, more ...Suffix) string {
	return Default.BuildQueryUpdate(table, values, where, more...)
}

// BuildQueryDelete renders a DELETE statement.
func BuildQueryDelete(table string, where Expr, more ...Suffix) string {
	return Default.BuildQueryDelete(table, where, more...)
}

// BuildQueryCreateTable renders a CREATE TABLE statement.
func BuildQueryCreateTable(table string, columns []ColumnDef, ref string, more ...Suffix) string {
	return Default.BuildQueryCreateTable(table, columns, ref, more...)
}

// BuildQueryShowColumns renders a column listing query.
func BuildQueryShowColumns(table string, more ...Suffix) string {
	return Default.BuildQueryShowColumns(table, more...)
}

// BuildQueryHasColumn renders a query matching one column.
func BuildQueryHasColumn(table, column string, more ...Suffix) string {
	return Default.BuildQueryHasColumn(table, column, more...)
}

// BuildQueryShowIndex renders an index listing query.
func BuildQueryShowIndex(table string, more ...Suffix) string {
	return Default.BuildQueryShowIndex(table, more...)
}

// BuildQueryAddIndex renders an index creation statement.
func BuildQueryAddIndex(table string, index TableIndex, more ...Suffix) string {
	return Default.BuildQueryAddIndex(table, index, more...)
}

// BuildQueryDropIndex renders an index removal statement.
func BuildQueryDropIndex(table, keyName string, more ...Suffix) string {
	return Default.BuildQueryDropIndex(table, keyName, more...)
}

// BuildQueryAlterTable renders an ALTER TABLE column statement.
func BuildQueryAlterTable(table string, op AlterOp, column, datatype string, more ...Suffix) string {
	return Default.BuildQueryAlterTable(table, op, column, datatype, more...)
}

// BuildQueryDropTable renders a DROP TABLE statement.
func BuildQueryDropTable(table string, more ...Suffix) string {
	return Default.BuildQueryDropTable(table, more...)
}
