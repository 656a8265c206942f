package sqldsl

import "strings"

// Column is one column/value pair.
type Column struct {
	Name  string
	Value any
}

// Values is an ordered column to value mapping. Rendering preserves the
// order in which columns were added.
type Values []Column

// Set assigns value to name, replacing an existing entry in place or
// appending a new one.
func (v *Values) Set(name string, value any) {
	for i := range *v {
		if (*v)[i].Name == name {
			(*v)[i].Value = value
			return
		}
	}
	*v = append(*v, Column{Name: name, Value: value})
}

// Get returns the value for name.
func (v Values) Get(name string) (any, bool) {
	for _, c := range v {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// Has reports whether name is present.
func (v Values) Has(name string) bool {
	_, ok := v.Get(name)
	return ok
}

// Len returns the number of columns.
func (v Values) Len() int {
	return len(v)
}

// Columns returns the column names in order.
func (v Values) Columns() []string {
	names := make([]string, len(v))
	for i, c := range v {
		names[i] = c.Name
	}
	return names
}

// FormatColumns renders a select list. An empty list renders as *.
func (d Dialect) FormatColumns(columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		if c == "*" {
			parts[i] = c
			continue
		}
		parts[i] = d.Key(c)
	}
	return strings.Join(parts, ", ")
}

// FormatValues renders "(c1, c2) VALUES (v1, v2)".
func (d Dialect) FormatValues(values Values) string {
	cols := make([]string, len(values))
	vals := make([]string, len(values))
	for i, c := range values {
		cols[i] = d.Key(c.Name)
		vals[i] = d.Value(c.Value)
	}
	return "(" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(vals, ", ") + ")"
}

// FormatKeyValuePairs renders "c1 = v1, c2 = v2" for UPDATE ... SET.
func (d Dialect) FormatKeyValuePairs(values Values) string {
	pairs := make([]string, len(values))
	for i, c := range values {
		pairs[i] = d.Key(c.Name) + " = " + d.Value(c.Value)
	}
	return strings.Join(pairs, ", ")
}
