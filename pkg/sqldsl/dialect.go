package sqldsl

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Dialect captures the per-database differences in quoting and in the
// statements used for schema introspection.
type Dialect struct {
	// Name is the dialect identifier: "mysql", "postgres" or "sqlite".
	Name string

	identQuote       string
	backslashEscapes bool
	scopedIndexes    bool
	returning        bool
}

// Supported dialects.
var (
	MySQL    = Dialect{Name: "mysql", identQuote: "`", backslashEscapes: true}
	Postgres = Dialect{Name: "postgres", identQuote: `"`, scopedIndexes: true, returning: true}
	SQLite   = Dialect{Name: "sqlite", identQuote: `"`, scopedIndexes: true}
)

// Default is the dialect used by the package-level functions.
var Default = MySQL

// DialectFor returns the dialect for a database/sql driver name.
func DialectFor(driverName string) (Dialect, bool) {
	switch driverName {
	case "mysql":
		return MySQL, true
	case "postgres", "pgx":
		return Postgres, true
	case "sqlite", "sqlite3":
		return SQLite, true
	default:
		return Dialect{}, false
	}
}

// String returns the dialect name.
func (d Dialect) String() string {
	return d.Name
}

// SupportsReturning reports whether generated keys are read with a
// RETURNING clause instead of the driver's LastInsertId.
func (d Dialect) SupportsReturning() bool {
	return d.returning
}

// Returning returns the suffix that makes an INSERT report the generated
// primary key. It is empty for dialects that expose LastInsertId.
func (d Dialect) Returning(primaryKey string) Suffix {
	if !d.returning || primaryKey == "" {
		return ""
	}
	return Suffix("RETURNING " + d.Key(primaryKey))
}

// returningTail matches a RETURNING clause naming one double-quoted column
// at the very end of a statement, as rendered by Returning.
var returningTail = regexp.MustCompile(`(?i)\sRETURNING\s+"(?:[^"]|"")+"\s*;?\s*$`)

// HasReturning reports whether stmt ends with a RETURNING clause. Only the
// tail of the statement is inspected, so string literals elsewhere in it
// never match.
func (d Dialect) HasReturning(stmt string) bool {
	return d.returning && returningTail.MatchString(stmt)
}

// Key quotes an identifier. Quote characters inside the name are doubled.
func (d Dialect) Key(name string) string {
	q := d.identQuote
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// Value renders v as a SQL literal.
//
// nil, empty strings and zero times render as null; booleans as 1 or 0;
// Go numeric types unquoted, except NaN and infinities which render as null. driver.Valuer implementations are rendered by
// the value they report, and pointers by what they point to. Everything else
// is escaped and single-quoted.
func (d Dialect) Value(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case string:
		if x == "" {
			return "null"
		}
		return d.quoteString(x)
	case []byte:
		if len(x) == 0 {
			return "null"
		}
		return d.quoteString(string(x))
	case time.Time:
		if x.IsZero() {
			return "null"
		}
		return d.quoteString(x.Format(time.DateTime))
	case driver.Valuer:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "null"
		}
		dv, err := x.Value()
		if err != nil {
			return "null"
		}
		return d.Value(dv)
	default:
		return d.valueOfKind(v)
	}
}

// valueOfKind handles named types whose underlying kind is a scalar.
func (d Dialect) valueOfKind(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return d.Value(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.String:
		return d.Value(rv.String())
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return d.Value(rv.Elem().Interface())
	}
	if s, ok := v.(fmt.Stringer); ok {
		return d.Value(s.String())
	}
	return d.Value(fmt.Sprint(v))
}

// formatFloat renders f in plain decimal notation. SQL has no literal for
// NaN or the infinities.
func formatFloat(f float64, bitSize int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

var mysqlEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`, "\x00", `\0`)

func (d Dialect) quoteString(s string) string {
	if d.backslashEscapes {
		return "'" + mysqlEscaper.Replace(s) + "'"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// indexName returns the physical index name for a logical key name. Index
// names are table-scoped in MySQL but schema-scoped elsewhere, so other
// dialects prefix the table name.
func (d Dialect) indexName(table, keyName string) string {
	if d.scopedIndexes {
		return table + "_" + keyName
	}
	return keyName
}
