package resource

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Attribute keys shared by every resource.
const (
	KeyCreatorID    = "creator_id"
	KeyCreationDate = "creation_date"
	KeyModifiedDate = "modified_date"
	KeyActivityDate = "activity_date"
	KeyDeleted      = "deleted"
)

// TimestampFormat is the textual form of timestamps in the database.
const TimestampFormat = time.DateTime

// Attributes is a raw column to value map, such as a fetched row or
// user-supplied creation data.
type Attributes map[string]any

// IsNull reports whether v is nil, a nil pointer or a driver.Valuer that
// reports nil.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return true
	}
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		return err == nil && dv == nil
	}
	return false
}

func blank(v any) bool {
	if IsNull(v) {
		return true
	}
	switch x := v.(type) {
	case string:
		return x == ""
	case []byte:
		return len(x) == 0
	}
	return false
}

// Int64 reads key as an integer. Missing and empty values are invalid.
func (a Attributes) Int64(key string) (sql.Null[int64], error) {
	v, ok := a[key]
	if !ok || blank(v) {
		return sql.Null[int64]{}, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return sql.Null[int64]{}, fmt.Errorf("%s: %w", key, err)
	}
	return sql.Null[int64]{V: n, Valid: true}, nil
}

// Bool reads key as a boolean. Missing and empty values are invalid.
func (a Attributes) Bool(key string) (sql.Null[bool], error) {
	v, ok := a[key]
	if !ok || blank(v) {
		return sql.Null[bool]{}, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return sql.Null[bool]{}, fmt.Errorf("%s: %w", key, err)
	}
	return sql.Null[bool]{V: b, Valid: true}, nil
}

// String reads key as a string. Missing and nil values are invalid.
func (a Attributes) String(key string) (sql.Null[string], error) {
	v, ok := a[key]
	if !ok || IsNull(v) {
		return sql.Null[string]{}, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return sql.Null[string]{}, fmt.Errorf("%s: %w", key, err)
	}
	return sql.Null[string]{V: s, Valid: true}, nil
}

// Timestamp reads key with ParseTimestamp.
func (a Attributes) Timestamp(key string) (Timestamp, error) {
	ts, err := ParseTimestamp(a[key])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return ts, nil
}

// Timestamp is a point in time with one-second resolution, held as Unix
// seconds. The zero value means unset.
type Timestamp int64

// TimestampOf converts t. The zero time converts to the zero Timestamp.
func TimestampOf(t time.Time) Timestamp {
	if t.IsZero() {
		return 0
	}
	return Timestamp(t.Unix())
}

// ParseTimestamp converts a stored or user-supplied value. It accepts Unix
// seconds as integers or numeric strings, TimestampFormat, RFC 3339 and
// date-only strings (all read as UTC), and time.Time. nil and empty values
// parse as the zero Timestamp.
func ParseTimestamp(v any) (Timestamp, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case Timestamp:
		return x, nil
	case time.Time:
		return TimestampOf(x), nil
	case []byte:
		return ParseTimestamp(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" || s == "0000-00-00 00:00:00" {
			return 0, nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Timestamp(n), nil
		}
		for _, layout := range []string{TimestampFormat, time.RFC3339, time.DateOnly} {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return TimestampOf(t), nil
			}
		}
		return 0, fmt.Errorf("invalid timestamp %q", x)
	default:
		if IsNull(v) {
			return 0, nil
		}
		n, err := cast.ToInt64E(v)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %v: %w", v, err)
		}
		return Timestamp(n), nil
	}
}

// IsZero reports whether t is unset.
func (t Timestamp) IsZero() bool {
	return t == 0
}

// Time returns t in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// String formats t with FormatTimestamp.
func (t Timestamp) String() string {
	return FormatTimestamp(t)
}

// FormatTimestamp renders t with TimestampFormat in UTC, or "" when unset.
func FormatTimestamp(t Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.Time().Format(TimestampFormat)
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.String(), nil
}
