package resource

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	const want = Timestamp(1700000000) // 2023-11-14 22:13:20 UTC

	tests := []struct {
		name    string
		in      any
		want    Timestamp
		wantErr bool
	}{
		{name: "nil", in: nil, want: 0},
		{name: "int64", in: int64(1700000000), want: want},
		{name: "int", in: 1700000000, want: want},
		{name: "numeric string", in: "1700000000", want: want},
		{name: "bytes", in: []byte("1700000000"), want: want},
		{name: "formatted", in: "2023-11-14 22:13:20", want: want},
		{name: "rfc3339", in: "2023-11-14T22:13:20Z", want: want},
		{name: "date only", in: "2023-11-14", want: want - 80000},
		{name: "time", in: time.Unix(1700000000, 0), want: want},
		{name: "zero time", in: time.Time{}, want: 0},
		{name: "empty", in: "", want: 0},
		{name: "zero date", in: "0000-00-00 00:00:00", want: 0},
		{name: "timestamp", in: want, want: want},
		{name: "nil pointer", in: (*int64)(nil), want: 0},
		{name: "garbage", in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimestamp_Format(t *testing.T) {
	ts := Timestamp(1700000000)
	assert.Equal(t, "2023-11-14 22:13:20", ts.String())
	assert.Equal(t, "2023-11-14 22:13:20", FormatTimestamp(ts))
	assert.Equal(t, time.UTC, ts.Time().Location())

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-11-14 22:13:20", v)

	var zero Timestamp
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull((*Record)(nil)))
	assert.True(t, IsNull(Timestamp(0)))
	assert.True(t, IsNull(sql.NullString{}))

	assert.False(t, IsNull(0))
	assert.False(t, IsNull(""))
	assert.False(t, IsNull(false))
	assert.False(t, IsNull(Timestamp(1)))
	assert.False(t, IsNull(sql.NullString{String: "x", Valid: true}))
}

func TestAttributes_Getters(t *testing.T) {
	attrs := Attributes{
		"n":       "7",
		"bytes":   []byte("8"),
		"bad":     "seven",
		"empty":   "",
		"flag":    int64(1),
		"off":     "0",
		"name":    "records",
		"nothing": nil,
	}

	n, err := attrs.Int64("n")
	require.NoError(t, err)
	assert.Equal(t, sql.Null[int64]{V: 7, Valid: true}, n)

	n, err = attrs.Int64("bytes")
	require.NoError(t, err)
	assert.Equal(t, int64(8), n.V)

	_, err = attrs.Int64("bad")
	assert.ErrorContains(t, err, "bad")

	for _, key := range []string{"empty", "nothing", "missing"} {
		n, err = attrs.Int64(key)
		require.NoError(t, err)
		assert.False(t, n.Valid, key)
	}

	b, err := attrs.Bool("flag")
	require.NoError(t, err)
	assert.Equal(t, sql.Null[bool]{V: true, Valid: true}, b)

	b, err = attrs.Bool("off")
	require.NoError(t, err)
	assert.Equal(t, sql.Null[bool]{V: false, Valid: true}, b)

	s, err := attrs.String("name")
	require.NoError(t, err)
	assert.Equal(t, "records", s.V)

	s, err = attrs.String("empty")
	require.NoError(t, err)
	assert.True(t, s.Valid)

	s, err = attrs.String("nothing")
	require.NoError(t, err)
	assert.False(t, s.Valid)
}
