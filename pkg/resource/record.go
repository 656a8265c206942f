package resource

import (
	"database/sql"
	"strconv"

	"github.com/pthm/strata/pkg/access"
	"github.com/pthm/strata/pkg/sqldsl"
)

// KeyRecordID is the primary key column of Record.
const KeyRecordID = "record_id"

// RecordType is the access object type of records.
const RecordType access.ObjectType = "record"

// Record is the built-in resource keyed by record_id.
type Record struct {
	Base
	RecordID sql.Null[int64]
}

// NewRecord builds a Record from attrs. It is a Factory[*Record].
func NewRecord(attrs Attributes) (*Record, error) {
	base, err := NewBase(attrs)
	if err != nil {
		return nil, err
	}
	id, err := attrs.Int64(KeyRecordID)
	if err != nil {
		return nil, err
	}
	return &Record{Base: base, RecordID: id}, nil
}

// ID returns the record id, or nil when unset.
func (r *Record) ID() any {
	if r == nil || !r.RecordID.Valid {
		return nil
	}
	return r.RecordID.V
}

// PrimaryKey returns "record_id".
func (r *Record) PrimaryKey() string {
	return KeyRecordID
}

// DataMap returns the set attributes. The record id is generated by the
// database and never written.
func (r *Record) DataMap() sqldsl.Values {
	if r == nil {
		return nil
	}
	return r.Base.DataMap()
}

// AccessObject implements access.ObjectLike.
func (r *Record) AccessObject() access.Object {
	id := ""
	if r != nil && r.RecordID.Valid {
		id = strconv.FormatInt(r.RecordID.V, 10)
	}
	return access.Object{Type: RecordType, ID: id}
}
