package resource

import (
	"database/sql"
	"errors"

	"github.com/spf13/cast"

	"github.com/pthm/strata/pkg/sqldsl"
)

// Resource is a persisted entity bound to one table.
type Resource interface {
	// ID returns the primary key value, or nil when the entity has not been
	// stored yet.
	ID() any
	// PrimaryKey returns the primary key column name. It must not depend on
	// the receiver's state.
	PrimaryKey() string
	// DataMap returns the column/value pairs written on create and update.
	// Unset attributes are omitted.
	DataMap() sqldsl.Values
}

// Base holds the attributes shared by every resource. Embed it in concrete
// resource types.
type Base struct {
	CreatorID    sql.Null[int64]
	CreationDate Timestamp
	ModifiedDate Timestamp
	ActivityDate Timestamp
	Deleted      sql.Null[bool]
}

// NewBase reads the shared attributes from attrs.
func NewBase(attrs Attributes) (Base, error) {
	var (
		b    Base
		err  error
		errs []error
	)
	collect := func(e error) {
		if e != nil {
			errs = append(errs, e)
		}
	}

	b.CreatorID, err = attrs.Int64(KeyCreatorID)
	collect(err)
	b.CreationDate, err = attrs.Timestamp(KeyCreationDate)
	collect(err)
	b.ModifiedDate, err = attrs.Timestamp(KeyModifiedDate)
	collect(err)
	b.ActivityDate, err = attrs.Timestamp(KeyActivityDate)
	collect(err)
	b.Deleted, err = attrs.Bool(KeyDeleted)
	collect(err)

	return b, errors.Join(errs...)
}

// DataMap returns the shared attributes that are set, in column order.
func (b Base) DataMap() sqldsl.Values {
	var v sqldsl.Values
	if b.CreatorID.Valid {
		v.Set(KeyCreatorID, b.CreatorID.V)
	}
	if !b.CreationDate.IsZero() {
		v.Set(KeyCreationDate, b.CreationDate.String())
	}
	if !b.ModifiedDate.IsZero() {
		v.Set(KeyModifiedDate, b.ModifiedDate.String())
	}
	if !b.ActivityDate.IsZero() {
		v.Set(KeyActivityDate, b.ActivityDate.String())
	}
	if b.Deleted.Valid {
		v.Set(KeyDeleted, b.Deleted.V)
	}
	return v
}

// IsDeleted reports whether the resource is soft-deleted.
func (b Base) IsDeleted() bool {
	return b.Deleted.Valid && b.Deleted.V
}

// CreatedBy reports whether entity's key equals the creator id.
func (b Base) CreatedBy(entity Resource) bool {
	if entity == nil || !b.CreatorID.Valid {
		return false
	}
	id := entity.ID()
	if id == nil {
		return false
	}
	n, err := cast.ToInt64E(id)
	if err != nil {
		return false
	}
	return n == b.CreatorID.V
}

// Validate runs ValidateStructure over conds.
func (b Base) Validate(directive Directive, conds ...Condition) ValidationResult {
	return ValidateStructure(directive, conds...)
}
