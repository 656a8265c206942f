package resource

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the helper and the registry. Every
// *OperationError matches ErrResourceOperation and the sentinel of its
// operation.
var (
	// ErrInvalidResourceType is returned when a factory is missing or builds
	// resources without a primary key, or when a kind is not registered.
	ErrInvalidResourceType = errors.New("strata: invalid resource type")

	// ErrResourceOperation is matched by every operation failure.
	ErrResourceOperation = errors.New("strata: resource operation failed")

	ErrCreate  = errors.New("strata: create failed")
	ErrFetch   = errors.New("strata: fetch failed")
	ErrCount   = errors.New("strata: count failed")
	ErrUpdate  = errors.New("strata: update failed")
	ErrDelete  = errors.New("strata: delete failed")
	ErrRestore = errors.New("strata: restore failed")
	ErrDestroy = errors.New("strata: destroy failed")

	// ErrNotFound is returned when a created row cannot be read back.
	ErrNotFound = errors.New("strata: resource not found")

	// ErrEmptyDataMap is returned when an update carries no columns.
	ErrEmptyDataMap = errors.New("strata: resource has no data to write")

	// ErrEmptySelector is returned for a zero Selector or ByFilter(nil).
	ErrEmptySelector = errors.New("strata: empty selector")
)

// Op names a helper operation.
type Op string

const (
	OpCreate  Op = "create"
	OpFetch   Op = "fetch"
	OpCount   Op = "count"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpRestore Op = "restore"
	OpDestroy Op = "destroy"
)

func (op Op) sentinel() error {
	switch op {
	case OpCreate:
		return ErrCreate
	case OpFetch:
		return ErrFetch
	case OpCount:
		return ErrCount
	case OpUpdate:
		return ErrUpdate
	case OpDelete:
		return ErrDelete
	case OpRestore:
		return ErrRestore
	case OpDestroy:
		return ErrDestroy
	}
	return nil
}

// OperationError reports a failed helper operation on a table.
type OperationError struct {
	Op    Op
	Table string
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is matches ErrResourceOperation and the operation's own sentinel.
func (e *OperationError) Is(target error) bool {
	if target == ErrResourceOperation {
		return true
	}
	s := e.Op.sentinel()
	return s != nil && target == s
}

func opError(op Op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Table: table, Err: err}
}

// IsInvalidResourceTypeErr returns true if err is or wraps ErrInvalidResourceType.
func IsInvalidResourceTypeErr(err error) bool {
	return errors.Is(err, ErrInvalidResourceType)
}

// IsResourceOperationErr returns true if err is or wraps ErrResourceOperation.
func IsResourceOperationErr(err error) bool {
	return errors.Is(err, ErrResourceOperation)
}

// IsNotFoundErr returns true if err is or wraps ErrNotFound.
func IsNotFoundErr(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationErr returns true if err is or wraps ErrValidation.
func IsValidationErr(err error) bool {
	return errors.Is(err, ErrValidation)
}
