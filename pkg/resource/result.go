package resource

import "github.com/pthm/strata/pkg/database"

// Result holds the outcome of Fetch. Entities is filled unless
// AsAssociative was requested, in which case Rows is filled.
type Result[T Resource] struct {
	Entities []T
	Rows     []database.Row

	single bool
}

// Single reports whether the fetch matched exactly one row and the caller
// did not ask for AlwaysReturnArray.
func (r *Result[T]) Single() bool {
	return r != nil && r.single
}

// First returns the first entity.
func (r *Result[T]) First() (T, bool) {
	var zero T
	if r == nil || len(r.Entities) == 0 {
		return zero, false
	}
	return r.Entities[0], true
}

// FirstRow returns the first raw row.
func (r *Result[T]) FirstRow() (database.Row, bool) {
	if r == nil || len(r.Rows) == 0 {
		return nil, false
	}
	return r.Rows[0], true
}

// Len returns the number of matched rows.
func (r *Result[T]) Len() int {
	if r == nil {
		return 0
	}
	return max(len(r.Entities), len(r.Rows))
}
