package resource

import (
	"context"
	"fmt"

	"github.com/pthm/strata/pkg/database"
	"github.com/pthm/strata/pkg/sqldsl"
)

// Strict is the error-returning view of a Helper. Every error is an
// *OperationError wrapping the cause, typically a *database.QueryError.
type Strict[T Resource] struct {
	h *Helper[T]
}

func (s *Strict[T]) dialect() sqldsl.Dialect {
	return s.h.session.Dialect()
}

// Create inserts res in its own transaction and reads the new row back,
// soft-deleted or not.
func (s *Strict[T]) Create(ctx context.Context, res T) (T, error) {
	var zero T
	if any(res) == nil {
		return zero, opError(OpCreate, s.h.table, ErrInvalidResourceType)
	}

	d := s.dialect()
	stmt := d.BuildQueryInsert(s.h.table, res.DataMap(), d.Returning(s.h.primaryKey))
	resp, err := s.h.session.RunTransaction(ctx, stmt)
	if err != nil {
		return zero, opError(OpCreate, s.h.table, err)
	}

	id := resp.InsertIDs[0]
	result, err := s.fetch(ctx, ByKey(id), IncludeDeleted|OnlyOneResult)
	if err != nil {
		return zero, opError(OpCreate, s.h.table, err)
	}
	created, ok := result.First()
	if !ok {
		return zero, opError(OpCreate, s.h.table, fmt.Errorf("%w: %s = %d", ErrNotFound, s.h.primaryKey, id))
	}
	return created, nil
}

// Fetch returns the rows matched by sel. A fetch that matches nothing
// returns an empty result and no error.
func (s *Strict[T]) Fetch(ctx context.Context, sel Selector, opts FetchOptions, more ...sqldsl.Suffix) (*Result[T], error) {
	res, err := s.fetch(ctx, sel, opts, more...)
	return res, opError(OpFetch, s.h.table, err)
}

func (s *Strict[T]) fetch(ctx context.Context, sel Selector, opts FetchOptions, more ...sqldsl.Suffix) (*Result[T], error) {
	where, err := s.filtered(ctx, sel, opts)
	if err != nil {
		return nil, err
	}
	if opts.Has(OnlyOneResult) && !sqldsl.HasLimit(more...) {
		more = append(more[:len(more):len(more)], sqldsl.Limit(1))
	}

	rows, err := s.h.session.Select(ctx, s.h.table, nil, where, more...)
	if err != nil {
		return nil, err
	}

	res := &Result[T]{single: len(rows) == 1 && !opts.Has(AlwaysReturnArray)}
	if opts.Has(AsAssociative) {
		res.Rows = rows
		return res, nil
	}
	res.Entities = make([]T, 0, len(rows))
	for _, row := range rows {
		ent, err := s.h.factory(Attributes(row))
		if err != nil {
			return nil, fmt.Errorf("building entity: %w", err)
		}
		res.Entities = append(res.Entities, ent)
	}
	return res, nil
}

// Count returns the number of rows matched by sel.
func (s *Strict[T]) Count(ctx context.Context, sel Selector, opts FetchOptions, more ...sqldsl.Suffix) (int64, error) {
	where, err := s.filtered(ctx, sel, opts)
	if err != nil {
		return 0, opError(OpCount, s.h.table, err)
	}
	n, err := s.h.session.Count(ctx, s.h.table, "", where, database.DefaultCountAlias, more...)
	if err != nil {
		return 0, opError(OpCount, s.h.table, err)
	}
	return n, nil
}

// filtered resolves sel and adds the soft-delete filter unless deleted rows
// were asked for or the table has no deleted column.
func (s *Strict[T]) filtered(ctx context.Context, sel Selector, opts FetchOptions) (sqldsl.Expr, error) {
	where, err := sel.where(s.h.primaryKey)
	if err != nil {
		return nil, err
	}
	if opts.Has(IncludeDeleted) {
		return where, nil
	}
	soft, err := s.h.session.HasColumn(ctx, s.h.table, KeyDeleted)
	if err != nil {
		return nil, err
	}
	if !soft {
		return where, nil
	}
	return sqldsl.Group(where, sqldsl.Eq(KeyDeleted, false)), nil
}

// Update writes res's data map to the rows matched by sel, soft-deleted rows
// included.
func (s *Strict[T]) Update(ctx context.Context, sel Selector, res T) (int64, error) {
	return s.update(ctx, OpUpdate, sel, res)
}

// Delete sets deleted = 1 on the rows matched by sel.
func (s *Strict[T]) Delete(ctx context.Context, sel Selector) (int64, error) {
	return s.setDeleted(ctx, OpDelete, sel, true)
}

// Restore sets deleted = 0 on the rows matched by sel.
func (s *Strict[T]) Restore(ctx context.Context, sel Selector) (int64, error) {
	return s.setDeleted(ctx, OpRestore, sel, false)
}

func (s *Strict[T]) setDeleted(ctx context.Context, op Op, sel Selector, deleted bool) (int64, error) {
	ent, err := s.h.factory(Attributes{KeyDeleted: deleted})
	if err != nil {
		return 0, opError(op, s.h.table, err)
	}
	return s.update(ctx, op, sel, ent)
}

func (s *Strict[T]) update(ctx context.Context, op Op, sel Selector, res T) (int64, error) {
	if any(res) == nil {
		return 0, opError(op, s.h.table, ErrInvalidResourceType)
	}
	values := res.DataMap()
	if values.Len() == 0 {
		return 0, opError(op, s.h.table, ErrEmptyDataMap)
	}
	where, err := sel.where(s.h.primaryKey)
	if err != nil {
		return 0, opError(op, s.h.table, err)
	}
	stmt := s.dialect().BuildQueryUpdate(s.h.table, values, where)
	return s.run(ctx, op, stmt)
}

// Destroy permanently deletes the rows matched by sel.
func (s *Strict[T]) Destroy(ctx context.Context, sel Selector) (int64, error) {
	where, err := sel.where(s.h.primaryKey)
	if err != nil {
		return 0, opError(OpDestroy, s.h.table, err)
	}
	return s.run(ctx, OpDestroy, s.dialect().BuildQueryDelete(s.h.table, where))
}

func (s *Strict[T]) run(ctx context.Context, op Op, stmt string) (int64, error) {
	resp, err := s.h.session.RunTransaction(ctx, stmt)
	if err != nil {
		return 0, opError(op, s.h.table, err)
	}
	return resp.AffectedRows[0], nil
}
