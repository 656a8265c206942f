package resource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pthm/strata/pkg/database"
	"github.com/pthm/strata/pkg/sqldsl"
)

// Helper binds one table, its primary key and a resource factory. Its
// methods report failures through the session logger and return a zero
// result; use Strict to receive the errors.
//
// Helper is safe for concurrent use when the session is.
type Helper[T Resource] struct {
	session    *database.Session
	table      string
	primaryKey string
	factory    Factory[T]
}

// NewHelper returns a helper for table. It fails with ErrInvalidResourceType
// when factory is nil, fails on empty attributes, or builds resources
// without a primary key.
func NewHelper[T Resource](session *database.Session, table string, factory Factory[T]) (*Helper[T], error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: nil factory for table %q", ErrInvalidResourceType, table)
	}
	proto, err := factory(Attributes{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResourceType, err)
	}
	if any(proto) == nil {
		return nil, fmt.Errorf("%w: factory for table %q returned nil", ErrInvalidResourceType, table)
	}
	pk := proto.PrimaryKey()
	if pk == "" {
		return nil, fmt.Errorf("%w: %T has no primary key", ErrInvalidResourceType, proto)
	}
	return &Helper[T]{
		session:    session,
		table:      table,
		primaryKey: pk,
		factory:    factory,
	}, nil
}

// Table returns the bound table name.
func (h *Helper[T]) Table() string { return h.table }

// PrimaryKey returns the bound primary key column.
func (h *Helper[T]) PrimaryKey() string { return h.primaryKey }

// Session returns the underlying session.
func (h *Helper[T]) Session() *database.Session { return h.session }

// Strict returns a view of h whose methods return errors.
func (h *Helper[T]) Strict() *Strict[T] {
	return &Strict[T]{h: h}
}

func (h *Helper[T]) warn(op Op, err error) {
	h.session.Logger().Warn("resource operation failed",
		slog.String("op", string(op)),
		slog.String("table", h.table),
		slog.Any("error", err),
	)
}

// Create inserts res and returns the stored entity read back by its new key.
// It returns false when the insert or the read-back fails.
func (h *Helper[T]) Create(ctx context.Context, res T) (T, bool) {
	created, err := h.Strict().Create(ctx, res)
	if err != nil {
		h.warn(OpCreate, err)
		var zero T
		return zero, false
	}
	return created, true
}

// Fetch returns the rows matched by sel. Soft-deleted rows are skipped
// unless opts has IncludeDeleted. When nothing matches, or the query fails,
// it returns nil, or an empty result when opts has AlwaysReturnArray.
func (h *Helper[T]) Fetch(ctx context.Context, sel Selector, opts FetchOptions, more ...sqldsl.Suffix) *Result[T] {
	res, err := h.Strict().Fetch(ctx, sel, opts, more...)
	if err != nil {
		h.warn(OpFetch, err)
		res = &Result[T]{}
	}
	if res.Len() == 0 && !opts.Has(AlwaysReturnArray) {
		return nil
	}
	return res
}

// Count returns the number of rows matched by sel, with the same soft-delete
// rule as Fetch. It returns 0 on failure.
func (h *Helper[T]) Count(ctx context.Context, sel Selector, opts FetchOptions, more ...sqldsl.Suffix) int64 {
	n, err := h.Strict().Count(ctx, sel, opts, more...)
	if err != nil {
		h.warn(OpCount, err)
		return 0
	}
	return n
}

// Update writes res's data map to the rows matched by sel, soft-deleted rows
// included, and returns the affected row count.
func (h *Helper[T]) Update(ctx context.Context, sel Selector, res T) (int64, bool) {
	n, err := h.Strict().Update(ctx, sel, res)
	return h.affected(OpUpdate, n, err)
}

// Delete soft-deletes the rows matched by sel.
func (h *Helper[T]) Delete(ctx context.Context, sel Selector) (int64, bool) {
	n, err := h.Strict().Delete(ctx, sel)
	return h.affected(OpDelete, n, err)
}

// Restore clears the soft-delete flag of the rows matched by sel.
func (h *Helper[T]) Restore(ctx context.Context, sel Selector) (int64, bool) {
	n, err := h.Strict().Restore(ctx, sel)
	return h.affected(OpRestore, n, err)
}

// Destroy permanently removes the rows matched by sel.
func (h *Helper[T]) Destroy(ctx context.Context, sel Selector) (int64, bool) {
	n, err := h.Strict().Destroy(ctx, sel)
	return h.affected(OpDestroy, n, err)
}

func (h *Helper[T]) affected(op Op, n int64, err error) (int64, bool) {
	if err != nil {
		h.warn(op, err)
		return 0, false
	}
	return n, true
}
