package database

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"github.com/pthm/strata/pkg/sqldsl"
)

// DefaultCountAlias is the result column used by Count when no alias is
// given.
const DefaultCountAlias = "count"

// Select returns the rows of table matching where.
func (s *Session) Select(ctx context.Context, table string, columns []string, where sqldsl.Expr, more ...sqldsl.Suffix) ([]Row, error) {
	return s.Query(ctx, s.dialect.BuildQuerySelect(table, columns, where, more...), nil)
}

// Count returns COUNT(column) over the rows of table matching where. An
// empty column counts rows; an empty alias uses DefaultCountAlias.
func (s *Session) Count(ctx context.Context, table, column string, where sqldsl.Expr, alias string, more ...sqldsl.Suffix) (int64, error) {
	if alias == "" {
		alias = DefaultCountAlias
	}
	rows, err := s.Query(ctx, s.dialect.BuildQueryCount(table, column, where, alias, more...), nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := cast.ToInt64E(rows[0][alias])
	if err != nil {
		return 0, fmt.Errorf("reading count: %w", err)
	}
	return n, nil
}

// Insert adds one row to table and returns its generated key.
func (s *Session) Insert(ctx context.Context, table string, values sqldsl.Values, more ...sqldsl.Suffix) (int64, error) {
	res, err := s.Exec(ctx, s.dialect.BuildQueryInsert(table, values, more...), nil)
	if err != nil {
		return 0, err
	}
	return res.InsertID, nil
}

// Update sets values on the rows of table matching where and returns the
// number of affected rows.
func (s *Session) Update(ctx context.Context, table string, values sqldsl.Values, where sqldsl.Expr, more ...sqldsl.Suffix) (int64, error) {
	res, err := s.Exec(ctx, s.dialect.BuildQueryUpdate(table, values, where, more...), nil)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// Delete removes the rows of table matching where and returns the number of
// affected rows.
func (s *Session) Delete(ctx context.Context, table string, where sqldsl.Expr, more ...sqldsl.Suffix) (int64, error) {
	res, err := s.Exec(ctx, s.dialect.BuildQueryDelete(table, where, more...), nil)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}
