package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/pthm/strata/pkg/sqldsl"
)

// ShowColumns lists the columns of table. Rows carry Field, Type, Null, Key
// and Default.
func (s *Session) ShowColumns(ctx context.Context, table string, more ...sqldsl.Suffix) ([]Row, error) {
	return s.Query(ctx, s.dialect.BuildQueryShowColumns(table, more...), nil)
}

// HasColumn reports whether table has column. Results are cached when the
// session was created WithColumnCache.
func (s *Session) HasColumn(ctx context.Context, table, column string) (bool, error) {
	key := table + "\x00" + column
	if s.columns != nil {
		if has, ok := s.columns.Get(key); ok {
			return has, nil
		}
	}

	rows, err := s.Query(ctx, s.dialect.BuildQueryHasColumn(table, column), nil)
	if err != nil {
		return false, err
	}
	has := len(rows) > 0

	if s.columns != nil {
		s.columns.Set(key, has)
	}
	return has, nil
}

// ShowIndex lists the indexes of table, one row per indexed column. Rows
// carry Key_name, Column_name, Seq_in_index and Non_unique.
func (s *Session) ShowIndex(ctx context.Context, table string, more ...sqldsl.Suffix) ([]Row, error) {
	return s.Query(ctx, s.dialect.BuildQueryShowIndex(table, more...), nil)
}

// Indexes returns the indexes of table with their columns in index order.
func (s *Session) Indexes(ctx context.Context, table string) ([]sqldsl.TableIndex, error) {
	rows, err := s.ShowIndex(ctx, table)
	if err != nil {
		return nil, err
	}

	type column struct {
		name string
		seq  int
	}
	var order []string
	byKey := make(map[string][]column)
	for _, r := range rows {
		key := cast.ToString(r["Key_name"])
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], column{
			name: cast.ToString(r["Column_name"]),
			seq:  cast.ToInt(r["Seq_in_index"]),
		})
	}

	out := make([]sqldsl.TableIndex, 0, len(order))
	for _, key := range order {
		cols := byKey[key]
		sort.SliceStable(cols, func(i, j int) bool { return cols[i].seq < cols[j].seq })
		idx := sqldsl.TableIndex{KeyName: key}
		for _, c := range cols {
			idx.Columns = append(idx.Columns, c.name)
		}
		out = append(out, idx)
	}
	return out, nil
}

// AddIndex adds index to table.
func (s *Session) AddIndex(ctx context.Context, table string, index sqldsl.TableIndex, more ...sqldsl.Suffix) error {
	if index.KeyName == "" || len(index.Columns) == 0 {
		return fmt.Errorf("index on %s needs a key name and at least one column", table)
	}
	_, err := s.Exec(ctx, s.dialect.BuildQueryAddIndex(table, index, more...), nil)
	return err
}

// DropIndex removes the index keyName from table.
func (s *Session) DropIndex(ctx context.Context, table, keyName string, more ...sqldsl.Suffix) error {
	_, err := s.Exec(ctx, s.dialect.BuildQueryDropIndex(table, keyName, more...), nil)
	return err
}

// CreateTable creates table. When ref is set the new table copies the
// columns of ref and then receives a copy of each of ref's indexes; the
// primary key is recreated as a plain index named after its columns.
func (s *Session) CreateTable(ctx context.Context, table string, columns []sqldsl.ColumnDef, ref string, more ...sqldsl.Suffix) error {
	if _, err := s.Exec(ctx, s.dialect.BuildQueryCreateTable(table, columns, ref, more...), nil); err != nil {
		return err
	}
	s.invalidateColumns()

	if ref == "" {
		return nil
	}

	indexes, err := s.Indexes(ctx, ref)
	if err != nil {
		return fmt.Errorf("reading indexes of %s: %w", ref, err)
	}
	for _, idx := range indexes {
		if idx.KeyName == sqldsl.PrimaryKeyName {
			idx.KeyName = strings.Join(idx.Columns, "_")
		}
		if err := s.AddIndex(ctx, table, idx); err != nil {
			return fmt.Errorf("copying index %s: %w", idx.KeyName, err)
		}
	}
	return nil
}

// AlterTable adds, drops or modifies column on table.
func (s *Session) AlterTable(ctx context.Context, table string, op sqldsl.AlterOp, column, datatype string, more ...sqldsl.Suffix) error {
	if !op.Valid() {
		return fmt.Errorf("unsupported alter operation %q", op)
	}
	_, err := s.Exec(ctx, s.dialect.BuildQueryAlterTable(table, op, column, datatype, more...), nil)
	s.invalidateColumns()
	return err
}

// DropTable removes table.
func (s *Session) DropTable(ctx context.Context, table string, more ...sqldsl.Suffix) error {
	_, err := s.Exec(ctx, s.dialect.BuildQueryDropTable(table, more...), nil)
	s.invalidateColumns()
	return err
}

func (s *Session) invalidateColumns() {
	if s.columns != nil {
		s.columns.Clear()
	}
}
