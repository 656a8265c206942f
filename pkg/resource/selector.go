package resource

import "github.com/pthm/strata/pkg/sqldsl"

// Selector picks the rows an operation applies to. Build one with ByKey,
// ByFilter or All; the zero Selector is rejected with ErrEmptySelector.
type Selector struct {
	kind   selectorKind
	key    any
	filter sqldsl.Expr
}

type selectorKind uint8

const (
	selectNone selectorKind = iota
	selectKey
	selectFilter
	selectAll
)

// ByKey selects the row whose primary key equals key.
func ByKey(key any) Selector {
	return Selector{kind: selectKey, key: key}
}

// ByFilter selects the rows matching expr. A nil expr is rejected when the
// selector is used; use All to match every row.
func ByFilter(expr sqldsl.Expr) Selector {
	if expr == nil {
		return Selector{}
	}
	return Selector{kind: selectFilter, filter: expr}
}

// All selects every row.
func All() Selector {
	return Selector{kind: selectAll}
}

// where resolves the selector against primaryKey. A nil Expr with a nil error
// means no restriction.
func (s Selector) where(primaryKey string) (sqldsl.Expr, error) {
	switch s.kind {
	case selectKey:
		return sqldsl.Eq(primaryKey, s.key), nil
	case selectFilter:
		return s.filter, nil
	case selectAll:
		return nil, nil
	}
	return nil, ErrEmptySelector
}
