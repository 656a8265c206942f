package sqldsl

import (
	"fmt"
	"strings"
)

// Expr is a SQL predicate that renders for a dialect.
type Expr interface {
	SQL(d Dialect) string
}

// Raw is a caller-built predicate rendered verbatim.
type Raw string

// SQL renders the raw predicate as-is.
func (r Raw) SQL(Dialect) string { return string(r) }

// Relation is a comparison operator.
type Relation string

// Supported relations.
const (
	EQU  Relation = "="
	NEQ  Relation = "!="
	LT   Relation = "<"
	LTE  Relation = "<="
	GT   Relation = ">"
	GTE  Relation = ">="
	LIKE Relation = "LIKE"
)

// Valid reports whether r is one of the supported relations.
func (r Relation) Valid() bool {
	switch r {
	case EQU, NEQ, LT, LTE, GT, GTE, LIKE:
		return true
	}
	return false
}

// Filter is a "key relation value" predicate.
//
// RawKey and RawValue disable quoting of the key or value, for computed
// expressions and column-to-column comparisons.
type Filter struct {
	Key      string
	Relation Relation
	Value    any
	RawKey   bool
	RawValue bool
}

// SQL renders the filter. An empty relation renders as =.
func (f Filter) SQL(d Dialect) string {
	key := f.Key
	if !f.RawKey {
		key = d.Key(f.Key)
	}
	var value string
	if f.RawValue {
		value = fmt.Sprint(f.Value)
	} else {
		value = d.Value(f.Value)
	}
	rel := f.Relation
	if rel == "" {
		rel = EQU
	}
	return key + " " + string(rel) + " " + value
}

// Build creates a filter with the given relation.
func Build(key string, value any, rel Relation) Filter {
	return Filter{Key: key, Relation: rel, Value: value}
}

// Eq creates key = value.
func Eq(key string, value any) Filter { return Build(key, value, EQU) }

// Ne creates key != value.
func Ne(key string, value any) Filter { return Build(key, value, NEQ) }

// Lt creates key < value.
func Lt(key string, value any) Filter { return Build(key, value, LT) }

// Lte creates key <= value.
func Lte(key string, value any) Filter { return Build(key, value, LTE) }

// Gt creates key > value.
func Gt(key string, value any) Filter { return Build(key, value, GT) }

// Gte creates key >= value.
func Gte(key string, value any) Filter { return Build(key, value, GTE) }

// Like creates key LIKE value.
func Like(key string, value any) Filter { return Build(key, value, LIKE) }

// Seq renders its parts separated by single spaces. It adds no logic
// operators; callers supply them as Raw parts or use Group.
type Seq []Expr

// SQL renders the sequence.
func (s Seq) SQL(d Dialect) string {
	parts := make([]string, 0, len(s))
	for _, e := range s {
		if e == nil {
			continue
		}
		parts = append(parts, e.SQL(d))
	}
	return strings.Join(parts, " ")
}

func joinExprs(d Dialect, exprs []Expr, sep, emptyVal string) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if e == nil {
			continue
		}
		parts = append(parts, e.SQL(d))
	}
	if len(parts) == 0 {
		return emptyVal
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// AndExpr is a parenthesized AND of its parts.
type AndExpr struct {
	Exprs []Expr
}

// SQL renders the group. An empty group renders as TRUE.
func (a AndExpr) SQL(d Dialect) string { return joinExprs(d, a.Exprs, " AND ", "TRUE") }

// OrExpr is a parenthesized OR of its parts.
type OrExpr struct {
	Exprs []Expr
}

// SQL renders the group. An empty group renders as FALSE.
func (o OrExpr) SQL(d Dialect) string { return joinExprs(d, o.Exprs, " OR ", "FALSE") }

// Group joins parts with AND. Nil parts are skipped.
func Group(parts ...Expr) AndExpr {
	return AndExpr{Exprs: parts}
}

// GroupAlternatives joins parts with OR. Nil parts are skipped.
func GroupAlternatives(parts ...Expr) OrExpr {
	return OrExpr{Exprs: parts}
}

// RangeGroup builds a two-sided range on key from the first two bounds.
// It returns nil when fewer than two bounds are given.
func RangeGroup(key string, bounds []any, inclusive bool) Expr {
	if len(bounds) < 2 {
		return nil
	}
	lower, upper := GT, LT
	if inclusive {
		lower, upper = GTE, LTE
	}
	return Group(Build(key, bounds[0], lower), Build(key, bounds[1], upper))
}

// FormatWhere renders a where expression. A nil expression renders as "".
func (d Dialect) FormatWhere(where Expr) string {
	if where == nil {
		return ""
	}
	return where.SQL(d)
}
