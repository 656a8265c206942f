package resource

// FetchOptions is a bitmask modifying Fetch and Count.
type FetchOptions uint8

const (
	// IncludeDeleted includes soft-deleted rows when the table has a
	// deleted column.
	IncludeDeleted FetchOptions = 1 << iota
	// AsAssociative returns raw rows instead of entities.
	AsAssociative
	// AlwaysReturnArray makes a single match a one-element result and a
	// failure an empty result rather than nil.
	AlwaysReturnArray
	// IgnoreAccessRules is accepted for callers that check permissions
	// themselves; the helper never applies access rules.
	IgnoreAccessRules
	// OnlyOneResult limits the query to one row. A LIMIT already present in
	// the caller's suffixes is kept instead.
	OnlyOneResult
)

// Has reports whether every bit of opt is set in o.
func (o FetchOptions) Has(opt FetchOptions) bool {
	return o&opt == opt
}
