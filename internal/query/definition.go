// internal/query/definition.go
package query

// JoinKind selects the SQL join flavor.
type JoinKind string

const (
	JoinInner JoinKind = "JOIN"
	JoinLeft  JoinKind = "LEFT JOIN"
)

// Join describes one join from the base table to a lookup target.
type Join struct {
	Kind  JoinKind
	Table string
	Alias string
	On    string
}

// Order is a single ordering directive on an already-aliased column.
type Order struct {
	Col  string
	Desc bool
}

// Definition is a composed predicate plus ordering, ready for a generic
// "execute predicate, return page/list" runner.
//
// Distinct deduplicates ids for callers whose joins fan out the base rows
// (eg ad-hoc list exports joining one-to-many tables). The built-in
// composers never need it: their collection filters go through EXISTS
// subqueries, which cannot multiply rows.
type Definition struct {
	Table    string
	Alias    string
	Joins    []Join
	Where    Expr
	Orders   []Order
	Distinct bool
}

// IDColumn is the qualified primary key of the base table.
func (d *Definition) IDColumn() string {
	return d.Alias + ".id"
}
