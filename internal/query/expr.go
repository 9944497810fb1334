// internal/query/expr.go

// Package query models filter predicates as a storage-independent boolean
// expression tree, plus the join and ordering descriptors needed to run them.
// The tree is built by the search composers and rendered to SQL by the
// adapter in sql.go; nothing in this package touches a database.
package query

// Op is a comparison operator usable in a Cmp node.
type Op string

const (
	OpEq Op = "="
	OpNe Op = "<>"
	OpLt Op = "<"
	OpLe Op = "<="
	OpGt Op = ">"
	OpGe Op = ">="
)

// Expr is a node of the predicate tree.
type Expr interface {
	isExpr()
}

// Operand is one side of a comparison: a column reference, a bound value,
// or a scalar subselect (optionally wrapped in a COALESCE).
type Operand interface {
	isOperand()
}

// Column references a column, qualified with its table alias ("c.dob").
type Column string

// Value is a bound value, rendered as a placeholder.
type Value struct {
	V interface{}
}

// Scalar is a scalar subselect usable as an operand.
type Scalar struct {
	Sub Select
}

// Coalesce substitutes Def when the wrapped operand is NULL.
type Coalesce struct {
	Of  Operand
	Def interface{}
}

func (Column) isOperand()   {}
func (Value) isOperand()    {}
func (Scalar) isOperand()   {}
func (Coalesce) isOperand() {}

// Literal is a constant predicate: MatchAll (no constraint) or MatchNothing
// (a filter that cannot be satisfied, eg a user-relative filter with no user).
type Literal struct {
	Match bool
}

// Cmp compares two operands.
type Cmp struct {
	Left  Operand
	Op    Op
	Right Operand
}

// In is a membership test over bound values. Negate turns it into NOT IN.
// An In with no values matches nothing (a negated one matches everything):
// composers treat empty id lists as "no constraint" before ever building one.
type In struct {
	Col    string
	Values []interface{}
	Negate bool
}

// Contains is a case-insensitive substring match.
type Contains struct {
	Col  string
	Term string
}

// ILike is a case-insensitive LIKE with the caller's pattern applied as-is.
// With no wildcards in the pattern it degenerates to equality.
type ILike struct {
	Col     string
	Pattern string
}

// Null tests a column for NULL. Negate tests for NOT NULL.
type Null struct {
	Col    string
	Negate bool
}

type And struct {
	Children []Expr
}

type Or struct {
	Children []Expr
}

type Not struct {
	Child Expr
}

// Exists is a correlated EXISTS subselect. Correlation is expressed through
// qualified column references into the outer query's aliases.
type Exists struct {
	Sub    Select
	Negate bool
}

// Select is the subselect shape used by Exists and Scalar operands.
// Columns and From are rendered verbatim; From may carry its own joins.
type Select struct {
	Columns string
	From    string
	Where   Expr
}

func (Literal) isExpr()  {}
func (Cmp) isExpr()      {}
func (In) isExpr()       {}
func (Contains) isExpr() {}
func (ILike) isExpr()    {}
func (Null) isExpr()     {}
func (And) isExpr()      {}
func (Or) isExpr()       {}
func (Not) isExpr()      {}
func (Exists) isExpr()   {}

// MatchAll is the identity of NewAnd: an absent criterion.
func MatchAll() Expr { return Literal{Match: true} }

// MatchNothing is the identity of NewOr: an unsatisfiable criterion.
func MatchNothing() Expr { return Literal{Match: false} }

// NewAnd conjoins the given expressions, dropping MatchAll identities and
// collapsing to MatchNothing if any child is MatchNothing. With no effective
// children the result is MatchAll.
func NewAnd(children ...Expr) Expr {
	kept := make([]Expr, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if lit, ok := c.(Literal); ok {
			if !lit.Match {
				return MatchNothing()
			}
			continue
		}
		kept = append(kept, c)
	}
	switch len(kept) {
	case 0:
		return MatchAll()
	case 1:
		return kept[0]
	}
	return And{Children: kept}
}

// NewOr disjoins the given expressions, dropping MatchNothing identities and
// collapsing to MatchAll if any child is MatchAll. With no effective children
// the result is MatchNothing.
func NewOr(children ...Expr) Expr {
	kept := make([]Expr, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if lit, ok := c.(Literal); ok {
			if lit.Match {
				return MatchAll()
			}
			continue
		}
		kept = append(kept, c)
	}
	switch len(kept) {
	case 0:
		return MatchNothing()
	case 1:
		return kept[0]
	}
	return Or{Children: kept}
}

// NewNot negates an expression, flipping literals directly.
func NewNot(child Expr) Expr {
	if lit, ok := child.(Literal); ok {
		return Literal{Match: !lit.Match}
	}
	return Not{Child: child}
}

// Eq builds column = value.
func Eq(col string, v interface{}) Expr {
	return Cmp{Left: Column(col), Op: OpEq, Right: Value{V: v}}
}

// Ne builds column <> value.
func Ne(col string, v interface{}) Expr {
	return Cmp{Left: Column(col), Op: OpNe, Right: Value{V: v}}
}

func Lt(col string, v interface{}) Expr {
	return Cmp{Left: Column(col), Op: OpLt, Right: Value{V: v}}
}

func Le(col string, v interface{}) Expr {
	return Cmp{Left: Column(col), Op: OpLe, Right: Value{V: v}}
}

func Gt(col string, v interface{}) Expr {
	return Cmp{Left: Column(col), Op: OpGt, Right: Value{V: v}}
}

func Ge(col string, v interface{}) Expr {
	return Cmp{Left: Column(col), Op: OpGe, Right: Value{V: v}}
}

// EqCol builds column = column.
func EqCol(left, right string) Expr {
	return Cmp{Left: Column(left), Op: OpEq, Right: Column(right)}
}

// InVals builds a membership test from a typed slice.
func InVals[T any](col string, vals []T) Expr {
	return In{Col: col, Values: toAny(vals)}
}

// NotInVals builds an exclusion test from a typed slice.
func NotInVals[T any](col string, vals []T) Expr {
	return In{Col: col, Values: toAny(vals), Negate: true}
}

func toAny[T any](vals []T) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

// Between builds an inclusive range test on a column.
func Between(col string, lo, hi interface{}) Expr {
	return NewAnd(Ge(col, lo), Le(col, hi))
}

// IsNull / IsNotNull build NULL tests.
func IsNull(col string) Expr    { return Null{Col: col} }
func IsNotNull(col string) Expr { return Null{Col: col, Negate: true} }
