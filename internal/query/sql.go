// internal/query/sql.go
package query

import (
	"fmt"
	"strings"
)

// sqlBuilder accumulates SQL text and bound args with postgres $n
// placeholders. A single builder is threaded through nested subselects so
// placeholder numbering stays consistent.
type sqlBuilder struct {
	sb   strings.Builder
	args []interface{}
}

func (b *sqlBuilder) write(s string) {
	b.sb.WriteString(s)
}

func (b *sqlBuilder) bind(v interface{}) {
	b.args = append(b.args, v)
	fmt.Fprintf(&b.sb, "$%d", len(b.args))
}

// RenderExpr renders a predicate tree to a postgres WHERE condition.
func RenderExpr(e Expr) (string, []interface{}) {
	b := &sqlBuilder{}
	b.renderExpr(e)
	return b.sb.String(), b.args
}

func (b *sqlBuilder) renderExpr(e Expr) {
	switch n := e.(type) {
	case Literal:
		if n.Match {
			b.write("TRUE")
		} else {
			b.write("FALSE")
		}
	case Cmp:
		b.renderOperand(n.Left)
		b.write(" " + string(n.Op) + " ")
		b.renderOperand(n.Right)
	case In:
		b.renderIn(n)
	case Contains:
		b.write("lower(" + n.Col + ") LIKE ")
		b.bind("%" + strings.ToLower(n.Term) + "%")
	case ILike:
		b.write("lower(" + n.Col + ") LIKE ")
		b.bind(strings.ToLower(n.Pattern))
	case Null:
		if n.Negate {
			b.write(n.Col + " IS NOT NULL")
		} else {
			b.write(n.Col + " IS NULL")
		}
	case And:
		b.renderChildren(n.Children, " AND ")
	case Or:
		b.renderChildren(n.Children, " OR ")
	case Not:
		b.write("NOT (")
		b.renderExpr(n.Child)
		b.write(")")
	case Exists:
		if n.Negate {
			b.write("NOT ")
		}
		b.write("EXISTS ")
		b.renderSelect(n.Sub)
	default:
		// Unreachable for trees built through this package's constructors.
		b.write("FALSE")
	}
}

func (b *sqlBuilder) renderChildren(children []Expr, sep string) {
	b.write("(")
	for i, c := range children {
		if i > 0 {
			b.write(sep)
		}
		b.renderExpr(c)
	}
	b.write(")")
}

func (b *sqlBuilder) renderIn(n In) {
	if len(n.Values) == 0 {
		// Defensive: composers never build empty membership tests.
		if n.Negate {
			b.write("TRUE")
		} else {
			b.write("FALSE")
		}
		return
	}
	b.write(n.Col)
	if n.Negate {
		b.write(" NOT IN (")
	} else {
		b.write(" IN (")
	}
	for i, v := range n.Values {
		if i > 0 {
			b.write(", ")
		}
		b.bind(v)
	}
	b.write(")")
}

func (b *sqlBuilder) renderOperand(o Operand) {
	switch n := o.(type) {
	case Column:
		b.write(string(n))
	case Value:
		b.bind(n.V)
	case Scalar:
		b.renderSelect(n.Sub)
	case Coalesce:
		b.write("coalesce(")
		b.renderOperand(n.Of)
		b.write(", ")
		b.bind(n.Def)
		b.write(")")
	}
}

func (b *sqlBuilder) renderSelect(s Select) {
	b.write("(SELECT " + s.Columns + " FROM " + s.From)
	if s.Where != nil {
		if lit, ok := s.Where.(Literal); !ok || !lit.Match {
			b.write(" WHERE ")
			b.renderExpr(s.Where)
		}
	}
	b.write(")")
}

// SelectSQL renders the paged id-select for a definition. When the
// definition is distinct, the order columns are appended to the select list
// so postgres accepts ORDER BY on joined columns.
func (d *Definition) SelectSQL(limit, offset int) (string, []interface{}) {
	b := &sqlBuilder{}
	b.write("SELECT ")
	if d.Distinct {
		b.write("DISTINCT ")
	}
	b.write(d.IDColumn())
	if d.Distinct {
		for _, o := range d.Orders {
			if o.Col != d.IDColumn() {
				b.write(", " + o.Col)
			}
		}
	}
	b.write(" FROM " + d.Table + " " + d.Alias)
	d.renderJoins(b)
	d.renderWhere(b)
	if len(d.Orders) > 0 {
		b.write(" ORDER BY ")
		for i, o := range d.Orders {
			if i > 0 {
				b.write(", ")
			}
			b.write(o.Col)
			if o.Desc {
				b.write(" DESC")
			} else {
				b.write(" ASC")
			}
		}
	}
	if limit > 0 {
		fmt.Fprintf(&b.sb, " LIMIT %d OFFSET %d", limit, offset)
	}
	return b.sb.String(), b.args
}

// CountSQL renders the matching row count for a definition.
func (d *Definition) CountSQL() (string, []interface{}) {
	b := &sqlBuilder{}
	if d.Distinct {
		b.write("SELECT count(DISTINCT " + d.IDColumn() + ")")
	} else {
		b.write("SELECT count(*)")
	}
	b.write(" FROM " + d.Table + " " + d.Alias)
	d.renderJoins(b)
	d.renderWhere(b)
	return b.sb.String(), b.args
}

func (d *Definition) renderJoins(b *sqlBuilder) {
	for _, j := range d.Joins {
		b.write(" " + string(j.Kind) + " " + j.Table + " " + j.Alias + " ON " + j.On)
	}
}

func (d *Definition) renderWhere(b *sqlBuilder) {
	if d.Where == nil {
		return
	}
	if lit, ok := d.Where.(Literal); ok && lit.Match {
		return
	}
	b.write(" WHERE ")
	b.renderExpr(d.Where)
}
