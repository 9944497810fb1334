// internal/search/sort.go
package search

import (
	"fmt"
	"strings"
	"unicode"

	"talent-search/internal/query"
)

// PathRegistry maps dotted logical sort prefixes ("user.partner") to the
// join aliases of an entity's query definition. Registries are built once at
// startup; an invalid mapping is a programming error surfaced there, not per
// request.
type PathRegistry struct {
	baseAlias string
	prefixes  map[string]string
}

// NewPathRegistry validates and builds a registry. The base alias resolves
// any field whose first segment names no registered join target.
func NewPathRegistry(baseAlias string, prefixes map[string]string) (*PathRegistry, error) {
	if baseAlias == "" {
		return nil, fmt.Errorf("sort path registry: empty base alias")
	}
	for prefix, alias := range prefixes {
		if prefix == "" || alias == "" {
			return nil, fmt.Errorf("sort path registry: invalid mapping %q -> %q", prefix, alias)
		}
		if strings.ContainsAny(prefix, " \t") {
			return nil, fmt.Errorf("sort path registry: malformed prefix %q", prefix)
		}
	}
	return &PathRegistry{baseAlias: baseAlias, prefixes: prefixes}, nil
}

func mustPathRegistry(baseAlias string, prefixes map[string]string) *PathRegistry {
	r, err := NewPathRegistry(baseAlias, prefixes)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve maps the requested sort fields to ordering directives, in request
// order and direction, then always appends an ascending sort on the base id.
// Without the id tiebreak, rows with equal sort keys would come out in
// unpredictable order and page contents computed at different times would
// not be stable.
func (r *PathRegistry) Resolve(fields []string, dir SortDirection) []query.Order {
	desc := dir == SortDesc
	orders := make([]query.Order, 0, len(fields)+1)
	for _, field := range fields {
		if field == "" {
			continue
		}
		orders = append(orders, query.Order{Col: r.resolveColumn(field), Desc: desc})
	}
	orders = append(orders, query.Order{Col: r.baseAlias + ".id"})
	return orders
}

// resolveColumn finds the longest registered prefix of the dotted field and
// snake-cases the trailing attribute against that join's alias. Fields with
// no registered prefix resolve against the base entity.
func (r *PathRegistry) resolveColumn(field string) string {
	alias := r.baseAlias
	attr := field
	segments := strings.Split(field, ".")
	for i := len(segments) - 1; i > 0; i-- {
		prefix := strings.Join(segments[:i], ".")
		if a, ok := r.prefixes[prefix]; ok {
			alias = a
			attr = strings.Join(segments[i:], ".")
			break
		}
	}
	// A residual dotted attribute means an unregistered join path; fall back
	// to the last segment so the failure mode is a wrong sort, not bad SQL.
	if i := strings.LastIndex(attr, "."); i >= 0 {
		attr = attr[i+1:]
	}
	return alias + "." + snakeCase(attr)
}

// snakeCase converts a logical camelCase attribute to its column name,
// eg nextStepDueDate -> next_step_due_date.
func snakeCase(attr string) string {
	var sb strings.Builder
	for i, r := range attr {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
