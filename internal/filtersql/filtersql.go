// Package filtersql renders filter descriptions as parameterized SQL WHERE
// clauses for the store adapters.
//
// This is the only place in the system where filter values meet SQL text,
// and they never mix: values always travel as bound parameters (? for
// SQLite, $n for PostgreSQL), never interpolated into the clause. Both
// adapters share the same fragment logic so the two backends cannot drift
// apart semantically.
package filtersql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Kangyi02/DaoAI-assessment/internal/filter"
)

// Dialect selects the placeholder style of the target backend.
type Dialect int

const (
	// SQLite renders ? placeholders.
	SQLite Dialect = iota
	// Postgres renders $1..$n placeholders.
	Postgres
)

// Where renders f as a WHERE clause body plus the values bound to its
// placeholders, in placeholder order.
//
// The rendered fragments, in order:
//
//	coord_x >= ? AND coord_x <= ? AND coord_y >= ? AND coord_y <= ?
//	category = ?                                  (when Category is set)
//	group_id IN (?, ...)                          (when Groups is non-empty)
//	group_id IN (SELECT group_id ... HAVING ...)  (when Proper)
//
// The proper subquery aggregates over every point of each group, not just
// those matching the category/group constraints: one group member outside
// the bounds disqualifies the whole group. Its HAVING clause binds the same
// four bounds again as fresh parameters.
func Where(f filter.Filter, d Dialect) (string, []any) {
	b := &clauseBuilder{dialect: d}

	parts := []string{
		"coord_x >= " + b.bind(f.Bounds.MinX),
		"coord_x <= " + b.bind(f.Bounds.MaxX),
		"coord_y >= " + b.bind(f.Bounds.MinY),
		"coord_y <= " + b.bind(f.Bounds.MaxY),
	}
	if f.Category != nil {
		parts = append(parts, "category = "+b.bind(*f.Category))
	}
	if len(f.Groups) > 0 {
		placeholders := make([]string, len(f.Groups))
		for i, group := range f.Groups {
			placeholders[i] = b.bind(group)
		}
		parts = append(parts, fmt.Sprintf("group_id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if f.Proper {
		parts = append(parts, fmt.Sprintf(
			"group_id IN (SELECT group_id FROM inspection_region GROUP BY group_id"+
				" HAVING MIN(coord_x) >= %s AND MAX(coord_x) <= %s"+
				" AND MIN(coord_y) >= %s AND MAX(coord_y) <= %s)",
			b.bind(f.Bounds.MinX), b.bind(f.Bounds.MaxX),
			b.bind(f.Bounds.MinY), b.bind(f.Bounds.MaxY)))
	}

	return strings.Join(parts, " AND "), b.args
}

// IDList renders an id membership clause for the given placeholder dialect.
// SQLite gets an IN list with one placeholder per id; PostgreSQL binds the
// whole slice as a single array parameter.
func IDList(ids []int64, d Dialect) (string, []any) {
	if d == Postgres {
		return "id = ANY($1)", []any{ids}
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return fmt.Sprintf("id IN (%s)", strings.Join(placeholders, ", ")), args
}

// clauseBuilder accumulates bound values and hands out the matching
// placeholder text.
type clauseBuilder struct {
	dialect Dialect
	args    []any
}

func (b *clauseBuilder) bind(v any) string {
	b.args = append(b.args, v)
	if b.dialect == Postgres {
		return "$" + strconv.Itoa(len(b.args))
	}
	return "?"
}
