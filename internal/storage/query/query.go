// Package query builds the WHERE clause of filtered list queries.
//
// Filters are accumulated as typed predicates, each carrying its own bound
// argument. Nothing supplied by a client is ever concatenated into SQL: the
// rendered clause contains only column names chosen by the caller and
// dialect placeholders.
package query

import (
	"strings"
)

// Dialect renders the engine-specific parts of a predicate.
type Dialect interface {
	// Placeholder returns the marker for the n-th (1-based) bound argument.
	Placeholder(n int) string

	// CaseInsensitiveLike returns the operator for case-insensitive LIKE.
	CaseInsensitiveLike() string
}

// Op is a predicate operator.
type Op int

const (
	// Equal matches a column exactly.
	Equal Op = iota
	// Contains matches a case-insensitive substring. A predicate with several
	// columns matches when any of them contains the value.
	Contains
)

// Predicate is one AND-ed condition and its argument.
type Predicate struct {
	Columns []string
	Op      Op
	Arg     any
}

// Builder accumulates predicates. The zero value is ready to use.
type Builder struct {
	preds []Predicate
}

// Eq adds column = value, unless value is empty.
func (b *Builder) Eq(column, value string) *Builder {
	if value = strings.TrimSpace(value); value == "" {
		return b
	}
	b.preds = append(b.preds, Predicate{Columns: []string{column}, Op: Equal, Arg: value})
	return b
}

// Contains adds a case-insensitive substring match of value OR'd across
// columns, unless value is empty.
func (b *Builder) Contains(value string, columns ...string) *Builder {
	if value = strings.TrimSpace(value); value == "" || len(columns) == 0 {
		return b
	}
	b.preds = append(b.preds, Predicate{
		Columns: columns,
		Op:      Contains,
		Arg:     "%" + EscapeLike(value) + "%",
	})
	return b
}

// Predicates returns the accumulated predicates in insertion order.
func (b *Builder) Predicates() []Predicate {
	return b.preds
}

// Build renders the predicates as a clause starting with " WHERE " (or ""
// when there are none) and returns the arguments in placeholder order.
// offset is the number of arguments already bound before the clause.
func (b *Builder) Build(d Dialect, offset int) (string, []any) {
	if len(b.preds) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(b.preds))
	args := make([]any, 0, len(b.preds))

	for _, p := range b.preds {
		args = append(args, p.Arg)
		ph := d.Placeholder(offset + len(args))

		switch p.Op {
		case Equal:
			parts = append(parts, p.Columns[0]+" = "+ph)
		case Contains:
			like := make([]string, 0, len(p.Columns))
			for _, col := range p.Columns {
				like = append(like, col+" "+d.CaseInsensitiveLike()+" "+ph+` ESCAPE '\'`)
			}
			if len(like) == 1 {
				parts = append(parts, like[0])
			} else {
				parts = append(parts, "("+strings.Join(like, " OR ")+")")
			}
		}
	}

	return " WHERE " + strings.Join(parts, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so value matches literally.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}
