package document

import (
	"strings"

	"github.com/crystalcif/gocif/token"
)

// Loop is a `loop_` tabular section: an ordered list of column tags and a
// rectangular row-major matrix of values. Tags are compared
// case-insensitively; original casing is preserved for display.
type Loop struct {
	tags []string
	rows [][]Value
	span token.Span
}

// NewLoop builds a Loop from its column tags and row-major values. The
// parser is responsible for the spec.md §3 rectangularity invariant
// (len(values) is a positive multiple of len(tags)) before calling this.
func NewLoop(span token.Span, tags []string, rows [][]Value) *Loop {
	return &Loop{span: span, tags: append([]string{}, tags...), rows: rows}
}

func (l *Loop) Span() token.Span { return l.span }

// Tags returns the loop's column tags in declaration order.
func (l *Loop) Tags() []string {
	out := make([]string, len(l.tags))
	copy(out, l.tags)

	return out
}

func (l *Loop) NumColumns() int { return len(l.tags) }

// Len returns the number of rows.
func (l *Loop) Len() int { return len(l.rows) }

// IsEmpty reports whether the loop has zero rows (legal per spec.md §3).
func (l *Loop) IsEmpty() bool { return len(l.rows) == 0 }

func (l *Loop) columnIndex(tag string) (int, bool) {
	lower := strings.ToLower(tag)
	for i, t := range l.tags {
		if strings.ToLower(t) == lower {
			return i, true
		}
	}

	return -1, false
}

// ColumnIndex returns the 0-based column index of tag, if present.
func (l *Loop) ColumnIndex(tag string) (int, bool) {
	return l.columnIndex(tag)
}

// Get returns the value at (row, col), bounds-checked.
func (l *Loop) Get(row, col int) (Value, bool) {
	if row < 0 || row >= len(l.rows) || col < 0 || col >= len(l.tags) {
		return Value{}, false
	}

	return l.rows[row][col], true
}

// GetByTag returns the value at (row, tag).
func (l *Loop) GetByTag(row int, tag string) (Value, bool) {
	col, ok := l.columnIndex(tag)
	if !ok {
		return Value{}, false
	}

	return l.Get(row, col)
}

// GetColumn returns every value in tag's column, in row order.
func (l *Loop) GetColumn(tag string) ([]Value, bool) {
	col, ok := l.columnIndex(tag)
	if !ok {
		return nil, false
	}

	out := make([]Value, len(l.rows))
	for i, row := range l.rows {
		out[i] = row[col]
	}

	return out, true
}

// GetRow returns row's values as ordered tag/value pairs, tag order
// matching Tags().
func (l *Loop) GetRow(row int) ([]KV, bool) {
	if row < 0 || row >= len(l.rows) {
		return nil, false
	}

	out := make([]KV, len(l.tags))
	for i, tag := range l.tags {
		out[i] = KV{Key: tag, Value: l.rows[row][i]}
	}

	return out, true
}

// Rows returns every row as an ordered tag/value slice, restartable: two
// calls (or two iterations of the result) yield identical data in
// identical order, per spec.md §9.
func (l *Loop) Rows() [][]KV {
	out := make([][]KV, len(l.rows))
	for i := range l.rows {
		out[i], _ = l.GetRow(i)
	}

	return out
}
