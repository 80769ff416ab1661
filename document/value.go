package document

import "github.com/crystalcif/gocif/token"

// Kind is the tag of the Value union. Value is implemented as a single
// tagged struct rather than an interface hierarchy per spec.md §9: kind
// tests and typed accessors are the entire interface, no subclassing.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindNumericWithUncertainty
	KindUnknown
	KindNotApplicable
	KindList
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumeric:
		return "numeric"
	case KindNumericWithUncertainty:
		return "numeric_with_uncertainty"
	case KindUnknown:
		return "unknown"
	case KindNotApplicable:
		return "not_applicable"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	default:
		return "invalid"
	}
}

// Value is a single CIF datum: a scalar (text, numeric, numeric-with-
// uncertainty, unknown `?`, not-applicable `.`) or, in CIF 2.0, a list or
// table of Values. Every Value carries the Span of its entire textual
// extent, including delimiters, brackets, and uncertainty parentheses.
type Value struct {
	kind        Kind
	span        token.Span
	text        string
	numeric     float64
	uncertainty float64
	list        []Value
	table       *Table
}

// Table is an insertion-ordered, case-sensitive string-to-Value mapping,
// the CIF 2.0 `{ key: value ... }` construct. Keys are unique within a
// table (spec.md §3).
type Table struct {
	m *orderedMap
}

func newTable() *Table {
	return &Table{m: newOrderedMap(func(s string) string { return s })}
}

// Set stores a key/value pair, overwriting any existing entry for key.
func (t *Table) Set(key string, v Value) { t.m.Set(key, v) }

// Get returns the value for key, and whether it is present.
func (t *Table) Get(key string) (Value, bool) { return t.m.Get(key) }

// Keys returns the table's keys in insertion order.
func (t *Table) Keys() []string { return t.m.Keys() }

// Entries returns the table's key/value pairs in insertion order.
func (t *Table) Entries() []KV { return t.m.Entries() }

// Len returns the number of entries in the table.
func (t *Table) Len() int { return t.m.Len() }

func NewText(span token.Span, text string) Value {
	return Value{kind: KindText, span: span, text: text}
}

func NewNumeric(span token.Span, v float64) Value {
	return Value{kind: KindNumeric, span: span, numeric: v}
}

func NewNumericWithUncertainty(span token.Span, v, uncertainty float64) Value {
	return Value{kind: KindNumericWithUncertainty, span: span, numeric: v, uncertainty: uncertainty}
}

func NewUnknown(span token.Span) Value {
	return Value{kind: KindUnknown, span: span}
}

func NewNotApplicable(span token.Span) Value {
	return Value{kind: KindNotApplicable, span: span}
}

func NewList(span token.Span, items []Value) Value {
	return Value{kind: KindList, span: span, list: items}
}

func NewTableValue(span token.Span, t *Table) Value {
	return Value{kind: KindTable, span: span, table: t}
}

// NewTable creates an empty Table for the parser to populate via Set
// before wrapping it in a Value with NewTableValue.
func NewTable() *Table { return newTable() }

func (v Value) Kind() Kind        { return v.kind }
func (v Value) Span() token.Span  { return v.span }
func (v Value) ValueType() string { return v.kind.String() }

func (v Value) IsText() bool                     { return v.kind == KindText }
func (v Value) IsNumeric() bool                  { return v.kind == KindNumeric }
func (v Value) IsNumericWithUncertainty() bool    { return v.kind == KindNumericWithUncertainty }
func (v Value) IsUnknown() bool                  { return v.kind == KindUnknown }
func (v Value) IsNotApplicable() bool            { return v.kind == KindNotApplicable }
func (v Value) IsList() bool                     { return v.kind == KindList }
func (v Value) IsTable() bool                    { return v.kind == KindTable }

// IsSpecial reports whether v is Unknown or NotApplicable: values that
// satisfy every validator constraint (spec.md §4.5 step 6).
func (v Value) IsSpecial() bool { return v.kind == KindUnknown || v.kind == KindNotApplicable }

// Text returns v's text payload. ok is false unless v.IsText().
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}

	return v.text, true
}

// Numeric returns v's numeric component. ok is true for both Numeric and
// NumericWithUncertainty, matching spec.md §4.5's range-check precondition.
func (v Value) Numeric() (float64, bool) {
	if v.kind != KindNumeric && v.kind != KindNumericWithUncertainty {
		return 0, false
	}

	return v.numeric, true
}

// Uncertainty returns v's standard-uncertainty component. ok is false
// unless v.IsNumericWithUncertainty().
func (v Value) Uncertainty() (float64, bool) {
	if v.kind != KindNumericWithUncertainty {
		return 0, false
	}

	return v.uncertainty, true
}

// List returns v's elements. ok is false unless v.IsList().
func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}

	return v.list, true
}

// TableValue returns v's table. ok is false unless v.IsTable().
func (v Value) TableValue() (*Table, bool) {
	if v.kind != KindTable {
		return nil, false
	}

	return v.table, true
}

// ToNative converts v to a host-native representation: Unknown and
// NotApplicable become nil, Numeric* becomes float64, Text becomes string,
// List becomes []interface{} (recursively converted), Table becomes a
// NativeTable: a slice of key/value pairs in insertion order, values
// recursively converted (Go has no native ordered map, so a slice is
// returned instead of a plain map to keep that order; callers can range
// over it directly or look a key up with Get).
func (v Value) ToNative() interface{} {
	switch v.kind {
	case KindUnknown, KindNotApplicable:
		return nil
	case KindNumeric, KindNumericWithUncertainty:
		return v.numeric
	case KindText:
		return v.text
	case KindList:
		out := make([]interface{}, len(v.list))
		for i, e := range v.list {
			out[i] = e.ToNative()
		}

		return out
	case KindTable:
		nt := NativeTable{}
		for _, e := range v.table.Entries() {
			nt = append(nt, NativeKV{Key: e.Key, Value: e.Value.ToNative()})
		}

		return nt
	default:
		return nil
	}
}

// NativeKV is one entry of a NativeTable.
type NativeKV struct {
	Key   string
	Value interface{}
}

// NativeTable is the ordered host-native form of a Table.
type NativeTable []NativeKV

// Get looks up key in insertion order (linear scan, same trade-off as
// orderedMap).
func (t NativeTable) Get(key string) (interface{}, bool) {
	for _, kv := range t {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	return nil, false
}
