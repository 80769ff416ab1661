package document

import "github.com/crystalcif/gocif/token"

// Frame is a named `save_ … save_` container nested inside a Block. It has
// the same internal shape as a Block (items, loops) but frames do not nest
// further (spec.md §3).
type Frame struct {
	name  string
	items *orderedMap
	loops []*Loop
	span  token.Span
}

// NewFrame builds a Frame. The parser owns the tag-uniqueness and
// item/loop-column-disjointness invariants from spec.md §3 before calling
// this.
func NewFrame(span token.Span, name string, items []KV, loops []*Loop) *Frame {
	f := &Frame{name: name, span: span, items: newOrderedMap(lowerFold), loops: loops}
	for _, kv := range items {
		f.items.Set(kv.Key, kv.Value)
	}

	return f
}

func (f *Frame) Name() string     { return f.name }
func (f *Frame) Span() token.Span { return f.span }

// Items returns the frame's scalar items in insertion order.
func (f *Frame) Items() []KV { return f.items.Entries() }

// GetItem looks up tag case-insensitively.
func (f *Frame) GetItem(tag string) (Value, bool) { return f.items.Get(tag) }

// ItemKeys returns item tags in insertion order, original casing.
func (f *Frame) ItemKeys() []string { return f.items.Keys() }

// ItemCount returns the number of scalar items (supplements spec.md §4.3
// with the count accessor original_source's Block/Frame tests exercise).
func (f *Frame) ItemCount() int { return f.items.Len() }

func (f *Frame) Loops() []*Loop { return append([]*Loop{}, f.loops...) }

func (f *Frame) GetLoop(i int) (*Loop, bool) {
	if i < 0 || i >= len(f.loops) {
		return nil, false
	}

	return f.loops[i], true
}

// FindLoop returns the first loop whose column set contains tag.
func (f *Frame) FindLoop(tag string) (*Loop, bool) {
	for _, l := range f.loops {
		if _, ok := l.ColumnIndex(tag); ok {
			return l, true
		}
	}

	return nil, false
}
