package document

import (
	"strings"

	"github.com/crystalcif/gocif/token"
)

func lowerFold(s string) string { return strings.ToLower(s) }

// Block is a `data_<name>` container: an insertion-ordered map from tag to
// Value, an ordered list of Loops, and an ordered list of Frames. Tags are
// unique within a Block (outside of loops); the same tag cannot appear as
// both an item and a loop column in the same Block (spec.md §3) — the
// parser enforces this before a Block is constructed.
type Block struct {
	name   string
	items  *orderedMap
	loops  []*Loop
	frames []*Frame
	span   token.Span
}

// NewBlock builds a Block from its parsed parts.
func NewBlock(span token.Span, name string, items []KV, loops []*Loop, frames []*Frame) *Block {
	b := &Block{name: name, span: span, items: newOrderedMap(lowerFold), loops: loops, frames: frames}
	for _, kv := range items {
		b.items.Set(kv.Key, kv.Value)
	}

	return b
}

func (b *Block) Name() string     { return b.name }
func (b *Block) Span() token.Span { return b.span }

// Items returns the block's scalar items in insertion order.
func (b *Block) Items() []KV { return b.items.Entries() }

// GetItem looks up tag case-insensitively, returning the item's Value.
func (b *Block) GetItem(tag string) (Value, bool) { return b.items.Get(tag) }

// ItemKeys returns item tags in insertion order, original casing.
func (b *Block) ItemKeys() []string { return b.items.Keys() }

// ItemCount returns the number of scalar items.
func (b *Block) ItemCount() int { return b.items.Len() }

func (b *Block) Loops() []*Loop { return append([]*Loop{}, b.loops...) }

func (b *Block) GetLoop(i int) (*Loop, bool) {
	if i < 0 || i >= len(b.loops) {
		return nil, false
	}

	return b.loops[i], true
}

// FindLoop returns the first loop whose column set contains tag.
func (b *Block) FindLoop(tag string) (*Loop, bool) {
	for _, l := range b.loops {
		if _, ok := l.ColumnIndex(tag); ok {
			return l, true
		}
	}

	return nil, false
}

func (b *Block) Frames() []*Frame { return append([]*Frame{}, b.frames...) }

func (b *Block) GetFrame(i int) (*Frame, bool) {
	if i < 0 || i >= len(b.frames) {
		return nil, false
	}

	return b.frames[i], true
}

// GetFrameByName looks up a save frame by name, case-insensitively.
func (b *Block) GetFrameByName(name string) (*Frame, bool) {
	lower := strings.ToLower(name)
	for _, f := range b.frames {
		if strings.ToLower(f.Name()) == lower {
			return f, true
		}
	}

	return nil, false
}

// AllPairs walks every (tag, value) pair in the block: scalar items first
// in insertion order, then every loop cell row-major. Each pair carries
// the value's own span, used by the validator to report findings at the
// exact offending location (spec.md §4.5 step 1).
func (b *Block) AllPairs() []TagValue {
	var out []TagValue

	for _, kv := range b.items.Entries() {
		out = append(out, TagValue{Tag: kv.Key, Value: kv.Value})
	}

	for _, loop := range b.loops {
		for _, row := range loop.Rows() {
			for _, kv := range row {
				out = append(out, TagValue{Tag: kv.Key, Value: kv.Value})
			}
		}
	}

	return out
}

// TagValue pairs a data name with the Value found under it, the unit the
// validator iterates over.
type TagValue struct {
	Tag   string
	Value Value
}
