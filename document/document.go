package document

import "strings"

// Document is the root of a parsed CIF file: a version plus an ordered
// list of Blocks. Block names are unique case-insensitively (spec.md §3).
type Document struct {
	version Version
	blocks  []*Block
}

// NewDocument builds a Document from its parsed blocks.
func NewDocument(version Version, blocks []*Block) *Document {
	return &Document{version: version, blocks: blocks}
}

func (d *Document) Version() Version { return d.version }

// Blocks returns the document's blocks in declaration order.
func (d *Document) Blocks() []*Block { return append([]*Block{}, d.blocks...) }

func (d *Document) Len() int { return len(d.blocks) }

// Block returns the block at the given 0-based index, bounds-checked.
func (d *Document) Block(i int) (*Block, bool) {
	if i < 0 || i >= len(d.blocks) {
		return nil, false
	}

	return d.blocks[i], true
}

// BlockByName looks up a block by name, case-insensitively.
func (d *Document) BlockByName(name string) (*Block, bool) {
	lower := strings.ToLower(name)
	for _, b := range d.blocks {
		if strings.ToLower(b.Name()) == lower {
			return b, true
		}
	}

	return nil, false
}

// FirstBlock returns the document's first block, if any.
func (d *Document) FirstBlock() (*Block, bool) {
	return d.Block(0)
}
