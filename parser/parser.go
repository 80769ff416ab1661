// Package parser consumes a lexer.Token stream and builds a
// document.Document, classifying every value and enforcing the
// structural invariants of spec.md §3-4.2 (loop rectangularity, tag
// uniqueness, CIF-version gating of 2.0-only constructs).
package parser

import (
	"strings"

	"github.com/crystalcif/gocif/document"
	"github.com/crystalcif/gocif/lexer"
	"github.com/crystalcif/gocif/token"
)

func lowerTag(s string) string { return strings.ToLower(s) }

// Parser builds a Document from a single CIF text buffer. It owns the
// token-stream-level grammar (the hand-written recursive-descent part);
// numeric-with-uncertainty literals are delegated to the participle-based
// sub-grammar in numeric.go.
type Parser struct {
	lex     *lexer.Lexer
	version document.Version
	cur     lexer.Token
	// beforeCur is the lexer state just before cur was scanned, so that
	// parseTable can re-read cur as a table key with ScanTableKey.
	beforeCur lexer.Lexer
}

// Parse tokenizes and parses text into a Document, or returns the first
// structural error encountered (spec.md §4.2 "Failure semantics": no
// partial recovery).
func Parse(text string) (*document.Document, error) {
	lx := lexer.NewLexer(text)
	p := &Parser{lex: lx, version: lx.Version()}

	if err := p.advance(); err != nil {
		return nil, err
	}

	blocks, err := p.parseBlocks()
	if err != nil {
		return nil, err
	}

	return document.NewDocument(p.version, blocks), nil
}

func (p *Parser) advance() error {
	p.beforeCur = *p.lex
	tok, err := p.lex.Next()
	p.cur = tok

	return err
}

func (p *Parser) parseBlocks() ([]*document.Block, error) {
	var blocks []*document.Block

	seen := make(map[string]bool)

	for p.cur.Kind != lexer.KindEOF {
		if p.cur.Kind != lexer.KindDataHeading {
			return nil, newSyntaxError(p.cur, lexer.KindDataHeading)
		}

		headingSpan := p.cur.Span
		name := p.cur.Text

		key := lowerTag(name)
		if seen[key] {
			return nil, duplicateBlockNameError(headingSpan, name)
		}

		seen[key] = true

		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, block)
	}

	return blocks, nil
}

// isBlockTerminator reports whether tok ends the current block's sequence
// of items, loops and frames: a new data heading, a stray save_ end, or EOF.
// A save_ heading does not end the block; parseBlock reads it as a frame.
func isBlockTerminator(k lexer.Kind) bool {
	switch k {
	case lexer.KindDataHeading, lexer.KindSaveEnd, lexer.KindEOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseBlock() (*document.Block, error) {
	start := p.cur.Span
	name := p.cur.Text

	if err := p.advance(); err != nil {
		return nil, err
	}

	scope := newTagScope()

	var items []document.KV

	var loops []*document.Loop

	var frames []*document.Frame

	for !isBlockTerminator(p.cur.Kind) {
		switch p.cur.Kind {
		case lexer.KindTag:
			tag := p.cur.Text
			tagSpan := p.cur.Span

			if err := p.advance(); err != nil {
				return nil, err
			}

			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}

			if err := scope.claim(tag, tagSpan); err != nil {
				return nil, err
			}

			items = append(items, document.KV{Key: tag, Value: val})
		case lexer.KindLoopKeyword:
			loop, err := p.parseLoop(scope)
			if err != nil {
				return nil, err
			}

			loops = append(loops, loop)
		case lexer.KindSaveHeading:
			frame, err := p.parseFrame()
			if err != nil {
				return nil, err
			}

			frames = append(frames, frame)
		default:
			return nil, newSyntaxError(p.cur, lexer.KindTag, lexer.KindLoopKeyword, lexer.KindSaveHeading)
		}
	}

	end := p.cur.Span
	if len(frames) > 0 {
		end = frames[len(frames)-1].Span()
	} else if len(loops) > 0 {
		end = loops[len(loops)-1].Span()
	} else if len(items) > 0 {
		end = items[len(items)-1].Value.Span()
	}

	return document.NewBlock(token.Span{Start: start.Start, End: end.End}, name, items, loops, frames), nil
}

func (p *Parser) parseFrame() (*document.Frame, error) {
	start := p.cur.Span
	name := p.cur.Text

	if err := p.advance(); err != nil {
		return nil, err
	}

	scope := newTagScope()

	var items []document.KV

	var loops []*document.Loop

	for p.cur.Kind != lexer.KindSaveEnd {
		if p.cur.Kind == lexer.KindEOF || p.cur.Kind == lexer.KindDataHeading {
			return nil, newSyntaxError(p.cur, lexer.KindSaveEnd)
		}

		switch p.cur.Kind {
		case lexer.KindTag:
			tag := p.cur.Text
			tagSpan := p.cur.Span

			if err := p.advance(); err != nil {
				return nil, err
			}

			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}

			if err := scope.claim(tag, tagSpan); err != nil {
				return nil, err
			}

			items = append(items, document.KV{Key: tag, Value: val})
		case lexer.KindLoopKeyword:
			loop, err := p.parseLoop(scope)
			if err != nil {
				return nil, err
			}

			loops = append(loops, loop)
		default:
			return nil, newSyntaxError(p.cur, lexer.KindTag, lexer.KindLoopKeyword, lexer.KindSaveEnd)
		}
	}

	end := p.cur.Span

	if err := p.advance(); err != nil {
		return nil, err
	}

	return document.NewFrame(token.Span{Start: start.Start, End: end.End}, name, items, loops), nil
}

// parseLoop reads `loop_` Tag+ value*, stopping at the next top-level
// keyword/EOF (spec.md §4.2 "Loop row assembly").
func (p *Parser) parseLoop(scope *tagScope) (*document.Loop, error) {
	start := p.cur.Span

	if err := p.advance(); err != nil {
		return nil, err
	}

	var tags []string

	for p.cur.Kind == lexer.KindTag {
		tag := p.cur.Text
		tagSpan := p.cur.Span

		if err := scope.claim(tag, tagSpan); err != nil {
			return nil, err
		}

		tags = append(tags, tag)

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if len(tags) == 0 {
		return nil, newSyntaxError(p.cur, lexer.KindTag)
	}

	var values []document.Value

	lastSpan := p.cur.Span

	for !isLoopTerminator(p.cur.Kind) {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		lastSpan = v.Span()
		values = append(values, v)
	}

	if len(values)%len(tags) != 0 {
		return nil, raggedLoopError(lastSpan)
	}

	rows := make([][]document.Value, 0, len(values)/len(tags))
	for i := 0; i < len(values); i += len(tags) {
		rows = append(rows, values[i:i+len(tags)])
	}

	end := p.cur.Span
	if len(values) > 0 {
		end = values[len(values)-1].Span()
	}

	return document.NewLoop(token.Span{Start: start.Start, End: end.End}, tags, rows), nil
}

// isLoopTerminator reports whether tok stops the value run of a loop_:
// any top-level keyword, a new Tag (starting another item or the
// enclosing scope's next tag), or EOF.
func isLoopTerminator(k lexer.Kind) bool {
	switch k {
	case lexer.KindTag, lexer.KindLoopKeyword, lexer.KindDataHeading,
		lexer.KindSaveHeading, lexer.KindSaveEnd, lexer.KindGlobalKeyword,
		lexer.KindStopKeyword, lexer.KindEOF:
		return true
	default:
		return false
	}
}

// parseValue reads one scalar, list, or table value (spec.md §4.2
// `value := scalar | list | table`).
func (p *Parser) parseValue() (document.Value, error) {
	switch p.cur.Kind {
	case lexer.KindValue:
		return p.parseScalar()
	case lexer.KindListOpen:
		return p.parseList()
	case lexer.KindTableOpen:
		return p.parseTable()
	default:
		return document.Value{}, newSyntaxError(p.cur, lexer.KindValue, lexer.KindListOpen, lexer.KindTableOpen)
	}
}

func (p *Parser) parseScalar() (document.Value, error) {
	tok := p.cur
	span := tok.Span

	if err := p.advance(); err != nil {
		return document.Value{}, err
	}

	if tok.Quoted {
		return document.NewText(span, tok.Text), nil
	}

	switch tok.Text {
	case "?":
		return document.NewUnknown(span), nil
	case ".":
		return document.NewNotApplicable(span), nil
	}

	if n, ok := tryParseNumeric(tok.Text); ok {
		if n.HasUncert {
			return document.NewNumericWithUncertainty(span, n.Value, n.Uncertainty), nil
		}

		return document.NewNumeric(span, n.Value), nil
	}

	return document.NewText(span, tok.Text), nil
}

func (p *Parser) parseList() (document.Value, error) {
	start := p.cur.Span

	if p.version != document.CIF20 {
		return document.Value{}, versionError(start, "a list value")
	}

	if err := p.advance(); err != nil {
		return document.Value{}, err
	}

	var values []document.Value

	for p.cur.Kind != lexer.KindListClose {
		if p.cur.Kind == lexer.KindEOF {
			return document.Value{}, newSyntaxError(p.cur, lexer.KindListClose)
		}

		v, err := p.parseValue()
		if err != nil {
			return document.Value{}, err
		}

		values = append(values, v)
	}

	end := p.cur.Span

	if err := p.advance(); err != nil {
		return document.Value{}, err
	}

	return document.NewList(token.Span{Start: start.Start, End: end.End}, values), nil
}

// parseTable reads a CIF 2.0 `{key:value ...}` table. Keys are read
// through the dedicated lexer.ScanTableKey so that `x:1.5` (no surrounding
// whitespace, the form spec.md §4.2's own worked example uses) lexes as a
// key and a value rather than one opaque Value token.
func (p *Parser) parseTable() (document.Value, error) {
	start := p.cur.Span

	if p.version != document.CIF20 {
		return document.Value{}, versionError(start, "a table value")
	}

	key, err := p.lex.ScanTableKey()
	if err != nil {
		return document.Value{}, err
	}

	table := document.NewTable()

	for key.Kind != lexer.KindTableClose {
		if key.Kind == lexer.KindEOF {
			return document.Value{}, newSyntaxError(key, lexer.KindTableClose)
		}

		if key.Kind != lexer.KindValue {
			return document.Value{}, newSyntaxError(key, lexer.KindValue)
		}

		if _, err := p.lex.ExpectColon(); err != nil {
			return document.Value{}, err
		}

		if err := p.advance(); err != nil {
			return document.Value{}, err
		}

		val, err := p.parseValue()
		if err != nil {
			return document.Value{}, err
		}

		table.Set(key.Text, val)

		// parseValue has already read the token after the value through
		// Next(), which does not split `key:value` at the colon; rewind to
		// just before that token so ScanTableKey reads it again.
		*p.lex = p.beforeCur

		key, err = p.lex.ScanTableKey()
		if err != nil {
			return document.Value{}, err
		}
	}

	end := key.Span

	if err := p.advance(); err != nil {
		return document.Value{}, err
	}

	return document.NewTableValue(token.Span{Start: start.Start, End: end.End}, table), nil
}
