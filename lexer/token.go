// Package lexer tokenizes a CIF 1.1/2.0 text buffer into a flat stream of
// spanned tokens. It does not build a tree and does not interpret values
// beyond recognizing the special tokens `?`/`.` literally; classification
// of numeric, numeric-with-uncertainty and text values happens in the
// parser (spec.md §4.2).
package lexer

import "github.com/crystalcif/gocif/token"

// Kind identifies what a Token represents.
type Kind int

const (
	KindDataHeading Kind = iota
	KindSaveHeading
	KindSaveEnd
	KindLoopKeyword
	KindGlobalKeyword
	KindStopKeyword
	KindTag
	KindValue
	KindListOpen
	KindListClose
	KindTableOpen
	KindTableClose
	KindColon
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindDataHeading:
		return "data_heading"
	case KindSaveHeading:
		return "save_heading"
	case KindSaveEnd:
		return "save_end"
	case KindLoopKeyword:
		return "loop_"
	case KindGlobalKeyword:
		return "global_"
	case KindStopKeyword:
		return "stop_"
	case KindTag:
		return "tag"
	case KindValue:
		return "value"
	case KindListOpen:
		return "["
	case KindListClose:
		return "]"
	case KindTableOpen:
		return "{"
	case KindTableClose:
		return "}"
	case KindColon:
		return ":"
	case KindEOF:
		return "EOF"
	default:
		return "invalid"
	}
}

// Token is one lexical unit with its exact source span. Text carries the
// semantic payload: the block/frame name for headings (without the
// `data_`/`save_` prefix, original casing preserved), the tag name
// (including its leading underscore) for KindTag, and the unescaped
// payload for KindValue. Quoted is true when a KindValue token came from
// any quoted form (single, double, triple, or semicolon text field) — such
// tokens always classify as Text regardless of their content (spec.md
// §4.2 step "Quoted tokens skip (1)–(4) and are always Text").
type Token struct {
	Kind   Kind
	Text   string
	Quoted bool
	Span   token.Span
}
