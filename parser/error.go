package parser

import (
	"fmt"
	"strings"

	"github.com/crystalcif/gocif/lexer"
	"github.com/crystalcif/gocif/token"
)

// SyntaxError is returned when a token appeared that the parser did not
// expect at that point in the grammar. It carries the offending token's
// kind and span plus the set of kinds that would have been accepted,
// following the same spanned-error shape as lexer.LexError.
type SyntaxError struct {
	*token.PosError
	Got      lexer.Kind
	Expected []lexer.Kind
}

func newSyntaxError(got lexer.Token, expected ...lexer.Kind) *SyntaxError {
	names := make([]string, 0, len(expected))
	for _, k := range expected {
		names = append(names, k.String())
	}

	msg := fmt.Sprintf("unexpected %s, expected %s", got.Kind, strings.Join(names, " or "))

	return &SyntaxError{
		PosError: token.NewPosError(got.Span, msg),
		Got:      got.Kind,
		Expected: expected,
	}
}

// duplicateTagError reports a tag appearing more than once as a scalar
// item, or as both a scalar item and a loop column, within the same block
// or frame (spec.md §3).
func duplicateTagError(span token.Span, tag string) *SyntaxError {
	return &SyntaxError{PosError: token.NewPosError(span, fmt.Sprintf("duplicate data name %q in this data block or save frame", tag))}
}

// raggedLoopError reports a loop_ whose row count is not a multiple of
// its column count (spec.md §3's loop rectangularity invariant).
func raggedLoopError(span token.Span) *SyntaxError {
	return &SyntaxError{PosError: token.NewPosError(span, "loop_ values are not a multiple of the number of declared columns")}
}

// versionError reports a CIF 2.0-only construct (a list or table value)
// appearing in a CIF 1.1 document. Triple-quoted strings in CIF 1.1 are
// rejected earlier, by the lexer, with a lexer.LexError.
func versionError(span token.Span, construct string) *SyntaxError {
	return &SyntaxError{PosError: token.NewPosError(span, fmt.Sprintf("%s is only valid in CIF 2.0", construct))}
}

// duplicateBlockNameError reports a data_ heading whose name (compared
// case-insensitively) already names an earlier block in the document
// (spec.md §3: "Block names must be unique (case-insensitive)").
func duplicateBlockNameError(span token.Span, name string) *SyntaxError {
	return &SyntaxError{PosError: token.NewPosError(span, fmt.Sprintf("duplicate data block name %q", name))}
}
