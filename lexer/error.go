package lexer

import "github.com/crystalcif/gocif/token"

// LexError reports a malformed token: an unterminated quoted string or
// text field, or a missing expected delimiter. It wraps token.PosError so
// callers get the same Span()/Explain() surface as every other error in
// this module (spec.md §7).
type LexError struct {
	*token.PosError
}

func newLexError(span token.Span, msg string) *LexError {
	return &LexError{token.NewPosError(span, msg)}
}
