package lexer

import (
	"strings"

	"github.com/crystalcif/gocif/document"
	"github.com/crystalcif/gocif/token"
)

// scanQuoted reads a single-quoted or double-quoted CIF string starting at
// the opening delimiter quoteChar (still unconsumed). Three consecutive
// delimiter runes open a triple-quoted string, which spec.md §9 restricts
// to CIF 2.0; the run is detected regardless of version so CIF 1.1 input
// is rejected with a version error instead of silently mis-scanning it as
// an ordinary quoted string.
func (l *Lexer) scanQuoted(quoteChar rune, start token.Pos) (Token, error) {
	if c1, ok1 := l.peek(1); ok1 && c1 == quoteChar {
		if c2, ok2 := l.peek(2); ok2 && c2 == quoteChar {
			if l.version != document.CIF20 {
				return Token{}, newLexError(token.Span{Start: start, End: start}, "triple-quoted strings are only valid in CIF 2.0")
			}

			return l.scanTripleQuoted(quoteChar, start)
		}
	}

	l.advance() // opening quote

	var sb strings.Builder

	for {
		if l.eof() {
			return Token{}, newLexError(token.Span{Start: start, End: l.curPos()}, "unterminated quoted string")
		}

		c, _ := l.peek(0)

		if c == '\n' {
			return Token{}, newLexError(token.Span{Start: start, End: l.curPos()}, "quoted string not closed before end of line")
		}

		if c == quoteChar {
			next, ok := l.peek(1)
			if !ok || isSpace(next) || next == '\n' {
				l.advance() // closing quote

				return Token{Kind: KindValue, Text: sb.String(), Quoted: true, Span: token.Span{Start: start, End: l.curPos()}}, nil
			}

			// A quote not followed by whitespace/EOF is not a closing
			// delimiter under CIF's quote-closing rule; it's content.
			sb.WriteRune(l.advance())

			continue
		}

		sb.WriteRune(l.advance())
	}
}

// scanTripleQuoted reads a CIF 2.0 triple-quoted string. It terminates at
// the first run of three consecutive delimiter runes (spec.md §9's
// "natural longest-match" open question, resolved here as first-match: a
// fourth or further consecutive delimiter rune belongs to the next token).
func (l *Lexer) scanTripleQuoted(quoteChar rune, start token.Pos) (Token, error) {
	l.advance()
	l.advance()
	l.advance()

	var sb strings.Builder

	pending := 0

	for {
		if l.eof() {
			return Token{}, newLexError(token.Span{Start: start, End: l.curPos()}, "unterminated triple-quoted string")
		}

		c, _ := l.peek(0)

		if c == quoteChar {
			pending++
			l.advance()

			if pending == 3 {
				return Token{Kind: KindValue, Text: sb.String(), Quoted: true, Span: token.Span{Start: start, End: l.curPos()}}, nil
			}

			continue
		}

		for ; pending > 0; pending-- {
			sb.WriteRune(quoteChar)
		}

		sb.WriteRune(l.advance())
	}
}

// scanTextField reads a semicolon-delimited multi-line text field. The
// opening ';' must be (and, per the caller, is) at column 1; it closes at
// a ';' later found at column 1. Content excludes both delimiting
// semicolons, the newline immediately after the opener, and — matching
// how every CIF parser in practice renders this field — the single
// newline immediately before the closing delimiter's line.
func (l *Lexer) scanTextField(start token.Pos) (Token, error) {
	l.advance() // opening ';'

	if c, ok := l.peek(0); ok && c == '\r' {
		if c2, ok2 := l.peek(1); ok2 && c2 == '\n' {
			l.advance()
			l.advance()
		}
	} else if ok && c == '\n' {
		l.advance()
	}

	var sb strings.Builder

	for {
		if l.eof() {
			return Token{}, newLexError(token.Span{Start: start, End: l.curPos()}, "unterminated semicolon text field")
		}

		if l.col == 1 {
			if c, _ := l.peek(0); c == ';' {
				l.advance()

				break
			}
		}

		sb.WriteRune(l.advance())
	}

	content := sb.String()
	content = strings.TrimSuffix(content, "\r\n")
	content = strings.TrimSuffix(content, "\n")

	return Token{Kind: KindValue, Text: content, Quoted: true, Span: token.Span{Start: start, End: l.curPos()}}, nil
}
