package lexer

import (
	"strings"

	"github.com/crystalcif/gocif/document"
	"github.com/crystalcif/gocif/token"
)

// cif2Magic is the exact byte sequence spec.md §6 requires at file start to
// signal CIF 2.0: a literal hash, backslash, hash, then "CIF_2.0". The
// backslash is deliberate (it is what lets CIF 1.1 readers, which only
// understand a bare leading '#' as "this whole line is a comment", safely
// skip a line that a naive "starts with ##" check would otherwise choke
// on) and is not a markdown escape.
const cif2Magic = `#\#CIF_2.0`

// Lexer tokenizes a CIF text buffer. The whole buffer is materialized into
// a rune slice up front rather than pulled through an io.Reader with a
// pushback buffer (the shape the teacher's parser2.Lexer uses for
// streaming input): spec.md's Non-goals rule out streaming and assume the
// input fits in memory, which makes the read-ahead/pushback machinery the
// teacher needs unnecessary here — a plain cursor over []rune gives the
// same peek/advance shape without it.
type Lexer struct {
	runes   []rune
	pos     int
	line    int
	col     int
	version document.Version
}

// NewLexer creates a Lexer over text and immediately detects its CIF
// version from the first line (spec.md §3).
func NewLexer(text string) *Lexer {
	l := &Lexer{runes: []rune(text), line: 1, col: 1}
	l.detectVersion()

	return l
}

// Version returns the CIF version detected from the file's first line.
func (l *Lexer) Version() document.Version { return l.version }

func (l *Lexer) detectVersion() {
	end := 0
	for end < len(l.runes) && l.runes[end] != '\n' {
		end++
	}

	firstLine := strings.TrimRight(string(l.runes[:end]), " \t\r")
	if firstLine != cif2Magic {
		return
	}

	l.version = document.CIF20

	for l.pos < end {
		l.advance()
	}

	if !l.eof() && l.runes[l.pos] == '\n' {
		l.advance()
	}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.runes) }

func (l *Lexer) peek(offset int) (rune, bool) {
	i := l.pos + offset
	if i < 0 || i >= len(l.runes) {
		return 0, false
	}

	return l.runes[i], true
}

func (l *Lexer) curPos() token.Pos { return token.Pos{Line: l.line, Col: l.col} }

func (l *Lexer) advance() rune {
	r := l.runes[l.pos]
	l.pos++

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

func (l *Lexer) skipTrivia() {
	for !l.eof() {
		c, _ := l.peek(0)

		switch {
		case isSpace(c) || c == '\n':
			l.advance()
		case c == '#':
			for !l.eof() {
				if c, _ := l.peek(0); c == '\n' {
					break
				}

				l.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token in the stream. Once the buffer is exhausted
// it returns a zero-width KindEOF token on every subsequent call.
func (l *Lexer) Next() (Token, error) {
	l.skipTrivia()

	if l.eof() {
		p := l.curPos()
		return Token{Kind: KindEOF, Span: token.Span{Start: p, End: p}}, nil
	}

	start := l.curPos()
	c, _ := l.peek(0)

	switch {
	case c == '\'':
		return l.scanQuoted('\'', start)
	case c == '"':
		return l.scanQuoted('"', start)
	case c == ';' && l.col == 1:
		return l.scanTextField(start)
	case c == '[':
		l.advance()
		return l.single(KindListOpen, start), nil
	case c == ']':
		l.advance()
		return l.single(KindListClose, start), nil
	case c == '{':
		l.advance()
		return l.single(KindTableOpen, start), nil
	case c == '}':
		l.advance()
		return l.single(KindTableClose, start), nil
	default:
		return l.scanWord(start)
	}
}

// ExpectColon consumes a single ':' delimiter, used only by the parser
// while reading a CIF 2.0 table's `key : value` pairs (spec.md §4.2's
// table production). Outside that context ':' is never its own token: a
// bare run of non-whitespace text like a timestamp or qualified name that
// happens to contain a colon is a single unquoted Value token via
// scanWord, exactly as spec.md §4.1's unquoted-token stop-character list
// (which does not include ':') requires.
func (l *Lexer) ExpectColon() (Token, error) {
	l.skipTrivia()

	if l.eof() {
		p := l.curPos()
		return Token{}, newLexError(token.Span{Start: p, End: p}, "unexpected end of input, expected ':'")
	}

	start := l.curPos()

	c, _ := l.peek(0)
	if c != ':' {
		return Token{}, newLexError(token.Span{Start: start, End: start}, "expected ':'")
	}

	l.advance()

	return l.single(KindColon, start), nil
}

func (l *Lexer) single(k Kind, start token.Pos) Token {
	return Token{Kind: k, Span: token.Span{Start: start, End: l.curPos()}}
}

// ScanTableKey reads the key half of one `key:value` pair inside a CIF 2.0
// table, or the table's closing '}'. Unlike scanWord, it stops at ':' as
// well as whitespace and '}': a table key can never itself contain ':'
// (that is the separator the grammar requires immediately after it), so
// treating ':' as a stop character here is safe even though scanWord must
// not do so generally (a bare unquoted value like a timestamp legitimately
// contains one, per the comment on ExpectColon).
func (l *Lexer) ScanTableKey() (Token, error) {
	l.skipTrivia()

	if l.eof() {
		p := l.curPos()
		return Token{Kind: KindEOF, Span: token.Span{Start: p, End: p}}, nil
	}

	start := l.curPos()

	c, _ := l.peek(0)

	switch c {
	case '\'':
		return l.scanQuoted('\'', start)
	case '"':
		return l.scanQuoted('"', start)
	case '}':
		l.advance()
		return l.single(KindTableClose, start), nil
	}

	var sb strings.Builder

	for !l.eof() {
		c, _ := l.peek(0)
		if isSpace(c) || c == '\n' || c == ':' || isListOrTableDelimiter(c) {
			break
		}

		sb.WriteRune(l.advance())
	}

	text := sb.String()

	return Token{Kind: KindValue, Text: text, Span: token.Span{Start: start, End: l.curPos()}}, nil
}

// isListOrTableDelimiter reports whether r is one of the CIF 2.0
// structural delimiters ('[', ']', '{', '}') that Next() always tokenizes
// on its own. scanWord stops at one mid-run, the same way it stops at
// whitespace, so an unquoted value immediately followed by a delimiter
// with no separating space — e.g. the "]" closing a nested list in
// `[1 2][3 4]`, or the "}" closing a table in `{x:1.5}` — segments
// correctly instead of being swallowed into the value's text. ':' is
// deliberately not included here: outside a table key (see ScanTableKey)
// it is ordinary value content, as in a timestamp.
func isListOrTableDelimiter(r rune) bool {
	switch r {
	case '[', ']', '{', '}':
		return true
	default:
		return false
	}
}

func (l *Lexer) scanWord(start token.Pos) (Token, error) {
	var sb strings.Builder

	for !l.eof() {
		c, _ := l.peek(0)
		if isSpace(c) || c == '\n' || isListOrTableDelimiter(c) {
			break
		}

		sb.WriteRune(l.advance())
	}

	text := sb.String()
	span := token.Span{Start: start, End: l.curPos()}

	return classifyWord(text, span), nil
}

func classifyWord(text string, span token.Span) Token {
	if strings.HasPrefix(text, "_") {
		return Token{Kind: KindTag, Text: text, Span: span}
	}

	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, "data_") && len(text) > len("data_"):
		return Token{Kind: KindDataHeading, Text: text[len("data_"):], Span: span}
	case lower == "save_":
		return Token{Kind: KindSaveEnd, Span: span}
	case strings.HasPrefix(lower, "save_") && len(text) > len("save_"):
		return Token{Kind: KindSaveHeading, Text: text[len("save_"):], Span: span}
	case lower == "loop_":
		return Token{Kind: KindLoopKeyword, Span: span}
	case lower == "global_":
		return Token{Kind: KindGlobalKeyword, Span: span}
	case lower == "stop_":
		return Token{Kind: KindStopKeyword, Span: span}
	default:
		return Token{Kind: KindValue, Text: text, Span: span}
	}
}
