// Copyright 2021 Torben Schinke
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// ErrDetail attaches an explanatory message to a span, so a PosError can
// carry more than one annotated location (e.g. "expected a tag here" plus
// "loop_ opened here").
type ErrDetail struct {
	Span    Span
	Message string
}

func NewErrDetail(span Span, msg string) ErrDetail {
	return ErrDetail{Span: span, Message: msg}
}

// PosError is a structural lexer or parser error: a message anchored to a
// span, optionally wrapping a lower-level cause and carrying extra
// annotated spans.
type PosError struct {
	Details []ErrDetail
	Cause   error
	Hint    string
}

// NewPosError creates a PosError anchored at span with msg as its primary
// detail, plus any additional details.
func NewPosError(span Span, msg string, details ...ErrDetail) *PosError {
	all := append([]ErrDetail{{Span: span, Message: msg}}, details...)

	return &PosError{Details: all}
}

func (p *PosError) SetCause(err error) *PosError {
	p.Cause = err
	return p
}

func (p *PosError) SetHint(hint string) *PosError {
	p.Hint = hint
	return p
}

// Span returns the primary detail's span.
func (p *PosError) Span() Span {
	return p.firstDetail().Span
}

func (p *PosError) Unwrap() error {
	return p.Cause
}

func (p *PosError) firstDetail() ErrDetail {
	if len(p.Details) > 0 {
		return p.Details[0]
	}

	return ErrDetail{}
}

func (p *PosError) Error() string {
	msg := p.firstDetail().Span.String() + ": " + p.firstDetail().Message
	if p.Cause == nil {
		return msg
	}

	return msg + ": " + p.Cause.Error()
}

// posLine returns the (1-indexed) source line for pos out of lines, or ""
// if pos falls outside the buffer.
func posLine(lines []string, pos Pos) string {
	idx := pos.Line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}

	return lines[idx]
}

// Explain renders a multi-line, caret-annotated explanation of p against
// src, the exact buffer that was being parsed. Unlike the teacher's
// Explain (which re-reads the source file from disk by name), this module
// never does file I/O: callers already hold the decoded buffer they
// parsed, so it is passed in directly.
func (p PosError) Explain(src string) string {
	lines := strings.Split(src, "\n")

	indent := 0
	for _, detail := range p.Details {
		if l := len(strconv.Itoa(detail.Span.Start.Line)); l > indent {
			indent = l
		}
	}

	sb := &strings.Builder{}

	for i, detail := range p.Details {
		line := posLine(lines, detail.Span.Start)

		sb.WriteString(detail.Span.Start.String())
		sb.WriteString("\n")
		fmt.Fprintf(sb, "%"+strconv.Itoa(indent)+"s |\n", "")
		fmt.Fprintf(sb, "%"+strconv.Itoa(indent)+"d |", detail.Span.Start.Line)
		sb.WriteString(line)
		sb.WriteString("\n")
		fmt.Fprintf(sb, "%"+strconv.Itoa(indent)+"s |", "")

		width := detail.Span.End.Col - detail.Span.Start.Col
		fmt.Fprintf(sb, "%"+strconv.Itoa(detail.Span.Start.Col-1)+"s", "")

		if width <= 1 {
			sb.WriteString("^~~~ ")
		} else {
			sb.WriteString(strings.Repeat("^", width))
			sb.WriteRune(' ')
		}

		sb.WriteString(detail.Message)
		sb.WriteString("\n")

		if i < len(p.Details)-1 {
			sb.WriteString(strings.Repeat(" ", indent))
			sb.WriteString("...\n")
		}
	}

	if p.Hint != "" {
		fmt.Fprintf(sb, "%"+strconv.Itoa(indent)+"s = hint: %s\n", "", p.Hint)
	}

	return sb.String()
}

// Explain renders err against src if it is (or wraps) a *PosError, falling
// back to err.Error() otherwise.
func Explain(err error, src string) string {
	var posErr *PosError
	if errors.As(err, &posErr) {
		return "error: " + err.Error() + "\n" + posErr.Explain(src)
	}

	return err.Error()
}

// FromParticipleError adapts an error returned by a participle-based
// sub-grammar (see ddlm.ParseRange, as called from ddlm.defFromFrame) into
// a *PosError anchored at base, the span of the raw text that was handed
// to participle. participle reports its own line/column within that
// substring; base.Start is added as an offset so the resulting span is
// relative to the original document instead of the substring.
func FromParticipleError(err error, base Span) *PosError {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()

		line := base.Start.Line + pos.Line - 1

		col := pos.Column
		if pos.Line == 1 {
			col = base.Start.Col + pos.Column - 1
		}

		return NewPosError(Span{Start: Pos{Line: line, Col: col}, End: base.End}, perr.Message())
	}

	return NewPosError(base, err.Error()).SetCause(err)
}
