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

// Package token provides the source-location primitives shared by the
// lexer, parser, dictionary loader and validator: a 1-indexed line/column
// position, a half-open 2-D span built from two positions, and a spanned
// error carrier.
package token

import "strconv"

// Pos is a 1-indexed line/column position within a source buffer.
type Pos struct {
	Line int
	Col  int
}

// String returns the "line:col" representation of p.
func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// before reports whether p sorts strictly before o in line/col order.
func (p Pos) before(o Pos) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}

	return p.Col < o.Col
}

// Span is a half-open source range: [Start, End). End is exclusive, i.e.
// it points at the character immediately after the last character the
// span covers. Span is a plain comparable struct, so it is usable as a
// map key and compares equal by value.
type Span struct {
	Start Pos
	End   Pos
}

// NewSpan builds a Span from explicit line/column bounds.
func NewSpan(startLine, startCol, endLine, endCol int) Span {
	return Span{
		Start: Pos{Line: startLine, Col: startCol},
		End:   Pos{Line: endLine, Col: endCol},
	}
}

// Contains reports whether (line, col) lies within the half-open range
// [Start, End) in lexicographic (line, then column) order.
func (s Span) Contains(line, col int) bool {
	p := Pos{Line: line, Col: col}

	return !p.before(s.Start) && p.before(s.End)
}

// Union returns the smallest span covering both s and o.
func (s Span) Union(o Span) Span {
	result := s

	if o.Start.before(result.Start) {
		result.Start = o.Start
	}

	if result.End.before(o.End) {
		result.End = o.End
	}

	return result
}

// Before reports whether s sorts strictly before o by start position,
// tie-broken by end position. Used to keep validator findings in document
// order.
func (s Span) Before(o Span) bool {
	if s.Start != o.Start {
		return s.Start.before(o.Start)
	}

	return s.End.before(o.End)
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Node is implemented by anything that carries a Span, mirroring the
// teacher's Begin()/End() node interface.
type Node interface {
	Span() Span
}
