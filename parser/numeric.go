package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer/stateful"
)

// numericLit is the participle grammar for a CIF numeric literal, with an
// optional standard-uncertainty suffix (spec.md §4.2 step 3). It is a
// small, self-contained expression grammar, the kind participle is built
// for, nested inside the hand-written recursive-descent parser that owns
// the surrounding token-stream grammar (loops, frames, version gating).
type numericLit struct {
	Sign     string `parser:"@('+' | '-')?"`
	IntPart  string `parser:"@Digits"`
	FracPart string `parser:"( '.' @Digits? )?"`
	Exponent string `parser:"( @Exponent )?"`
	Uncert   string `parser:"( '(' @Digits ')' )?"`
}

var numericParser = participle.MustBuild(&numericLit{},
	participle.Lexer(stateful.MustSimple([]stateful.Rule{
		{Name: "Exponent", Pattern: `[eE][+-]?[0-9]+`},
		{Name: "Digits", Pattern: `[0-9]+`},
		{Name: "Punct", Pattern: `[+\-.()]`},
	})),
	participle.UseLookahead(2),
)

// parsedNumber is the outcome of classifying a raw value token against the
// numeric grammar of spec.md §4.2 steps 3-4.
type parsedNumber struct {
	Value       float64
	Uncertainty float64
	HasUncert   bool
}

// tryParseNumeric attempts to parse raw as a plain decimal or a
// numeric-with-uncertainty literal. ok is false when raw is not numeric at
// all, in which case the caller falls back to Text (spec.md §4.2 step 5).
func tryParseNumeric(raw string) (parsedNumber, bool) {
	lit := &numericLit{}
	if err := numericParser.ParseString("", raw, lit); err != nil {
		return parsedNumber{}, false
	}

	// participle's stateful lexer can match a numeric prefix of a larger
	// unquoted word; reject anything that didn't consume the whole token.
	if !wholeTokenIsNumeric(raw, lit) {
		return parsedNumber{}, false
	}

	mantissa := lit.Sign + lit.IntPart
	fractionalDigits := 0

	if lit.FracPart != "" || strings.Contains(raw, ".") {
		mantissa += "." + lit.FracPart
		fractionalDigits = len(lit.FracPart)
	}

	mantissa += lit.Exponent

	value, err := strconv.ParseFloat(mantissa, 64)
	if err != nil {
		return parsedNumber{}, false
	}

	if lit.Uncert == "" {
		return parsedNumber{Value: value}, true
	}

	// Parsing "N e-k" as one decimal literal rounds once, so 11.910400(4)
	// yields exactly the double nearest 0.000004.
	u, err := strconv.ParseFloat(lit.Uncert+"e-"+strconv.Itoa(fractionalDigits), 64)
	if err != nil {
		return parsedNumber{}, false
	}

	return parsedNumber{Value: value, Uncertainty: u, HasUncert: true}, true
}

// wholeTokenIsNumeric rebuilds the literal text the grammar matched and
// compares it against raw so that trailing garbage (e.g. "10.0x") is
// correctly rejected rather than silently truncated.
func wholeTokenIsNumeric(raw string, lit *numericLit) bool {
	rebuilt := lit.Sign + lit.IntPart

	if lit.FracPart != "" || strings.Contains(raw, ".") {
		rebuilt += "." + lit.FracPart
	}

	rebuilt += lit.Exponent

	if lit.Uncert != "" {
		rebuilt += "(" + lit.Uncert + ")"
	}

	return rebuilt == raw
}
