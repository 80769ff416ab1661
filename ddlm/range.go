package ddlm

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer/stateful"
)

// rangeLit is the participle grammar for a DDLm `range` attribute value:
// `lo:hi`, `lo:` (open upper bound), or `:hi` (open lower bound). Like
// parser.numericLit, this is a small self-contained expression grammar
// nested inside otherwise hand-written dictionary-loading code.
type rangeLit struct {
	Lo string `parser:"@Number?"`
	_  string `parser:"':'"`
	Hi string `parser:"@Number?"`
}

var rangeParser = participle.MustBuild(&rangeLit{},
	participle.Lexer(stateful.MustSimple([]stateful.Rule{
		{Name: "Number", Pattern: `[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?`},
		{Name: "Colon", Pattern: `:`},
	})),
)

// NumRange is an inclusive numeric range with optionally open bounds
// (spec.md §3 "Schema model": "either bound may be open").
type NumRange struct {
	Lo     float64
	HasLo  bool
	Hi     float64
	HasHi  bool
}

func (r NumRange) Contains(x float64) bool {
	if r.HasLo && x < r.Lo {
		return false
	}

	if r.HasHi && x > r.Hi {
		return false
	}

	return true
}

// String renders r the way a dictionary author wrote it, open bounds
// blank, for use in validator RangeError messages.
func (r NumRange) String() string {
	lo, hi := "", ""

	if r.HasLo {
		lo = strconv.FormatFloat(r.Lo, 'g', -1, 64)
	}

	if r.HasHi {
		hi = strconv.FormatFloat(r.Hi, 'g', -1, 64)
	}

	return lo + ":" + hi
}

// ParseRange parses a DDLm range attribute's raw text (spec.md §4.4 step 3).
func ParseRange(raw string) (NumRange, error) {
	lit := &rangeLit{}
	if err := rangeParser.ParseString("", raw, lit); err != nil {
		return NumRange{}, err
	}

	var r NumRange

	if lit.Lo != "" {
		v, err := strconv.ParseFloat(lit.Lo, 64)
		if err != nil {
			return NumRange{}, err
		}

		r.Lo, r.HasLo = v, true
	}

	if lit.Hi != "" {
		v, err := strconv.ParseFloat(lit.Hi, 64)
		if err != nil {
			return NumRange{}, err
		}

		r.Hi, r.HasHi = v, true
	}

	return r, nil
}
