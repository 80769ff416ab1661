// Package validator checks a parsed CIF document against one or more
// DDLm dictionaries, producing spanned findings under a configurable
// strictness mode (spec.md §4.5).
package validator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/crystalcif/gocif/ddlm"
	"github.com/crystalcif/gocif/document"
	"github.com/crystalcif/gocif/token"
)

// Mode is the validator's strictness setting (spec.md §4.5 "Modes").
type Mode int

const (
	Strict Mode = iota
	Lenient
	Pedantic
)

func (m Mode) String() string {
	switch m {
	case Lenient:
		return "lenient"
	case Pedantic:
		return "pedantic"
	default:
		return "strict"
	}
}

// Category identifies the kind of validation finding (spec.md §7).
type Category int

const (
	CategoryUnknownDataName Category = iota
	CategoryUnknownItem
	CategoryTypeError
	CategoryRangeError
	CategoryEnumerationError
	CategoryMissingMandatory
	CategoryDeprecatedAlias
	CategoryCaseMismatch
	CategoryDictionaryConflict
)

func (c Category) String() string {
	switch c {
	case CategoryUnknownDataName:
		return "UnknownDataName"
	case CategoryUnknownItem:
		return "UnknownItem"
	case CategoryTypeError:
		return "TypeError"
	case CategoryRangeError:
		return "RangeError"
	case CategoryEnumerationError:
		return "EnumerationError"
	case CategoryMissingMandatory:
		return "MissingMandatory"
	case CategoryDeprecatedAlias:
		return "DeprecatedAlias"
	case CategoryCaseMismatch:
		return "CaseMismatch"
	case CategoryDictionaryConflict:
		return "DictionaryConflict"
	default:
		return "Unknown"
	}
}

// Finding is one validation error or warning (spec.md §4.5 "Outputs").
type Finding struct {
	Category Category
	Message  string
	DataName string
	Actual   string
	Expected string
	Span     token.Span
}

// Result is the outcome of one Validate call: two span-ordered lists
// (spec.md §4.5 "Ordering").
type Result struct {
	Errors   []Finding
	Warnings []Finding
}

// IsValid reports whether the validated document has no errors.
func (r Result) IsValid() bool { return len(r.Errors) == 0 }

// Validator walks documents against a set of merged dictionaries. It is
// safe to share across goroutines for read-only Validate calls once
// configuration (AddDictionary/SetMode) is done (spec.md §5).
type Validator struct {
	dict *ddlm.Dictionary
	mode Mode
}

// New creates a Validator in Strict mode with no dictionaries loaded.
func New() *Validator {
	return &Validator{dict: ddlm.NewDictionary(), mode: Strict}
}

// AddDictionary parses and merges a DDLm dictionary (spec.md §4.5
// "Inputs").
func (v *Validator) AddDictionary(text string) error {
	return v.dict.AddDictionary(text)
}

// SetMode changes the validator's strictness (spec.md §4.5 "Modes").
func (v *Validator) SetMode(mode Mode) { v.mode = mode }

// Validate checks every block of doc against the loaded schema, following
// the seven-step algorithm of spec.md §4.5. It never returns an error:
// every outcome, including zero dictionaries loaded, is a Result.
func (v *Validator) Validate(doc *document.Document) Result {
	var result Result

	for _, block := range doc.Blocks() {
		v.validateBlock(block, &result)
	}

	for _, w := range v.dict.Warnings() {
		result.Warnings = append(result.Warnings, Finding{Category: CategoryDictionaryConflict, Message: w})
	}

	sortFindings(result.Errors)
	sortFindings(result.Warnings)

	return result
}

func (v *Validator) validateBlock(block *document.Block, result *Result) {
	mandatorySeen := make(map[string]bool)

	for _, pair := range block.AllPairs() {
		def, ok := v.dict.Resolve(pair.Tag)
		if !ok {
			v.reportUnknown(pair.Tag, pair.Value.Span(), result)

			continue
		}

		mandatorySeen[def.CanonicalName] = true

		if v.mode == Pedantic {
			v.checkCaseMismatch(def, pair, result)
			v.checkDeprecatedAlias(pair, result)
		}

		if pair.Value.IsSpecial() {
			continue
		}

		v.checkType(def, pair, result)
		v.checkRange(def, pair, result)
		v.checkEnumeration(def, pair, result)
	}

	if v.mode == Pedantic {
		v.checkMandatory(block, mandatorySeen, result)
	}
}

func (v *Validator) reportUnknown(tag string, span token.Span, result *Result) {
	f := Finding{DataName: tag, Span: span, Message: "data name " + tag + " is not defined by any loaded dictionary"}

	if v.mode == Lenient {
		f.Category = CategoryUnknownItem
		result.Warnings = append(result.Warnings, f)

		return
	}

	f.Category = CategoryUnknownDataName
	result.Errors = append(result.Errors, f)
}

func (v *Validator) checkType(def *ddlm.DataDef, pair document.TagValue, result *Result) {
	ok := true

	switch def.Type {
	case ddlm.TypeNumb:
		ok = pair.Value.IsNumeric() || pair.Value.IsNumericWithUncertainty()
	case ddlm.TypeChar, ddlm.TypeText:
		ok = pair.Value.IsText()
	case ddlm.TypeList:
		ok = pair.Value.IsList()
	case ddlm.TypeTable:
		ok = pair.Value.IsTable()
	case ddlm.TypeUnknown:
		ok = true
	}

	if !ok {
		result.Errors = append(result.Errors, Finding{
			Category: CategoryTypeError,
			DataName: pair.Tag,
			Actual:   pair.Value.ValueType(),
			Expected: typeExpectedString(def.Type),
			Span:     pair.Value.Span(),
			Message:  pair.Tag + " has type " + pair.Value.ValueType() + ", expected " + typeExpectedString(def.Type),
		})
	}
}

func typeExpectedString(t ddlm.DataType) string {
	switch t {
	case ddlm.TypeNumb:
		return "numb"
	case ddlm.TypeChar:
		return "char"
	case ddlm.TypeText:
		return "text"
	case ddlm.TypeList:
		return "list"
	case ddlm.TypeTable:
		return "table"
	default:
		return "unknown"
	}
}

func (v *Validator) checkRange(def *ddlm.DataDef, pair document.TagValue, result *Result) {
	if def.Range == nil {
		return
	}

	n, ok := pair.Value.Numeric()
	if !ok {
		return
	}

	if !def.Range.Contains(n) {
		result.Errors = append(result.Errors, Finding{
			Category: CategoryRangeError,
			DataName: pair.Tag,
			Actual:   strconv.FormatFloat(n, 'g', -1, 64),
			Expected: def.Range.String(),
			Span:     pair.Value.Span(),
			Message:  pair.Tag + " value " + strconv.FormatFloat(n, 'g', -1, 64) + " is outside range " + def.Range.String(),
		})
	}
}

func (v *Validator) checkEnumeration(def *ddlm.DataDef, pair document.TagValue, result *Result) {
	if len(def.Enumeration) == 0 {
		return
	}

	s, ok := pair.Value.Text()
	if !ok {
		return
	}

	for _, allowed := range def.Enumeration {
		if def.CaseInsensitive {
			if strings.EqualFold(allowed, s) {
				return
			}
		} else if allowed == s {
			return
		}
	}

	result.Errors = append(result.Errors, Finding{
		Category: CategoryEnumerationError,
		DataName: pair.Tag,
		Actual:   s,
		Expected: "{" + strings.Join(def.Enumeration, ",") + "}",
		Span:     pair.Value.Span(),
		Message:  pair.Tag + " value " + s + " is not one of the allowed enumeration values",
	})
}

// checkCaseMismatch warns, in Pedantic mode, when a tag as written in the
// document differs in case from its dictionary-declared canonical name
// (spec.md §4.5 Modes: "Pedantic: ... plus warnings for ... mixed-case tag
// use"). Lookup itself stays case-insensitive; this only flags the
// stylistic mismatch.
func (v *Validator) checkCaseMismatch(def *ddlm.DataDef, pair document.TagValue, result *Result) {
	if pair.Tag == def.CanonicalName {
		return
	}

	if !strings.EqualFold(pair.Tag, def.CanonicalName) {
		return
	}

	result.Warnings = append(result.Warnings, Finding{
		Category: CategoryCaseMismatch,
		DataName: pair.Tag,
		Actual:   pair.Tag,
		Expected: def.CanonicalName,
		Span:     pair.Value.Span(),
		Message:  pair.Tag + " does not match the dictionary's declared case " + def.CanonicalName,
	})
}

// checkDeprecatedAlias warns, in Pedantic mode, when a tag as written
// resolves through an alias the dictionary marked with
// `_alias.deprecation_date` (SPEC_FULL.md "Supplemented features").
func (v *Validator) checkDeprecatedAlias(pair document.TagValue, result *Result) {
	if !v.dict.IsDeprecatedAlias(pair.Tag) {
		return
	}

	result.Warnings = append(result.Warnings, Finding{
		Category: CategoryDeprecatedAlias,
		DataName: pair.Tag,
		Span:     pair.Value.Span(),
		Message:  pair.Tag + " is a deprecated alias",
	})
}

// checkMandatory reports every mandatory DataDef not seen anywhere in
// block, at the block's own span (spec.md §4.5 step 7).
func (v *Validator) checkMandatory(block *document.Block, seen map[string]bool, result *Result) {
	for _, def := range v.dict.MandatoryDefs() {
		if seen[def.CanonicalName] {
			continue
		}

		result.Warnings = append(result.Warnings, Finding{
			Category: CategoryMissingMandatory,
			DataName: def.CanonicalName,
			Span:     block.Span(),
			Message:  "mandatory data name " + def.CanonicalName + " is missing from block " + block.Name(),
		})
	}
}

func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Span.Before(findings[j].Span)
	})
}
