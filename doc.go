/*
Package cif provides a parser and a DDLm-dictionary validator for the
Crystallographic Information File (CIF) format, versions 1.1 and 2.0:
http://www.iucr.org/resources/cif/spec/version1.1/cifsyntax

Parse produces a read-only document.Document whose every value carries a
precise source span. ddlm.Dictionary loads DDLm schema definitions from
CIF documents, and validator.Validator checks a parsed document against
one or more loaded dictionaries.

This package does not read files or streams; callers decode their own
input into a string and pass it to Parse.
*/
package cif

import (
	"github.com/crystalcif/gocif/document"
	"github.com/crystalcif/gocif/parser"
	"github.com/crystalcif/gocif/validator"
)

// Parse tokenizes and parses text, returning the resulting Document or
// the first structural error encountered (spec.md §6).
func Parse(text string) (*document.Document, error) {
	return parser.Parse(text)
}

// Validate is the convenience single-call form of spec.md §6's
// `validate(cif_text, dict_text) → ValidationResult`: parse both inputs
// and run validation in Strict mode.
func Validate(cifText, dictText string) (validator.Result, error) {
	doc, err := parser.Parse(cifText)
	if err != nil {
		return validator.Result{}, err
	}

	v := validator.New()
	if err := v.AddDictionary(dictText); err != nil {
		return validator.Result{}, err
	}

	return v.Validate(doc), nil
}

// NewValidator is a convenience constructor re-exporting validator.New,
// so callers that need AddDictionary/SetMode across multiple Validate
// calls don't need a second import for the common case.
func NewValidator() *validator.Validator { return validator.New() }
