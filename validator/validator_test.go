package validator

import (
	"testing"

	"github.com/crystalcif/gocif/parser"
)

const rangeDict = `data_d
save_cell.length_a
_definition.id '_cell.length_a'
_type.contents numb
_enumeration.range 0.1:1000
save_
`

const enumDict = `data_d
save_symmetry.crystal_system
_definition.id '_symmetry.crystal_system'
_type.contents char
loop_
_enumeration_set.state
triclinic
monoclinic
orthorhombic
tetragonal
trigonal
hexagonal
cubic
save_
`

func TestValidateRangeError(t *testing.T) {
	v := New()
	if err := v.AddDictionary(rangeDict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	doc, err := parser.Parse("data_sample\n_cell.length_a -5.0\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	result := v.Validate(doc)

	if len(result.Errors) != 1 || result.Errors[0].Category != CategoryRangeError {
		t.Fatalf("Errors = %+v, want exactly one RangeError", result.Errors)
	}

	if result.Errors[0].Actual != "-5" {
		t.Errorf("Actual = %q, want -5", result.Errors[0].Actual)
	}
}

func TestValidateEnumerationError(t *testing.T) {
	v := New()
	if err := v.AddDictionary(enumDict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	doc, err := parser.Parse("data_sample\n_symmetry.crystal_system dodecahedral\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	result := v.Validate(doc)

	if len(result.Errors) != 1 || result.Errors[0].Category != CategoryEnumerationError {
		t.Fatalf("Errors = %+v, want exactly one EnumerationError", result.Errors)
	}

	if result.Errors[0].Actual != "dodecahedral" {
		t.Errorf("Actual = %q, want dodecahedral", result.Errors[0].Actual)
	}
}

func TestValidateEnumerationCaseSensitiveByDefault(t *testing.T) {
	v := New()
	if err := v.AddDictionary(enumDict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	doc, err := parser.Parse("data_sample\n_symmetry.crystal_system Triclinic\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	result := v.Validate(doc)

	if len(result.Errors) != 1 || result.Errors[0].Category != CategoryEnumerationError {
		t.Fatalf("Errors = %+v, want an EnumerationError for wrong-case match against a case-sensitive enumeration", result.Errors)
	}
}

func TestValidateEnumerationCaseInsensitiveOptOut(t *testing.T) {
	dict := `data_d
save_symmetry.crystal_system
_definition.id '_symmetry.crystal_system'
_type.contents char
_enumeration.case_sensitive_flag no
loop_
_enumeration_set.state
triclinic
monoclinic
save_
`

	v := New()
	if err := v.AddDictionary(dict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	doc, err := parser.Parse("data_sample\n_symmetry.crystal_system Triclinic\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	result := v.Validate(doc)
	if !result.IsValid() {
		t.Errorf("Errors = %+v, want none: case_sensitive_flag=no should match regardless of case", result.Errors)
	}
}

func TestValidateModeSwitch(t *testing.T) {
	doc, err := parser.Parse("data_sample\n_undefined_tag 1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	lenient := New()
	lenient.SetMode(Lenient)

	result := lenient.Validate(doc)
	if len(result.Errors) != 0 || len(result.Warnings) == 0 {
		t.Errorf("Lenient: errors=%d warnings=%d, want 0 errors and >=1 warning", len(result.Errors), len(result.Warnings))
	}

	strict := New()
	strict.SetMode(Strict)

	result = strict.Validate(doc)
	if len(result.Errors) == 0 {
		t.Errorf("Strict: errors=%d, want >=1 UnknownDataName error", len(result.Errors))
	}
}

func TestValidateSpecialValuesAlwaysSatisfyConstraints(t *testing.T) {
	v := New()
	if err := v.AddDictionary(rangeDict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	doc, err := parser.Parse("data_sample\n_cell.length_a ?\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	result := v.Validate(doc)
	if !result.IsValid() {
		t.Errorf("Errors = %+v, want none for special value ?", result.Errors)
	}
}

func TestValidatePedanticCaseMismatch(t *testing.T) {
	v := New()
	v.SetMode(Pedantic)

	if err := v.AddDictionary(rangeDict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	doc, err := parser.Parse("data_sample\n_Cell.Length_A 5.0\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	result := v.Validate(doc)

	found := false

	for _, w := range result.Warnings {
		if w.Category == CategoryCaseMismatch {
			found = true
		}
	}

	if !found {
		t.Errorf("Warnings = %+v, want a CaseMismatch warning", result.Warnings)
	}
}

func TestValidatePedanticDeprecatedAlias(t *testing.T) {
	dict := `data_d
save_cell.length_a
_definition.id '_cell.length_a'
_alias.definition_id '_cell_length_a'
_alias.deprecation_date 2020-01-01
_type.contents numb
save_
`

	v := New()
	v.SetMode(Pedantic)

	if err := v.AddDictionary(dict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	doc, err := parser.Parse("data_sample\n_cell_length_a 5.0\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	result := v.Validate(doc)

	found := false

	for _, w := range result.Warnings {
		if w.Category == CategoryDeprecatedAlias {
			found = true
		}
	}

	if !found {
		t.Errorf("Warnings = %+v, want a DeprecatedAlias warning", result.Warnings)
	}
}

func TestValidatePurity(t *testing.T) {
	v := New()
	if err := v.AddDictionary(rangeDict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	doc, err := parser.Parse("data_sample\n_cell.length_a -5.0\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	r1 := v.Validate(doc)
	r2 := v.Validate(doc)

	if len(r1.Errors) != len(r2.Errors) || r1.Errors[0].Message != r2.Errors[0].Message {
		t.Errorf("two Validate runs diverged: %+v vs %+v", r1, r2)
	}
}
