package cif

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crystalcif/gocif/validator"
)

const miniDict = `data_d
save_cell.length_a
_definition.id '_cell.length_a'
_type.contents numb
_enumeration.range 0.1:1000
save_
`

func TestValidateConvenienceWrapper(t *testing.T) {
	got, err := Validate("data_sample\n_cell.length_a -5.0\n", miniDict)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if len(got.Errors) != 1 {
		t.Fatalf("Errors = %+v, want exactly one", got.Errors)
	}

	if got.Errors[0].Category != validator.CategoryRangeError {
		t.Errorf("Category = %v, want RangeError", got.Errors[0].Category)
	}
}

func TestParseThenValidateAgreesWithConvenienceWrapper(t *testing.T) {
	text := "data_sample\n_cell.length_a -5.0\n"

	doc, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	v := NewValidator()
	if err := v.AddDictionary(miniDict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	want := v.Validate(doc)

	got, err := Validate(text, miniDict)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate() result differs from manual Parse+Validate (-want +got):\n%s", diff)
	}
}
