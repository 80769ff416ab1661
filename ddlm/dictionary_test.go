package ddlm

import "testing"

const sampleDict = `data_example_dic
save_cell.length_a
_definition.id '_cell.length_a'
_type.contents numb
_enumeration.range 0.1:1000
save_

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

func TestAddDictionaryResolvesByCanonicalName(t *testing.T) {
	d := NewDictionary()
	if err := d.AddDictionary(sampleDict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	def, ok := d.Resolve("_cell.length_a")
	if !ok {
		t.Fatal("expected _cell.length_a to resolve")
	}

	if def.Type != TypeNumb {
		t.Errorf("Type = %v, want TypeNumb", def.Type)
	}

	if def.Range == nil || !def.Range.HasLo || def.Range.Lo != 0.1 || !def.Range.HasHi || def.Range.Hi != 1000 {
		t.Errorf("Range = %+v, want [0.1:1000]", def.Range)
	}
}

func TestAddDictionaryEnumeration(t *testing.T) {
	d := NewDictionary()
	if err := d.AddDictionary(sampleDict); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	def, ok := d.Resolve("_symmetry.crystal_system")
	if !ok {
		t.Fatal("expected _symmetry.crystal_system to resolve")
	}

	if len(def.Enumeration) != 7 {
		t.Fatalf("Enumeration = %v, want 7 entries", def.Enumeration)
	}
}

func TestAddDictionaryUnknownAttributesIgnored(t *testing.T) {
	d := NewDictionary()

	text := "data_d\nsave_foo.bar\n_definition.id '_foo.bar'\n_some.vendor.extension 'whatever'\nsave_\n"
	if err := d.AddDictionary(text); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	if _, ok := d.Resolve("_foo.bar"); !ok {
		t.Fatal("expected _foo.bar to resolve despite unknown attribute")
	}
}

func TestAddDictionaryConflictSemverWins(t *testing.T) {
	d := NewDictionary()

	v1 := "data_d\nsave_x\n_definition.id '_x'\n_definition.version v1.0.0\n_type.contents char\nsave_\n"
	v2 := "data_d\nsave_x\n_definition.id '_x'\n_definition.version v2.0.0\n_type.contents numb\nsave_\n"

	if err := d.AddDictionary(v2); err != nil {
		t.Fatalf("AddDictionary(v2): %v", err)
	}

	if err := d.AddDictionary(v1); err != nil {
		t.Fatalf("AddDictionary(v1): %v", err)
	}

	def, _ := d.Resolve("_x")
	if def.Type != TypeNumb {
		t.Errorf("Type = %v, want TypeNumb (higher semver v2.0.0 should win despite being added first)", def.Type)
	}

	if len(d.Warnings()) == 0 {
		t.Error("expected a DictionaryConflict warning to be recorded")
	}
}

func TestAddDictionaryDeprecatedAliasTracked(t *testing.T) {
	d := NewDictionary()

	text := "data_d\nsave_cell.length_a\n_definition.id '_cell.length_a'\n" +
		"_alias.definition_id '_cell_length_a'\n_alias.deprecation_date 2020-01-01\n_type.contents numb\nsave_\n"
	if err := d.AddDictionary(text); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	if !d.IsDeprecatedAlias("_cell_length_a") {
		t.Error("expected _cell_length_a to be tracked as a deprecated alias")
	}

	if d.IsDeprecatedAlias("_cell.length_a") {
		t.Error("canonical name itself must not be tracked as a deprecated alias")
	}
}

func TestAddDictionaryMalformedRangeIsError(t *testing.T) {
	d := NewDictionary()

	text := "data_d\nsave_cell.length_a\n_definition.id '_cell.length_a'\n" +
		"_type.contents numb\n_enumeration.range low:high\nsave_\n"

	err := d.AddDictionary(text)
	if err == nil {
		t.Fatal("expected an error for a malformed _enumeration.range attribute, got nil")
	}
}

func TestAddDictionaryAliasResolution(t *testing.T) {
	d := NewDictionary()

	text := "data_d\nsave_cell.length_a\n_definition.id '_cell.length_a'\n_alias.definition_id '_cell_length_a'\n_type.contents numb\nsave_\n"
	if err := d.AddDictionary(text); err != nil {
		t.Fatalf("AddDictionary: %v", err)
	}

	def, ok := d.Resolve("_cell_length_a")
	if !ok {
		t.Fatal("expected alias _cell_length_a to resolve to canonical definition")
	}

	if def.CanonicalName != "_cell.length_a" {
		t.Errorf("CanonicalName = %q, want _cell.length_a", def.CanonicalName)
	}
}
