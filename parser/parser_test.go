package parser

import (
	"testing"

	"github.com/crystalcif/gocif/document"
)

func mustParse(t *testing.T, text string) *document.Document {
	t.Helper()

	doc, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(): unexpected error: %v", err)
	}

	return doc
}

func TestParseSimpleScalars(t *testing.T) {
	doc := mustParse(t, "data_simple\n"+
		"_cell_length_a 10.0\n"+
		"_title 'Simple Test Structure'\n"+
		"_temperature_kelvin ?\n"+
		"_pressure .\n")

	block, ok := doc.BlockByName("simple")
	if !ok {
		t.Fatal("block 'simple' not found")
	}

	v, ok := block.GetItem("_cell_length_a")
	if !ok || !v.IsNumeric() {
		t.Fatalf("_cell_length_a = %+v, want numeric", v)
	}

	if n, _ := v.Numeric(); n != 10.0 {
		t.Errorf("_cell_length_a = %v, want 10.0", n)
	}

	title, ok := block.GetItem("_title")
	if !ok || !title.IsText() {
		t.Fatalf("_title = %+v, want text", title)
	}

	if s, _ := title.Text(); s != "Simple Test Structure" {
		t.Errorf("_title = %q, want %q", s, "Simple Test Structure")
	}

	temp, _ := block.GetItem("_temperature_kelvin")
	if !temp.IsUnknown() {
		t.Errorf("_temperature_kelvin kind = %v, want unknown", temp.Kind())
	}

	pressure, _ := block.GetItem("_pressure")
	if !pressure.IsNotApplicable() {
		t.Errorf("_pressure kind = %v, want not_applicable", pressure.Kind())
	}
}

func TestParseUncertainty(t *testing.T) {
	tests := []struct {
		raw    string
		value  float64
		uncert float64
	}{
		{"10.01(11)", 10.01, 0.11},
		{"11.910400(4)", 11.9104, 0.000004},
		{"90.000000(0)", 90.0, 0.0},
	}

	for _, tt := range tests {
		doc := mustParse(t, "data_d\n_x "+tt.raw+"\n")

		block, _ := doc.BlockByName("d")

		v, ok := block.GetItem("_x")
		if !ok || !v.IsNumericWithUncertainty() {
			t.Fatalf("%s: kind = %v, want numeric_with_uncertainty", tt.raw, v.Kind())
		}

		n, _ := v.Numeric()
		u, _ := v.Uncertainty()

		if n != tt.value || u != tt.uncert {
			t.Errorf("%s: got value=%v uncertainty=%v, want value=%v uncertainty=%v", tt.raw, n, u, tt.value, tt.uncert)
		}
	}
}

func TestParseLoop(t *testing.T) {
	doc := mustParse(t, "data_struct\n"+
		"loop_\n_atom_site_label\n_atom_site_x\n"+
		"C1 0.1\n"+
		"C2 0.2\n"+
		"loop_\n_bond_length\n1.54\n2.01\n")

	block, _ := doc.BlockByName("struct")

	if got := len(block.Loops()); got != 2 {
		t.Fatalf("num loops = %d, want 2", got)
	}

	atomLoop, _ := block.GetLoop(0)

	row, _ := atomLoop.GetRow(0)

	var label document.Value

	for _, kv := range row {
		if kv.Key == "_atom_site_label" {
			label = kv.Value
		}
	}

	if s, _ := label.Text(); s != "C1" {
		t.Errorf("row 0 _atom_site_label = %q, want C1", s)
	}

	bondLoop, _ := block.GetLoop(1)

	v, _ := bondLoop.Get(0, 0)
	if n, _ := v.Numeric(); n != 1.54 {
		t.Errorf("bond loop [0][0] = %v, want 1.54", n)
	}
}

func TestParseSaveFrame(t *testing.T) {
	doc := mustParse(t, "data_d\nsave_frame1\n_a 1\nsave_\n_b 2\n")

	block, _ := doc.BlockByName("d")

	frame, ok := block.GetFrameByName("frame1")
	if !ok {
		t.Fatal("frame 'frame1' not found")
	}

	v, ok := frame.GetItem("_a")
	if !ok {
		t.Fatal("frame missing _a")
	}

	if n, _ := v.Numeric(); n != 1 {
		t.Errorf("_a = %v, want 1", n)
	}

	if _, ok := block.GetItem("_b"); !ok {
		t.Fatal("block missing _b after frame end")
	}
}

func TestParseCIF2Structures(t *testing.T) {
	doc := mustParse(t, "#\\#CIF_2.0\ndata_d\n_nested_list [[1 2][3 4]]\n_coordinates {x:1.5 y:2.5 z:3.5}\n")

	if doc.Version() != document.CIF20 {
		t.Fatalf("version = %v, want CIF20", doc.Version())
	}

	block, _ := doc.BlockByName("d")

	list, ok := block.GetItem("_nested_list")
	if !ok || !list.IsList() {
		t.Fatalf("_nested_list kind = %v, want list", list.Kind())
	}

	elems, _ := list.List()
	if len(elems) != 2 || !elems[0].IsList() || !elems[1].IsList() {
		t.Fatalf("_nested_list elements = %+v, want two nested lists", elems)
	}

	coords, ok := block.GetItem("_coordinates")
	if !ok || !coords.IsTable() {
		t.Fatalf("_coordinates kind = %v, want table", coords.Kind())
	}

	tbl, _ := coords.TableValue()
	if tbl.Len() != 3 {
		t.Fatalf("_coordinates entries = %d, want 3", tbl.Len())
	}

	x, ok := tbl.Get("x")
	if !ok {
		t.Fatal("_coordinates missing key x")
	}

	if n, _ := x.Numeric(); n != 1.5 {
		t.Errorf("_coordinates.x = %v, want 1.5", n)
	}
}

func TestParseTableAdjacentColonNoSpaces(t *testing.T) {
	doc := mustParse(t, "#\\#CIF_2.0\ndata_d\n_coords {x:1.5 y:2.5 z:3.5}\n")

	block, _ := doc.BlockByName("d")

	v, ok := block.GetItem("_coords")
	if !ok || !v.IsTable() {
		t.Fatalf("_coords kind = %v, want table", v.Kind())
	}

	tbl, _ := v.TableValue()
	if tbl.Len() != 3 {
		t.Fatalf("_coords entries = %d, want 3", tbl.Len())
	}

	for key, want := range map[string]float64{"x": 1.5, "y": 2.5, "z": 3.5} {
		val, ok := tbl.Get(key)
		if !ok {
			t.Fatalf("_coords missing key %q", key)
		}

		if n, _ := val.Numeric(); n != want {
			t.Errorf("_coords.%s = %v, want %v", key, n, want)
		}
	}
}

func TestParseTableRejectsMissingColon(t *testing.T) {
	_, err := Parse("#\\#CIF_2.0\ndata_d\n_coords {x 1.5}\n")
	if err == nil {
		t.Fatal("expected error for table entry missing ':', got nil")
	}
}

func TestParseTripleQuoteRejectedInCIF11(t *testing.T) {
	_, err := Parse("data_d\n_a '''abc'''\n")
	if err == nil {
		t.Fatal("expected error for triple-quoted string in CIF 1.1, got nil")
	}
}

func TestParseCIF2ConstructsRejectedInCIF11(t *testing.T) {
	_, err := Parse("data_d\n_x [1 2]\n")
	if err == nil {
		t.Fatal("expected error for CIF 2.0 list in CIF 1.1 document, got nil")
	}
}

func TestParseRaggedLoopIsError(t *testing.T) {
	_, err := Parse("data_d\nloop_\n_a\n_b\n1 2 3\n")
	if err == nil {
		t.Fatal("expected error for non-rectangular loop, got nil")
	}
}

func TestParseDuplicateTagIsError(t *testing.T) {
	_, err := Parse("data_d\n_a 1\n_a 2\n")
	if err == nil {
		t.Fatal("expected error for duplicate tag, got nil")
	}
}

func TestParseDuplicateBlockNameIsError(t *testing.T) {
	_, err := Parse("data_d\n_a 1\ndata_D\n_b 2\n")
	if err == nil {
		t.Fatal("expected error for duplicate block name (case-insensitive), got nil")
	}
}

func TestParseSpanCoversExactText(t *testing.T) {
	text := "data_d\n_cell_length_a 10.0\n"
	doc := mustParse(t, text)

	block, _ := doc.BlockByName("d")

	v, _ := block.GetItem("_cell_length_a")
	span := v.Span()

	got := text[sliceOffset(text, span.Start.Line, span.Start.Col):sliceOffset(text, span.End.Line, span.End.Col)]
	if got != "10.0" {
		t.Errorf("span text = %q, want %q", got, "10.0")
	}
}

// sliceOffset converts a 1-indexed line/col position into a byte offset
// into text, for span-coverage assertions.
func sliceOffset(text string, line, col int) int {
	offset := 0
	curLine := 1

	for offset < len(text) && curLine < line {
		if text[offset] == '\n' {
			curLine++
		}

		offset++
	}

	return offset + col - 1
}
