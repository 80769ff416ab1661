// Package ddlm loads DDLm data dictionaries — CIF documents that
// describe a schema via save frames — into a lookup structure the
// validator package checks parsed documents against (spec.md §4.4).
package ddlm

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/crystalcif/gocif/document"
	"github.com/crystalcif/gocif/parser"
)

// DataType is the DDLm `_type.contents`/`_type.container` classification
// a DataDef carries, collapsed to the handful of kinds the validator
// distinguishes (spec.md §3).
type DataType int

const (
	TypeUnknown DataType = iota
	TypeNumb
	TypeChar
	TypeText
	TypeList
	TypeTable
)

func parseDataType(s string) DataType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numb":
		return TypeNumb
	case "char", "code", "name", "tag", "uri", "dimension":
		return TypeChar
	case "text":
		return TypeText
	case "list":
		return TypeList
	case "table":
		return TypeTable
	default:
		return TypeUnknown
	}
}

// DataDef is one data name's schema, assembled from a dictionary save
// frame (spec.md §3 "Schema model").
type DataDef struct {
	CanonicalName string
	Purpose       string
	Category      string
	Type        DataType
	Enumeration []string
	// CaseInsensitive opts an enumeration out of the case-sensitive match
	// spec.md §4.5 step 5 requires by default ("case-sensitive unless the
	// dictionary marks the field case-insensitive"); the zero value keeps
	// matching case-sensitive, so a dictionary that never mentions
	// `_enumeration.case_sensitive_flag` gets the spec-mandated default
	// rather than an accidental opt-in to looser matching.
	CaseInsensitive bool
	Range           *NumRange
	Aliases       []string
	// DeprecatedAliases is the subset of Aliases a dictionary author marked
	// with `_alias.deprecation_date`: still resolvable, but Pedantic mode
	// warns when a document uses one (SPEC_FULL.md "Supplemented features").
	DeprecatedAliases []string
	Mandatory         bool
	SourceVersion     string
}

// Dictionary is the resolved schema model a Validator checks a Document
// against: a canonical-name index plus an alias index (spec.md §3, §4.4).
type Dictionary struct {
	defs              map[string]*DataDef
	aliases           map[string]string
	deprecatedAliases map[string]bool
	warnings          []string
}

// NewDictionary returns an empty Dictionary, ready for AddDictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		defs:              make(map[string]*DataDef),
		aliases:           make(map[string]string),
		deprecatedAliases: make(map[string]bool),
	}
}

// AddDictionary parses text as a CIF document and merges its DDLm
// definitions into d. Parse errors in the dictionary itself are returned
// (spec.md §4.4: "strict on parse errors in the dictionary itself");
// unknown DDLm attributes are silently ignored ("permissive on unknown
// DDLm attributes").
func (d *Dictionary) AddDictionary(text string) error {
	doc, err := parser.Parse(text)
	if err != nil {
		return err
	}

	for _, block := range doc.Blocks() {
		for _, frame := range block.Frames() {
			def, err := defFromFrame(frame)
			if err != nil {
				return err
			}

			if def == nil {
				continue
			}

			d.merge(def)
		}
	}

	return nil
}

// merge installs def into the dictionary, applying the conflict-resolution
// rule of spec.md §4.4 step 4 (later wins) refined by semver comparison
// when both the incoming and existing definitions carry a valid version
// (`_definition.version`, or `_dictionary.version` when the frame has no
// `_definition.version`; SPEC_FULL.md §4.4): the higher version wins
// regardless of add order, and either way a DictionaryConflict is noted.
func (d *Dictionary) merge(def *DataDef) {
	key := strings.ToLower(def.CanonicalName)

	existing, conflict := d.defs[key]
	if conflict {
		if !winsOver(def, existing) {
			d.warnings = append(d.warnings, "conflicting definition for "+def.CanonicalName+" ignored")
			d.indexAliases(existing)

			return
		}

		d.warnings = append(d.warnings, "definition for "+def.CanonicalName+" superseded")
	}

	d.defs[key] = def
	d.indexAliases(def)
}

// winsOver reports whether incoming should replace existing. When both
// carry a valid semver SourceVersion, the higher version wins;
// otherwise the later-added definition wins, matching spec.md's original
// rule.
func winsOver(incoming, existing *DataDef) bool {
	vi, ve := normalizeSemver(incoming.SourceVersion), normalizeSemver(existing.SourceVersion)
	if vi != "" && ve != "" {
		return semver.Compare(vi, ve) >= 0
	}

	return true
}

func normalizeSemver(v string) string {
	if v == "" {
		return ""
	}

	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}

	if !semver.IsValid(v) {
		return ""
	}

	return v
}

func (d *Dictionary) indexAliases(def *DataDef) {
	for _, alias := range def.Aliases {
		d.aliases[strings.ToLower(alias)] = strings.ToLower(def.CanonicalName)
	}

	for _, alias := range def.DeprecatedAliases {
		d.deprecatedAliases[strings.ToLower(alias)] = true
	}
}

// IsDeprecatedAlias reports whether tag resolves through an alias a
// dictionary author marked with `_alias.deprecation_date`.
func (d *Dictionary) IsDeprecatedAlias(tag string) bool {
	return d.deprecatedAliases[strings.ToLower(tag)]
}

// Resolve looks tag up through the alias index to its canonical DataDef.
func (d *Dictionary) Resolve(tag string) (*DataDef, bool) {
	key := strings.ToLower(tag)

	if def, ok := d.defs[key]; ok {
		return def, true
	}

	if canonical, ok := d.aliases[key]; ok {
		def, ok := d.defs[canonical]

		return def, ok
	}

	return nil, false
}

// Warnings returns DictionaryConflict messages accumulated while merging
// definitions across AddDictionary calls (spec.md §4.4 step 4, §7).
func (d *Dictionary) Warnings() []string { return append([]string{}, d.warnings...) }

// MandatoryDefs returns every DataDef marked mandatory, for the
// Pedantic-mode missing-mandatory-item check (spec.md §4.5 step 7).
func (d *Dictionary) MandatoryDefs() []*DataDef {
	var out []*DataDef

	for _, def := range d.defs {
		if def.Mandatory {
			out = append(out, def)
		}
	}

	return out
}

func getText(items func(string) (document.Value, bool), tag string) (string, bool) {
	v, ok := items(tag)
	if !ok {
		return "", false
	}

	if s, ok := v.Text(); ok {
		return s, true
	}

	if n, ok := v.Numeric(); ok {
		return strconv.FormatFloat(n, 'g', -1, 64), true
	}

	return "", false
}
