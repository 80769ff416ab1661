package ddlm

import (
	"strings"

	"github.com/crystalcif/gocif/document"
	"github.com/crystalcif/gocif/token"
)

// defFromFrame extracts a DataDef from a save frame, following spec.md
// §4.4 steps 2-3. A frame that names no `_definition.id` (or the DDL1/2
// equivalent `_name`) is not a data definition and is skipped. A malformed
// `_enumeration.range` attribute is a parse error in the dictionary itself
// (spec.md §4.4: "strict on parse errors in the dictionary itself") and is
// returned rather than silently dropped.
func defFromFrame(frame *document.Frame) (*DataDef, error) {
	name, ok := getText(frame.GetItem, "_definition.id")
	if !ok {
		name, ok = getText(frame.GetItem, "_name")
	}

	if !ok {
		return nil, nil
	}

	def := &DataDef{
		CanonicalName: strings.ToLower(strings.TrimSpace(name)),
	}

	if s, ok := getText(frame.GetItem, "_definition.class"); ok {
		def.Category = s
	}

	if s, ok := getText(frame.GetItem, "_name.category_id"); ok && def.Category == "" {
		def.Category = s
	}

	if s, ok := getText(frame.GetItem, "_description.text"); ok {
		def.Purpose = s
	}

	if s, ok := getText(frame.GetItem, "_type.contents"); ok {
		def.Type = parseDataType(s)
	}

	if s, ok := getText(frame.GetItem, "_type.container"); ok && strings.EqualFold(s, "List") {
		def.Type = TypeList
	}

	if loop, ok := frame.FindLoop("_enumeration_set.state"); ok {
		values, _ := loop.GetColumn("_enumeration_set.state")
		for _, v := range values {
			if s, ok := v.Text(); ok {
				def.Enumeration = append(def.Enumeration, s)
			}
		}
	}

	// Enumeration matching is case-sensitive by default (spec.md §4.5 step
	// 5); a dictionary opts a field out of that with an explicit "no"/"0".
	if s, ok := getText(frame.GetItem, "_enumeration.case_sensitive_flag"); ok {
		def.CaseInsensitive = strings.EqualFold(s, "no") || s == "0"
	}

	if v, ok := frame.GetItem("_enumeration.range"); ok {
		if s, ok := v.Text(); ok {
			r, err := ParseRange(s)
			if err != nil {
				return nil, token.FromParticipleError(err, v.Span())
			}

			def.Range = &r
		}
	}

	if s, ok := getText(frame.GetItem, "_definition.version"); ok {
		def.SourceVersion = s
	} else if s, ok := getText(frame.GetItem, "_dictionary.version"); ok {
		def.SourceVersion = s
	}

	if v, ok := frame.GetItem("_alias.definition_id"); ok {
		if s, ok := v.Text(); ok {
			def.Aliases = append(def.Aliases, s)

			if _, deprecated := frame.GetItem("_alias.deprecation_date"); deprecated {
				def.DeprecatedAliases = append(def.DeprecatedAliases, s)
			}
		}
	}

	if loop, ok := frame.FindLoop("_alias.definition_id"); ok {
		names, _ := loop.GetColumn("_alias.definition_id")
		dates, hasDates := loop.GetColumn("_alias.deprecation_date")

		for i, v := range names {
			s, ok := v.Text()
			if !ok {
				continue
			}

			def.Aliases = append(def.Aliases, s)

			if hasDates && i < len(dates) {
				if d, ok := dates[i].Text(); ok && strings.TrimSpace(d) != "" {
					def.DeprecatedAliases = append(def.DeprecatedAliases, s)
				}
			}
		}
	}

	if s, ok := getText(frame.GetItem, "_definition.mandatory"); ok {
		def.Mandatory = strings.EqualFold(s, "yes") || s == "1"
	} else if s, ok := getText(frame.GetItem, "_type.purpose"); ok {
		def.Mandatory = strings.EqualFold(s, "Key")
	}

	return def, nil
}
