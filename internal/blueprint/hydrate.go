package blueprint

import (
	"fmt"
	"strings"

	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// Overwrite controls which identity fields a hydration may replace.
// Fields left false keep the target's current value.
type Overwrite struct {
	Name        bool
	Alias       bool
	Description bool
}

// CategoricalRow is one label of a categorical variable's editing
// state, re-seeded from the template's allowed_values.
type CategoricalRow struct {
	Label string
	Rank  int
}

// Report describes what a hydration did to the identity fields.
type Report struct {
	Applied   []string
	Preserved []string
}

// Summary renders the report the way the status line shows it.
func (r Report) Summary() string {
	if len(r.Preserved) == 0 {
		return "Complete template applied."
	}
	return fmt.Sprintf("Metadata applied (%s preserved).", strings.Join(r.Preserved, ", "))
}

// Hydrate merges a template into target. The template is sanitized
// first, identity fields are dropped unless their overwrite flag is
// set, section maps are merged key by key, and allowed_values re-seeds
// the returned categorical rows. Missing sections never fail; they
// default to empty.
func Hydrate(tpl Template, target *variable.Variable, ov Overwrite) ([]CategoricalRow, Report, error) {
	if target == nil {
		return nil, Report{}, fmt.Errorf("hydrate: nil target")
	}

	doc := cloneTemplate(tpl)
	Sanitize(doc)

	var report Report
	guard := func(key, label string, allowed bool) {
		if allowed {
			report.Applied = append(report.Applied, label)
			return
		}
		delete(doc, key)
		report.Preserved = append(report.Preserved, label)
	}
	guard("name", "Name", ov.Name)
	guard("alias", "Alias", ov.Alias)
	guard("description", "Description", ov.Description)

	if v, ok := doc["name"]; ok {
		target.Name = asString(v)
	}
	if v, ok := doc["alias"]; ok {
		target.Alias = asString(v)
	}
	if v, ok := doc["description"]; ok {
		target.Description = asString(v)
	}

	target.AnalyticalType = taxonomy.AnalyticalType(stringOr(doc, "analytical_type", string(taxonomy.Continuous)))
	target.DataType = taxonomy.DataType(stringOr(doc, "data_type", string(taxonomy.Float64)))
	target.Role = taxonomy.Role(stringOr(doc, "role", string(taxonomy.RoleFeature)))

	var rows []CategoricalRow
	for _, name := range variable.MetadataSections() {
		src, ok := doc[name].(map[string]any)
		if !ok {
			continue
		}
		dst := target.EnsureSection(name)
		for key, val := range src {
			dst[key] = val
		}
		if name == variable.SectionConstraints {
			if _, has := src["allowed_values"]; has {
				rows = seedCategoricalRows(variable.StringList(src["allowed_values"]), target.OrdinalMapping())
			}
		}
	}

	return rows, report, nil
}

// seedCategoricalRows turns allowed_values into ordered editing rows.
// Ranks default to the 1-based position; an explicit ordinal_mapping
// entry for a label wins over the positional default.
func seedCategoricalRows(labels []string, mapping map[string]int) []CategoricalRow {
	rows := make([]CategoricalRow, 0, len(labels))
	for i, label := range labels {
		rank := i + 1
		if explicit, ok := mapping[label]; ok {
			rank = explicit
		}
		rows = append(rows, CategoricalRow{Label: label, Rank: rank})
	}
	return rows
}

func cloneTemplate(tpl Template) map[string]any {
	out := make(map[string]any, len(tpl))
	for k, v := range tpl {
		out[k] = cloneDocValue(v)
	}
	return out
}

func cloneDocValue(val any) any {
	switch t := val.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = cloneDocValue(v)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, v := range t {
			l[i] = cloneDocValue(v)
		}
		return l
	default:
		return val
	}
}

func stringOr(doc map[string]any, key, fallback string) string {
	if v, ok := doc[key]; ok {
		if s := asString(v); s != "" {
			return s
		}
	}
	return fallback
}

func asString(val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	if val == nil {
		return ""
	}
	return fmt.Sprintf("%v", val)
}
