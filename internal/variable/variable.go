// Package variable defines the dictionary's core entity and the record
// builder that assembles one from section-level inputs under the
// coherence engine's visibility rules.
package variable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
)

// Section names in canonical order. DatabaseMapping flattens with the
// full "database_mapping_" prefix.
const (
	SectionConstraints     = "constraints"
	SectionCleaning        = "cleaning"
	SectionGovernance      = "governance"
	SectionDatabaseMapping = "database_mapping"
	SectionVisualization   = "visualization"
)

// MetadataSections lists the sections subject to coherence pruning.
// Visualization is excluded: its keys carry no type-dependent semantics
// beyond the always-hidden deprecated fields.
func MetadataSections() []string {
	return []string{SectionConstraints, SectionCleaning, SectionGovernance, SectionDatabaseMapping}
}

// Variable is a single dictionary entry: one column of a dataset with its
// full metadata document.
type Variable struct {
	Name        string `yaml:"name" json:"name"`
	Alias       string `yaml:"alias,omitempty" json:"alias,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	AnalyticalType taxonomy.AnalyticalType `yaml:"analytical_type,omitempty" json:"analytical_type,omitempty"`
	DataType       taxonomy.DataType       `yaml:"data_type,omitempty" json:"data_type,omitempty"`
	Role           taxonomy.Role           `yaml:"role,omitempty" json:"role,omitempty"`

	Constraints     map[string]any `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	Cleaning        map[string]any `yaml:"cleaning,omitempty" json:"cleaning,omitempty"`
	Governance      map[string]any `yaml:"governance,omitempty" json:"governance,omitempty"`
	DatabaseMapping map[string]any `yaml:"database_mapping,omitempty" json:"database_mapping,omitempty"`
	Visualization   map[string]any `yaml:"visualization,omitempty" json:"visualization,omitempty"`
}

// Section returns the named section map, or nil if the name is unknown.
// The returned map is the live section, not a copy.
func (v *Variable) Section(name string) map[string]any {
	switch name {
	case SectionConstraints:
		return v.Constraints
	case SectionCleaning:
		return v.Cleaning
	case SectionGovernance:
		return v.Governance
	case SectionDatabaseMapping:
		return v.DatabaseMapping
	case SectionVisualization:
		return v.Visualization
	}
	return nil
}

// EnsureSection returns the named section map, allocating it if absent.
func (v *Variable) EnsureSection(name string) map[string]any {
	if s := v.Section(name); s != nil {
		return s
	}
	m := map[string]any{}
	switch name {
	case SectionConstraints:
		v.Constraints = m
	case SectionCleaning:
		v.Cleaning = m
	case SectionGovernance:
		v.Governance = m
	case SectionDatabaseMapping:
		v.DatabaseMapping = m
	case SectionVisualization:
		v.Visualization = m
	default:
		return nil
	}
	return m
}

// Clone returns a deep copy. Section values are copied one level down plus
// nested maps and slices, which covers everything the dictionary stores
// (scalars, label lists, ordinal rank maps).
func (v *Variable) Clone() *Variable {
	if v == nil {
		return nil
	}
	out := *v
	out.Constraints = cloneSection(v.Constraints)
	out.Cleaning = cloneSection(v.Cleaning)
	out.Governance = cloneSection(v.Governance)
	out.DatabaseMapping = cloneSection(v.DatabaseMapping)
	out.Visualization = cloneSection(v.Visualization)
	return &out
}

func cloneSection(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, val := range src {
		dst[k] = cloneValue(val)
	}
	return dst
}

func cloneValue(val any) any {
	switch tv := val.(type) {
	case map[string]any:
		return cloneSection(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(tv))
		copy(out, tv)
		return out
	default:
		return val
	}
}

// Flatten renders the variable as a single-level map for tabular export.
// Nested map keys join recursively with "_" (constraints.min_value becomes
// constraints_min_value, an ordinal rank for "Low" becomes
// constraints_ordinal_mapping_Low); lists render as comma-joined strings.
func (v *Variable) Flatten() map[string]any {
	out := map[string]any{
		"name":            v.Name,
		"alias":           v.Alias,
		"description":     v.Description,
		"analytical_type": string(v.AnalyticalType),
		"data_type":       string(v.DataType),
		"role":            string(v.Role),
	}
	for _, section := range allSections() {
		for key, val := range v.Section(section) {
			flattenInto(out, section+"_"+key, val)
		}
	}
	return out
}

func allSections() []string {
	return []string{
		SectionConstraints, SectionCleaning, SectionGovernance,
		SectionDatabaseMapping, SectionVisualization,
	}
}

func flattenInto(out map[string]any, name string, val any) {
	switch tv := val.(type) {
	case map[string]any:
		for k, nested := range tv {
			flattenInto(out, name+"_"+k, nested)
		}
	case map[string]int:
		for k, nested := range tv {
			out[name+"_"+k] = nested
		}
	case []any:
		parts := make([]string, len(tv))
		for i, e := range tv {
			parts[i] = fmt.Sprint(e)
		}
		out[name] = strings.Join(parts, ", ")
	case []string:
		out[name] = strings.Join(tv, ", ")
	default:
		out[name] = val
	}
}

// FlatColumns returns the stable column order for tabular exports over a
// set of variables: identity and technical columns first, then every
// flattened section key seen anywhere, sorted.
func FlatColumns(vars []*Variable) []string {
	fixed := []string{"name", "alias", "description", "analytical_type", "data_type", "role"}
	seen := map[string]bool{}
	for _, c := range fixed {
		seen[c] = true
	}

	var extra []string
	for _, v := range vars {
		for key := range v.Flatten() {
			if !seen[key] {
				seen[key] = true
				extra = append(extra, key)
			}
		}
	}
	sort.Strings(extra)
	return append(fixed, extra...)
}

// HydrateFromFlat rebuilds a Variable from a flat row keyed with the
// section_field convention used by batch grids and tabular imports. Nil
// values are skipped, mirroring empty grid cells.
func HydrateFromFlat(row map[string]any) *Variable {
	v := &Variable{
		Constraints:     map[string]any{},
		Cleaning:        map[string]any{},
		Governance:      map[string]any{},
		DatabaseMapping: map[string]any{},
		Visualization:   map[string]any{},
	}

	v.Name, _ = row["name"].(string)
	v.Alias, _ = row["alias"].(string)
	v.Description, _ = row["description"].(string)
	v.AnalyticalType = taxonomy.AnalyticalType(stringAt(row, "analytical_type"))
	v.DataType = taxonomy.DataType(stringAt(row, "data_type"))
	v.Role = taxonomy.Role(stringAt(row, "role"))

	for key, val := range row {
		if val == nil {
			continue
		}
		for _, section := range allSections() {
			prefix := section + "_"
			if strings.HasPrefix(key, prefix) {
				v.Section(section)[strings.TrimPrefix(key, prefix)] = val
				break
			}
		}
	}

	return v
}

func stringAt(row map[string]any, key string) string {
	s, _ := row[key].(string)
	return s
}

// AllowedValues reads constraints.allowed_values as a string slice,
// tolerating both []string and []any representations (YAML and JSON
// decoders differ here).
func (v *Variable) AllowedValues() []string {
	if v.Constraints == nil {
		return nil
	}
	return StringList(v.Constraints["allowed_values"])
}

// StringList coerces a decoded list value into []string.
func StringList(val any) []string {
	switch tv := val.(type) {
	case []string:
		return tv
	case []any:
		out := make([]string, 0, len(tv))
		for _, e := range tv {
			out = append(out, fmt.Sprint(e))
		}
		return out
	}
	return nil
}

// OrdinalMapping reads constraints.ordinal_mapping as label→rank,
// tolerating the numeric types YAML and JSON decoders produce.
func (v *Variable) OrdinalMapping() map[string]int {
	if v.Constraints == nil {
		return nil
	}
	raw, ok := v.Constraints["ordinal_mapping"].(map[string]any)
	if !ok {
		if typed, ok := v.Constraints["ordinal_mapping"].(map[string]int); ok {
			return typed
		}
		return nil
	}
	out := make(map[string]int, len(raw))
	for label, rank := range raw {
		switch r := rank.(type) {
		case int:
			out[label] = r
		case int64:
			out[label] = int(r)
		case float64:
			out[label] = int(r)
		}
	}
	return out
}
