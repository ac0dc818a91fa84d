package variable

import (
	"fmt"
	"strings"

	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
)

// ValidationError is a user-correctable input problem: the operation
// aborts with a message and nothing is committed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Builder assembles a candidate Variable from section-level inputs. Fields
// the visibility predicate rejects for the current type context are
// silently dropped, so an incoherent document can never be produced by
// construction.
type Builder struct {
	v *Variable
}

// NewBuilder starts a build for the given identity and type context.
func NewBuilder(name string, at taxonomy.AnalyticalType, dt taxonomy.DataType, role taxonomy.Role) *Builder {
	return &Builder{v: &Variable{
		Name:           strings.TrimSpace(name),
		AnalyticalType: at,
		DataType:       dt,
		Role:           role,
	}}
}

// FromGuess starts a build seeded by the heuristic classifier.
func FromGuess(name string) *Builder {
	g := taxonomy.GuessMetadata(name)
	return NewBuilder(name, g.AnalyticalType, g.DataType, g.Role)
}

// Identity sets the optional identity fields.
func (b *Builder) Identity(alias, description string) *Builder {
	b.v.Alias = strings.TrimSpace(alias)
	b.v.Description = strings.TrimSpace(description)
	return b
}

// SetSection merges fields into the named section, keeping only those the
// visibility predicate allows for the build's type context. Nil values
// are dropped.
func (b *Builder) SetSection(section string, fields map[string]any) *Builder {
	if len(fields) == 0 {
		return b
	}
	dst := b.v.EnsureSection(section)
	if dst == nil {
		return b
	}
	for key, val := range fields {
		if val == nil {
			continue
		}
		if !b.fieldAllowed(section, key) {
			continue
		}
		dst[key] = val
	}
	return b
}

// fieldAllowed is the builder's admission rule: the visibility predicate,
// plus the categorical-editor path that supplies labels and ranks for
// category, binary, and nominal-bool variables even where storage-level
// suppression would hide the plain field.
func (b *Builder) fieldAllowed(section, key string) bool {
	if section == SectionConstraints && (key == "allowed_values" || key == "ordinal_mapping") {
		if IsCategoricalContext(b.v.AnalyticalType, b.v.DataType) {
			return key == "allowed_values" || b.v.AnalyticalType == taxonomy.Ordinal
		}
	}
	return taxonomy.IsFieldVisible(key, b.v.AnalyticalType, b.v.DataType)
}

// IsCategoricalContext reports whether the type pair is edited through
// the label-mapping path rather than free-form constraint fields.
func IsCategoricalContext(at taxonomy.AnalyticalType, dt taxonomy.DataType) bool {
	return dt == taxonomy.Category ||
		at == taxonomy.Binary ||
		(at == taxonomy.Nominal && dt == taxonomy.Bool)
}

// Build validates the candidate and returns it. The returned Variable is
// detached from the builder.
func (b *Builder) Build() (*Variable, error) {
	if err := Validate(b.v); err != nil {
		return nil, err
	}
	return b.v.Clone(), nil
}

// Validate enforces the commit-time invariants on a variable document.
func Validate(v *Variable) error {
	if strings.TrimSpace(v.Name) == "" {
		return &ValidationError{Field: "name", Message: "name required"}
	}

	// Binary lock: dual-state variables carry exactly two labels.
	if v.AnalyticalType == taxonomy.Binary || v.DataType == taxonomy.Bool {
		if len(v.AllowedValues()) != 2 {
			return &ValidationError{
				Field:   "constraints.allowed_values",
				Message: "binary requires exactly 2 labels",
			}
		}
	}

	if v.DataType == taxonomy.Category && v.AnalyticalType == taxonomy.Ordinal {
		mapping := v.OrdinalMapping()
		seen := make(map[int]bool, len(mapping))
		for _, rank := range mapping {
			if seen[rank] {
				return &ValidationError{
					Field:   "constraints.ordinal_mapping",
					Message: "ordinal ranks must be unique",
				}
			}
			seen[rank] = true
		}
	}

	return nil
}

// ValidateCategoricalEntropy checks that a category label list has enough
// variance to be useful: at least two distinct non-blank labels.
func ValidateCategoricalEntropy(allowedValues []string) error {
	distinct := map[string]bool{}
	for _, val := range allowedValues {
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			distinct[trimmed] = true
		}
	}
	if len(distinct) < 2 {
		return &ValidationError{
			Field:   "constraints.allowed_values",
			Message: fmt.Sprintf("insufficient variance: categories require at least 2 unique values (found %d)", len(distinct)),
		}
	}
	return nil
}
