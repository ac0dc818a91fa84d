// Package schema loads the master form schema: the list of field
// definitions the record builder renders and validates against.
package schema

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_schema.yaml
var defaultSchema []byte

// FieldKind is the widget family a field definition belongs to.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
	KindBoolean
	KindEnum
	KindMultiSelect
	KindSection
)

var kindNames = map[FieldKind]string{
	KindString:      "string",
	KindNumber:      "number",
	KindBoolean:     "boolean",
	KindEnum:        "enum",
	KindMultiSelect: "multiselect",
	KindSection:     "section",
}

func (k FieldKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// ParseFieldKind maps the schema file's dtype strings, including the
// legacy "dict" spelling for nested sections.
func ParseFieldKind(raw string) (FieldKind, error) {
	switch raw {
	case "string", "":
		return KindString, nil
	case "number":
		return KindNumber, nil
	case "boolean":
		return KindBoolean, nil
	case "enum":
		return KindEnum, nil
	case "multiselect":
		return KindMultiSelect, nil
	case "dict", "section":
		return KindSection, nil
	default:
		return KindString, fmt.Errorf("unknown field kind %q", raw)
	}
}

// FieldDef describes one form field. Section fields carry child
// definitions in Fields; leaf fields may carry Options (enum and
// multiselect), a Required flag, and a Default value.
type FieldDef struct {
	Name     string
	Kind     FieldKind
	Options  []string
	Required bool
	Default  any
	Fields   []FieldDef
}

type rawField struct {
	Name     string     `yaml:"name"`
	Dtype    string     `yaml:"dtype"`
	Options  []string   `yaml:"options,omitempty"`
	Required bool       `yaml:"required,omitempty"`
	Default  any        `yaml:"default,omitempty"`
	Fields   []rawField `yaml:"fields,omitempty"`
}

type rawSchema struct {
	VariableSchema []rawField `yaml:"variable_schema"`
}

// Schema is the parsed master schema.
type Schema struct {
	Fields []FieldDef
}

// Field looks a top-level definition up by name.
func (s *Schema) Field(name string) (FieldDef, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Sections returns only the nested section definitions.
func (s *Schema) Sections() []FieldDef {
	var out []FieldDef
	for _, f := range s.Fields {
		if f.Kind == KindSection {
			out = append(out, f)
		}
	}
	return out
}

// ConfigError wraps a schema load failure. The schema is required at
// startup, so callers treat it as fatal.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("schema config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Load reads and validates a master schema file.
func Load(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	s, err := parse(raw)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return s, nil
}

// Default returns the schema baked into the binary, used when a
// project does not carry its own.
func Default() *Schema {
	s, err := parse(defaultSchema)
	if err != nil {
		panic(fmt.Sprintf("embedded schema invalid: %v", err))
	}
	return s
}

func parse(raw []byte) (*Schema, error) {
	var doc rawSchema
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.VariableSchema) == 0 {
		return nil, fmt.Errorf("variable_schema is empty")
	}
	fields, err := convert(doc.VariableSchema)
	if err != nil {
		return nil, err
	}
	return &Schema{Fields: fields}, nil
}

func convert(raw []rawField) ([]FieldDef, error) {
	out := make([]FieldDef, 0, len(raw))
	for _, rf := range raw {
		if rf.Name == "" {
			return nil, fmt.Errorf("field definition without a name")
		}
		kind, err := ParseFieldKind(rf.Dtype)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", rf.Name, err)
		}
		def := FieldDef{
			Name:     rf.Name,
			Kind:     kind,
			Options:  rf.Options,
			Required: rf.Required,
			Default:  rf.Default,
		}
		if kind == KindSection {
			children, err := convert(rf.Fields)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", rf.Name, err)
			}
			def.Fields = children
		}
		out = append(out, def)
	}
	return out, nil
}
