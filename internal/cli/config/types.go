// Package config provides configuration management for the dictforge
// CLI. Settings come from dictforge.yaml, DICTFORGE_ environment
// variables, and command-line flags, in ascending precedence.
package config

// Defaults for a project that carries no config file.
const (
	DefaultDictionaryPath = "dictionary.yaml"
	DefaultSchemaPath     = ""
	DefaultStandardPath   = "config/templates_standard.yaml"
	DefaultUserPath       = "config/templates_user.json"
	DefaultRegulations    = "config/regulations.yaml"
	DefaultOutput         = "table"
	DefaultTargetTable    = "public_schema_table"
)

// Config holds all CLI configuration options.
type Config struct {
	DictionaryPath    string `koanf:"dictionary"`
	SchemaPath        string `koanf:"schema"`
	TemplatesStandard string `koanf:"templates_standard"`
	TemplatesUser     string `koanf:"templates_user"`
	RegulationsPath   string `koanf:"regulations"`
	OutputFormat      string `koanf:"output"`
	DefaultTable      string `koanf:"default_table"`
	Verbose           bool   `koanf:"verbose"`

	// ProjectRoot anchors relative paths; set during load, not from
	// the file.
	ProjectRoot string `koanf:"-"`
}
