// Package export renders the dictionary into its downstream formats:
// YAML and JSON documents, CSV and Excel tables, and PostgreSQL DDL.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/forgeworks-labs/dictforge/internal/ledger"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// Document is the full export object: project metadata, a generation
// timestamp, and every committed variable.
type Document struct {
	ProjectMetadata ledger.ProjectInfo   `yaml:"project_metadata" json:"project_metadata"`
	GeneratedAt     string               `yaml:"generated_at" json:"generated_at"`
	Variables       []*variable.Variable `yaml:"variables" json:"variables"`
}

// NewDocument assembles an export document stamped with the current
// time.
func NewDocument(project ledger.ProjectInfo, vars []*variable.Variable) *Document {
	return &Document{
		ProjectMetadata: project,
		GeneratedAt:     time.Now().Format(time.RFC3339),
		Variables:       vars,
	}
}

// YAML renders the document for version-control friendly output.
func (d *Document) YAML() ([]byte, error) {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("render yaml: %w", err)
	}
	return raw, nil
}

// JSON renders the document for programmatic ingestion.
func (d *Document) JSON() ([]byte, error) {
	raw, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return raw, nil
}
