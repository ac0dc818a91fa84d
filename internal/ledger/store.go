package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// ProjectInfo is the dictionary-level metadata block.
type ProjectInfo struct {
	ProjectName  string   `yaml:"project_name" json:"project_name"`
	Version      string   `yaml:"version,omitempty" json:"version,omitempty"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	Stakeholders []string `yaml:"stakeholders,omitempty" json:"stakeholders,omitempty"`
}

// Document is the whole persisted dictionary: project metadata, the
// committed variables in order, and the pending-name queue.
type Document struct {
	Project   ProjectInfo          `yaml:"project" json:"project_metadata"`
	UpdatedAt time.Time            `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
	Variables []*variable.Variable `yaml:"variables" json:"variables"`
	Pending   []string             `yaml:"pending,omitempty" json:"pending,omitempty"`
}

// Load reads a dictionary document from path. A missing file yields an
// empty document with a default project block; a malformed file is an
// error, since the dictionary is the primary artifact and must not be
// silently discarded.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Document{Project: ProjectInfo{ProjectName: "New Project", Version: "1.0.0"}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary %s: %w", path, err)
	}
	if doc.Project.ProjectName == "" {
		doc.Project.ProjectName = "New Project"
	}
	return &doc, nil
}

// Save writes the whole document back to path, replacing the previous
// contents. There are no partial writes or append logs.
func Save(path string, doc *Document) error {
	doc.UpdatedAt = time.Now().UTC()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode dictionary: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create dictionary directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dictionary %s: %w", path, err)
	}
	return nil
}

// SessionFromDocument opens a session over a loaded document.
func SessionFromDocument(doc *Document) *Session {
	s := NewSession(FromVariables(doc.Variables))
	s.pending = append(s.pending, doc.Pending...)
	return s
}

// DocumentFromSession snapshots a session back into a document for
// persistence, carrying the project block through.
func DocumentFromSession(project ProjectInfo, s *Session) *Document {
	return &Document{
		Project:   project,
		Variables: s.Ledger().All(),
		Pending:   s.Pending(),
	}
}
