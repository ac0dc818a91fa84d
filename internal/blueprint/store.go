// Package blueprint manages the template library: a two-tier store of
// reusable variable definitions plus the hydration pipeline that merges
// a template into a working variable.
package blueprint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is a stored blueprint: a partial variable document keyed by
// the same field names the dictionary uses.
type Template map[string]any

// Store merges two template tiers into one lookup table. The standard
// tier is a read-only YAML file shipped with the project; the user tier
// is a JSON file the tool writes. On id collision the user tier wins.
type Store struct {
	standardPath string
	userPath     string
}

// NewStore returns a store over the two backing files. Neither file
// needs to exist yet.
func NewStore(standardPath, userPath string) *Store {
	return &Store{standardPath: standardPath, userPath: userPath}
}

type standardFile struct {
	Templates map[string]Template `yaml:"templates"`
}

type userFile struct {
	UserTemplates map[string]Template `json:"user_templates"`
}

// All returns the merged template table. A missing or malformed user
// file degrades to empty so a corrupt library never blocks the tool;
// the standard file, being project-shipped, still reports parse errors.
func (s *Store) All() (map[string]Template, error) {
	merged := map[string]Template{}

	if raw, err := os.ReadFile(s.standardPath); err == nil {
		var std standardFile
		if err := yaml.Unmarshal(raw, &std); err != nil {
			return nil, fmt.Errorf("parse standard templates %s: %w", s.standardPath, err)
		}
		for id, tpl := range std.Templates {
			merged[id] = tpl
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read standard templates: %w", err)
	}

	for id, tpl := range s.loadUser().UserTemplates {
		merged[id] = tpl
	}
	return merged, nil
}

// List returns the sorted ids of every available template.
func (s *Store) List() ([]string, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Load returns one template by id, or (nil, false) when absent.
func (s *Store) Load(id string) (Template, bool, error) {
	all, err := s.All()
	if err != nil {
		return nil, false, err
	}
	tpl, ok := all[id]
	return tpl, ok, nil
}

// Save writes a template into the user tier under a slugified id. The
// identity fields are stripped so the saved blueprint stays generic,
// and the human-readable name is kept as label.
func (s *Store) Save(name string, doc Template) (string, error) {
	tpl := Template{}
	for k, v := range doc {
		tpl[k] = v
	}
	delete(tpl, "name")
	delete(tpl, "alias")
	delete(tpl, "description")
	tpl["label"] = name

	data := s.loadUser()
	if data.UserTemplates == nil {
		data.UserTemplates = map[string]Template{}
	}
	id := Slugify(name)
	data.UserTemplates[id] = tpl

	if err := s.writeUser(data); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a user-tier template. Standard-tier templates are
// immutable; deleting one reports false.
func (s *Store) Delete(id string) (bool, error) {
	data := s.loadUser()
	if _, ok := data.UserTemplates[id]; !ok {
		return false, nil
	}
	delete(data.UserTemplates, id)
	if err := s.writeUser(data); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) loadUser() userFile {
	var data userFile
	raw, err := os.ReadFile(s.userPath)
	if err != nil {
		return data
	}
	// corrupt user libraries degrade to empty rather than failing
	_ = json.Unmarshal(raw, &data)
	return data
}

func (s *Store) writeUser(data userFile) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user templates: %w", err)
	}
	if dir := filepath.Dir(s.userPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create template dir: %w", err)
		}
	}
	if err := os.WriteFile(s.userPath, raw, 0644); err != nil {
		return fmt.Errorf("write user templates: %w", err)
	}
	return nil
}

// Slugify lowers a template name and keeps only letters, digits,
// spaces, and underscores, then joins words with underscores.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(' ')
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}
