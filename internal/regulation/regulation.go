// Package regulation holds the compliance framework catalog the
// governance section draws its compliance_scope options from.
package regulation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Regulation is one compliance framework fact sheet.
type Regulation struct {
	FullName     string `yaml:"full_name"`
	Jurisdiction string `yaml:"jurisdiction"`
	Description  string `yaml:"description,omitempty"`
	URL          string `yaml:"url,omitempty"`
}

// Store is a whole-file YAML catalog keyed by framework abbreviation.
type Store struct {
	path string
	regs map[string]Regulation
}

// Defaults returns the seeded catalog used when no file exists yet.
func Defaults() map[string]Regulation {
	return map[string]Regulation{
		"GDPR": {
			FullName:     "General Data Protection Regulation",
			Jurisdiction: "European Union",
			Description:  "Governs personal data processing, portability, and the right to be forgotten.",
			URL:          "https://eur-lex.europa.eu/eli/reg/2016/679/oj",
		},
		"LOPDGDD": {
			FullName:     "Ley Orgánica de Protección de Datos y Garantía de los Derechos Digitales",
			Jurisdiction: "Spain",
			Description:  "Spanish implementation of GDPR with additional digital rights protections.",
			URL:          "https://www.boe.es/eli/es/lo/2018/12/05/3",
		},
		"ENS": {
			FullName:     "Esquema Nacional de Seguridad",
			Jurisdiction: "Spain",
			Description:  "Mandatory security framework for Spanish public sector providers.",
			URL:          "https://ens.ccn.cni.es/",
		},
		"LSSI-CE": {
			FullName:     "Ley de Servicios de la Sociedad de la Información y Comercio Electrónico",
			Jurisdiction: "Spain",
			Description:  "Regulates e-commerce and cookie consent in Spain.",
			URL:          "https://www.boe.es/eli/es/l/2002/07/11/34",
		},
		"PBC/FT": {
			FullName:     "Prevención de Blanqueo de Capitales y Financiación del Terrorismo",
			Jurisdiction: "Spain",
			Description:  "Anti-money-laundering compliance standards for financial and real estate data.",
			URL:          "https://www.boe.es/eli/es/l/2010/04/28/10",
		},
		"BdE Circulars": {
			FullName:     "Banco de España Circulars",
			Jurisdiction: "Spain",
			Description:  "Financial reporting and security standards issued by Banco de España.",
			URL:          "https://www.bde.es/",
		},
	}
}

// Open loads the catalog at path. A missing file seeds the defaults;
// a malformed file degrades to the defaults as well, since the catalog
// is an optional user store.
func Open(path string) *Store {
	s := &Store{path: path, regs: Defaults()}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var loaded map[string]Regulation
	if err := yaml.Unmarshal(raw, &loaded); err != nil || loaded == nil {
		return s
	}
	s.regs = loaded
	return s
}

// Abbreviations returns the sorted framework keys.
func (s *Store) Abbreviations() []string {
	out := make([]string, 0, len(s.regs))
	for abbr := range s.regs {
		out = append(out, abbr)
	}
	sort.Strings(out)
	return out
}

// Get returns one framework by abbreviation.
func (s *Store) Get(abbr string) (Regulation, bool) {
	r, ok := s.regs[abbr]
	return r, ok
}

// Upsert adds or replaces a framework and persists the catalog.
func (s *Store) Upsert(abbr string, r Regulation) error {
	s.regs[abbr] = r
	return s.save()
}

// Delete removes a framework. Returns false when it was not present.
func (s *Store) Delete(abbr string) (bool, error) {
	if _, ok := s.regs[abbr]; !ok {
		return false, nil
	}
	delete(s.regs, abbr)
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) save() error {
	raw, err := yaml.Marshal(s.regs)
	if err != nil {
		return fmt.Errorf("encode regulations: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create regulations dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("write regulations: %w", err)
	}
	return nil
}
