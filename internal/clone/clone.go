// Package clone derives new variables from committed ones, either a
// single copy with a fresh identity or a bulk run of prefixed and
// suffixed variants.
package clone

import (
	"fmt"
	"strings"

	"github.com/forgeworks-labs/dictforge/internal/ledger"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// Identity is the replacement name block for a direct clone.
type Identity struct {
	Name        string
	Alias       string
	Description string
}

// Inherit selects which parts of the source survive into a direct
// clone. Constraints and the rest of the technical metadata travel
// with Technical; Governance carries the compliance block.
type Inherit struct {
	Technical  bool
	Governance bool
}

// Direct builds one clone of src with a new identity and appends it to
// the ledger. The name must be non-blank and unused.
func Direct(l *ledger.Ledger, src *variable.Variable, id Identity, inherit Inherit) (*variable.Variable, error) {
	name := strings.TrimSpace(id.Name)
	if name == "" {
		return nil, fmt.Errorf("clone: name is required")
	}
	if l.IndexOf(name) >= 0 {
		return nil, fmt.Errorf("clone: %q already exists in the dictionary", name)
	}

	out := &variable.Variable{
		Name:        name,
		Alias:       strings.TrimSpace(id.Alias),
		Description: strings.TrimSpace(id.Description),
	}
	if inherit.Technical {
		out.AnalyticalType = src.AnalyticalType
		out.DataType = src.DataType
		out.Role = src.Role
		full := src.Clone()
		out.Constraints = full.Constraints
		out.Cleaning = full.Cleaning
		out.DatabaseMapping = full.DatabaseMapping
	}
	if inherit.Governance {
		out.Governance = src.Clone().Governance
	}

	l.Append(out)
	return out, nil
}

// Bulk appends count full copies of src named prefix+name+suffix, with
// a _N counter appended when more than one is generated. Any name that
// would collide with an existing entry fails the whole run before
// anything is appended.
func Bulk(l *ledger.Ledger, src *variable.Variable, prefix, suffix string, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("clone: count must be at least 1")
	}

	names := make([]string, count)
	for i := range names {
		name := prefix + src.Name + suffix
		if count > 1 {
			name = fmt.Sprintf("%s_%d", name, i+1)
		}
		if l.IndexOf(name) >= 0 {
			return nil, fmt.Errorf("clone: %q already exists in the dictionary", name)
		}
		names[i] = name
	}

	for _, name := range names {
		out := src.Clone()
		out.Name = name
		l.Append(out)
	}
	return names, nil
}
