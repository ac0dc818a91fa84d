// Package cascade applies one metadata patch across many variables at
// once, re-deriving type coherence and pruning fields the new types no
// longer admit.
package cascade

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/forgeworks-labs/dictforge/internal/ledger"
	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// ErrNothingToDo is returned when a run has no targets or an empty patch.
var ErrNothingToDo = errors.New("cascade: nothing to do")

// Patch is the set of edits to broadcast. Root holds identity-level
// fields (analytical_type, data_type, role, description, ...); Nested
// holds per-section overrides keyed by section name.
type Patch struct {
	Root   map[string]any
	Nested map[string]map[string]any
}

// IsEmpty reports whether the patch carries no edits at all.
func (p Patch) IsEmpty() bool {
	if len(p.Root) > 0 {
		return false
	}
	for _, section := range p.Nested {
		if len(section) > 0 {
			return false
		}
	}
	return true
}

// Result is the outcome for a single target. Updated is a detached
// copy; the source ledger is untouched until Commit.
type Result struct {
	Index   int
	Updated *variable.Variable
	Pruned  []string
}

// Report groups the per-target results of one run.
type Report struct {
	ID      string
	Results []Result
}

// TotalPruned counts pruned keys across all targets.
func (r *Report) TotalPruned() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Pruned)
	}
	return n
}

// Run applies patch to each variable of l named by indexes and returns
// the patched clones together with what pruning removed. It never
// mutates the ledger: callers inspect the report and then Commit.
func Run(l *ledger.Ledger, indexes []int, patch Patch) (*Report, error) {
	if len(indexes) == 0 || patch.IsEmpty() {
		return nil, ErrNothingToDo
	}

	report := &Report{ID: uuid.NewString()}
	for _, i := range indexes {
		src, err := l.At(i)
		if err != nil {
			return nil, fmt.Errorf("cascade target %d: %w", i, err)
		}
		updated, pruned := apply(src, patch)
		report.Results = append(report.Results, Result{Index: i, Updated: updated, Pruned: pruned})
	}
	return report, nil
}

// Commit writes a report's patched variables back into the session's
// ledger. It is separate from Run so callers can preview the pruning
// before accepting it.
func Commit(s *ledger.Session, report *Report) error {
	for _, res := range report.Results {
		if err := s.Ledger().ReplaceAt(res.Index, res.Updated); err != nil {
			return fmt.Errorf("cascade commit: %w", err)
		}
	}
	return nil
}

func apply(src *variable.Variable, patch Patch) (*variable.Variable, []string) {
	v := src.Clone()

	applyRoot(v, patch.Root)
	for name, fields := range patch.Nested {
		if len(fields) == 0 {
			continue
		}
		section := v.EnsureSection(name)
		for k, val := range fields {
			section[k] = val
		}
	}

	return v, prune(v)
}

func applyRoot(v *variable.Variable, root map[string]any) {
	for key, val := range root {
		switch key {
		case "analytical_type":
			v.AnalyticalType = taxonomy.AnalyticalType(asString(val))
		case "data_type":
			v.DataType = taxonomy.DataType(asString(val))
		case "role":
			v.Role = taxonomy.Role(asString(val))
		case "alias":
			v.Alias = asString(val)
		case "description":
			v.Description = asString(val)
		}
	}
}

// prune recomputes coherence for the variable's current types and
// strips every metadata key the visibility rules now suppress. Blank
// types fall back to the continuous/float64 defaults so a partially
// typed variable is still judged by real rules.
func prune(v *variable.Variable) []string {
	at := v.AnalyticalType
	if at == "" {
		at = taxonomy.Continuous
	}
	dt := v.DataType
	if dt == "" {
		dt = taxonomy.Float64
	}

	var pruned []string
	for _, name := range variable.MetadataSections() {
		section := v.Section(name)
		for key := range section {
			if keepKey(key, at, dt) {
				continue
			}
			delete(section, key)
			pruned = append(pruned, name+"."+key)
		}
	}
	sort.Strings(pruned)
	return pruned
}

// Audit reports the metadata keys the visibility rules suppress for the
// variable's current types, without modifying it. A non-empty result
// means a re-typed variable is carrying stale metadata.
func Audit(v *variable.Variable) []string {
	return prune(v.Clone())
}

func keepKey(key string, at taxonomy.AnalyticalType, dt taxonomy.DataType) bool {
	if key == "allowed_values" || key == "ordinal_mapping" {
		if variable.IsCategoricalContext(at, dt) {
			return key == "allowed_values" || at == taxonomy.Ordinal
		}
	}
	return taxonomy.IsFieldVisible(key, at, dt)
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
