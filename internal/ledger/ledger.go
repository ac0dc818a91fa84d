// Package ledger holds the ordered collection of committed variables and
// the editing session that owns it.
package ledger

import (
	"fmt"

	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// IndexError reports a ledger position out of range. It is a caller bug,
// never surfaced to end users, and never corrupts ledger order.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("ledger index %d out of range (len %d)", e.Index, e.Len)
}

// Ledger is the ordered sequence of committed variables. Insertion order
// is preserved and positions are stable until a removal shifts them.
type Ledger struct {
	vars []*variable.Variable
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// FromVariables builds a ledger over an existing slice, taking ownership.
func FromVariables(vars []*variable.Variable) *Ledger {
	return &Ledger{vars: vars}
}

// Len returns the number of committed variables.
func (l *Ledger) Len() int {
	return len(l.vars)
}

// Append adds a variable at the end.
func (l *Ledger) Append(v *variable.Variable) {
	l.vars = append(l.vars, v)
}

// At returns the variable at the given position.
func (l *Ledger) At(i int) (*variable.Variable, error) {
	if i < 0 || i >= len(l.vars) {
		return nil, &IndexError{Index: i, Len: len(l.vars)}
	}
	return l.vars[i], nil
}

// ReplaceAt swaps the variable at the given position.
func (l *Ledger) ReplaceAt(i int, v *variable.Variable) error {
	if i < 0 || i >= len(l.vars) {
		return &IndexError{Index: i, Len: len(l.vars)}
	}
	l.vars[i] = v
	return nil
}

// RemoveAt deletes the variable at the given position. Positions after it
// shift down by one; callers holding larger indices must decrement them.
func (l *Ledger) RemoveAt(i int) error {
	if i < 0 || i >= len(l.vars) {
		return &IndexError{Index: i, Len: len(l.vars)}
	}
	l.vars = append(l.vars[:i], l.vars[i+1:]...)
	return nil
}

// All returns the committed variables in order. The slice is a copy; the
// variables are the live entries.
func (l *Ledger) All() []*variable.Variable {
	out := make([]*variable.Variable, len(l.vars))
	copy(out, l.vars)
	return out
}

// IndexOf returns the position of the variable with the given name, or -1.
func (l *Ledger) IndexOf(name string) int {
	for i, v := range l.vars {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// Names returns all committed variable names in order.
func (l *Ledger) Names() []string {
	out := make([]string, len(l.vars))
	for i, v := range l.vars {
		out[i] = v.Name
	}
	return out
}
