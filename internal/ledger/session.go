package ledger

import (
	"fmt"
	"strings"

	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// noEdit marks a session with no active ledger edit.
const noEdit = -1

// Session owns the mutable state of one authoring sitting: the committed
// ledger, the transient working buffer, the pending-name queue, and the
// position of the entry being edited, if any. There is exactly one writer
// by construction, so no locking.
type Session struct {
	ledger  *Ledger
	buffer  *variable.Variable
	pending []string
	editing int
}

// NewSession starts a session over the given ledger (nil for empty).
func NewSession(l *Ledger) *Session {
	if l == nil {
		l = New()
	}
	return &Session{ledger: l, editing: noEdit}
}

// Ledger exposes the committed collection.
func (s *Session) Ledger() *Ledger {
	return s.ledger
}

// Buffer returns the current working buffer, or nil when none is open.
func (s *Session) Buffer() *variable.Variable {
	return s.buffer
}

// SetBuffer replaces the working buffer wholesale (hydration path).
func (s *Session) SetBuffer(v *variable.Variable) {
	s.buffer = v
}

// BeginEdit opens the ledger entry at the given position as the working
// buffer. The buffer is a deep copy: the committed entry stays untouched
// until Commit.
func (s *Session) BeginEdit(i int) error {
	v, err := s.ledger.At(i)
	if err != nil {
		return err
	}
	s.buffer = v.Clone()
	s.editing = i
	return nil
}

// Editing returns the ledger position under edit and whether one is open.
func (s *Session) Editing() (int, bool) {
	if s.editing == noEdit {
		return 0, false
	}
	return s.editing, true
}

// Discard drops the working buffer and any edit position without touching
// the ledger. This is the cancellation contract.
func (s *Session) Discard() {
	s.buffer = nil
	s.editing = noEdit
}

// Commit validates the working buffer and writes it to the ledger: a
// replace when an edit is open, an append otherwise. Name uniqueness is
// enforced at commit time, not continuously. The buffer is consumed.
func (s *Session) Commit() error {
	if s.buffer == nil {
		return fmt.Errorf("no working buffer to commit")
	}
	if err := variable.Validate(s.buffer); err != nil {
		return err
	}

	if s.editing != noEdit {
		if dup := s.ledger.IndexOf(s.buffer.Name); dup >= 0 && dup != s.editing {
			return &variable.ValidationError{Field: "name", Message: fmt.Sprintf("%q already exists in dictionary", s.buffer.Name)}
		}
		if err := s.ledger.ReplaceAt(s.editing, s.buffer); err != nil {
			return err
		}
	} else {
		if s.ledger.IndexOf(s.buffer.Name) >= 0 {
			return &variable.ValidationError{Field: "name", Message: fmt.Sprintf("%q already exists in dictionary", s.buffer.Name)}
		}
		s.ledger.Append(s.buffer)
	}

	s.buffer = nil
	s.editing = noEdit
	return nil
}

// Delete removes the ledger entry at the given position, keeping any open
// edit position in sync: editing the deleted entry cancels the edit, and
// an edit past it shifts down with the entries.
func (s *Session) Delete(i int) error {
	if err := s.ledger.RemoveAt(i); err != nil {
		return err
	}
	switch {
	case s.editing == i:
		s.Discard()
	case s.editing > i:
		s.editing--
	}
	return nil
}

// Pending returns the queue of names awaiting definition.
func (s *Session) Pending() []string {
	out := make([]string, len(s.pending))
	copy(out, s.pending)
	return out
}

// Enqueue adds names to the pending queue, skipping blanks, names already
// queued, and names already committed. Returns how many were added.
func (s *Session) Enqueue(names []string) int {
	queued := map[string]bool{}
	for _, n := range s.pending {
		queued[n] = true
	}

	added := 0
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || queued[name] || s.ledger.IndexOf(name) >= 0 {
			continue
		}
		s.pending = append(s.pending, name)
		queued[name] = true
		added++
	}
	return added
}

// TakePending removes and returns the named entry from the queue,
// reporting whether it was queued.
func (s *Session) TakePending(name string) bool {
	for i, n := range s.pending {
		if n == name {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// ClearPending empties the queue.
func (s *Session) ClearPending() {
	s.pending = nil
}
