package internal

import (
	"fmt"
	"time"
)

// NoteStore holds every note on the board in insertion order.
//
// Mutations never modify a slice that has been handed out: each one builds
// a fresh slice and swaps it in, so a snapshot returned by All or
// NotesBySession stays stable for the presentation layer.
type NoteStore struct {
	notes  []Note
	lastID int64
	now    func() time.Time
}

// NewNoteStore creates an empty note store
func NewNoteStore() *NoteStore {
	return &NoteStore{now: time.Now}
}

// SetClock replaces the time source used to mint note identities
func (s *NoteStore) SetClock(now func() time.Time) {
	s.now = now
}

// nextID returns a creation-time identity that is strictly greater than
// every identity handed out before.
func (s *NoteStore) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// AddNote creates a note whose top-left corner is at (ax, ay) with the
// default size, marks it as the only selected note and appends it.
func (s *NoteStore) AddNote(vp Viewport, session SessionID, ax, ay float64, content, brief string, isAI bool) (Note, error) {
	abs := Point{X: ax, Y: ay}
	rel, ok := ToRelative(abs, DefaultNoteSize, vp)
	if !ok {
		return Note{}, ErrViewportNotReady
	}
	if !abs.Finite() {
		return Note{}, fmt.Errorf("%w: position (%v, %v)", ErrInvalidGeometry, ax, ay)
	}

	note := Note{
		ID:       s.nextID(),
		AX:       ax,
		AY:       ay,
		RX:       rel.X,
		RY:       rel.Y,
		Width:    DefaultNoteSize.Width,
		Height:   DefaultNoteSize.Height,
		Content:  content,
		Selected: true,
		Brief:    brief,
		IsAI:     isAI,
		Session:  session,
	}

	next := make([]Note, 0, len(s.notes)+1)
	for _, n := range s.notes {
		n.Selected = false
		next = append(next, n)
	}
	s.notes = append(next, note)
	return note, nil
}

// UpdatePosition stores a new geometry for a note after a drag or resize.
// The relative position is recomputed from the box centre.
func (s *NoteStore) UpdatePosition(vp Viewport, id int64, ax, ay, width, height float64) (Note, error) {
	abs := Point{X: ax, Y: ay}
	size := Size{Width: width, Height: height}
	rel, ok := ToRelative(abs, size, vp)
	if !ok {
		return Note{}, ErrViewportNotReady
	}
	if !abs.Finite() {
		return Note{}, fmt.Errorf("%w: position (%v, %v)", ErrInvalidGeometry, ax, ay)
	}
	if !size.Valid() {
		return Note{}, fmt.Errorf("%w: size %vx%v", ErrInvalidGeometry, width, height)
	}
	return s.update(id, func(n *Note) error {
		if n.Locked {
			return ErrNoteLocked
		}
		n.AX, n.AY = abs.X, abs.Y
		n.RX, n.RY = rel.X, rel.Y
		n.Width, n.Height = size.Width, size.Height
		return nil
	})
}

// ApplyPlacement moves a note to a suggested relative position and records
// why. The note becomes AI-placed.
func (s *NoteStore) ApplyPlacement(vp Viewport, id int64, rx, ry float64, brief string) (Note, error) {
	if !vp.Measured() {
		return Note{}, ErrViewportNotReady
	}
	if rel := (Point{X: rx, Y: ry}); !rel.Finite() || !InGrid(rel) {
		return Note{}, fmt.Errorf("%w: relative position (%v, %v)", ErrInvalidGeometry, rx, ry)
	}
	return s.update(id, func(n *Note) error {
		if n.Locked {
			return ErrNoteLocked
		}
		abs, _ := ToAbsolute(Point{X: rx, Y: ry}, n.Size(), vp)
		n.AX, n.AY = abs.X, abs.Y
		n.RX, n.RY = rx, ry
		n.IsAI = true
		n.Brief = brief
		return nil
	})
}

// EditContent overwrites the note text. Any human edit revokes AI
// provenance, even when the text is unchanged.
func (s *NoteStore) EditContent(id int64, content string) (Note, error) {
	return s.update(id, func(n *Note) error {
		n.Content = content
		n.IsAI = false
		return nil
	})
}

// SetLocked toggles the locked flag
func (s *NoteStore) SetLocked(id int64, locked bool) (Note, error) {
	return s.update(id, func(n *Note) error {
		n.Locked = locked
		return nil
	})
}

// DeleteNote removes a note and returns it
func (s *NoteStore) DeleteNote(id int64) (Note, error) {
	idx := s.index(id)
	if idx < 0 {
		return Note{}, ErrNoteNotFound
	}
	removed := s.notes[idx]
	next := make([]Note, 0, len(s.notes)-1)
	next = append(next, s.notes[:idx]...)
	next = append(next, s.notes[idx+1:]...)
	s.notes = next
	return removed, nil
}

// RecomputeAbsolute re-projects every note from its relative position for
// the given viewport. It reports whether any absolute position changed, so
// a second call with the same dimensions returns false.
func (s *NoteStore) RecomputeAbsolute(vp Viewport) bool {
	if !vp.Measured() {
		return false
	}
	changed := false
	next := make([]Note, len(s.notes))
	for i, n := range s.notes {
		abs, _ := ToAbsolute(n.Relative(), n.Size(), vp)
		if abs.X != n.AX || abs.Y != n.AY {
			changed = true
		}
		n.AX, n.AY = abs.X, abs.Y
		next[i] = n
	}
	if changed {
		s.notes = next
	}
	return changed
}

// MarkSelected sets the selected flag on the note with the given id and
// clears it everywhere else. A zero id clears every flag.
func (s *NoteStore) MarkSelected(id int64) {
	next := make([]Note, len(s.notes))
	for i, n := range s.notes {
		n.Selected = id != 0 && n.ID == id
		next[i] = n
	}
	s.notes = next
}

// Get returns the note with the given id
func (s *NoteStore) Get(id int64) (Note, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Note{}, false
	}
	return s.notes[idx], true
}

// All returns every note in insertion order
func (s *NoteStore) All() []Note {
	return s.notes
}

// NotesBySession returns the notes tagged with a session, in insertion order
func (s *NoteStore) NotesBySession(session SessionID) []Note {
	out := make([]Note, 0)
	for _, n := range s.notes {
		if n.Session == session {
			out = append(out, n)
		}
	}
	return out
}

// CountBySession returns the number of notes tagged with a session
func (s *NoteStore) CountBySession(session SessionID) int {
	count := 0
	for _, n := range s.notes {
		if n.Session == session {
			count++
		}
	}
	return count
}

// Len returns the total number of notes
func (s *NoteStore) Len() int {
	return len(s.notes)
}

// Restore replaces the store contents with previously persisted notes
func (s *NoteStore) Restore(notes []Note) {
	next := make([]Note, len(notes))
	copy(next, notes)
	s.notes = next
	s.lastID = 0
	for _, n := range next {
		if n.ID > s.lastID {
			s.lastID = n.ID
		}
	}
}

func (s *NoteStore) index(id int64) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *NoteStore) update(id int64, fn func(n *Note) error) (Note, error) {
	idx := s.index(id)
	if idx < 0 {
		return Note{}, ErrNoteNotFound
	}
	updated := s.notes[idx]
	if err := fn(&updated); err != nil {
		return Note{}, err
	}
	next := make([]Note, len(s.notes))
	copy(next, s.notes)
	next[idx] = updated
	s.notes = next
	return updated, nil
}
