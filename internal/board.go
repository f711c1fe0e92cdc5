package internal

import (
	"fmt"
	"sync"
	"time"
)

// ChangeKind names a board mutation
type ChangeKind string

const (
	ChangeNoteAdded      ChangeKind = "note_added"
	ChangeNoteUpdated    ChangeKind = "note_updated"
	ChangeNoteDeleted    ChangeKind = "note_deleted"
	ChangeSessionAdded   ChangeKind = "session_added"
	ChangeSessionUpdated ChangeKind = "session_updated"
	ChangeActiveSession  ChangeKind = "active_session"
	ChangeSelection      ChangeKind = "selection"
	ChangeViewport       ChangeKind = "viewport"
	ChangeAxisLabels     ChangeKind = "axis_labels"
	ChangeRestored       ChangeKind = "restored"
)

// Change describes one mutation, delivered to subscribers after the board
// lock is released
type Change struct {
	Kind    ChangeKind `json:"kind"`
	NoteID  int64      `json:"note_id,omitempty"`
	Session SessionID  `json:"session"`
}

// Hotkey is a keyboard command understood by the board
type Hotkey string

const (
	HotkeyCancel Hotkey = "Escape"
	HotkeyDelete Hotkey = "Meta+Backspace"
	HotkeyEdit   Hotkey = "Meta+Enter"
)

// State is the persisted form of a board
type State struct {
	Notes         []Note     `json:"notes"`
	Sessions      []Session  `json:"sessions"`
	ActiveSession *SessionID `json:"active_session"`
	AxisLabels    AxisLabels `json:"axis_labels"`
}

// Board is the state container for one board. It owns the note and session
// stores, the selection and the axis labels, and funnels every mutation
// through the store operations. It is safe for concurrent use; concurrent
// writers are last-write-wins.
type Board struct {
	mu        sync.Mutex
	viewport  Viewport
	notes     *NoteStore
	sessions  *SessionStore
	selection Selection
	labels    AxisLabels
	now       func() time.Time

	subMu       sync.RWMutex
	subscribers []func(Change)
}

// NewBoard creates an empty board with default axis labels
func NewBoard() *Board {
	return &Board{
		notes:    NewNoteStore(),
		sessions: NewSessionStore(),
		labels:   DefaultAxisLabels(),
		now:      time.Now,
	}
}

// SetClock replaces the time source for note ids and session timestamps
func (b *Board) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
	b.notes.SetClock(now)
}

// Subscribe registers fn to be called after every mutation
func (b *Board) Subscribe(fn func(Change)) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

func (b *Board) emit(changes ...Change) {
	b.subMu.RLock()
	subs := b.subscribers
	b.subMu.RUnlock()
	for _, c := range changes {
		for _, fn := range subs {
			fn(c)
		}
	}
}

// Viewport returns the last measured canvas size
func (b *Board) Viewport() Viewport {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewport
}

// Resize records new canvas dimensions and re-projects every note from its
// relative position
func (b *Board) Resize(vp Viewport) bool {
	b.mu.Lock()
	sameSize := b.viewport == vp
	b.viewport = vp
	moved := b.notes.RecomputeAbsolute(vp)
	b.mu.Unlock()

	if sameSize && !moved {
		return false
	}
	LogDebug("viewport resized to %.0fx%.0f (notes moved: %v)", vp.Width, vp.Height, moved)
	b.emit(Change{Kind: ChangeViewport})
	return true
}

// AddSession creates a session with the default title
func (b *Board) AddSession() Session {
	b.mu.Lock()
	session := b.sessions.AddSession(b.now())
	b.mu.Unlock()

	LogDebug("session %d created", session.ID)
	b.emit(Change{Kind: ChangeSessionAdded, Session: session.ID})
	return session
}

// SetActiveSession switches the active session and clears the selection,
// whose notes belong to the previous session
func (b *Board) SetActiveSession(id SessionID) error {
	b.mu.Lock()
	if err := b.sessions.SetActive(id); err != nil {
		b.mu.Unlock()
		return fmt.Errorf("activate session %d: %w", id, err)
	}
	b.selection.Clear()
	b.notes.MarkSelected(0)
	b.mu.Unlock()

	b.emit(Change{Kind: ChangeActiveSession, Session: id})
	return nil
}

// RenameSession sets the title of a session
func (b *Board) RenameSession(id SessionID, title string) (Session, error) {
	b.mu.Lock()
	session, err := b.sessions.SetTitle(id, title)
	b.mu.Unlock()
	if err != nil {
		return Session{}, fmt.Errorf("rename session %d: %w", id, err)
	}

	b.emit(Change{Kind: ChangeSessionUpdated, Session: id})
	return session, nil
}

// ActiveSession returns the active session
func (b *Board) ActiveSession() (Session, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions.Active()
}

// Session returns a session by id
func (b *Board) Session(id SessionID) (Session, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions.Get(id)
}

// Sessions lists every session with its derived note count
func (b *Board) Sessions() []SessionSummary {
	b.mu.Lock()
	defer b.mu.Unlock()

	active, hasActive := b.sessions.ActiveID()
	all := b.sessions.All()
	out := make([]SessionSummary, 0, len(all))
	for _, s := range all {
		out = append(out, SessionSummary{
			Session:   s,
			NoteCount: b.notes.CountBySession(s.ID),
			Active:    hasActive && s.ID == active,
		})
	}
	return out
}

// AddNote creates a note with its top-left corner at (ax, ay) in the active
// session, selects it and opens it for editing
func (b *Board) AddNote(ax, ay float64, content, brief string, isAI bool) (Note, error) {
	b.mu.Lock()
	note, err := b.addNoteLocked(ax, ay, content, brief, isAI)
	b.mu.Unlock()
	if err != nil {
		return Note{}, err
	}

	LogDebug("note %d added to session %d", note.ID, note.Session)
	b.emit(Change{Kind: ChangeNoteAdded, NoteID: note.ID, Session: note.Session})
	return note, nil
}

// AddNoteAt creates a default-size note centred on a relative grid point
func (b *Board) AddNoteAt(rel Point, content, brief string, isAI bool) (Note, error) {
	b.mu.Lock()
	abs, ok := ToAbsolute(rel, DefaultNoteSize, b.viewport)
	if !ok {
		b.mu.Unlock()
		return Note{}, ErrViewportNotReady
	}
	note, err := b.addNoteLocked(abs.X, abs.Y, content, brief, isAI)
	b.mu.Unlock()
	if err != nil {
		return Note{}, err
	}

	LogDebug("note %d placed at (%.2f, %.2f)", note.ID, rel.X, rel.Y)
	b.emit(Change{Kind: ChangeNoteAdded, NoteID: note.ID, Session: note.Session})
	return note, nil
}

func (b *Board) addNoteLocked(ax, ay float64, content, brief string, isAI bool) (Note, error) {
	if !b.viewport.Measured() {
		return Note{}, ErrViewportNotReady
	}
	session, ok := b.sessions.ActiveID()
	if !ok {
		return Note{}, ErrNoActiveSession
	}
	note, err := b.notes.AddNote(b.viewport, session, ax, ay, content, brief, isAI)
	if err != nil {
		return Note{}, err
	}
	b.selection.Place(note.ID)
	return note, nil
}

// UpdatePosition stores the geometry of a note after a drag or resize
func (b *Board) UpdatePosition(id int64, ax, ay, width, height float64) (Note, error) {
	return b.mutateNote(func() (Note, error) {
		return b.notes.UpdatePosition(b.viewport, id, ax, ay, width, height)
	})
}

// ApplyPlacement moves a note to a suggested relative position
func (b *Board) ApplyPlacement(id int64, rx, ry float64, brief string) (Note, error) {
	return b.mutateNote(func() (Note, error) {
		return b.notes.ApplyPlacement(b.viewport, id, rx, ry, brief)
	})
}

// EditContent overwrites the text of a note
func (b *Board) EditContent(id int64, content string) (Note, error) {
	return b.mutateNote(func() (Note, error) {
		return b.notes.EditContent(id, content)
	})
}

// SetLocked locks or unlocks a note
func (b *Board) SetLocked(id int64, locked bool) (Note, error) {
	return b.mutateNote(func() (Note, error) {
		return b.notes.SetLocked(id, locked)
	})
}

func (b *Board) mutateNote(fn func() (Note, error)) (Note, error) {
	b.mu.Lock()
	note, err := fn()
	b.mu.Unlock()
	if err != nil {
		return Note{}, err
	}
	b.emit(Change{Kind: ChangeNoteUpdated, NoteID: note.ID, Session: note.Session})
	return note, nil
}

// DeleteNote removes a note. Deleting the selected or edited note empties
// that slot; any other selection is left alone.
func (b *Board) DeleteNote(id int64) (Note, error) {
	b.mu.Lock()
	note, err := b.notes.DeleteNote(id)
	if err == nil {
		b.selection.Forget(id)
	}
	b.mu.Unlock()
	if err != nil {
		return Note{}, err
	}

	LogDebug("note %d deleted", id)
	b.emit(Change{Kind: ChangeNoteDeleted, NoteID: id, Session: note.Session})
	return note, nil
}

// Note returns a note by id
func (b *Board) Note(id int64) (Note, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notes.Get(id)
}

// Notes returns every note on the board in insertion order
func (b *Board) Notes() []Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notes.All()
}

// NotesBySession returns the notes of one session in insertion order
func (b *Board) NotesBySession(id SessionID) []Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notes.NotesBySession(id)
}

// ActiveNotes returns the notes of the active session
func (b *Board) ActiveNotes() []Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.sessions.ActiveID()
	if !ok {
		return []Note{}
	}
	return b.notes.NotesBySession(id)
}

// Select makes id the only selected note
func (b *Board) Select(id int64) error {
	b.mu.Lock()
	if _, ok := b.notes.Get(id); !ok {
		b.mu.Unlock()
		return ErrNoteNotFound
	}
	b.selection.Select(id)
	b.notes.MarkSelected(id)
	b.mu.Unlock()

	b.emit(Change{Kind: ChangeSelection, NoteID: id})
	return nil
}

// Edit opens a note for text editing
func (b *Board) Edit(id int64) error {
	b.mu.Lock()
	if _, ok := b.notes.Get(id); !ok {
		b.mu.Unlock()
		return ErrNoteNotFound
	}
	b.selection.Edit(id)
	b.mu.Unlock()

	b.emit(Change{Kind: ChangeSelection, NoteID: id})
	return nil
}

// Blur leaves edit mode and keeps the edited note selected
func (b *Board) Blur() {
	b.mu.Lock()
	b.selection.Blur()
	b.notes.MarkSelected(b.selection.Selected)
	selected := b.selection.Selected
	b.mu.Unlock()

	b.emit(Change{Kind: ChangeSelection, NoteID: selected})
}

// Deselect clears the selection and leaves edit mode
func (b *Board) Deselect() {
	b.mu.Lock()
	b.selection.Clear()
	b.notes.MarkSelected(0)
	b.mu.Unlock()

	b.emit(Change{Kind: ChangeSelection})
}

// SelectAt selects the note of the active session under an absolute point,
// the one drawn last winning. Hitting empty canvas clears the selection and
// leaves edit mode.
func (b *Board) SelectAt(p Point) (Note, bool) {
	b.mu.Lock()
	var hit Note
	found := false
	if id, ok := b.sessions.ActiveID(); ok {
		notes := b.notes.NotesBySession(id)
		for i := len(notes) - 1; i >= 0; i-- {
			if notes[i].Bounds().Contains(p) {
				hit, found = notes[i], true
				break
			}
		}
	}
	if found {
		b.selection.Select(hit.ID)
		b.notes.MarkSelected(hit.ID)
		hit.Selected = true
	} else {
		b.selection.Clear()
		b.notes.MarkSelected(0)
	}
	b.mu.Unlock()

	b.emit(Change{Kind: ChangeSelection, NoteID: hit.ID})
	return hit, found
}

// Selection returns the current selection
func (b *Board) Selection() Selection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selection
}

// SelectedNote returns the note action menus operate on
func (b *Board) SelectedNote() (Note, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.selection.Focus()
	if !ok {
		return Note{}, false
	}
	return b.notes.Get(id)
}

// State returns the interaction state of a note
func (b *Board) State(id int64) NoteState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selection.State(id)
}

// HandleHotkey runs a keyboard command
func (b *Board) HandleHotkey(key Hotkey) error {
	switch key {
	case HotkeyCancel:
		b.Deselect()
		return nil
	case HotkeyDelete:
		sel := b.Selection()
		if sel.Selected == 0 {
			return ErrNothingSelected
		}
		_, err := b.DeleteNote(sel.Selected)
		return err
	case HotkeyEdit:
		sel := b.Selection()
		if sel.Selected == 0 {
			return ErrNothingSelected
		}
		return b.Edit(sel.Selected)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, key)
	}
}

// AxisLabels returns the current axis labels
func (b *Board) AxisLabels() AxisLabels {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.labels
}

// SetAxisLabels replaces the axis labels
func (b *Board) SetAxisLabels(labels AxisLabels) {
	b.mu.Lock()
	b.labels = labels
	b.mu.Unlock()

	b.emit(Change{Kind: ChangeAxisLabels})
}

// Document collects a session, the axis labels and its notes
func (b *Board) Document(id SessionID) (SessionDocument, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	session, ok := b.sessions.Get(id)
	if !ok {
		return SessionDocument{}, ErrSessionNotFound
	}
	return SessionDocument{
		Session:    session,
		AxisLabels: b.labels,
		Notes:      b.notes.NotesBySession(id),
	}, nil
}

// Snapshot returns the persistable board state
func (b *Board) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := State{
		Notes:      b.notes.All(),
		Sessions:   b.sessions.All(),
		AxisLabels: b.labels,
	}
	if id, ok := b.sessions.ActiveID(); ok {
		state.ActiveSession = &id
	}
	return state
}

// Restore replaces the board contents with a persisted state. Absolute
// positions are re-projected when a viewport is already known.
func (b *Board) Restore(state State) {
	b.mu.Lock()
	b.notes.Restore(state.Notes)
	b.sessions.Restore(state.Sessions, state.ActiveSession)
	if state.AxisLabels != (AxisLabels{}) {
		b.labels = state.AxisLabels
	}
	b.selection.Clear()
	for _, n := range b.notes.All() {
		if n.Selected {
			b.selection.Select(n.ID)
			break
		}
	}
	b.notes.MarkSelected(b.selection.Selected)
	b.notes.RecomputeAbsolute(b.viewport)
	b.mu.Unlock()

	b.emit(Change{Kind: ChangeRestored})
}
