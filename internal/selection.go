package internal

// NoteState is the interaction state of a single note
type NoteState string

const (
	StateIdle     NoteState = "idle"
	StateSelected NoteState = "selected"
	StateEditing  NoteState = "editing"
)

// Selection tracks at most one selected note and at most one note in text
// edit mode. The two slots are independent; a note being edited counts as
// selected for action menus. A zero id means the slot is empty.
type Selection struct {
	Selected int64 `json:"selected,omitempty"`
	Editing  int64 `json:"editing,omitempty"`
}

// Select moves a note to the selected state
func (s *Selection) Select(id int64) {
	s.Selected = id
	if s.Editing != 0 && s.Editing != id {
		s.Editing = 0
	}
}

// Edit puts a note into text edit mode. It does not require the note to be
// selected first.
func (s *Selection) Edit(id int64) {
	s.Editing = id
}

// Place selects a freshly created note and opens it for editing
func (s *Selection) Place(id int64) {
	s.Selected = id
	s.Editing = id
}

// Blur leaves edit mode and keeps the edited note selected. Content is
// owned by the note store and is not touched here.
func (s *Selection) Blur() {
	if s.Editing == 0 {
		return
	}
	s.Selected = s.Editing
	s.Editing = 0
}

// Clear deselects everything and leaves edit mode
func (s *Selection) Clear() {
	s.Selected = 0
	s.Editing = 0
}

// Forget drops every reference to a note that no longer exists
func (s *Selection) Forget(id int64) {
	if s.Selected == id {
		s.Selected = 0
	}
	if s.Editing == id {
		s.Editing = 0
	}
}

// Focus returns the note that action menus operate on: the edited note if
// any, otherwise the selected one.
func (s Selection) Focus() (int64, bool) {
	if s.Editing != 0 {
		return s.Editing, true
	}
	if s.Selected != 0 {
		return s.Selected, true
	}
	return 0, false
}

// State returns the interaction state of a note
func (s Selection) State(id int64) NoteState {
	switch {
	case id != 0 && s.Editing == id:
		return StateEditing
	case id != 0 && s.Selected == id:
		return StateSelected
	default:
		return StateIdle
	}
}
