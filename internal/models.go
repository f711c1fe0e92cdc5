package internal

import (
	"time"
)

// Default geometry and labels for new notes and sessions
const (
	DefaultNoteWidth    = 120.0
	DefaultNoteHeight   = 120.0
	DefaultSessionTitle = "Title of the Session"
)

// SessionID identifies a session. It is assigned once and never derived
// from the session's position in the store.
type SessionID int64

// Note is a sticky note placed on the board
type Note struct {
	ID       int64     `json:"id" yaml:"id"`
	AX       float64   `json:"ax" yaml:"ax"`
	AY       float64   `json:"ay" yaml:"ay"`
	RX       float64   `json:"rx" yaml:"rx"`
	RY       float64   `json:"ry" yaml:"ry"`
	Width    float64   `json:"width" yaml:"width"`
	Height   float64   `json:"height" yaml:"height"`
	Content  string    `json:"content" yaml:"content"`
	Locked   bool      `json:"locked" yaml:"locked"`
	Selected bool      `json:"selected" yaml:"selected"`
	Brief    string    `json:"brief,omitempty" yaml:"brief,omitempty"`
	IsAI     bool      `json:"isai" yaml:"isai"`
	Session  SessionID `json:"session" yaml:"session"`
}

// Absolute returns the top-left pixel position of the note
func (n Note) Absolute() Point {
	return Point{X: n.AX, Y: n.AY}
}

// Relative returns the note centre on the 0-10 grid
func (n Note) Relative() Point {
	return Point{X: n.RX, Y: n.RY}
}

// Size returns the note dimensions
func (n Note) Size() Size {
	return Size{Width: n.Width, Height: n.Height}
}

// Bounds returns the pixel rectangle covered by the note
func (n Note) Bounds() Rect {
	return Rect{Min: n.Absolute(), Size: n.Size()}
}

// CreatedAt returns the creation time encoded in the note identity
func (n Note) CreatedAt() time.Time {
	return time.UnixMilli(n.ID)
}

// Session is a named grouping of notes
type Session struct {
	ID        SessionID `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Axis describes the meaning of one board axis
type Axis struct {
	Label string `json:"label" yaml:"label"`
	Brief string `json:"brief" yaml:"brief"`
}

// AxisLabels is the semantic context shared by every AI-assisted action
type AxisLabels struct {
	X Axis `json:"x" yaml:"x"`
	Y Axis `json:"y" yaml:"y"`
}

// DefaultAxisLabels returns the placeholder labels shown on a fresh board
func DefaultAxisLabels() AxisLabels {
	return AxisLabels{
		X: Axis{Label: "X Axis Label", Brief: "This label is for the X axis"},
		Y: Axis{Label: "Y Axis Label", Brief: "This label is for the Y axis"},
	}
}

// SessionSummary is a session together with its derived note count
type SessionSummary struct {
	Session
	NoteCount int  `json:"note_count" yaml:"note_count"`
	Active    bool `json:"active" yaml:"active"`
}

// SessionDocument is everything needed to render or export one session
type SessionDocument struct {
	Session    Session    `json:"session" yaml:"session"`
	AxisLabels AxisLabels `json:"axis_labels" yaml:"axis_labels"`
	Notes      []Note     `json:"notes" yaml:"notes"`
}
