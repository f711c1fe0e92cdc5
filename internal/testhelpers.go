package internal

import (
	"time"
)

// testEpoch is the fixed clock used by test boards
var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// FixedClock returns a clock that advances one second per call, starting at
// a fixed instant
func FixedClock() func() time.Time {
	t := testEpoch
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// CreateTestBoard creates a board with a measured 1000x800 viewport, one
// active session and a deterministic clock
func CreateTestBoard() *Board {
	b := NewBoard()
	b.SetClock(FixedClock())
	b.Resize(Viewport{Width: 1000, Height: 800})
	b.AddSession()
	return b
}

// CreateTestNote creates a default-size note for a session
func CreateTestNote(id int64, session SessionID, content string) Note {
	return Note{
		ID:      id,
		AX:      440,
		AY:      340,
		RX:      5,
		RY:      5,
		Width:   DefaultNoteWidth,
		Height:  DefaultNoteHeight,
		Content: content,
		Session: session,
	}
}

// CreateTestDocument creates a session document with two notes, one of them
// AI-authored
func CreateTestDocument(id SessionID) SessionDocument {
	ai := CreateTestNote(testEpoch.UnixMilli()+2, id, "Ship the beta")
	ai.IsAI = true
	ai.Brief = "Urgent and important"
	return SessionDocument{
		Session: Session{
			ID:        id,
			Title:     "Launch planning",
			CreatedAt: testEpoch,
		},
		AxisLabels: AxisLabels{
			X: Axis{Label: "Urgency", Brief: "How soon it must happen"},
			Y: Axis{Label: "Importance", Brief: "How much it matters"},
		},
		Notes: []Note{
			CreateTestNote(testEpoch.UnixMilli()+1, id, "Write **release** notes"),
			ai,
		},
	}
}

// CreateTestDocumentWithNotes creates a session document with custom notes
func CreateTestDocumentWithNotes(id SessionID, notes []Note) SessionDocument {
	return SessionDocument{
		Session: Session{
			ID:        id,
			Title:     DefaultSessionTitle,
			CreatedAt: testEpoch,
		},
		AxisLabels: DefaultAxisLabels(),
		Notes:      notes,
	}
}
