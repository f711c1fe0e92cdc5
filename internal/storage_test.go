package internal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/stickyboard/testutil"
)

func TestNewStorage(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	storage := NewStorage(db)
	if storage.db != db {
		t.Error("NewStorage() did not set database correctly")
	}
}

func TestStorage_LoadState(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()

	state, ok, err := NewStorage(db).LoadState()
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if !ok {
		t.Fatal("LoadState() reported an empty board")
	}

	if len(state.Notes) != 4 {
		t.Errorf("loaded %d notes, want 4", len(state.Notes))
	}
	if len(state.Sessions) != 2 || state.Sessions[1].Title != "Retro" {
		t.Errorf("unexpected sessions: %+v", state.Sessions)
	}
	if state.ActiveSession == nil || *state.ActiveSession != 0 {
		t.Errorf("active session = %v, want 0", state.ActiveSession)
	}
	if state.AxisLabels.X.Label != "Urgency" {
		t.Errorf("axis labels = %+v", state.AxisLabels)
	}

	ai := state.Notes[2]
	if !ai.IsAI || !ai.Selected || ai.Brief != "Low effort" {
		t.Errorf("unexpected AI note: %+v", ai)
	}
}

func TestStorage_LoadState_Empty(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	_, ok, err := NewStorage(db).LoadState()
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if ok {
		t.Error("LoadState() should report nothing saved")
	}
}

func TestStorage_LoadState_InvalidData(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	testutil.InsertEntry(t, db, KeyNotes, "not json")

	_, _, err := NewStorage(db).LoadState()
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if storageErr.Key != KeyNotes || storageErr.Op != "parse" {
		t.Errorf("unexpected error fields: %+v", storageErr)
	}
}

func TestStorage_LoadState_IgnoresUnknownKeys(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	testutil.InsertEntry(t, db, "dnd-theme", `"dark"`)

	if _, _, err := NewStorage(db).LoadState(); err != nil {
		t.Errorf("LoadState() error = %v", err)
	}
}

func TestStorage_SaveStateRoundTrip(t *testing.T) {
	dbPath := filepath.Join(testutil.CreateTempDir(t), "board.db")
	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	storage := NewStorage(db)

	b := CreateTestBoard()
	b.SetAxisLabels(AxisLabels{X: Axis{Label: "Effort"}, Y: Axis{Label: "Value"}})
	if _, err := b.AddNote(400, 300, "Plan", "", false); err != nil {
		t.Fatal(err)
	}
	b.AddSession()

	if err := storage.SaveState(b.Snapshot()); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	state, ok, err := storage.LoadState()
	if err != nil || !ok {
		t.Fatalf("LoadState() = %v, %v", ok, err)
	}

	restored := NewBoard()
	restored.Resize(Viewport{Width: 1000, Height: 800})
	restored.Restore(state)

	if got, want := restored.Snapshot(), b.Snapshot(); len(got.Notes) != 1 || got.Notes[0] != want.Notes[0] {
		t.Errorf("notes differ after round trip: %+v vs %+v", got.Notes, want.Notes)
	}
	if restored.AxisLabels().X.Label != "Effort" {
		t.Error("axis labels were not restored")
	}
	if len(restored.Sessions()) != 2 {
		t.Error("sessions were not restored")
	}
}

func TestStorage_SaveStateNilSlices(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	storage := NewStorage(db)

	if err := storage.SaveState(State{}); err != nil {
		t.Fatal(err)
	}
	pairs, _ := QueryBoardKV(db, KeyNotes)
	if len(pairs) != 1 || pairs[0].Value != "[]" {
		t.Errorf("notes stored as %+v, want []", pairs)
	}
	state, ok, err := storage.LoadState()
	if err != nil || !ok {
		t.Fatalf("LoadState() = %v, %v", ok, err)
	}
	if state.Notes == nil || state.Sessions == nil || state.ActiveSession != nil {
		t.Errorf("unexpected empty state: %+v", state)
	}
}

func TestStorage_SaveStateEntries(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	active := SessionID(4)
	state := State{
		Notes:         []Note{CreateTestNote(1000, 4, "Ship it")},
		Sessions:      []Session{{ID: 4, Title: "Launch planning", CreatedAt: testEpoch}},
		ActiveSession: &active,
		AxisLabels:    AxisLabels{X: Axis{Label: "Urgency"}, Y: Axis{Label: "Importance"}},
	}
	if err := NewStorage(db).SaveState(state); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	pairs, err := QueryBoardKV(db, keyPrefix)
	if err != nil {
		t.Fatal(err)
	}
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		values[p.Key] = p.Value
	}

	var notes []Note
	testutil.JSONUnmarshal(t, []byte(values[KeyNotes]), &notes)
	if len(notes) != 1 || notes[0].Content != "Ship it" || notes[0].Session != 4 {
		t.Errorf("%s = %+v", KeyNotes, notes)
	}
	if values[KeyActiveSession] != string(testutil.JSONMarshal(t, 4)) {
		t.Errorf("%s = %q, want 4", KeyActiveSession, values[KeyActiveSession])
	}
	var labels AxisLabels
	testutil.JSONUnmarshal(t, []byte(values[KeyAxisLabels]), &labels)
	if labels != state.AxisLabels {
		t.Errorf("%s = %+v", KeyAxisLabels, labels)
	}
}

func TestStorage_LoadStateFromRawEntries(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()

	notes := []map[string]any{
		{"id": 7, "ax": 440, "ay": 340, "rx": "5", "ry": 5, "width": 120, "height": 120, "content": "Raw", "session": 0},
	}
	testutil.InsertEntry(t, db, KeySessions, string(testutil.JSONMarshal(t, []Session{{ID: 0, Title: "Raw"}})))
	testutil.InsertEntry(t, db, KeyNotes, string(testutil.JSONMarshal(t, notes)))

	_, _, err := NewStorage(db).LoadState()
	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Key != KeyNotes {
		t.Fatalf("LoadState() error = %v, want a parse error for %s", err, KeyNotes)
	}

	notes[0]["rx"] = 5
	testutil.InsertEntry(t, db, KeyNotes, string(testutil.JSONMarshal(t, notes)))
	state, ok, err := NewStorage(db).LoadState()
	if err != nil || !ok {
		t.Fatalf("LoadState() = %v, %v", ok, err)
	}
	if len(state.Notes) != 1 || state.Notes[0].Content != "Raw" || state.ActiveSession != nil {
		t.Errorf("LoadState() = %+v", state)
	}
}

func TestStorage_Clear(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	testutil.InsertEntry(t, db, "unrelated", "1")
	storage := NewStorage(db)

	if err := storage.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := storage.LoadState(); ok {
		t.Error("board state survived Clear()")
	}
	if pairs, _ := QueryBoardKV(db, "unrelated"); len(pairs) != 1 {
		t.Error("Clear() removed an unrelated key")
	}
}
