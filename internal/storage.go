package internal

import (
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
)

// Keys of the persisted board layout
const (
	KeyNotes         = "dnd-stickies"
	KeySessions      = "dnd-sessions"
	KeyActiveSession = "dnd-active-session"
	KeyAxisLabels    = "dnd-axis-labels"

	keyPrefix = "dnd-%"
)

// Storage persists board state as JSON values in the boardKV table
type Storage struct {
	db *sql.DB
}

// NewStorage creates a new Storage instance
func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// LoadState reads the persisted board. The boolean is false when nothing
// has been saved yet.
func (s *Storage) LoadState() (State, bool, error) {
	pairs, err := QueryBoardKV(s.db, keyPrefix)
	if err != nil {
		return State{}, false, &StorageError{Op: "read", Err: err}
	}
	if len(pairs) == 0 {
		return State{}, false, nil
	}

	var state State
	for _, pair := range pairs {
		var target any
		switch pair.Key {
		case KeyNotes:
			target = &state.Notes
		case KeySessions:
			target = &state.Sessions
		case KeyActiveSession:
			target = &state.ActiveSession
		case KeyAxisLabels:
			target = &state.AxisLabels
		default:
			LogDebug("ignoring unknown storage key %s", pair.Key)
			continue
		}
		if err := json.Unmarshal([]byte(pair.Value), target); err != nil {
			return State{}, false, &StorageError{Key: pair.Key, Op: "parse", Err: err}
		}
	}

	if state.Notes == nil {
		state.Notes = []Note{}
	}
	if state.Sessions == nil {
		state.Sessions = []Session{}
	}
	return state, true, nil
}

// SaveState writes every entry of the board layout in one transaction
func (s *Storage) SaveState(state State) error {
	notes := state.Notes
	if notes == nil {
		notes = []Note{}
	}
	sessions := state.Sessions
	if sessions == nil {
		sessions = []Session{}
	}

	entries := []struct {
		key   string
		value any
	}{
		{KeyNotes, notes},
		{KeySessions, sessions},
		{KeyActiveSession, state.ActiveSession},
		{KeyAxisLabels, state.AxisLabels},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		data, err := json.Marshal(e.value)
		if err != nil {
			return &StorageError{Key: e.key, Op: "write", Err: fmt.Errorf("marshal: %w", err)}
		}
		if err := PutBoardKV(tx, e.key, string(data)); err != nil {
			return &StorageError{Key: e.key, Op: "write", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

// Clear removes every persisted entry, ending the board session
func (s *Storage) Clear() error {
	n, err := DeleteBoardKV(s.db, keyPrefix)
	if err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	LogDebug("cleared %d storage entries", n)
	return nil
}
