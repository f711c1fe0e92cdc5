package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const boardKVSchema = `
	CREATE TABLE IF NOT EXISTS boardKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`

// Persisted board entries of the sample board: two sessions, three notes
// in session 0 (one locked, one AI-placed and selected) and one in session 1
var sampleEntries = []struct {
	key   string
	value string
}{
	{
		key: "dnd-stickies",
		value: `[
			{"id":1714564800001,"ax":440,"ay":340,"rx":5,"ry":5,"width":120,"height":120,"content":"Write release notes","locked":false,"selected":false,"isai":false,"session":0},
			{"id":1714564800002,"ax":400,"ay":300,"rx":4.6,"ry":5.5,"width":120,"height":120,"content":"Book venue","locked":true,"selected":false,"isai":false,"session":0},
			{"id":1714564800003,"ax":940,"ay":740,"rx":10,"ry":0,"width":120,"height":120,"content":"Send invites","locked":false,"selected":true,"brief":"Low effort","isai":true,"session":0},
			{"id":1714564800004,"ax":0,"ay":0,"rx":0.6,"ry":9.25,"width":120,"height":120,"content":"Retro notes","locked":false,"selected":false,"isai":false,"session":1}
		]`,
	},
	{
		key:   "dnd-sessions",
		value: `[{"id":0,"title":"Launch planning","created_at":"2024-05-01T12:00:00Z"},{"id":1,"title":"Retro","created_at":"2024-05-02T12:00:00Z"}]`,
	},
	{
		key:   "dnd-active-session",
		value: `0`,
	},
	{
		key:   "dnd-axis-labels",
		value: `{"x":{"label":"Urgency","brief":"How soon it must happen"},"y":{"label":"Importance","brief":"How much it matters"}}`,
	},
}

// CreateInMemoryDB creates an in-memory SQLite database with an empty
// boardKV table
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(boardKVSchema); err != nil {
		db.Close()
		t.Fatalf("Failed to create boardKV table: %v", err)
	}

	return db
}

// CreateTestDB creates an in-memory database holding the sample board
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)
	seedBoard(t, db)
	return db
}

// InsertEntry inserts or replaces a raw boardKV entry
func InsertEntry(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	upsert := "INSERT OR REPLACE INTO boardKV (key, value) VALUES (?, ?)"
	if _, err := db.Exec(upsert, key, value); err != nil {
		t.Fatalf("Failed to insert %s: %v", key, err)
	}
}

func seedBoard(t *testing.T, db *sql.DB) {
	t.Helper()
	stmt, err := db.Prepare("INSERT INTO boardKV (key, value) VALUES (?, ?)")
	if err != nil {
		t.Fatalf("Failed to prepare insert statement: %v", err)
	}
	defer stmt.Close()

	for _, e := range sampleEntries {
		if _, err := stmt.Exec(e.key, e.value); err != nil {
			t.Fatalf("Failed to insert %s: %v", e.key, err)
		}
	}
}
