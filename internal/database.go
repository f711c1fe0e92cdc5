package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const boardKVSchema = `
	CREATE TABLE IF NOT EXISTS boardKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`

// OpenDatabase opens (creating if needed) the SQLite database that holds
// the board key/value table
func OpenDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// OpenDatabaseReadOnly opens an existing board database in read-only mode
func OpenDatabaseReadOnly(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the boardKV table if it does not exist
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(boardKVSchema); err != nil {
		return fmt.Errorf("failed to create boardKV table: %w", err)
	}
	return nil
}

// QueryBoardKV queries the boardKV table with a LIKE pattern
func QueryBoardKV(db *sql.DB, pattern string) ([]KeyValuePair, error) {
	query := "SELECT key, value FROM boardKV WHERE key LIKE ? AND value IS NOT NULL"
	rows, err := db.Query(query, pattern)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var pairs []KeyValuePair
	for rows.Next() {
		var pair KeyValuePair
		var value sql.NullString
		if err := rows.Scan(&pair.Key, &value); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if value.Valid {
			pair.Value = value.String
			pairs = append(pairs, pair)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pairs, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// PutBoardKV inserts or replaces a single entry
func PutBoardKV(db execer, key, value string) error {
	query := `INSERT INTO boardKV (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := db.Exec(query, key, value); err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// DeleteBoardKV removes every entry whose key matches a LIKE pattern
func DeleteBoardKV(db execer, pattern string) (int64, error) {
	res, err := db.Exec("DELETE FROM boardKV WHERE key LIKE ?", pattern)
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// KeyValuePair represents a key-value pair from boardKV
type KeyValuePair struct {
	Key   string
	Value string
}
