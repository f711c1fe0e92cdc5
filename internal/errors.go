package internal

import (
	"errors"
	"fmt"
)

// Board errors. None of them are fatal; callers surface them next to the
// action that produced them.
var (
	ErrViewportNotReady = errors.New("viewport has not been measured")
	ErrNoteNotFound     = errors.New("note not found")
	ErrNoteLocked       = errors.New("note is locked")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoActiveSession  = errors.New("no active session")
	ErrNothingSelected  = errors.New("no note selected")
	ErrUnknownAction    = errors.New("unknown action")
	ErrInvalidGeometry  = errors.New("invalid note geometry")
)

// StorageError represents errors accessing the persisted board state
type StorageError struct {
	Key string
	Op  string // "open", "read", "write", "parse", "clear"
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConfigError represents errors loading the configuration file
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
