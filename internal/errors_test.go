package internal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("permission denied")

	tests := []struct {
		name string
		err  *StorageError
		want []string
	}{
		{
			name: "with key",
			err:  &StorageError{Key: KeyNotes, Op: "parse", Err: originalErr},
			want: []string{"storage error", "parse", KeyNotes, "permission denied"},
		},
		{
			name: "without key",
			err:  &StorageError{Op: "open", Err: originalErr},
			want: []string{"storage error: open", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("StorageError.Error() = %q, want it to contain %q", msg, want)
				}
			}
			if !errors.Is(tt.err, originalErr) {
				t.Error("StorageError should unwrap to the original error")
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	originalErr := errors.New("yaml: line 3: mapping values are not allowed")
	err := &ConfigError{Path: "/etc/stickyboard.yaml", Err: originalErr}

	if got := err.Error(); got != "config error /etc/stickyboard.yaml: "+originalErr.Error() {
		t.Errorf("ConfigError.Error() = %q", got)
	}
	if !errors.Is(err, originalErr) {
		t.Error("ConfigError should unwrap to the original error")
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("disk full")
	err := &ExportError{Format: "md", Path: "/tmp/out", Err: originalErr}

	msg := err.Error()
	if !strings.Contains(msg, "[md]") || !strings.Contains(msg, "/tmp/out") {
		t.Errorf("ExportError.Error() = %q, want format and path", msg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("ExportError should unwrap to the original error")
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("load board: %w", &StorageError{Key: KeySessions, Op: "parse", Err: ErrSessionNotFound})

	var storageErr *StorageError
	if !errors.As(wrapped, &storageErr) {
		t.Fatal("errors.As should find the StorageError")
	}
	if storageErr.Key != KeySessions {
		t.Errorf("Key = %q, want %q", storageErr.Key, KeySessions)
	}
	if !errors.Is(wrapped, ErrSessionNotFound) {
		t.Error("the sentinel should be reachable through the chain")
	}
}
