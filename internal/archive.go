package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ArchiveManager writes session documents to a directory: one JSON file per
// session plus a YAML index
type ArchiveManager struct {
	archiveDir string
}

// ArchiveMetadata stores metadata about the archive
type ArchiveMetadata struct {
	DatabasePath    string    `json:"database_path" yaml:"database_path"`
	DatabaseModTime time.Time `json:"database_mod_time" yaml:"database_mod_time"`
	ArchiveVersion  string    `json:"archive_version" yaml:"archive_version"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"updated_at"`
}

// SessionIndexEntry represents a session entry in the index
type SessionIndexEntry struct {
	ID        SessionID `yaml:"id"`
	Title     string    `yaml:"title"`
	CreatedAt string    `yaml:"created_at,omitempty"`
	NoteCount int       `yaml:"note_count"`
	AINotes   int       `yaml:"ai_notes"`
}

// SessionIndex represents the YAML index of all archived sessions
type SessionIndex struct {
	Sessions []SessionIndexEntry `yaml:"sessions"`
	Metadata ArchiveMetadata     `yaml:"metadata"`
}

// NewArchiveManager creates a new archive manager
func NewArchiveManager(archiveDir string) *ArchiveManager {
	return &ArchiveManager{
		archiveDir: archiveDir,
	}
}

// EnsureArchiveDir ensures the archive directory exists
func (am *ArchiveManager) EnsureArchiveDir() error {
	return os.MkdirAll(am.archiveDir, 0755)
}

// GetArchiveDir returns the archive directory path
func (am *ArchiveManager) GetArchiveDir() string {
	return am.archiveDir
}

// GetIndexPath returns the path to the session index YAML file
func (am *ArchiveManager) GetIndexPath() string {
	return filepath.Join(am.archiveDir, "sessions.yaml")
}

// GetSessionPath returns the path to a session's archive file
func (am *ArchiveManager) GetSessionPath(id SessionID) string {
	return filepath.Join(am.archiveDir, fmt.Sprintf("session_%d.json", id))
}

// IsArchiveCurrent reports whether the archive was written from the given
// database and the database has not changed since
func (am *ArchiveManager) IsArchiveCurrent(dbPath string) (bool, error) {
	if _, err := os.Stat(am.GetIndexPath()); os.IsNotExist(err) {
		return false, nil
	}

	index, err := am.LoadIndex()
	if err != nil {
		return false, nil
	}

	if index.Metadata.DatabasePath != dbPath {
		return false, nil
	}

	dbInfo, err := os.Stat(dbPath)
	if err != nil {
		return false, nil
	}

	return index.Metadata.DatabaseModTime.Equal(dbInfo.ModTime()), nil
}

// LoadIndex loads the session index
func (am *ArchiveManager) LoadIndex() (*SessionIndex, error) {
	data, err := os.ReadFile(am.GetIndexPath())
	if err != nil {
		return nil, err
	}

	var index SessionIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}

	return &index, nil
}

// SaveIndex saves the session index
func (am *ArchiveManager) SaveIndex(index *SessionIndex) error {
	if err := am.EnsureArchiveDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	return os.WriteFile(am.GetIndexPath(), data, 0644)
}

// SaveDocument saves a single session document to its archive file
func (am *ArchiveManager) SaveDocument(doc SessionDocument) error {
	if err := am.EnsureArchiveDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return os.WriteFile(am.GetSessionPath(doc.Session.ID), data, 0644)
}

// LoadDocument loads a single session document
func (am *ArchiveManager) LoadDocument(id SessionID) (SessionDocument, error) {
	data, err := os.ReadFile(am.GetSessionPath(id))
	if err != nil {
		return SessionDocument{}, err
	}

	var doc SessionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return SessionDocument{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return doc, nil
}

// LoadAllDocuments loads every document listed in the index
func (am *ArchiveManager) LoadAllDocuments() ([]SessionDocument, error) {
	index, err := am.LoadIndex()
	if err != nil {
		return nil, err
	}

	docs := make([]SessionDocument, 0, len(index.Sessions))
	for _, entry := range index.Sessions {
		doc, err := am.LoadDocument(entry.ID)
		if err != nil {
			LogWarn("Failed to load archived session %d: %v", entry.ID, err)
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// SaveDocuments archives every document and rewrites the index. dbPath is
// recorded so IsArchiveCurrent can detect a changed board.
func (am *ArchiveManager) SaveDocuments(docs []SessionDocument, dbPath string) error {
	if err := am.EnsureArchiveDir(); err != nil {
		return err
	}

	now := time.Now()
	index := SessionIndex{
		Sessions: make([]SessionIndexEntry, 0, len(docs)),
		Metadata: ArchiveMetadata{
			DatabasePath:   dbPath,
			ArchiveVersion: "1.0",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
	if dbPath != "" {
		if dbInfo, err := os.Stat(dbPath); err == nil {
			index.Metadata.DatabaseModTime = dbInfo.ModTime()
		}
	}
	if existing, err := am.LoadIndex(); err == nil {
		index.Metadata.CreatedAt = existing.Metadata.CreatedAt
	}

	for _, doc := range docs {
		if err := am.SaveDocument(doc); err != nil {
			LogWarn("Failed to archive session %d: %v", doc.Session.ID, err)
			continue
		}

		aiNotes := 0
		for _, n := range doc.Notes {
			if n.IsAI {
				aiNotes++
			}
		}
		index.Sessions = append(index.Sessions, SessionIndexEntry{
			ID:        doc.Session.ID,
			Title:     doc.Session.Title,
			CreatedAt: doc.Session.CreatedAt.Format(time.RFC3339),
			NoteCount: len(doc.Notes),
			AINotes:   aiNotes,
		})
	}

	return am.SaveIndex(&index)
}

// ClearArchive removes every archived document and the index
func (am *ArchiveManager) ClearArchive() error {
	index, err := am.LoadIndex()
	if err == nil {
		for _, entry := range index.Sessions {
			_ = os.Remove(am.GetSessionPath(entry.ID))
		}
	}

	if err := os.Remove(am.GetIndexPath()); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
