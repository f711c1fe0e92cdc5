package export

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/iksnae/stickyboard/internal"
)

// JSONLExporter exports one note per line
type JSONLExporter struct{}

// noteLine is a note tagged with the title of its session
type noteLine struct {
	internal.Note
	SessionTitle string `json:"session_title"`
}

// Export writes every note of the document on its own line
func (e *JSONLExporter) Export(doc *internal.SessionDocument, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, note := range doc.Notes {
		if err := enc.Encode(noteLine{Note: note, SessionTitle: doc.Session.Title}); err != nil {
			return fmt.Errorf("failed to encode note %d: %w", note.ID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
