package export

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/iksnae/stickyboard/internal"
)

// JSONExporter exports a session document as pretty-printed JSON
type JSONExporter struct{}

// Export writes the whole document
func (e *JSONExporter) Export(doc *internal.SessionDocument, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
