package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/stickyboard/internal"
)

// YAMLExporter exports a session document as YAML
type YAMLExporter struct{}

// Export writes the whole document
func (e *YAMLExporter) Export(doc *internal.SessionDocument, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
