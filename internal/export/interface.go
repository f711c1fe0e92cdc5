package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iksnae/stickyboard/internal"
)

// Exporter renders one session document in a single format
type Exporter interface {
	Export(doc *internal.SessionDocument, w io.Writer) error
	Extension() string
}

// Formats lists the canonical format names
var Formats = []string{"json", "jsonl", "md", "yaml"}

var aliases = map[string]string{
	"markdown": "md",
	"yml":      "yaml",
}

// NewExporter returns the exporter for a format name or alias
func NewExporter(format string) (Exporter, error) {
	if canonical, ok := aliases[format]; ok {
		format = canonical
	}
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q (supported: %v)", format, Formats)
	}
}

// Filename is the file a session document is written to
func Filename(e Exporter, doc *internal.SessionDocument) string {
	return fmt.Sprintf("session_%d.%s", doc.Session.ID, e.Extension())
}

// WriteFile exports doc into dir and returns the written path
func WriteFile(e Exporter, doc *internal.SessionDocument, dir string) (path string, err error) {
	path = filepath.Join(dir, Filename(e, doc))
	fail := func(err error) error {
		return &internal.ExportError{Format: e.Extension(), Path: path, Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fail(err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fail(cerr)
		}
	}()

	if err := e.Export(doc, file); err != nil {
		return "", fail(err)
	}
	return path, nil
}
