package export

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/stickyboard/internal"
)

func TestYAMLExporter_Export(t *testing.T) {
	tests := []struct {
		name string
		doc  internal.SessionDocument
		want []string
	}{
		{
			name: "basic document",
			doc:  internal.CreateTestDocument(0),
			want: []string{
				"title: Launch planning",
				"axis_labels:",
				"label: Urgency",
				"isai: true",
			},
		},
		{
			name: "empty document",
			doc:  internal.CreateTestDocumentWithNotes(1, []internal.Note{}),
			want: []string{"notes: []", "title: Title of the Session"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &YAMLExporter{}

			if err := exporter.Export(&tt.doc, &buf); err != nil {
				t.Fatalf("YAMLExporter.Export() error = %v", err)
			}

			output := buf.String()
			var doc internal.SessionDocument
			if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
				t.Errorf("Output is not valid YAML: %v\nOutput: %s", err, output)
			}
			if doc.Session.ID != tt.doc.Session.ID {
				t.Errorf("Session id = %d, want %d", doc.Session.ID, tt.doc.Session.ID)
			}

			for _, wantStr := range tt.want {
				if !strings.Contains(output, wantStr) {
					t.Errorf("Output should contain %q, got:\n%s", wantStr, output)
				}
			}
		})
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
