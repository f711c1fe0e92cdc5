package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/stickyboard/internal"
)

// MarkdownExporter exports a session document as Markdown
type MarkdownExporter struct{}

// Export writes a header with the axis labels followed by one section per note
func (e *MarkdownExporter) Export(doc *internal.SessionDocument, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", escapeMarkdown(doc.Session.Title))

	_, _ = fmt.Fprintf(w, "**Session:** %d  \n", doc.Session.ID)
	if !doc.Session.CreatedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "**Created:** %s  \n", doc.Session.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	_, _ = fmt.Fprintf(w, "**Notes:** %d\n\n", len(doc.Notes))

	_, _ = fmt.Fprintf(w, "## Axes\n\n")
	writeAxis(w, "X", doc.AxisLabels.X)
	writeAxis(w, "Y", doc.AxisLabels.Y)
	_, _ = fmt.Fprintf(w, "\n---\n\n")
	_, _ = fmt.Fprintf(w, "## Notes\n\n")

	for i, note := range doc.Notes {
		author := "human"
		if note.IsAI {
			author = "ai"
		}
		var flags []string
		flags = append(flags, author)
		if note.Locked {
			flags = append(flags, "locked")
		}

		_, _ = fmt.Fprintf(w, "**(%.1f, %.1f)** _%s_\n\n", note.RX, note.RY, strings.Join(flags, ", "))
		_, _ = fmt.Fprintf(w, "%s\n\n", escapeMarkdown(note.Content))
		if note.Brief != "" {
			_, _ = fmt.Fprintf(w, "> %s\n\n", escapeMarkdown(note.Brief))
		}

		// Horizontal rule between notes
		if i < len(doc.Notes)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func writeAxis(w io.Writer, name string, axis internal.Axis) {
	_, _ = fmt.Fprintf(w, "- **%s:** %s", name, escapeMarkdown(axis.Label))
	if axis.Brief != "" {
		_, _ = fmt.Fprintf(w, " (%s)", escapeMarkdown(axis.Brief))
	}
	_, _ = fmt.Fprintln(w)
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
