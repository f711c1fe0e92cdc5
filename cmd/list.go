package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/stickyboard/internal"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	aiStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Italic(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// formatCreated renders a timestamp relative to now
func formatCreated(t time.Time, now time.Time) string {
	if t.IsZero() {
		return dateStyle.Render("—")
	}
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return dateStyle.Render(t.Format("Today 15:04"))
	case diff < 7*24*time.Hour:
		return dateStyle.Render(t.Format("Mon 15:04"))
	case diff < 365*24*time.Hour:
		return dateStyle.Render(t.Format("Jan 02 15:04"))
	default:
		return dateStyle.Render(t.Format("2006-01-02"))
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

func displaySessions(out io.Writer, sessions []internal.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No sessions yet"))
		fmt.Fprintln(out, idStyle.Render("💡 Tip: start one with `stickyboard session add`"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 %d session(s)", len(sessions))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Notes")+"\t"+titleStyle.Render("Created")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	now := time.Now()
	for _, s := range sessions {
		id := idStyle.Render(strconv.FormatInt(int64(s.ID), 10))
		if s.Active {
			id = activeStyle.Render("* " + strconv.FormatInt(int64(s.ID), 10))
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			id,
			truncate(s.Title, 50),
			countStyle.Render(strconv.Itoa(s.NoteCount)),
			formatCreated(s.CreatedAt, now))
	}
	_ = w.Flush()
}

func displayNotes(out io.Writer, notes []internal.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(out, headerStyle.Render("🗒  No notes in this session"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("🗒  %d note(s)", len(notes))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Position")+"\t"+titleStyle.Render("Content")+"\t"+titleStyle.Render("Flags")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, n := range notes {
		var flags []string
		if n.Selected {
			flags = append(flags, "selected")
		}
		if n.Locked {
			flags = append(flags, "locked")
		}
		if n.IsAI {
			flags = append(flags, aiStyle.Render("ai"))
		}
		content := n.Content
		if content == "" {
			content = "(empty)"
		}
		_, _ = fmt.Fprintf(w, "%s\t(%.1f, %.1f)\t%s\t%s\t\n",
			idStyle.Render(strconv.FormatInt(n.ID, 10)),
			n.RX, n.RY,
			truncate(content, 50),
			strings.Join(flags, " "))
	}
	_ = w.Flush()
}
