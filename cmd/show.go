package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
)

var (
	limit        int
	showArchived bool
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	humanNoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	aiNoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true).
			Padding(0, 1)

	noteContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	positionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show the notes of a session",
	Long:  `Display a session with its axis labels and notes. Defaults to the active session.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadShowDocument(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		displaySessionHeader(out, doc)

		notes := doc.Notes
		total := len(notes)
		if limit > 0 && limit < len(notes) {
			notes = notes[:limit]
		}
		for i, n := range notes {
			displayNote(out, i+1, n, total)
		}

		if limit > 0 && limit < total {
			fmt.Fprintln(out)
			fmt.Fprintln(out, lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d more note(s))", total-limit)))
		}
		return nil
	},
}

func loadShowDocument(args []string) (internal.SessionDocument, error) {
	if showArchived {
		if len(args) == 0 {
			return internal.SessionDocument{}, fmt.Errorf("--archived needs a session id")
		}
		id, err := parseSessionID(args[0])
		if err != nil {
			return internal.SessionDocument{}, err
		}
		doc, err := internal.NewArchiveManager(cfg.Storage.ArchiveDir).LoadDocument(id)
		if err != nil {
			return internal.SessionDocument{}, fmt.Errorf("session %d is not archived: %w", id, err)
		}
		return doc, nil
	}

	env, err := openBoard()
	if err != nil {
		return internal.SessionDocument{}, err
	}
	defer env.close()

	var id internal.SessionID
	if len(args) == 1 {
		if id, err = parseSessionID(args[0]); err != nil {
			return internal.SessionDocument{}, err
		}
	} else {
		active, ok := env.board.ActiveSession()
		if !ok {
			return internal.SessionDocument{}, internal.ErrNoActiveSession
		}
		id = active.ID
	}
	return env.board.Document(id)
}

func displaySessionHeader(out io.Writer, doc internal.SessionDocument) {
	fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("🗂  %s", doc.Session.Title)))

	metaParts := []string{fmt.Sprintf("Session: %d", doc.Session.ID)}
	if !doc.Session.CreatedAt.IsZero() {
		metaParts = append(metaParts, fmt.Sprintf("Created: %s", doc.Session.CreatedAt.Format("2006-01-02 15:04")))
	}
	metaParts = append(metaParts, fmt.Sprintf("Notes: %d", len(doc.Notes)))
	fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))

	fmt.Fprintf(out, "  %s %s  %s %s\n",
		titleStyle.Render("X:"), doc.AxisLabels.X.Label,
		titleStyle.Render("Y:"), doc.AxisLabels.Y.Label)
	fmt.Fprintln(out)
}

func displayNote(out io.Writer, index int, n internal.Note, total int) {
	style, label := humanNoteStyle, "✍ Note"
	if n.IsAI {
		style, label = aiNoteStyle, "🤖 AI note"
	}

	header := style.Render(label) + " " + positionStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	header += " " + positionStyle.Render(fmt.Sprintf("(%.1f, %.1f)", n.RX, n.RY))
	if n.Locked {
		header += " " + positionStyle.Render("locked")
	}
	fmt.Fprintln(out, header)

	content := strings.TrimSpace(n.Content)
	if content != "" {
		fmt.Fprintln(out, noteContentStyle.Render(wrapText(content, 80)))
	} else {
		fmt.Fprintln(out, noteContentStyle.Foreground(lipgloss.Color("240")).Render("(empty note)"))
	}
	if n.Brief != "" {
		fmt.Fprintln(out, noteContentStyle.Foreground(lipgloss.Color("243")).Italic(true).Render(wrapText(n.Brief, 80)))
	}
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
					currentLine = word
				} else {
					wrapped = append(wrapped, word)
					currentLine = ""
				}
			} else {
				if currentLine == "" {
					currentLine = word
				} else {
					currentLine += " " + word
				}
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of notes to show")
	showCmd.Flags().BoolVar(&showArchived, "archived", false, "Read the session from the archive")
}
