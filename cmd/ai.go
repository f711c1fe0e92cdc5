package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
	"github.com/iksnae/stickyboard/internal/assist"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Let the model title, place, fit and generate notes",
	Long: `AI-assisted actions on the active session.

Each action sends the axis labels and the relevant notes to the configured
model and applies the suggestion to the board. A failed or malformed
reply leaves the board unchanged.`,
}

// runAssist opens the board, runs fn with a spinner and saves on success
func runAssist(cmd *cobra.Command, message string, fn func(a *assist.Assistant) (string, error)) error {
	return withBoard(func(env *boardEnv) error {
		assistant, err := newAssistant(cmd.Context(), env.board)
		if err != nil {
			return err
		}
		var summary string
		err = internal.ShowProgress(cmd.Context(), message, func() error {
			var err error
			summary, err = fn(assistant)
			return err
		})
		if err != nil {
			return err
		}
		internal.PrintSuccess(cmd.OutOrStdout(), summary)
		return nil
	})
}

var aiTitleCmd = &cobra.Command{
	Use:   "title [hint]",
	Short: "Title the active session from its notes",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hint := strings.Join(args, " ")
		return runAssist(cmd, "Titling session", func(a *assist.Assistant) (string, error) {
			session, err := a.TitleSession(cmd.Context(), hint)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Session %d titled: %s", session.ID, session.Title), nil
		})
	},
}

var aiPlaceCmd = &cobra.Command{
	Use:   "place <content>",
	Short: "Add a note where the model thinks it belongs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args, " ")
		return runAssist(cmd, "Placing note", func(a *assist.Assistant) (string, error) {
			note, err := a.PlaceNewNote(cmd.Context(), content)
			if err != nil {
				return "", err
			}
			return describePlacement("placed", note), nil
		})
	},
}

var aiFitCmd = &cobra.Command{
	Use:   "fit <note-id>",
	Short: "Move an unlocked note to where it fits among the locked ones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		return runAssist(cmd, "Fitting note", func(a *assist.Assistant) (string, error) {
			note, err := a.FitNote(cmd.Context(), id)
			if err != nil {
				return "", err
			}
			return describePlacement("fitted", note), nil
		})
	},
}

var aiGenerateCmd = &cobra.Command{
	Use:   "generate <rx> <ry>",
	Short: "Generate a note for a spot on the 0-10 grid",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parseFloats(args...)
		if err != nil {
			return err
		}
		rel := internal.Point{X: pos[0], Y: pos[1]}
		if !internal.InGrid(rel) {
			return fmt.Errorf("relative point (%.2f, %.2f) is outside the 0-%g grid", rel.X, rel.Y, internal.GridMax)
		}
		abs, ok := internal.ToAbsolute(rel, internal.DefaultNoteSize, cfg.Viewport)
		if !ok {
			return internal.ErrViewportNotReady
		}
		return runAssist(cmd, "Generating note", func(a *assist.Assistant) (string, error) {
			note, err := a.GenerateNote(cmd.Context(), abs)
			if err != nil {
				return "", err
			}
			return describePlacement("generated", note), nil
		})
	},
}

func describePlacement(verb string, note internal.Note) string {
	msg := fmt.Sprintf("Note %d %s at (%.2f, %.2f)", note.ID, verb, note.RX, note.RY)
	if note.Brief != "" {
		msg += ": " + note.Brief
	}
	return msg
}

func init() {
	rootCmd.AddCommand(aiCmd)
	aiCmd.AddCommand(aiTitleCmd, aiPlaceCmd, aiFitCmd, aiGenerateCmd)
}
