package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
)

var (
	noteRelX    float64
	noteRelY    float64
	noteAbsX    float64
	noteAbsY    float64
	noteBrief   string
	noteListAll bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes of the active session",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a note",
	Long: `Add a note to the active session.

By default the note is centred on the relative point --rx/--ry (0-10 on
both axes, y pointing up). Pass --ax/--ay to place its top-left corner at
a pixel position of the configured viewport instead.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args, " ")
		absolute := cmd.Flags().Changed("ax") || cmd.Flags().Changed("ay")
		rel := internal.Point{X: noteRelX, Y: noteRelY}
		if !absolute && !internal.InGrid(rel) {
			return fmt.Errorf("relative point (%.2f, %.2f) is outside the 0-%g grid", rel.X, rel.Y, internal.GridMax)
		}

		return withBoard(func(env *boardEnv) error {
			var (
				note internal.Note
				err  error
			)
			if absolute {
				note, err = env.board.AddNote(noteAbsX, noteAbsY, content, noteBrief, false)
			} else {
				note, err = env.board.AddNoteAt(rel, content, noteBrief, false)
			}
			if err != nil {
				return err
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Note %d added at (%.2f, %.2f)", note.ID, note.RX, note.RY))
			return nil
		})
	},
}

var noteMoveCmd = &cobra.Command{
	Use:   "move <note-id> <ax> <ay>",
	Short: "Move a note's top-left corner to a pixel position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		pos, err := parseFloats(args[1:]...)
		if err != nil {
			return err
		}
		return withBoard(func(env *boardEnv) error {
			current, ok := env.board.Note(id)
			if !ok {
				return internal.ErrNoteNotFound
			}
			note, err := env.board.UpdatePosition(id, pos[0], pos[1], current.Width, current.Height)
			if err != nil {
				return err
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Note %d moved to (%.2f, %.2f)", note.ID, note.RX, note.RY))
			return nil
		})
	},
}

var noteResizeCmd = &cobra.Command{
	Use:   "resize <note-id> <width> <height>",
	Short: "Resize a note, keeping its top-left corner",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		size, err := parseFloats(args[1:]...)
		if err != nil {
			return err
		}
		if size[0] <= 0 || size[1] <= 0 {
			return fmt.Errorf("width and height must be positive")
		}
		return withBoard(func(env *boardEnv) error {
			current, ok := env.board.Note(id)
			if !ok {
				return internal.ErrNoteNotFound
			}
			note, err := env.board.UpdatePosition(id, current.AX, current.AY, size[0], size[1])
			if err != nil {
				return err
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Note %d resized to %.0fx%.0f", note.ID, note.Width, note.Height))
			return nil
		})
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <note-id> <content>",
	Short: "Replace a note's content",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		content := strings.Join(args[1:], " ")
		return withBoard(func(env *boardEnv) error {
			if _, err := env.board.EditContent(id, content); err != nil {
				return err
			}
			env.board.Blur()
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Note %d updated", id))
			return nil
		})
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete <note-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		return withBoard(func(env *boardEnv) error {
			if _, err := env.board.DeleteNote(id); err != nil {
				return err
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Note %d deleted", id))
			return nil
		})
	},
}

func lockCommand(use string, locked bool) *cobra.Command {
	verb := "Unlock"
	if locked {
		verb = "Lock"
	}
	return &cobra.Command{
		Use:   use + " <note-id>",
		Short: verb + " a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			return withBoard(func(env *boardEnv) error {
				if _, err := env.board.SetLocked(id, locked); err != nil {
					return err
				}
				internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Note %d %sed", id, strings.ToLower(verb)))
				return nil
			})
		},
	}
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes of the active session",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openBoard()
		if err != nil {
			return err
		}
		defer env.close()

		if noteListAll {
			displayNotes(cmd.OutOrStdout(), env.board.Notes())
			return nil
		}
		if _, ok := env.board.ActiveSession(); !ok {
			return internal.ErrNoActiveSession
		}
		displayNotes(cmd.OutOrStdout(), env.board.ActiveNotes())
		return nil
	},
}

var noteSelectCmd = &cobra.Command{
	Use:   "select <note-id>",
	Short: "Select a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		return withBoard(func(env *boardEnv) error {
			return env.board.Select(id)
		})
	},
}

var noteDeselectCmd = &cobra.Command{
	Use:   "deselect",
	Short: "Clear the selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(func(env *boardEnv) error {
			env.board.Deselect()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(
		noteAddCmd,
		noteMoveCmd,
		noteResizeCmd,
		noteEditCmd,
		noteDeleteCmd,
		lockCommand("lock", true),
		lockCommand("unlock", false),
		noteListCmd,
		noteSelectCmd,
		noteDeselectCmd,
	)

	noteAddCmd.Flags().Float64Var(&noteRelX, "rx", 5, "Relative x of the note centre (0-10)")
	noteAddCmd.Flags().Float64Var(&noteRelY, "ry", 5, "Relative y of the note centre (0-10)")
	noteAddCmd.Flags().Float64Var(&noteAbsX, "ax", 0, "Pixel x of the top-left corner")
	noteAddCmd.Flags().Float64Var(&noteAbsY, "ay", 0, "Pixel y of the top-left corner")
	noteAddCmd.Flags().StringVar(&noteBrief, "brief", "", "Why the note sits where it does")
	noteListCmd.Flags().BoolVarP(&noteListAll, "all", "a", false, "List notes of every session")
}
