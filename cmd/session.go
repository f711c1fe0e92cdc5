package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
)

var (
	sessionTitle    string
	sessionActivate bool
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage board sessions",
	Long:  `Sessions group notes. Exactly one session is active; new notes join it.`,
}

var sessionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(func(env *boardEnv) error {
			session := env.board.AddSession()
			if sessionTitle != "" {
				var err error
				if session, err = env.board.RenameSession(session.ID, sessionTitle); err != nil {
					return err
				}
			}
			if sessionActivate {
				if err := env.board.SetActiveSession(session.ID); err != nil {
					return err
				}
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Session %d created: %s", session.ID, session.Title))
			return nil
		})
	},
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sessions with their note counts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openBoard()
		if err != nil {
			return err
		}
		defer env.close()

		displaySessions(cmd.OutOrStdout(), env.board.Sessions())
		return nil
	},
}

var sessionUseCmd = &cobra.Command{
	Use:   "use <session-id>",
	Short: "Make a session active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSessionID(args[0])
		if err != nil {
			return err
		}
		return withBoard(func(env *boardEnv) error {
			if err := env.board.SetActiveSession(id); err != nil {
				return err
			}
			session, _ := env.board.Session(id)
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Active session: %d (%s)", id, session.Title))
			return nil
		})
	},
}

var sessionRenameCmd = &cobra.Command{
	Use:   "rename <session-id> <title>",
	Short: "Rename a session",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSessionID(args[0])
		if err != nil {
			return err
		}
		title := strings.Join(args[1:], " ")
		return withBoard(func(env *boardEnv) error {
			session, err := env.board.RenameSession(id, title)
			if err != nil {
				return err
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Session %d renamed: %s", session.ID, session.Title))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionAddCmd, sessionListCmd, sessionUseCmd, sessionRenameCmd)

	sessionAddCmd.Flags().StringVarP(&sessionTitle, "title", "t", "", "Session title")
	sessionAddCmd.Flags().BoolVar(&sessionActivate, "activate", true, "Make the new session active")
}
