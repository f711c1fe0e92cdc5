package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every session, note and axis label from the board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to clear the board without --yes")
		}
		db, err := internal.OpenDatabase(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := internal.NewStorage(db).Clear(); err != nil {
			return err
		}
		internal.PrintSuccess(cmd.OutOrStdout(), "Board cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Confirm clearing the board")
}
