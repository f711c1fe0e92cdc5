package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
)

var archiveForce bool

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Snapshot every session into the archive directory",
	Long: `Write every session as a JSON document plus a YAML index into the
archive directory (storage.archive_dir). The snapshot is skipped when the
archive was already written from the current database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		am := internal.NewArchiveManager(cfg.Storage.ArchiveDir)
		out := cmd.OutOrStdout()

		if !archiveForce {
			current, err := am.IsArchiveCurrent(cfg.Storage.Path)
			if err != nil {
				return err
			}
			if current {
				internal.PrintInfo(out, "Archive is up to date")
				return nil
			}
		}

		env, err := openBoard()
		if err != nil {
			return err
		}
		defer env.close()

		var docs []internal.SessionDocument
		err = internal.ShowProgressWithSteps(cmd.Context(), []internal.ProgressStep{
			{
				Message: "Collecting sessions",
				Fn: func() error {
					sessions := env.board.Sessions()
					docs = make([]internal.SessionDocument, 0, len(sessions))
					for _, s := range sessions {
						doc, err := env.board.Document(s.ID)
						if err != nil {
							return err
						}
						docs = append(docs, doc)
					}
					return nil
				},
			},
			{
				Message: fmt.Sprintf("Writing archive to %s", am.GetArchiveDir()),
				Fn: func() error {
					return am.SaveDocuments(docs, cfg.Storage.Path)
				},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		internal.PrintSuccess(out, fmt.Sprintf("Archived %d session(s) to %s", len(docs), am.GetArchiveDir()))
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List archived sessions",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		am := internal.NewArchiveManager(cfg.Storage.ArchiveDir)
		index, err := am.LoadIndex()
		if err != nil {
			return fmt.Errorf("no archive at %s: %w", am.GetArchiveDir(), err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("🗄  %d archived session(s)", len(index.Sessions))))
		fmt.Fprintln(out, dateStyle.Render("Updated "+index.Metadata.UpdatedAt.Format("2006-01-02 15:04")))
		fmt.Fprintln(out)

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Notes")+"\t"+titleStyle.Render("AI")+"\t")
		for _, e := range index.Sessions {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				idStyle.Render(strconv.FormatInt(int64(e.ID), 10)),
				truncate(e.Title, 50),
				countStyle.Render(strconv.Itoa(e.NoteCount)),
				aiStyle.Render(strconv.Itoa(e.AINotes)))
		}
		return w.Flush()
	},
}

var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		am := internal.NewArchiveManager(cfg.Storage.ArchiveDir)
		if err := am.ClearArchive(); err != nil {
			return fmt.Errorf("failed to clear archive: %w", err)
		}
		internal.PrintSuccess(cmd.OutOrStdout(), "Archive cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd, archiveClearCmd)
	archiveCmd.Flags().BoolVar(&archiveForce, "force", false, "Rewrite the archive even if it is current")
}
