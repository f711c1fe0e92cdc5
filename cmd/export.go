package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
	"github.com/iksnae/stickyboard/internal/export"
)

var (
	exportFormat   string
	exportOutDir   string
	exportSession  string
	exportAll      bool
	exportArchived bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to file",
	Long: `Export sessions with their axis labels and notes (jsonl, md, yaml, json).

Without --out the active session (or --session) is written to stdout.
With --out every selected session is written to its own file.
Use 'stickyboard session list' to see available session IDs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		docs, err := exportDocuments()
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			internal.PrintWarning(cmd.ErrOrStderr(), "nothing to export")
			return nil
		}

		if exportOutDir == "" {
			for i := range docs {
				if err := exporter.Export(&docs[i], cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		}

		if err := os.MkdirAll(exportOutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		written := 0
		err = internal.ShowProgress(cmd.Context(), fmt.Sprintf("Exporting %d session(s) to %s", len(docs), exportOutDir), func() error {
			for i := range docs {
				path, err := export.WriteFile(exporter, &docs[i], exportOutDir)
				if err != nil {
					internal.LogError("Failed to export session %d: %v", docs[i].Session.ID, err)
					continue
				}
				internal.LogDebug("wrote %s", path)
				written++
			}
			return nil
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Export complete: %d session(s) exported to %s", written, exportOutDir))
		return nil
	},
}

// exportDocuments collects the documents selected by the export flags
func exportDocuments() ([]internal.SessionDocument, error) {
	if exportArchived {
		docs, err := internal.NewArchiveManager(cfg.Storage.ArchiveDir).LoadAllDocuments()
		if err != nil {
			return nil, fmt.Errorf("failed to load archive: %w", err)
		}
		return docs, nil
	}

	env, err := openBoard()
	if err != nil {
		return nil, err
	}
	defer env.close()

	var ids []internal.SessionID
	switch {
	case exportAll:
		for _, s := range env.board.Sessions() {
			ids = append(ids, s.ID)
		}
	case exportSession != "":
		id, err := parseSessionID(exportSession)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	default:
		active, ok := env.board.ActiveSession()
		if !ok {
			return nil, internal.ErrNoActiveSession
		}
		ids = append(ids, active.ID)
	}

	docs := make([]internal.SessionDocument, 0, len(ids))
	for _, id := range ids {
		doc, err := env.board.Document(id)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w (use 'stickyboard session list' to see available sessions)", id, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", "", "Output directory (default stdout)")
	exportCmd.Flags().StringVar(&exportSession, "session", "", "Export a specific session by ID")
	exportCmd.Flags().BoolVarP(&exportAll, "all", "a", false, "Export every session")
	exportCmd.Flags().BoolVar(&exportArchived, "archived", false, "Export from the archive instead of the board")
}
