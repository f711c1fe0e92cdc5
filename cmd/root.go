package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
)

var (
	verbose    bool
	configPath string
	dbPath     string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	// cfg is loaded before every command runs
	cfg internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stickyboard",
	Short: "A semantic sticky-note board with AI-assisted placement",
	Long: `A sticky-note board whose two axes carry meaning.

Notes live on a 0-10 grid per axis. Axis labels describe what each axis
means, and an OpenAI-compatible or Gemini model can suggest labels, title
a session, place new notes, move notes to where they fit, and generate
notes for an empty spot.

Quick Start:
  stickyboard session add                   # Start a session
  stickyboard labels suggest "team roadmap" # Let the model name the axes
  stickyboard ai place "Hire a designer"    # Let the model place a note
  stickyboard show                          # Render the active session
  stickyboard serve                         # Serve the board over HTTP`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)

		loaded, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			loaded.Storage.Path = dbPath
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(os.Stderr, fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

// resolvedConfigPath returns --config or the default location
func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return internal.DefaultConfigPath()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.stickyboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Board database path (overrides storage.path)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
