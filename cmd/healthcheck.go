package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
	"github.com/iksnae/stickyboard/internal/prompt"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the board database and model backend are usable",
	Long: `Check the health of stickyboard by verifying:
  • Configuration loading
  • Board database access
  • Persisted board state
  • Viewport size
  • Model backend configuration

Pass --verbose for paths and per-step details.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 Stickyboard Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		path := resolvedConfigPath()
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintln(out, successStyle.Render("✅ Config file loaded"))
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No config file, using defaults"))
		}
		if verbose {
			fmt.Fprintf(out, "   Config: %s\n", path)
		}
		fmt.Fprintln(out)

		// Step 2: Database
		fmt.Fprintln(out, infoStyle.Render("Step 2: Opening board database..."))
		db, err := internal.OpenDatabase(cfg.Storage.Path)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to open database:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		defer db.Close()
		fmt.Fprintln(out, successStyle.Render("✅ Database available"))
		if verbose {
			fmt.Fprintf(out, "   Database: %s\n", cfg.Storage.Path)
		}
		fmt.Fprintln(out)

		// Step 3: Board state
		fmt.Fprintln(out, infoStyle.Render("Step 3: Reading board state..."))
		state, ok, err := internal.NewStorage(db).LoadState()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Board state is unreadable:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		if ok {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d session(s) and %d note(s)", len(state.Sessions), len(state.Notes))))
			if state.ActiveSession == nil {
				fmt.Fprintln(out, warningStyle.Render("⚠️  No active session"))
			} else if verbose {
				fmt.Fprintf(out, "   Active session: %d\n", *state.ActiveSession)
			}
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Board is empty"))
			fmt.Fprintln(out, "   Start a session with `stickyboard session add`")
		}
		fmt.Fprintln(out)

		// Step 4: Viewport
		fmt.Fprintln(out, infoStyle.Render("Step 4: Checking viewport..."))
		viewportOK := cfg.Viewport.Measured()
		if viewportOK {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Viewport %.0fx%.0f", cfg.Viewport.Width, cfg.Viewport.Height)))
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Viewport not set; notes cannot be placed"))
		}
		fmt.Fprintln(out)

		// Step 5: Model backend
		fmt.Fprintln(out, infoStyle.Render("Step 5: Checking model backend..."))
		_, llmErr := prompt.NewCompleter(cmd.Context(), cfg.LLM)
		if llmErr == nil && cfg.LLM.APIKey == "" {
			llmErr = prompt.ErrMissingAPIKey
		}
		if llmErr == nil {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %s backend ready (model %s)", cfg.LLM.Provider, prompt.ModelFor(cfg.LLM))))
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  AI actions unavailable:"), llmErr)
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if viewportOK && llmErr == nil {
			fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
			return nil
		}
		fmt.Fprintln(out, warningStyle.Render("⚠️  Board is usable with limitations"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
