package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
)

var viewportCmd = &cobra.Command{
	Use:   "viewport [width height]",
	Short: "Show or set the canvas size notes are projected onto",
	Long: `Show or set the canvas size in pixels.

Setting the viewport re-projects every note from its relative position,
saves the board and writes the new size to the config file.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or <width> <height>, got %d argument(s)", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			vp := cfg.Viewport
			if !vp.Measured() {
				internal.PrintWarning(out, "viewport is not set; notes cannot be placed")
				return nil
			}
			fmt.Fprintf(out, "%.0fx%.0f\n", vp.Width, vp.Height)
			return nil
		}

		size, err := parseFloats(args...)
		if err != nil {
			return err
		}
		vp := internal.Viewport{Width: size[0], Height: size[1]}
		if !vp.Measured() {
			return fmt.Errorf("width and height must be positive")
		}

		cfg.Viewport = vp
		if err := withBoard(func(env *boardEnv) error {
			env.board.Resize(vp)
			return nil
		}); err != nil {
			return err
		}
		if err := saveViewport(resolvedConfigPath(), vp); err != nil {
			return err
		}
		internal.PrintSuccess(out, fmt.Sprintf("Viewport set to %.0fx%.0f", vp.Width, vp.Height))
		return nil
	},
}

// saveViewport rewrites only the viewport of the config file, leaving out
// environment and flag overrides such as API keys and --db
func saveViewport(path string, vp internal.Viewport) error {
	fileCfg, err := internal.LoadFileConfig(path)
	if err != nil {
		return err
	}
	fileCfg.Viewport = vp
	return fileCfg.Save(path)
}

func init() {
	rootCmd.AddCommand(viewportCmd)
}
