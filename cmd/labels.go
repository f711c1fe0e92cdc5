package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iksnae/stickyboard/internal"
)

var (
	labelXBrief string
	labelYBrief string
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Show or change the meaning of the board axes",
}

var labelsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the axis labels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openBoard()
		if err != nil {
			return err
		}
		defer env.close()

		displayLabels(cmd.OutOrStdout(), env.board.AxisLabels())
		return nil
	},
}

var labelsSetCmd = &cobra.Command{
	Use:   "set <x-label> <y-label>",
	Short: "Set the axis labels by hand",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		labels := internal.AxisLabels{
			X: internal.Axis{Label: strings.TrimSpace(args[0]), Brief: labelXBrief},
			Y: internal.Axis{Label: strings.TrimSpace(args[1]), Brief: labelYBrief},
		}
		if labels.X.Label == "" || labels.Y.Label == "" {
			return fmt.Errorf("axis labels must not be empty")
		}
		return withBoard(func(env *boardEnv) error {
			env.board.SetAxisLabels(labels)
			displayLabels(cmd.OutOrStdout(), labels)
			return nil
		})
	},
}

var labelsSuggestCmd = &cobra.Command{
	Use:   "suggest <topic>",
	Short: "Ask the model to name the axes for a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		return withBoard(func(env *boardEnv) error {
			assistant, err := newAssistant(cmd.Context(), env.board)
			if err != nil {
				return err
			}
			err = internal.ShowProgress(cmd.Context(), "Suggesting axis labels", func() error {
				_, err := assistant.SuggestAxisLabels(cmd.Context(), topic)
				return err
			})
			if err != nil {
				return err
			}
			displayLabels(cmd.OutOrStdout(), env.board.AxisLabels())
			return nil
		})
	},
}

func displayLabels(out io.Writer, labels internal.AxisLabels) {
	fmt.Fprintln(out, headerStyle.Render("🧭 Axis labels"))
	for _, axis := range []struct {
		name string
		axis internal.Axis
	}{{"X", labels.X}, {"Y", labels.Y}} {
		fmt.Fprintf(out, "  %s  %s\n", titleStyle.Render(axis.name), axis.axis.Label)
		if axis.axis.Brief != "" {
			fmt.Fprintf(out, "     %s\n", dateStyle.Render(axis.axis.Brief))
		}
	}
}

func init() {
	rootCmd.AddCommand(labelsCmd)
	labelsCmd.AddCommand(labelsShowCmd, labelsSetCmd, labelsSuggestCmd)

	labelsSetCmd.Flags().StringVar(&labelXBrief, "x-brief", "", "What the x axis measures")
	labelsSetCmd.Flags().StringVar(&labelYBrief, "y-brief", "", "What the y axis measures")
}
