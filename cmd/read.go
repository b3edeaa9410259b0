package cmd

import (
	"github.com/guipilot/guipilot/internal/output"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <app> <id>",
	Short: "Read the current value of a UI element",
	Long: `Read the element's value through the accessibility layer. Unlike actions,
reads never fall back to other channels: a simulated channel cannot
observe state.

Examples:
  guipilot read Calculator 0/0/1
  guipilot read Notes "Title@0/1/0"`,
	Args: cobra.ExactArgs(2),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	ctrl, err := newController()
	if err != nil {
		return err
	}
	value, err := ctrl.ReadValue(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return output.Print(output.ValueResult{App: args[0], ID: args[1], Value: value})
}
