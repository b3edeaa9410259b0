package cmd

import (
	"time"

	"github.com/guipilot/guipilot/internal/control"
	"github.com/guipilot/guipilot/internal/output"
	"github.com/spf13/cobra"
)

var elementsCmd = &cobra.Command{
	Use:   "elements <app>",
	Short: "List the UI element tree of an application's focused window",
	Long: `Read the accessibility tree of the app's focused window and print it as a
compact element tree. Every node carries a stable id that the action, read,
and scroll commands accept.

Examples:
  guipilot elements Notes
  guipilot elements com.apple.Notes --depth 5`,
	Args: cobra.ExactArgs(1),
	RunE: runElements,
}

func init() {
	rootCmd.AddCommand(elementsCmd)
	elementsCmd.Flags().Int("depth", 0, "Max depth to traverse (0 = default bound)")
}

func runElements(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")

	ctrl, err := newController()
	if err != nil {
		return err
	}
	node, err := ctrl.ListElements(cmd.Context(), control.ListOptions{App: args[0], MaxDepth: depth})
	if err != nil {
		return err
	}
	return output.Print(output.TreeResult{
		App:  args[0],
		TS:   time.Now().Unix(),
		Tree: node,
	})
}
