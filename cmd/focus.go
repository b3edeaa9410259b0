package cmd

import (
	"github.com/guipilot/guipilot/internal/output"
	"github.com/spf13/cobra"
)

var focusCmd = &cobra.Command{
	Use:   "focus <app>",
	Short: "Bring a running application to the front",
	Args:  cobra.ExactArgs(1),
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	ctrl, err := newController()
	if err != nil {
		return err
	}
	if err := ctrl.FocusApp(cmd.Context(), args[0]); err != nil {
		return err
	}
	return output.Print(output.ActionResult{App: args[0], Action: "focus", Status: "ok"})
}
