package cmd

import (
	"time"

	"github.com/guipilot/guipilot/internal/output"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <app>",
	Short: "Launch an application and bring it to the front",
	Long: `Launch the referenced application (by name or bundle id) and wait briefly
for it to register with the accessibility layer. Already-running apps are
brought to the front.

Examples:
  guipilot start Notes
  guipilot start com.apple.Safari --wait 2000 --focus`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().Int("wait", 1000, "Milliseconds to wait for the app to settle after launch")
	startCmd.Flags().Bool("focus", false, "Bring the app to the front after the settle wait")
}

func runStart(cmd *cobra.Command, args []string) error {
	waitMs, _ := cmd.Flags().GetInt("wait")
	focus, _ := cmd.Flags().GetBool("focus")

	ctrl, err := newController()
	if err != nil {
		return err
	}
	if err := ctrl.StartApp(cmd.Context(), args[0], time.Duration(waitMs)*time.Millisecond, focus); err != nil {
		return err
	}
	return output.Print(output.ActionResult{App: args[0], Action: "start", Status: "ok"})
}
