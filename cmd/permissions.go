package cmd

import (
	"github.com/guipilot/guipilot/internal/output"
	"github.com/spf13/cobra"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Check accessibility permissions",
	Long: `Report whether this process is trusted to use the accessibility APIs.
With --prompt, the OS shows its grant dialog if the permission is
missing. With --open, the relevant privacy settings pane is opened.`,
	Args: cobra.NoArgs,
	RunE: runPermissions,
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
	permissionsCmd.Flags().Bool("prompt", false, "Ask the OS to show its permission prompt")
	permissionsCmd.Flags().Bool("open", false, "Open the privacy settings pane")
}

func runPermissions(cmd *cobra.Command, args []string) error {
	prompt, _ := cmd.Flags().GetBool("prompt")
	open, _ := cmd.Flags().GetBool("open")

	ctrl, err := newController()
	if err != nil {
		return err
	}
	if open {
		if err := ctrl.OpenPrivacySettings(); err != nil {
			return err
		}
	}
	state := ctrl.CheckPermissions(prompt)
	return output.Print(output.PermissionsResult{Trusted: state.Trusted, Hint: state.Hint})
}
