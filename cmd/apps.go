package cmd

import (
	"time"

	"github.com/guipilot/guipilot/internal/output"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List running applications",
	Long: `List the visible running applications with their bundle ids and PIDs.
Any of the listed names or bundle ids can be passed as the <app>
argument of other commands.`,
	Args: cobra.NoArgs,
	RunE: runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)
}

func runApps(cmd *cobra.Command, args []string) error {
	ctrl, err := newController()
	if err != nil {
		return err
	}
	apps, err := ctrl.RunningApps(cmd.Context())
	if err != nil {
		return err
	}
	return output.Print(output.AppsResult{TS: time.Now().Unix(), Apps: apps})
}
