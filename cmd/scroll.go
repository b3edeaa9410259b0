package cmd

import (
	"github.com/guipilot/guipilot/internal/output"
	"github.com/spf13/cobra"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll <app> <id> <direction>",
	Short: "Scroll within a UI element",
	Long: `Scroll the addressed element up, down, left, or right. The accessibility
paging action is tried first, then a wheel event at the element's screen
position.

Examples:
  guipilot scroll Notes 0/1 down
  guipilot scroll Safari 0/0 up --amount 10`,
	Args: cobra.ExactArgs(3),
	RunE: runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().Int("amount", 0, "Wheel clicks for the coordinate fallback (default: 5)")
}

func runScroll(cmd *cobra.Command, args []string) error {
	amount, _ := cmd.Flags().GetInt("amount")

	ctrl, err := newController()
	if err != nil {
		return err
	}
	outcome, err := ctrl.Scroll(cmd.Context(), args[0], args[1], args[2], amount)
	if err != nil {
		return err
	}
	return output.Print(output.ActionResult{
		App:     args[0],
		ID:      args[1],
		Action:  "scroll" + args[2],
		Status:  "ok",
		Channel: outcome.Channel,
		Detail:  outcome.Detail,
	})
}
