package cmd

import (
	"github.com/guipilot/guipilot/internal/control"
	"github.com/guipilot/guipilot/internal/output"
	"github.com/spf13/cobra"
)

var actionCmd = &cobra.Command{
	Use:   "action <app> <id> [action]",
	Short: "Perform an action on a UI element",
	Long: `Dispatch an action (press, showmenu, open, type, scrollup, ...) on the
element addressed by id. The accessibility layer is tried first; if it
refuses, guipilot falls back to application scripting and finally to a
simulated click at the element's screen position. The response reports
which channel carried out the action.

The action defaults to press. Text-entry actions (type, input, setvalue)
require --value.

Examples:
  guipilot action Notes 0/1/2
  guipilot action Notes 0/1/2 showmenu
  guipilot action Notes "New Note@0/1/2" press
  guipilot action Safari 0/0/3 type --value "hello world"`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runAction,
}

func init() {
	rootCmd.AddCommand(actionCmd)
	actionCmd.Flags().String("value", "", "Value for text-entry actions")
}

func runAction(cmd *cobra.Command, args []string) error {
	action := "press"
	if len(args) == 3 {
		action = args[2]
	}

	opts := control.ActionOptions{App: args[0], ID: args[1], Action: action}
	if cmd.Flags().Changed("value") {
		value, _ := cmd.Flags().GetString("value")
		opts.Value = &value
	}

	ctrl, err := newController()
	if err != nil {
		return err
	}
	outcome, err := ctrl.PerformAction(cmd.Context(), opts)
	if err != nil {
		return err
	}
	return output.Print(output.ActionResult{
		App:     opts.App,
		ID:      opts.ID,
		Action:  action,
		Status:  "ok",
		Channel: outcome.Channel,
		Detail:  outcome.Detail,
	})
}
