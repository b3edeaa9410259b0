package script

import (
	"fmt"
	"strings"

	"github.com/guipilot/guipilot/internal/platform"
)

// Quote renders s as an AppleScript string literal.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// AppReference renders the AppleScript specifier for an application given
// either a display name or a bundle identifier.
func AppReference(appRef string) string {
	if platform.AppRefIsBundleID(appRef) {
		return "application id " + Quote(appRef)
	}
	return "application " + Quote(appRef)
}

// LaunchScript starts the application and brings it to the front.
func LaunchScript(appRef string) string {
	return fmt.Sprintf("tell %s\nlaunch\nactivate\nend tell", AppReference(appRef))
}

// ActivateScript brings an already-running application to the front.
func ActivateScript(appRef string) string {
	return fmt.Sprintf("tell %s to activate", AppReference(appRef))
}

// PressButtonScript clicks the named button in the front window of the
// application's System Events process.
func PressButtonScript(processName, label string) string {
	return fmt.Sprintf(
		"tell application \"System Events\" to tell process %s\nclick button %s of front window\nend tell",
		Quote(processName), Quote(label))
}

// ClickMenuItemScript clicks a named UI element (menu item, row, link)
// anywhere in the front window when it is not a plain button.
func ClickMenuItemScript(processName, label string) string {
	return fmt.Sprintf(
		"tell application \"System Events\" to tell process %s\nclick (first UI element of front window whose name is %s)\nend tell",
		Quote(processName), Quote(label))
}

// SetTextFieldScript writes value into the named text field of the front
// window, falling back to the first text field when the name is empty.
func SetTextFieldScript(processName, label, value string) string {
	field := "text field 1"
	if label != "" {
		field = "text field " + Quote(label)
	}
	return fmt.Sprintf(
		"tell application \"System Events\" to tell process %s\nset value of %s of front window to %s\nend tell",
		Quote(processName), field, Quote(value))
}

// TextFieldValueScript reads the named text field of the front window.
func TextFieldValueScript(processName, label string) string {
	field := "text field 1"
	if label != "" {
		field = "text field " + Quote(label)
	}
	return fmt.Sprintf(
		"tell application \"System Events\" to tell process %s\nget value of %s of front window\nend tell",
		Quote(processName), field)
}

// ListProcessesScript lists the visible (non-background) process names.
func ListProcessesScript() string {
	return `tell application "System Events" to get name of every process whose background only is false`
}
