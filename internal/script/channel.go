package script

import (
	"context"
	"strings"
)

// Channel exposes the scripting control tier as operations on named UI
// elements. Element addressing is by visible label: scripts cannot see the
// path identifiers the accessibility tree uses, so the caller passes the
// element's display name.
type Channel struct {
	Runner *Runner
}

// NewChannel returns a Channel backed by a default Runner.
func NewChannel() *Channel {
	return &Channel{Runner: NewRunner()}
}

// PressButton clicks the labeled button in the app's front window. When
// the strict button form fails it retries against any named UI element,
// which covers links, rows, and menu entries.
func (c *Channel) PressButton(ctx context.Context, appRef, label string) error {
	if _, err := c.Runner.Run(ctx, PressButtonScript(appRef, label)); err == nil {
		return nil
	}
	_, err := c.Runner.Run(ctx, ClickMenuItemScript(appRef, label))
	return err
}

// SetTextField writes value into the labeled text field of the app's
// front window.
func (c *Channel) SetTextField(ctx context.Context, appRef, label, value string) error {
	_, err := c.Runner.Run(ctx, SetTextFieldScript(appRef, label, value))
	return err
}

// TextFieldValue reads the labeled text field of the app's front window.
func (c *Channel) TextFieldValue(ctx context.Context, appRef, label string) (string, error) {
	return c.Runner.Run(ctx, TextFieldValueScript(appRef, label))
}

// Launch starts the application and brings it to the front.
func (c *Channel) Launch(ctx context.Context, appRef string) error {
	_, err := c.Runner.Run(ctx, LaunchScript(appRef))
	return err
}

// Activate brings a running application to the front.
func (c *Channel) Activate(ctx context.Context, appRef string) error {
	_, err := c.Runner.Run(ctx, ActivateScript(appRef))
	return err
}

// Processes returns the names of the visible running processes.
func (c *Channel) Processes(ctx context.Context) ([]string, error) {
	out, err := c.Runner.Run(ctx, ListProcessesScript())
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	parts := strings.Split(out, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
