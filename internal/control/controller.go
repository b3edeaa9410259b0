// Package control orchestrates the three control tiers over a desktop
// application: the accessibility element tree, application scripting, and
// raw coordinate input. Reads go through accessibility only; actions fall
// back tier by tier until one succeeds.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/guipilot/guipilot/internal/ax"
	"github.com/guipilot/guipilot/internal/platform"
)

// Scripter is the scripting control tier. Satisfied by *script.Channel.
type Scripter interface {
	PressButton(ctx context.Context, appRef, label string) error
	SetTextField(ctx context.Context, appRef, label, value string) error
	Launch(ctx context.Context, appRef string) error
	Activate(ctx context.Context, appRef string) error
	Processes(ctx context.Context) ([]string, error)
}

// Channel names reported on action outcomes.
const (
	ChannelAccessibility = "accessibility"
	ChannelScript        = "script"
	ChannelCoordinates   = "coordinates"
)

// Config carries the tunables shared by all operations.
type Config struct {
	Dispatch ax.DispatchConfig
	Input    platform.InputConfig
}

// DefaultConfig returns the production policy.
func DefaultConfig() Config {
	return Config{
		Dispatch: ax.DefaultDispatchConfig(),
		Input:    platform.DefaultInputConfig(),
	}
}

// Controller exposes the top-level operations. One Controller is shared by
// the CLI commands and the MCP tools.
type Controller struct {
	provider *platform.Provider
	scripts  Scripter
	log      *slog.Logger
	cfg      Config
}

// New wires a Controller. scripts may be nil to disable the scripting
// tier; logger may be nil for silence.
func New(provider *platform.Provider, scripts Scripter, logger *slog.Logger, cfg Config) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{provider: provider, scripts: scripts, log: logger, cfg: cfg}
	if c.cfg.Dispatch.PressKey == nil && provider != nil && provider.Inputter != nil {
		c.cfg.Dispatch.PressKey = provider.Inputter.KeyTap
	}
	return c
}

// requireTrust fast-fails operations that need the accessibility APIs.
func (c *Controller) requireTrust() error {
	if c.provider == nil || c.provider.Permissions == nil {
		return nil
	}
	if !c.provider.Permissions.AccessibilityTrusted(false) {
		return fmt.Errorf("%w: grant access in System Settings > Privacy & Security > Accessibility, or run `guipilot permissions --open`", ax.ErrPermissionDenied)
	}
	return nil
}

func (c *Controller) appRoot(appRef string) (ax.Element, error) {
	if c.provider == nil || c.provider.Trees == nil {
		return nil, platform.ErrUnsupported
	}
	root, err := c.provider.Trees.AppRoot(appRef)
	if err != nil {
		return nil, fmt.Errorf("resolve app %q: %w", appRef, err)
	}
	return root, nil
}

// ListOptions scope a tree listing.
type ListOptions struct {
	App      string
	MaxDepth int // 0 = default bound
}

// ListElements serializes the element tree of the app's focused window.
func (c *Controller) ListElements(ctx context.Context, opts ListOptions) (*ax.Node, error) {
	if err := c.requireTrust(); err != nil {
		return nil, err
	}
	root, err := c.appRoot(opts.App)
	if err != nil {
		return nil, err
	}
	node, err := ax.Serializer{MaxDepth: opts.MaxDepth}.Serialize(root)
	if err != nil {
		return nil, fmt.Errorf("serialize window of %q: %w", opts.App, err)
	}
	c.log.Debug("listed elements", "app", opts.App)
	return node, nil
}

// ActionOptions describe one action dispatch.
type ActionOptions struct {
	App    string
	ID     string
	Action string
	Value  *string
}

// ActionOutcome reports which tier carried out the action.
type ActionOutcome struct {
	Channel string
	Detail  string
}

// PerformAction dispatches an action on the addressed element, falling
// back from accessibility to scripting to coordinates. The element's
// screen position and display name are captured before the first attempt
// so the fallback tiers have a target even when the handle goes stale
// mid-dispatch.
func (c *Controller) PerformAction(ctx context.Context, opts ActionOptions) (ActionOutcome, error) {
	if err := c.requireTrust(); err != nil {
		return ActionOutcome{}, err
	}
	root, err := c.appRoot(opts.App)
	if err != nil {
		return ActionOutcome{}, err
	}
	el, err := ax.Resolve(root, opts.ID)
	if err != nil {
		return ActionOutcome{}, err
	}

	name := ax.DisplayName(el)
	cx, cy, haveCenter := ax.Center(el)

	axErr := ax.Perform(el, opts.Action, opts.Value, c.cfg.Dispatch)
	if axErr == nil {
		return ActionOutcome{Channel: ChannelAccessibility}, nil
	}
	c.log.Warn("accessibility dispatch failed, trying fallbacks",
		"app", opts.App, "id", opts.ID, "action", opts.Action, "err", axErr)

	if err := c.tryScript(ctx, opts, name); err == nil {
		return ActionOutcome{Channel: ChannelScript, Detail: "addressed by label " + name}, nil
	} else if !errors.Is(err, errTierUnavailable) {
		c.log.Debug("script tier failed", "app", opts.App, "err", err)
	}

	if err := c.tryCoordinates(opts, cx, cy, haveCenter); err == nil {
		return ActionOutcome{Channel: ChannelCoordinates, Detail: fmt.Sprintf("at (%d,%d)", cx, cy)}, nil
	} else if errors.Is(err, platform.ErrAborted) {
		return ActionOutcome{}, err
	} else if !errors.Is(err, errTierUnavailable) {
		c.log.Debug("coordinate tier failed", "app", opts.App, "err", err)
	}

	return ActionOutcome{}, axErr
}

// errTierUnavailable marks a fallback tier that cannot apply to this
// action at all, as opposed to one that was tried and failed.
var errTierUnavailable = errors.New("tier unavailable")

func (c *Controller) tryScript(ctx context.Context, opts ActionOptions, name string) error {
	if c.scripts == nil || name == "" {
		return errTierUnavailable
	}
	switch {
	case ax.IsTextEntryAction(opts.Action):
		if opts.Value == nil {
			return errTierUnavailable
		}
		return c.scripts.SetTextField(ctx, opts.App, name, *opts.Value)
	case ax.IsScrollAction(opts.Action):
		// Scripting has no scroll verb.
		return errTierUnavailable
	default:
		return c.scripts.PressButton(ctx, opts.App, name)
	}
}

func (c *Controller) tryCoordinates(opts ActionOptions, cx, cy int, haveCenter bool) error {
	in := c.inputter()
	if in == nil || !haveCenter {
		return errTierUnavailable
	}
	switch {
	case ax.IsTextEntryAction(opts.Action):
		if opts.Value == nil {
			return errTierUnavailable
		}
		if err := in.Click(cx, cy); err != nil {
			return err
		}
		return in.TypeText(*opts.Value)
	case ax.IsScrollAction(opts.Action):
		dx, dy := scrollDelta(opts.Action, defaultScrollAmount)
		return in.Scroll(cx, cy, dx, dy)
	default:
		return in.Click(cx, cy)
	}
}

func (c *Controller) inputter() platform.Inputter {
	if c.provider == nil {
		return nil
	}
	return c.provider.Inputter
}

// ReadValue reads the element's current value through the accessibility
// tier only. Reads never fall back: a simulated channel cannot observe
// state, and a wrong answer is worse than an error.
func (c *Controller) ReadValue(ctx context.Context, appRef, id string) (string, error) {
	if err := c.requireTrust(); err != nil {
		return "", err
	}
	root, err := c.appRoot(appRef)
	if err != nil {
		return "", err
	}
	el, err := ax.Resolve(root, id)
	if err != nil {
		return "", err
	}
	return ax.ReadValue(el), nil
}

const defaultScrollAmount = 5

// scrollDelta maps a directional scroll action to wheel deltas. Positive
// dy scrolls content up.
func scrollDelta(action string, amount int) (dx, dy int) {
	if amount <= 0 {
		amount = defaultScrollAmount
	}
	switch ax.NormalizeAction(action) {
	case "scrollup":
		return 0, amount
	case "scrolldown":
		return 0, -amount
	case "scrollleft":
		return amount, 0
	case "scrollright":
		return -amount, 0
	}
	return 0, 0
}

// Scroll scrolls the addressed element in a direction. The accessibility
// paging action is tried first, then a wheel event at the element center.
func (c *Controller) Scroll(ctx context.Context, appRef, id, direction string, amount int) (ActionOutcome, error) {
	action := "scroll" + direction
	if !ax.IsScrollAction(action) {
		return ActionOutcome{}, fmt.Errorf("unknown scroll direction %q (expected up, down, left, or right)", direction)
	}
	if err := c.requireTrust(); err != nil {
		return ActionOutcome{}, err
	}
	root, err := c.appRoot(appRef)
	if err != nil {
		return ActionOutcome{}, err
	}
	el, err := ax.Resolve(root, id)
	if err != nil {
		return ActionOutcome{}, err
	}
	cx, cy, haveCenter := ax.Center(el)

	axErr := ax.Perform(el, action, nil, c.cfg.Dispatch)
	if axErr == nil {
		return ActionOutcome{Channel: ChannelAccessibility}, nil
	}
	if in := c.inputter(); in != nil && haveCenter {
		dx, dy := scrollDelta(action, amount)
		if err := in.Scroll(cx, cy, dx, dy); err == nil {
			return ActionOutcome{Channel: ChannelCoordinates, Detail: fmt.Sprintf("at (%d,%d)", cx, cy)}, nil
		} else if errors.Is(err, platform.ErrAborted) {
			return ActionOutcome{}, err
		}
	}
	return ActionOutcome{}, axErr
}

// RunningApps lists running applications, preferring the native process
// table and falling back to scripting when it is unavailable.
func (c *Controller) RunningApps(ctx context.Context) ([]platform.AppInfo, error) {
	if c.provider != nil && c.provider.Apps != nil {
		apps, err := c.provider.Apps.RunningApps()
		if err == nil {
			return apps, nil
		}
		c.log.Warn("native app listing failed, trying scripting", "err", err)
	}
	if c.scripts == nil {
		return nil, platform.ErrUnsupported
	}
	names, err := c.scripts.Processes(ctx)
	if err != nil {
		return nil, err
	}
	apps := make([]platform.AppInfo, 0, len(names))
	for _, name := range names {
		apps = append(apps, platform.AppInfo{Name: name})
	}
	return apps, nil
}

// StartApp launches (or foregrounds) an application and waits briefly for
// it to register with the accessibility layer. With focus, the app is
// additionally brought to the front once the wait elapses; a failed focus
// does not fail the launch.
func (c *Controller) StartApp(ctx context.Context, appRef string, wait time.Duration, focus bool) error {
	if err := c.launchApp(ctx, appRef); err != nil {
		return err
	}
	c.settle(ctx, wait)
	if focus {
		if err := c.FocusApp(ctx, appRef); err != nil {
			c.log.Warn("focus after launch failed", "app", appRef, "err", err)
		}
	}
	return nil
}

func (c *Controller) launchApp(ctx context.Context, appRef string) error {
	var launchErr error
	if c.provider != nil && c.provider.Apps != nil {
		if launchErr = c.provider.Apps.Launch(appRef); launchErr == nil {
			return nil
		}
		c.log.Warn("native launch failed, trying scripting", "app", appRef, "err", launchErr)
	}
	if c.scripts == nil {
		if launchErr != nil {
			return launchErr
		}
		return platform.ErrUnsupported
	}
	return c.scripts.Launch(ctx, appRef)
}

// FocusApp brings a running application to the front.
func (c *Controller) FocusApp(ctx context.Context, appRef string) error {
	if c.provider != nil && c.provider.Apps != nil {
		if err := c.provider.Apps.Focus(appRef); err == nil {
			return nil
		}
	}
	if c.scripts == nil {
		return platform.ErrUnsupported
	}
	return c.scripts.Activate(ctx, appRef)
}

func (c *Controller) settle(ctx context.Context, wait time.Duration) {
	if wait <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
}

// TrustState reports the accessibility permission, optionally asking the
// OS to show its grant prompt.
type TrustState struct {
	Trusted bool
	Hint    string
}

// CheckPermissions reports whether the process may drive the UI.
func (c *Controller) CheckPermissions(prompt bool) TrustState {
	if c.provider == nil || c.provider.Permissions == nil {
		return TrustState{Trusted: false, Hint: "no platform backend available"}
	}
	trusted := c.provider.Permissions.AccessibilityTrusted(prompt)
	state := TrustState{Trusted: trusted}
	if !trusted {
		state.Hint = "grant access in System Settings > Privacy & Security > Accessibility"
	}
	return state
}

// OpenPrivacySettings opens the OS pane where the permission is granted.
func (c *Controller) OpenPrivacySettings() error {
	if c.provider == nil || c.provider.Permissions == nil {
		return platform.ErrUnsupported
	}
	return c.provider.Permissions.OpenPrivacySettings()
}
