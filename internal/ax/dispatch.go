package ax

import (
	"errors"
	"fmt"
	"strings"
)

// KAXErrorCannotComplete is the macOS accessibility error observed on
// certain menu/press races where the action reliably still occurs even
// though the synchronous call reports failure.
const KAXErrorCannotComplete = -25204

// DispatchConfig tunes action dispatch. The zero value is not usable;
// start from DefaultDispatchConfig.
type DispatchConfig struct {
	// BenignCodes are platform error codes treated as success: the action
	// is known to take effect despite the error. An empty set disables the
	// policy.
	BenignCodes []int

	// ConfirmKeyTaps is how many times the confirming key is simulated
	// after a text entry. Two taps compensate for platforms where a single
	// confirmation is unreliable.
	ConfirmKeyTaps int

	// MaxClimb caps the ancestor walk so a malformed tree cannot loop
	// the dispatcher forever.
	MaxClimb int

	// PressKey simulates a named key press ("return") for text-entry
	// confirmation. Nil disables key simulation.
	PressKey func(key string) error
}

// DefaultDispatchConfig returns the dispatch policy used in production.
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		BenignCodes:    []int{KAXErrorCannotComplete},
		ConfirmKeyTaps: 2,
		MaxClimb:       25,
	}
}

// textEntryActions require a value and set the element's value attribute.
var textEntryActions = map[string]bool{
	"type":     true,
	"input":    true,
	"setvalue": true,
}

// scrollActions map directly to native paging actions.
var scrollActions = map[string]bool{
	"scrollup":    true,
	"scrolldown":  true,
	"scrollleft":  true,
	"scrollright": true,
}

// NormalizeAction lowercases an action name and collapses aliases.
func NormalizeAction(action string) string {
	a := strings.ToLower(strings.TrimSpace(action))
	if a == "performclick" {
		return "press"
	}
	return a
}

// IsTextEntryAction reports whether the (normalized) action writes a value.
func IsTextEntryAction(action string) bool {
	return textEntryActions[NormalizeAction(action)]
}

// IsScrollAction reports whether the (normalized) action is a directional
// scroll.
func IsScrollAction(action string) bool {
	return scrollActions[NormalizeAction(action)]
}

// Perform dispatches action against el.
//
// Text-entry actions set the value attribute, then best-effort invoke the
// element's confirm action and tap the confirming key; they succeed once
// the value is set regardless of confirmation outcome. Scroll actions are
// invoked once on the element itself. Everything else (press, open,
// showmenu, raise, ...) is attempted on the element and then retried up
// the ancestor chain, since actionability is often declared on a wrapper
// rather than the addressed node. Side effects are fire-and-forget; there
// is no rollback.
func Perform(el Element, action string, value *string, cfg DispatchConfig) error {
	if el == nil {
		return ErrNotFound
	}
	a := NormalizeAction(action)
	if a == "" {
		return fmt.Errorf("%w: empty action", ErrActionUnsupported)
	}

	switch {
	case textEntryActions[a]:
		return performTextEntry(el, value, cfg)
	case scrollActions[a]:
		if err := el.Perform(a); err != nil && !isBenign(err, cfg) {
			return fmt.Errorf("scroll %s: %w", a, err)
		}
		return nil
	default:
		return performWithClimb(el, a, cfg)
	}
}

func performTextEntry(el Element, value *string, cfg DispatchConfig) error {
	if value == nil {
		return ErrValueRequired
	}
	if err := el.SetAttr(AttrValue, *value); err != nil && !isBenign(err, cfg) {
		return fmt.Errorf("set value: %w", err)
	}
	// Confirmation is best-effort and only for elements that advertise a
	// confirm action: the value is already in place, and blindly tapping
	// the confirm key could submit an unrelated form.
	if supportsAction(el, "confirm") {
		_ = el.Perform("confirm")
		if cfg.PressKey != nil {
			for i := 0; i < cfg.ConfirmKeyTaps; i++ {
				_ = cfg.PressKey("return")
			}
		}
	}
	return nil
}

func performWithClimb(el Element, action string, cfg DispatchConfig) error {
	maxClimb := cfg.MaxClimb
	if maxClimb <= 0 {
		maxClimb = 25
	}

	var lastErr error
	visited := make([]Element, 0, 8)
	cur := el
	for hops := 0; cur != nil && hops <= maxClimb; hops++ {
		if seenElement(visited, cur) {
			break
		}
		visited = append(visited, cur)

		if supportsAction(cur, action) {
			err := cur.Perform(action)
			if err == nil || isBenign(err, cfg) {
				return nil
			}
			lastErr = err
		}

		parent, err := cur.Parent()
		if err != nil {
			break
		}
		cur = parent
	}

	if lastErr != nil {
		return fmt.Errorf("%w: %q (%v)", ErrActionUnsupported, action, lastErr)
	}
	return fmt.Errorf("%w: %q", ErrActionUnsupported, action)
}

func supportsAction(el Element, action string) bool {
	for _, a := range SupportedActions(el) {
		if a == action {
			return true
		}
	}
	return false
}

// seenElement guards against parent cycles using interface identity; no
// cycles are expected, but the walk must terminate on malformed trees.
func seenElement(visited []Element, el Element) bool {
	for _, v := range visited {
		if v == el {
			return true
		}
	}
	return false
}

func isBenign(err error, cfg DispatchConfig) bool {
	var pe *PlatformError
	if !errors.As(err, &pe) {
		return false
	}
	for _, code := range cfg.BenignCodes {
		if pe.Code == code {
			return true
		}
	}
	return false
}
