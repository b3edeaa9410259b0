package ax

import "strings"

// Get reads an attribute, converting any failure into an absent value.
// This is the only way the rest of the engine reads attributes.
func Get(el Element, name string) (string, bool) {
	if el == nil {
		return "", false
	}
	v, err := el.Attr(name)
	if err != nil {
		return "", false
	}
	return v, true
}

// StringAttr is Get with the absent case flattened to "".
func StringAttr(el Element, name string) string {
	v, _ := Get(el, name)
	return v
}

// SupportedActions returns the element's action names, defaulting to an
// empty set on any failure.
func SupportedActions(el Element) []string {
	if el == nil {
		return nil
	}
	actions, err := el.Actions()
	if err != nil {
		return nil
	}
	return actions
}

// Center returns the element's on-screen center point. ok is false when
// geometry is unreadable. Coordinates are cheap to read and are captured
// before action attempts so the coordinate channel has a target even after
// the accessibility channel fails.
func Center(el Element) (x, y int, ok bool) {
	if el == nil {
		return 0, 0, false
	}
	fx, fy, fw, fh, err := el.Frame()
	if err != nil {
		return 0, 0, false
	}
	return int(fx + fw/2), int(fy + fh/2), true
}

// RetainedChildren returns the element's children minus any child whose
// role attribute cannot be read at all (a stale or half-torn-down handle).
// Both the serializer and the resolver enumerate children through this
// filter, so the child indices baked into path identifiers stay consistent
// between the two.
func RetainedChildren(el Element) []Element {
	if el == nil {
		return nil
	}
	kids, err := el.Children()
	if err != nil {
		return nil
	}
	retained := make([]Element, 0, len(kids))
	for _, child := range kids {
		if child == nil {
			continue
		}
		if _, err := child.Attr(AttrRole); err != nil {
			continue
		}
		retained = append(retained, child)
	}
	return retained
}

// DisplayName computes the element's human-readable name: title-like
// attributes first, then description/help text, then the text of a
// titled-label sub-element, then the role description. Returns "" when
// nothing non-empty is found.
func DisplayName(el Element) string {
	for _, attr := range []string{
		AttrTitle,
		AttrDescription,
		AttrHelp,
		AttrLabelText,
		AttrRoleDescription,
	} {
		if v := strings.TrimSpace(StringAttr(el, attr)); v != "" {
			return v
		}
	}
	return ""
}

// ReadValue reads the element's current value, falling back to title and
// description the way a human would read the control.
func ReadValue(el Element) string {
	for _, attr := range []string{AttrValue, AttrTitle, AttrDescription} {
		if v := StringAttr(el, attr); v != "" {
			return v
		}
	}
	return ""
}
