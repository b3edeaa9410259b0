package ax

import "strings"

// Role is the closed semantic classification every native role maps onto.
type Role string

const (
	RoleButton     Role = "button"
	RoleInput      Role = "input"
	RoleText       Role = "text"
	RoleScrollable Role = "scrollable"
	RoleContainer  Role = "container"
	RoleElement    Role = "element"
)

// Classify maps a raw native role string plus the element's supported
// actions onto a Role. Pure and total: rules are checked in order and the
// first match wins.
func Classify(rawRole string, actions []string) Role {
	r := normalizeRole(rawRole)
	if r != "" {
		switch {
		case isButtonRole(r):
			return RoleButton
		case isInputRole(r):
			return RoleInput
		case isTextRole(r):
			return RoleText
		}
	}
	// An element with no scroll-family role can still be scrollable when
	// its actions say so; this also covers elements with no role at all.
	for _, a := range actions {
		if strings.HasPrefix(strings.ToLower(a), "scroll") {
			return RoleScrollable
		}
	}
	if isContainerRole(r) {
		return RoleContainer
	}
	return RoleElement
}

// normalizeRole lowercases a raw role and strips the platform prefix and
// spaces, so "AXStaticText" and "static text" compare equal.
func normalizeRole(raw string) string {
	r := strings.ToLower(strings.TrimSpace(raw))
	r = strings.TrimPrefix(r, "ax")
	return strings.ReplaceAll(r, " ", "")
}

func isButtonRole(r string) bool {
	for _, kw := range []string{"button", "checkbox", "radio", "menu"} {
		if strings.Contains(r, kw) {
			return true
		}
	}
	// "tab" needs care: AXTable must not match the tab family.
	return strings.HasPrefix(r, "tab") && !strings.HasPrefix(r, "table")
}

func isInputRole(r string) bool {
	for _, kw := range []string{"textfield", "textarea", "searchfield", "search"} {
		if strings.Contains(r, kw) {
			return true
		}
	}
	return false
}

func isTextRole(r string) bool {
	return strings.Contains(r, "statictext") ||
		strings.Contains(r, "label") ||
		strings.HasSuffix(r, "text")
}

func isContainerRole(r string) bool {
	for _, kw := range []string{"window", "group", "split", "toolbar"} {
		if strings.Contains(r, kw) {
			return true
		}
	}
	return false
}

// isWindowRole reports whether a raw role is a window. Windows are exempt
// from action roll-up during serialization: folding every descendant action
// into the window would turn each window into one giant button.
func isWindowRole(rawRole string) bool {
	return strings.Contains(normalizeRole(rawRole), "window")
}
