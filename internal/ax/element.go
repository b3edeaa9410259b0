// Package ax implements the accessibility element engine: a narrow
// abstraction over live native UI elements, plus the serializer, resolver,
// and action dispatcher that operate on it.
//
// Native handles are owned by the target application's accessibility
// subsystem and become stale whenever the UI changes. Every read through
// the Element interface is therefore allowed to fail, and everything built
// on top of it absorbs those failures locally.
package ax

import (
	"errors"
	"fmt"
)

// Normalized attribute names. Platform adapters translate these to their
// native attribute constants (e.g. AttrTitle -> kAXTitleAttribute).
const (
	AttrRole            = "role"
	AttrSubrole         = "subrole"
	AttrRoleDescription = "roledescription"
	AttrTitle           = "title"
	AttrDescription     = "description"
	AttrHelp            = "help"
	AttrValue           = "value"
	AttrIdentifier      = "identifier"
	AttrEnabled         = "enabled"
	AttrFocused         = "focused"
	AttrSelected        = "selected"

	// AttrLabelText is the text of the element's titled-label sub-element
	// (the element AXTitleUIElement points at on macOS), flattened to a
	// string by the adapter.
	AttrLabelText = "labeltext"
)

// Element is an opaque handle to a live native UI element. Implementations
// must be safe to call on stale handles: a handle that no longer refers to
// a live element returns errors, never panics.
//
// Handles must not be retained across top-level operations; they are
// re-resolved from the application reference on every call.
type Element interface {
	// Attr returns the named attribute as a string. An error means the
	// attribute is missing, unsupported, or the element is gone.
	Attr(name string) (string, error)

	// SetAttr writes the named attribute.
	SetAttr(name, value string) error

	// Actions returns the element's supported action names, normalized to
	// lowercase without any platform prefix (e.g. "press", "scrollup").
	Actions() ([]string, error)

	// Children returns the element's child elements in order.
	Children() ([]Element, error)

	// Parent returns the parent element, or nil when the element is the
	// root of its hierarchy.
	Parent() (Element, error)

	// Perform invokes a normalized action name on the element.
	Perform(action string) error

	// Frame returns the element's on-screen rectangle in screen points.
	Frame() (x, y, w, h float64, err error)
}

// Sentinel errors forming the operation-level taxonomy. Per-attribute and
// per-node failures never surface; these do.
var (
	ErrNotFound          = errors.New("element not found")
	ErrValueRequired     = errors.New("action requires a value")
	ErrActionUnsupported = errors.New("no element in the ancestor chain supports the action")
	ErrPermissionDenied  = errors.New("accessibility permission not granted")
)

// PlatformError carries a raw platform error code from a failed native
// call so policy layers can distinguish benign codes from real failures.
type PlatformError struct {
	Code   int
	Action string
}

func (e *PlatformError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("platform error %d performing %q", e.Code, e.Action)
	}
	return fmt.Sprintf("platform error %d", e.Code)
}
