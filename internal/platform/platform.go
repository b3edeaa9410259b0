package platform

import (
	"image"

	"github.com/guipilot/guipilot/internal/ax"
)

// Trees resolves applications to live accessibility element trees.
type Trees interface {
	// AppRoot returns the root element of the application's focused window
	// (or its first window when none is focused). The app reference is a
	// display name or a bundle identifier.
	AppRoot(appRef string) (ax.Element, error)
}

// Inputter simulates mouse and keyboard input at screen coordinates.
// Implementations honor the InputConfig they were constructed with.
type Inputter interface {
	Click(x, y int) error
	TypeText(text string) error
	KeyTap(key string) error
	Scroll(x, y, dx, dy int) error
}

// Apps lists and launches applications.
type Apps interface {
	RunningApps() ([]AppInfo, error)
	Launch(appRef string) error
	Focus(appRef string) error
}

// Permissions reports and requests the OS trust state this process needs
// to drive the accessibility layer.
type Permissions interface {
	// AccessibilityTrusted reports whether the process may use the
	// accessibility APIs. prompt additionally asks the OS to show its
	// grant dialog.
	AccessibilityTrusted(prompt bool) bool

	// OpenPrivacySettings opens the OS settings pane where the user can
	// grant the permission.
	OpenPrivacySettings() error
}

// Screenshotter captures the screen.
type Screenshotter interface {
	CaptureDisplay() (image.Image, error)
}
