//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#include <ApplicationServices/ApplicationServices.h>

static int is_trusted(int prompt) {
    if (!prompt) {
        return AXIsProcessTrusted();
    }
    CFStringRef keys[] = { kAXTrustedCheckOptionPrompt };
    CFTypeRef values[] = { kCFBooleanTrue };
    CFDictionaryRef options = CFDictionaryCreate(NULL,
        (const void **)keys, (const void **)values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    Boolean trusted = AXIsProcessTrustedWithOptions(options);
    CFRelease(options);
    return trusted;
}
*/
import "C"

import (
	"fmt"
	"os/exec"
)

// accessibilityPane is the deep link into the settings pane where the
// accessibility permission is granted.
const accessibilityPane = "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility"

// Permissions implements platform.Permissions for macOS.
type Permissions struct{}

// NewPermissions creates the macOS permission checker.
func NewPermissions() *Permissions {
	return &Permissions{}
}

// AccessibilityTrusted reports whether the process may use the
// accessibility APIs. With prompt, the OS additionally shows its grant
// dialog for untrusted processes.
func (p *Permissions) AccessibilityTrusted(prompt bool) bool {
	cPrompt := C.int(0)
	if prompt {
		cPrompt = 1
	}
	return C.is_trusted(cPrompt) != 0
}

// OpenPrivacySettings opens System Settings at the Accessibility pane.
func (p *Permissions) OpenPrivacySettings() error {
	if err := exec.Command("open", accessibilityPane).Run(); err != nil {
		return fmt.Errorf("open privacy settings: %w", err)
	}
	return nil
}
