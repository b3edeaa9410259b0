//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework AppKit -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>
#import <AppKit/AppKit.h>

// Finds the PID of a running application by localized name (exact,
// case-insensitive). Returns -1 when no process matches.
static int pid_for_app_name(const char *name) {
    @autoreleasepool {
        NSString *want = [NSString stringWithUTF8String:name];
        for (NSRunningApplication *app in [[NSWorkspace sharedWorkspace] runningApplications]) {
            if (app.localizedName &&
                [app.localizedName caseInsensitiveCompare:want] == NSOrderedSame) {
                return (int)app.processIdentifier;
            }
        }
        return -1;
    }
}

// Finds the PID of a running application by bundle identifier.
static int pid_for_bundle_id(const char *bundleID) {
    @autoreleasepool {
        NSString *want = [NSString stringWithUTF8String:bundleID];
        NSArray *apps = [NSRunningApplication runningApplicationsWithBundleIdentifier:want];
        if ([apps count] == 0) return -1;
        return (int)((NSRunningApplication *)apps[0]).processIdentifier;
    }
}

// Returns the PID of the frontmost application, -1 when there is none.
static int frontmost_app_pid(void) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        if (!app) return -1;
        return (int)app.processIdentifier;
    }
}

static AXUIElementRef app_element_for_pid(int pid) {
    return AXUIElementCreateApplication((pid_t)pid);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/guipilot/guipilot/internal/ax"
	"github.com/guipilot/guipilot/internal/platform"
)

// Trees resolves app references to accessibility window trees.
type Trees struct{}

// NewTrees creates the macOS tree provider.
func NewTrees() *Trees {
	return &Trees{}
}

// AppRoot returns the root element of the application's focused window,
// or its first window when none is focused. The reference is resolved as
// a bundle identifier first, then as a display name with the usual
// spelling variations, then as whatever application is frontmost.
func (t *Trees) AppRoot(appRef string) (ax.Element, error) {
	pid, err := resolvePID(appRef)
	if err != nil {
		return nil, err
	}
	app := newElement(C.app_element_for_pid(C.int(pid)))
	return focusedWindow(app, appRef)
}

func resolvePID(appRef string) (int, error) {
	if platform.AppRefIsBundleID(appRef) {
		cRef := C.CString(appRef)
		defer C.free(unsafe.Pointer(cRef))
		if pid := int(C.pid_for_bundle_id(cRef)); pid > 0 {
			return pid, nil
		}
		return 0, fmt.Errorf("%w: no running app with bundle id %q (use `guipilot start` to launch it)", ax.ErrNotFound, appRef)
	}
	for _, name := range platform.NameVariations(appRef) {
		cName := C.CString(name)
		pid := int(C.pid_for_app_name(cName))
		C.free(unsafe.Pointer(cName))
		if pid > 0 {
			return pid, nil
		}
	}
	// Last resort: the frontmost app. Localized names do not always match
	// what the user calls the app, and the one in front is usually the one
	// being driven.
	if pid := int(C.frontmost_app_pid()); pid > 0 {
		return pid, nil
	}
	return 0, fmt.Errorf("%w: no running app named %q (use `guipilot apps` to list apps, `guipilot start` to launch)", ax.ErrNotFound, appRef)
}

func focusedWindow(app *element, appRef string) (ax.Element, error) {
	if win, err := app.elementAttr("AXFocusedWindow"); err == nil {
		return win, nil
	}

	// No focused window; fall back to the first window.
	windows, err := app.elementArrayAttr("AXWindows")
	if err != nil {
		return nil, fmt.Errorf("read windows of %q: %w", appRef, err)
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: app %q has no windows", ax.ErrNotFound, appRef)
	}
	return windows[0], nil
}
