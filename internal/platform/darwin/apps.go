//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#include <stdlib.h>
#include <string.h>
#import <AppKit/AppKit.h>

typedef struct {
    char *name;
    char *bundleID;
    int  pid;
    int  frontmost;
} RunningAppInfo;

static char *ns_string_copy(NSString *s) {
    if (!s) return NULL;
    return strdup([s UTF8String]);
}

// Lists regular (dock-visible) running applications into a malloc'd array.
static int list_running_apps(RunningAppInfo **out, int *count) {
    @autoreleasepool {
        NSArray *apps = [[NSWorkspace sharedWorkspace] runningApplications];
        RunningAppInfo *infos = malloc(sizeof(RunningAppInfo) * [apps count]);
        if (!infos) return -1;
        int n = 0;
        for (NSRunningApplication *app in apps) {
            if (app.activationPolicy != NSApplicationActivationPolicyRegular) continue;
            infos[n].name = ns_string_copy(app.localizedName);
            infos[n].bundleID = ns_string_copy(app.bundleIdentifier);
            infos[n].pid = (int)app.processIdentifier;
            infos[n].frontmost = app.active ? 1 : 0;
            n++;
        }
        *out = infos;
        *count = n;
        return 0;
    }
}

static void free_running_apps(RunningAppInfo *infos, int count) {
    for (int i = 0; i < count; i++) {
        free(infos[i].name);
        free(infos[i].bundleID);
    }
    free(infos);
}

// Launches an app by bundle id (when isBundleID) or display name and
// brings it to the front. Returns 0 on success.
static int launch_app(const char *ref, int isBundleID) {
    @autoreleasepool {
        NSWorkspace *ws = [NSWorkspace sharedWorkspace];
        NSString *nsRef = [NSString stringWithUTF8String:ref];
        NSURL *url = nil;
        if (isBundleID) {
            url = [ws URLForApplicationWithBundleIdentifier:nsRef];
        } else {
            url = [ws URLForApplicationWithBundleIdentifier:nsRef];
            if (!url) {
                NSString *path = [ws fullPathForApplication:nsRef];
                if (path) url = [NSURL fileURLWithPath:path];
            }
        }
        if (!url) return -1;
        NSWorkspaceOpenConfiguration *config = [NSWorkspaceOpenConfiguration configuration];
        config.activates = YES;
        __block int status = 0;
        dispatch_semaphore_t sem = dispatch_semaphore_create(0);
        [ws openApplicationAtURL:url
                   configuration:config
               completionHandler:^(NSRunningApplication *app, NSError *error) {
            if (error) status = -1;
            dispatch_semaphore_signal(sem);
        }];
        dispatch_semaphore_wait(sem, dispatch_time(DISPATCH_TIME_NOW, 10 * NSEC_PER_SEC));
        return status;
    }
}

// Brings a running app to the front by PID. Returns 0 on success.
static int activate_app(int pid) {
    @autoreleasepool {
        NSRunningApplication *app =
            [NSRunningApplication runningApplicationWithProcessIdentifier:(pid_t)pid];
        if (!app) return -1;
        return [app activateWithOptions:NSApplicationActivateAllWindows] ? 0 : -1;
    }
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/guipilot/guipilot/internal/platform"
)

// Apps implements platform.Apps through NSWorkspace.
type Apps struct{}

// NewApps creates the macOS app manager.
func NewApps() *Apps {
	return &Apps{}
}

// RunningApps lists dock-visible running applications.
func (a *Apps) RunningApps() ([]platform.AppInfo, error) {
	var infos *C.RunningAppInfo
	var count C.int
	if C.list_running_apps(&infos, &count) != 0 {
		return nil, fmt.Errorf("failed to enumerate running applications")
	}
	defer C.free_running_apps(infos, count)

	n := int(count)
	apps := make([]platform.AppInfo, 0, n)
	for _, info := range unsafe.Slice(infos, n) {
		apps = append(apps, platform.AppInfo{
			Name:      C.GoString(info.name),
			BundleID:  C.GoString(info.bundleID),
			PID:       int(info.pid),
			Frontmost: info.frontmost != 0,
		})
	}
	return apps, nil
}

// Launch starts the referenced application and brings it to the front.
func (a *Apps) Launch(appRef string) error {
	cRef := C.CString(appRef)
	defer C.free(unsafe.Pointer(cRef))

	isBundle := C.int(0)
	if platform.AppRefIsBundleID(appRef) {
		isBundle = 1
	}
	if C.launch_app(cRef, isBundle) != 0 {
		return fmt.Errorf("failed to launch %q: app not found or launch refused", appRef)
	}
	return nil
}

// Focus brings a running application to the front.
func (a *Apps) Focus(appRef string) error {
	pid, err := resolvePID(appRef)
	if err != nil {
		return err
	}
	if C.activate_app(C.int(pid)) != 0 {
		return fmt.Errorf("failed to activate %q (pid %d)", appRef, pid)
	}
	return nil
}
