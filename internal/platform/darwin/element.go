//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>
#include <stdio.h>
#include <string.h>

// Copies a CFString into a malloc'd UTF-8 buffer the caller must free.
static char *cf_string_copy(CFStringRef str) {
    if (!str) return NULL;
    CFIndex length = CFStringGetLength(str);
    CFIndex size = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1;
    char *buf = malloc(size);
    if (!buf) return NULL;
    if (!CFStringGetCString(str, buf, size, kCFStringEncodingUTF8)) {
        free(buf);
        return NULL;
    }
    return buf;
}

// Reads the named attribute rendered as a UTF-8 string. Strings pass
// through; numbers and booleans are formatted. Returns an AXError, with
// kAXErrorNoValue for attribute types that have no string rendering.
static int guipilot_copy_attr_string(AXUIElementRef el, const char *name, char **out) {
    *out = NULL;
    CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    CFRelease(attr);
    if (err != kAXErrorSuccess) return (int)err;
    if (!value) return (int)kAXErrorNoValue;

    CFTypeID tid = CFGetTypeID(value);
    if (tid == CFStringGetTypeID()) {
        *out = cf_string_copy((CFStringRef)value);
    } else if (tid == CFNumberGetTypeID()) {
        double d = 0;
        CFNumberGetValue((CFNumberRef)value, kCFNumberDoubleType, &d);
        char buf[64];
        if (d == (long long)d) {
            snprintf(buf, sizeof(buf), "%lld", (long long)d);
        } else {
            snprintf(buf, sizeof(buf), "%g", d);
        }
        *out = strdup(buf);
    } else if (tid == CFBooleanGetTypeID()) {
        *out = strdup(CFBooleanGetValue((CFBooleanRef)value) ? "true" : "false");
    }
    CFRelease(value);
    if (!*out) return (int)kAXErrorNoValue;
    return (int)kAXErrorSuccess;
}

// Reads an element-valued attribute (AXParent, AXTitleUIElement, ...).
// The returned element is retained for the caller.
static int guipilot_copy_attr_element(AXUIElementRef el, const char *name, AXUIElementRef *out) {
    *out = NULL;
    CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    CFRelease(attr);
    if (err != kAXErrorSuccess) return (int)err;
    if (!value || CFGetTypeID(value) != AXUIElementGetTypeID()) {
        if (value) CFRelease(value);
        return (int)kAXErrorNoValue;
    }
    *out = (AXUIElementRef)value;
    return (int)kAXErrorSuccess;
}

// Reads an element-array attribute (AXChildren, AXWindows) into a
// malloc'd array of retained element refs.
static int guipilot_copy_element_array(AXUIElementRef el, const char *name, AXUIElementRef **out, long *count) {
    *out = NULL;
    *count = 0;
    CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    CFRelease(attr);
    if (err != kAXErrorSuccess) return (int)err;
    if (!value || CFGetTypeID(value) != CFArrayGetTypeID()) {
        if (value) CFRelease(value);
        return (int)kAXErrorNoValue;
    }
    CFArrayRef arr = (CFArrayRef)value;
    CFIndex n = CFArrayGetCount(arr);
    AXUIElementRef *refs = malloc(sizeof(AXUIElementRef) * (n > 0 ? n : 1));
    long kept = 0;
    for (CFIndex i = 0; i < n; i++) {
        CFTypeRef item = CFArrayGetValueAtIndex(arr, i);
        if (item && CFGetTypeID(item) == AXUIElementGetTypeID()) {
            refs[kept++] = (AXUIElementRef)CFRetain(item);
        }
    }
    CFRelease(arr);
    *out = refs;
    *count = kept;
    return (int)kAXErrorSuccess;
}

// Reads the action names joined by '\n' into a malloc'd buffer.
static int guipilot_copy_actions(AXUIElementRef el, char **out) {
    *out = NULL;
    CFArrayRef names = NULL;
    AXError err = AXUIElementCopyActionNames(el, &names);
    if (err != kAXErrorSuccess) return (int)err;
    if (!names) return (int)kAXErrorNoValue;

    CFMutableStringRef joined = CFStringCreateMutable(NULL, 0);
    CFIndex n = CFArrayGetCount(names);
    for (CFIndex i = 0; i < n; i++) {
        if (i > 0) CFStringAppend(joined, CFSTR("\n"));
        CFStringAppend(joined, (CFStringRef)CFArrayGetValueAtIndex(names, i));
    }
    CFRelease(names);
    *out = cf_string_copy(joined);
    CFRelease(joined);
    if (!*out) return (int)kAXErrorNoValue;
    return (int)kAXErrorSuccess;
}

static int guipilot_perform(AXUIElementRef el, const char *action) {
    CFStringRef name = CFStringCreateWithCString(NULL, action, kCFStringEncodingUTF8);
    AXError err = AXUIElementPerformAction(el, name);
    CFRelease(name);
    return (int)err;
}

static int guipilot_set_attr_string(AXUIElementRef el, const char *name, const char *value) {
    CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFStringRef val = CFStringCreateWithCString(NULL, value, kCFStringEncodingUTF8);
    AXError err = AXUIElementSetAttributeValue(el, attr, val);
    CFRelease(attr);
    CFRelease(val);
    return (int)err;
}

// Reads AXPosition and AXSize into a screen-point rectangle.
static int guipilot_frame(AXUIElementRef el, double *x, double *y, double *w, double *h) {
    CFTypeRef posValue = NULL, sizeValue = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, kAXPositionAttribute, &posValue);
    if (err != kAXErrorSuccess) return (int)err;
    err = AXUIElementCopyAttributeValue(el, kAXSizeAttribute, &sizeValue);
    if (err != kAXErrorSuccess) {
        CFRelease(posValue);
        return (int)err;
    }
    CGPoint pos;
    CGSize size;
    if (!AXValueGetValue((AXValueRef)posValue, kAXValueTypeCGPoint, &pos) ||
        !AXValueGetValue((AXValueRef)sizeValue, kAXValueTypeCGSize, &size)) {
        CFRelease(posValue);
        CFRelease(sizeValue);
        return (int)kAXErrorNoValue;
    }
    CFRelease(posValue);
    CFRelease(sizeValue);
    *x = pos.x;
    *y = pos.y;
    *w = size.width;
    *h = size.height;
    return (int)kAXErrorSuccess;
}

static void guipilot_release(AXUIElementRef el) {
    if (el) CFRelease(el);
}
*/
import "C"

import (
	"errors"
	"runtime"
	"strings"
	"unsafe"

	"github.com/guipilot/guipilot/internal/ax"
)

// element wraps a retained AXUIElementRef. The wrapper owns exactly one
// retain, released by a finalizer.
type element struct {
	ref C.AXUIElementRef
}

func newElement(ref C.AXUIElementRef) *element {
	el := &element{ref: ref}
	runtime.SetFinalizer(el, func(e *element) {
		C.guipilot_release(e.ref)
	})
	return el
}

// attrNames maps normalized attribute names to AX attribute constants.
var attrNames = map[string]string{
	ax.AttrRole:            "AXRole",
	ax.AttrSubrole:         "AXSubrole",
	ax.AttrRoleDescription: "AXRoleDescription",
	ax.AttrTitle:           "AXTitle",
	ax.AttrDescription:     "AXDescription",
	ax.AttrHelp:            "AXHelp",
	ax.AttrValue:           "AXValue",
	ax.AttrIdentifier:      "AXIdentifier",
	ax.AttrEnabled:         "AXEnabled",
	ax.AttrFocused:         "AXFocused",
	ax.AttrSelected:        "AXSelected",
}

// actionNames maps AX action names to the normalized names the engine
// dispatches on, and back.
var actionNames = map[string]string{
	"AXPress":             "press",
	"AXCancel":            "cancel",
	"AXConfirm":           "confirm",
	"AXPick":              "pick",
	"AXIncrement":         "increment",
	"AXDecrement":         "decrement",
	"AXShowMenu":          "showmenu",
	"AXShowDefaultUI":     "showdefaultui",
	"AXRaise":             "raise",
	"AXOpen":              "open",
	"AXScrollUpByPage":    "scrollup",
	"AXScrollDownByPage":  "scrolldown",
	"AXScrollLeftByPage":  "scrollleft",
	"AXScrollRightByPage": "scrollright",
}

var axActionNames = func() map[string]string {
	m := make(map[string]string, len(actionNames))
	for axName, short := range actionNames {
		m[short] = axName
	}
	return m
}()

func normalizeAXAction(axName string) string {
	if short, ok := actionNames[axName]; ok {
		return short
	}
	return strings.ToLower(strings.TrimPrefix(axName, "AX"))
}

func denormalizeAction(short string) string {
	if axName, ok := axActionNames[short]; ok {
		return axName
	}
	if len(short) > 0 {
		return "AX" + strings.ToUpper(short[:1]) + short[1:]
	}
	return short
}

// axErr converts an AXError code into a PlatformError, nil on success.
func axErr(code C.int, action string) error {
	if code == 0 {
		return nil
	}
	return &ax.PlatformError{Code: int(code), Action: action}
}

func (e *element) Attr(name string) (string, error) {
	if name == ax.AttrLabelText {
		return e.labelText()
	}
	axName, ok := attrNames[name]
	if !ok {
		axName = name
	}
	return e.copyStringAttr(axName)
}

func (e *element) copyStringAttr(axName string) (string, error) {
	cName := C.CString(axName)
	defer C.free(unsafe.Pointer(cName))

	var cOut *C.char
	rc := C.guipilot_copy_attr_string(e.ref, cName, &cOut)
	runtime.KeepAlive(e)
	if rc != 0 {
		return "", axErr(rc, axName)
	}
	defer C.free(unsafe.Pointer(cOut))
	return C.GoString(cOut), nil
}

// elementAttr reads an element-valued attribute (AXParent,
// AXFocusedWindow, AXTitleUIElement).
func (e *element) elementAttr(axName string) (*element, error) {
	cName := C.CString(axName)
	defer C.free(unsafe.Pointer(cName))

	var ref C.AXUIElementRef
	rc := C.guipilot_copy_attr_element(e.ref, cName, &ref)
	runtime.KeepAlive(e)
	if rc != 0 {
		return nil, axErr(rc, axName)
	}
	return newElement(ref), nil
}

// labelText resolves the text that labels an element when its title-like
// attributes are empty. AXTitleUIElement wins; text-carrying roles then
// fall back to the value-family attributes, since static text and fields
// keep their visible content in AXValue rather than AXTitle.
func (e *element) labelText() (string, error) {
	if label, err := e.elementAttr("AXTitleUIElement"); err == nil {
		for _, attr := range []string{"AXValue", "AXTitle"} {
			if v, err := label.copyStringAttr(attr); err == nil && v != "" {
				return v, nil
			}
		}
	}
	if role, err := e.copyStringAttr("AXRole"); err == nil {
		for _, attr := range nameFallbackAttrs(role) {
			if v, err := e.copyStringAttr(attr); err == nil && v != "" {
				return v, nil
			}
		}
	}
	return "", axErr(C.int(C.kAXErrorNoValue), "AXTitleUIElement")
}

func (e *element) SetAttr(name, value string) error {
	axName, ok := attrNames[name]
	if !ok {
		axName = name
	}
	cName := C.CString(axName)
	defer C.free(unsafe.Pointer(cName))
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))

	rc := C.guipilot_set_attr_string(e.ref, cName, cValue)
	runtime.KeepAlive(e)
	return axErr(rc, "set "+axName)
}

func (e *element) Actions() ([]string, error) {
	var cOut *C.char
	rc := C.guipilot_copy_actions(e.ref, &cOut)
	runtime.KeepAlive(e)
	if rc != 0 {
		return nil, axErr(rc, "copy actions")
	}
	defer C.free(unsafe.Pointer(cOut))

	raw := strings.Split(C.GoString(cOut), "\n")
	actions := make([]string, 0, len(raw))
	for _, name := range raw {
		if name == "" {
			continue
		}
		actions = append(actions, normalizeAXAction(name))
	}
	return actions, nil
}

func (e *element) Children() ([]ax.Element, error) {
	return e.elementArrayAttr("AXChildren")
}

func (e *element) elementArrayAttr(axName string) ([]ax.Element, error) {
	cName := C.CString(axName)
	defer C.free(unsafe.Pointer(cName))

	var refs *C.AXUIElementRef
	var count C.long
	rc := C.guipilot_copy_element_array(e.ref, cName, &refs, &count)
	runtime.KeepAlive(e)
	if rc != 0 {
		return nil, axErr(rc, axName)
	}
	defer C.free(unsafe.Pointer(refs))

	n := int(count)
	elements := make([]ax.Element, 0, n)
	for _, ref := range unsafe.Slice(refs, n) {
		elements = append(elements, newElement(ref))
	}
	return elements, nil
}

func (e *element) Parent() (ax.Element, error) {
	parent, err := e.elementAttr("AXParent")
	if err != nil {
		var pe *ax.PlatformError
		if errors.As(err, &pe) &&
			(pe.Code == int(C.kAXErrorNoValue) || pe.Code == int(C.kAXErrorAttributeUnsupported)) {
			return nil, nil
		}
		return nil, err
	}
	return parent, nil
}

func (e *element) Perform(action string) error {
	axName := denormalizeAction(action)
	cAction := C.CString(axName)
	defer C.free(unsafe.Pointer(cAction))

	rc := C.guipilot_perform(e.ref, cAction)
	runtime.KeepAlive(e)
	return axErr(rc, axName)
}

func (e *element) Frame() (x, y, w, h float64, err error) {
	var cx, cy, cw, ch C.double
	rc := C.guipilot_frame(e.ref, &cx, &cy, &cw, &ch)
	runtime.KeepAlive(e)
	if rc != 0 {
		return 0, 0, 0, 0, axErr(rc, "frame")
	}
	return float64(cx), float64(cy), float64(cw), float64(ch), nil
}
