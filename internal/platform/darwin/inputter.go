//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation -framework Carbon
#include <CoreGraphics/CoreGraphics.h>
#include <Carbon/Carbon.h>

// Single left click at screen coordinates.
static int cg_click(float x, float y) {
    CGPoint point = CGPointMake(x, y);
    CGEventRef down = CGEventCreateMouseEvent(NULL, kCGEventLeftMouseDown, point, kCGMouseButtonLeft);
    CGEventRef up = CGEventCreateMouseEvent(NULL, kCGEventLeftMouseUp, point, kCGMouseButtonLeft);
    if (!down || !up) {
        if (down) CFRelease(down);
        if (up) CFRelease(up);
        return -1;
    }
    CGEventPost(kCGHIDEventTap, down);
    CGEventPost(kCGHIDEventTap, up);
    CFRelease(down);
    CFRelease(up);
    return 0;
}

static int cg_move_mouse(float x, float y) {
    CGPoint point = CGPointMake(x, y);
    CGEventRef move = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, point, kCGMouseButtonLeft);
    if (!move) return -1;
    CGEventPost(kCGHIDEventTap, move);
    CFRelease(move);
    return 0;
}

// Type a single Unicode character using CGEvent key simulation.
static void cg_type_char(UniChar ch) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, 0, false);
    CGEventKeyboardSetUnicodeString(keyDown, 1, &ch);
    CGEventKeyboardSetUnicodeString(keyUp, 1, &ch);
    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);
    CFRelease(keyDown);
    CFRelease(keyUp);
}

// Tap a key by virtual key code, no modifiers.
static void cg_key_tap(CGKeyCode keyCode) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, keyCode, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, keyCode, false);
    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);
    CFRelease(keyDown);
    CFRelease(keyUp);
}

// Scroll using CGEventCreateScrollWheelEvent.
// dy: vertical scroll (positive = up, negative = down)
// dx: horizontal scroll (positive = left, negative = right)
static int cg_scroll(int dy, int dx) {
    CGEventRef scroll = CGEventCreateScrollWheelEvent(
        NULL,
        kCGScrollEventUnitLine,
        2,     // number of axes
        dy,    // vertical (line units)
        dx     // horizontal (line units)
    );
    if (!scroll) return -1;
    CGEventPost(kCGHIDEventTap, scroll);
    CFRelease(scroll);
    return 0;
}

// Current physical cursor position.
static int cg_cursor_position(double *x, double *y) {
    CGEventRef event = CGEventCreate(NULL);
    if (!event) return -1;
    CGPoint point = CGEventGetLocation(event);
    CFRelease(event);
    *x = point.x;
    *y = point.y;
    return 0;
}
*/
import "C"

import (
	"fmt"
	"strings"
	"time"

	"github.com/guipilot/guipilot/internal/platform"
)

// cornerSize is the side length of the top-left abort region in points.
const cornerSize = 5

// Inputter implements platform.Inputter for macOS through CGEvent.
type Inputter struct {
	cfg platform.InputConfig
}

// NewInputter creates a macOS inputter with the given simulation policy.
func NewInputter(cfg platform.InputConfig) *Inputter {
	return &Inputter{cfg: cfg}
}

// checkAbort implements the escape hatch: when the physical cursor sits
// in the top-left screen corner, pending gestures are refused. A human
// who sees simulated input going wrong can slam the cursor there.
func (inp *Inputter) checkAbort() error {
	if !inp.cfg.AbortOnCornerMove {
		return nil
	}
	var x, y C.double
	if C.cg_cursor_position(&x, &y) != 0 {
		return nil
	}
	if float64(x) <= cornerSize && float64(y) <= cornerSize {
		return platform.ErrAborted
	}
	return nil
}

func (inp *Inputter) pause() {
	if inp.cfg.InterActionDelay > 0 {
		time.Sleep(inp.cfg.InterActionDelay)
	}
}

func (inp *Inputter) Click(x, y int) error {
	if err := inp.checkAbort(); err != nil {
		return err
	}
	if C.cg_move_mouse(C.float(x), C.float(y)) != 0 {
		return fmt.Errorf("failed to move mouse to (%d, %d)", x, y)
	}
	time.Sleep(10 * time.Millisecond)
	if C.cg_click(C.float(x), C.float(y)) != 0 {
		return fmt.Errorf("failed to click at (%d, %d)", x, y)
	}
	inp.pause()
	return nil
}

func (inp *Inputter) TypeText(text string) error {
	if err := inp.checkAbort(); err != nil {
		return err
	}
	for _, ch := range text {
		C.cg_type_char(C.UniChar(ch))
	}
	inp.pause()
	return nil
}

func (inp *Inputter) KeyTap(key string) error {
	if err := inp.checkAbort(); err != nil {
		return err
	}
	code, ok := keyCodeMap[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("unknown key: %q", key)
	}
	C.cg_key_tap(C.CGKeyCode(code))
	inp.pause()
	return nil
}

func (inp *Inputter) Scroll(x, y, dx, dy int) error {
	if err := inp.checkAbort(); err != nil {
		return err
	}
	// Move the cursor to the target first so the wheel event lands there.
	// Skip if x and y are both 0 (scroll at current mouse position).
	if x != 0 || y != 0 {
		if C.cg_move_mouse(C.float(x), C.float(y)) != 0 {
			return fmt.Errorf("failed to move mouse to (%d, %d) for scroll", x, y)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if C.cg_scroll(C.int(dy), C.int(dx)) != 0 {
		return fmt.Errorf("failed to scroll at (%d, %d)", x, y)
	}
	inp.pause()
	return nil
}

// macOS virtual key codes from Carbon Events.h.
var keyCodeMap = map[string]uint16{
	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
	"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	"return": 0x24, "enter": 0x24, "tab": 0x30, "space": 0x31,
	"delete": 0x33, "backspace": 0x33, "escape": 0x35, "esc": 0x35,
	"up": 0x7E, "down": 0x7D, "left": 0x7B, "right": 0x7C,
	"home": 0x73, "end": 0x77, "pageup": 0x74, "pagedown": 0x79,
}
