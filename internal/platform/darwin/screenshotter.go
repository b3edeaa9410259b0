//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

static int cg_check_screen_recording() {
    return CGPreflightScreenCaptureAccess();
}

// Captures the main display into a malloc'd BGRA pixel buffer.
static int cg_capture_display(unsigned char **out, long *width, long *height, long *bytesPerRow) {
    *out = NULL;
    CGImageRef image = CGDisplayCreateImage(CGMainDisplayID());
    if (!image) return -1;

    CGDataProviderRef provider = CGImageGetDataProvider(image);
    CFDataRef data = CGDataProviderCopyData(provider);
    if (!data) {
        CGImageRelease(image);
        return -1;
    }

    long length = CFDataGetLength(data);
    unsigned char *buf = malloc(length);
    if (!buf) {
        CFRelease(data);
        CGImageRelease(image);
        return -1;
    }
    memcpy(buf, CFDataGetBytePtr(data), length);

    *out = buf;
    *width = CGImageGetWidth(image);
    *height = CGImageGetHeight(image);
    *bytesPerRow = CGImageGetBytesPerRow(image);

    CFRelease(data);
    CGImageRelease(image);
    return 0;
}
*/
import "C"

import (
	"fmt"
	"image"
	"unsafe"
)

// Screenshotter implements platform.Screenshotter for macOS.
type Screenshotter struct{}

// NewScreenshotter creates the macOS display capturer.
func NewScreenshotter() *Screenshotter {
	return &Screenshotter{}
}

// CaptureDisplay captures the main display as an RGBA image.
func (s *Screenshotter) CaptureDisplay() (image.Image, error) {
	if C.cg_check_screen_recording() == 0 {
		return nil, fmt.Errorf(
			"screen recording permission required: grant access in System Settings > Privacy & Security > Screen Recording, then restart the terminal")
	}

	var buf *C.uchar
	var width, height, bytesPerRow C.long
	if C.cg_capture_display(&buf, &width, &height, &bytesPerRow) != 0 {
		return nil, fmt.Errorf("display capture failed")
	}
	defer C.free(unsafe.Pointer(buf))

	w, h, stride := int(width), int(height), int(bytesPerRow)
	pixels := unsafe.Slice((*byte)(buf), h*stride)

	// CGDisplayCreateImage yields BGRA; swap to RGBA.
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := pixels[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			dst[x*4+0] = src[x*4+2]
			dst[x*4+1] = src[x*4+1]
			dst[x*4+2] = src[x*4+0]
			dst[x*4+3] = src[x*4+3]
		}
	}
	return img, nil
}
