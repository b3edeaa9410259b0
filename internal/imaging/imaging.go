// Package imaging post-processes captured screenshots: downscaling for
// token efficiency and overlaying element markers so an agent can relate
// tree identifiers to pixels.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	MinScale = 0.1
	MaxScale = 1.0
)

// Scale resizes img by factor, clamped to [MinScale, MaxScale]. A factor
// of 1.0 returns the input unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor < MinScale {
		factor = MinScale
	}
	if factor > MaxScale {
		factor = MaxScale
	}
	if factor == 1.0 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

// ToRGBA converts any image to RGBA for in-place drawing.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	stddraw.Draw(rgba, b, img, b.Min, stddraw.Src)
	return rgba
}

// Encode serializes img in the named format ("png" or "jpg"). quality
// applies to JPEG only.
func Encode(img image.Image, format string, quality int) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch format {
	case "jpg", "jpeg":
		if quality <= 0 || quality > 100 {
			quality = 80
		}
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("jpeg encode: %w", err)
		}
	case "", "png":
		if err := png.Encode(buf, img); err != nil {
			return nil, fmt.Errorf("png encode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported image format: %q", format)
	}
	return buf.Bytes(), nil
}

var (
	markerColor  = color.RGBA{R: 255, G: 0, B: 0, A: 100}
	labelColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)
