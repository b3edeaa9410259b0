package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Marker labels one point of interest on a screenshot, typically an
// element's on-screen center tagged with its tree identifier.
type Marker struct {
	X, Y  int
	Label string
}

// Annotate draws each marker onto a copy of img: a small crosshair at the
// point plus its label. factor is the scale already applied to the image
// relative to the screen coordinates the markers are expressed in.
func Annotate(img image.Image, markers []Marker, factor float64) image.Image {
	if factor <= 0 {
		factor = 1.0
	}
	rgba := ToRGBA(img)
	for _, m := range markers {
		x := int(float64(m.X) * factor)
		y := int(float64(m.Y) * factor)
		drawCrosshair(rgba, x, y, markerColor)
		if m.Label != "" {
			drawTextWithOutline(rgba, m.Label, x, y-10, labelColor, outlineColor)
		}
	}
	return rgba
}

func drawCrosshair(img *image.RGBA, x, y int, c color.Color) {
	bounds := img.Bounds()
	for d := -4; d <= 4; d++ {
		if inBounds(bounds, x+d, y) {
			img.Set(x+d, y, c)
		}
		if inBounds(bounds, x, y+d) {
			img.Set(x, y+d, c)
		}
	}
}

func inBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawTextWithOutline draws text with an outline for better visibility
// against arbitrary backgrounds.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outline color.Color) {
	// basicfont.Face7x13: ~7px advance per character, 13px tall.
	offsetX := x - len(text)*7/2
	offsetY := y - 13/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, offsetX+dx, offsetY+dy, outline)
		}
	}
	drawString(img, text, offsetX, offsetY, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
