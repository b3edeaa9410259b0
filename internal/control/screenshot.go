package control

import (
	"context"
	"fmt"

	"github.com/guipilot/guipilot/internal/ax"
	"github.com/guipilot/guipilot/internal/imaging"
	"github.com/guipilot/guipilot/internal/platform"
)

// ScreenshotOptions configure a capture.
type ScreenshotOptions struct {
	Format  string  // "png" or "jpg"
	Quality int     // JPEG quality 1-100
	Scale   float64 // 0.1-1.0, default 0.5

	// Annotate overlays element identifiers from App's focused window so
	// an agent can relate tree ids to pixels.
	Annotate bool
	App      string
}

// Screenshot captures the display, downscales it, and optionally overlays
// element markers. Returns the encoded image bytes.
func (c *Controller) Screenshot(ctx context.Context, opts ScreenshotOptions) ([]byte, error) {
	if c.provider == nil || c.provider.Screenshotter == nil {
		return nil, platform.ErrUnsupported
	}
	img, err := c.provider.Screenshotter.CaptureDisplay()
	if err != nil {
		return nil, fmt.Errorf("capture display: %w", err)
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 0.5
	}
	scaled := imaging.Scale(img, scale)

	if opts.Annotate && opts.App != "" {
		markers, err := c.elementMarkers(ctx, opts.App)
		if err != nil {
			// Annotation is best-effort; an unreadable tree still yields a
			// usable screenshot.
			c.log.Warn("annotation skipped", "app", opts.App, "err", err)
		} else {
			scaled = imaging.Annotate(scaled, markers, scale)
		}
	}
	return imaging.Encode(scaled, opts.Format, opts.Quality)
}

// elementMarkers collects the on-screen centers of actionable elements in
// the app's focused window, labeled with their tree identifiers.
func (c *Controller) elementMarkers(ctx context.Context, appRef string) ([]imaging.Marker, error) {
	node, err := c.ListElements(ctx, ListOptions{App: appRef})
	if err != nil {
		return nil, err
	}
	var markers []imaging.Marker
	var walk func(n ax.Node)
	walk = func(n ax.Node) {
		if len(n.Actions) > 0 && len(n.Center) == 2 {
			markers = append(markers, imaging.Marker{X: n.Center[0], Y: n.Center[1], Label: n.ID})
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(*node)
	return markers, nil
}
