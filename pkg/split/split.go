// Package split renders the comparison frame: the working raster left of the
// boundary, the untouched original right of it and a one pixel marker on the
// boundary column.
package split

import (
	"fmt"
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/image/draw"

	"splitview/pkg/raster"
)

// NoSplit is the boundary sentinel: show the working raster uncomposited.
const NoSplit = -1

// MaxViewport is the default pixel budget of one rendered frame.
const MaxViewport = 1 << 26

var ErrViewportTooLarge = errors.New("viewport too large")

type Option func(c *Compositor)

func WithMarker(c color.Color) Option {
	return func(cp *Compositor) {
		cp.marker = image.NewUniform(c)
	}
}

// WithScaler swaps the resampling kernel, nearest neighbour by default.
func WithScaler(s draw.Scaler) Option {
	return func(cp *Compositor) {
		cp.scaler = s
	}
}

// WithMaxViewport caps vw*vh of a rendered frame. Non-positive keeps the
// default.
func WithMaxViewport(pixels int) Option {
	return func(cp *Compositor) {
		if pixels > 0 {
			cp.maxPixels = pixels
		}
	}
}

func New(opts ...Option) *Compositor {
	c := &Compositor{
		marker:    image.NewUniform(color.NRGBA{R: 255, A: 255}),
		scaler:    draw.NearestNeighbor,
		maxPixels: MaxViewport,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compositor is stateless; one value can serve any number of sessions.
type Compositor struct {
	marker    *image.Uniform
	scaler    draw.Scaler
	maxPixels int
}

// Render builds a vw x vh frame. boundary is a raster column; when the
// viewport size differs from the raster, the split column scales with it.
// A non-positive viewport dimension means raster size. Viewports over the
// pixel budget fail with ErrViewportTooLarge before anything is allocated.
func (c *Compositor) Render(current, original *image.NRGBA, boundary int, vw, vh int) (*image.NRGBA, error) {
	if raster.Empty(current) || raster.Empty(original) {
		return nil, raster.ErrEmptyRaster
	}
	if !raster.SameSize(current, original) {
		return nil, fmt.Errorf("raster size mismatch: %v vs %v", current.Bounds().Size(), original.Bounds().Size())
	}

	cb, ob := current.Bounds(), original.Bounds()
	w, h := cb.Dx(), cb.Dy()
	if vw <= 0 || vh <= 0 {
		vw, vh = w, h
	}
	if vw > c.maxPixels/vh {
		return nil, errors.Wrapf(ErrViewportTooLarge, "%dx%d over %d pixels", vw, vh, c.maxPixels)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, vw, vh))
	if boundary < 0 {
		c.scale(dst, dst.Bounds(), current, cb)
		return dst, nil
	}

	b := lo.Clamp(boundary, 0, w)
	at := b * vw / w

	c.scale(dst, image.Rect(0, 0, at, vh), current, image.Rect(cb.Min.X, cb.Min.Y, cb.Min.X+b, cb.Max.Y))
	c.scale(dst, image.Rect(at, 0, vw, vh), original, image.Rect(ob.Min.X+b, ob.Min.Y, ob.Max.X, ob.Max.Y))

	if at < vw {
		draw.Draw(dst, image.Rect(at, 0, at+1, vh), c.marker, image.Point{}, draw.Src)
	}

	return dst, nil
}

func (c *Compositor) scale(dst *image.NRGBA, dr image.Rectangle, src *image.NRGBA, sr image.Rectangle) {
	if dr.Empty() || sr.Empty() {
		return
	}
	c.scaler.Scale(dst, dr, src, sr, draw.Src, nil)
}
