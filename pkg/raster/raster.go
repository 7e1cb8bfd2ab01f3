// Package raster holds the RGBA8 buffer helpers shared by the effect engine,
// the compositor and the session. A raster is an *image.NRGBA whose bounds
// start at (0, 0); every helper returns a fresh buffer and never writes into
// its arguments.
package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Clone returns a deep copy of img rebased to (0, 0).
func Clone(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	return imaging.Clone(img)
}

// Solid returns a w x h raster filled with c.
func Solid(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

// Region builds the rectangle at (x, y) with the given extent.
func Region(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// Clamp restricts r to bounds. An out of range region shrinks instead of
// failing; a region fully outside bounds becomes empty.
func Clamp(r image.Rectangle, bounds image.Rectangle) image.Rectangle {
	return r.Canon().Intersect(bounds)
}

// LeftOf is the region [0, boundary) x [0, height) of img. A non-positive
// boundary selects the whole raster.
func LeftOf(img *image.NRGBA, boundary int) image.Rectangle {
	b := img.Bounds()
	if boundary <= 0 {
		return b
	}
	return Clamp(image.Rect(b.Min.X, b.Min.Y, b.Min.X+boundary, b.Max.Y), b)
}

// Crop copies the clamped region r of img into a new raster at (0, 0).
func Crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, Clamp(r, img.Bounds()))
}

// Paste returns a copy of dst with part drawn at pt.
func Paste(dst *image.NRGBA, part image.Image, pt image.Point) *image.NRGBA {
	return imaging.Paste(dst, part, pt)
}

// SameSize reports whether a and b have identical dimensions.
func SameSize(a, b image.Image) bool {
	return a.Bounds().Size() == b.Bounds().Size()
}

// Empty reports whether img is absent or has no pixels.
func Empty(img *image.NRGBA) bool {
	return img == nil || img.Bounds().Empty()
}
