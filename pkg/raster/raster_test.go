package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClamp(t *testing.T) {
	bounds := image.Rect(0, 0, 20, 10)
	tests := []struct {
		name string
		in   image.Rectangle
		want image.Rectangle
	}{
		{"inside", Region(2, 3, 4, 5), image.Rect(2, 3, 6, 8)},
		{"too_wide", Region(0, 0, 50, 10), image.Rect(0, 0, 20, 10)},
		{"negative_offset", Region(-5, -5, 10, 10), image.Rect(0, 0, 5, 5)},
		{"outside", Region(30, 0, 5, 5), image.Rectangle{}},
		{"reversed", image.Rect(10, 10, 0, 0), image.Rect(0, 0, 10, 10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Clamp(tc.in, bounds)
			if got.Empty() && tc.want.Empty() {
				return
			}
			if got != tc.want {
				t.Errorf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestLeftOf(t *testing.T) {
	img := Solid(20, 10, color.NRGBA{A: 255})
	tests := []struct {
		boundary int
		want     image.Rectangle
	}{
		{-1, image.Rect(0, 0, 20, 10)},
		{0, image.Rect(0, 0, 20, 10)},
		{7, image.Rect(0, 0, 7, 10)},
		{20, image.Rect(0, 0, 20, 10)},
		{99, image.Rect(0, 0, 20, 10)},
	}
	for _, tc := range tests {
		if got := LeftOf(img, tc.boundary); got != tc.want {
			t.Errorf("LeftOf(%d) = %v, want %v", tc.boundary, got, tc.want)
		}
	}
}

func TestCropPasteLeavesSourceAlone(t *testing.T) {
	src := Solid(6, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	before := Clone(src)

	part := Crop(src, Region(1, 1, 10, 2))
	if part.Bounds() != image.Rect(0, 0, 5, 2) {
		t.Fatalf("crop bounds = %v", part.Bounds())
	}
	for i := range part.Pix {
		part.Pix[i] = 0
	}

	out := Paste(src, part, image.Pt(1, 1))
	if diff := cmp.Diff(before.Pix, src.Pix); diff != "" {
		t.Errorf("source mutated (-want +got):\n%s", diff)
	}
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{}) {
		t.Errorf("pasted pixel = %v", got)
	}
	if got := out.NRGBAAt(0, 0); got != src.NRGBAAt(0, 0) {
		t.Errorf("untouched pixel = %v", got)
	}
}

func TestCloneRebases(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	img.SetNRGBA(5, 5, color.NRGBA{R: 1, A: 255})

	c := Clone(img)
	if c.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", c.Bounds())
	}
	if c.NRGBAAt(0, 0) != (color.NRGBA{R: 1, A: 255}) {
		t.Errorf("pixel = %v", c.NRGBAAt(0, 0))
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
	if !Empty(nil) || !Empty(&image.NRGBA{}) || Empty(c) {
		t.Error("Empty mismatch")
	}
}
