package mixer

import (
	"image"
	"image/color"
)

// EffectPixelate replaces every size x size block with its mean colour.
// Blocks on the right and bottom edges are cut at the raster edge.
func EffectPixelate(size int) Effect {
	return &block{
		size: size,
	}
}

type block struct {
	size int
}

func (e *block) Name() string {
	return Pixelate
}

func (e *block) Process(img *image.NRGBA) (*image.NRGBA, error) {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()

	for y := 0; y < h; y += e.size {
		for x := 0; x < w; x += e.size {
			cell := image.Rect(x, y, x+e.size, y+e.size).Intersect(r)
			fill(img, cell, mean(img, cell))
		}
	}

	return img, nil
}

func mean(img *image.NRGBA, cell image.Rectangle) color.NRGBA {
	var sr, sg, sb, n int
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		for x := cell.Min.X; x < cell.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			n++
		}
	}
	return color.NRGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: 255}
}

func fill(img *image.NRGBA, cell image.Rectangle, c color.NRGBA) {
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		for x := cell.Min.X; x < cell.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}
