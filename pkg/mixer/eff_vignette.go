package mixer

import (
	"image"
	"image/color"
	"math"
)

// VignetteAlpha is the darkening at the gradient radius, out of 255.
const VignetteAlpha = 150

// EffectVignette darkens towards the edges with a radial black gradient
// centred on the region. The radius is half the region width; pixels past it
// get the outer alpha.
func EffectVignette() Effect {
	return &vignette{outer: VignetteAlpha / 255.0}
}

type vignette struct {
	outer float64
}

func (e *vignette) Name() string {
	return Vignette
}

func (e *vignette) Process(img *image.NRGBA) (*image.NRGBA, error) {
	r := img.Bounds()
	radius := float64(r.Dx()) / 2
	if radius == 0 {
		return img, nil
	}
	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / radius
			img.SetNRGBA(x, y, darken(img.NRGBAAt(x, y), math.Min(t, 1)*e.outer))
		}
	}
	return img, nil
}

// darken composites black with alpha a over c.
func darken(c color.NRGBA, a float64) color.NRGBA {
	da := float64(c.A) / 255
	oa := a + da*(1-a)
	if oa == 0 {
		return color.NRGBA{}
	}
	k := da * (1 - a) / oa
	return color.NRGBA{
		R: uint8(math.Round(float64(c.R) * k)),
		G: uint8(math.Round(float64(c.G) * k)),
		B: uint8(math.Round(float64(c.B) * k)),
		A: uint8(math.Round(oa * 255)),
	}
}
