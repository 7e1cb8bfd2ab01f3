package mixer

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat/distuv"
)

const NoiseSigma = 30

// Sampler yields one random draw per call.
type Sampler interface {
	Rand() float64
}

// NewGaussian returns a zero-mean normal sampler drawing from src. A nil src
// uses the process wide generator.
func NewGaussian(sigma float64, src rand.Source) Sampler {
	return distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
}

// EffectNoise adds one truncated sample per pixel to red, green and blue.
func EffectNoise(s Sampler) Effect {
	return &noise{s: s}
}

type noise struct {
	s Sampler
}

func (e *noise) Name() string {
	return AddNoise
}

// Process walks rows top to bottom so a seeded sampler is reproducible.
func (e *noise) Process(img *image.NRGBA) (*image.NRGBA, error) {
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			n := int(e.s.Rand())
			img.SetNRGBA(x, y, color.NRGBA{
				R: shift(c.R, n),
				G: shift(c.G, n),
				B: shift(c.B, n),
				A: 255,
			})
		}
	}
	return img, nil
}

func shift(v uint8, n int) uint8 {
	return uint8(lo.Clamp(int(v)+n, 0, 255))
}
