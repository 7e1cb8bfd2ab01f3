package mixer

import (
	"image"

	"github.com/pkg/errors"
)

const (
	BlackWhite = "Black-White"
	Negative   = "Negative"
	Sepia      = "Sepia"
	AddNoise   = "Add Noise"
	Pixelate   = "Pixelate"
	Mirror     = "Mirror"
	Tint       = "Tint"
	Posterize  = "Posterize"
	Solarize   = "Solarize"
	Vignette   = "Vignette"
)

var ErrUnknownEffect = errors.New("unknown effect")

// Effect transforms a region copy. Process owns img and may write into it;
// the returned raster must have the same size.
type Effect interface {
	Name() string
	Process(img *image.NRGBA) (*image.NRGBA, error)
}

// Defaults returns the ten built-in effects in control order. The noise
// effect draws from s.
func Defaults(s Sampler) []Effect {
	return []Effect{
		EffectBlackWhite(),
		EffectNegative(),
		EffectSepia(),
		EffectNoise(s),
		EffectPixelate(10),
		EffectMirror(),
		EffectTint(),
		EffectPosterize(4),
		EffectSolarize(),
		EffectVignette(),
	}
}
