package mixer

import (
	"image"

	"github.com/disintegration/imaging"
)

type negative struct{}

// EffectNegative inverts red, green and blue and keeps alpha.
func EffectNegative() Effect {
	return &negative{}
}

func (e *negative) Name() string {
	return Negative
}

func (e *negative) Process(img *image.NRGBA) (*image.NRGBA, error) {
	return imaging.Invert(img), nil
}

type mirror struct{}

// EffectMirror flips the region horizontally around its own centre.
func EffectMirror() Effect {
	return &mirror{}
}

func (e *mirror) Name() string {
	return Mirror
}

func (e *mirror) Process(img *image.NRGBA) (*image.NRGBA, error) {
	return imaging.FlipH(img), nil
}
