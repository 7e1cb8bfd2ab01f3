package mixer

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"
)

// pointwise maps every pixel independently.
type pointwise struct {
	name string
	fn   func(c color.NRGBA) color.NRGBA
}

func (e *pointwise) Name() string {
	return e.name
}

func (e *pointwise) Process(img *image.NRGBA) (*image.NRGBA, error) {
	return imaging.AdjustFunc(img, e.fn), nil
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

// EffectBlackWhite thresholds the channel mean at 128.
func EffectBlackWhite() Effect {
	return &pointwise{
		name: BlackWhite,
		fn: func(c color.NRGBA) color.NRGBA {
			gray := (int(c.R) + int(c.G) + int(c.B)) / 3
			return lo.Ternary(gray > 128, white, black)
		},
	}
}

func EffectSepia() Effect {
	return &pointwise{
		name: Sepia,
		fn: func(c color.NRGBA) color.NRGBA {
			r, g, b := float64(c.R), float64(c.G), float64(c.B)
			return color.NRGBA{
				R: truncate(0.393*r + 0.769*g + 0.189*b),
				G: truncate(0.349*r + 0.686*g + 0.168*b),
				B: truncate(0.272*r + 0.534*g + 0.131*b),
				A: 255,
			}
		},
	}
}

// EffectTint keeps red and scales green and blue by 0.7.
func EffectTint() Effect {
	return &pointwise{
		name: Tint,
		fn: func(c color.NRGBA) color.NRGBA {
			return color.NRGBA{
				R: c.R,
				G: truncate(float64(c.G) * 0.7),
				B: truncate(float64(c.B) * 0.7),
				A: 255,
			}
		},
	}
}

// EffectPosterize quantises each channel to the given number of levels.
func EffectPosterize(levels int) Effect {
	table := posterizeTable(levels)
	return &pointwise{
		name: Posterize,
		fn: func(c color.NRGBA) color.NRGBA {
			return color.NRGBA{R: table[c.R], G: table[c.G], B: table[c.B], A: 255}
		},
	}
}

func posterizeTable(levels int) [256]uint8 {
	var table [256]uint8
	for i := range table {
		table[i] = uint8(255 * (levels * i / 256) / (levels - 1))
	}
	return table
}

// EffectSolarize inverts the channels below 128.
func EffectSolarize() Effect {
	return &pointwise{
		name: Solarize,
		fn: func(c color.NRGBA) color.NRGBA {
			return color.NRGBA{R: solarize(c.R), G: solarize(c.G), B: solarize(c.B), A: 255}
		},
	}
}

func solarize(v uint8) uint8 {
	return lo.Ternary(v < 128, 255-v, v)
}

// truncate drops the fraction and caps at 255. Inputs are never negative.
func truncate(v float64) uint8 {
	return uint8(lo.Clamp(int(v), 0, 255))
}
