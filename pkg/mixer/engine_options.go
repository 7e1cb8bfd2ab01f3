package mixer

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

type Option func(e *Engine)

// WithEffect replaces the built-in effect set.
func WithEffect(effs ...Effect) Option {
	return func(e *Engine) {
		e.effs = effs
	}
}

// WithSampler sets the random source of the Add Noise effect.
func WithSampler(s Sampler) Option {
	return func(e *Engine) {
		e.sampler = s
	}
}

// WithSeed makes Add Noise reproducible. Every seed, 0 included, replays
// the same sequence; leave the option out for the process wide generator.
func WithSeed(seed uint64) Option {
	return WithSampler(NewGaussian(NoiseSigma, rand.NewPCG(seed, seed)))
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
