package mixer

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"splitview/pkg/raster"
)

func New(opts ...Option) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.sampler == nil {
		e.sampler = NewGaussian(NoiseSigma, nil)
	}
	if len(e.effs) == 0 {
		e.effs = Defaults(e.sampler)
	}

	e.index = lo.KeyBy(e.effs, Effect.Name)
	e.logger = e.logger.With(zap.String("via", "mixer"))
	return e
}

// Engine is the effect registry. It keeps no reference to the rasters it is
// handed once a call returns. An Engine built WithSeed must not be shared
// between goroutines.
type Engine struct {
	effs    []Effect
	index   map[string]Effect
	sampler Sampler
	logger  *zap.Logger
}

// Names lists the registered effects in control order.
func (e *Engine) Names() []string {
	return lo.Map(e.effs, func(eff Effect, _ int) string { return eff.Name() })
}

func (e *Engine) Lookup(name string) (Effect, bool) {
	eff, ok := e.index[name]
	return eff, ok
}

// Transform runs the named effect over a copy of region.
func (e *Engine) Transform(name string, region *image.NRGBA) (*image.NRGBA, error) {
	eff, ok := e.Lookup(name)
	if !ok {
		e.logger.With(zap.String("effect", name)).Info("unknown effect")
		return nil, errors.Wrapf(ErrUnknownEffect, "%q", name)
	}

	if raster.Empty(region) {
		return &image.NRGBA{}, nil
	}

	out, err := eff.Process(raster.Clone(region))
	if err != nil {
		return nil, fmt.Errorf("effect %s failed: %w", name, err)
	}

	if !raster.SameSize(out, region) {
		return nil, fmt.Errorf("effect %s changed size %v to %v", name, region.Bounds().Size(), out.Bounds().Size())
	}

	return out, nil
}

// Apply returns a copy of src in which region r has been replaced by the
// named effect's output. r is clamped to the raster; src is never written.
func (e *Engine) Apply(name string, src *image.NRGBA, r image.Rectangle) (*image.NRGBA, error) {
	if raster.Empty(src) {
		return nil, raster.ErrEmptyRaster
	}

	r = raster.Clamp(r, src.Bounds())
	part, err := e.Transform(name, raster.Crop(src, r))
	if err != nil {
		return nil, err
	}
	if r.Empty() {
		return raster.Clone(src), nil
	}

	e.logger.With(
		zap.String("effect", name),
		zap.Stringer("region", r),
	).Debug("applied")

	return raster.Paste(src, part, r.Min), nil
}
