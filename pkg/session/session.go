// Package session owns the original and working rasters of one comparison
// session and applies effects to the part left of the split boundary.
//
// Every mutation replaces the working raster with a new buffer, so a raster
// handed out by Current or Render is never written afterwards.
package session

import (
	"image"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"splitview/pkg/mixer"
	"splitview/pkg/raster"
	"splitview/pkg/split"
)

func New(engine *mixer.Engine, comp *split.Compositor, logger *zap.Logger) *Session {
	if engine == nil {
		engine = mixer.New()
	}
	if comp == nil {
		comp = split.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		engine:   engine,
		comp:     comp,
		logger:   logger.With(zap.String("via", "session")),
		boundary: split.NoSplit,
		applied:  make(map[string]bool),
	}
}

type Session struct {
	l sync.Mutex

	engine *mixer.Engine
	comp   *split.Compositor
	logger *zap.Logger

	original *image.NRGBA
	current  *image.NRGBA
	boundary int
	applied  map[string]bool
}

// Load replaces both rasters with copies of img and clears the boundary and
// every toggle.
func (s *Session) Load(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return raster.ErrEmptyRaster
	}

	s.l.Lock()
	defer s.l.Unlock()

	s.original = raster.Clone(img)
	s.current = raster.Clone(img)
	s.boundary = split.NoSplit
	s.applied = make(map[string]bool)

	s.logger.With(
		zap.Int("width", s.original.Bounds().Dx()),
		zap.Int("height", s.original.Bounds().Dy()),
	).Info("loaded")
	return nil
}

// Reset restores the working raster from the original.
func (s *Session) Reset() error {
	s.l.Lock()
	defer s.l.Unlock()

	if raster.Empty(s.original) {
		return raster.ErrEmptyRaster
	}

	s.revert()
	s.applied = make(map[string]bool)
	return nil
}

func (s *Session) revert() {
	s.current = raster.Clone(s.original)
	s.boundary = split.NoSplit
	s.logger.Debug("reverted")
}

// Pointer moves the split boundary. Negative x clears it; x past the right
// edge sticks to the edge.
func (s *Session) Pointer(x int) error {
	s.l.Lock()
	defer s.l.Unlock()

	if raster.Empty(s.current) {
		return raster.ErrEmptyRaster
	}

	switch w := s.current.Bounds().Dx(); {
	case x < 0:
		s.boundary = split.NoSplit
	case x > w:
		s.boundary = w
	default:
		s.boundary = x
	}
	return nil
}

func (s *Session) Boundary() int {
	s.l.Lock()
	defer s.l.Unlock()
	return s.boundary
}

// Trigger handles one activation of an effect control. The first activation
// applies the effect left of the boundary (or to the whole raster when there
// is none); the next one reverts the whole working raster to the original,
// discarding the results of every other control too.
func (s *Session) Trigger(effect string) error {
	s.l.Lock()
	defer s.l.Unlock()

	if raster.Empty(s.current) {
		return raster.ErrEmptyRaster
	}

	log := s.logger.With(zap.String("effect", effect))

	if _, ok := s.engine.Lookup(effect); !ok {
		log.Info("unknown effect")
		return errors.Wrapf(mixer.ErrUnknownEffect, "%q", effect)
	}

	if s.applied[effect] {
		s.revert()
	} else {
		region := raster.LeftOf(s.current, s.boundary)
		out, err := s.engine.Apply(effect, s.current, region)
		if err != nil {
			log.With(zap.Error(err)).Info("apply failed")
			return err
		}
		s.current = out
		log.With(zap.Stringer("region", region)).Debug("effect applied")
	}

	s.applied[effect] = !s.applied[effect]
	return nil
}

// Applied reports the toggle state of an effect control.
func (s *Session) Applied(effect string) bool {
	s.l.Lock()
	defer s.l.Unlock()
	return s.applied[effect]
}

func (s *Session) Effects() []string {
	return s.engine.Names()
}

// Current returns a copy of the working raster.
func (s *Session) Current() (image.Image, error) {
	s.l.Lock()
	defer s.l.Unlock()

	if raster.Empty(s.current) {
		return nil, raster.ErrEmptyRaster
	}
	return raster.Clone(s.current), nil
}

// Original returns a copy of the loaded raster.
func (s *Session) Original() (image.Image, error) {
	s.l.Lock()
	defer s.l.Unlock()

	if raster.Empty(s.original) {
		return nil, raster.ErrEmptyRaster
	}
	return raster.Clone(s.original), nil
}

// Render composes the frame for a width x height viewport at the live
// boundary.
func (s *Session) Render(width int, height int) (image.Image, error) {
	s.l.Lock()
	defer s.l.Unlock()

	frame, err := s.comp.Render(s.current, s.original, s.boundary, width, height)
	if err != nil {
		return nil, err
	}
	return frame, nil
}
