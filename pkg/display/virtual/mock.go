package virtual

import (
	"image"
	"sync"

	"go.uber.org/zap"

	"splitview/pkg/proto"
)

func Mock(logger *zap.Logger) *Mocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mocker{l: logger}
}

var _ proto.Display = (*Mocker)(nil)

// Mocker logs every frame and remembers the last one.
type Mocker struct {
	sync.Mutex
	l      *zap.Logger
	last   image.Image
	frames int
}

func (m *Mocker) Show(frame image.Image) error {
	m.Lock()
	defer m.Unlock()

	m.last = frame
	m.frames++
	m.l.With(
		zap.Int("w", frame.Bounds().Dx()),
		zap.Int("h", frame.Bounds().Dy()),
		zap.Int("n", m.frames),
	).Info("show")
	return nil
}

func (m *Mocker) Last() image.Image {
	m.Lock()
	defer m.Unlock()
	return m.last
}

func (m *Mocker) Frames() int {
	m.Lock()
	defer m.Unlock()
	return m.frames
}
