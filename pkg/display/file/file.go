// Package file is a display that writes every frame to a png file.
package file

import (
	"image"

	"go.uber.org/zap"

	"splitview/pkg/proto"
	"splitview/pkg/storage"
)

// New writes frames to name, overwriting it each time. An empty name writes
// every frame to a new uniquely named file.
func New(frames *storage.Frames, name string, logger *zap.Logger) proto.Display {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &display{frames: frames, name: name, log: logger}
}

type display struct {
	frames *storage.Frames
	name   string
	log    *zap.Logger
}

func (d *display) Show(frame image.Image) error {
	name, err := d.frames.Save(d.name, frame)
	if err != nil {
		return err
	}
	d.log.With(zap.String("file", name)).Info("frame saved")
	return nil
}
