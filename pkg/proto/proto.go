package proto

import (
	"image"
)

// Viewer is one comparison session, local or remote.
type Viewer interface {
	Load(img image.Image) error
	Reset() error

	Pointer(x int) error
	Trigger(effect string) error

	Current() (image.Image, error)
	Render(width int, height int) (image.Image, error)
}

// Display receives rendered frames.
type Display interface {
	Show(frame image.Image) error
}
