package storage

import (
	"bytes"
	"image"
	"image/png"
	"path"

	"github.com/rs/xid"
	"github.com/spf13/afero"
)

func NewFrames(fs afero.Fs) *Frames {
	return &Frames{fs: fs}
}

// Frames writes rendered frames as png files.
type Frames struct {
	fs afero.Fs
}

// Save writes img to name, or to a fresh unique name when name is empty, and
// returns the name used.
func (f *Frames) Save(name string, img image.Image) (string, error) {
	if name == "" {
		name = xid.New().String() + ".png"
	}

	bs, err := Encode(img)
	if err != nil {
		return "", err
	}

	if dir := path.Dir(name); dir != "." && dir != "/" {
		if exists, err := afero.DirExists(f.fs, dir); err != nil {
			return "", err
		} else if !exists {
			if err2 := f.fs.MkdirAll(dir, 0755); err2 != nil {
				return "", err2
			}
		}
	}

	if err := afero.WriteFile(f.fs, name, bs, 0644); err != nil {
		return "", err
	}
	return name, nil
}

func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
