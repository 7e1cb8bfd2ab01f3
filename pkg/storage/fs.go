// Package storage loads source images from a filesystem or over HTTP and
// writes rendered frames back out.
package storage

import (
	"errors"

	"github.com/spf13/afero"
)

// OpenFs roots a filesystem at path. An empty path is the OS filesystem as is.
func OpenFs(path string) (afero.Fs, error) {
	fs := afero.NewOsFs()
	if path == "" {
		return fs, nil
	}
	if exists, err := afero.DirExists(fs, path); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.New("dir not exists")
	}
	return afero.NewBasePathFs(fs, path), nil
}
