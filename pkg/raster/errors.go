package raster

import "github.com/pkg/errors"

// ErrEmptyRaster is returned when an operation needs pixels and no image has
// been loaded.
var ErrEmptyRaster = errors.New("empty raster")
