package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"splitview/pkg/raster"
)

func NewLoader(fs afero.Fs, dl *Downloader, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dl == nil {
		dl = NewDownloader(logger, false)
	}
	return &Loader{
		fs:  fs,
		dl:  dl,
		log: logger.With(zap.String("via", "loader")),
	}
}

// Loader resolves an image reference: an http(s) URL, a wallhaven search or
// a path on its filesystem.
type Loader struct {
	fs   afero.Fs
	dl   *Downloader
	find Finder
	log  *zap.Logger
}

// SetFinder enables "wallhaven:" references.
func (l *Loader) SetFinder(find Finder) {
	l.find = find
}

func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func (l *Loader) Read(ref string) ([]byte, error) {
	if IsURL(ref) {
		return l.dl.Get(ref)
	}
	if IsWallhaven(ref) {
		return l.fetchWallpaper(strings.TrimPrefix(ref, WallhavenScheme))
	}
	if l.fs == nil {
		return nil, fmt.Errorf("no filesystem to read %s", ref)
	}
	return afero.ReadFile(l.fs, ref)
}

// Load reads and decodes ref into an RGBA8 raster.
func (l *Loader) Load(ref string) (*image.NRGBA, error) {
	bs, err := l.Read(ref)
	if err != nil {
		return nil, fmt.Errorf("read image failed: %w", err)
	}

	img, err := Decode(bs)
	if err != nil {
		return nil, err
	}

	l.log.With(
		zap.String("ref", ref),
		zap.String("size", bytesize.New(float64(len(bs))).String()),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	).Info("image loaded")
	return img, nil
}

// Decode accepts png, jpeg, gif, bmp, tiff and webp and honours EXIF
// orientation.
func Decode(bs []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(bs), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, raster.ErrEmptyRaster
	}
	return raster.Clone(img), nil
}
