package storage

import (
	"fmt"
	"strings"

	"github.com/moolex/wallhaven-go/api"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// WallhavenScheme prefixes a search reference: "wallhaven:<query>".
const WallhavenScheme = "wallhaven:"

var ErrNoWallpaper = errors.New("no wallpaper found")

// Finder resolves a search query to one wallpaper.
type Finder func(query string) (*api.Wallpaper, error)

func IsWallhaven(ref string) bool {
	return strings.HasPrefix(ref, WallhavenScheme)
}

// Wallhaven searches wh and picks a random hit from the first result page.
func Wallhaven(wh *api.API) Finder {
	return func(query string) (*api.Wallpaper, error) {
		ret, err := wh.Query(api.NewQuery(query))
		if err != nil {
			return nil, fmt.Errorf("wallhaven query failed: %w", err)
		}

		wp, err := ret.Pick(api.PickRand)
		if err != nil {
			if errors.Is(err, api.ErrNoMoreItems) {
				return nil, errors.Wrapf(ErrNoWallpaper, "%q", query)
			}
			return nil, err
		}
		return wp, nil
	}
}

func (l *Loader) fetchWallpaper(query string) ([]byte, error) {
	if l.find == nil {
		return nil, fmt.Errorf("no wallhaven api to search %q", query)
	}

	wp, err := l.find(query)
	if err != nil {
		return nil, err
	}
	if wp == nil || wp.Path == "" {
		return nil, errors.Wrapf(ErrNoWallpaper, "%q", query)
	}

	l.log.With(zap.String("query", query), zap.String("path", wp.Path)).Info("wallpaper picked")
	return l.dl.Get(wp.Path)
}
