package storage

import (
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/moolex/wallhaven-go/api"
	"github.com/spf13/afero"

	"splitview/pkg/raster"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 7, 3))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 9)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestFramesRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	frames := NewFrames(fs)

	name, err := frames.Save("out/deep/frame.png", sample())
	if err != nil {
		t.Fatal(err)
	}
	if name != "out/deep/frame.png" {
		t.Errorf("name = %q", name)
	}

	got, err := NewLoader(fs, nil, nil).Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sample().Pix, got.Pix); diff != "" {
		t.Errorf("pixels (-want +got):\n%s", diff)
	}
}

func TestFramesGeneratedName(t *testing.T) {
	fs := afero.NewMemMapFs()
	a, err := NewFrames(fs).Save("", raster.Solid(2, 2, color.NRGBA{A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewFrames(fs).Save("", raster.Solid(2, 2, color.NRGBA{A: 255}))
	if !strings.HasSuffix(a, ".png") || a == b {
		t.Errorf("names %q, %q", a, b)
	}
	if ok, _ := afero.Exists(fs, a); !ok {
		t.Errorf("%s not written", a)
	}
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "junk.png", []byte("not an image"), 0644)

	l := NewLoader(fs, nil, nil)
	if _, err := l.Load("missing.png"); err == nil {
		t.Error("missing file loaded")
	}
	if _, err := l.Load("junk.png"); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("junk: err = %v", err)
	}
	if _, err := NewLoader(nil, nil, nil).Load("a.png"); err == nil {
		t.Error("loaded without a filesystem")
	}
}

func TestLoadURL(t *testing.T) {
	bs, err := Encode(sample())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(bs)
	}))
	defer srv.Close()

	l := NewLoader(nil, NewDownloader(nil, false), nil)
	got, err := l.Load(srv.URL + "/img.png")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sample().Pix, got.Pix); diff != "" {
		t.Errorf("pixels (-want +got):\n%s", diff)
	}

	if _, err := l.Load(srv.URL + "/nope.png"); err == nil {
		t.Error("404 loaded")
	}
}

func TestLoadWallhaven(t *testing.T) {
	bs, err := Encode(sample())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/full/wallhaven-k7q1.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(bs)
	}))
	defer srv.Close()

	var queries []string
	l := NewLoader(nil, NewDownloader(nil, false), nil)
	l.SetFinder(func(query string) (*api.Wallpaper, error) {
		queries = append(queries, query)
		switch query {
		case "nature":
			return &api.Wallpaper{Path: srv.URL + "/full/wallhaven-k7q1.png"}, nil
		case "gone":
			return &api.Wallpaper{Path: srv.URL + "/full/missing.png"}, nil
		case "empty":
			return &api.Wallpaper{}, nil
		}
		return nil, ErrNoWallpaper
	})

	got, err := l.Load("wallhaven:nature")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sample().Pix, got.Pix); diff != "" {
		t.Errorf("pixels (-want +got):\n%s", diff)
	}

	if _, err := l.Load("wallhaven:gone"); err == nil {
		t.Error("404 wallpaper loaded")
	}
	for _, ref := range []string{"wallhaven:empty", "wallhaven:nothing"} {
		if _, err := l.Load(ref); !errors.Is(err, ErrNoWallpaper) {
			t.Errorf("%s: err = %v", ref, err)
		}
	}
	if diff := cmp.Diff([]string{"nature", "gone", "empty", "nothing"}, queries); diff != "" {
		t.Errorf("queries (-want +got):\n%s", diff)
	}

	if _, err := NewLoader(afero.NewMemMapFs(), nil, nil).Load("wallhaven:nature"); err == nil {
		t.Error("searched without a finder")
	}
}

func TestIsURL(t *testing.T) {
	for ref, want := range map[string]bool{
		"http://x/a.png":  true,
		"https://x/a.png": true,
		"a.png":           false,
		"/tmp/http.png":   false,
		"wallhaven:cats":  false,
	} {
		if IsURL(ref) != want {
			t.Errorf("IsURL(%q) != %v", ref, want)
		}
	}
}
