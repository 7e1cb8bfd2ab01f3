package bot

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"

	"splitview/pkg/mixer"
	"splitview/pkg/raster"
	"splitview/pkg/session"
	splitpkg "splitview/pkg/split"
)

func viewer(t *testing.T) *session.Session {
	t.Helper()
	v := session.New(nil, nil, nil)
	if err := v.Load(raster.Solid(12, 6, color.NRGBA{R: 250, G: 250, B: 250, A: 255})); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in     string
		w, h   int
		hasErr bool
	}{
		{"", 0, 0, false},
		{"  ", 0, 0, false},
		{"320x240", 320, 240, false},
		{"64X32", 64, 32, false},
		{"320", 0, 0, true},
		{"ax2", 0, 0, true},
		{"2xb", 0, 0, true},
	}
	for _, tc := range tests {
		w, h, err := parseSize(tc.in)
		if (err != nil) != tc.hasErr || w != tc.w || h != tc.h {
			t.Errorf("parseSize(%q) = %d, %d, %v", tc.in, w, h, err)
		}
		if err != nil && !errors.Is(err, errUsage) {
			t.Errorf("parseSize(%q): %v is not a usage error", tc.in, err)
		}
	}
}

func TestCommands(t *testing.T) {
	v := viewer(t)

	if err := split(v, " 6 "); err != nil {
		t.Fatal(err)
	}
	if v.Boundary() != 6 {
		t.Errorf("boundary = %d", v.Boundary())
	}
	if err := split(v, "left"); !errors.Is(err, errUsage) {
		t.Errorf("bad split: err = %v", err)
	}

	if err := effect(v, "Black-White"); err != nil {
		t.Fatal(err)
	}
	if err := effect(v, ""); !errors.Is(err, errUsage) {
		t.Errorf("empty effect: err = %v", err)
	}
	if err := effect(v, "Sparkle"); !errors.Is(err, mixer.ErrUnknownEffect) {
		t.Errorf("unknown effect: err = %v", err)
	}

	frame, err := render(v, "24x12")
	if err != nil {
		t.Fatal(err)
	}
	if frame.Bounds() != image.Rect(0, 0, 24, 12) {
		t.Errorf("frame bounds %v", frame.Bounds())
	}

	text, err := info(v, 2048)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "12x6") || !strings.Contains(text, "KB") {
		t.Errorf("info = %q", text)
	}
}

func TestInfoWithoutImage(t *testing.T) {
	if _, err := info(session.New(nil, nil, nil), 0); !errors.Is(err, raster.ErrEmptyRaster) {
		t.Errorf("err = %v", err)
	}
}

func TestChatUploadAndInfo(t *testing.T) {
	c := &chat{v: session.New(nil, nil, nil)}
	if _, err := c.info(); !errors.Is(err, raster.ErrEmptyRaster) {
		t.Errorf("info before upload: err = %v", err)
	}

	small := raster.Solid(4, 2, color.NRGBA{A: 255})
	large := raster.Solid(8, 4, color.NRGBA{A: 255})
	want := map[string]bool{}
	for img, size := range map[*image.NRGBA]int{small: 1024, large: 4096} {
		v := session.New(nil, nil, nil)
		_ = v.Load(img)
		text, err := info(v, size)
		if err != nil {
			t.Fatal(err)
		}
		want[text] = true
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			img, size := small, 1024
			if i%2 == 1 {
				img, size = large, 4096
			}
			if _, err := c.open(img, size); err != nil {
				t.Error(err)
			}
		}(i)
		go func() {
			defer wg.Done()
			text, err := c.info()
			if err != nil {
				return
			}
			if !want[text] {
				t.Errorf("size and upload out of step: %q", text)
			}
		}()
	}
	wg.Wait()

	text, err := c.info()
	if err != nil {
		t.Fatal(err)
	}
	if !want[text] {
		t.Errorf("info = %q", text)
	}
}

func TestRenderTooLarge(t *testing.T) {
	v := viewer(t)
	for _, payload := range []string{"2147483648x2147483648", "100000x100000"} {
		if _, err := render(v, payload); !errors.Is(err, splitpkg.ErrViewportTooLarge) {
			t.Errorf("render %s: err = %v", payload, err)
		}
	}
}
