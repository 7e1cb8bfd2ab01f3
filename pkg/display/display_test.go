package display

import (
	"image/color"
	"testing"

	"github.com/spf13/afero"

	"splitview/pkg/display/file"
	"splitview/pkg/display/virtual"
	"splitview/pkg/raster"
	"splitview/pkg/storage"
)

func TestMock(t *testing.T) {
	m := virtual.Mock(nil)
	frame := raster.Solid(3, 2, color.NRGBA{A: 255})
	for i := 0; i < 3; i++ {
		if err := m.Show(frame); err != nil {
			t.Fatal(err)
		}
	}
	if m.Frames() != 3 || m.Last() != frame {
		t.Errorf("frames = %d, last = %v", m.Frames(), m.Last())
	}
}

func TestFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	d := file.New(storage.NewFrames(fs), "view/frame.png", nil)
	if err := d.Show(raster.Solid(3, 2, color.NRGBA{R: 9, A: 255})); err != nil {
		t.Fatal(err)
	}

	img, err := storage.NewLoader(fs, nil, nil).Load("view/frame.png")
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(2, 1); got != (color.NRGBA{R: 9, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}
