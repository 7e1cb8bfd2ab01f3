package bot

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"

	"splitview/pkg/proto"
)

var errUsage = errors.New("usage")

// parseSize reads "WxH". An empty payload means raster size.
func parseSize(in string) (int, int, error) {
	in = strings.TrimSpace(in)
	if in == "" {
		return 0, 0, nil
	}

	ws, hs, ok := strings.Cut(strings.ToLower(in), "x")
	if !ok {
		return 0, 0, errors.Wrap(errUsage, "/render WIDTHxHEIGHT")
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, errors.Wrap(errUsage, "/render WIDTHxHEIGHT")
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, errors.Wrap(errUsage, "/render WIDTHxHEIGHT")
	}
	return w, h, nil
}

func split(v proto.Viewer, payload string) error {
	x, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return errors.Wrap(errUsage, "/split X")
	}
	return v.Pointer(x)
}

func effect(v proto.Viewer, payload string) error {
	name := strings.TrimSpace(payload)
	if name == "" {
		return errors.Wrap(errUsage, "/effect NAME")
	}
	return v.Trigger(name)
}

func render(v proto.Viewer, payload string) (image.Image, error) {
	w, h, err := parseSize(payload)
	if err != nil {
		return nil, err
	}
	return v.Render(w, h)
}

func info(v proto.Viewer, loaded int) (string, error) {
	img, err := v.Current()
	if err != nil {
		return "", err
	}
	b := img.Bounds()
	lines := []string{
		fmt.Sprintf("Size: %dx%d", b.Dx(), b.Dy()),
		fmt.Sprintf("Loaded: %s", bytesize.New(float64(loaded)).String()),
	}
	return strings.Join(lines, "\n"), nil
}
