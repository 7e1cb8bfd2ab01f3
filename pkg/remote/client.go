package remote

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/rpc"
	"strings"

	"splitview/pkg/mixer"
	"splitview/pkg/proto"
	"splitview/pkg/raster"
	"splitview/pkg/split"
	"splitview/pkg/storage"
)

func Dial(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) call(method string, args any, reply any) error {
	return remoteErr(c.rpc.Call("Service."+method, args, reply))
}

// Open starts a session on the server from a local image.
func (c *Client) Open(img image.Image) (*Session, error) {
	bs, err := storage.Encode(img)
	if err != nil {
		return nil, err
	}
	return c.open(OpenRequest{Image: bs})
}

// OpenRef starts a session from an image the server loads itself.
func (c *Client) OpenRef(ref string) (*Session, error) {
	return c.open(OpenRequest{Ref: ref})
}

func (c *Client) open(req OpenRequest) (*Session, error) {
	var resp OpenResponse
	if err := c.call("Open", req, &resp); err != nil {
		return nil, err
	}
	return &Session{c: c, id: resp.ID, size: image.Pt(resp.Width, resp.Height)}, nil
}

func (c *Client) Effects() ([]string, error) {
	var resp EffectsResponse
	if err := c.call("Effects", EmptyRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Names, nil
}

func (c *Client) Close() error {
	return c.rpc.Close()
}

var _ proto.Viewer = (*Session)(nil)

// Session is a server-side session seen through the client.
type Session struct {
	c    *Client
	id   string
	size image.Point
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Size() image.Point {
	return s.size
}

func (s *Session) Load(img image.Image) error {
	bs, err := storage.Encode(img)
	if err != nil {
		return err
	}
	if err := s.c.call("Load", LoadRequest{ID: s.id, Image: bs}, &EmptyResponse{}); err != nil {
		return err
	}
	s.size = img.Bounds().Size()
	return nil
}

func (s *Session) Reset() error {
	return s.c.call("Reset", s.id, &EmptyResponse{})
}

func (s *Session) Pointer(x int) error {
	return s.c.call("Pointer", PointerRequest{ID: s.id, X: x}, &EmptyResponse{})
}

func (s *Session) Trigger(effect string) error {
	return s.c.call("Trigger", TriggerRequest{ID: s.id, Effect: effect}, &EmptyResponse{})
}

func (s *Session) Current() (image.Image, error) {
	var resp ImageResponse
	if err := s.c.call("Current", s.id, &resp); err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewBuffer(resp.Image))
}

func (s *Session) Render(width int, height int) (image.Image, error) {
	var resp ImageResponse
	if err := s.c.call("Render", RenderRequest{ID: s.id, Width: width, Height: height}, &resp); err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewBuffer(resp.Image))
}

// Close ends the session on the server.
func (s *Session) Close() error {
	return s.c.call("Close", s.id, &EmptyResponse{})
}

// rpc flattens errors to strings; known failures get their sentinel back so
// callers can keep using errors.Is.
type remoteError struct {
	msg string
	err error
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.err }

func remoteErr(err error) error {
	var se rpc.ServerError
	if !errors.As(err, &se) {
		return err
	}
	for _, sentinel := range []error{
		ErrNoSession,
		ErrNoLoader,
		mixer.ErrUnknownEffect,
		raster.ErrEmptyRaster,
		split.ErrViewportTooLarge,
	} {
		if strings.HasSuffix(string(se), sentinel.Error()) {
			return &remoteError{msg: string(se), err: sentinel}
		}
	}
	return err
}
