package remote

type EmptyRequest struct {
}

type EmptyResponse struct {
}

// OpenRequest starts a session from encoded image bytes, or from a reference
// the server resolves itself when Image is empty.
type OpenRequest struct {
	Image []byte
	Ref   string
}

type OpenResponse struct {
	ID     string
	Width  int
	Height int
}

type LoadRequest struct {
	ID    string
	Image []byte
}

type PointerRequest struct {
	ID string
	X  int
}

type TriggerRequest struct {
	ID     string
	Effect string
}

type RenderRequest struct {
	ID     string
	Width  int
	Height int
}

type ImageResponse struct {
	Image []byte
}

type EffectsResponse struct {
	Names []string
}
