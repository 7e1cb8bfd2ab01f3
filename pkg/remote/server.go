package remote

import (
	"context"
	"image"
	"net/http"
	"net/rpc"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"splitview/pkg/session"
	"splitview/pkg/storage"
)

var ErrNoSession = errors.New("no such session")

// ErrNoLoader is returned for an Open by reference when the service was built
// without a loader.
var ErrNoLoader = errors.New("image loading not supported")

// Handler registers svc on a private rpc server and serves it at the default
// rpc path.
func Handler(svc *Service) (http.Handler, error) {
	rs := rpc.NewServer()
	if err := rs.RegisterName("Service", svc); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, rs)
	return mux, nil
}

// Proxy serves svc on srv for the lifetime of the fx application.
func Proxy(svc *Service, srv *http.Server, lifecycle fx.Lifecycle, logger *zap.Logger) error {
	handler, err := Handler(svc)
	if err != nil {
		return err
	}
	srv.Handler = handler

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("serve failed")
				}
			}()
			logger.With(zap.String("addr", srv.Addr)).Info("listening")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

func NewService(factory func() *session.Session, loader *storage.Loader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		factory:  factory,
		names:    factory().Effects(),
		loader:   loader,
		logger:   logger.With(zap.String("via", "remote")),
		sessions: make(map[string]*session.Session),
	}
}

// Service keeps one session per id. Each session serializes its own events;
// the table lock only guards the map.
type Service struct {
	l        sync.RWMutex
	factory  func() *session.Session
	names    []string
	loader   *storage.Loader
	logger   *zap.Logger
	sessions map[string]*session.Session
}

func (s *Service) get(id string) (*session.Session, error) {
	s.l.RLock()
	defer s.l.RUnlock()

	ss, ok := s.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrNoSession, "%q", id)
	}
	return ss, nil
}

func (s *Service) decode(bs []byte, ref string) (image.Image, error) {
	if len(bs) > 0 {
		return storage.Decode(bs)
	}
	if s.loader == nil {
		return nil, errors.Wrapf(ErrNoLoader, "%q", ref)
	}
	return s.loader.Load(ref)
}

func (s *Service) Open(req OpenRequest, resp *OpenResponse) error {
	img, err := s.decode(req.Image, req.Ref)
	if err != nil {
		return err
	}

	ss := s.factory()
	if err := ss.Load(img); err != nil {
		return err
	}

	id := xid.New().String()
	s.l.Lock()
	s.sessions[id] = ss
	s.l.Unlock()

	s.logger.With(zap.String("id", id)).Info("session opened")

	resp.ID = id
	resp.Width = img.Bounds().Dx()
	resp.Height = img.Bounds().Dy()
	return nil
}

func (s *Service) Close(id string, _ *EmptyResponse) error {
	s.l.Lock()
	defer s.l.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return errors.Wrapf(ErrNoSession, "%q", id)
	}
	delete(s.sessions, id)
	s.logger.With(zap.String("id", id)).Info("session closed")
	return nil
}

func (s *Service) Load(req LoadRequest, _ *EmptyResponse) error {
	ss, err := s.get(req.ID)
	if err != nil {
		return err
	}
	img, err := storage.Decode(req.Image)
	if err != nil {
		return err
	}
	return ss.Load(img)
}

func (s *Service) Reset(id string, _ *EmptyResponse) error {
	ss, err := s.get(id)
	if err != nil {
		return err
	}
	return ss.Reset()
}

func (s *Service) Pointer(req PointerRequest, _ *EmptyResponse) error {
	ss, err := s.get(req.ID)
	if err != nil {
		return err
	}
	return ss.Pointer(req.X)
}

func (s *Service) Trigger(req TriggerRequest, _ *EmptyResponse) error {
	ss, err := s.get(req.ID)
	if err != nil {
		return err
	}
	return ss.Trigger(req.Effect)
}

func (s *Service) Current(id string, resp *ImageResponse) error {
	ss, err := s.get(id)
	if err != nil {
		return err
	}
	img, err := ss.Current()
	if err != nil {
		return err
	}
	resp.Image, err = storage.Encode(img)
	return err
}

func (s *Service) Render(req RenderRequest, resp *ImageResponse) error {
	ss, err := s.get(req.ID)
	if err != nil {
		return err
	}
	frame, err := ss.Render(req.Width, req.Height)
	if err != nil {
		return err
	}
	resp.Image, err = storage.Encode(frame)
	return err
}

func (s *Service) Effects(_ EmptyRequest, resp *EffectsResponse) error {
	resp.Names = append([]string(nil), s.names...)
	return nil
}

func (s *Service) Len() int {
	s.l.RLock()
	defer s.l.RUnlock()
	return len(s.sessions)
}
