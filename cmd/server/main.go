package main

import (
	"context"
	"net/http"

	"github.com/moolex/wallhaven-go/api"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"splitview/pkg/bot"
	"splitview/pkg/mixer"
	"splitview/pkg/proto"
	"splitview/pkg/remote"
	"splitview/pkg/session"
	"splitview/pkg/split"
	"splitview/pkg/storage"
)

var listen = flag.String("listen", ":9123", "listen addr")
var root = flag.String("root", "", "directory remote sessions may open images from, unset disables open by reference")
var whKey = flag.String("wh-key", "", "wallhaven api key")
var maxViewport = flag.Int("max-viewport", split.MaxViewport, "pixel budget of one rendered frame")
var tgToken = flag.String("tg-token", "", "telegram bot token")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(
			newLogger,
			func() *http.Server {
				return &http.Server{Addr: *listen}
			},
			newLoader,
			newFactory,
			remote.NewService,
		),
		fx.Invoke(
			remote.Proxy,
			startBot,
		),
	).Run()
}

func newLogger() (*zap.Logger, error) {
	if *debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newLoader returns nil without a root: clients then send image bytes and
// cannot make the server read host paths or fetch urls.
func newLoader(logger *zap.Logger) (*storage.Loader, error) {
	if *root == "" {
		logger.Warn("no root, open by reference disabled")
		return nil, nil
	}

	fs, err := storage.OpenFs(*root)
	if err != nil {
		return nil, err
	}

	wh := api.New(*whKey)
	wh.SetLogger(logger)
	if *debug {
		wh.SetDebug()
	}

	loader := storage.NewLoader(fs, storage.NewDownloader(logger, false), logger)
	loader.SetFinder(storage.Wallhaven(wh))
	return loader, nil
}

// Sessions get their own engine; a seeded sampler is not shared.
func newFactory(logger *zap.Logger) func() *session.Session {
	comp := split.New(split.WithMaxViewport(*maxViewport))
	return func() *session.Session {
		return session.New(mixer.New(mixer.WithLogger(logger)), comp, logger)
	}
}

func startBot(factory func() *session.Session, lifecycle fx.Lifecycle, logger *zap.Logger) error {
	if *tgToken == "" {
		return nil
	}

	b, err := bot.NewBot(*tgToken, func() proto.Viewer { return factory() }, mixer.New().Names(), logger)
	if err != nil {
		return err
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			b.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			b.Stop()
			return nil
		},
	})
	return nil
}
