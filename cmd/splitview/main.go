package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/moolex/wallhaven-go/api"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"splitview/pkg/display/file"
	"splitview/pkg/mixer"
	"splitview/pkg/session"
	"splitview/pkg/split"
	"splitview/pkg/storage"
)

var imageRef = flag.String("image", "", "image path, http(s) url or wallhaven:<query>")
var root = flag.String("root", "", "base directory for image and output paths")
var effects = flag.StringArray("effect", nil, "effect to trigger, repeatable, applied in order")
var boundary = flag.Int("split", split.NoSplit, "split column, negative for none")
var width = flag.Int("width", 0, "viewport width, 0 for image width")
var height = flag.Int("height", 0, "viewport height, 0 for image height")
var out = flag.String("out", "frame.png", "output png, empty for a generated name")
var seed = flag.Uint64("seed", 0, "noise seed, random when unset")
var list = flag.Bool("list", false, "list effects and exit")
var whKey = flag.String("wh-key", "", "wallhaven api key")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	var logger *zap.Logger
	if *debug {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := []mixer.Option{mixer.WithLogger(logger)}
	if flag.CommandLine.Changed("seed") {
		opts = append(opts, mixer.WithSeed(*seed))
	}
	engine := mixer.New(opts...)
	if *list {
		fmt.Println(strings.Join(engine.Names(), "\n"))
		return
	}

	if *imageRef == "" {
		flag.Usage()
		os.Exit(2)
	}

	fs, err := storage.OpenFs(*root)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("open root failed")
	}

	wh := api.New(*whKey)
	wh.SetLogger(logger)
	if *debug {
		wh.SetDebug()
	}

	loader := storage.NewLoader(fs, storage.NewDownloader(logger, true), logger)
	loader.SetFinder(storage.Wallhaven(wh))

	img, err := loader.Load(*imageRef)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("load failed")
	}

	sess := session.New(engine, split.New(), logger)
	if err := sess.Load(img); err != nil {
		logger.With(zap.Error(err)).Fatal("load failed")
	}

	if err := sess.Pointer(*boundary); err != nil {
		logger.With(zap.Error(err)).Fatal("split failed")
	}

	for _, name := range *effects {
		if err := sess.Trigger(name); err != nil {
			if errors.Is(err, mixer.ErrUnknownEffect) {
				logger.With(zap.String("effect", name)).Warn("skipped")
				continue
			}
			logger.With(zap.Error(err)).Fatal("effect failed")
		}
	}

	frame, err := sess.Render(*width, *height)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("render failed")
	}

	if err := file.New(storage.NewFrames(fs), *out, logger).Show(frame); err != nil {
		logger.With(zap.Error(err)).Fatal("save failed")
	}
}
