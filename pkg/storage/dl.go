package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-resty/resty/v2"
	"github.com/inhies/go-bytesize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

func NewDownloader(logger *zap.Logger, progress bool) *Downloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{
		cli:      resty.New().SetDoNotParseResponse(true),
		log:      logger.With(zap.String("via", "downloader")),
		progress: progress,
	}
}

type Downloader struct {
	cli      *resty.Client
	log      *zap.Logger
	progress bool
}

func (d *Downloader) Get(url string) ([]byte, error) {
	resp, err := d.cli.R().Get(url)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.IsError() {
		return nil, fmt.Errorf("download %s failed: %s", url, resp.Status())
	}

	var w io.Writer = io.Discard
	if d.progress {
		w = progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", url))
	}

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, w), resp.RawBody()); err != nil {
		return nil, err
	}

	d.log.With(
		zap.String("url", url),
		zap.String("size", bytesize.New(float64(buf.Len())).String()),
	).Debug("downloaded")
	return buf.Bytes(), nil
}
