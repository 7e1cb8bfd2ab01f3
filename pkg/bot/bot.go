// Package bot drives viewer sessions from a Telegram chat: a photo loads the
// image, commands move the split and trigger effects, replies carry the
// rendered frame.
package bot

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"splitview/pkg/proto"
	"splitview/pkg/storage"
)

func NewBot(token string, factory func() proto.Viewer, effects []string, logger *zap.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:       b,
		factory: factory,
		effects: effects,
		log:     lo.Ternary(logger != nil, logger, zap.NewNop()).With(zap.String("via", "bot")),
		chats:   make(map[int64]*chat),
	}, nil
}

type Bot struct {
	l       sync.Mutex
	b       *tele.Bot
	factory func() proto.Viewer
	effects []string
	log     *zap.Logger
	chats   map[int64]*chat
}

// chat pairs a viewer with the byte size of its last upload. Handlers run
// on their own goroutines, so loaded is only touched under l.
type chat struct {
	l      sync.Mutex
	v      proto.Viewer
	loaded int
}

func (c *chat) open(img image.Image, size int) (string, error) {
	c.l.Lock()
	defer c.l.Unlock()

	if err := c.v.Load(img); err != nil {
		return "", err
	}
	c.loaded = size
	return info(c.v, c.loaded)
}

func (c *chat) info() (string, error) {
	c.l.Lock()
	defer c.l.Unlock()
	return info(c.v, c.loaded)
}

func (b *Bot) chat(id int64) *chat {
	b.l.Lock()
	defer b.l.Unlock()

	c, ok := b.chats[id]
	if !ok {
		c = &chat{v: b.factory()}
		b.chats[id] = c
	}
	return c
}

func (b *Bot) reply(ctx tele.Context, err error) error {
	if err != nil {
		b.log.With(zap.Int64("chat", ctx.Chat().ID), zap.Error(err)).Debug("command failed")
		return ctx.Reply(fmt.Sprintf("failed: %s", err))
	}
	return ctx.Reply("OK")
}

func (b *Bot) sendFrame(ctx tele.Context, c *chat, payload string) error {
	frame, err := render(c.v, payload)
	if err != nil {
		return b.reply(ctx, err)
	}
	bs, err := storage.Encode(frame)
	if err != nil {
		return b.reply(ctx, err)
	}
	return ctx.Reply(&tele.Photo{File: tele.FromReader(bytes.NewReader(bs))})
}

func (b *Bot) load(ctx tele.Context, file *tele.File) error {
	c := b.chat(ctx.Chat().ID)

	rc, err := b.b.File(file)
	if err != nil {
		return b.reply(ctx, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	bs, err := io.ReadAll(rc)
	if err != nil {
		return b.reply(ctx, err)
	}
	img, err := storage.Decode(bs)
	if err != nil {
		return b.reply(ctx, err)
	}
	text, err := c.open(img, len(bs))
	if err != nil {
		return b.reply(ctx, err)
	}
	return ctx.Reply(text)
}

func (b *Bot) handleLoad() {
	b.b.Handle(tele.OnPhoto, func(ctx tele.Context) error {
		return b.load(ctx, &ctx.Message().Photo.File)
	})

	b.b.Handle(tele.OnDocument, func(ctx tele.Context) error {
		return b.load(ctx, &ctx.Message().Document.File)
	})
}

func (b *Bot) handleView() {
	b.b.Handle("/effects", func(ctx tele.Context) error {
		return ctx.Reply(strings.Join(b.effects, "\n"))
	})

	b.b.Handle("/effect", func(ctx tele.Context) error {
		c := b.chat(ctx.Chat().ID)
		if err := effect(c.v, ctx.Message().Payload); err != nil {
			return b.reply(ctx, err)
		}
		return b.sendFrame(ctx, c, "")
	})

	b.b.Handle("/split", func(ctx tele.Context) error {
		c := b.chat(ctx.Chat().ID)
		if err := split(c.v, ctx.Message().Payload); err != nil {
			return b.reply(ctx, err)
		}
		return b.sendFrame(ctx, c, "")
	})

	b.b.Handle("/reset", func(ctx tele.Context) error {
		return b.reply(ctx, b.chat(ctx.Chat().ID).v.Reset())
	})

	b.b.Handle("/render", func(ctx tele.Context) error {
		return b.sendFrame(ctx, b.chat(ctx.Chat().ID), ctx.Message().Payload)
	})

	b.b.Handle("/info", func(ctx tele.Context) error {
		text, err := b.chat(ctx.Chat().ID).info()
		if err != nil {
			return b.reply(ctx, err)
		}
		return ctx.Reply(text)
	})
}

func (b *Bot) Start() {
	b.handleLoad()
	b.handleView()
	go b.b.Start()
}

func (b *Bot) Stop() {
	go b.b.Stop()
}
