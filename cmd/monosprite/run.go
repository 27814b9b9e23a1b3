package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bodgit/monosprite"
	"github.com/bodgit/monosprite/bitmap"
	"github.com/bodgit/monosprite/catalog"
	"github.com/bodgit/monosprite/config"
	"github.com/bodgit/monosprite/display"
	"github.com/bodgit/monosprite/display/term"
	"github.com/bodgit/monosprite/display/window"
	"github.com/bodgit/monosprite/display/ws"
	"github.com/bodgit/monosprite/font"
	"github.com/bodgit/monosprite/geom"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const (
	labelName = "label"
	ballName  = "ball"
	timerName = "timer"

	ballSpeed = 40
	title     = "monosprite"
)

type runOptions struct {
	names    []string
	count    int
	seed     uint64
	duration time.Duration
}

// scene keeps every sprite wandering between random destinations while a
// ball bounces around the screen and a timer counts the seconds.
type scene struct {
	world   *monosprite.World
	sched   *monosprite.Scheduler
	logger  *zap.Logger
	heading float64
	last    int64
	seconds int64
}

func newWorld(cfg *config.Config, cat catalog.Catalog, d display.Display, logger *zap.Logger, seed uint64) *monosprite.World {
	options := []monosprite.Option{
		monosprite.WithSize(cfg.Display.Width, cfg.Display.Height),
		monosprite.WithWrap(cfg.Wrap.Low.Image(), cfg.Wrap.High.Image()),
		monosprite.WithCatalog(cat),
		monosprite.WithRandom(monosprite.NewRandom(seed)),
		monosprite.WithLogger(logger),
	}
	if d != nil {
		options = append(options, monosprite.WithDisplay(d))
	}
	return monosprite.NewWorld(options...)
}

// populate creates count sprites cycling through names at random
// positions, plus a text label.
func populate(w *monosprite.World, cat catalog.Catalog, names []string, count int) ([]string, error) {
	var created []string

	for i := 0; i < count && len(names) > 0; i++ {
		asset := names[i%len(names)]
		b, err := cat.Lookup(asset)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("%s-%d", asset, i)
		if _, err := w.CreateFromBitmap(name, b, w.RandomPosition(b.Width, b.Height)); err != nil {
			return nil, err
		}
		created = append(created, name)
	}

	_, h := w.Font().Cell()
	x := font.AlignCenter(w.Font(), w.Framebuffer().Width()/2, title)
	y := geom.CenterToSide(w.Framebuffer().Height()/2, h)
	if _, err := w.CreateText(labelName, []string{title}, geom.Vec(float64(x), float64(y)), true); err != nil {
		return nil, err
	}

	return append(created, labelName), nil
}

func timerText(seconds int64) string {
	return fmt.Sprintf("%4ds", seconds)
}

// decorate adds the ball and the timer.
func (s *scene) decorate() error {
	b, err := bitmap.New(3, 3)
	if err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		b.SetBit(i, 1, true)
		b.SetBit(1, i, true)
	}

	w := s.world
	if _, err := w.CreateFromBitmap(ballName, b, w.RandomPosition(b.Width, b.Height)); err != nil {
		return err
	}
	s.heading = float64(w.Random().InRange(0, 359))

	text := timerText(0)
	_, h := w.Font().Cell()
	x := font.AlignRight(w.Font(), w.Framebuffer().Width(), text)
	if _, err := w.CreateText(timerName, []string{text}, geom.Vec(float64(x), float64(w.Framebuffer().Height()-h)), false); err != nil {
		return err
	}

	s.last = w.Clock().NowMillis()
	return nil
}

// update bounces the ball and refreshes the timer.
func (s *scene) update() error {
	now := s.world.Clock().NowMillis()
	dt := time.Duration(now-s.last) * time.Millisecond
	s.last = now

	d := geom.FromAngle(s.heading, ballSpeed).Scale(dt.Seconds())
	a, err := s.world.EdgeHit(ballName, d)
	if err != nil {
		return err
	}
	if a != monosprite.AxisNone {
		s.heading = a.Reflect(s.heading)
	} else if _, err := s.world.MoveAngle(ballName, s.heading, ballSpeed, dt, false); err != nil {
		return err
	}

	if seconds := now / 1000; seconds != s.seconds {
		s.seconds = seconds
		return s.world.SetText(timerName, []string{timerText(seconds)}, false)
	}
	return nil
}

func (s *scene) wander(name string) {
	sprite, ok := s.world.Get(name)
	if !ok {
		return
	}

	r := s.world.Random()
	width, height := sprite.Size()
	dest := s.world.RandomPosition(width, height)
	duration := time.Duration(r.InRange(500, 2500)) * time.Millisecond

	options := []monosprite.AnimationOption{
		monosprite.Delay(time.Duration(r.InRange(0, 250)) * time.Millisecond),
		monosprite.OnFinish(func(w *monosprite.World, a *monosprite.Animation) {
			if a.Subject() == labelName {
				if err := w.Rotate90(labelName); err != nil {
					s.logger.Debug("rotate failed", zap.Error(err))
				}
			}
			s.wander(a.Subject())
		}),
	}
	if r.InRange(0, 1) == 1 {
		options = append(options, monosprite.Wrapping())
	}

	a, err := monosprite.NewAnimation(name, sprite.Position(), dest, duration, options...)
	if err != nil {
		// Already at the destination.
		s.logger.Debug("animation skipped", zap.String("name", name), zap.Error(err))
		return
	}
	s.sched.Animate(a)
}

func run(ctx context.Context, cfg *config.Config, cat catalog.Catalog, logger *zap.Logger, opts runOptions) error {
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		d   display.Display
		win *window.Window
	)

	switch cfg.Display.Backend {
	case "term":
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		screen.Clear()

		go func() {
			for {
				switch ev := screen.PollEvent().(type) {
				case nil:
					return
				case *tcell.EventKey:
					if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
						cancel()
						return
					}
				}
			}
		}()

		d = term.New(screen, cfg.Display.Width, cfg.Display.Height)
	case "ws":
		s := ws.New(cfg.Display.Width, cfg.Display.Height, logger)
		srv := &http.Server{Addr: cfg.Display.Listen, Handler: s}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("websocket server failed", zap.Error(err))
				cancel()
			}
		}()
		defer srv.Close()

		logger.Info("serving display", zap.String("listen", cfg.Display.Listen))
		d = s
	case "window":
		win = window.New(cfg.Display.Width, cfg.Display.Height, cfg.Display.Scale)
		d = win
	}

	w := newWorld(cfg, cat, d, logger, opts.seed)
	names, err := populate(w, cat, opts.names, opts.count)
	if err != nil {
		return err
	}

	s := &scene{
		world:  w,
		sched:  monosprite.NewScheduler(w),
		logger: logger,
	}
	for _, name := range names {
		s.wander(name)
	}
	if err := s.decorate(); err != nil {
		return err
	}

	step := func() error {
		s.sched.Tick()
		if err := s.update(); err != nil {
			return err
		}
		return w.Flush()
	}

	if win != nil {
		return win.Run("monosprite", func() error {
			if ctx.Err() != nil {
				return ebiten.Termination
			}
			return step()
		})
	}

	t := time.NewTicker(cfg.Tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := step(); err != nil {
				return err
			}
		}
	}
}

func snapshot(out io.Writer, cfg *config.Config, cat catalog.Catalog, logger *zap.Logger, names []string, seed uint64) error {
	r := display.NewRecorder(cfg.Display.Width, cfg.Display.Height)
	w := newWorld(cfg, cat, r, logger, seed)

	if _, err := populate(w, cat, names, len(names)); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return r.WritePNG(out)
}
