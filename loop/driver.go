package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/status"
)

// ErrQuit ends Run without reporting an error
var ErrQuit = errors.New("quit")

// Stage is advanced once per frame: UpdateAll then DrawAll
type Stage interface {
	UpdateAll(dt time.Duration)
	DrawAll()
}

// StatsSource is implemented by stages backed by a Director
type StatsSource interface {
	Stats() director.Stats
}

// EventSource blocks for the next input event; ok=false stops the pump
type EventSource func() (ev any, ok bool)

// EventHandler runs on the frame goroutine; returning ErrQuit ends Run
type EventHandler func(ev any) error

type Options struct {
	Interval time.Duration
	MaxDelta time.Duration
	Clock    *Clock
	Metrics  *status.Registry
	Logger   *zap.Logger
	// OnPanic observes panics from loop goroutines before Run returns them as errors
	OnPanic func(r any)
}

// Driver owns frame timing and the single goroutine that touches game state
type Driver struct {
	stage    Stage
	clock    *Clock
	interval time.Duration
	maxDelta time.Duration
	last     time.Duration
	frames   int64
	fps      float64

	metrics *status.Registry
	log     *zap.Logger
	onPanic func(r any)
}

func NewDriver(opts Options) *Driver {
	if opts.Clock == nil {
		opts.Clock = NewClock(nil)
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 30
	}
	if opts.MaxDelta <= 0 {
		opts.MaxDelta = 100 * time.Millisecond
	}
	return &Driver{
		clock:    opts.Clock,
		interval: opts.Interval,
		maxDelta: opts.MaxDelta,
		last:     opts.Clock.Elapsed(),
		metrics:  opts.Metrics,
		log:      opts.Logger,
		onPanic:  opts.OnPanic,
	}
}

// SetStage swaps what the next frame drives
func (d *Driver) SetStage(s Stage) {
	d.stage = s
}

func (d *Driver) Clock() *Clock { return d.clock }

func (d *Driver) FPS() float64 { return d.fps }

func (d *Driver) Frames() int64 { return d.frames }

// Frame runs one update/draw cycle and returns the delta used
// While paused the stage is drawn but not updated
func (d *Driver) Frame() time.Duration {
	now := d.clock.Elapsed()
	dt := now - d.last
	d.last = now
	if dt > d.maxDelta {
		dt = d.maxDelta
	}
	if dt < 0 {
		dt = 0
	}

	if d.stage != nil {
		if !d.clock.IsPaused() {
			d.stage.UpdateAll(dt)
		}
		d.stage.DrawAll()
	}

	d.frames++
	if dt > 0 {
		inst := float64(time.Second) / float64(dt)
		if d.fps == 0 {
			d.fps = inst
		} else {
			d.fps = d.fps*0.9 + inst*0.1
		}
	}
	d.publish(dt)
	return dt
}

func (d *Driver) publish(dt time.Duration) {
	d.metrics.Ints.Get("frames").Store(d.frames)
	d.metrics.Floats.Get("fps").Set(d.fps)
	d.metrics.Floats.Get("dt_ms").Set(float64(dt) / float64(time.Millisecond))

	src, ok := d.stage.(StatsSource)
	if !ok {
		return
	}
	s := src.Stats()
	d.metrics.Ints.Get("entities.live").Store(int64(s.Live))
	d.metrics.Ints.Get("entities.types").Store(int64(s.Types))
	d.metrics.Ints.Get("entities.spawned").Store(int64(s.Spawned))
	d.metrics.Ints.Get("entities.pruned").Store(int64(s.Pruned))
	for name, n := range s.PerType {
		d.metrics.Ints.Get("type." + name).Store(int64(n))
	}
}

// Run drives frames at the configured interval until ctx ends or handle returns ErrQuit
// Input is pumped on its own goroutine and handled between frames; wake must unblock source
func (d *Driver) Run(ctx context.Context, source EventSource, handle EventHandler, wake func()) error {
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan any, 64)

	g.Go(d.guard(func() error {
		for {
			ev, ok := source()
			if !ok {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}))

	g.Go(d.guard(func() error {
		if wake != nil {
			defer wake()
		}
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev := <-events:
				if err := handle(ev); err != nil {
					return err
				}
			case <-ticker.C:
				d.Frame()
			}
		}
	}))

	err := g.Wait()
	d.log.Info("frame loop stopped", zap.Int64("frames", d.frames), zap.Error(err))
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// guard converts a goroutine panic into the configured handler or an error
func (d *Driver) guard(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if d.onPanic != nil {
					d.onPanic(r)
				}
				err = fmt.Errorf("loop panic: %v", r)
			}
		}()
		return fn()
	}
}
