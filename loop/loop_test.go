package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/status"
)

type recordingStage struct {
	calls []string
	dts   []time.Duration
}

func (s *recordingStage) UpdateAll(dt time.Duration) {
	s.calls = append(s.calls, "update")
	s.dts = append(s.dts, dt)
}

func (s *recordingStage) DrawAll() { s.calls = append(s.calls, "draw") }

type statsStage struct {
	recordingStage
}

func (s *statsStage) Stats() director.Stats {
	return director.Stats{Types: 2, Live: 5, PerType: map[string]int{"drone": 5}}
}

func TestClockExcludesPauses(t *testing.T) {
	mt := NewManualTime(time.Unix(0, 0))
	c := NewClock(mt)

	mt.Advance(time.Second)
	c.Pause()
	mt.Advance(5 * time.Second)
	assert.Equal(t, time.Second, c.Elapsed())

	c.Resume()
	mt.Advance(time.Second)
	assert.Equal(t, 2*time.Second, c.Elapsed())

	assert.True(t, c.Toggle())
	assert.False(t, c.Toggle())
}

func TestFrameUpdatesThenDrawsWithCappedDelta(t *testing.T) {
	mt := NewManualTime(time.Unix(0, 0))
	stage := &recordingStage{}
	d := NewDriver(Options{Clock: NewClock(mt), MaxDelta: 50 * time.Millisecond})
	d.SetStage(stage)

	mt.Advance(20 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, d.Frame())

	mt.Advance(2 * time.Second)
	assert.Equal(t, 50*time.Millisecond, d.Frame(), "stalled frame is capped")

	assert.Equal(t, []string{"update", "draw", "update", "draw"}, stage.calls)
	assert.Equal(t, []time.Duration{20 * time.Millisecond, 50 * time.Millisecond}, stage.dts)
	assert.Equal(t, int64(2), d.Frames())
}

func TestFramePausedDrawsOnly(t *testing.T) {
	mt := NewManualTime(time.Unix(0, 0))
	clock := NewClock(mt)
	stage := &recordingStage{}
	d := NewDriver(Options{Clock: clock})
	d.SetStage(stage)

	clock.Pause()
	mt.Advance(time.Second)
	assert.Equal(t, time.Duration(0), d.Frame())
	assert.Equal(t, []string{"draw"}, stage.calls)
}

func TestFramePublishesMetrics(t *testing.T) {
	mt := NewManualTime(time.Unix(0, 0))
	reg := status.NewRegistry()
	d := NewDriver(Options{Clock: NewClock(mt), Metrics: reg})
	d.SetStage(&statsStage{})

	mt.Advance(25 * time.Millisecond)
	d.Frame()

	snap := reg.Snapshot()
	assert.Equal(t, "1", snap["frames"])
	assert.Equal(t, "40.0", snap["fps"])
	assert.Equal(t, "5", snap["entities.live"])
	assert.Equal(t, "5", snap["type.drone"])
}

func TestRunStopsOnQuit(t *testing.T) {
	stage := &recordingStage{}
	d := NewDriver(Options{Interval: time.Millisecond})
	d.SetStage(stage)

	inputs := make(chan any, 1)
	source := func() (any, bool) {
		ev, ok := <-inputs
		return ev, ok
	}
	woken := false
	wake := func() {
		woken = true
		close(inputs)
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		inputs <- "q"
	}()

	err := d.Run(context.Background(), source, func(ev any) error {
		if ev == "q" {
			return ErrQuit
		}
		return nil
	}, wake)

	require.NoError(t, err)
	assert.True(t, woken)
	assert.NotEmpty(t, stage.calls)
}

type panicStage struct{}

func (panicStage) UpdateAll(time.Duration) { panic("boom") }
func (panicStage) DrawAll()                {}

func TestRunReportsPanics(t *testing.T) {
	var seen any
	d := NewDriver(Options{Interval: time.Millisecond, OnPanic: func(r any) { seen = r }})
	d.SetStage(panicStage{})

	done := make(chan struct{})
	err := d.Run(context.Background(), func() (any, bool) {
		<-done
		return nil, false
	}, func(any) error { return nil }, func() { close(done) })

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrQuit))
	assert.Equal(t, "boom", seen)
}
