package flow

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/game"
	"github.com/lixenwraith/starfall/loop"
	"github.com/lixenwraith/starfall/render"
	"github.com/lixenwraith/starfall/status"
)

type harness struct {
	flow    *Flow
	canvas  *render.Canvas
	screen  tcell.SimulationScreen
	clock   *loop.Clock
	metrics *status.Registry
}

func newHarness(t *testing.T, delay time.Duration, factory SessionFactory) *harness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	h := &harness{
		canvas:  render.NewCanvas(screen),
		screen:  screen,
		clock:   loop.NewClock(loop.NewManualTime(time.Unix(0, 0))),
		metrics: status.NewRegistry(),
	}
	if factory == nil {
		factory = func(id string) (*game.Session, error) {
			return game.NewSession(game.Options{ID: id, Canvas: h.canvas, Lives: 3, Seed: 1})
		}
	}
	f, err := New(Options{
		Canvas:        h.canvas,
		NewSession:    factory,
		Clock:         h.clock,
		Metrics:       h.metrics,
		GameOverDelay: delay,
	})
	require.NoError(t, err)
	h.flow = f
	return h
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func (h *harness) row(y int) string {
	w, _ := h.canvas.Size()
	out := make([]rune, w)
	for x := range out {
		out[x] = h.canvas.Rune(x, y)
	}
	return string(out)
}

// endSession drops the ship's last life
func endSession(t *testing.T, f *Flow) {
	t.Helper()
	s := f.Session()
	require.NotNil(t, s)
	ship := s.World().Ship
	s.World().Lives = 1
	s.Director().MustSpawn(game.TypeBomb, director.Props{"x": ship.X, "y": ship.Y})
	f.UpdateAll(time.Millisecond)
}

func TestStartsOnTitle(t *testing.T) {
	h := newHarness(t, 0, nil)
	assert.Equal(t, StateTitle, h.flow.State())
	assert.Nil(t, h.flow.Session())
	assert.Equal(t, director.Stats{}, h.flow.Stats())
	assert.Equal(t, "title", h.metrics.Snapshot()["flow.state"])

	h.flow.DrawAll()
	assert.Contains(t, h.row(25/2-3), "S T A R F A L L")
}

func TestEnterStartsSessionWithFreshID(t *testing.T) {
	h := newHarness(t, 0, nil)
	require.NoError(t, h.flow.Handle(key(tcell.KeyEnter)))

	assert.Equal(t, StatePlaying, h.flow.State())
	s := h.flow.Session()
	require.NotNil(t, s)
	_, err := uuid.Parse(s.ID())
	assert.NoError(t, err)
	assert.Equal(t, "playing", h.metrics.Snapshot()["flow.state"])
	assert.Equal(t, "1", h.metrics.Snapshot()["flow.sessions"])
	assert.Positive(t, h.flow.Stats().Live)

	require.NoError(t, h.flow.Handle(key(tcell.KeyEscape)))
	assert.Equal(t, StateTitle, h.flow.State())
	assert.Nil(t, h.flow.Session())

	require.NoError(t, h.flow.Handle(char(' ')))
	require.NotNil(t, h.flow.Session())
	assert.NotEqual(t, s.ID(), h.flow.Session().ID())
	assert.NotSame(t, s.Director(), h.flow.Session().Director())
}

func TestPlayingRoutesKeysAndPause(t *testing.T) {
	h := newHarness(t, 0, nil)
	require.NoError(t, h.flow.Handle(key(tcell.KeyEnter)))
	ship := h.flow.Session().World().Ship
	x := ship.X

	require.NoError(t, h.flow.Handle(char('l')))
	assert.Equal(t, x+1, ship.X)

	require.NoError(t, h.flow.Handle(char('p')))
	assert.True(t, h.clock.IsPaused())
	require.NoError(t, h.flow.Handle(char('l')))
	assert.Equal(t, x+1, ship.X, "paused game ignores movement")

	h.flow.DrawAll()
	assert.Contains(t, h.row(25/2), "PAUSED")

	require.NoError(t, h.flow.Handle(char('p')))
	assert.False(t, h.clock.IsPaused())
}

func TestGameOverRecordsHighScore(t *testing.T) {
	h := newHarness(t, 0, nil)
	require.NoError(t, h.flow.Handle(key(tcell.KeyEnter)))
	h.flow.Session().World().Score = 1234

	endSession(t, h.flow)

	assert.Equal(t, StateGameOver, h.flow.State())
	assert.Equal(t, 1234, h.flow.HighScore())
	assert.Equal(t, "1234", h.metrics.Snapshot()["flow.high_score"])

	h.flow.DrawAll()
	assert.Contains(t, h.row(25/2-2), "GAME OVER")

	h.flow.UpdateAll(time.Hour)
	assert.Equal(t, StateGameOver, h.flow.State(), "zero delay waits for a key")

	require.NoError(t, h.flow.Handle(key(tcell.KeyEnter)))
	assert.Equal(t, StateTitle, h.flow.State())
}

func TestGameOverDelayReturnsToTitle(t *testing.T) {
	h := newHarness(t, time.Second, nil)
	require.NoError(t, h.flow.Handle(key(tcell.KeyEnter)))
	endSession(t, h.flow)
	require.Equal(t, StateGameOver, h.flow.State())

	h.flow.UpdateAll(500 * time.Millisecond)
	assert.Equal(t, StateGameOver, h.flow.State())
	h.flow.UpdateAll(500 * time.Millisecond)
	assert.Equal(t, StateTitle, h.flow.State())
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t, 0, nil)
	assert.ErrorIs(t, h.flow.Handle(char('q')), loop.ErrQuit)
	assert.ErrorIs(t, h.flow.Handle(key(tcell.KeyCtrlC)), loop.ErrQuit)

	require.NoError(t, h.flow.Handle(key(tcell.KeyEnter)))
	assert.NoError(t, h.flow.Handle(char('q')), "q is not a quit key while playing")
	assert.ErrorIs(t, h.flow.Handle(key(tcell.KeyCtrlC)), loop.ErrQuit)
}

func TestSessionFactoryFailureSurfaces(t *testing.T) {
	boom := errors.New("boom")
	h := newHarness(t, 0, func(string) (*game.Session, error) { return nil, boom })

	err := h.flow.Handle(key(tcell.KeyEnter))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, h.flow.Session())

	h.flow.UpdateAll(time.Millisecond)
	assert.Equal(t, StateGameOver, h.flow.State())
}

func TestResizeReachesSession(t *testing.T) {
	h := newHarness(t, 0, nil)
	require.NoError(t, h.flow.Handle(key(tcell.KeyEnter)))

	h.screen.SetSize(100, 40)
	require.NoError(t, h.flow.Handle(tcell.NewEventResize(100, 40)))

	assert.Equal(t, 100, h.flow.Session().World().Width)
	assert.Equal(t, 39, h.flow.Session().World().Height)
}
