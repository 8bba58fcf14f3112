package game

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/audio"
	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/render"
	"github.com/lixenwraith/starfall/wave"
)

const loneDrone = `
waves:
  - name: lone
    bonus: 10
    spawns:
      - type: drone
        count: 1
        props: {fx: 0.5, fy: 0.2}
`

const loneSerpent = `
waves:
  - name: coil
    bonus: 30
    spawns:
      - type: serpent
        count: 1
        props: {fx: 0.5, fy: 0.2, segments: 4}
`

type recorder struct {
	played []audio.Sound
}

func (r *recorder) Play(s audio.Sound) {
	r.played = append(r.played, s)
}

func (r *recorder) count(s audio.Sound) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T, table string, mods ...func(*Options)) (*Session, *recorder) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	tbl, err := wave.Parse([]byte(table))
	require.NoError(t, err)

	rec := &recorder{}
	opts := Options{
		ID:      "test",
		Canvas:  render.NewCanvas(screen),
		Audio:   rec,
		Table:   tbl,
		Lives:   3,
		Minimap: true,
		Seed:    7,
	}
	for _, mod := range mods {
		mod(&opts)
	}
	s, err := NewSession(opts)
	require.NoError(t, err)
	return s, rec
}

func first[T director.Entity](t *testing.T, d *director.Director, name string) T {
	t.Helper()
	list := d.Get(name)
	require.NotEmpty(t, list)
	e, ok := list[0].(T)
	require.True(t, ok)
	return e
}

func TestNewSessionStartsFirstWave(t *testing.T) {
	s, _ := newTestSession(t, loneDrone)
	d := s.Director()

	assert.Equal(t, 1, s.Wave())
	assert.Equal(t, 1, d.Count(TypeShip))
	assert.Equal(t, 1, d.Count(TypeDrone))
	assert.Same(t, s.World(), d.Refs()[RefWorld])

	ship := s.World().Ship
	require.NotNil(t, ship)
	assert.Equal(t, 40.0, ship.X)
	assert.Equal(t, 22.0, ship.Y)

	drone := first[*Drone](t, d, TypeDrone)
	assert.Equal(t, 40.0, drone.X)
	assert.InDelta(t, 4.8, drone.Y, 1e-9)
	assert.Equal(t, dronePoints, drone.Points)
}

func TestNewSessionRejectsUnknownWaveType(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	defer screen.Fini()

	tbl, err := wave.Parse([]byte("waves:\n  - name: bad\n    spawns:\n      - {type: ufo, count: 1}\n"))
	require.NoError(t, err)

	_, err = NewSession(Options{Canvas: render.NewCanvas(screen), Table: tbl, Lives: 3})
	assert.ErrorIs(t, err, director.ErrUnknownEntityType)
}

func TestNewSessionRejectsTinyTerminal(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(5, 3)
	defer screen.Fini()

	_, err := NewSession(Options{Canvas: render.NewCanvas(screen), Lives: 3})
	assert.ErrorIs(t, err, ErrFieldTooSmall)
}

func TestBulletDestroysDroneAndRollsWave(t *testing.T) {
	s, rec := newTestSession(t, loneDrone)
	d := s.Director()
	drone := first[*Drone](t, d, TypeDrone)
	bullet := d.MustSpawn(TypeBullet, director.Props{"x": drone.X, "y": drone.Y}).(*Bullet)

	s.UpdateAll(time.Millisecond)

	assert.True(t, drone.Dead)
	assert.True(t, bullet.Dead)
	assert.Equal(t, dronePoints+10, s.World().Score)
	assert.Equal(t, 1, d.Count(TypeFloater))
	assert.Equal(t, 1, d.Count(TypeExplosion))
	assert.Equal(t, 1, rec.count(audio.SoundExplosion))
	assert.Equal(t, 1, rec.count(audio.SoundWaveClear))
	assert.Equal(t, 2, s.Wave(), "cleared wave rolls to the next")
	assert.Equal(t, 2, d.Count(TypeDrone), "repeated waves scale their counts")
}

func TestBombCostsLifeThenShields(t *testing.T) {
	s, rec := newTestSession(t, loneDrone)
	d := s.Director()
	ship := s.World().Ship

	hit := d.MustSpawn(TypeBomb, director.Props{"x": ship.X, "y": ship.Y}).(*Bomb)
	s.UpdateAll(time.Millisecond)

	assert.Equal(t, 2, s.World().Lives)
	assert.True(t, hit.Dead)
	assert.False(t, ship.Vulnerable())
	assert.Equal(t, 1, rec.count(audio.SoundHit))

	second := d.MustSpawn(TypeBomb, director.Props{"x": ship.X, "y": ship.Y}).(*Bomb)
	s.UpdateAll(time.Millisecond)
	assert.Equal(t, 2, s.World().Lives, "shielded ship ignores deadly contact")
	assert.False(t, second.Dead)

	s.UpdateAll(respawnShield)
	assert.Equal(t, 1, s.World().Lives)
	assert.True(t, second.Dead)
}

func TestLastLifeEndsSession(t *testing.T) {
	s, _ := newTestSession(t, loneDrone)
	d := s.Director()
	ship := s.World().Ship
	s.World().Lives = 1

	d.MustSpawn(TypeBomb, director.Props{"x": ship.X, "y": ship.Y})
	s.UpdateAll(time.Millisecond)

	assert.True(t, s.Over())
	assert.True(t, ship.Dead)

	x := ship.X
	s.Handle(ActionLeft)
	assert.Equal(t, x, ship.X)

	s.UpdateAll(time.Millisecond)
	assert.Empty(t, d.Get(TypeShip))
}

func TestRescuedPodsTalliedBeforePrune(t *testing.T) {
	s, rec := newTestSession(t, loneDrone)
	d := s.Director()
	ship := s.World().Ship

	pod := d.MustSpawn(TypePod, director.Props{"x": ship.X, "y": ship.Y}).(*Pod)
	lost := d.MustSpawn(TypePod, director.Props{"x": 2.0, "y": float64(s.World().Height)}).(*Pod)

	s.UpdateAll(time.Millisecond)

	assert.True(t, pod.Rescued)
	assert.True(t, pod.Dead)
	assert.True(t, lost.Dead)
	assert.False(t, lost.Rescued)
	assert.Equal(t, 0, s.World().Rescued, "tally happens on the next prune")
	assert.Equal(t, podPoints, s.World().Score)
	assert.Equal(t, 1, rec.count(audio.SoundRescue))
	assert.Len(t, d.Get(TypePod), 2)

	s.UpdateAll(time.Millisecond)

	assert.Equal(t, 1, s.World().Rescued)
	assert.Empty(t, d.Get(TypePod))
}

func TestSerpentSegmentsFlattenForMinimap(t *testing.T) {
	s, _ := newTestSession(t, loneSerpent)
	d := s.Director()
	serpent := first[*Serpent](t, d, TypeSerpent)

	segments := func() int {
		n := 0
		for _, e := range d.AllForMinimap() {
			switch e.(type) {
			case *Segment:
				n++
			case *Serpent:
				t.Fatal("composite listed instead of its segments")
			}
		}
		return n
	}
	assert.Equal(t, 4, segments())

	d.MustSpawn(TypeBullet, director.Props{"x": 38.0, "y": serpent.body[2].Y})
	s.UpdateAll(time.Millisecond)

	assert.Equal(t, 3, serpent.Live())
	assert.False(t, serpent.Dead)
	assert.True(t, serpent.body[2].Dead)
	assert.Equal(t, 3, segments())
	assert.Equal(t, segmentPoints, s.World().Score)
	assert.Equal(t, 1, s.Wave())

	for _, seg := range serpent.body {
		if !seg.Dead {
			d.MustSpawn(TypeBullet, director.Props{"x": seg.X, "y": seg.Y})
		}
	}
	s.UpdateAll(time.Millisecond)

	assert.True(t, serpent.Dead)
	assert.Equal(t, 4*segmentPoints+30, s.World().Score)
	assert.Equal(t, 2, s.Wave())
}

func TestSerpentAdvancesAndTurns(t *testing.T) {
	s, _ := newTestSession(t, loneSerpent)
	serpent := first[*Serpent](t, s.Director(), TypeSerpent)
	head := serpent.body[0]

	s.UpdateAll(serpentStep)
	assert.Equal(t, 41.0, head.X)
	assert.Equal(t, 40.0, serpent.body[1].X)
	assert.Equal(t, 38.0, serpent.body[3].X)

	head.Place(79, head.Y)
	y := head.Y
	s.UpdateAll(serpentStep)
	assert.Equal(t, 79.0, head.X)
	assert.InDelta(t, y+1, head.Y, 1e-9)
	assert.Equal(t, -1.0, serpent.heading)
}

func TestShipFireRespectsCooldown(t *testing.T) {
	s, rec := newTestSession(t, loneDrone)
	d := s.Director()

	s.Handle(ActionFire)
	s.UpdateAll(time.Millisecond)
	assert.Equal(t, 1, d.Count(TypeBullet))
	assert.Equal(t, 1, rec.count(audio.SoundShot))

	s.Handle(ActionFire)
	s.UpdateAll(time.Millisecond)
	assert.Equal(t, 1, d.Count(TypeBullet))

	s.Handle(ActionFire)
	s.UpdateAll(fireCooldown)
	assert.Equal(t, 2, d.Count(TypeBullet))
}

func TestHandleSteersWithinField(t *testing.T) {
	s, _ := newTestSession(t, loneDrone)
	ship := s.World().Ship

	s.Handle(ActionLeft)
	assert.Equal(t, 39.0, ship.X)

	for i := 0; i < 100; i++ {
		s.Handle(ActionRight)
		s.Handle(ActionUp)
	}
	assert.Equal(t, 79.0, ship.X)
	assert.Equal(t, 12.0, ship.Y, "ship stays in the lower half")

	for i := 0; i < 100; i++ {
		s.Handle(ActionDown)
	}
	assert.Equal(t, 23.0, ship.Y)
}

func TestDroneBouncesAndBombs(t *testing.T) {
	s, _ := newTestSession(t, loneDrone)
	d := s.Director()
	drone := first[*Drone](t, d, TypeDrone)

	drone.Place(0.1, 5)
	drone.VX = -droneDrift
	s.UpdateAll(100 * time.Millisecond)
	assert.Greater(t, drone.VX, 0.0)
	assert.GreaterOrEqual(t, drone.X, 0.0)

	drone.bomb = time.Millisecond
	s.UpdateAll(10 * time.Millisecond)
	assert.Equal(t, 1, d.Count(TypeBomb))
}

func TestEffectsExpire(t *testing.T) {
	s, _ := newTestSession(t, loneDrone)
	d := s.Director()

	s.World().Award(5, 10, 10)
	assert.Equal(t, 5, s.World().Score)
	f := first[*Floater](t, d, TypeFloater)
	assert.Equal(t, "+5", f.Text)

	s.World().Explode(3, 3)
	e := first[*Explosion](t, d, TypeExplosion)

	s.UpdateAll(100 * time.Millisecond)
	assert.Less(t, f.Y, 10.0)
	assert.False(t, e.Dead)

	s.UpdateAll(floaterLife)
	assert.True(t, f.Dead)
	assert.True(t, e.Dead)
}

func TestStarsWrap(t *testing.T) {
	s, _ := newTestSession(t, loneDrone, func(o *Options) { o.Stars = 5 })
	d := s.Director()
	require.Equal(t, 5, d.Count(TypeStar))

	star := first[*Star](t, d, TypeStar)
	star.Y = float64(s.World().Height) - 0.01
	star.Speed = 1
	s.UpdateAll(100 * time.Millisecond)
	assert.Less(t, star.Y, 1.0)

	for _, e := range d.AllForMinimap() {
		_, isStar := e.(*Star)
		assert.False(t, isStar, "stars carry no cell and stay off the minimap")
	}
}

func TestDrawAllPaintsShipMinimapAndHUD(t *testing.T) {
	s, _ := newTestSession(t, loneDrone)
	c := s.World().Canvas
	s.DrawAll()

	x, y := s.World().Ship.Cell()
	assert.Equal(t, 'A', c.Rune(x, y))

	hud := ""
	for i := 1; i <= 5; i++ {
		hud += string(c.Rune(i, 24))
	}
	assert.Equal(t, "SCORE", hud)

	assert.Equal(t, '^', c.Rune(70, 5), "ship marker on the minimap")
	assert.Equal(t, 'x', c.Rune(70, 1), "drone marker on the minimap")
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionLeft},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), ActionDown},
		{"vi right", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), ActionRight},
		{"wasd up", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), ActionUp},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionFire},
		{"unmapped rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionNone},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyAction(tt.ev))
		})
	}
}
