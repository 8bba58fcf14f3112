package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/audio"
	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/render"
	"github.com/lixenwraith/starfall/wave"
)

const (
	messageTime   = 2 * time.Second
	minimapWidth  = 20
	minimapHeight = 6
)

// ErrFieldTooSmall is returned when the terminal cannot hold a play field
var ErrFieldTooSmall = errors.New("terminal too small")

// Options configures a Session
type Options struct {
	ID           string
	Canvas       *render.Canvas
	Audio        Sounder
	Table        *wave.Table
	Lives        int
	DefaultLayer int
	Minimap      bool
	Stars        int
	Seed         uint64
	// FPS feeds the HUD; nil shows zero
	FPS    func() float64
	Logger *zap.Logger
}

// Session is one playthrough: a fresh director, world and wave sequence
// It satisfies the frame loop stage contract
type Session struct {
	id       string
	world    *World
	director *director.Director
	waves    *wave.Spawner
	minimap  bool
	fps      func() float64
	log      *zap.Logger

	message     string
	messageLeft time.Duration
}

// NewSession registers the entity types, places the ship and starts wave 1
func NewSession(opts Options) (*Session, error) {
	if opts.Canvas == nil {
		return nil, errors.New("session needs a canvas")
	}
	if opts.Table == nil {
		opts.Table = wave.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("session", opts.ID))

	w, h := opts.Canvas.Size()
	if w < 10 || h < 6 {
		return nil, errors.Wrapf(ErrFieldTooSmall, "%dx%d", w, h)
	}

	world := &World{
		Canvas: opts.Canvas,
		Audio:  opts.Audio,
		Rand:   rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		Width:  w,
		Height: h - 1,
		Lives:  opts.Lives,
		log:    log,
	}
	s := &Session{
		id:      opts.ID,
		world:   world,
		minimap: opts.Minimap,
		fps:     opts.FPS,
		log:     log,
	}

	d := director.New(director.Options{
		DefaultLayer: opts.DefaultLayer,
		PrePrune:     s.tallyRescues,
		Logger:       log,
	})
	if err := d.Register(Factories()...); err != nil {
		return nil, err
	}
	d.SetRefs(director.Refs{RefWorld: world})
	world.spawn = d.Spawn
	s.director = d

	s.waves = wave.NewSpawner(opts.Table, d, log)
	if err := s.waves.Validate(); err != nil {
		return nil, err
	}

	for i := 0; i < opts.Stars; i++ {
		d.MustSpawn(TypeStar, nil)
	}
	d.MustSpawn(TypeShip, director.Props{"fx": 0.5, "y": float64(world.Height - 2)})

	if err := s.waves.Next(); err != nil {
		return nil, err
	}
	s.announce("WAVE 1")

	log.Info("session started", zap.Int("width", w), zap.Int("height", h), zap.Int("lives", opts.Lives))
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) World() *World { return s.world }

func (s *Session) Director() *director.Director { return s.director }

func (s *Session) Wave() int { return s.waves.Number() }

func (s *Session) Stats() director.Stats { return s.director.Stats() }

// Over is true once the ship has lost its last life
func (s *Session) Over() bool {
	return s.world.Ship == nil || s.world.Ship.Dead
}

// Handle applies a player action
func (s *Session) Handle(a Action) {
	ship := s.world.Ship
	if ship == nil || ship.Dead {
		return
	}
	switch a {
	case ActionLeft:
		ship.Steer(-1, 0)
	case ActionRight:
		ship.Steer(1, 0)
	case ActionUp:
		ship.Steer(0, -1)
	case ActionDown:
		ship.Steer(0, 1)
	case ActionFire:
		ship.Fire()
	}
}

// Resize adopts a new terminal size; entities outside the field wrap or expire on their own
func (s *Session) Resize(w, h int) {
	if w < 1 || h < 2 {
		return
	}
	s.world.Width, s.world.Height = w, h-1
	if ship := s.world.Ship; ship != nil {
		ship.Steer(0, 0)
	}
}

// UpdateAll advances entities, resolves collisions and rolls waves
func (s *Session) UpdateAll(dt time.Duration) {
	s.director.UpdateAll(dt)
	s.collide()

	if s.messageLeft > 0 {
		s.messageLeft -= dt
		if s.messageLeft <= 0 {
			s.message = ""
		}
	}

	if s.Over() || !s.waves.Done() {
		return
	}
	bonus := s.waves.Finish()
	s.world.Score += bonus
	s.world.Play(audio.SoundWaveClear)
	if err := s.waves.Next(); err != nil {
		s.log.Error("next wave failed", zap.Error(err))
		return
	}
	s.announce(fmt.Sprintf("WAVE %d  +%d", s.waves.Number(), bonus))
}

// DrawAll paints entities, the minimap and the HUD, then flushes the screen
func (s *Session) DrawAll() {
	c := s.world.Canvas
	c.Clear()
	s.director.DrawAll()

	if s.minimap && s.world.Width >= 2*minimapWidth {
		m := render.Minimap{X: s.world.Width - minimapWidth, Y: 0, Width: minimapWidth, Height: minimapHeight}
		m.Draw(c, s.world.Width, s.world.Height, s.director.AllForMinimap())
	}

	fps := 0.0
	if s.fps != nil {
		fps = s.fps()
	}
	render.DrawHUD(c, render.HUDState{
		Score:   s.world.Score,
		Lives:   s.world.Lives,
		Wave:    s.waves.Number(),
		Enemies: s.director.CountByGroups(GroupShootable),
		Rescued: s.world.Rescued,
		FPS:     fps,
		Message: s.message,
	})
	c.Show()
}

// tallyRescues counts collected pods before the prune drops them
func (s *Session) tallyRescues(d *director.Director) {
	for _, e := range d.Get(TypePod) {
		if p, ok := e.(*Pod); ok && p.Dead && p.Rescued {
			s.world.Rescued++
		}
	}
}

func (s *Session) announce(msg string) {
	s.message = msg
	s.messageLeft = messageTime
}
