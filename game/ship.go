package game

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfall/audio"
	"github.com/lixenwraith/starfall/collider"
	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/render"
)

const (
	shipStep       = 1.0
	fireCooldown   = 150 * time.Millisecond
	respawnShield  = 2 * time.Second
	bulletSpeed    = 30.0
	shieldBlinkDiv = 100 * time.Millisecond
)

// Ship is the player
type Ship struct {
	director.Traits
	director.Life
	collider.Body

	world    *World
	cooldown time.Duration
	shield   time.Duration
	firing   bool
}

func NewShip() director.Entity {
	return &Ship{
		Traits: director.Traits{Layer: render.LayerPlayer, Group: render.GroupPlayer},
		Body:   collider.NewBody(shipShape),
	}
}

func (s *Ship) Name() string {
	return TypeShip
}

func (s *Ship) Spawn(p director.Props) {
	s.world = worldFrom(p)
	s.Place(s.world.place(p))
	s.world.Ship = s
}

// Steer moves the ship by whole cells, clamped to the field
func (s *Ship) Steer(dx, dy float64) {
	if s.Dead {
		return
	}
	x := clamp(s.X+dx*shipStep, 0, float64(s.world.Width-1))
	y := clamp(s.Y+dy*shipStep, float64(s.world.Height/2), float64(s.world.Height-1))
	s.Place(x, y)
}

// Fire requests a shot on the next update
func (s *Ship) Fire() {
	s.firing = true
}

// Vulnerable is false while dead or shielded after a hit
func (s *Ship) Vulnerable() bool {
	return !s.Dead && s.shield <= 0
}

// Damage costs a life and raises the shield; the last life kills the ship
func (s *Ship) Damage() {
	if !s.Vulnerable() {
		return
	}
	s.world.Lives--
	s.world.Play(audio.SoundHit)
	s.world.Explode(s.X, s.Y)
	if s.world.Lives <= 0 {
		s.Kill()
		return
	}
	s.shield = respawnShield
}

func (s *Ship) Update(dt time.Duration) {
	s.cooldown -= dt
	s.shield -= dt
	if s.firing && s.cooldown <= 0 {
		s.world.Spawn(TypeBullet, director.Props{"x": s.X, "y": s.Y - 1, "vy": -bulletSpeed})
		s.world.Play(audio.SoundShot)
		s.cooldown = fireCooldown
	}
	s.firing = false
}

func (s *Ship) Draw() {
	if s.shield > 0 && (s.shield/shieldBlinkDiv)%2 == 1 {
		return
	}
	x, y := s.Cell()
	s.world.set(x, y, 'A', render.StyleShip)
}

func (s *Ship) MinimapGlyph() (rune, tcell.Style) {
	return '^', render.StyleShip
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
