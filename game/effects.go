package game

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/render"
)

const (
	explosionLife = 400 * time.Millisecond
	floaterLife   = 800 * time.Millisecond
	floaterRise   = 3.0
	starMaxSpeed  = 4.0
)

var explosionFrames = []rune{'@', '*', '+', '.'}

// Explosion is a short burst animation
type Explosion struct {
	director.Traits
	director.Life

	X, Y float64

	world *World
	age   time.Duration
}

func NewExplosion() director.Entity {
	return &Explosion{
		Traits: director.Traits{Layer: render.LayerEffects, Group: render.GroupEffects},
	}
}

func (e *Explosion) Name() string {
	return TypeExplosion
}

func (e *Explosion) Spawn(p director.Props) {
	e.world = worldFrom(p)
	director.Assign(e, p)
}

func (e *Explosion) Update(dt time.Duration) {
	e.age += dt
	if e.age >= explosionLife {
		e.Kill()
	}
}

func (e *Explosion) Draw() {
	frame := int(e.age * time.Duration(len(explosionFrames)) / explosionLife)
	if frame >= len(explosionFrames) {
		return
	}
	x, y := int(e.X+0.5), int(e.Y+0.5)
	glyph := explosionFrames[frame]
	style := render.Fade(render.RGBFlash, render.RGBEmber, float64(e.age)/float64(explosionLife))
	e.world.set(x, y, glyph, style)
	if frame == 1 {
		e.world.set(x-1, y, glyph, style)
		e.world.set(x+1, y, glyph, style)
		e.world.set(x, y-1, glyph, style)
		e.world.set(x, y+1, glyph, style)
	}
}

// Floater is a rising score popup
type Floater struct {
	director.Traits
	director.Life

	X, Y float64
	Text string

	world *World
	age   time.Duration
}

func NewFloater() director.Entity {
	return &Floater{
		Traits: director.Traits{Layer: render.LayerEffects, Group: render.GroupEffects},
	}
}

func (f *Floater) Name() string {
	return TypeFloater
}

func (f *Floater) Spawn(p director.Props) {
	f.world = worldFrom(p)
	director.Assign(f, p)
}

func (f *Floater) Update(dt time.Duration) {
	f.age += dt
	f.Y -= floaterRise * dt.Seconds()
	if f.age >= floaterLife {
		f.Kill()
	}
}

func (f *Floater) Draw() {
	x := int(f.X+0.5) - len(f.Text)/2
	y := int(f.Y + 0.5)
	style := render.Fade(render.RGBScore, render.Scale(render.RGBScore, 0.3), float64(f.age)/float64(floaterLife))
	for i, r := range []rune(f.Text) {
		f.world.set(x+i, y, r, style)
	}
}

// Star is background parallax; it never dies
// Faster stars are nearer and brighter
type Star struct {
	director.Traits

	X, Y  float64
	Speed float64

	world *World
	style tcell.Style
}

func NewStar() director.Entity {
	return &Star{
		Traits: director.Traits{Layer: render.LayerBackground, Group: render.GroupEffects},
	}
}

func (s *Star) Name() string {
	return TypeStar
}

func (s *Star) Spawn(p director.Props) {
	s.world = worldFrom(p)
	s.X = s.world.random() * float64(s.world.Width)
	s.Y = s.world.random() * float64(s.world.Height)
	s.Speed = 1 + 3*s.world.random()
	director.Assign(s, p)
	s.style = render.StyleDefault.Foreground(render.Scale(render.RGBStar, s.Speed/starMaxSpeed).Color())
}

func (s *Star) Update(dt time.Duration) {
	s.Y += s.Speed * dt.Seconds()
	if s.Y >= float64(s.world.Height) {
		s.Y = 0
		s.X = s.world.random() * float64(s.world.Width)
	}
}

func (s *Star) Draw() {
	glyph := '.'
	if s.Speed > 3 {
		glyph = '+'
	}
	s.world.set(int(s.X), int(s.Y), glyph, s.style)
}
