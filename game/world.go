package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/audio"
	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/render"
)

// RefWorld is the spawn ref key carrying the session World
const RefWorld = "world"

// Sounder plays gameplay effects
type Sounder interface {
	Play(s audio.Sound)
}

// World is the per-session context entities receive at spawn
// Only the frame goroutine touches it
type World struct {
	Canvas *render.Canvas
	Audio  Sounder
	Rand   *rand.Rand
	Ship   *Ship

	// Play field in cells; the HUD row is outside it
	Width, Height int

	Score   int
	Lives   int
	Rescued int

	spawn func(name string, props director.Props) (director.Entity, error)
	log   *zap.Logger
}

// worldFrom extracts the session World from merged spawn props
func worldFrom(p director.Props) *World {
	w, _ := p[RefWorld].(*World)
	return w
}

// Spawn creates an entity through the session director
// Failures are logged; entity code has nowhere to return them
func (w *World) Spawn(name string, props director.Props) director.Entity {
	if w.spawn == nil {
		return nil
	}
	e, err := w.spawn(name, props)
	if err != nil {
		w.log.Error("spawn failed", zap.String("type", name), zap.Error(err))
		return nil
	}
	return e
}

// Play is a no-op without audio
func (w *World) Play(s audio.Sound) {
	if w.Audio != nil {
		w.Audio.Play(s)
	}
}

// Award adds points and pops a floater at x, y
func (w *World) Award(points int, x, y float64) {
	if points == 0 {
		return
	}
	w.Score += points
	w.Spawn(TypeFloater, director.Props{"x": x, "y": y, "text": fmt.Sprintf("+%d", points)})
}

// Explode spawns an explosion effect at x, y
func (w *World) Explode(x, y float64) {
	w.Spawn(TypeExplosion, director.Props{"x": x, "y": y})
	w.Play(audio.SoundExplosion)
}

// place resolves spawn coordinates: fx/fy are field fractions, x/y are cells
func (w *World) place(p director.Props) (float64, float64) {
	x, y := number(p["x"]), number(p["y"])
	if fx, ok := p["fx"]; ok {
		x = number(fx) * float64(w.Width)
	}
	if fy, ok := p["fy"]; ok {
		y = number(fy) * float64(w.Height)
	}
	return x, y
}

// set draws a cell inside the play field
func (w *World) set(x, y int, r rune, style tcell.Style) {
	if w.Canvas == nil || y >= w.Height {
		return
	}
	w.Canvas.Set(x, y, r, style)
}

func (w *World) random() float64 {
	if w.Rand == nil {
		return 0.5
	}
	return w.Rand.Float64()
}

func number(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}
