package game

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfall/collider"
	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/render"
)

const (
	serpentStep     = 80 * time.Millisecond
	serpentSegments = 6
	segmentPoints   = 20
)

// Segment is one body cell of a Serpent
// Segments are not registered; the minimap reaches them through Serpent.All
type Segment struct {
	director.Life
	collider.Body
	head bool
}

func (s *Segment) Name() string {
	return "segment"
}

func (s *Segment) MinimapGlyph() (rune, tcell.Style) {
	return 's', render.StyleSerpent
}

// Serpent is a chain of segments sweeping the field row by row
// It dies when its last segment is shot
type Serpent struct {
	director.Traits
	director.Life

	Segments int
	Points   int

	world   *World
	body    []*Segment
	heading float64
	acc     time.Duration
}

func NewSerpent() director.Entity {
	return &Serpent{
		Traits: director.Traits{
			Layer:   render.LayerEnemies,
			Group:   render.GroupEnemies,
			Groups:  []string{GroupShootable, GroupDeadly},
			Primary: true,
		},
		Segments: serpentSegments,
		Points:   segmentPoints,
		heading:  1,
	}
}

func (s *Serpent) Name() string {
	return TypeSerpent
}

func (s *Serpent) Spawn(p director.Props) {
	s.world = worldFrom(p)
	director.Assign(s, p)
	if s.Segments < 1 {
		s.Segments = 1
	}
	x, y := s.world.place(p)
	s.body = make([]*Segment, s.Segments)
	for i := range s.body {
		seg := &Segment{Body: collider.NewBody(segmentShape), head: i == 0}
		seg.Place(x-float64(i), y)
		s.body[i] = seg
	}
}

// All exposes the segments for minimap enumeration
func (s *Serpent) All() []director.Entity {
	out := make([]director.Entity, len(s.body))
	for i, seg := range s.body {
		out[i] = seg
	}
	return out
}

// Live counts segments still standing
func (s *Serpent) Live() int {
	n := 0
	for _, seg := range s.body {
		if !seg.Dead {
			n++
		}
	}
	return n
}

func (s *Serpent) Update(dt time.Duration) {
	s.acc += dt
	for s.acc >= serpentStep {
		s.acc -= serpentStep
		s.advance()
	}
}

// advance moves the head one cell and drags the rest along its trail
func (s *Serpent) advance() {
	if len(s.body) == 0 {
		return
	}
	for i := len(s.body) - 1; i > 0; i-- {
		s.body[i].Place(s.body[i-1].X, s.body[i-1].Y)
	}

	head := s.body[0]
	x, y := head.X+s.heading, head.Y
	if x < 0 || x > float64(s.world.Width-1) {
		s.heading = -s.heading
		x = clamp(x, 0, float64(s.world.Width-1))
		y++
	}
	if y >= float64(s.world.Height) {
		y = 0
	}
	head.Place(x, y)
}

// Hit destroys every live segment s overlaps
func (s *Serpent) Hit(shape collider.Shape) bool {
	if s.Dead {
		return false
	}
	hit := false
	for _, seg := range s.body {
		if seg.Dead || !collider.Overlaps(seg.Shape, shape) {
			continue
		}
		seg.Kill()
		s.world.Explode(seg.X, seg.Y)
		s.world.Award(s.Points, seg.X, seg.Y)
		hit = true
	}
	if hit && s.Live() == 0 {
		s.Kill()
	}
	return hit
}

func (s *Serpent) Draw() {
	for _, seg := range s.body {
		if seg.Dead {
			continue
		}
		glyph := 'o'
		if seg.head {
			glyph = 'O'
		}
		x, y := seg.Cell()
		s.world.set(x, y, glyph, render.StyleSerpent)
	}
}
