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
	podFall   = 0.8
	podPoints = 150
)

// Pod is a stranded survivor drifting down; the ship rescues it on contact
// Pods reaching the bottom are lost
type Pod struct {
	director.Traits
	director.Life
	collider.Body

	Rescued bool

	world *World
}

func NewPod() director.Entity {
	return &Pod{
		Traits: director.Traits{
			Layer:  render.LayerPickups,
			Group:  render.GroupEnemies,
			Groups: []string{GroupCollectable},
		},
		Body: collider.NewBody(podShape),
	}
}

func (p *Pod) Name() string {
	return TypePod
}

func (p *Pod) Spawn(props director.Props) {
	p.world = worldFrom(props)
	p.Place(p.world.place(props))
	p.VY = podFall
}

func (p *Pod) Update(dt time.Duration) {
	p.Move(dt)
	if p.Y >= float64(p.world.Height) {
		p.Kill()
	}
}

// Collect rescues the pod when s overlaps it
func (p *Pod) Collect(s collider.Shape) bool {
	if p.Dead || !collider.Overlaps(p.Shape, s) {
		return false
	}
	p.Rescued = true
	p.Kill()
	p.world.Play(audio.SoundRescue)
	p.world.Award(podPoints, p.X, p.Y)
	return true
}

func (p *Pod) Draw() {
	x, y := p.Cell()
	p.world.set(x, y, '◆', render.StylePod)
}

func (p *Pod) MinimapGlyph() (rune, tcell.Style) {
	return '+', render.StylePod
}
