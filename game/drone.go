package game

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfall/collider"
	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/render"
)

const (
	droneDescent = 1.5
	droneDrift   = 6.0
	bombSpeed    = 12.0
	bombMinDelay = 2 * time.Second
	bombJitter   = 3 * time.Second
	dronePoints  = 50
)

// Drone drifts sideways, creeps down and drops bombs
type Drone struct {
	director.Traits
	director.Life
	collider.Body

	Points int

	world *World
	bomb  time.Duration
}

func NewDrone() director.Entity {
	return &Drone{
		Traits: director.Traits{
			Layer:   render.LayerEnemies,
			Group:   render.GroupEnemies,
			Groups:  []string{GroupShootable, GroupDeadly},
			Primary: true,
		},
		Body:   collider.NewBody(droneShape),
		Points: dronePoints,
	}
}

func (d *Drone) Name() string {
	return TypeDrone
}

func (d *Drone) Spawn(p director.Props) {
	d.world = worldFrom(p)
	director.Assign(d, p)
	d.Place(d.world.place(p))
	d.VY = droneDescent
	d.VX = droneDrift
	if d.world.random() < 0.5 {
		d.VX = -droneDrift
	}
	d.bomb = d.nextBomb()
}

func (d *Drone) nextBomb() time.Duration {
	return bombMinDelay + time.Duration(d.world.random()*float64(bombJitter))
}

func (d *Drone) Update(dt time.Duration) {
	d.Move(dt)

	maxX := float64(d.world.Width - 1)
	if d.X < 0 || d.X > maxX {
		d.VX = -d.VX
		d.Place(clamp(d.X, 0, maxX), d.Y)
	}
	if d.Y >= float64(d.world.Height) {
		d.Place(d.X, 0)
	}

	d.bomb -= dt
	if d.bomb <= 0 {
		d.world.Spawn(TypeBomb, director.Props{"x": d.X, "y": d.Y + 1, "vy": bombSpeed})
		d.bomb = d.nextBomb()
	}
}

// Hit destroys the drone when s overlaps it
func (d *Drone) Hit(s collider.Shape) bool {
	if d.Dead || !collider.Overlaps(d.Shape, s) {
		return false
	}
	d.Kill()
	d.world.Explode(d.X, d.Y)
	d.world.Award(d.Points, d.X, d.Y)
	return true
}

func (d *Drone) Draw() {
	x, y := d.Cell()
	d.world.set(x, y, 'W', render.StyleEnemy)
}

func (d *Drone) MinimapGlyph() (rune, tcell.Style) {
	return 'x', render.StyleEnemy
}
