package game

import (
	"time"

	"github.com/lixenwraith/starfall/collider"
	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/render"
)

// Bullet flies straight until it leaves the field or hits something shootable
type Bullet struct {
	director.Traits
	director.Life
	collider.Body

	world *World
}

func NewBullet() director.Entity {
	return &Bullet{
		Traits: director.Traits{
			Layer:  render.LayerProjectiles,
			Group:  render.GroupProjectiles,
			Groups: []string{GroupProjectile},
		},
		Body: collider.NewBody(bulletShape),
	}
}

func (b *Bullet) Name() string {
	return TypeBullet
}

func (b *Bullet) Spawn(p director.Props) {
	b.world = worldFrom(p)
	director.Assign(b, p)
	b.Place(b.world.place(p))
}

func (b *Bullet) Update(dt time.Duration) {
	b.Move(dt)
	if b.Outside(b.world.Width, b.world.Height, 1) {
		b.Kill()
	}
}

func (b *Bullet) Draw() {
	x, y := b.Cell()
	b.world.set(x, y, '|', render.StyleBullet)
}

// Bomb falls from drones and costs the ship a life on contact
type Bomb struct {
	director.Traits
	director.Life
	collider.Body

	world *World
}

func NewBomb() director.Entity {
	return &Bomb{
		Traits: director.Traits{
			Layer:  render.LayerProjectiles,
			Group:  render.GroupProjectiles,
			Groups: []string{GroupDeadly},
		},
		Body: collider.NewBody(bombShape),
	}
}

func (b *Bomb) Name() string {
	return TypeBomb
}

func (b *Bomb) Spawn(p director.Props) {
	b.world = worldFrom(p)
	director.Assign(b, p)
	b.Place(b.world.place(p))
}

func (b *Bomb) Update(dt time.Duration) {
	b.Move(dt)
	if b.Outside(b.world.Width, b.world.Height, 1) {
		b.Kill()
	}
}

// Hit consumes the bomb on contact
func (b *Bomb) Hit(s collider.Shape) bool {
	if b.Dead || !collider.Overlaps(b.Shape, s) {
		return false
	}
	b.Kill()
	return true
}

func (b *Bomb) Draw() {
	x, y := b.Cell()
	b.world.set(x, y, '*', render.StyleBomb)
}
