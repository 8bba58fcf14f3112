package game

import (
	"github.com/lixenwraith/starfall/collider"
	"github.com/lixenwraith/starfall/director"
)

// Entity type names
const (
	TypeStar      = "star"
	TypeShip      = "ship"
	TypeDrone     = "drone"
	TypeSerpent   = "serpent"
	TypeBullet    = "bullet"
	TypeBomb      = "bomb"
	TypeExplosion = "explosion"
	TypePod       = "pod"
	TypeFloater   = "floater"
)

// Collision group tags
const (
	GroupShootable   = "shootable"
	GroupDeadly      = "deadly"
	GroupCollectable = "collectable"
	GroupProjectile  = "projectile"
)

// Collider templates; every entity clones its own
var (
	shipShape    = collider.NewPolygon(collider.Point{Y: -0.8}, collider.Point{X: -0.8, Y: 0.5}, collider.Point{X: 0.8, Y: 0.5})
	droneShape   = &collider.Circle{Radius: 0.7}
	segmentShape = &collider.Circle{Radius: 0.6}
	bulletShape  = &collider.Circle{Radius: 0.3}
	bombShape    = &collider.Circle{Radius: 0.3}
	podShape     = collider.NewPolygon(collider.Point{Y: -0.7}, collider.Point{X: 0.7}, collider.Point{Y: 0.7}, collider.Point{X: -0.7})
)

// Factories lists every entity type a session registers
func Factories() []director.Factory {
	return []director.Factory{
		NewStar,
		NewShip,
		NewDrone,
		NewSerpent,
		NewBullet,
		NewBomb,
		NewExplosion,
		NewPod,
		NewFloater,
	}
}

// target is hit by bullets or by the ship
type target interface {
	director.Entity
	// Hit damages whatever part of the target overlaps s and reports a hit
	Hit(s collider.Shape) bool
}

// collectable is picked up by the ship
type collectable interface {
	director.Entity
	Collect(s collider.Shape) bool
}
