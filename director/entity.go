package director

import "time"

// Entity is the minimum contract for anything stored by the Director
// Name must match the type key it is registered under
type Entity interface {
	Name() string
}

// Factory constructs a fresh entity instance
type Factory func() Entity

// Layered reports the draw layer; lower draws first
type Layered interface {
	DrawLayer() int
}

// Grouped reports the update group; lower updates first
type Grouped interface {
	UpdateGroup() int
}

// Collidable reports the collision group tags of a type
type Collidable interface {
	CollisionGroups() []string
}

// PrimaryEnemy marks types whose extinction completes a wave
type PrimaryEnemy interface {
	IsPrimaryEnemy() bool
}

// Mortal is implemented by entities that can be flagged for removal
// Entities without it are always alive
type Mortal interface {
	IsDead() bool
}

// Updatable receives the frame delta
type Updatable interface {
	Update(dt time.Duration)
}

// Ticker is the delta-less update variant
type Ticker interface {
	Tick()
}

// Drawable paints itself to whatever surface it was spawned with
type Drawable interface {
	Draw()
}

// Spawnable receives merged refs and props once after construction
type Spawnable interface {
	Spawn(p Props)
}

// Composite exposes children for flattened enumeration
type Composite interface {
	All() []Entity
}

// Traits is embedded by entity types to declare registration metadata
type Traits struct {
	Layer   int
	Group   int
	Groups  []string
	Primary bool
}

func (t Traits) DrawLayer() int { return t.Layer }

func (t Traits) UpdateGroup() int { return t.Group }

func (t Traits) CollisionGroups() []string { return t.Groups }

func (t Traits) IsPrimaryEnemy() bool { return t.Primary }

// Life is an embeddable dead flag
type Life struct {
	Dead bool
}

func (l *Life) IsDead() bool { return l.Dead }

// Kill flags the entity for removal on the next prune
func (l *Life) Kill() { l.Dead = true }

// isDead treats entities without a dead flag as alive
func isDead(e Entity) bool {
	if m, ok := e.(Mortal); ok {
		return m.IsDead()
	}
	return false
}
