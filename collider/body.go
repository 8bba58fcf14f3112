package collider

import "time"

// Body is the position, velocity and collider shared by moving entities
// Velocity is in cells per second
type Body struct {
	X, Y   float64
	VX, VY float64
	Shape  Shape
}

// NewBody clones the template so the caller owns its collider
func NewBody(template Shape) Body {
	b := Body{}
	if template != nil {
		b.Shape = template.Clone()
	}
	return b
}

// Move integrates velocity over dt and syncs the collider
func (b *Body) Move(dt time.Duration) {
	s := dt.Seconds()
	b.X += b.VX * s
	b.Y += b.VY * s
	b.Sync()
}

// Place sets position and syncs the collider
func (b *Body) Place(x, y float64) {
	b.X, b.Y = x, y
	b.Sync()
}

// Sync moves the collider to the body position
func (b *Body) Sync() {
	if b.Shape != nil {
		b.Shape.MoveTo(b.X, b.Y)
	}
}

// Cell returns the integer cell coordinates
func (b *Body) Cell() (int, int) {
	return int(b.X + 0.5), int(b.Y + 0.5)
}

// Outside reports whether the body left the area extended by margin
func (b *Body) Outside(width, height int, margin float64) bool {
	return b.X < -margin || b.Y < -margin ||
		b.X > float64(width)+margin || b.Y > float64(height)+margin
}

// Hits tests the two bodies' colliders
func (b *Body) Hits(other *Body) bool {
	return Overlaps(b.Shape, other.Shape)
}
