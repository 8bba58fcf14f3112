package collider

import "math"

// Shape is a collision volume positioned in world cells
// Templates are shared; every entity owns a Clone
type Shape interface {
	Clone() Shape
	// MoveTo places the shape's origin at x, y
	MoveTo(x, y float64)
	// Bounds returns the enclosing circle
	Bounds() Circle
}

// Circle is a center and radius
type Circle struct {
	X, Y   float64
	Radius float64
}

func (c *Circle) Clone() Shape {
	cp := *c
	return &cp
}

func (c *Circle) MoveTo(x, y float64) {
	c.X, c.Y = x, y
}

func (c *Circle) Bounds() Circle { return *c }

// Point is a polygon vertex relative to the polygon origin
type Point struct {
	X, Y float64
}

// Polygon is a vertex list around an origin
type Polygon struct {
	X, Y   float64
	Points []Point

	radius float64 // cached max vertex distance
}

// NewPolygon builds a polygon and caches its bounding radius
func NewPolygon(points ...Point) *Polygon {
	p := &Polygon{Points: points}
	for _, pt := range points {
		if d := math.Hypot(pt.X, pt.Y); d > p.radius {
			p.radius = d
		}
	}
	return p
}

// Clone copies the vertex slice so entities never share vertices
func (p *Polygon) Clone() Shape {
	cp := *p
	cp.Points = make([]Point, len(p.Points))
	copy(cp.Points, p.Points)
	return &cp
}

func (p *Polygon) MoveTo(x, y float64) {
	p.X, p.Y = x, y
}

func (p *Polygon) Bounds() Circle {
	return Circle{X: p.X, Y: p.Y, Radius: p.radius}
}

// Overlaps tests two shapes by their enclosing circles
// Circle pairs are exact; polygons are approximated by their bounds
func Overlaps(a, b Shape) bool {
	if a == nil || b == nil {
		return false
	}
	ca, cb := a.Bounds(), b.Bounds()
	dx, dy := ca.X-cb.X, ca.Y-cb.Y
	r := ca.Radius + cb.Radius
	return dx*dx+dy*dy <= r*r
}
