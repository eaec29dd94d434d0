// Package geom holds the 2D polygon type used for walk zones and obstacles
// together with the predicates the navigation graph is built from.
//
// Polygons are immutable: the local vertex list and its Transform are fixed
// at construction and the world-space vertices are baked once.
package geom

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
)

var (
	ErrTooFewVertices  = errors.New("geom: polygon needs at least 3 vertices")
	ErrOddCoordinates  = errors.New("geom: odd number of coordinates")
	ErrInvalidVertices = errors.New("geom: invalid vertex list")
)

// Polygon is a closed, simple polygon. The last vertex connects back to the
// first and is not repeated.
type Polygon struct {
	local     []cp.Vector
	transform Transform
	world     []cp.Vector
}

// NewPolygon copies vertices and bakes them through t.
func NewPolygon(vertices []cp.Vector, t Transform) Polygon {
	local := make([]cp.Vector, len(vertices))
	copy(local, vertices)
	world := make([]cp.Vector, len(local))
	for i, v := range local {
		world[i] = t.Apply(v)
	}
	return Polygon{local: local, transform: t, world: world}
}

// FromPoints builds an untransformed polygon from x, y pairs.
func FromPoints(xy ...float64) (Polygon, error) {
	if len(xy)%2 != 0 {
		return Polygon{}, ErrOddCoordinates
	}
	verts := make([]cp.Vector, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		verts = append(verts, cp.Vector{X: xy[i], Y: xy[i+1]})
	}
	if len(verts) < 3 {
		return Polygon{}, ErrTooFewVertices
	}
	return NewPolygon(verts, Identity()), nil
}

// MustPoints is FromPoints for literals known to be valid.
func MustPoints(xy ...float64) Polygon {
	p, err := FromPoints(xy...)
	if err != nil {
		panic(err)
	}
	return p
}

// Rect returns the axis-aligned rectangle with corners (x0, y0) and (x1, y1).
func Rect(x0, y0, x1, y1 float64) Polygon {
	return MustPoints(x0, y0, x1, y0, x1, y1, x0, y1)
}

// FromBB converts a chipmunk bounding box into a rectangle polygon.
func FromBB(bb cp.BB) Polygon {
	return Rect(bb.L, bb.B, bb.R, bb.T)
}

// Len returns the vertex count.
func (p Polygon) Len() int {
	return len(p.world)
}

// Vertex returns world vertex i, wrapping around in both directions.
func (p Polygon) Vertex(i int) cp.Vector {
	n := len(p.world)
	return p.world[((i%n)+n)%n]
}

// Vertices returns the world-space vertices. The slice must not be modified.
func (p Polygon) Vertices() []cp.Vector {
	return p.world
}

// Local returns the untransformed vertices. The slice must not be modified.
func (p Polygon) Local() []cp.Vector {
	return p.local
}

func (p Polygon) Transform() Transform {
	return p.transform
}

// WithTransform returns the same local shape placed by t.
func (p Polygon) WithTransform(t Transform) Polygon {
	return NewPolygon(p.local, t)
}

// Edge returns the world-space edge starting at vertex i.
func (p Polygon) Edge(i int) (cp.Vector, cp.Vector) {
	return p.Vertex(i), p.Vertex(i + 1)
}

// SignedArea is positive for counter-clockwise winding in a y-up system.
func (p Polygon) SignedArea() float64 {
	area := 0.0
	for i := range p.world {
		a, b := p.Edge(i)
		area += a.Cross(b)
	}
	return area / 2
}

// BB returns the world-space bounding box.
func (p Polygon) BB() cp.BB {
	if len(p.world) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, v := range p.world {
		bb.L = math.Min(bb.L, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.R = math.Max(bb.R, v.X)
		bb.T = math.Max(bb.T, v.Y)
	}
	return bb
}

// Equal reports whether both polygons have the same world vertices.
func (p Polygon) Equal(o Polygon) bool {
	if len(p.world) != len(o.world) {
		return false
	}
	for i := range p.world {
		if p.world[i] != o.world[i] {
			return false
		}
	}
	return true
}
