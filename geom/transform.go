package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Transform places a polygon's local vertices in the world. Rotation is in
// degrees and is applied after scaling, before translation.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// Identity returns the transform that leaves vertices untouched.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Translate returns an unscaled transform positioned at x, y.
func Translate(x, y float64) Transform {
	return Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

// Apply maps a local vertex to world space.
func (t Transform) Apply(v cp.Vector) cp.Vector {
	sx, sy := t.scale()
	out := cp.Vector{X: v.X * sx, Y: v.Y * sy}
	if t.Rotation != 0 {
		out = out.Rotate(cp.ForAngle(t.Rotation * math.Pi / 180))
	}
	return out.Add(cp.Vector{X: t.X, Y: t.Y})
}

// Scaled multiplies both the position and the scale by s. Used when restoring
// geometry that was saved in unscaled form.
func (t Transform) Scaled(s float64) Transform {
	sx, sy := t.scale()
	return Transform{
		X:        t.X * s,
		Y:        t.Y * s,
		ScaleX:   sx * s,
		ScaleY:   sy * s,
		Rotation: t.Rotation,
	}
}

// Unscaled undoes Scaled(s). A zero s leaves t unchanged.
func (t Transform) Unscaled(s float64) Transform {
	if s == 0 {
		return t
	}
	sx, sy := t.scale()
	return Transform{
		X:        t.X / s,
		Y:        t.Y / s,
		ScaleX:   sx / s,
		ScaleY:   sy / s,
		Rotation: t.Rotation,
	}
}

// scale treats a zero scale as 1 so that zero-value transforms coming out of
// YAML behave like the identity.
func (t Transform) scale() (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}
