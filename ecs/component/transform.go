package component

import "github.com/jakecoffman/cp"

type Transform struct {
	X float64
	Y float64
}

func (t *Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	t.X, t.Y = p.X, p.Y
}

var TransformComponent = NewComponent[Transform]()
