package component

import (
	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

// Footprint is the box an idle walker occupies, centred on its transform.
// While placed it is a dynamic obstacle in the navigation graph.
type Footprint struct {
	Width  float64
	Height float64

	Placed   bool
	Obstacle uuid.UUID
}

// BB returns the footprint box around p.
func (f *Footprint) BB(p cp.Vector) cp.BB {
	return cp.NewBBForExtents(p, f.Width/2, f.Height/2)
}

var FootprintComponent = NewComponent[Footprint]()
