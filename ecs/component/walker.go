package component

import "github.com/jakecoffman/cp"

// Walker follows a path one segment at a time at a fixed speed in world
// units per second.
type Walker struct {
	Speed float64
	Path  []cp.Vector
	// Next is the index in Path of the waypoint being walked to.
	Next int
	// Goal is the target of the last request after clamping.
	Goal cp.Vector
}

// Walking reports whether waypoints remain.
func (w *Walker) Walking() bool {
	return w.Next < len(w.Path)
}

func (w *Walker) Stop() {
	w.Path = w.Path[:0]
	w.Next = 0
}

var WalkerComponent = NewComponent[Walker]()

// NavRequest asks the navigation system to route the entity to X, Y. It is
// removed once handled.
type NavRequest struct {
	X float64
	Y float64
}

var NavRequestComponent = NewComponent[NavRequest]()
