package common

const (
	ScreenWidth  = 1200
	ScreenHeight = 640
	// PanelWidth is the strip on the right of the viewer taken by the side
	// panel; scenes are drawn in the remaining area.
	PanelWidth = 240

	// TicksPerSecond is the fixed update rate of the viewer and the walk
	// simulation.
	TicksPerSecond = 60
)

type Float interface {
	~float32 | ~float64
}

func Lerp[T Float](a, b, t T) T {
	return a + t*(b-a)
}
