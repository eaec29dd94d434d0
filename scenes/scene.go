package scenes

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/geom"
	"github.com/milk9111/walkzone/polynav"
)

// Scene is a built navigation graph together with the named dynamic
// obstacles of its spec.
type Scene struct {
	Spec  *SceneSpec
	Graph *polynav.Graph

	scale  float64
	shapes map[string]geom.Polygon
	active map[string]polynav.ObstacleID
}

// LoadScene loads, validates and builds the named scene.
func LoadScene(name string, opts ...polynav.Option) (*Scene, error) {
	spec, err := LoadSceneSpec(name)
	if err != nil {
		return nil, err
	}
	return Build(spec, opts...)
}

// Build creates the graph for spec and blocks every dynamic obstacle marked
// active.
func Build(spec *SceneSpec, opts ...polynav.Option) (*Scene, error) {
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}

	opts = append(opts[:len(opts):len(opts)], polynav.WithScale(scale))
	g := polynav.New(opts...)
	g.SetWalkZone(spec.WalkZone.Polygon(scale))
	for _, o := range spec.Obstacles {
		if err := g.AddObstacle(o.Polygon(scale)); err != nil {
			return nil, fmt.Errorf("scenes: build %s: %w", spec.Name, err)
		}
	}
	if err := g.CreateInitialGraph(); err != nil {
		return nil, fmt.Errorf("scenes: build %s: %w", spec.Name, err)
	}

	s := &Scene{
		Spec:   spec,
		Graph:  g,
		scale:  scale,
		shapes: make(map[string]geom.Polygon, len(spec.Dynamic)),
		active: map[string]polynav.ObstacleID{},
	}
	for _, d := range spec.Dynamic {
		s.shapes[d.Name] = d.Shape.Polygon(scale)
	}
	for _, d := range spec.Dynamic {
		if d.Active {
			if err := s.Block(d.Name); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *Scene) Scale() float64 {
	return s.scale
}

// Block activates the named dynamic obstacle. Blocking an active obstacle is
// a no-op.
func (s *Scene) Block(name string) error {
	p, ok := s.shapes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObstacle, name)
	}
	if _, on := s.active[name]; on {
		return nil
	}
	s.active[name] = s.Graph.AddDynamicObstacle(p)
	return nil
}

// Unblock deactivates the named dynamic obstacle.
func (s *Scene) Unblock(name string) error {
	if _, ok := s.shapes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownObstacle, name)
	}
	id, on := s.active[name]
	if !on {
		return nil
	}
	delete(s.active, name)
	s.Graph.RemoveDynamicObstacle(id)
	return nil
}

// Toggle flips the named obstacle and reports whether it is now active.
func (s *Scene) Toggle(name string) (bool, error) {
	if s.Blocked(name) {
		return false, s.Unblock(name)
	}
	return true, s.Block(name)
}

func (s *Scene) Blocked(name string) bool {
	_, on := s.active[name]
	return on
}

// DynamicNames lists the named obstacles in spec order.
func (s *Scene) DynamicNames() []string {
	out := make([]string, 0, len(s.Spec.Dynamic))
	for _, d := range s.Spec.Dynamic {
		out = append(out, d.Name)
	}
	return out
}

// DynamicShape returns the polygon of a named obstacle whether or not it is
// active.
func (s *Scene) DynamicShape(name string) (geom.Polygon, bool) {
	p, ok := s.shapes[name]
	return p, ok
}

func (s *Scene) FindPath(from, to cp.Vector) []cp.Vector {
	return s.Graph.FindPath(from.X, from.Y, to.X, to.Y)
}

// Script returns the scene script source, or nil when the scene has none.
func (s *Scene) Script() ([]byte, error) {
	if s.Spec.Script == "" {
		return nil, nil
	}
	data, err := LoadScript(s.Spec.Script)
	if err != nil {
		return nil, fmt.Errorf("scenes: load script %s: %w", s.Spec.Script, err)
	}
	return data, nil
}

func (s *Scene) InLineOfSight(a, b cp.Vector) bool {
	return s.Graph.InLineOfSight(a, b)
}
