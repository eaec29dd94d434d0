// Package scenes loads YAML scene descriptions and turns them into
// navigation graphs.
package scenes

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/geom"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownObstacle = errors.New("scenes: unknown obstacle")
	ErrDuplicateName   = errors.New("scenes: duplicate name")
)

type SceneSpec struct {
	Name      string        `yaml:"name"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Scale     float64       `yaml:"scale"`
	WalkZone  ShapeSpec     `yaml:"walk_zone"`
	Obstacles []ShapeSpec   `yaml:"obstacles"`
	Dynamic   []DynamicSpec `yaml:"dynamic"`
	Actors    []ActorSpec   `yaml:"actors"`
	Script    string        `yaml:"script"`
	Palette   PaletteSpec   `yaml:"palette"`
}

type ShapeSpec struct {
	Points    PolygonSpec   `yaml:"points"`
	Transform TransformSpec `yaml:"transform"`
}

// DynamicSpec is a named obstacle that scripts and actors can toggle.
type DynamicSpec struct {
	Name   string    `yaml:"name"`
	Active bool      `yaml:"active"`
	Shape  ShapeSpec `yaml:",inline"`
}

// ActorSpec places a walker. Width and Height size the footprint it leaves
// while idle.
type ActorSpec struct {
	Name      string     `yaml:"name"`
	X         float64    `yaml:"x"`
	Y         float64    `yaml:"y"`
	Speed     float64    `yaml:"speed"`
	Width     float64    `yaml:"width"`
	Height    float64    `yaml:"height"`
	Footprint bool       `yaml:"footprint"`
	Color     *YAMLColor `yaml:"color"`
}

type PaletteSpec struct {
	Background *YAMLColor `yaml:"background"`
	Zone       *YAMLColor `yaml:"zone"`
	Obstacle   *YAMLColor `yaml:"obstacle"`
	Dynamic    *YAMLColor `yaml:"dynamic"`
	Graph      *YAMLColor `yaml:"graph"`
	Path       *YAMLColor `yaml:"path"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

func (t TransformSpec) Transform() geom.Transform {
	return geom.Transform{X: t.X, Y: t.Y, ScaleX: t.ScaleX, ScaleY: t.ScaleY, Rotation: t.Rotation}
}

func transformSpecOf(t geom.Transform) TransformSpec {
	return TransformSpec{X: t.X, Y: t.Y, ScaleX: t.ScaleX, ScaleY: t.ScaleY, Rotation: t.Rotation}
}

// Polygon bakes the shape, multiplying its transform by scale.
func (s ShapeSpec) Polygon(scale float64) geom.Polygon {
	t := s.Transform.Transform()
	if scale != 0 && scale != 1 {
		t = t.Scaled(scale)
	}
	return geom.NewPolygon(s.Points, t)
}

// shapeSpecOf is the inverse of ShapeSpec.Polygon(scale).
func shapeSpecOf(p geom.Polygon, scale float64) ShapeSpec {
	t := p.Transform()
	if scale != 0 && scale != 1 {
		t = t.Unscaled(scale)
	}
	return ShapeSpec{Points: PolygonSpec(p.Local()), Transform: transformSpecOf(t)}
}

// PolygonSpec accepts either the compact "x0,y0,x1,y1,..." string or a list
// of [x, y] pairs.
type PolygonSpec []cp.Vector

func (p *PolygonSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		verts, err := geom.ParseVertices(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*p = verts
		return nil
	case yaml.SequenceNode:
		var pairs [][]float64
		if err := value.Decode(&pairs); err != nil {
			return err
		}
		verts := make([]cp.Vector, 0, len(pairs))
		for _, pair := range pairs {
			if len(pair) != 2 {
				return fmt.Errorf("line %d: %w: point needs 2 coordinates, got %d", value.Line, geom.ErrInvalidVertices, len(pair))
			}
			verts = append(verts, cp.Vector{X: pair[0], Y: pair[1]})
		}
		*p = verts
		return nil
	default:
		return fmt.Errorf("line %d: polygon must be a string or a list of points", value.Line)
	}
}

func (p PolygonSpec) MarshalYAML() (any, error) {
	return geom.FormatPolygon(geom.NewPolygon(p, geom.Identity())), nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// Or returns the color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

// LoadSceneSpec reads and validates the named scene.
func LoadSceneSpec(name string) (*SceneSpec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("scenes: load %s: %w", name, err)
	}
	spec, err := ParseSceneSpec(data)
	if err != nil {
		return nil, fmt.Errorf("scenes: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the parts of a scene a graph cannot recover from.
func (s *SceneSpec) Validate() error {
	if len(s.WalkZone.Points) < 3 {
		return fmt.Errorf("walk_zone: %w", geom.ErrTooFewVertices)
	}
	for i, o := range s.Obstacles {
		if len(o.Points) < 3 {
			return fmt.Errorf("obstacles[%d]: %w", i, geom.ErrTooFewVertices)
		}
	}

	seen := map[string]bool{}
	for i, d := range s.Dynamic {
		if d.Name == "" {
			return fmt.Errorf("dynamic[%d]: missing name", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("dynamic %q: %w", d.Name, ErrDuplicateName)
		}
		seen[d.Name] = true
		if len(d.Shape.Points) < 3 {
			return fmt.Errorf("dynamic %q: %w", d.Name, geom.ErrTooFewVertices)
		}
	}

	actors := map[string]bool{}
	for i, a := range s.Actors {
		if a.Name == "" {
			return fmt.Errorf("actors[%d]: missing name", i)
		}
		if actors[a.Name] {
			return fmt.Errorf("actor %q: %w", a.Name, ErrDuplicateName)
		}
		actors[a.Name] = true
	}
	return nil
}
