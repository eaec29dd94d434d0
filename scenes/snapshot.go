package scenes

import (
	"fmt"

	"github.com/milk9111/walkzone/polynav"
	"gopkg.in/yaml.v3"
)

// GraphSnapshot is the saved form of a graph's static geometry. Dynamic
// obstacles are not saved; their owners re-register them after loading.
type GraphSnapshot struct {
	WalkZone  ShapeSpec   `yaml:"walk_zone"`
	Obstacles []ShapeSpec `yaml:"obstacles"`
}

// EncodeGraph writes the walk zone and static obstacles of g in local form
// with their transforms, with the graph's asset scale divided out.
func EncodeGraph(g *polynav.Graph) ([]byte, error) {
	if g.WalkZone().Len() == 0 {
		return nil, polynav.ErrNoWalkZone
	}
	scale := g.Scale()
	snap := GraphSnapshot{WalkZone: shapeSpecOf(g.WalkZone(), scale)}
	for _, o := range g.Obstacles() {
		snap.Obstacles = append(snap.Obstacles, shapeSpecOf(o, scale))
	}
	return yaml.Marshal(&snap)
}

// DecodeGraph rebuilds a ready graph from EncodeGraph output. scale is
// applied to every transform, so geometry saved at one asset scale can be
// restored at another; 0 and 1 leave it unchanged.
func DecodeGraph(data []byte, scale float64, opts ...polynav.Option) (*polynav.Graph, error) {
	var snap GraphSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("scenes: unmarshal snapshot: %w", err)
	}

	if scale > 0 {
		opts = append(opts[:len(opts):len(opts)], polynav.WithScale(scale))
	}
	g := polynav.New(opts...)
	g.SetWalkZone(snap.WalkZone.Polygon(scale))
	for _, o := range snap.Obstacles {
		if err := g.AddObstacle(o.Polygon(scale)); err != nil {
			return nil, err
		}
	}
	if err := g.CreateInitialGraph(); err != nil {
		return nil, fmt.Errorf("scenes: decode snapshot: %w", err)
	}
	return g, nil
}
