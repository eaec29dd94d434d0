package scenes

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/geom"
	"github.com/milk9111/walkzone/polynav"
)

func TestSnapshotRestoresStaticGeometry(t *testing.T) {
	s := loadCourtyard(t)

	data, err := EncodeGraph(s.Graph)
	if err != nil {
		t.Fatalf("EncodeGraph: %v", err)
	}
	g, err := DecodeGraph(data, 1)
	if err != nil {
		t.Fatalf("DecodeGraph: %v", err)
	}

	if !g.WalkZone().Equal(s.Graph.WalkZone()) {
		t.Fatalf("walk zone changed in the round trip")
	}
	want, got := s.Graph.Obstacles(), g.Obstacles()
	if len(want) != len(got) {
		t.Fatalf("expected %d obstacles, got %d", len(want), len(got))
	}
	for i := range want {
		if !want[i].Equal(got[i]) {
			t.Fatalf("obstacle %d changed in the round trip", i)
		}
	}
	if len(g.DynamicObstacles()) != 0 {
		t.Fatalf("dynamic obstacles are not part of a snapshot")
	}

	// without the cart both graphs must agree
	s.Unblock("cart")
	queries := [][2]cp.Vector{
		{{X: 120, Y: 520}, {X: 800, Y: 500}},
		{{X: 60, Y: 60}, {X: 900, Y: 580}},
		{{X: 480, Y: 100}, {X: 480, Y: 400}},
	}
	for _, q := range queries {
		a := s.FindPath(q[0], q[1])
		b := g.FindPath(q[0].X, q[0].Y, q[1].X, q[1].Y)
		if len(a) == 0 || math.Abs(length(a)-length(b)) > 1e-6 {
			t.Fatalf("paths differ for %v: %v vs %v", q, a, b)
		}
	}
}

func TestSnapshotScale(t *testing.T) {
	s := loadCourtyard(t)
	data, err := EncodeGraph(s.Graph)
	if err != nil {
		t.Fatalf("EncodeGraph: %v", err)
	}
	g, err := DecodeGraph(data, 0.5)
	if err != nil {
		t.Fatalf("DecodeGraph: %v", err)
	}
	if v := g.WalkZone().Vertex(0); v != (cp.Vector{X: 20, Y: 20}) {
		t.Fatalf("expected halved walk zone, got %v", v)
	}
	if g.State() != polynav.StateReady {
		t.Fatalf("decoded graph should be ready")
	}
}

func TestSnapshotRoundTripAtAssetScale(t *testing.T) {
	src := []byte(`
name: scaled
walk_zone:
  points: "0,0, 100,0, 100,100, 0,100"
  transform:
    x: 10
    y: 5
obstacles:
  - points: "0,0, 20,0, 20,20, 0,20"
    transform:
      x: 40
      y: 40
      rotation: 30
  - points: "0,0, 10,0, 10,30, 0,30"
    transform:
      x: 15
      y: 60
      scale_x: 2
`)

	for _, scale := range []float64{2, 1.5, 0.5} {
		t.Run(strconv.FormatFloat(scale, 'g', -1, 64), func(t *testing.T) {
			spec, err := ParseSceneSpec(src)
			if err != nil {
				t.Fatalf("ParseSceneSpec: %v", err)
			}
			spec.Scale = scale
			s, err := Build(spec)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if s.Graph.Scale() != scale {
				t.Fatalf("graph should record scale %v, got %v", scale, s.Graph.Scale())
			}

			data, err := EncodeGraph(s.Graph)
			if err != nil {
				t.Fatalf("EncodeGraph: %v", err)
			}
			g, err := DecodeGraph(data, scale)
			if err != nil {
				t.Fatalf("DecodeGraph: %v", err)
			}

			assertSameVertices(t, "walk zone", s.Graph.WalkZone(), g.WalkZone())
			want, got := s.Graph.Obstacles(), g.Obstacles()
			if len(want) != len(got) {
				t.Fatalf("expected %d obstacles, got %d", len(want), len(got))
			}
			for i := range want {
				assertSameVertices(t, "obstacle", want[i], got[i])
			}

			from := cp.Vector{X: 15 * scale, Y: 95 * scale}
			to := cp.Vector{X: 105 * scale, Y: 10 * scale}
			a := s.FindPath(from, to)
			b := g.FindPath(from.X, from.Y, to.X, to.Y)
			if len(a) < 3 || math.Abs(length(a)-length(b)) > 1e-6 {
				t.Fatalf("paths differ: %v vs %v", a, b)
			}

			// the snapshot holds the unscaled geometry
			plain, err := DecodeGraph(data, 1)
			if err != nil {
				t.Fatalf("DecodeGraph: %v", err)
			}
			if v := plain.WalkZone().Vertex(2); math.Abs(v.X-110) > 1e-9 || math.Abs(v.Y-105) > 1e-9 {
				t.Fatalf("expected the unscaled corner 110,105, got %v", v)
			}
		})
	}
}

func assertSameVertices(t *testing.T, what string, want, got geom.Polygon) {
	t.Helper()
	if want.Len() != got.Len() {
		t.Fatalf("%s: expected %d vertices, got %d", what, want.Len(), got.Len())
	}
	for i := 0; i < want.Len(); i++ {
		if want.Vertex(i).Distance(got.Vertex(i)) > 1e-9 {
			t.Fatalf("%s: corner %v, want %v", what, got.Vertex(i), want.Vertex(i))
		}
	}
}

func TestSnapshotErrors(t *testing.T) {
	if _, err := EncodeGraph(polynav.New()); !errors.Is(err, polynav.ErrNoWalkZone) {
		t.Fatalf("expected ErrNoWalkZone, got %v", err)
	}
	if _, err := DecodeGraph([]byte("walk_zone: [oops"), 1); err == nil {
		t.Fatalf("expected an unmarshal error")
	}
	if _, err := DecodeGraph([]byte("obstacles: []\n"), 1); !errors.Is(err, polynav.ErrDegeneratePolygon) {
		t.Fatalf("expected ErrDegeneratePolygon, got %v", err)
	}
}

func length(path []cp.Vector) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i-1].Distance(path[i])
	}
	return total
}
