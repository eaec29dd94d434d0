package scenes

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/polynav"
)

func loadCourtyard(t *testing.T) *Scene {
	t.Helper()
	s, err := LoadScene("courtyard")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	return s
}

func TestBuildScene(t *testing.T) {
	s := loadCourtyard(t)

	if s.Graph.State() != polynav.StateReady {
		t.Fatalf("expected a ready graph")
	}
	if !s.Blocked("cart") || s.Blocked("gate") {
		t.Fatalf("initial dynamic state wrong: cart=%v gate=%v", s.Blocked("cart"), s.Blocked("gate"))
	}
	if got := len(s.Graph.DynamicObstacles()); got != 1 {
		t.Fatalf("expected 1 active dynamic obstacle, got %d", got)
	}
	if names := s.DynamicNames(); len(names) != 2 || names[0] != "gate" || names[1] != "cart" {
		t.Fatalf("unexpected dynamic names %v", names)
	}

	src, err := s.Script()
	if err != nil || len(src) == 0 {
		t.Fatalf("expected the courtyard script, got %d bytes err=%v", len(src), err)
	}
}

func TestSceneGate(t *testing.T) {
	s := loadCourtyard(t)
	hero := cp.Vector{X: 120, Y: 520}
	goal := cp.Vector{X: 800, Y: 500}

	if p := s.FindPath(hero, goal); len(p) < 3 {
		t.Fatalf("expected a path around the notch, got %v", p)
	}

	if err := s.Block("gate"); err != nil {
		t.Fatalf("Block: %v", err)
	}
	if err := s.Block("gate"); err != nil {
		t.Fatalf("second Block should be a no-op: %v", err)
	}
	if got := len(s.Graph.DynamicObstacles()); got != 2 {
		t.Fatalf("expected 2 active dynamic obstacles, got %d", got)
	}
	if p := s.FindPath(hero, goal); len(p) != 0 {
		t.Fatalf("the gate should cut the courtyard in two, got %v", p)
	}
	if s.InLineOfSight(cp.Vector{X: 270, Y: 100}, cp.Vector{X: 310, Y: 100}) {
		t.Fatalf("expected the gate to block sight")
	}

	on, err := s.Toggle("gate")
	if err != nil || on {
		t.Fatalf("Toggle should open the gate, got on=%v err=%v", on, err)
	}
	if p := s.FindPath(hero, goal); len(p) < 3 {
		t.Fatalf("expected the path back, got %v", p)
	}
}

func TestSceneUnknownObstacle(t *testing.T) {
	s := loadCourtyard(t)
	if err := s.Block("moat"); !errors.Is(err, ErrUnknownObstacle) {
		t.Fatalf("expected ErrUnknownObstacle, got %v", err)
	}
	if err := s.Unblock("moat"); !errors.Is(err, ErrUnknownObstacle) {
		t.Fatalf("expected ErrUnknownObstacle, got %v", err)
	}
	if _, err := s.Toggle("moat"); !errors.Is(err, ErrUnknownObstacle) {
		t.Fatalf("expected ErrUnknownObstacle, got %v", err)
	}
}

func TestBuildSceneScale(t *testing.T) {
	spec, err := ParseSceneSpec([]byte(`
name: scaled
scale: 2
walk_zone:
  points: "0,0, 10,0, 10,10, 0,10"
dynamic:
  - name: box
    active: true
    points: "4,4, 6,4, 6,6, 4,6"
`))
	if err != nil {
		t.Fatalf("ParseSceneSpec: %v", err)
	}
	s, err := Build(spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if v := s.Graph.WalkZone().Vertex(2); v != (cp.Vector{X: 20, Y: 20}) {
		t.Fatalf("expected scaled walk zone, got %v", v)
	}
	box, _ := s.DynamicShape("box")
	if v := box.Vertex(0); v != (cp.Vector{X: 8, Y: 8}) {
		t.Fatalf("expected scaled obstacle, got %v", v)
	}
	if r := s.Graph.Route(nil, 2, 10, 18, 10); r.Status != polynav.StatusFound {
		t.Fatalf("expected the box to force a search, got %v", r.Status)
	}
}
