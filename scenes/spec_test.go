package scenes

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/geom"
	"gopkg.in/yaml.v3"
)

func TestParseSceneSpec(t *testing.T) {
	data := []byte(`
name: test
walk_zone:
  points: "0,0, 10,0, 10,10, 0,10"
obstacles:
  - points: [[0, 0], [2, 0], [2, 2], [0, 2]]
    transform:
      x: 4
      y: 4
dynamic:
  - name: door
    active: true
    points: "1,1, 2,1, 2,2"
actors:
  - name: hero
    x: 1
    y: 1
    color: "#ff000080"
`)
	spec, err := ParseSceneSpec(data)
	if err != nil {
		t.Fatalf("ParseSceneSpec: %v", err)
	}

	if got := spec.WalkZone.Polygon(1); !got.Equal(geom.Rect(0, 0, 10, 10)) {
		t.Fatalf("unexpected walk zone %v", got.Vertices())
	}
	if got := spec.Obstacles[0].Polygon(1); !got.Equal(geom.Rect(4, 4, 6, 6)) {
		t.Fatalf("unexpected obstacle %v", got.Vertices())
	}
	if d := spec.Dynamic[0]; d.Name != "door" || !d.Active || len(d.Shape.Points) != 3 {
		t.Fatalf("unexpected dynamic obstacle %+v", d)
	}
	want := color.NRGBA{R: 255, A: 128}
	if got := spec.Actors[0].Color.Color; got != want {
		t.Fatalf("color = %v, want %v", got, want)
	}
}

func TestParseSceneSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
	}{
		{
			name: "walk_zone_too_small",
			data: "walk_zone:\n  points: [[0, 0], [1, 1]]\n",
			want: geom.ErrTooFewVertices,
		},
		{
			name: "odd_coordinates",
			data: "walk_zone:\n  points: \"0,0, 1,0, 1\"\n",
			want: geom.ErrOddCoordinates,
		},
		{
			name: "bad_pair",
			data: "walk_zone:\n  points: [[0, 0, 1], [1, 0], [1, 1]]\n",
			want: geom.ErrInvalidVertices,
		},
		{
			name: "duplicate_dynamic",
			data: "walk_zone:\n  points: \"0,0, 9,0, 9,9\"\ndynamic:\n  - name: a\n    points: \"1,1, 2,1, 2,2\"\n  - name: a\n    points: \"1,1, 2,1, 2,2\"\n",
			want: ErrDuplicateName,
		},
		{
			name: "duplicate_actor",
			data: "walk_zone:\n  points: \"0,0, 9,0, 9,9\"\nactors:\n  - name: a\n  - name: a\n",
			want: ErrDuplicateName,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseSceneSpec([]byte(c.data))
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: `"#102030"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{in: `"a0b0c0d0"`, want: color.NRGBA{R: 0xa0, G: 0xb0, B: 0xc0, A: 0xd0}},
		{in: `"#12"`, wantErr: true},
		{in: `"#zz0000"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("got %v, want %v", got.Color, c.want)
			}
		})
	}

	var unset *YAMLColor
	if unset.Or(color.White) != color.White {
		t.Fatalf("nil color should fall back")
	}
}

func TestLoadEmbeddedScene(t *testing.T) {
	if names := Names(); len(names) == 0 || names[0] != "courtyard" {
		t.Fatalf("expected courtyard among embedded scenes, got %v", names)
	}

	spec, err := LoadSceneSpec("courtyard")
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	if spec.Name != "courtyard" || len(spec.Obstacles) != 3 || len(spec.Dynamic) != 2 || len(spec.Actors) != 2 {
		t.Fatalf("unexpected courtyard spec %+v", spec)
	}
	if spec.Script != "courtyard" {
		t.Fatalf("expected courtyard script, got %q", spec.Script)
	}

	fountain := spec.Obstacles[0].Polygon(1)
	if !fountain.BB().ContainsVect(cp.Vector{X: 480, Y: 220}) {
		t.Fatalf("fountain not placed by its transform: %v", fountain.BB())
	}

	if _, err := LoadSceneSpec("missing"); err == nil || !strings.Contains(err.Error(), "scenes: load missing") {
		t.Fatalf("expected a load error, got %v", err)
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, scene, script string
	}{
		{"courtyard", "courtyard.yaml", "scripts/courtyard.tengo"},
		{"scenes/courtyard.yaml", "courtyard.yaml", "scripts/courtyard.yaml"},
		{"scripts/patrol.tengo", "scripts/patrol.tengo", "scripts/patrol.tengo"},
	}
	for _, c := range cases {
		if got := cleanScenePath(c.in); got != c.scene {
			t.Fatalf("cleanScenePath(%q) = %q, want %q", c.in, got, c.scene)
		}
		if got := cleanScriptPath(c.in); got != c.script {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.script)
		}
	}
}
