// Command navpath answers a single path query against a scene or a saved
// graph snapshot and prints the route as YAML.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/polynav"
	"github.com/milk9111/walkzone/scenes"
	"gopkg.in/yaml.v3"
)

type routeOutput struct {
	Status  string       `yaml:"status"`
	Clamped bool         `yaml:"clamped,omitempty"`
	Target  [2]float64   `yaml:"target"`
	Points  [][2]float64 `yaml:"points"`
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("navpath: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("navpath", flag.ContinueOnError)
	sceneName := fs.String("scene", "courtyard", "scene name in scenes/ (basename, .yaml optional)")
	file := fs.String("file", "", "graph snapshot to load instead of a scene")
	from := fs.String("from", "", "start point as x,y")
	to := fs.String("to", "", "target point as x,y")
	block := fs.String("block", "", "comma separated dynamic obstacles to activate (scenes only)")
	snapshot := fs.String("snapshot", "", "write the static graph snapshot to this path")
	scale := fs.Float64("scale", 1, "scale applied to snapshot geometry")
	unitCost := fs.Bool("unit-cost", false, "charge 1 per edge, preferring fewer turns over shorter paths")
	debug := fs.Bool("debug", false, "log graph construction and searches to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := []polynav.Option{polynav.WithDebug(*debug)}
	if *unitCost {
		opts = append(opts, polynav.WithUnitCost())
	}

	g, err := loadGraph(*sceneName, *file, *block, *scale, opts)
	if err != nil {
		return err
	}

	if *snapshot != "" {
		data, err := scenes.EncodeGraph(g)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*snapshot, data, 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	if *from == "" && *to == "" {
		return nil
	}
	start, err := parsePoint(*from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	target, err := parsePoint(*to)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}

	r := g.Route(nil, start.X, start.Y, target.X, target.Y)
	out := routeOutput{
		Status:  r.Status.String(),
		Clamped: r.Clamped,
		Target:  [2]float64{r.Target.X, r.Target.Y},
		Points:  make([][2]float64, 0, len(r.Points)),
	}
	for _, p := range r.Points {
		out.Points = append(out.Points, [2]float64{p.X, p.Y})
	}

	enc := yaml.NewEncoder(stdout)
	defer enc.Close()
	return enc.Encode(&out)
}

func loadGraph(sceneName, file, block string, scale float64, opts []polynav.Option) (*polynav.Graph, error) {
	if file != "" {
		if block != "" {
			return nil, errors.New("-block needs a scene, snapshots carry no dynamic obstacles")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		return scenes.DecodeGraph(data, scale, opts...)
	}

	scene, err := scenes.LoadScene(sceneName, opts...)
	if err != nil {
		return nil, err
	}
	for _, name := range strings.Split(block, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := scene.Block(name); err != nil {
			return nil, err
		}
	}
	return scene.Graph, nil
}

var errBadPoint = errors.New("expected x,y")

func parsePoint(s string) (cp.Vector, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return cp.Vector{}, fmt.Errorf("%w: %q", errBadPoint, s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return cp.Vector{}, fmt.Errorf("%w: %q", errBadPoint, s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return cp.Vector{}, fmt.Errorf("%w: %q", errBadPoint, s)
	}
	return cp.Vector{X: x, Y: y}, nil
}
