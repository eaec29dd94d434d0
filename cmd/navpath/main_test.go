package main

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func runRoute(t *testing.T, args ...string) routeOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := run(args, &buf); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	var out routeOutput
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal output %q: %v", buf.String(), err)
	}
	return out
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		status  string
		points  int
		clamped bool
		target  [2]float64
	}{
		{
			name:   "direct",
			args:   []string{"-from", "60,560", "-to", "120,560"},
			status: "direct",
			points: 2,
			target: [2]float64{120, 560},
		},
		{
			name:    "clamped_target",
			args:    []string{"-from", "60,560", "-to", "60,700"},
			status:  "direct",
			points:  2,
			clamped: true,
			target:  [2]float64{60, 600},
		},
		{
			name:   "gate_blocks",
			args:   []string{"-from", "100,300", "-to", "800,300", "-block", "gate"},
			status: "unreachable",
			target: [2]float64{800, 300},
		},
		{
			name:   "invalid_start",
			args:   []string{"-from", "0,0", "-to", "100,100"},
			status: "invalid start",
			target: [2]float64{100, 100},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := runRoute(t, tc.args...)
			if out.Status != tc.status {
				t.Fatalf("expected status %q, got %q", tc.status, out.Status)
			}
			if tc.points > 0 && len(out.Points) != tc.points {
				t.Fatalf("expected %d points, got %v", tc.points, out.Points)
			}
			if tc.points == 0 && len(out.Points) != 0 {
				t.Fatalf("expected no points, got %v", out.Points)
			}
			if out.Clamped != tc.clamped {
				t.Fatalf("expected clamped=%v", tc.clamped)
			}
			if math.Abs(out.Target[0]-tc.target[0]) > 1e-9 || math.Abs(out.Target[1]-tc.target[1]) > 1e-9 {
				t.Fatalf("expected target %v, got %v", tc.target, out.Target)
			}
			if tc.clamped && out.Points[len(out.Points)-1] != out.Target {
				t.Fatalf("path should end at the clamped target, got %v", out.Points)
			}
		})
	}
}

func TestRunAroundNotch(t *testing.T) {
	out := runRoute(t, "-from", "120,520", "-to", "800,520")
	if out.Status != "found" || len(out.Points) < 3 {
		t.Fatalf("expected a searched path, got %+v", out)
	}
	first, last := out.Points[0], out.Points[len(out.Points)-1]
	if first != [2]float64{120, 520} || last != [2]float64{800, 520} {
		t.Fatalf("path should run from start to target, got %v", out.Points)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courtyard.snap.yaml")
	if err := run([]string{"-snapshot", path}, &bytes.Buffer{}); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	fromScene := runRoute(t, "-from", "120,520", "-to", "800,520")
	fromFile := runRoute(t, "-file", path, "-from", "120,520", "-to", "800,520")
	if fromFile.Status != "found" {
		t.Fatalf("expected the snapshot graph to route, got %+v", fromFile)
	}
	if len(fromScene.Points) == 0 || len(fromFile.Points) == 0 {
		t.Fatalf("expected paths from both sources")
	}

	if err := run([]string{"-file", path, "-block", "gate"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected -block to be rejected for snapshots")
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"1,2", false},
		{" 3.5 , -4 ", false},
		{"1", true},
		{"a,2", true},
		{"1,b", true},
	}
	for _, tc := range tests {
		_, err := parsePoint(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("parsePoint(%q) err=%v, wantErr=%v", tc.in, err, tc.wantErr)
		}
		if err != nil && !errors.Is(err, errBadPoint) {
			t.Fatalf("expected errBadPoint, got %v", err)
		}
	}
}
