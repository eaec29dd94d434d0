package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
)

// ParsePolygon reads the compact "x0,y0,x1,y1,..." vertex form used in scene
// parameters. Whitespace around numbers is ignored.
func ParsePolygon(s string) (Polygon, error) {
	verts, err := ParseVertices(s)
	if err != nil {
		return Polygon{}, err
	}
	return NewPolygon(verts, Identity()), nil
}

// ParseVertices is ParsePolygon without building the polygon.
func ParseVertices(s string) ([]cp.Vector, error) {
	fields := strings.Split(s, ",")
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("%w: %q", ErrOddCoordinates, s)
	}
	if len(fields) < 6 {
		return nil, fmt.Errorf("%w: %q", ErrTooFewVertices, s)
	}
	verts := make([]cp.Vector, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidVertices, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidVertices, err)
		}
		verts = append(verts, cp.Vector{X: x, Y: y})
	}
	return verts, nil
}

// FormatPolygon writes the local vertices of p in ParsePolygon form.
func FormatPolygon(p Polygon) string {
	var sb strings.Builder
	for i, v := range p.local {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(v.X, 'g', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(v.Y, 'g', -1, 64))
	}
	return sb.String()
}
