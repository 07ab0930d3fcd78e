package render

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/verso/internal/geom"
)

// earClip triangulates a simple polygon using the earcut algorithm, returning
// one [3]geom.Point per triangle.
func earClip(polygon []geom.Point) ([][3]geom.Point, error) {
	if len(polygon) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(polygon))
	}

	// Format: [x0, y0, x1, y1, ..., xn, yn]
	coords := make([]float64, 0, len(polygon)*2)
	for _, p := range polygon {
		coords = append(coords, p.X, p.Y)
	}

	indices, err := earcut.Earcut(coords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulating %d-vertex polygon: %w", len(polygon), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(indices))
	}

	triangles := make([][3]geom.Point, len(indices)/3)
	for i := range triangles {
		for v := 0; v < 3; v++ {
			j := indices[i*3+v]
			triangles[i][v] = geom.Point{X: coords[j*2], Y: coords[j*2+1]}
		}
	}
	return triangles, nil
}
