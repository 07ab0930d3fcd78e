package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/verso/internal/geom"
)

// floatsPerVertex is the vertex layout shared with the shaders: position (x,
// y) followed by color (r, g, b, a).
const floatsPerVertex = 6

// Quad is a filled rectangle in window points.
type Quad struct {
	Frame     geom.Box
	Transform geom.Affine // applied about the center of Frame
	Color     colorful.Color
	Alpha     float64
}

// Corners returns the transformed corners of the quad, clockwise from the
// top-left one.
func (q Quad) Corners() []geom.Point {
	corners := []geom.Point{
		{X: q.Frame.MinX(), Y: q.Frame.MinY()},
		{X: q.Frame.MaxX(), Y: q.Frame.MinY()},
		{X: q.Frame.MaxX(), Y: q.Frame.MaxY()},
		{X: q.Frame.MinX(), Y: q.Frame.MaxY()},
	}
	if q.Transform == (geom.Affine{}) || q.Transform.IsIdentity() {
		return corners
	}

	mid := q.Frame.Mid()
	t := geom.Translation(mid.X, mid.Y).Mul(q.Transform.Mul(geom.Translation(-mid.X, -mid.Y)))
	for i, p := range corners {
		corners[i] = t.MulPoint(p)
	}
	return corners
}

// visible reports whether the quad would paint anything.
func (q Quad) visible() bool {
	return q.Alpha > 0 && !q.Frame.IsEmpty()
}

// Vertices triangulates the quads, back to front, into interleaved vertex
// data. Invisible quads are skipped.
func Vertices(quads []Quad) []float32 {
	vertices := make([]float32, 0, len(quads)*6*floatsPerVertex)
	for _, q := range quads {
		if !q.visible() {
			continue
		}

		triangles, err := earClip(q.Corners())
		if err != nil {
			renderLogger.Printf("skipping quad %v: %v", q.Frame, err)
			continue
		}

		c := q.Color.Clamped()
		for _, tri := range triangles {
			for _, p := range tri {
				vertices = append(vertices,
					float32(p.X), float32(p.Y), // position
					float32(c.R), float32(c.G), float32(c.B), float32(q.Alpha), // color
				)
			}
		}
	}
	return vertices
}
