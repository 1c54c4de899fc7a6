// Package render turns solids into triangle meshes and writes them out as
// binary STL files or preview images.
package render

import (
	"github.com/soypat/sqnut/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle. Vertices are counter-clockwise seen from
// outside the solid.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate reports whether two vertices of t are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t.V[0], t.V[1], tol) ||
		d3.EqualWithin(t.V[1], t.V[2], tol) ||
		d3.EqualWithin(t.V[2], t.V[0], tol)
}

// Renderer produces the triangles of a mesh. ReadTriangles returns io.EOF
// once all triangles have been read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Bounds returns the bounding box of a mesh.
func Bounds(model []Triangle3) r3.Box {
	if len(model) == 0 {
		return r3.Box{}
	}
	bb := r3.Box{Min: model[0].V[0], Max: model[0].V[0]}
	for _, t := range model {
		for _, v := range t.V {
			bb.Min = d3.MinElem(bb.Min, v)
			bb.Max = d3.MaxElem(bb.Max, v)
		}
	}
	return bb
}
