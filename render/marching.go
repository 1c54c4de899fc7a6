package render

import (
	"errors"
	"io"

	xrender "github.com/deadsy/sdfx/render"
	"github.com/soypat/sqnut/kernel/sdfx"
	"github.com/soypat/sqnut/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateTol is the vertex distance below which marching cube triangles are dropped.
const degenerateTol = 1e-12

type marchingCubes struct {
	s     sdf.SDF3
	cells int
	done  bool
	b     triangle3Buffer
}

// NewMarchingCubes returns a Renderer that meshes s with uniform marching
// cubes, using cells cubes along the longest side of its bounding box.
// The mesh is computed on the first call to ReadTriangles.
func NewMarchingCubes(s sdf.SDF3, cells int) (Renderer, error) {
	if s == nil {
		return nil, errors.New("nil SDF3")
	}
	if cells < 2 {
		return nil, errors.New("marching cubes need at least 2 cells")
	}
	return &marchingCubes{s: s, cells: cells}, nil
}

func (m *marchingCubes) ReadTriangles(t []Triangle3) (int, error) {
	if !m.done {
		m.mesh()
		m.done = true
	}
	if m.b.Len() == 0 {
		return 0, io.EOF
	}
	return m.b.Read(t), nil
}

func (m *marchingCubes) mesh() {
	r := xrender.NewMarchingCubesUniform(m.cells)
	for _, tri := range xrender.ToTriangles(sdfx.To3(m.s), r) {
		var t Triangle3
		for j := 0; j < 3; j++ {
			v := tri[j]
			t.V[j] = r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
		}
		if t.Degenerate(degenerateTol) {
			continue
		}
		m.b.Write([]Triangle3{t})
	}
}
