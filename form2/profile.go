package form2

import (
	"errors"

	"github.com/soypat/sqnut/internal/d2"
	"github.com/soypat/sqnut/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

// Profile is an ordered set of vertices in the (radius, height) plane
// used to build solids of revolution.
type Profile interface {
	// Vertices returns a copy of the profile vertices in the order they were added.
	Vertices() []r2.Vec
	// Closed reports whether the last vertex connects back to the first.
	Closed() bool
}

var (
	_ Profile  = (*Face)(nil)
	_ Profile  = (*Wire)(nil)
	_ sdf.SDF2 = (*Face)(nil)
)

// Face is a closed planar region bounded by a polygon.
type Face struct {
	sdf.SDF2
	vertices []r2.Vec
}

func (f *Face) Vertices() []r2.Vec { return append([]r2.Vec(nil), f.vertices...) }
func (f *Face) Closed() bool       { return true }

// Wire is an open polyline. It bounds no region by itself.
type Wire struct {
	vertices []r2.Vec
}

func (w *Wire) Vertices() []r2.Vec { return append([]r2.Vec(nil), w.vertices...) }
func (w *Wire) Closed() bool       { return false }

// Gap returns the segment that would close the wire, from its last
// vertex back to its first.
func (w *Wire) Gap() (from, to r2.Vec) {
	return w.vertices[len(w.vertices)-1], w.vertices[0]
}

// FaceMaker accumulates ordered points and emits either an open Wire
// or a closed Face from them.
type FaceMaker struct {
	vertices []r2.Vec
}

// NewFaceMaker returns an empty FaceMaker.
func NewFaceMaker() *FaceMaker {
	return &FaceMaker{}
}

// AddPoint appends a vertex. Consecutive duplicate points are dropped.
func (m *FaceMaker) AddPoint(x, y float64) *FaceMaker {
	v := r2.Vec{X: x, Y: y}
	if n := len(m.vertices); n > 0 && d2.EqualWithin(m.vertices[n-1], v, tolerance) {
		return m
	}
	m.vertices = append(m.vertices, v)
	return m
}

// AddPoints appends vertices in order.
func (m *FaceMaker) AddPoints(pts ...r2.Vec) *FaceMaker {
	for _, p := range pts {
		m.AddPoint(p.X, p.Y)
	}
	return m
}

// Len returns the number of vertices added so far.
func (m *FaceMaker) Len() int { return len(m.vertices) }

// Wire returns the accumulated vertices as an open polyline.
func (m *FaceMaker) Wire() (*Wire, error) {
	if len(m.vertices) < 2 {
		return nil, errors.New("wire needs at least 2 vertices")
	}
	return &Wire{vertices: m.Vertices()}, nil
}

// Face closes the accumulated vertices into a polygonal face.
func (m *FaceMaker) Face() (*Face, error) {
	poly, err := Polygon(m.vertices)
	if err != nil {
		return nil, err
	}
	return &Face{SDF2: poly, vertices: m.Vertices()}, nil
}

// Vertices returns a copy of the accumulated vertices.
func (m *FaceMaker) Vertices() []r2.Vec {
	return append([]r2.Vec(nil), m.vertices...)
}
