package sdf

import (
	"math"

	"github.com/soypat/sqnut/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// 2D signed distance function utility functions.

// SDF2 is the interface to a 2d signed distance function object.
type SDF2 interface {
	// Evaluate takes a point in 2D space as input and returns
	// the minimum distance of the SDF2 to the point. The distance
	// is negative if the point is contained within the SDF2.
	Evaluate(p r2.Vec) float64

	// Bounds returns the bounding box that completely contains the SDF2.
	Bounds() r2.Box
}

// polygon is an SDF2 made from a closed set of line segments.
type polygon struct {
	vertex []r2.Vec  // vertices, first vertex repeated at the end
	vector []r2.Vec  // unit line vectors
	length []float64 // line lengths
	bb     r2.Box
}

// Polygon returns an SDF2 made from a closed set of line segments.
// The loop is closed if the last vertex does not equal the first.
// Polygon panics if less than 3 vertices are passed.
func Polygon(vertex []r2.Vec) SDF2 {
	n := len(vertex)
	if n < 3 {
		panic("number of vertices < 3")
	}
	s := polygon{}
	s.vertex = append(make([]r2.Vec, 0, n+1), vertex...)
	if !d2.EqualWithin(vertex[0], vertex[n-1], tolerance) {
		s.vertex = append(s.vertex, vertex[0])
	}
	nsegs := len(s.vertex) - 1
	s.vector = make([]r2.Vec, nsegs)
	s.length = make([]float64, nsegs)
	for i := 0; i < nsegs; i++ {
		l := r2.Sub(s.vertex[i+1], s.vertex[i])
		s.length[i] = r2.Norm(l)
		if s.length[i] < tolerance {
			panic("polygon has coincident consecutive vertices")
		}
		s.vector[i] = r2.Unit(l)
	}
	s.bb = d2.Set(s.vertex).Bounds()
	return &s
}

// Evaluate returns the minimum distance for a 2d polygon.
func (s *polygon) Evaluate(p r2.Vec) float64 {
	dd := math.MaxFloat64 // d^2 to polygon (>0)
	wn := 0               // winding number (inside/outside)
	nsegs := len(s.vertex) - 1
	pb := r2.Sub(p, s.vertex[0])
	for i := 0; i < nsegs; i++ {
		a := s.vertex[i]
		b := s.vertex[i+1]
		pa := pb
		pb = r2.Sub(p, b)
		t := r2.Dot(pa, s.vector[i])                                  // t-parameter of projection onto line
		dn := r2.Dot(pa, r2.Vec{X: s.vector[i].Y, Y: -s.vector[i].X}) // normal distance from p to line

		switch {
		case t < 0:
			dd = math.Min(dd, r2.Norm2(pa))
		case t > s.length[i]:
			dd = math.Min(dd, r2.Norm2(pb))
		default:
			dd = math.Min(dd, dn*dn)
		}
		// See: http://geomalgorithms.com/a03-_inclusion.html
		if a.Y <= p.Y {
			if b.Y > p.Y && dn < 0 {
				wn++ // upward crossing, p left of segment.
			}
		} else if b.Y <= p.Y && dn > 0 {
			wn-- // downward crossing, p right of segment.
		}
	}
	d := math.Sqrt(dd)
	if wn != 0 {
		return -d
	}
	return d
}

// Bounds returns the bounding box of a 2d polygon.
func (s *polygon) Bounds() r2.Box {
	return s.bb
}

// circle is the 2d signed distance object for a circle.
type circle struct {
	radius float64
	bb     r2.Box
}

// Circle returns the SDF2 for a 2d circle centered at the origin.
func Circle(radius float64) SDF2 {
	if radius <= 0 {
		panic("radius <= 0")
	}
	d := d2.Elem(radius)
	return &circle{radius: radius, bb: r2.Box{Min: r2.Scale(-1, d), Max: d}}
}

// Evaluate returns the minimum distance to a 2d circle.
func (s *circle) Evaluate(p r2.Vec) float64 {
	return r2.Norm(p) - s.radius
}

// Bounds returns the bounding box of a 2d circle.
func (s *circle) Bounds() r2.Box {
	return s.bb
}

// diff2 is the difference of two SDF2s.
type diff2 struct {
	s0 SDF2
	s1 SDF2
	bb r2.Box
}

// Difference2D returns the difference of two SDF2 objects, s0 - s1.
// Difference2D panics if an argument is nil.
func Difference2D(s0, s1 SDF2) SDF2 {
	if s0 == nil || s1 == nil {
		panic("nil SDF2 argument")
	}
	return &diff2{s0: s0, s1: s1, bb: s0.Bounds()}
}

// Evaluate returns the minimum distance to the SDF2 difference.
func (s *diff2) Evaluate(p r2.Vec) float64 {
	return math.Max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// Bounds returns the bounding box of the SDF2 difference.
func (s *diff2) Bounds() r2.Box {
	return s.bb
}
