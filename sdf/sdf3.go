package sdf

import (
	"math"

	"github.com/soypat/sqnut/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// 3D signed distance utility functions.

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}

// revolution3 solid of revolution, SDF2 to SDF3.
type revolution3 struct {
	sdf SDF2
	bb  r3.Box
}

// Revolve3D returns an SDF3 for a full solid of revolution about the z axis.
// The 2D x axis maps to the radius and the 2D y axis maps to z.
func Revolve3D(sdf SDF2) SDF3 {
	if sdf == nil {
		panic("nil SDF2 argument")
	}
	bb := sdf.Bounds()
	l := math.Max(math.Abs(bb.Min.X), math.Abs(bb.Max.X))
	return &revolution3{
		sdf: sdf,
		bb:  r3.Box{Min: r3.Vec{X: -l, Y: -l, Z: bb.Min.Y}, Max: r3.Vec{X: l, Y: l, Z: bb.Max.Y}},
	}
}

// Evaluate returns the minimum distance to a solid of revolution.
func (s *revolution3) Evaluate(p r3.Vec) float64 {
	x := math.Hypot(p.X, p.Y)
	return s.sdf.Evaluate(r2.Vec{X: x, Y: p.Z})
}

// Bounds returns the bounding box for a solid of revolution.
func (s *revolution3) Bounds() r3.Box {
	return s.bb
}

// extrude3 extrudes an SDF2 to an SDF3.
type extrude3 struct {
	sdf    SDF2
	height float64 // half height
	bb     r3.Box
}

// Extrude3D does a linear extrude on an SDF2. The result is centered on z=0.
func Extrude3D(sdf SDF2, height float64) SDF3 {
	if sdf == nil {
		panic("nil SDF2 argument")
	}
	if height <= 0 {
		panic("height <= 0")
	}
	s := extrude3{sdf: sdf, height: height / 2}
	bb := sdf.Bounds()
	s.bb = r3.Box{Min: d3.FromR2(bb.Min, -s.height), Max: d3.FromR2(bb.Max, s.height)}
	return &s
}

// Evaluate returns the minimum distance to an extrusion.
func (s *extrude3) Evaluate(p r3.Vec) float64 {
	// sdf for the projected 2d surface
	a := s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	// sdf for the extrusion region: z = [-height, height]
	b := math.Abs(p.Z) - s.height
	return math.Max(a, b)
}

// Bounds returns the bounding box for an extrusion.
func (s *extrude3) Bounds() r3.Box {
	return s.bb
}

// translate3 is an SDF3 moved by a fixed offset.
type translate3 struct {
	sdf SDF3
	v   r3.Vec
	bb  r3.Box
}

// Translate3D moves an SDF3 by v. Distance is preserved.
func Translate3D(sdf SDF3, v r3.Vec) SDF3 {
	if sdf == nil {
		panic("nil SDF3 argument")
	}
	if t, ok := sdf.(*translate3); ok {
		// Collapse nested translations.
		sdf, v = t.sdf, r3.Add(t.v, v)
	}
	return &translate3{sdf: sdf, v: v, bb: r3.Box(d3.Box(sdf.Bounds()).Translate(v))}
}

// Evaluate returns the minimum distance to a translated SDF3.
func (s *translate3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(r3.Sub(p, s.v))
}

// Bounds returns the bounding box of a translated SDF3.
func (s *translate3) Bounds() r3.Box {
	return s.bb
}

// union3 is a union of SDF3s.
type union3 struct {
	sdf []SDF3
	bb  r3.Box
}

// Union3D returns the union of multiple SDF3 objects.
// Union3D will panic if arguments list is empty or if
// an argument SDF3 is nil.
func Union3D(sdf ...SDF3) SDF3 {
	if len(sdf) == 0 {
		panic("empty SDF3 union")
	}
	for _, s := range sdf {
		if s == nil {
			panic("nil SDF3 argument")
		}
	}
	if len(sdf) == 1 {
		return sdf[0]
	}
	s := union3{sdf: sdf}
	bb := d3.Box(sdf[0].Bounds())
	for _, x := range sdf[1:] {
		bb = bb.Extend(d3.Box(x.Bounds()))
	}
	s.bb = r3.Box(bb)
	return &s
}

// Evaluate returns the minimum distance to an SDF3 union.
func (s *union3) Evaluate(p r3.Vec) float64 {
	d := math.MaxFloat64
	for _, x := range s.sdf {
		d = math.Min(d, x.Evaluate(p))
	}
	return d
}

// Bounds returns the bounding box of an SDF3 union.
func (s *union3) Bounds() r3.Box {
	return s.bb
}

// diff3 is the difference of two SDF3s, s0 - s1.
type diff3 struct {
	s0 SDF3
	s1 SDF3
	bb r3.Box
}

// Difference3D returns the difference of two SDF3s, s0 - s1.
// Difference3D will panic if one any of the arguments is nil.
func Difference3D(s0, s1 SDF3) SDF3 {
	if s0 == nil || s1 == nil {
		panic("nil SDF3 argument")
	}
	return &diff3{s0: s0, s1: s1, bb: s0.Bounds()}
}

// Evaluate returns the minimum distance to the SDF3 difference.
func (s *diff3) Evaluate(p r3.Vec) float64 {
	return math.Max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// Bounds returns the bounding box of the SDF3 difference.
func (s *diff3) Bounds() r3.Box {
	return s.bb
}
