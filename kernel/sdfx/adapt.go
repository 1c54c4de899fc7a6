package sdfx

import (
	xsdf "github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/sqnut/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// native3 presents an sdfx SDF3 as an sdf.SDF3.
type native3 struct {
	s xsdf.SDF3
}

func (n native3) Evaluate(p r3.Vec) float64 { return n.s.Evaluate(toV3(p)) }

func (n native3) Bounds() r3.Box {
	bb := n.s.BoundingBox()
	return r3.Box{Min: fromV3(bb.Min), Max: fromV3(bb.Max)}
}

// foreign3 presents an sdf.SDF3 as an sdfx SDF3.
type foreign3 struct {
	s sdf.SDF3
}

func (f foreign3) Evaluate(p v3.Vec) float64 { return f.s.Evaluate(fromV3(p)) }

func (f foreign3) BoundingBox() xsdf.Box3 {
	bb := f.s.Bounds()
	return xsdf.Box3{Min: toV3(bb.Min), Max: toV3(bb.Max)}
}

// foreign2 presents an sdf.SDF2 as an sdfx SDF2.
type foreign2 struct {
	s sdf.SDF2
}

func (f foreign2) Evaluate(p v2.Vec) float64 { return f.s.Evaluate(r2.Vec{X: p.X, Y: p.Y}) }

func (f foreign2) BoundingBox() xsdf.Box2 {
	bb := f.s.Bounds()
	return xsdf.Box2{Min: toV2(bb.Min), Max: toV2(bb.Max)}
}

// From3 returns s as an sdf.SDF3.
func From3(s xsdf.SDF3) sdf.SDF3 {
	if f, ok := s.(foreign3); ok {
		return f.s
	}
	return native3{s: s}
}

// To3 returns s as an sdfx SDF3. Solids made by this package are
// unwrapped instead of being evaluated through an adapter.
func To3(s sdf.SDF3) xsdf.SDF3 {
	if n, ok := s.(native3); ok {
		return n.s
	}
	return foreign3{s: s}
}

// To2 returns s as an sdfx SDF2.
func To2(s sdf.SDF2) xsdf.SDF2 {
	return foreign2{s: s}
}

func toV2(v r2.Vec) v2.Vec   { return v2.Vec{X: v.X, Y: v.Y} }
func toV3(v r3.Vec) v3.Vec   { return v3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
func fromV3(v v3.Vec) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func toV2Set(vs []r2.Vec) []v2.Vec {
	out := make([]v2.Vec, len(vs))
	for i, v := range vs {
		out[i] = toV2(v)
	}
	return out
}
