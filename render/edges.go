package render

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ kdtree.Comparable = weldPoint{}

// Edge is a mesh edge between two welded vertices.
type Edge struct {
	A, B r3.Vec
	// Faces is the number of triangles sharing the edge.
	Faces int
}

// OpenEdges returns the edges of model not shared by exactly two
// triangles. Vertices closer than tol are welded together first. A closed
// manifold mesh has no open edges.
func OpenEdges(model []Triangle3, tol float64) []Edge {
	w := newWelder(tol)
	type key struct{ a, b int }
	faces := make(map[key]int)
	for _, t := range model {
		var id [3]int
		for i, v := range t.V {
			id[i] = w.weld(v)
		}
		for i := 0; i < 3; i++ {
			a, b := id[i], id[(i+1)%3]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			faces[key{a, b}]++
		}
	}
	var open []Edge
	for k, n := range faces {
		if n != 2 {
			open = append(open, Edge{A: w.points[k.a], B: w.points[k.b], Faces: n})
		}
	}
	sort.Slice(open, func(i, j int) bool {
		return lessVec(open[i].A, open[j].A) || (open[i].A == open[j].A && lessVec(open[i].B, open[j].B))
	})
	return open
}

func lessVec(a, b r3.Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// welder merges vertices that lie within tol of a previously seen vertex.
type welder struct {
	tol2   float64
	tree   kdtree.Tree
	points []r3.Vec
}

func newWelder(tol float64) *welder {
	return &welder{tol2: tol * tol}
}

func (w *welder) weld(v r3.Vec) int {
	q := weldPoint{v: v}
	if w.tree.Count > 0 {
		got, d2 := w.tree.Nearest(q)
		if got != nil && d2 <= w.tol2 {
			return got.(weldPoint).id
		}
	}
	q.id = len(w.points)
	w.points = append(w.points, v)
	w.tree.Insert(q, false)
	return q.id
}

type weldPoint struct {
	v  r3.Vec
	id int
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a weldPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	bv := b.(weldPoint).v
	switch d {
	case 0:
		return a.v.X - bv.X
	case 1:
		return a.v.Y - bv.Y
	case 2:
		return a.v.Z - bv.Z
	}
	return math.NaN()
}

// Dims returns the number of dimensions described in the Comparable.
func (a weldPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a weldPoint) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.v, b.(weldPoint).v))
}
