package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Set is a set of 2D points, usually polygon vertices.
type Set []r2.Vec

func Elem(v float64) r2.Vec {
	return r2.Vec{X: v, Y: v}
}

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Rotate rotates a about the origin by theta radians counter clockwise.
func Rotate(a r2.Vec, theta float64) r2.Vec {
	s, c := math.Sincos(theta)
	return r2.Vec{X: c*a.X - s*a.Y, Y: s*a.X + c*a.Y}
}

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Bounds returns the smallest box containing all points of the set.
func (a Set) Bounds() r2.Box {
	return r2.Box{Min: a.Min(), Max: a.Max()}
}
