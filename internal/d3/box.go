package d3

import "gonum.org/v1/gonum/spatial/r3"

// Box is a 3d bounding box.
type Box r3.Box

// Extend returns a box enclosing two 3d boxes.
func (a Box) Extend(b Box) Box {
	return Box{Min: MinElem(a.Min, b.Min), Max: MaxElem(a.Max, b.Max)}
}

// Translate translates a 3d box.
func (a Box) Translate(v r3.Vec) Box {
	return Box{Min: r3.Add(a.Min, v), Max: r3.Add(a.Max, v)}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Center returns the center of a 3d box.
func (a Box) Center() r3.Vec {
	return r3.Add(a.Min, r3.Scale(0.5, a.Size()))
}

// ScaleAboutCenter returns a new 3d box scaled about the center of a box.
func (a Box) ScaleAboutCenter(k float64) Box {
	c := a.Center()
	half := r3.Scale(0.5*k, a.Size())
	return Box{Min: r3.Sub(c, half), Max: r3.Add(c, half)}
}

// Contains checks if the 3d box contains the given vector (considering bounds).
func (a Box) Contains(v r3.Vec) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y && a.Min.Z <= v.Z &&
		v.X <= a.Max.X && v.Y <= a.Max.Y && v.Z <= a.Max.Z
}
