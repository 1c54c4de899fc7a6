package nut

import (
	"errors"
	"math"

	"github.com/soypat/sqnut/form2"
	"github.com/soypat/sqnut/internal/d2"
	"github.com/soypat/sqnut/kernel"
	"gonum.org/v1/gonum/spatial/r2"
)

// Profile returns the half cross section of a square nut blank in the
// (radius, z) plane, to be revolved about z.
//
// do, di and the washer diameter are diameters while s is used as the
// outer radius of the blank, leaving room for the square corners. The bore
// gets a 45 degree chamfer from do down to di at both ends. A washer face
// adds a 30 degree cone that meets the top face at the washer radius.
//
// With shellOnly set the bore chamfer points are left out and an open
// wire is returned; a thread shell is expected to close it.
func Profile(do, di float64, washer WasherFace, s, m float64, shellOnly bool) (form2.Profile, error) {
	tan30 := math.Tan(math.Pi / 6)
	do /= 2
	di /= 2
	ch1 := do - di

	fm := form2.NewFaceMaker()
	if !shellOnly {
		fm.AddPoint(di, ch1)
	}
	fm.AddPoint(do, 0).AddPoint(s, 0)
	if dw, ok := washer.Diameter(); ok {
		dw /= 2
		ch2 := (s - dw) * tan30
		fm.AddPoint(s, m-ch2).AddPoint(dw, m)
	} else {
		fm.AddPoint(s, m)
	}
	fm.AddPoint(do, m)
	if shellOnly {
		return fm.Wire()
	}
	fm.AddPoint(di, m-ch1)
	return fm.Face()
}

// SquareTool returns a cutting tool that trims a revolved nut blank down
// to a square of width s across flats. The tool is a disc of radius 3s with
// a square hole, extruded from -0.1m to 1.1m.
func SquareTool(k kernel.Kernel, s, m float64) (kernel.Solid, error) {
	if s <= 0 || m <= 0 {
		return kernel.Solid{}, errors.New("square tool needs positive width and height")
	}
	fm := form2.NewFaceMaker()
	v := r2.Vec{X: s / 2, Y: s / 2}
	for i := 0; i < 4; i++ {
		fm.AddPoints(v)
		v = d2.Rotate(v, math.Pi/2)
	}
	fm.AddPoints(v)
	square, err := fm.Face()
	if err != nil {
		return kernel.Solid{}, err
	}
	disc, err := form2.Circle(3 * s)
	if err != nil {
		return kernel.Solid{}, err
	}
	region, err := form2.Difference(disc, square)
	if err != nil {
		return kernel.Solid{}, err
	}
	return k.ExtrudeZ(region, -0.1*m, 1.2*m)
}
