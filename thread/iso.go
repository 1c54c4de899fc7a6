package thread

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/sqnut/form2"
	"github.com/soypat/sqnut/sdf"
)

// ISO is a standardized metric thread as cut into a nut.
// Pitch is usually the number following the diameter
// i.e: for M16x2 the pitch is 2mm
type ISO struct {
	// D is the thread nominal diameter [mm].
	D float64
	// P is the thread pitch [mm].
	P float64
}

var _ Threader = ISO{} // Compile time check of interface implementation.

func (iso ISO) Parameters() Parameters {
	return Parameters{
		Name:   fmt.Sprintf("M%gx%g", iso.D, iso.P),
		Radius: iso.D / 2,
		Pitch:  iso.P,
		Starts: 1,
	}
}

// height is the height of the fundamental triangle.
func (iso ISO) height() float64 {
	return iso.P / (2.0 * math.Tan(30.0*math.Pi/180.))
}

// MinorRadius is the radius of the nut bore, D1/2.
func (iso ISO) MinorRadius() float64 {
	return iso.D/2 - (5.0/8.0)*iso.height()
}

// CrestRadius is the largest radius the cutting profile reaches.
func (iso ISO) CrestRadius() float64 { return iso.D / 2 }

// Thread returns the profile of the material removed from a nut to form
// the thread: a core out to the minor radius with a tooth reaching the
// major radius. The tooth is truncated at the major diameter with a P/8
// flat, which is the basic profile of the nut thread root.
func (iso ISO) Thread() (sdf.SDF2, error) {
	if iso.D <= 0 || iso.P <= 0 {
		return nil, errors.New("ISO thread needs positive diameter and pitch")
	}
	rMinor := iso.MinorRadius()
	if rMinor <= 0 {
		return nil, errors.New("ISO thread pitch too coarse for diameter")
	}
	rMajor := iso.CrestRadius()
	xRoot := (3.0 / 8.0) * iso.P  // tooth half width at the minor radius
	xCrest := (1.0 / 16.0) * iso.P // half of the crest flat
	// The core extends past the axis so points on it evaluate inside.
	poly := form2.NewFaceMaker().
		AddPoint(iso.P, -rMinor).
		AddPoint(iso.P, rMinor).
		AddPoint(xRoot, rMinor).
		AddPoint(xCrest, rMajor).
		AddPoint(-xCrest, rMajor).
		AddPoint(-xRoot, rMinor).
		AddPoint(-iso.P, rMinor).
		AddPoint(-iso.P, -rMinor)
	face, err := poly.Face()
	if err != nil {
		return nil, err
	}
	return face, nil
}
