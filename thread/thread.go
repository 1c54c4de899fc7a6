// Package thread builds helical screw threads.
//
// Screws are made by taking a 2D thread profile, rotating it about the z-axis and
// spiralling it upwards as we move along z.
//
// The 2D thread profiles are a polygon of a single thread centered on the y-axis with
// the x-axis as the screw axis. The profile spans an entire pitch period either side
// of the y-axis so the screw evaluates correctly near the period boundaries.
//
// This code doesn't deal with thread tolerancing.
package thread

import (
	"errors"
	"math"

	"github.com/soypat/sqnut/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type Threader interface {
	Thread() (sdf.SDF2, error)
	Parameters() Parameters
}

type Parameters struct {
	Name   string  // name of screw thread
	Radius float64 // nominal major radius of screw
	Pitch  float64 // thread to thread distance of screw
	Starts int     // number of threads, negative for left hand
}

// screw is a 3d screw form.
type screw struct {
	thread sdf.SDF2 // 2D thread profile
	pitch  float64  // thread to thread distance
	lead   float64  // distance per turn (starts * pitch)
	zmin   float64
	zmax   float64
	bb     r3.Box
}

// Screw returns a screw SDF3 spanning z=[zmin, zmax]. The helix phase is
// anchored at the origin: the thread profile center crosses the positive
// x axis at z=0 and at every multiple of the lead. Screws of the same
// thread therefore coincide wherever their z ranges overlap.
func Screw(thread Threader, zmin, zmax float64) (sdf.SDF3, error) {
	if thread == nil {
		return nil, errors.New("nil threader")
	}
	if zmax <= zmin {
		return nil, errors.New("need greater than zero length")
	}
	params := thread.Parameters()
	if params.Pitch <= 0 {
		return nil, errors.New("need greater than zero pitch")
	}
	if params.Starts == 0 {
		params.Starts = 1
	}
	tsdf, err := thread.Thread()
	if err != nil {
		return nil, err
	}
	s := screw{
		thread: tsdf,
		pitch:  params.Pitch,
		lead:   -params.Pitch * float64(params.Starts),
		zmin:   zmin,
		zmax:   zmax,
	}
	// The max-y axis of the sdf2 bounding box is the radius of the thread.
	r := tsdf.Bounds().Max.Y
	s.bb = r3.Box{Min: r3.Vec{X: -r, Y: -r, Z: zmin}, Max: r3.Vec{X: r, Y: r, Z: zmax}}
	return &s, nil
}

// Evaluate returns the minimum distance to a 3d screw form.
func (s *screw) Evaluate(p r3.Vec) float64 {
	// the distance from the 3d z-axis maps to the 2d y-axis and
	// the x/y angle and the z-height map to the 2d x-axis.
	theta := math.Atan2(p.Y, p.X)
	z := p.Z + s.lead*theta/(2*math.Pi)
	p0 := r2.Vec{
		X: sdf.SawTooth(z, s.pitch),
		Y: math.Hypot(p.X, p.Y),
	}
	d0 := s.thread.Evaluate(p0)
	// region for the screw length
	d1 := math.Max(s.zmin-p.Z, p.Z-s.zmax)
	return math.Max(d0, d1)
}

// Bounds returns the bounding box for a 3d screw form.
func (s *screw) Bounds() r3.Box {
	return s.bb
}
