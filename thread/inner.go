package thread

import (
	"errors"
	"fmt"

	"github.com/soypat/sqnut/form2"
	"github.com/soypat/sqnut/kernel"
	"github.com/soypat/sqnut/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ kernel.ThreadMaker = Maker{}

// Maker makes internal ISO threads.
type Maker struct{}

func checkInner(dia, pitch float64, turns int) error {
	if dia <= 0 || pitch <= 0 {
		return errors.New("thread diameter and pitch must be positive")
	}
	if turns <= 0 {
		return errors.New("thread needs at least one turn")
	}
	return nil
}

// InnerCutter returns a solid cutter spanning z=[-turns*pitch, 0].
func (Maker) InnerCutter(dia, pitch float64, turns int) (kernel.Solid, error) {
	if err := checkInner(dia, pitch, turns); err != nil {
		return kernel.Solid{}, err
	}
	s, err := Screw(ISO{D: dia, P: pitch}, -float64(turns)*pitch, 0)
	if err != nil {
		return kernel.Solid{}, err
	}
	return kernel.Solid{SDF: s}, nil
}

// InnerShell returns the threaded wall between the thread and the cylinder
// of diameter do over z=[0,height]. Both ends of the wall carry a 45 degree
// chamfer that starts at do. The shell closes the seam along the cylinder.
//
// The thread of the shell matches that of a cutter of turns+1 turns moved
// up by height+pitch.
func (Maker) InnerShell(dia, pitch float64, turns int, do, height float64) (kernel.Shell, error) {
	if err := checkInner(dia, pitch, turns); err != nil {
		return kernel.Shell{}, err
	}
	if do <= 0 || height <= 0 {
		return kernel.Shell{}, errors.New("shell diameter and height must be positive")
	}
	iso := ISO{D: dia, P: pitch}
	ro := do / 2
	rMinor := iso.MinorRadius()
	switch {
	case ro < iso.CrestRadius()+pitch/16:
		return kernel.Shell{}, fmt.Errorf("%w: no wall left outside M%gx%g crest at diameter %g", kernel.ErrShellUnavailable, dia, pitch, do)
	case float64(turns)*pitch < height-1e-9:
		return kernel.Shell{}, fmt.Errorf("%w: %d turns do not span height %g", kernel.ErrShellUnavailable, turns, height)
	case 2*(ro-rMinor) >= height:
		return kernel.Shell{}, fmt.Errorf("%w: chamfers meet in height %g", kernel.ErrShellUnavailable, height)
	}
	ch := ro - rMinor
	wall, err := form2.NewFaceMaker().
		AddPoint(rMinor, ch).
		AddPoint(ro, 0).
		AddPoint(ro, height).
		AddPoint(rMinor, height-ch).
		Face()
	if err != nil {
		return kernel.Shell{}, err
	}
	helix, err := Screw(iso, -float64(turns)*pitch, 0)
	if err != nil {
		return kernel.Shell{}, err
	}
	shell := sdf.Difference3D(sdf.Revolve3D(wall), sdf.Translate3D(helix, r3.Vec{Z: height}))
	return kernel.Shell{
		SDF:   shell,
		Seams: []kernel.Seam{{A: r2.Vec{X: ro}, B: r2.Vec{X: ro, Y: height}}},
	}, nil
}
