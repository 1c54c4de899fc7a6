package kernel

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/soypat/sqnut/form2"
	"github.com/soypat/sqnut/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ Kernel = Native{}

// Native is a Kernel built on package sdf.
type Native struct{}

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// recoverShape turns a panic from an sdf constructor into an error.
func recoverShape(err *error) {
	if a := recover(); a != nil {
		*err = &shapeErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}

// RevolveZ revolves the profile about the z axis. See Kernel.
func (Native) RevolveZ(p form2.Profile) (s Solid, err error) {
	verts := p.Vertices()
	if len(verts) < 3 {
		return Solid{}, errors.New("revolve needs at least 3 profile vertices")
	}
	for _, v := range verts {
		if v.X < 0 {
			return Solid{}, fmt.Errorf("profile vertex %v crosses the revolve axis", v)
		}
	}
	poly, err := form2.Polygon(verts)
	if err != nil {
		return Solid{}, err
	}
	defer recoverShape(&err)
	s.SDF = sdf.Revolve3D(poly)
	if !p.Closed() {
		gap := Seam{A: verts[len(verts)-1], B: verts[0]}
		if gap.A != gap.B {
			s.Open = []Seam{gap}
		}
	}
	return s, err
}

// ExtrudeZ extrudes region along z over [z0, z0+height].
func (Native) ExtrudeZ(region sdf.SDF2, z0, height float64) (s Solid, err error) {
	if region == nil {
		return Solid{}, errors.New("nil extrude region")
	}
	defer recoverShape(&err)
	ext := sdf.Extrude3D(region, height)
	s.SDF = sdf.Translate3D(ext, r3.Vec{Z: z0 + height/2})
	return s, err
}

// Cut subtracts tool from base.
func (Native) Cut(base, tool Solid) (s Solid, err error) {
	if !base.Closed() || !tool.Closed() {
		return Solid{}, ErrOpenSolid
	}
	defer recoverShape(&err)
	s.SDF = sdf.Difference3D(base.SDF, tool.SDF)
	return s, err
}

// Sew closes the open seams of base with shell.
func (Native) Sew(base Solid, shell Shell) (s Solid, err error) {
	if shell.SDF == nil {
		return Solid{}, errors.New("nil shell")
	}
	if err = MatchSeams(base, shell); err != nil {
		return Solid{}, err
	}
	defer recoverShape(&err)
	s.SDF = sdf.Union3D(base.SDF, shell.SDF)
	return s, err
}

// TranslateZ moves s along the z axis together with its seams.
func (Native) TranslateZ(s Solid, dz float64) (Solid, error) {
	if s.SDF == nil {
		return Solid{}, errors.New("nil solid")
	}
	out := Solid{SDF: sdf.Translate3D(s.SDF, r3.Vec{Z: dz})}
	for _, seam := range s.Open {
		out.Open = append(out.Open, seam.translateZ(dz))
	}
	return out, nil
}
