// Package sdfx implements kernel.Kernel and kernel.ThreadMaker using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	xsdf "github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/sqnut/form2"
	"github.com/soypat/sqnut/kernel"
	"github.com/soypat/sqnut/sdf"
	"github.com/soypat/sqnut/thread"
	"gonum.org/v1/gonum/spatial/r2"
)

// Compile-time interface checks.
var (
	_ kernel.Kernel      = Kernel{}
	_ kernel.ThreadMaker = ThreadMaker{}
)

// Kernel implements kernel.Kernel using sdfx.
type Kernel struct{}

// RevolveZ revolves a profile about the z axis.
func (Kernel) RevolveZ(p form2.Profile) (kernel.Solid, error) {
	verts := p.Vertices()
	if len(verts) < 3 {
		return kernel.Solid{}, errors.New("revolve needs at least 3 profile vertices")
	}
	for _, v := range verts {
		if v.X < 0 {
			return kernel.Solid{}, fmt.Errorf("profile vertex %v crosses the revolve axis", v)
		}
	}
	poly, err := xsdf.Polygon2D(toV2Set(verts))
	if err != nil {
		return kernel.Solid{}, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	s, err := xsdf.Revolve3D(poly)
	if err != nil {
		return kernel.Solid{}, fmt.Errorf("sdfx.Revolve3D: %w", err)
	}
	solid := kernel.Solid{SDF: From3(s)}
	if !p.Closed() {
		gap := kernel.Seam{A: verts[len(verts)-1], B: verts[0]}
		if gap.A != gap.B {
			solid.Open = []kernel.Seam{gap}
		}
	}
	return solid, nil
}

// ExtrudeZ extrudes region along z over [z0, z0+height].
func (Kernel) ExtrudeZ(region sdf.SDF2, z0, height float64) (kernel.Solid, error) {
	if region == nil {
		return kernel.Solid{}, errors.New("nil extrude region")
	}
	if height <= 0 {
		return kernel.Solid{}, errors.New("extrude height must be positive")
	}
	s := xsdf.Extrude3D(To2(region), height)
	m := xsdf.Translate3d(v3.Vec{Z: z0 + height/2})
	return kernel.Solid{SDF: From3(xsdf.Transform3D(s, m))}, nil
}

// Cut returns base minus tool.
func (Kernel) Cut(base, tool kernel.Solid) (kernel.Solid, error) {
	if !base.Closed() || !tool.Closed() {
		return kernel.Solid{}, kernel.ErrOpenSolid
	}
	return kernel.Solid{SDF: From3(xsdf.Difference3D(To3(base.SDF), To3(tool.SDF)))}, nil
}

// Sew closes the open seams of base with shell.
func (Kernel) Sew(base kernel.Solid, shell kernel.Shell) (kernel.Solid, error) {
	if shell.SDF == nil {
		return kernel.Solid{}, errors.New("nil shell")
	}
	if err := kernel.MatchSeams(base, shell); err != nil {
		return kernel.Solid{}, err
	}
	return kernel.Solid{SDF: From3(xsdf.Union3D(To3(base.SDF), To3(shell.SDF)))}, nil
}

// TranslateZ moves a solid and its seams along z.
func (Kernel) TranslateZ(s kernel.Solid, dz float64) (kernel.Solid, error) {
	if s.SDF == nil {
		return kernel.Solid{}, errors.New("nil solid")
	}
	m := xsdf.Translate3d(v3.Vec{Z: dz})
	out := kernel.Solid{SDF: From3(xsdf.Transform3D(To3(s.SDF), m))}
	for _, seam := range s.Open {
		seam.A.Y += dz
		seam.B.Y += dz
		out.Open = append(out.Open, seam)
	}
	return out, nil
}

// ThreadMaker makes internal threads from the sdfx ISO thread profile.
type ThreadMaker struct{}

// cutter returns an sdfx screw of the given turns spanning z=[-turns*pitch, 0]
// with the thread crest crossing the +x axis at z=0.
func cutter(dia, pitch float64, turns int) (xsdf.SDF3, float64, error) {
	if dia <= 0 || pitch <= 0 || turns <= 0 {
		return nil, 0, errors.New("thread needs positive diameter, pitch and turns")
	}
	prof, err := xsdf.ISOThread(dia/2, pitch, false)
	if err != nil {
		return nil, 0, fmt.Errorf("sdfx.ISOThread: %w", err)
	}
	length := float64(turns) * pitch
	s, err := xsdf.Screw3D(prof, length, 0, pitch, 1)
	if err != nil {
		return nil, 0, fmt.Errorf("sdfx.Screw3D: %w", err)
	}
	// sdfx screws are centered on z=0. Odd turn counts leave the crest half
	// a pitch off after the shift, a half turn puts it back.
	m := xsdf.Translate3d(v3.Vec{Z: -length / 2})
	if turns%2 == 1 {
		m = m.Mul(xsdf.RotateZ(math.Pi))
	}
	return xsdf.Transform3D(s, m), prof.BoundingBox().Max.Y, nil
}

// InnerCutter returns a solid thread cutter ending at z=0.
func (ThreadMaker) InnerCutter(dia, pitch float64, turns int) (kernel.Solid, error) {
	s, _, err := cutter(dia, pitch, turns)
	if err != nil {
		return kernel.Solid{}, err
	}
	return kernel.Solid{SDF: From3(s)}, nil
}

// InnerShell returns the threaded bore wall out to diameter do.
func (ThreadMaker) InnerShell(dia, pitch float64, turns int, do, height float64) (kernel.Shell, error) {
	if do <= 0 || height <= 0 {
		return kernel.Shell{}, errors.New("shell diameter and height must be positive")
	}
	helix, crest, err := cutter(dia, pitch, turns)
	if err != nil {
		return kernel.Shell{}, err
	}
	ro := do / 2
	rMinor := thread.ISO{D: dia, P: pitch}.MinorRadius()
	ch := ro - rMinor
	switch {
	case ro < crest+pitch/16:
		return kernel.Shell{}, fmt.Errorf("%w: thread crest %g reaches wall at %g", kernel.ErrShellUnavailable, crest, ro)
	case float64(turns)*pitch < height-1e-9:
		return kernel.Shell{}, fmt.Errorf("%w: %d turns do not span height %g", kernel.ErrShellUnavailable, turns, height)
	case 2*ch >= height:
		return kernel.Shell{}, fmt.Errorf("%w: chamfers meet in height %g", kernel.ErrShellUnavailable, height)
	}
	wall, err := xsdf.Polygon2D([]v2.Vec{
		{X: rMinor, Y: ch},
		{X: ro, Y: 0},
		{X: ro, Y: height},
		{X: rMinor, Y: height - ch},
	})
	if err != nil {
		return kernel.Shell{}, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	ring, err := xsdf.Revolve3D(wall)
	if err != nil {
		return kernel.Shell{}, fmt.Errorf("sdfx.Revolve3D: %w", err)
	}
	helix = xsdf.Transform3D(helix, xsdf.Translate3d(v3.Vec{Z: height}))
	return kernel.Shell{
		SDF: From3(xsdf.Difference3D(ring, helix)),
		Seams: []kernel.Seam{{
			A: r2.Vec{X: ro},
			B: r2.Vec{X: ro, Y: height},
		}},
	}, nil
}
