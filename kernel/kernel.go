// Package kernel defines the solid modelling operations used to build
// fasteners and a native implementation of them over package sdf.
//
// Solids are signed distance functions. A solid revolved from an open
// wire is not closed: it records the gap in its profile as a Seam and
// must be sewn to a Shell that closes that seam before it can take part
// in boolean operations.
package kernel

import (
	"errors"

	"github.com/soypat/sqnut/form2"
	"github.com/soypat/sqnut/internal/d2"
	"github.com/soypat/sqnut/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrShellUnavailable is returned by a ThreadMaker that cannot build a
	// thread shell for the requested geometry. Callers fall back to
	// cutting a solid thread.
	ErrShellUnavailable = errors.New("thread shell unavailable")
	// ErrOpenSolid is returned when a boolean operation receives a solid with open seams.
	ErrOpenSolid = errors.New("solid has open seams")
	// ErrNotWatertight is returned by Sew when the shell does not close
	// exactly the seams left open in the base solid.
	ErrNotWatertight = errors.New("shell seams do not match solid seams")
)

// seamTol is the absolute tolerance used to match seam endpoints.
const seamTol = 1e-6

// Kernel builds and combines solids.
type Kernel interface {
	// RevolveZ revolves a profile in the (radius, z) plane a full turn
	// about the z axis. Open profiles are closed along the segment from
	// their last vertex to their first and the result records that
	// segment as an open seam.
	RevolveZ(p form2.Profile) (Solid, error)
	// ExtrudeZ extrudes a planar region along z starting at z0.
	ExtrudeZ(region sdf.SDF2, z0, height float64) (Solid, error)
	// Cut returns base minus tool. Both must be closed.
	Cut(base, tool Solid) (Solid, error)
	// Sew joins a shell to a solid with open seams. The result is closed.
	Sew(base Solid, shell Shell) (Solid, error)
	// TranslateZ moves a solid along z.
	TranslateZ(s Solid, dz float64) (Solid, error)
}

// ThreadMaker generates internal threads along the z axis.
type ThreadMaker interface {
	// InnerShell returns the threaded bore wall of a nut spanning z=[0,height]
	// bounded outside at the cylinder of diameter do. It returns an error
	// wrapping ErrShellUnavailable when such a shell cannot be made.
	InnerShell(dia, pitch float64, turns int, do, height float64) (Shell, error)
	// InnerCutter returns a solid thread cutter of the given number of
	// turns ending at z=0. The helix phase is anchored at z=0.
	InnerCutter(dia, pitch float64, turns int) (Solid, error)
}

// Seam is a segment in the (radius, z) profile plane. Revolved about z it
// is a surface patch a solid is missing or a shell provides.
type Seam struct {
	A, B r2.Vec
}

// Equal reports whether two seams join the same endpoints, in any order.
func (s Seam) Equal(other Seam) bool {
	return (d2.EqualWithin(s.A, other.A, seamTol) && d2.EqualWithin(s.B, other.B, seamTol)) ||
		(d2.EqualWithin(s.A, other.B, seamTol) && d2.EqualWithin(s.B, other.A, seamTol))
}

func (s Seam) translateZ(dz float64) Seam {
	s.A.Y += dz
	s.B.Y += dz
	return s
}

// Solid is a kernel solid. Open lists the seams where its boundary is missing.
type Solid struct {
	SDF  sdf.SDF3
	Open []Seam
}

// Closed reports whether the solid has a complete boundary.
func (s Solid) Closed() bool { return len(s.Open) == 0 }

// Bounds returns the bounding box of the solid.
func (s Solid) Bounds() r3.Box { return s.SDF.Bounds() }

// Shell is a boundary patch together with the seams it closes.
type Shell struct {
	SDF   sdf.SDF3
	Seams []Seam
}

// MatchSeams checks that every open seam of base is closed by exactly one
// shell seam and no shell seam is left unused.
func MatchSeams(base Solid, shell Shell) error {
	if len(base.Open) != len(shell.Seams) {
		return ErrNotWatertight
	}
	used := make([]bool, len(shell.Seams))
	for _, open := range base.Open {
		found := false
		for i, s := range shell.Seams {
			if !used[i] && open.Equal(s) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return ErrNotWatertight
		}
	}
	return nil
}
