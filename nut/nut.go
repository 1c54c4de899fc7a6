// Package nut builds square nut solids per DIN 557 and DIN 562.
//
// A nut is made by revolving its half cross section about z, adding an
// internal ISO thread and trimming the result to a square. The thread is
// added by sewing a prebuilt thread shell onto an open revolved profile
// when the thread maker can provide one, and by cutting a solid helix out
// of the closed blank otherwise.
package nut

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/soypat/sqnut/kernel"
	"github.com/soypat/sqnut/thread"
)

// Part describes a nut to build.
type Part struct {
	Standard Standard
	// Size is the nominal thread size, i.e. "M6".
	Size string
	// Thread enables the internal thread.
	Thread bool
	// Dims overrides the standard table when not nil.
	Dims *Dimensions
}

// Path reports how the thread of a nut was made.
type Path int

const (
	PathNone   Path = iota // unthreaded
	PathShell              // thread shell sewn onto an open profile
	PathCutter             // solid thread cut from a closed profile
)

func (p Path) String() string {
	switch p {
	case PathNone:
		return "none"
	case PathShell:
		return "shell"
	case PathCutter:
		return "cutter"
	}
	return fmt.Sprintf("Path(%d)", int(p))
}

// Result is a built nut.
type Result struct {
	Solid    kernel.Solid
	Dims     Dimensions
	Diameter float64 // nominal thread diameter
	Turns    int     // turns of the generated thread, 0 when unthreaded
	Path     Path
}

// Builder builds nuts. The zero value uses the native kernel and thread
// maker and does not log.
type Builder struct {
	Kernel  kernel.Kernel
	Threads kernel.ThreadMaker
	Log     zerolog.Logger
}

// NewBuilder returns a Builder using k and tm that logs to log.
func NewBuilder(k kernel.Kernel, tm kernel.ThreadMaker, log zerolog.Logger) *Builder {
	return &Builder{Kernel: k, Threads: tm, Log: log}
}

// Turns returns the number of whole thread turns of pitch p needed to
// span a height m.
func Turns(m, p float64) int {
	turns, residue := math.Modf(m / p)
	// Absorbs float noise such as 1.8/0.45 = 4.000000000000001.
	if residue > 1e-9 {
		turns++
	}
	return int(turns)
}

// SquareNut builds a nut with the default Builder.
func SquareNut(part Part) (kernel.Solid, error) {
	var b Builder
	r, err := b.Build(part)
	return r.Solid, err
}

// Build builds the nut described by part.
func (b *Builder) Build(part Part) (Result, error) {
	k := b.Kernel
	if k == nil {
		k = kernel.Native{}
	}
	tm := b.Threads
	if tm == nil {
		tm = thread.Maker{}
	}
	var dims Dimensions
	if part.Dims != nil {
		dims = *part.Dims
		if err := dims.Validate(); err != nil {
			return Result{}, err
		}
	} else {
		var err error
		dims, err = Lookup(part.Standard, part.Size)
		if err != nil {
			return Result{}, err
		}
	}
	dia, err := Diameter(part.Size)
	if err != nil {
		return Result{}, err
	}
	res := Result{Dims: dims, Diameter: dia}
	do := dia * 1.1
	if dims.Di >= do {
		return Result{}, fmt.Errorf("bore %g not smaller than thread outer diameter %g", dims.Di, do)
	}
	turns := Turns(dims.M, dims.P)

	var shell kernel.Shell
	haveShell := false
	if part.Thread {
		shell, err = tm.InnerShell(dia, dims.P, turns, do, dims.M)
		switch {
		case err == nil:
			haveShell = true
		case !errors.Is(err, kernel.ErrShellUnavailable):
			return Result{}, fmt.Errorf("thread shell: %w", err)
		}
	}

	profile, err := Profile(do, dims.Di, dims.Washer, dims.S, dims.M, haveShell)
	if err != nil {
		return Result{}, fmt.Errorf("nut profile: %w", err)
	}
	solid, err := k.RevolveZ(profile)
	if err != nil {
		return Result{}, fmt.Errorf("revolve profile: %w", err)
	}

	switch {
	case !part.Thread:
	case haveShell:
		solid, err = k.Sew(solid, shell)
		if err != nil {
			return Result{}, fmt.Errorf("sew thread shell: %w", err)
		}
		res.Path, res.Turns = PathShell, turns
	default:
		b.Log.Debug().Float64("dia", dia).Float64("pitch", dims.P).Int("turns", turns).
			Msg("revert to slow thread generation")
		turns++
		cutter, err := tm.InnerCutter(dia, dims.P, turns)
		if err != nil {
			return Result{}, fmt.Errorf("thread cutter: %w", err)
		}
		cutter, err = k.TranslateZ(cutter, dims.M+dims.P)
		if err != nil {
			return Result{}, fmt.Errorf("place thread cutter: %w", err)
		}
		solid, err = k.Cut(solid, cutter)
		if err != nil {
			return Result{}, fmt.Errorf("cut thread: %w", err)
		}
		res.Path, res.Turns = PathCutter, turns
	}

	tool, err := SquareTool(k, dims.S, dims.M)
	if err != nil {
		return Result{}, fmt.Errorf("square tool: %w", err)
	}
	solid, err = k.Cut(solid, tool)
	if err != nil {
		return Result{}, fmt.Errorf("cut square: %w", err)
	}
	res.Solid = solid
	return res, nil
}
