package nut

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/soypat/sqnut/internal/d3"
	"github.com/soypat/sqnut/kernel"
	"github.com/soypat/sqnut/kernel/sdfx"
	"github.com/soypat/sqnut/thread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// noShell is a thread maker that never provides a thread shell.
type noShell struct {
	kernel.ThreadMaker
}

func (noShell) InnerShell(dia, pitch float64, turns int, do, height float64) (kernel.Shell, error) {
	return kernel.Shell{}, fmt.Errorf("%w: disabled", kernel.ErrShellUnavailable)
}

var errBroken = errors.New("broken thread maker")

// brokenShell fails with an error unrelated to shell availability.
type brokenShell struct {
	kernel.ThreadMaker
}

func (brokenShell) InnerShell(dia, pitch float64, turns int, do, height float64) (kernel.Shell, error) {
	return kernel.Shell{}, errBroken
}

func TestTurns(t *testing.T) {
	for _, test := range []struct {
		m, p float64
		want int
	}{
		{m: 5, p: 1, want: 5},
		{m: 6, p: 1, want: 6},
		{m: 6.5, p: 1, want: 7},
		{m: 1.8, p: 0.5, want: 4},
		{m: 1.2, p: 0.4, want: 3},
		{m: 1.8, p: 0.45, want: 4},
		{m: 1, p: 0.35, want: 3},
	} {
		assert.Equal(t, test.want, Turns(test.m, test.p), "m=%g p=%g", test.m, test.p)
	}
}

func TestUnthreadedDIN557(t *testing.T) {
	var b Builder
	res, err := b.Build(Part{Standard: DIN557, Size: "M6"})
	require.NoError(t, err)
	assert.Equal(t, PathNone, res.Path)
	assert.Zero(t, res.Turns)
	assert.True(t, res.Solid.Closed())
	assert.Equal(t, 6.0, res.Diameter)

	for _, test := range []struct {
		p      r3.Vec
		inside bool
	}{
		{p: r3.Vec{X: 4.9, Z: 2.5}, inside: true},
		{p: r3.Vec{X: 5.1, Z: 2.5}},
		{p: r3.Vec{X: -4.9, Y: 4.9, Z: 2.5}, inside: true},
		{p: r3.Vec{X: 4.9, Y: 4.9, Z: 4.5}},           // above washer cone
		{p: r3.Vec{X: 4, Y: 0, Z: 4.9}, inside: true}, // inside washer face
		{p: r3.Vec{X: 4, Z: 5.1}},
		{p: r3.Vec{X: 4, Z: -0.1}},
		{p: r3.Vec{Z: 2.5}},
		{p: r3.Vec{X: 2.3, Z: 2.5}},
		{p: r3.Vec{X: 2.6, Z: 2.5}, inside: true},
		{p: r3.Vec{X: 2.6, Z: 0.1}}, // bore chamfer
	} {
		d := res.Solid.SDF.Evaluate(test.p)
		assert.Equal(t, test.inside, d < 0, "point %v evaluated %g", test.p, d)
	}
}

func TestThreadedShellPath(t *testing.T) {
	var b Builder
	res, err := b.Build(Part{Standard: DIN562, Size: "M6", Thread: true})
	require.NoError(t, err)
	assert.Equal(t, PathShell, res.Path)
	assert.Equal(t, 4, res.Turns)
	assert.True(t, res.Solid.Closed())
	// Thread root is open, thread crest is solid somewhere around the bore.
	assert.Greater(t, res.Solid.SDF.Evaluate(r3.Vec{X: 2.3, Z: 1.6}), 0.0)
	assert.Less(t, res.Solid.SDF.Evaluate(r3.Vec{X: 3.4, Z: 1.6}), 0.0)
	solidAtMinor := false
	for i := 0; i < 16; i++ {
		z := 0.9 + float64(i)*0.1
		if res.Solid.SDF.Evaluate(r3.Vec{X: 2.55, Z: z}) < 0 {
			solidAtMinor = true
		}
	}
	assert.True(t, solidAtMinor, "no thread flank found between minor and major radius")
}

func TestSquareNut(t *testing.T) {
	s, err := SquareNut(Part{Standard: DIN562, Size: "m3", Thread: true})
	require.NoError(t, err)
	assert.True(t, s.Closed())
	bb := d3.Box(s.Bounds())
	assert.LessOrEqual(t, bb.Min.Z, 0.0)
	assert.GreaterOrEqual(t, bb.Max.Z, 1.8)
}

func TestFallbackLogs(t *testing.T) {
	var buf bytes.Buffer
	b := NewBuilder(kernel.Native{}, noShell{thread.Maker{}}, zerolog.New(&buf).Level(zerolog.DebugLevel))
	res, err := b.Build(Part{Standard: DIN562, Size: "M6", Thread: true})
	require.NoError(t, err)
	assert.Equal(t, PathCutter, res.Path)
	assert.Equal(t, 5, res.Turns)
	assert.True(t, res.Solid.Closed())
	assert.Contains(t, buf.String(), "revert to slow thread generation")
	assert.Contains(t, buf.String(), `"turns":4`)
}

func TestFatalThreadError(t *testing.T) {
	b := NewBuilder(kernel.Native{}, brokenShell{thread.Maker{}}, zerolog.Nop())
	_, err := b.Build(Part{Standard: DIN557, Size: "M8", Thread: true})
	assert.ErrorIs(t, err, errBroken)
}

func TestBuildErrors(t *testing.T) {
	var b Builder
	_, err := b.Build(Part{Standard: Standard(9), Size: "M6"})
	assert.ErrorIs(t, err, ErrUnknownStandard)
	_, err = b.Build(Part{Standard: DIN557, Size: "M3"})
	assert.ErrorIs(t, err, ErrUnknownSize)
	_, err = b.Build(Part{Standard: DIN557, Size: "M6", Dims: &Dimensions{S: 10, M: 5, Di: 12, P: 1}})
	assert.Error(t, err)
	// Bore wider than the thread outer diameter 6.6.
	_, err = b.Build(Part{Size: "M6", Dims: &Dimensions{S: 12, M: 6, Di: 8, P: 1}})
	assert.ErrorContains(t, err, "outer diameter")
	_, err = b.Build(Part{Size: "M6", Thread: true, Dims: &Dimensions{S: 12, M: 6, Di: 7, P: 1}})
	assert.Error(t, err)
}

func TestCustomDimensions(t *testing.T) {
	var b Builder
	dims := Dimensions{S: 12, M: 6, Di: 4.917, P: 1}
	res, err := b.Build(Part{Size: "M6", Thread: true, Dims: &dims})
	require.NoError(t, err)
	assert.Equal(t, dims, res.Dims)
	assert.Equal(t, PathShell, res.Path)
	assert.Less(t, res.Solid.SDF.Evaluate(r3.Vec{X: 5.9, Z: 3}), 0.0)
}

// sameSolid compares the sign of two solids over a grid covering a,
// skipping points on or very near either surface.
func sameSolid(t *testing.T, a, b kernel.Solid) {
	t.Helper()
	const (
		n   = 17
		eps = 1e-6
	)
	bb := d3.Box(a.Bounds()).ScaleAboutCenter(1.05)
	size := bb.Size()
	mismatch, checked := 0, 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				// Irrational offsets keep samples off the model's round numbers.
				p := r3.Vec{
					X: bb.Min.X + size.X*(float64(i)+math.Sqrt2/3)/n,
					Y: bb.Min.Y + size.Y*(float64(j)+math.Sqrt2/5)/n,
					Z: bb.Min.Z + size.Z*(float64(k)+math.Pi/7)/n,
				}
				da, db := a.SDF.Evaluate(p), b.SDF.Evaluate(p)
				if math.Abs(da) < eps || math.Abs(db) < eps {
					continue
				}
				checked++
				if (da < 0) != (db < 0) {
					mismatch++
					if mismatch < 5 {
						t.Errorf("point %v: %g vs %g", p, da, db)
					}
				}
			}
		}
	}
	if mismatch > 0 {
		t.Errorf("%d/%d sample points differ", mismatch, checked)
	}
}

func TestFallbackEquivalence(t *testing.T) {
	for _, test := range []struct {
		name string
		k    kernel.Kernel
		tm   kernel.ThreadMaker
	}{
		{name: "native", k: kernel.Native{}, tm: thread.Maker{}},
		{name: "sdfx", k: sdfx.Kernel{}, tm: sdfx.ThreadMaker{}},
	} {
		for _, part := range []Part{
			{Standard: DIN562, Size: "M6", Thread: true},
			{Standard: DIN557, Size: "M8", Thread: true},
		} {
			t.Run(test.name+"/"+part.Standard.String()+part.Size, func(t *testing.T) {
				fast, err := NewBuilder(test.k, test.tm, zerolog.Nop()).Build(part)
				require.NoError(t, err)
				require.Equal(t, PathShell, fast.Path)
				slow, err := NewBuilder(test.k, noShell{test.tm}, zerolog.Nop()).Build(part)
				require.NoError(t, err)
				require.Equal(t, PathCutter, slow.Path)
				sameSolid(t, fast.Solid, slow.Solid)
			})
		}
	}
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "none", PathNone.String())
	assert.Equal(t, "shell", PathShell.String())
	assert.Equal(t, "cutter", PathCutter.String())
	assert.Equal(t, "Path(7)", Path(7).String())
}
