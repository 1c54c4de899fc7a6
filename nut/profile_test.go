package nut

import (
	"math"
	"testing"

	"github.com/soypat/sqnut/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestProfileVertices(t *testing.T) {
	for _, test := range []struct {
		name      string
		washer    WasherFace
		shellOnly bool
		want      int
	}{
		{name: "face", want: 6},
		{name: "face washer", washer: Washer(9.5), want: 7},
		{name: "wire", shellOnly: true, want: 4},
		{name: "wire washer", washer: Washer(9.5), shellOnly: true, want: 5},
	} {
		t.Run(test.name, func(t *testing.T) {
			p, err := Profile(6.6, 4.917, test.washer, 10, 5, test.shellOnly)
			require.NoError(t, err)
			assert.Len(t, p.Vertices(), test.want)
			assert.Equal(t, !test.shellOnly, p.Closed())
		})
	}
}

func TestProfileChamfers(t *testing.T) {
	p, err := Profile(6.6, 4.917, Washer(9.5), 10, 5, false)
	require.NoError(t, err)
	v := p.Vertices()
	ch1 := 3.3 - 4.917/2
	assert.InDelta(t, 4.917/2, v[0].X, 1e-12)
	assert.InDelta(t, ch1, v[0].Y, 1e-12)
	assert.Equal(t, r2.Vec{X: 3.3, Y: 0}, v[1])
	assert.Equal(t, r2.Vec{X: 10, Y: 0}, v[2])
	// 30 degree washer cone from the blank edge to the washer radius.
	ch2 := (10 - 4.75) * math.Tan(math.Pi/6)
	assert.InDelta(t, 5-ch2, v[3].Y, 1e-12)
	assert.Equal(t, r2.Vec{X: 4.75, Y: 5}, v[4])
	assert.Equal(t, r2.Vec{X: 3.3, Y: 5}, v[5])
	assert.InDelta(t, 5-ch1, v[6].Y, 1e-12)

	w, err := Profile(6.6, 4.917, WasherFace{}, 10, 5, true)
	require.NoError(t, err)
	wv := w.Vertices()
	assert.Equal(t, r2.Vec{X: 3.3}, wv[0])
	assert.Equal(t, r2.Vec{X: 3.3, Y: 5}, wv[len(wv)-1])
}

func TestSquareTool(t *testing.T) {
	tool, err := SquareTool(kernel.Native{}, 10, 5)
	require.NoError(t, err)
	assert.True(t, tool.Closed())
	for _, test := range []struct {
		p      r3.Vec
		inside bool
	}{
		{p: r3.Vec{Z: 2.5}},
		{p: r3.Vec{X: 4.9, Y: 4.9, Z: 2.5}},
		{p: r3.Vec{X: 6, Z: 2.5}, inside: true},
		{p: r3.Vec{X: 6, Y: 6, Z: 5.4}, inside: true},
		{p: r3.Vec{X: 6, Z: -0.6}},
		{p: r3.Vec{X: 31, Z: 2.5}},
	} {
		d := tool.SDF.Evaluate(test.p)
		assert.Equal(t, test.inside, d < 0, "point %v evaluated %g", test.p, d)
	}
	_, err = SquareTool(kernel.Native{}, 0, 5)
	assert.Error(t, err)
}

func TestSquareToolSpansHeight(t *testing.T) {
	const s = 10
	for _, m := range []float64{0.3, 1, 5, 13} {
		tool, err := SquareTool(kernel.Native{}, s, m)
		require.NoError(t, err)
		bb := tool.Bounds()
		assert.LessOrEqual(t, bb.Min.Z, 0.0, "m=%g", m)
		assert.GreaterOrEqual(t, bb.Max.Z, m, "m=%g", m)
		for _, z := range []float64{0, m / 2, m} {
			p := r3.Vec{X: 0.6 * s, Y: 0.6 * s, Z: z}
			assert.Less(t, tool.SDF.Evaluate(p), 0.0, "m=%g point %v", m, p)
		}
	}
}
