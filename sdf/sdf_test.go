package sdf

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPolygonSign(t *testing.T) {
	square := Polygon([]r2.Vec{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}})
	for _, test := range []struct {
		p    r2.Vec
		want float64
	}{
		{p: r2.Vec{}, want: -1},
		{p: r2.Vec{X: 2}, want: 1},
		{p: r2.Vec{X: 0.5, Y: 0.9}, want: -0.1},
		{p: r2.Vec{X: 2, Y: 2}, want: math.Sqrt2},
	} {
		got := square.Evaluate(test.p)
		if !EqualFloat64(got, test.want, 1e-12) {
			t.Errorf("Evaluate(%v) = %g, want %g", test.p, got, test.want)
		}
	}
	bb := square.Bounds()
	if bb.Min != (r2.Vec{X: -1, Y: -1}) || bb.Max != (r2.Vec{X: 1, Y: 1}) {
		t.Errorf("unexpected bounds %v", bb)
	}
}

func TestPolygonPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for two vertex polygon")
		}
	}()
	Polygon([]r2.Vec{{}, {X: 1}})
}

func TestRevolveExtrude(t *testing.T) {
	// Annulus r=[1,2], z=[0,1].
	ring := Revolve3D(Polygon([]r2.Vec{{X: 1}, {X: 2}, {X: 2, Y: 1}, {X: 1, Y: 1}}))
	if d := ring.Evaluate(r3.Vec{Y: 1.5, Z: 0.5}); d >= 0 {
		t.Errorf("point inside ring evaluated %g", d)
	}
	if d := ring.Evaluate(r3.Vec{Z: 0.5}); d <= 0 {
		t.Errorf("point in bore evaluated %g", d)
	}
	bb := ring.Bounds()
	if bb.Max.X != 2 || bb.Min.Y != -2 || bb.Max.Z != 1 {
		t.Errorf("unexpected ring bounds %v", bb)
	}
	slab := Extrude3D(Circle(1), 2)
	moved := Translate3D(Translate3D(slab, r3.Vec{Z: 1}), r3.Vec{Z: 1})
	if got := moved.Bounds(); got.Min.Z != 1 || got.Max.Z != 3 {
		t.Errorf("translated bounds %v", got)
	}
	if d := moved.Evaluate(r3.Vec{Z: 2}); !EqualFloat64(d, -1, 1e-12) {
		t.Errorf("translated center evaluated %g", d)
	}
}

func TestBooleans(t *testing.T) {
	a := Extrude3D(Circle(2), 2)
	b := Extrude3D(Circle(1), 4)
	diff := Difference3D(a, b)
	if d := diff.Evaluate(r3.Vec{}); d <= 0 {
		t.Errorf("difference kept the bore: %g", d)
	}
	if d := diff.Evaluate(r3.Vec{X: 1.5}); d >= 0 {
		t.Errorf("difference lost the wall: %g", d)
	}
	u := Union3D(a, Translate3D(b, r3.Vec{Z: 5}))
	if bb := u.Bounds(); bb.Max.Z != 7 || bb.Min.Z != -1 {
		t.Errorf("union bounds %v", bb)
	}
	d2 := Difference2D(Circle(2), Circle(1))
	if d := d2.Evaluate(r2.Vec{}); d <= 0 {
		t.Errorf("2D difference kept center: %g", d)
	}
}

func TestSawTooth(t *testing.T) {
	const period = 2.0
	for _, x := range []float64{-3.5, -1, 0, 0.5, 0.99, 7.25} {
		got := SawTooth(x, period)
		if got < -period/2 || got >= period/2 {
			t.Errorf("SawTooth(%g) = %g out of range", x, got)
		}
		if !EqualFloat64(SawTooth(x+period, period), got, 1e-12) {
			t.Errorf("SawTooth not periodic at %g", x)
		}
	}
}
