package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/sqnut/internal/d3"
	"github.com/soypat/sqnut/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

// cube returns the 12 outward facing triangles of the unit cube.
func cube() []Triangle3 {
	v := [8]r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	quads := [6][4]int{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	}
	var model []Triangle3
	for _, q := range quads {
		model = append(model,
			Triangle3{V: [3]r3.Vec{v[q[0]], v[q[1]], v[q[2]]}},
			Triangle3{V: [3]r3.Vec{v[q[0]], v[q[2]], v[q[3]]}},
		)
	}
	return model
}

func cylinder(t testing.TB) sdf.SDF3 {
	t.Helper()
	rect := sdf.Polygon([]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 2}, {X: 0, Y: 2}})
	return sdf.Revolve3D(rect)
}

func TestCubeNormals(t *testing.T) {
	center := r3.Vec{X: .5, Y: .5, Z: .5}
	for i, tri := range cube() {
		out := r3.Sub(tri.V[0], center)
		if r3.Dot(tri.Normal(), out) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i, tri.Normal())
		}
	}
}

func TestOpenEdges(t *testing.T) {
	model := cube()
	if open := OpenEdges(model, 1e-9); len(open) != 0 {
		t.Fatalf("closed cube has open edges: %v", open)
	}
	// Perturb below the weld tolerance.
	jitter := append([]Triangle3(nil), model...)
	jitter[3].V[1] = r3.Add(jitter[3].V[1], d3.Elem(1e-7))
	if open := OpenEdges(jitter, 1e-6); len(open) != 0 {
		t.Fatalf("welding failed, got open edges: %v", open)
	}
	open := OpenEdges(model[1:], 1e-9)
	if len(open) != 3 {
		t.Fatalf("want 3 open edges after removing a triangle, got %d", len(open))
	}
	for _, e := range open {
		if e.Faces != 1 {
			t.Errorf("edge %v: want 1 face, got %d", e, e.Faces)
		}
	}
}

func TestSTLWriteReadback(t *testing.T) {
	input := cube()
	var b bytes.Buffer
	err := WriteSTL(&b, input)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 84+stlTriangleSize*len(input) {
		t.Fatalf("unexpected STL size %d", b.Len())
	}
	output, err := ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatal("length of triangles written/read not equal")
	}
	for i := range input {
		for j := 0; j < 3; j++ {
			if !d3.EqualWithin(input[i].V[j], output[i].V[j], 1e-6) {
				t.Errorf("triangle %d vertex %d: %v != %v", i, j, input[i].V[j], output[i].V[j])
			}
		}
	}
	if err := WriteSTL(&b, nil); err == nil {
		t.Error("expected error writing empty model")
	}
}

func TestReadSTLTruncated(t *testing.T) {
	var b bytes.Buffer
	if err := WriteSTL(&b, cube()); err != nil {
		t.Fatal(err)
	}
	_, err := ReadSTL(bytes.NewReader(b.Bytes()[:b.Len()-10]))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("want unexpected EOF, got %v", err)
	}
}

func TestReadSTLHeaderOnly(t *testing.T) {
	var b bytes.Buffer
	b.Write(make([]byte, 80))
	binary.Write(&b, binary.LittleEndian, uint32(math.MaxUint32))
	_, err := ReadSTL(&b)
	if !errors.Is(err, io.EOF) {
		t.Errorf("want EOF reading body, got %v", err)
	}
}

func TestCreateSTLMatchesWriteSTL(t *testing.T) {
	model := cube()
	path := filepath.Join(t.TempDir(), "cube.stl")
	n, err := CreateSTL(path, NewSliceRenderer(model))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(model) {
		t.Fatalf("wrote %d triangles, want %d", n, len(model))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var want bytes.Buffer
	if err := WriteSTL(&want, model); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
}

func TestMarchingCubes(t *testing.T) {
	s := cylinder(t)
	r, err := NewMarchingCubes(s, 40)
	if err != nil {
		t.Fatal(err)
	}
	model, err := RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(model) == 0 {
		t.Fatal("no triangles")
	}
	bb := Bounds(model)
	want := d3.Box(s.Bounds()).ScaleAboutCenter(1.1)
	if !want.Contains(bb.Min) || !want.Contains(bb.Max) {
		t.Errorf("mesh bounds %v outside %v", bb, want)
	}
	for _, tri := range model {
		for _, v := range tri.V {
			if d := s.Evaluate(v); d > 0.1 || d < -0.1 {
				t.Fatalf("vertex %v off surface by %g", v, d)
			}
		}
	}
	if _, err := NewMarchingCubes(s, 1); err == nil {
		t.Error("expected error for 1 cell")
	}
}

func TestPreviewDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping image rendering in short mode")
	}
	view := DefaultView
	view.Width, view.Height = 160, 120
	var a, b bytes.Buffer
	if err := WritePNG(&a, cube(), view); err != nil {
		t.Fatal(err)
	}
	if err := WritePNG(&b, cube(), view); err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", a.Bytes(), b.Bytes(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("preview of the same mesh differs between renders")
	}
	img, err := Preview(cube(), view)
	if err != nil {
		t.Fatal(err)
	}
	bg := img.At(0, 0)
	c := img.At(view.Width/2, view.Height/2)
	if c == bg {
		t.Error("mesh not drawn at image center")
	}
}
