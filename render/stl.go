package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

const stlTriangleSize = 50

// CreateSTL writes the triangles of r to a binary STL file at path and
// returns the number of triangles written.
func CreateSTL(path string, r Renderer) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	n, err := createSTL(file, r)
	if err != nil {
		return n, err
	}
	return n, file.Close()
}

// WriteSTL writes model triangles to a writer in binary STL format.
func WriteSTL(w io.Writer, model []Triangle3) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{Count: uint32(len(model))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [stlTriangleSize]byte
	for _, triangle := range model {
		stlFromTriangle3(triangle).put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

const trianglesInBuffer = 1 << 10

type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]Triangle3
}

func (w *stlReader) Read(b []byte) (int, error) {
	ntMax := min(len(b)/stlTriangleSize, len(w.buf))
	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}
	var (
		err error
		it  int // Number of triangles written to byte buffer
		nt  int // number of triangles read during ReadTriangles
	)
	for it < ntMax && err == nil {
		nt, err = w.r.ReadTriangles(w.buf[:ntMax-it])
		for _, triangle := range w.buf[:nt] {
			stlFromTriangle3(triangle).put(b[it*stlTriangleSize:])
			it++
		}
	}
	return it * stlTriangleSize, err
}

// createSTL leaves room for the header, streams the triangles and then
// seeks back to write the triangle count.
func createSTL(file io.WriteSeeker, r Renderer) (int, error) {
	const sizeOfSTLHeader = 84
	_, err := file.Seek(sizeOfSTLHeader, io.SeekStart)
	if err != nil {
		return 0, err
	}
	rd := &stlReader{r: r}
	n, err := io.CopyBuffer(file, rd, make([]byte, stlTriangleSize*trianglesInBuffer))
	if err != nil {
		return 0, err
	}
	nt := int(n / stlTriangleSize)
	if nt == 0 {
		return 0, errors.New("renderer produced no triangles")
	}
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return 0, err
	}
	header := stlHeader{Count: uint32(nt)}
	if err = binary.Write(file, binary.LittleEndian, &header); err != nil {
		return 0, err
	}
	return nt, nil
}

// ReadSTL reads a binary STL. Triangles whose stored normal disagrees with
// their vertices are kept and reported with errCalculatedNormalMismatch.
func ReadSTL(r io.Reader) (output []Triangle3, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf            [stlTriangleSize]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, errCalculatedNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	// The count is untrusted until the body has been read.
	output = make([]Triangle3, 0, min(int(header.Count), 1<<16))
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if !errors.Is(err, errCalculatedNormalMismatch) {
				return nil, err
			}
			normMismatches++
			readErr = err
		}
		output = append(output, d.toTriangle3())
	}
	if normMismatches > 0 {
		readErr = fmt.Errorf("%d triangles: %w", normMismatches, readErr)
	}
	return output, readErr
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  ms3.Vec
	Vertex1 ms3.Vec
	Vertex2 ms3.Vec
	Vertex3 ms3.Vec
	_       uint16 // Attribute byte count
}

func stlFromTriangle3(t Triangle3) stlTriangle {
	return stlTriangle{
		Normal:  toMS3(t.Normal()),
		Vertex1: toMS3(t.V[0]),
		Vertex2: toMS3(t.V[1]),
		Vertex3: toMS3(t.V[2]),
	}
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	putVec(b, t.Normal)
	putVec(b[12:], t.Vertex1)
	putVec(b[24:], t.Vertex2)
	putVec(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	t.Normal = getVec(b)
	t.Vertex1 = getVec(b[12:])
	t.Vertex2 = getVec(b[24:])
	t.Vertex3 = getVec(b[36:])
	// no attributes supported yet.
}

func putVec(b []byte, v ms3.Vec) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
}

func getVec(b []byte) ms3.Vec {
	_ = b[11] // early bounds check
	return ms3.Vec{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b)),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

func badVec(v ms3.Vec) bool {
	return math32.IsNaN(v.X) || math32.IsInf(v.X, 0) ||
		math32.IsNaN(v.Y) || math32.IsInf(v.Y, 0) ||
		math32.IsNaN(v.Z) || math32.IsInf(v.Z, 0)
}

var errCalculatedNormalMismatch = errors.New("triangle normal not approximately equal to calculated normal from vertices")

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if badVec(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if badVec(t.Vertex1) || badVec(t.Vertex2) || badVec(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) {
		return errors.New("triangle is degenerate")
	}
	calc := t.normalFromVertices()
	if !equalWithin(calc, t.Normal, normTol) && !equalWithin(ms3.Scale(-1, calc), t.Normal, normTol) {
		return errCalculatedNormalMismatch
	}
	return nil
}

func (t stlTriangle) normalFromVertices() ms3.Vec {
	return toMS3(t.toTriangle3().Normal())
}

func (t stlTriangle) degenerate(tol float32) bool {
	return equalWithin(t.Vertex1, t.Vertex2, tol) ||
		equalWithin(t.Vertex2, t.Vertex3, tol) ||
		equalWithin(t.Vertex3, t.Vertex1, tol)
}

func equalWithin(a, b ms3.Vec, tol float32) bool {
	d := ms3.AbsElem(ms3.Sub(a, b))
	return d.X <= tol && d.Y <= tol && d.Z <= tol
}

func toMS3(v r3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromMS3(v ms3.Vec) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func (t stlTriangle) toTriangle3() Triangle3 {
	return Triangle3{V: [3]r3.Vec{
		fromMS3(t.Vertex1),
		fromMS3(t.Vertex2),
		fromMS3(t.Vertex3),
	}}
}
