package render

import "io"

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like io.ReadAll.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

type triangle3Buffer struct {
	buf []Triangle3
}

// Read reads from this buffer.
func (b *triangle3Buffer) Read(t []Triangle3) int {
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n
}

// Write appends triangles to this buffer.
func (b *triangle3Buffer) Write(t []Triangle3) int {
	b.buf = append(b.buf, t...)
	return len(t)
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }

// sliceRenderer serves a fixed set of triangles.
type sliceRenderer struct {
	b triangle3Buffer
}

// NewSliceRenderer returns a Renderer that reads out model.
func NewSliceRenderer(model []Triangle3) Renderer {
	return &sliceRenderer{b: triangle3Buffer{buf: model}}
}

func (s *sliceRenderer) ReadTriangles(t []Triangle3) (int, error) {
	if s.b.Len() == 0 {
		return 0, io.EOF
	}
	return s.b.Read(t), nil
}
