package render

import (
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera of a preview image. The mesh is scaled to fit
// a cube of side 2 centered at the origin before drawing.
type View struct {
	Width, Height int
	// Supersampling factor. Values below 1 are taken as 1.
	Scale  int
	Eye    r3.Vec
	LookAt r3.Vec
	Up     r3.Vec
	Near   float64
	Far    float64
	Color  string // hex object color
}

// DefaultView looks at the mesh from the (1,1,1) diagonal with z up.
var DefaultView = View{
	Width:  800,
	Height: 600,
	Scale:  2,
	Eye:    r3.Vec{X: 3, Y: 3, Z: 3},
	Up:     r3.Vec{Z: 1},
	Near:   1,
	Far:    10,
	Color:  "#468966",
}

// Preview draws a shaded image of model.
func Preview(model []Triangle3, view View) (image.Image, error) {
	if len(model) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.New("preview size must be positive")
	}
	scale := view.Scale
	if scale < 1 {
		scale = 1
	}
	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		tris[i] = fauxgl.NewTriangleForPoints(fauxV(t.V[0]), fauxV(t.V[1]), fauxV(t.V[2]))
	}
	mesh := fauxgl.NewTriangleMesh(tris)
	mesh.BiUnitCube()

	const fovy = 30 // vertical field of view in degrees
	var (
		eye    = fauxV(view.Eye)
		center = fauxV(view.LookAt)
		up     = fauxV(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	color := view.Color
	if color == "" {
		color = DefaultView.Color
	}
	shader.ObjectColor = fauxgl.HexColor(color)
	context.Shader = shader
	context.DrawMesh(mesh)
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return img, nil
}

// WritePNG draws a preview of model and encodes it to w as PNG.
func WritePNG(w io.Writer, model []Triangle3, view View) error {
	img, err := Preview(model, view)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func fauxV(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}
