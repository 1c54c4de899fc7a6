package form2

import (
	"fmt"
	"runtime/debug"

	"github.com/soypat/sqnut/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

const tolerance = 1e-9

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Circle returns the SDF2 for a 2d circle.
func Circle(radius float64) (s sdf.SDF2, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return sdf.Circle(radius), err
}

// Polygon returns an SDF2 made from a closed set of line segments.
func Polygon(vertex []r2.Vec) (s sdf.SDF2, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return sdf.Polygon(vertex), err
}

// Difference returns the region of s0 not covered by s1.
func Difference(s0, s1 sdf.SDF2) (s sdf.SDF2, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return sdf.Difference2D(s0, s1), err
}
