// Package crop implements the geometry engine behind an interactive image
// cropping widget: unit conversion, containment of a crop inside the
// displayed media, cross-over tracking and the drag gesture state machine
// that turns pointer deltas into new crop rectangles.
//
// The engine performs no rendering and no I/O. A presentation layer forwards
// pointer, touch and keyboard input to a Cropper and receives every new
// rectangle in both pixel and percent units through callbacks.
package crop

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Unit is the unit of a Rect's coordinates.
type Unit string

const (
	// UnitNone marks a rectangle whose unit was never set. It is treated as
	// pixels.
	UnitNone    Unit = ""
	UnitPixel   Unit = "px"
	UnitPercent Unit = "%"
)

// Rect is a crop rectangle. When Unit is UnitPercent, the coordinates are
// percentages of the media dimensions.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit,omitempty"`
	// Aspect locks Width/Height to a fixed ratio. Zero means free-form.
	Aspect float64 `json:"aspect,omitempty"`
}

// Valid reports whether r describes a selection with a visible area.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

func (r Rect) String() string {
	unit := r.Unit
	if unit == UnitNone {
		unit = UnitPixel
	}
	s := fmt.Sprintf("crop(x=%.2f%s,y=%.2f%s,w=%.2f%s,h=%.2f%s)", r.X, unit, r.Y, unit, r.Width, unit, r.Height, unit)
	if r.Aspect != 0 {
		s += fmt.Sprintf("[aspect=%.4f]", r.Aspect)
	}
	return s
}

// Media holds the displayed size of the image being cropped, in pixels.
type Media struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a position in page coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scalar is a numeric type Clamp accepts.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Clamp limits v to [lo, hi]. When lo > hi the result is hi.
func Clamp[T Scalar](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
