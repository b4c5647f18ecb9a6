package spec

import (
	"math"
	"sync/atomic"

	"formgrid/pkg/measure"
)

// Axis selects between column (horizontal) and row (vertical) context.
// Dialog-unit conversion and alignment validity both depend on it.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "column"
	}
	return "row"
}

// Unit is the measurement unit of a constant size.
type Unit int

const (
	Pixel Unit = iota
	Point
	DialogUnit
	Millimeter
	Centimeter
	Inch
)

// unitNames maps encoding suffixes to units. Longer suffixes are tried
// first by parseConstant so "dlu" is never read as a bare number ending
// in an unknown suffix.
var unitNames = []struct {
	name string
	unit Unit
}{
	{"dlu", DialogUnit},
	{"px", Pixel},
	{"pt", Point},
	{"mm", Millimeter},
	{"cm", Centimeter},
	{"in", Inch},
}

func (u Unit) String() string {
	for _, n := range unitNames {
		if n.unit == u {
			return n.name
		}
	}
	return "px"
}

// Integral reports whether the unit only admits integer values.
func (u Unit) Integral() bool {
	return u == Pixel || u == DialogUnit
}

// Pixels converts value in this unit to whole pixels for the given axis.
// Everything except Pixel needs the measurement context; millimeters and
// centimeters go through inches, dialog units use the per-axis base.
func (u Unit) Pixels(value float64, ctx measure.Context, axis Axis) int {
	dpi := ctx.DPIX()
	if axis == Vertical {
		dpi = ctx.DPIY()
	}
	var px float64
	switch u {
	case Pixel:
		px = value
	case Point:
		px = value * dpi / 72
	case Inch:
		px = value * dpi
	case Millimeter:
		px = value * dpi / 25.4
	case Centimeter:
		px = value * dpi / 2.54
	case DialogUnit:
		if axis == Horizontal {
			px = value * ctx.DialogBaseX()
		} else {
			px = value * ctx.DialogBaseY()
		}
	}
	return int(math.Round(px))
}

// defaultUnit is the process-wide unit for bare numbers in encoded specs.
var defaultUnit atomic.Int32

// DefaultUnit returns the unit assumed for numbers without a unit suffix.
func DefaultUnit() Unit {
	return Unit(defaultUnit.Load())
}

// SetDefaultUnit changes the unit assumed for numbers without a unit
// suffix. The initial default is Pixel.
func SetDefaultUnit(u Unit) {
	defaultUnit.Store(int32(u))
}
