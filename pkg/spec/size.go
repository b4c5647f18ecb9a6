package spec

import (
	"fmt"
	"strconv"

	"formgrid/pkg/measure"
)

// SizeKind discriminates the closed set of size variants.
type SizeKind int

const (
	// SizeConstant is a fixed value in some unit.
	SizeConstant SizeKind = iota
	// SizeMinimum is the largest minimum size of the cell's components.
	SizeMinimum
	// SizePreferred is the largest preferred size of the cell's components.
	SizePreferred
	// SizeDefault behaves like SizePreferred but may compress down to the
	// minimum when the container is smaller than the grid wants to be.
	SizeDefault
	// SizeBounded clamps a basis size between optional constant bounds.
	SizeBounded
)

// Size describes how wide a column or how tall a row wants to be. It is a
// tagged union: Value/Unit are meaningful for SizeConstant, Basis and the
// bounds for SizeBounded, and the component-measured kinds carry no payload.
type Size struct {
	Kind  SizeKind
	Value float64
	Unit  Unit
	Basis *Size
	Lower *Size
	Upper *Size
}

// Shorthand constructors for the component-measured kinds.
func Minimum() Size   { return Size{Kind: SizeMinimum} }
func Preferred() Size { return Size{Kind: SizePreferred} }
func Default() Size   { return Size{Kind: SizeDefault} }

// Px returns a constant pixel size.
func Px(v int) Size {
	return Size{Kind: SizeConstant, Value: float64(v), Unit: Pixel}
}

// Dlu returns a constant dialog-unit size.
func Dlu(v int) Size {
	return Size{Kind: SizeConstant, Value: float64(v), Unit: DialogUnit}
}

// Constant returns a constant size with an arbitrary unit. Integral units
// (px, dlu) reject fractional values.
func Constant(v float64, u Unit) (Size, error) {
	if u.Integral() && v != float64(int(v)) {
		return Size{}, fmt.Errorf("unit %s requires an integer value, got %v", u, v)
	}
	return Size{Kind: SizeConstant, Value: v, Unit: u}, nil
}

// Bounded clamps basis between lower and upper. At least one bound must be
// present, the basis must be component-measured, and every bound must be a
// constant: a bound that itself depended on component measurement would have
// no stable value to clamp against.
func Bounded(basis Size, lower, upper *Size) (Size, error) {
	if lower == nil && upper == nil {
		return Size{}, fmt.Errorf("bounded size needs at least one bound")
	}
	if !basis.logical() {
		return Size{}, fmt.Errorf("bounded size basis must be component-measured, got %s", basis.Encode())
	}
	for _, b := range []*Size{lower, upper} {
		if b != nil && b.Kind != SizeConstant {
			return Size{}, fmt.Errorf("bounded size bounds must be constants, got %s", b.Encode())
		}
	}
	return Size{Kind: SizeBounded, Basis: &basis, Lower: lower, Upper: upper}, nil
}

// logical reports whether the size depends on component measurement.
func (s Size) logical() bool {
	return s.Kind != SizeConstant
}

// Compressible reports whether the size may shrink below its measured value
// under space pressure. Only the Default kind (directly or as a bounded
// basis) compresses.
func (s Size) Compressible() bool {
	switch s.Kind {
	case SizeDefault:
		return true
	case SizeBounded:
		return s.Basis.Compressible()
	}
	return false
}

// MeasureFunc returns a component's extent along one axis.
type MeasureFunc func(c any) int

// ResolveContext carries everything Resolve needs: the unit-conversion
// context, the axis, the components occupying the column or row, and the
// three measure functions supplied by the toolkit integration.
type ResolveContext struct {
	Units      measure.Context
	Axis       Axis
	Components []any
	Min        MeasureFunc
	Pref       MeasureFunc
	Def        MeasureFunc
}

// measureAll applies fn over every component and keeps the maximum.
func (ctx *ResolveContext) measureAll(fn MeasureFunc) int {
	max := 0
	for _, c := range ctx.Components {
		if v := fn(c); v > max {
			max = v
		}
	}
	return max
}

// Resolve computes the concrete pixel size for this variant.
func (s Size) Resolve(ctx *ResolveContext) int {
	switch s.Kind {
	case SizeConstant:
		return s.Unit.Pixels(s.Value, ctx.Units, ctx.Axis)
	case SizeMinimum:
		return ctx.measureAll(ctx.Min)
	case SizePreferred:
		return ctx.measureAll(ctx.Pref)
	case SizeDefault:
		return ctx.measureAll(ctx.Def)
	case SizeBounded:
		result := s.Basis.Resolve(ctx)
		if s.Lower != nil {
			if lo := s.Lower.Resolve(ctx); result < lo {
				result = lo
			}
		}
		if s.Upper != nil {
			if hi := s.Upper.Resolve(ctx); result > hi {
				result = hi
			}
		}
		return result
	}
	return 0
}

// ResolveMinimum is Resolve with the Default kind measured by the minimum
// measure instead of the default measure. The sizing pass uses it to find
// how far a compressible column may shrink.
func (s Size) ResolveMinimum(ctx *ResolveContext) int {
	if !s.Compressible() {
		return s.Resolve(ctx)
	}
	shrunk := *ctx
	shrunk.Def = ctx.Min
	return s.Resolve(&shrunk)
}

// Encode renders the size in the compact spec syntax.
func (s Size) Encode() string {
	switch s.Kind {
	case SizeMinimum:
		return "min"
	case SizePreferred:
		return "pref"
	case SizeDefault:
		return "default"
	case SizeConstant:
		return strconv.FormatFloat(s.Value, 'f', -1, 64) + s.Unit.String()
	case SizeBounded:
		if s.Lower != nil && s.Upper != nil {
			return "[" + s.Lower.Encode() + "," + s.Basis.Encode() + "," + s.Upper.Encode() + "]"
		}
		if s.Lower != nil {
			return "max(" + s.Lower.Encode() + ";" + s.Basis.Encode() + ")"
		}
		return "min(" + s.Upper.Encode() + ";" + s.Basis.Encode() + ")"
	}
	return ""
}
