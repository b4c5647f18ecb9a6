package spec

import "fmt"

// Alignment positions a component inside its cell, or sets the default for
// a whole column or row. Left/Center/Right/Fill are legal on columns,
// Top/Center/Bottom/Fill on rows. AlignDefault on a placement defers to the
// owning column's or row's default.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignTop
	AlignBottom
	AlignFill
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignTop:
		return "top"
	case AlignBottom:
		return "bottom"
	case AlignFill:
		return "fill"
	}
	return "default"
}

// abbrev is the single-letter encoding used by Encode.
func (a Alignment) abbrev() string {
	switch a {
	case AlignLeft:
		return "l"
	case AlignCenter:
		return "c"
	case AlignRight:
		return "r"
	case AlignTop:
		return "t"
	case AlignBottom:
		return "b"
	case AlignFill:
		return "f"
	}
	return "d"
}

// ValidFor reports whether the alignment is legal on the given axis.
func (a Alignment) ValidFor(axis Axis) bool {
	switch a {
	case AlignCenter, AlignFill, AlignDefault:
		return true
	case AlignLeft, AlignRight:
		return axis == Horizontal
	case AlignTop, AlignBottom:
		return axis == Vertical
	}
	return false
}

// defaultAlignment is the alignment used when an encoded spec omits the
// prefix: columns fill, rows center.
func defaultAlignment(axis Axis) Alignment {
	if axis == Horizontal {
		return AlignFill
	}
	return AlignCenter
}

// parseAlignment decodes an alignment token for the given axis. Tokens are
// case-insensitive single letters or full words. Returns false if the token
// is not an alignment at all; returns an error if it is one but is illegal
// on this axis.
func parseAlignment(token string, axis Axis) (Alignment, bool, error) {
	var a Alignment
	switch token {
	case "l", "left":
		a = AlignLeft
	case "c", "center":
		a = AlignCenter
	case "r", "right":
		a = AlignRight
	case "t", "top":
		a = AlignTop
	case "b", "bottom":
		a = AlignBottom
	case "f", "fill":
		a = AlignFill
	case "d", "default":
		a = AlignDefault
	default:
		return AlignDefault, false, nil
	}
	if !a.ValidFor(axis) {
		return AlignDefault, true, fmt.Errorf("alignment %q is not valid for a %s", token, axis)
	}
	return a, true, nil
}
