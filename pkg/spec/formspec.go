package spec

import (
	"fmt"
	"strconv"
	"strings"
)

// Spec describes one column or row: a default alignment for components in
// it, a size, and a non-negative resize weight. Weight 0 means the column
// or row never shares in extra space.
type Spec struct {
	Axis   Axis
	Align  Alignment
	Size   Size
	Resize float64
}

// NoGrow and DefaultGrow are the customary resize weights.
const (
	NoGrow      = 0.0
	DefaultGrow = 1.0
)

func newSpec(axis Axis, align Alignment, size Size, resize float64) (Spec, error) {
	if resize < 0 {
		return Spec{}, fmt.Errorf("resize weight must not be negative, got %v", resize)
	}
	if align == AlignDefault {
		align = defaultAlignment(axis)
	}
	if !align.ValidFor(axis) {
		return Spec{}, fmt.Errorf("alignment %s is not valid for a %s", align, axis)
	}
	return Spec{Axis: axis, Align: align, Size: size, Resize: resize}, nil
}

// NewColumnSpec builds a column spec, failing fast on a negative weight or
// a vertical alignment.
func NewColumnSpec(align Alignment, size Size, resize float64) (Spec, error) {
	return newSpec(Horizontal, align, size, resize)
}

// NewRowSpec builds a row spec, failing fast on a negative weight or a
// horizontal alignment.
func NewRowSpec(align Alignment, size Size, resize float64) (Spec, error) {
	return newSpec(Vertical, align, size, resize)
}

// ColumnGap returns a fixed, non-growing column of the given size, the
// common shape for gap columns.
func ColumnGap(size Size) Spec {
	s, _ := NewColumnSpec(AlignFill, size, NoGrow)
	return s
}

// RowGap returns a fixed, non-growing row of the given size.
func RowGap(size Size) Spec {
	s, _ := NewRowSpec(AlignCenter, size, NoGrow)
	return s
}

// Encode renders the spec in the compact syntax understood by the parser.
// The alignment is omitted when it equals the axis default, the resize
// suffix when the weight is zero.
func (s Spec) Encode() string {
	var b strings.Builder
	if s.Align != defaultAlignment(s.Axis) {
		b.WriteString(s.Align.abbrev())
		b.WriteByte(':')
	}
	b.WriteString(s.Size.Encode())
	if s.Resize > 0 {
		if s.Resize == DefaultGrow {
			b.WriteString(":grow")
		} else {
			b.WriteString(":grow(" + strconv.FormatFloat(s.Resize, 'f', -1, 64) + ")")
		}
	}
	return b.String()
}
