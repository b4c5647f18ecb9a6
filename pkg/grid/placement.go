package grid

import (
	"fmt"

	"formgrid/pkg/spec"
)

// Insets is the margin kept between a cell's edges and the component laid
// out inside it.
type Insets struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// CellConstraints places one component on the grid: 1-based column and row
// origins, spans, per-axis alignment, and insets. AlignDefault resolves
// against the owning column/row when the span is 1 and to Fill otherwise.
type CellConstraints struct {
	Col     int
	Row     int
	ColSpan int
	RowSpan int
	HAlign  spec.Alignment
	VAlign  spec.Alignment
	Insets  Insets
}

// Cell places a component in a single cell with default alignment.
func Cell(col, row int) CellConstraints {
	return CellSpan(col, row, 1, 1)
}

// CellSpan places a component across colSpan x rowSpan cells.
func CellSpan(col, row, colSpan, rowSpan int) CellConstraints {
	return CellConstraints{Col: col, Row: row, ColSpan: colSpan, RowSpan: rowSpan}
}

// Aligned returns a copy with explicit alignments.
func (cc CellConstraints) Aligned(h, v spec.Alignment) CellConstraints {
	cc.HAlign = h
	cc.VAlign = v
	return cc
}

// WithInsets returns a copy with the given cell margins.
func (cc CellConstraints) WithInsets(in Insets) CellConstraints {
	cc.Insets = in
	return cc
}

// originSpan returns the 1-based origin and span along one axis.
func (cc CellConstraints) originSpan(axis spec.Axis) (int, int) {
	if axis == spec.Horizontal {
		return cc.Col, cc.ColSpan
	}
	return cc.Row, cc.RowSpan
}

// BoundsError reports a placement outside the grid: a non-positive origin
// or span, or an origin+span past the grid extent. This is a programming
// error in the caller; the layout pass never clamps it away.
type BoundsError struct {
	Axis   spec.Axis
	Index  int
	Span   int
	Extent int
}

func (e *BoundsError) Error() string {
	if e.Index < 1 || e.Span < 1 {
		return fmt.Sprintf("%s placement origin %d span %d: origin and span must be positive (grid has %d %ss)",
			e.Axis, e.Index, e.Span, e.Extent, e.Axis)
	}
	return fmt.Sprintf("%s placement origin %d span %d exceeds grid with %d %ss",
		e.Axis, e.Index, e.Span, e.Extent, e.Axis)
}

// checkOrigin validates positivity only; the extent check runs at layout
// time because the grid can gain or lose columns after placement.
func (cc CellConstraints) checkOrigin(cols, rows int) *BoundsError {
	if cc.Col < 1 || cc.ColSpan < 1 {
		return &BoundsError{Axis: spec.Horizontal, Index: cc.Col, Span: cc.ColSpan, Extent: cols}
	}
	if cc.Row < 1 || cc.RowSpan < 1 {
		return &BoundsError{Axis: spec.Vertical, Index: cc.Row, Span: cc.RowSpan, Extent: rows}
	}
	return nil
}

// checkBounds validates the placement against the current grid extent.
func (cc CellConstraints) checkBounds(cols, rows int) *BoundsError {
	if be := cc.checkOrigin(cols, rows); be != nil {
		return be
	}
	if cc.Col+cc.ColSpan-1 > cols {
		return &BoundsError{Axis: spec.Horizontal, Index: cc.Col, Span: cc.ColSpan, Extent: cols}
	}
	if cc.Row+cc.RowSpan-1 > rows {
		return &BoundsError{Axis: spec.Vertical, Index: cc.Row, Span: cc.RowSpan, Extent: rows}
	}
	return nil
}

// Placement binds a component to its cell constraints for one layout pass.
type Placement struct {
	Component any
	Cell      CellConstraints
}

// Rect is a pixel-space bounding box.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ComponentBounds is the final geometry computed for one placed component.
type ComponentBounds struct {
	Component any
	Bounds    Rect
}
