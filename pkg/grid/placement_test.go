package grid

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formgrid/pkg/spec"
)

func TestPlacement_AlignmentMath(t *testing.T) {
	// One 100x50 cell, one 40x20 component.
	tests := []struct {
		name string
		h, v spec.Alignment
		want Rect
	}{
		{"left top", spec.AlignLeft, spec.AlignTop, Rect{0, 0, 40, 20}},
		{"right bottom", spec.AlignRight, spec.AlignBottom, Rect{60, 30, 40, 20}},
		{"center center", spec.AlignCenter, spec.AlignCenter, Rect{30, 15, 40, 20}},
		{"fill fill", spec.AlignFill, spec.AlignFill, Rect{0, 0, 100, 50}},
		{"fill h only", spec.AlignFill, spec.AlignTop, Rect{0, 0, 100, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, "100px", "50px")
			require.NoError(t, g.Add(fixed(40, 20), Cell(1, 1).Aligned(tt.h, tt.v)))
			bounds, err := g.Layout(100, 50)
			require.NoError(t, err)
			assert.Equal(t, tt.want, bounds[0].Bounds)
		})
	}
}

func TestPlacement_DefaultAlignmentFollowsSpec(t *testing.T) {
	// Column declared right-aligned; the placement leaves alignment default.
	g := mustGrid(t, "right:100px", "t:50px")
	require.NoError(t, g.Add(fixed(40, 20), Cell(1, 1)))
	bounds, err := g.Layout(100, 50)
	require.NoError(t, err)
	assert.Equal(t, Rect{60, 0, 40, 20}, bounds[0].Bounds)
}

func TestPlacement_DefaultAlignmentOnSpanIsFill(t *testing.T) {
	g := mustGrid(t, "right:50px, right:50px", "50px")
	require.NoError(t, g.Add(fixed(40, 20), CellSpan(1, 1, 2, 1)))
	bounds, err := g.Layout(100, 50)
	require.NoError(t, err)
	assert.Equal(t, 100, bounds[0].Bounds.Width, "multi-span default resolves to fill")
}

func TestPlacement_Insets(t *testing.T) {
	g := mustGrid(t, "100px", "50px")
	cc := Cell(1, 1).Aligned(spec.AlignFill, spec.AlignFill).
		WithInsets(Insets{Top: 2, Left: 4, Bottom: 6, Right: 8})
	require.NoError(t, g.Add(fixed(40, 20), cc))
	bounds, err := g.Layout(100, 50)
	require.NoError(t, err)
	assert.Equal(t, Rect{4, 2, 88, 42}, bounds[0].Bounds)
}

func TestPlacement_ComponentLargerThanCell(t *testing.T) {
	g := mustGrid(t, "30px", "50px")
	require.NoError(t, g.Add(fixed(40, 20), Cell(1, 1).Aligned(spec.AlignLeft, spec.AlignTop)))
	bounds, err := g.Layout(30, 50)
	require.NoError(t, err)
	assert.Equal(t, 30, bounds[0].Bounds.Width, "natural size caps at the cell extent")
}

func TestBounds_NonPositiveRejectedAtAdd(t *testing.T) {
	g := mustGrid(t, "10px, 10px", "10px")
	var be *BoundsError

	err := g.Add(fixed(1, 1), Cell(0, 1))
	require.Error(t, err)
	require.True(t, errors.As(err, &be))
	assert.Equal(t, spec.Horizontal, be.Axis)
	assert.Equal(t, 0, be.Index)

	err = g.Add(fixed(1, 1), CellSpan(1, 1, -2, 1))
	require.Error(t, err)
	require.True(t, errors.As(err, &be))
	assert.Equal(t, -2, be.Span)

	err = g.Add(fixed(1, 1), CellSpan(1, 0, 1, 1))
	require.Error(t, err)
	require.True(t, errors.As(err, &be))
	assert.Equal(t, spec.Vertical, be.Axis)
}

func TestBounds_ExtentCheckedAtLayout(t *testing.T) {
	g := mustGrid(t, "10px, 10px", "10px")
	// Legal when added: the extent check waits for layout.
	require.NoError(t, g.Add(fixed(1, 1), CellSpan(2, 1, 1, 1)))
	require.NoError(t, g.RemoveColumn(2))

	_, err := g.LayoutInfo(10, 10)
	require.Error(t, err)
	var be *BoundsError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 2, be.Index)
	assert.Equal(t, 1, be.Extent)
	assert.True(t, strings.Contains(be.Error(), "2"), "message names the offending index")
	assert.True(t, strings.Contains(be.Error(), "1 column"), "message names the grid extent")
}

func TestBounds_SpanBeyondExtent(t *testing.T) {
	g := mustGrid(t, "10px, 10px", "10px")
	require.NoError(t, g.Add(fixed(1, 1), CellSpan(2, 1, 2, 1)))
	_, err := g.Layout(20, 10)
	require.Error(t, err)
	var be *BoundsError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, spec.Horizontal, be.Axis)
	assert.Equal(t, 2, be.Extent)
}

func TestRemove_DropsPlacement(t *testing.T) {
	g := mustGrid(t, "10px", "10px")
	c := fixed(5, 5)
	require.NoError(t, g.Add(c, Cell(1, 1)))
	g.Remove(c)
	bounds, err := g.Layout(10, 10)
	require.NoError(t, err)
	assert.Empty(t, bounds)
}
