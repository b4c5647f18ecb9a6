// Package fyneform binds the formgrid engine to Fyne: a FormLayout
// implements fyne.Layout by delegating measurement and geometry to a
// grid.FormGrid over the container's canvas objects.
package fyneform

import (
	"math"

	"fyne.io/fyne/v2"

	"formgrid/pkg/grid"
	"formgrid/pkg/measure"
	"formgrid/pkg/spec"
)

// objectMeasurer measures fyne canvas objects. Fyne only exposes MinSize,
// so the minimum and preferred measures coincide under this toolkit.
type objectMeasurer struct{}

func width(c any) int {
	return int(math.Ceil(float64(c.(fyne.CanvasObject).MinSize().Width)))
}

func height(c any) int {
	return int(math.Ceil(float64(c.(fyne.CanvasObject).MinSize().Height)))
}

func (objectMeasurer) MinimumWidth(c any) int    { return width(c) }
func (objectMeasurer) MinimumHeight(c any) int   { return height(c) }
func (objectMeasurer) PreferredWidth(c any) int  { return width(c) }
func (objectMeasurer) PreferredHeight(c any) int { return height(c) }

// FormLayout lays out a fyne container along a FormGrid. Objects must be
// registered with Add before the container's first layout pass; objects in
// the container but never Added are left untouched.
type FormLayout struct {
	grid *grid.FormGrid
}

// New parses the encoded column and row specs against the root layout map.
func New(cols, rows string) (*FormLayout, error) {
	g, err := grid.Parse(cols, rows, nil, objectMeasurer{}, measure.Default())
	if err != nil {
		return nil, err
	}
	return &FormLayout{grid: g}, nil
}

// NewWithMap parses the encoded specs against a custom layout map and unit
// context.
func NewWithMap(cols, rows string, lm *spec.LayoutMap, units measure.Context) (*FormLayout, error) {
	g, err := grid.Parse(cols, rows, lm, objectMeasurer{}, units)
	if err != nil {
		return nil, err
	}
	return &FormLayout{grid: g}, nil
}

// Grid exposes the underlying grid for mutation (groups, extra columns).
func (f *FormLayout) Grid() *grid.FormGrid { return f.grid }

// Add places an object on the grid.
func (f *FormLayout) Add(obj fyne.CanvasObject, cc grid.CellConstraints) error {
	return f.grid.Add(obj, cc)
}

// MinSize implements fyne.Layout.
func (f *FormLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	w, h, err := f.grid.PreferredSize()
	if err != nil {
		// A placement outside the grid is a programming error, consistent
		// with fyne's own panics on misuse.
		panic(err)
	}
	return fyne.NewSize(float32(w), float32(h))
}

// Layout implements fyne.Layout.
func (f *FormLayout) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	bounds, err := f.grid.Layout(int(size.Width), int(size.Height))
	if err != nil {
		panic(err)
	}
	for _, b := range bounds {
		obj, ok := b.Component.(fyne.CanvasObject)
		if !ok {
			continue
		}
		obj.Move(fyne.NewPos(float32(b.Bounds.X), float32(b.Bounds.Y)))
		obj.Resize(fyne.NewSize(float32(b.Bounds.Width), float32(b.Bounds.Height)))
	}
}
