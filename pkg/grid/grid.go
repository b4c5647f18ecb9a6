package grid

import (
	"fmt"

	"formgrid/pkg/measure"
	"formgrid/pkg/spec"
)

// Measurer supplies component extents to the engine. The three measures of
// the size model map onto it as minimum, preferred, and default==preferred;
// compressibility is a property of the column's size kind, not of the
// component.
type Measurer interface {
	MinimumWidth(c any) int
	MinimumHeight(c any) int
	PreferredWidth(c any) int
	PreferredHeight(c any) int
}

// NopMeasurer measures every component as zero-sized. Useful for grids laid
// out purely from constant specs.
type NopMeasurer struct{}

func (NopMeasurer) MinimumWidth(any) int    { return 0 }
func (NopMeasurer) MinimumHeight(any) int   { return 0 }
func (NopMeasurer) PreferredWidth(any) int  { return 0 }
func (NopMeasurer) PreferredHeight(any) int { return 0 }

// FormGrid is the layout model: ordered column and row specs (1-based),
// optional synchronized groups, and the component placements of the current
// layout pass. Geometry is cached per generation: any mutation bumps the
// generation and the next LayoutInfo call recomputes.
//
// FormGrid is not safe for concurrent use; it is meant to be confined to
// the toolkit's UI thread.
type FormGrid struct {
	cols       []spec.Spec
	rows       []spec.Spec
	colGroups  [][]int
	rowGroups  [][]int
	placements []Placement
	measurer   Measurer
	units      measure.Context

	gen       uint64
	cachedGen uint64
	cachedW   int
	cachedH   int
	cached    *LayoutInfo
}

// New builds a grid from already-constructed specs. A nil measurer means no
// component-measured sizes resolve above zero; nil units falls back to
// measure.Default().
func New(cols, rows []spec.Spec, m Measurer, units measure.Context) *FormGrid {
	if m == nil {
		m = NopMeasurer{}
	}
	if units == nil {
		units = measure.Default()
	}
	return &FormGrid{cols: cols, rows: rows, measurer: m, units: units}
}

// Parse builds a grid from encoded column and row spec lists, expanding
// variables through lm (nil uses the root map).
func Parse(colsEncoded, rowsEncoded string, lm *spec.LayoutMap, m Measurer, units measure.Context) (*FormGrid, error) {
	cols, err := spec.ParseColumnSpecs(colsEncoded, lm)
	if err != nil {
		return nil, err
	}
	rows, err := spec.ParseRowSpecs(rowsEncoded, lm)
	if err != nil {
		return nil, err
	}
	return New(cols, rows, m, units), nil
}

// ColumnCount returns the number of columns.
func (g *FormGrid) ColumnCount() int { return len(g.cols) }

// RowCount returns the number of rows.
func (g *FormGrid) RowCount() int { return len(g.rows) }

// ColumnSpec returns the spec of the 1-based column index.
func (g *FormGrid) ColumnSpec(index int) spec.Spec { return g.cols[index-1] }

// RowSpec returns the spec of the 1-based row index.
func (g *FormGrid) RowSpec(index int) spec.Spec { return g.rows[index-1] }

// invalidate bumps the generation so the cached layout info is discarded.
func (g *FormGrid) invalidate() { g.gen++ }

// AppendColumn adds a column after the last one.
func (g *FormGrid) AppendColumn(s spec.Spec) {
	g.cols = append(g.cols, s)
	g.invalidate()
}

// InsertColumn inserts a column at the 1-based index, shifting later
// columns right. Placements and groups are not renumbered.
func (g *FormGrid) InsertColumn(index int, s spec.Spec) error {
	if index < 1 || index > len(g.cols)+1 {
		return fmt.Errorf("insert column at %d: index out of range 1..%d", index, len(g.cols)+1)
	}
	g.cols = append(g.cols[:index-1], append([]spec.Spec{s}, g.cols[index-1:]...)...)
	g.invalidate()
	return nil
}

// RemoveColumn removes the 1-based column. A placement still referencing it
// surfaces as a bounds error on the next layout.
func (g *FormGrid) RemoveColumn(index int) error {
	if index < 1 || index > len(g.cols) {
		return fmt.Errorf("remove column %d: index out of range 1..%d", index, len(g.cols))
	}
	g.cols = append(g.cols[:index-1], g.cols[index:]...)
	g.invalidate()
	return nil
}

// AppendRow adds a row after the last one.
func (g *FormGrid) AppendRow(s spec.Spec) {
	g.rows = append(g.rows, s)
	g.invalidate()
}

// InsertRow inserts a row at the 1-based index.
func (g *FormGrid) InsertRow(index int, s spec.Spec) error {
	if index < 1 || index > len(g.rows)+1 {
		return fmt.Errorf("insert row at %d: index out of range 1..%d", index, len(g.rows)+1)
	}
	g.rows = append(g.rows[:index-1], append([]spec.Spec{s}, g.rows[index-1:]...)...)
	g.invalidate()
	return nil
}

// RemoveRow removes the 1-based row.
func (g *FormGrid) RemoveRow(index int) error {
	if index < 1 || index > len(g.rows) {
		return fmt.Errorf("remove row %d: index out of range 1..%d", index, len(g.rows))
	}
	g.rows = append(g.rows[:index-1], g.rows[index:]...)
	g.invalidate()
	return nil
}

// validateGroups rejects out-of-range indices and indices grouped twice.
func validateGroups(groups [][]int, extent int, axis spec.Axis) error {
	seen := make(map[int]bool)
	for _, group := range groups {
		for _, idx := range group {
			if idx < 1 || idx > extent {
				return fmt.Errorf("%s group index %d out of range 1..%d", axis, idx, extent)
			}
			if seen[idx] {
				return fmt.Errorf("%s %d appears in more than one group", axis, idx)
			}
			seen[idx] = true
		}
	}
	return nil
}

// SetColumnGroups declares sets of columns that share one synchronized
// size: after measurement every member gets the group maximum.
func (g *FormGrid) SetColumnGroups(groups [][]int) error {
	if err := validateGroups(groups, len(g.cols), spec.Horizontal); err != nil {
		return err
	}
	g.colGroups = groups
	g.invalidate()
	return nil
}

// SetRowGroups declares sets of rows that share one synchronized size.
func (g *FormGrid) SetRowGroups(groups [][]int) error {
	if err := validateGroups(groups, len(g.rows), spec.Vertical); err != nil {
		return err
	}
	g.rowGroups = groups
	g.invalidate()
	return nil
}

// Add places a component on the grid. Non-positive origins or spans fail
// here; the extent check waits until layout because the grid may still
// change shape.
func (g *FormGrid) Add(c any, cc CellConstraints) error {
	if be := cc.checkOrigin(len(g.cols), len(g.rows)); be != nil {
		return be
	}
	g.placements = append(g.placements, Placement{Component: c, Cell: cc})
	g.invalidate()
	return nil
}

// Remove drops every placement of the given component.
func (g *FormGrid) Remove(c any) {
	kept := g.placements[:0]
	for _, p := range g.placements {
		if p.Component != c {
			kept = append(kept, p)
		}
	}
	g.placements = kept
	g.invalidate()
}

// Placements returns the current placements in insertion order.
func (g *FormGrid) Placements() []Placement { return g.placements }

// LayoutInfo resolves the grid against the target container size and
// returns the origin arrays. Results are cached until the grid mutates or
// the target changes. A non-positive target dimension yields the natural
// (measured) size along that axis.
func (g *FormGrid) LayoutInfo(width, height int) (*LayoutInfo, error) {
	if g.cached != nil && g.cachedGen == g.gen && g.cachedW == width && g.cachedH == height {
		return g.cached, nil
	}
	for _, p := range g.placements {
		if be := p.Cell.checkBounds(len(g.cols), len(g.rows)); be != nil {
			return nil, be
		}
	}
	colSizes, _ := g.computeAxis(spec.Horizontal, width)
	rowSizes, _ := g.computeAxis(spec.Vertical, height)
	info := &LayoutInfo{
		ColumnOrigins: origins(colSizes),
		RowOrigins:    origins(rowSizes),
	}
	g.cached = info
	g.cachedGen = g.gen
	g.cachedW = width
	g.cachedH = height
	return info, nil
}

// MinimumSize returns the smallest container size the grid accepts without
// compressing below component minimums. Multi-span components widen the
// reported minimum when the columns or rows they span fall short of their
// own minimum measure.
func (g *FormGrid) MinimumSize() (int, int, error) {
	for _, p := range g.placements {
		if be := p.Cell.checkBounds(len(g.cols), len(g.rows)); be != nil {
			return 0, 0, be
		}
	}
	_, colMins := g.computeAxis(spec.Horizontal, 0)
	_, rowMins := g.computeAxis(spec.Vertical, 0)
	return sum(colMins), sum(rowMins), nil
}

// PreferredSize returns the natural size of the grid.
func (g *FormGrid) PreferredSize() (int, int, error) {
	info, err := g.LayoutInfo(0, 0)
	if err != nil {
		return 0, 0, err
	}
	return info.Width(), info.Height(), nil
}

// Layout resolves the grid and returns final bounds for every placed
// component.
func (g *FormGrid) Layout(width, height int) ([]ComponentBounds, error) {
	info, err := g.LayoutInfo(width, height)
	if err != nil {
		return nil, err
	}
	out := make([]ComponentBounds, 0, len(g.placements))
	for _, p := range g.placements {
		out = append(out, ComponentBounds{
			Component: p.Component,
			Bounds:    g.componentBounds(p, info),
		})
	}
	return out, nil
}

// LayoutInfo holds the resolved geometry of one layout pass: running
// origins per axis, one more entry than there are columns/rows, so origin
// deltas are cell sizes and the last entry is the total extent.
type LayoutInfo struct {
	ColumnOrigins []int
	RowOrigins    []int
}

// Width returns the total grid width.
func (li *LayoutInfo) Width() int {
	return li.ColumnOrigins[len(li.ColumnOrigins)-1] - li.ColumnOrigins[0]
}

// Height returns the total grid height.
func (li *LayoutInfo) Height() int {
	return li.RowOrigins[len(li.RowOrigins)-1] - li.RowOrigins[0]
}

func origins(sizes []int) []int {
	out := make([]int, len(sizes)+1)
	for i, s := range sizes {
		out[i+1] = out[i] + s
	}
	return out
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
