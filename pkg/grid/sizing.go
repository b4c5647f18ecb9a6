package grid

import (
	"math"

	"formgrid/pkg/spec"
)

// The sizing algorithm runs per axis, columns and rows independently:
//
//  1. resolve every spec's size over the components spanning exactly one
//     cell on that axis,
//  2. synchronize declared groups to the group maximum,
//  3. widen spanned columns/rows whose combined size falls short of a
//     multi-span component, iterated with step 2 to a fixed point,
//  4. fit the result to the target: distribute extra space by resize
//     weight, or compress Default-sized columns/rows down toward their
//     minimums. Overflow past the target is allowed, never clipped.

func (g *FormGrid) specsFor(axis spec.Axis) []spec.Spec {
	if axis == spec.Horizontal {
		return g.cols
	}
	return g.rows
}

func (g *FormGrid) groupsFor(axis spec.Axis) [][]int {
	if axis == spec.Horizontal {
		return g.colGroups
	}
	return g.rowGroups
}

// measuresFor returns the minimum and preferred measure functions along one
// axis.
func (g *FormGrid) measuresFor(axis spec.Axis) (spec.MeasureFunc, spec.MeasureFunc) {
	if axis == spec.Horizontal {
		return g.measurer.MinimumWidth, g.measurer.PreferredWidth
	}
	return g.measurer.MinimumHeight, g.measurer.PreferredHeight
}

// computeAxis resolves one axis against the target extent and returns the
// final sizes plus the per-column minimums. A non-positive target skips
// fitting and yields natural sizes.
func (g *FormGrid) computeAxis(axis spec.Axis, target int) (sizes, mins []int) {
	specs := g.specsFor(axis)
	groups := g.groupsFor(axis)
	minFn, prefFn := g.measuresFor(axis)
	n := len(specs)

	ctxs := make([]*spec.ResolveContext, n)
	for i := range ctxs {
		ctxs[i] = &spec.ResolveContext{
			Units: g.units,
			Axis:  axis,
			Min:   minFn,
			Pref:  prefFn,
			Def:   prefFn,
		}
	}
	for _, p := range g.placements {
		origin, span := p.Cell.originSpan(axis)
		if span == 1 {
			ctxs[origin-1].Components = append(ctxs[origin-1].Components, p.Component)
		}
	}

	sizes = make([]int, n)
	mins = make([]int, n)
	for i, s := range specs {
		sizes[i] = s.Size.Resolve(ctxs[i])
		mins[i] = s.Size.ResolveMinimum(ctxs[i])
	}
	groupSync(sizes, groups)
	groupSync(mins, groups)

	// Spanning correction can interact with group synchronization when
	// overlapping multi-span components share columns, so both repeat until
	// nothing grows. Growth is monotone and each productive round widens at
	// least one column, so the axis length bounds useful iterations; the
	// cap cuts off pathological overlap, leaving a valid overflowing
	// layout.
	maxRounds := n
	if maxRounds < 2 {
		maxRounds = 2
	}
	for round := 0; round < maxRounds; round++ {
		if !g.spanCorrection(axis, sizes, specs, prefFn) {
			break
		}
		groupSync(sizes, groups)
	}
	// Minimums get the same correction against component minimums, so the
	// reported minimum size and the compression floors account for
	// multi-span components too.
	for round := 0; round < maxRounds; round++ {
		if !g.spanCorrection(axis, mins, specs, minFn) {
			break
		}
		groupSync(mins, groups)
	}

	if target > 0 {
		total := sum(sizes)
		if target > total {
			distributeExtra(sizes, specs, target-total)
		} else if target < total {
			compress(sizes, mins, specs, total-target)
		}
	}
	return sizes, mins
}

// groupSync assigns every group member the maximum size of its group.
func groupSync(sizes []int, groups [][]int) {
	for _, group := range groups {
		max := 0
		for _, idx := range group {
			if sizes[idx-1] > max {
				max = sizes[idx-1]
			}
		}
		for _, idx := range group {
			sizes[idx-1] = max
		}
	}
}

// spanCorrection widens spanned columns that fall short of a multi-span
// component's measured size. The shortfall spreads over the spanned
// columns in proportion to resize weight, or onto the last spanned column
// when none grows. Reports whether anything changed.
func (g *FormGrid) spanCorrection(axis spec.Axis, sizes []int, specs []spec.Spec, measureFn spec.MeasureFunc) bool {
	changed := false
	for _, p := range g.placements {
		origin, span := p.Cell.originSpan(axis)
		if span <= 1 {
			continue
		}
		required := measureFn(p.Component)
		current := 0
		for i := origin - 1; i < origin-1+span; i++ {
			current += sizes[i]
		}
		shortfall := required - current
		if shortfall <= 0 {
			continue
		}
		changed = true
		spread(sizes[origin-1:origin-1+span], specs[origin-1:origin-1+span], shortfall)
	}
	return changed
}

// spread distributes amount over sizes by resize weight, falling back to
// the last entry when no weight is positive. Shares are rounded
// cumulatively: each entry gets round(amount*cumWeight/totalWeight) minus
// what was handed out before it, so every share stays non-negative and the
// distributed total equals amount exactly.
func spread(sizes []int, specs []spec.Spec, amount int) {
	totalWeight := 0.0
	last := -1
	for i, s := range specs {
		if s.Resize > 0 {
			totalWeight += s.Resize
			last = i
		}
	}
	if last < 0 {
		sizes[len(sizes)-1] += amount
		return
	}
	allocated := 0
	cumWeight := 0.0
	for i, s := range specs {
		if s.Resize <= 0 {
			continue
		}
		if i == last {
			sizes[i] += amount - allocated
			break
		}
		cumWeight += s.Resize
		share := int(math.Round(float64(amount)*cumWeight/totalWeight)) - allocated
		sizes[i] += share
		allocated += share
	}
}

// distributeExtra grows weighted columns to absorb extra space. Zero-weight
// columns never grow.
func distributeExtra(sizes []int, specs []spec.Spec, extra int) {
	spread(sizes, specs, extra)
}

// compress shrinks compressible (Default-sized) columns toward their
// minimums when the target is smaller than the measured total. Each column
// gives up space in proportion to its own compression range and never drops
// below its minimum; whatever cannot be recovered overflows. Cuts are
// rounded cumulatively, mirroring spread, so the recovered total is exact.
func compress(sizes, mins []int, specs []spec.Spec, need int) {
	totalRange := 0
	for i, s := range specs {
		if s.Size.Compressible() && sizes[i] > mins[i] {
			totalRange += sizes[i] - mins[i]
		}
	}
	if totalRange <= 0 {
		return
	}
	reclaim := need
	if reclaim > totalRange {
		reclaim = totalRange
	}
	removed := 0
	cumRange := 0
	for i, s := range specs {
		if !s.Size.Compressible() || sizes[i] <= mins[i] {
			continue
		}
		cumRange += sizes[i] - mins[i]
		cut := int(math.Round(float64(reclaim)*float64(cumRange)/float64(totalRange))) - removed
		sizes[i] -= cut
		removed += cut
	}
}

// componentBounds computes the final rectangle for one placement inside the
// resolved grid.
func (g *FormGrid) componentBounds(p Placement, info *LayoutInfo) Rect {
	cc := p.Cell

	cellX := info.ColumnOrigins[cc.Col-1] + cc.Insets.Left
	cellW := info.ColumnOrigins[cc.Col+cc.ColSpan-1] - info.ColumnOrigins[cc.Col-1] - cc.Insets.Left - cc.Insets.Right
	cellY := info.RowOrigins[cc.Row-1] + cc.Insets.Top
	cellH := info.RowOrigins[cc.Row+cc.RowSpan-1] - info.RowOrigins[cc.Row-1] - cc.Insets.Top - cc.Insets.Bottom

	h := cc.HAlign
	if h == spec.AlignDefault {
		if cc.ColSpan == 1 {
			h = g.cols[cc.Col-1].Align
		} else {
			h = spec.AlignFill
		}
	}
	v := cc.VAlign
	if v == spec.AlignDefault {
		if cc.RowSpan == 1 {
			v = g.rows[cc.Row-1].Align
		} else {
			v = spec.AlignFill
		}
	}

	width := cellW
	if h != spec.AlignFill {
		if pref := g.measurer.PreferredWidth(p.Component); pref < cellW {
			width = pref
		}
	}
	height := cellH
	if v != spec.AlignFill {
		if pref := g.measurer.PreferredHeight(p.Component); pref < cellH {
			height = pref
		}
	}

	x := cellX
	switch h {
	case spec.AlignRight:
		x = cellX + cellW - width
	case spec.AlignCenter:
		x = cellX + (cellW-width)/2
	}
	y := cellY
	switch v {
	case spec.AlignBottom:
		y = cellY + cellH - height
	case spec.AlignCenter:
		y = cellY + (cellH-height)/2
	}
	return Rect{X: x, Y: y, Width: width, Height: height}
}
