// SPDX-License-Identifier: Unlicense OR MIT

package heatgrid

import (
	"image"
	"testing"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellSideFormula(t *testing.T) {
	labelW := []int{50, 32}
	labelH := []int{16, 16}
	m := computeMetrics(400, [4]int{10, 10, 10, 10}, labelW, labelH, nil, 14, 7, 8, 8, 8, Leading, Leading)

	// labelArea = 50+8, gridAvail = 400-20-58 = 322,
	// side = (322 - 6*8)/7 = 274/7.
	assert.Equal(t, 58, m.labelArea)
	assert.InDelta(t, 274.0/7.0, float64(m.side), 1e-4)
	assert.InDelta(t, 274.0/7.0+8, float64(m.span), 1e-4)
}

func TestCellSideClampedAtZero(t *testing.T) {
	m := computeMetrics(10, [4]int{10, 10, 0, 0}, []int{50}, []int{16}, nil, 14, 7, 8, 8, 8, Leading, Leading)
	assert.Zero(t, m.side, "cell side must clamp at zero, not go negative")
}

func TestZeroColumnsIsTotal(t *testing.T) {
	m := computeMetrics(400, [4]int{0, 0, 0, 0}, []int{20}, []int{16}, nil, 14, 0, 8, 8, 8, Leading, Leading)
	assert.Zero(t, m.side)
	assert.Zero(t, m.gridSpan(m.cols))
}

func TestZeroRowsHeight(t *testing.T) {
	m := computeMetrics(400, [4]int{5, 5, 7, 9}, nil, nil, nil, 14, 7, 8, 8, 8, Leading, Leading)
	assert.Zero(t, m.labelArea, "no rows, no label area")
	// Header band plus vertical padding only.
	assert.Equal(t, 7+9+(8+14), m.height)
}

func TestContentHeight(t *testing.T) {
	m := computeMetrics(400, [4]int{0, 0, 0, 0}, []int{10, 10, 10}, []int{16, 16, 16}, nil, 14, 7, 8, 8, 8, Leading, Leading)
	want := (8 + 14) + round(3*m.side+2*8)
	assert.Equal(t, want, m.height)
}

func TestCellRectSpacing(t *testing.T) {
	m := computeMetrics(397, [4]int{3, 3, 0, 0}, []int{21}, []int{16}, nil, 14, 7, 8, 8, 8, Leading, Leading)
	require.Greater(t, m.side, float32(0))
	for col := 1; col < 7; col++ {
		prev := m.cellRect(0, col-1)
		cur := m.cellRect(0, col)
		// Rounding both edges from the same fractional coordinates
		// keeps neighbors exactly one gap apart.
		assert.Equal(t, m.gap, cur.Min.X-prev.Max.X, "gap between columns %d and %d", col-1, col)
	}
	first := m.cellRect(0, 0)
	assert.Equal(t, m.originX, first.Min.X)
	assert.Equal(t, m.originY, first.Min.Y)
}

func TestOrigins(t *testing.T) {
	lead := computeMetrics(400, [4]int{10, 20, 30, 40}, []int{50}, []int{16}, nil, 14, 7, 8, 8, 8, Leading, Leading)
	assert.Equal(t, 10+58, lead.originX)
	assert.Equal(t, 30+(8+14), lead.originY)

	trail := computeMetrics(400, [4]int{10, 20, 30, 40}, []int{50}, []int{16}, nil, 14, 7, 8, 8, 8, Trailing, Trailing)
	assert.Equal(t, 10, trail.originX)
	assert.Equal(t, 30, trail.originY)
}

func testContext(width, height int) layout.Context {
	return layout.Context{
		Constraints: layout.Constraints{Max: image.Pt(width, height)},
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Ops:         new(op.Ops),
	}
}

func TestSetterIdempotence(t *testing.T) {
	lt := text.NewShaper(text.WithCollection(gofont.Collection()))
	g := New(DefaultConfig())
	g.SetRows([]Row{
		{Label: "Allen", Cells: map[int]any{0: 1}},
		{Label: "Beth", Cells: map[int]any{3: 2}},
	}, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"})

	g.Layout(testContext(400, 300), lt)
	before := g.metrics

	// Re-applying the current values must not invalidate the cached
	// geometry, and a re-measure must reproduce it exactly.
	g.SetCellGap(unit.Dp(8))
	g.SetLabelGap(unit.Dp(8))
	g.SetLabelSize(unit.Sp(14))
	g.SetHeaderPosition(Leading)
	require.True(t, g.valid)

	g.Layout(testContext(400, 300), lt)
	assert.Equal(t, before, g.metrics)
}

func TestSetterInvalidates(t *testing.T) {
	lt := text.NewShaper(text.WithCollection(gofont.Collection()))
	g := New(DefaultConfig())
	g.SetRows([]Row{{Label: "Allen", Cells: map[int]any{0: 1}}}, []string{"Mon", "Tue", "Wed"})

	g.Layout(testContext(400, 300), lt)
	before := g.metrics.side

	g.SetCellGap(unit.Dp(2))
	require.False(t, g.valid)
	g.Layout(testContext(400, 300), lt)
	assert.Greater(t, g.metrics.side, before, "smaller gap leaves more room per cell")
}
