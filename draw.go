// SPDX-License-Identifier: Unlicense OR MIT

package heatgrid

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

// fill is a resolved cell brush. A gradient op is only constructed
// when the two endpoints differ; equal endpoints paint a flat color,
// which is not merely an optimization since a degenerate gradient is
// not guaranteed to rasterize identically to a solid fill.
type fill struct {
	from, to color.NRGBA
	gradient bool
}

func makeFill(from, to color.NRGBA) fill {
	return fill{from: from, to: to, gradient: from != to}
}

// Layout processes pending pointer events against the current
// geometry snapshot and draws the grid. The returned height is the
// content height; the width is whatever the constraints offered.
func (g *Grid) Layout(gtx layout.Context, lt *text.Shaper) layout.Dimensions {
	g.ensure(gtx, lt)
	m := &g.metrics

	g.laying = true
	defer func() { g.laying = false }()

	g.update(gtx)

	size := gtx.Constraints.Constrain(image.Pt(m.width, m.height))
	if g.clickFn != nil {
		st := clip.Rect{Max: size}.Push(gtx.Ops)
		pointer.InputOp{
			Tag:   g,
			Types: pointer.Press | pointer.Release | pointer.Cancel,
		}.Add(gtx.Ops)
		st.Pop()
	}

	active := makeFill(g.cfg.ActiveFrom, g.cfg.ActiveTo)
	inactive := makeFill(g.cfg.InactiveFrom, g.cfg.InactiveTo)
	radius := gtx.Dp(g.cfg.CellRadius)

	if len(g.rows) > 0 {
		g.drawHeaders(gtx, lt, m)
	}
	for row := range g.rows {
		g.drawRow(gtx, lt, m, row, active, inactive, radius)
	}

	return layout.Dimensions{Size: size}
}

func (g *Grid) drawRow(gtx layout.Context, lt *text.Shaper, m *metrics, row int, active, inactive fill, radius int) {
	r := g.rows[row]
	bandTop := round(float32(m.originY) + float32(row)*m.span)
	bandH := round(m.side)

	if r.Label != "" {
		x := m.padLeft
		if g.cfg.LabelPos == Trailing {
			x = m.width - m.padRight - m.labelW[row]
		}
		y := bandTop + (bandH-m.labelH[row])/2
		g.drawText(gtx, lt, image.Pt(x, y), m.labelW[row], m.labelH[row], g.cfg.LabelSize, g.cfg.LabelColor, r.Label)
	}

	if m.side <= 0 || m.cols <= 0 {
		return
	}
	for col := 0; col < m.cols; col++ {
		bounds := m.cellRect(row, col)
		v, has := r.Cells[col]
		painted := false
		if g.colorFn != nil {
			// The override is consulted for every cell, active or
			// not; v is nil for cells without data.
			if c, ok := g.colorFn(v); ok {
				fillCell(gtx.Ops, bounds, radius, fill{from: c, to: c})
				painted = true
			}
		}
		if !painted {
			if has {
				fillCell(gtx.Ops, bounds, radius, active)
			} else {
				fillCell(gtx.Ops, bounds, radius, inactive)
			}
		}
		if has && g.cellFn != nil {
			// Overlay content goes on top of the finished fill.
			g.cellFn(gtx, bounds, row, col, v)
		}
	}
}

// drawHeaders paints each column header once per frame, centered on
// its column, in the band adjacent to the first row (Leading) or the
// last row (Trailing).
func (g *Grid) drawHeaders(gtx layout.Context, lt *text.Shaper, m *metrics) {
	if m.side <= 0 || m.cols <= 0 {
		return
	}
	y := m.padTop
	if g.cfg.HeaderPos == Trailing {
		y = m.originY + round(m.gridSpan(m.rows)) + gtx.Dp(g.cfg.HeaderGap)
	}
	n := min(m.cols, len(g.headers))
	for col := 0; col < n; col++ {
		h := g.headers[col]
		if h == "" {
			continue
		}
		bounds := m.cellRect(0, col)
		x := bounds.Min.X + (bounds.Dx()-m.headerW[col])/2
		g.drawText(gtx, lt, image.Pt(x, y), m.headerW[col], m.headerText, g.cfg.HeaderSize, g.cfg.HeaderColor, h)
	}
}

func (g *Grid) drawText(gtx layout.Context, lt *text.Shaper, off image.Point, w, h int, size unit.Sp, col color.NRGBA, s string) {
	trans := op.Offset(off).Push(gtx.Ops)
	macro := op.Record(gtx.Ops)
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	textMaterial := macro.Stop()
	cgtx := gtx
	cgtx.Constraints = layout.Exact(image.Pt(w, h))
	widget.Label{MaxLines: 1}.Layout(cgtx, lt, g.cfg.Font, size, s, textMaterial)
	trans.Pop()
}

func fillCell(ops *op.Ops, bounds image.Rectangle, radius int, f fill) {
	defer clip.UniformRRect(bounds, radius).Push(ops).Pop()
	if f.gradient {
		paint.LinearGradientOp{
			Stop1:  f32.Pt(float32(bounds.Min.X), float32(bounds.Min.Y)),
			Stop2:  f32.Pt(float32(bounds.Min.X), float32(bounds.Max.Y)),
			Color1: f.from,
			Color2: f.to,
		}.Add(ops)
	} else {
		paint.ColorOp{Color: f.from}.Add(ops)
	}
	paint.PaintOp{}.Add(ops)
}
