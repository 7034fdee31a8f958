// SPDX-License-Identifier: Unlicense OR MIT

package heatgrid

import (
	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/layout"
)

type gridCell struct {
	row, col int
}

// update drains pending pointer events and fires the click listener
// when a press and its release land on the same cell. The grid only
// registers for input while a listener is set, so without one the
// events stay available to enclosing containers.
func (g *Grid) update(gtx layout.Context) {
	if g.clickFn == nil || gtx.Queue == nil {
		return
	}
	for _, ev := range gtx.Events(g) {
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Type {
		case pointer.Press:
			if e.Source == pointer.Mouse && e.Buttons != pointer.ButtonPrimary {
				break
			}
			if c, ok := g.resolveCell(e.Position); ok {
				g.pressed = true
				g.pressCell = c
			}
		case pointer.Cancel:
			g.pressed = false
		case pointer.Release:
			if !g.pressed {
				break
			}
			g.pressed = false
			c, ok := g.resolveCell(e.Position)
			if !ok || c != g.pressCell {
				break
			}
			v, _ := g.Cell(c.row, c.col)
			g.clickFn(c.row, c.col, v)
		}
	}
}

// resolveCell maps a pointer position to the cell drawn there. The
// candidate indices come from dividing by the cell stride; the
// position is then checked against that cell's exact bounds, so a
// point in the gap between cells resolves to nothing even though its
// divided indices are well defined.
func (g *Grid) resolveCell(p f32.Point) (gridCell, bool) {
	m := &g.metrics
	if m.cols <= 0 || m.rows == 0 || m.side <= 0 {
		return gridCell{}, false
	}
	x := p.X - float32(m.originX)
	y := p.Y - float32(m.originY)
	if x < 0 || y < 0 || x >= m.gridSpan(m.cols) || y >= m.gridSpan(m.rows) {
		return gridCell{}, false
	}
	col := int(x / m.span)
	row := int(y / m.span)
	if col >= m.cols {
		col = m.cols - 1
	}
	if row >= m.rows {
		row = m.rows - 1
	}
	r := m.cellRect(row, col)
	if p.X < float32(r.Min.X) || p.X >= float32(r.Max.X) ||
		p.Y < float32(r.Min.Y) || p.Y >= float32(r.Max.Y) {
		return gridCell{}, false
	}
	return gridCell{row: row, col: col}, true
}
