// SPDX-License-Identifier: Unlicense OR MIT

package heatgrid

import (
	"image"

	"gioui.org/font"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"

	"golang.org/x/image/math/fixed"
)

// metrics is one geometry snapshot, computed from the available width,
// the configuration and the measured label and header strings. Paint
// and hit-testing both derive cell rectangles from the same snapshot
// through cellRect, so they can never disagree.
type metrics struct {
	width, height int
	metric        unit.Metric

	rows, cols int

	// side is the cell edge length; span is side plus the cell gap,
	// the stride between neighboring cells on either axis.
	side float32
	span float32
	gap  int

	labelArea  int
	headerArea int
	headerText int

	// originX, originY locate the top-left cell, inset and axis
	// decorations included.
	originX, originY int

	padLeft, padRight, padTop, padBottom int

	labelW, labelH []int
	headerW        []int
}

// computeMetrics resolves the grid geometry. It is total: any
// combination of non-negative inputs yields a snapshot with
// side >= 0 and no division by zero.
func computeMetrics(width int, pad [4]int, labelW, labelH, headerW []int, headerText, cols, gapPx, labelGapPx, headerGapPx int, labelPos, headerPos Position) metrics {
	m := metrics{
		width:      width,
		rows:       len(labelW),
		cols:       cols,
		gap:        gapPx,
		headerText: headerText,
		padLeft:    pad[0],
		padRight:   pad[1],
		padTop:     pad[2],
		padBottom:  pad[3],
		labelW:     labelW,
		labelH:     labelH,
		headerW:    headerW,
	}

	if m.rows > 0 {
		maxLabel := 0
		for _, w := range labelW {
			if w > maxLabel {
				maxLabel = w
			}
		}
		m.labelArea = maxLabel + labelGapPx
	}

	gridAvail := width - m.padLeft - m.padRight - m.labelArea
	if gridAvail < 0 {
		gridAvail = 0
	}
	if cols > 0 {
		m.side = float32(gridAvail-(cols-1)*gapPx) / float32(cols)
		if m.side < 0 {
			m.side = 0
		}
	}
	m.span = m.side + float32(gapPx)

	m.headerArea = headerGapPx + headerText

	m.originX = m.padLeft
	if labelPos == Leading {
		m.originX += m.labelArea
	}
	m.originY = m.padTop
	if headerPos == Leading {
		m.originY += m.headerArea
	}

	m.height = m.padTop + m.padBottom + m.headerArea
	if m.rows > 0 {
		m.height += round(float32(m.rows)*m.side + float32((m.rows-1)*gapPx))
	}
	return m
}

// cellRect returns the pixel bounds of the cell at (row, col). Both
// edges are rounded from the same fractional coordinates, keeping
// adjacent cells exactly one gap apart regardless of the fractional
// cell side.
func (m *metrics) cellRect(row, col int) image.Rectangle {
	x := float32(m.originX) + float32(col)*m.span
	y := float32(m.originY) + float32(row)*m.span
	return image.Rect(round(x), round(y), round(x+m.side), round(y+m.side))
}

// gridSpan reports the extent of the cell area on one axis for n
// cells: n*(side+gap) - gap.
func (m *metrics) gridSpan(n int) float32 {
	if n <= 0 {
		return 0
	}
	return float32(n)*m.span - float32(m.gap)
}

// ensure recomputes the metrics snapshot when the configuration or
// data changed, or when the available width or display metric differs
// from the cached pass.
func (g *Grid) ensure(gtx layout.Context, lt *text.Shaper) {
	width := gtx.Constraints.Max.X
	if g.valid && g.metrics.width == width && g.metrics.metric == gtx.Metric {
		return
	}

	pad := [4]int{
		gtx.Dp(g.cfg.Inset.Left),
		gtx.Dp(g.cfg.Inset.Right),
		gtx.Dp(g.cfg.Inset.Top),
		gtx.Dp(g.cfg.Inset.Bottom),
	}
	labelPx := gtx.Sp(g.cfg.LabelSize)
	headerPx := gtx.Sp(g.cfg.HeaderSize)

	labelW := make([]int, len(g.rows))
	labelH := make([]int, len(g.rows))
	for i, r := range g.rows {
		labelW[i], labelH[i] = measureText(lt, g.cfg.Font, labelPx, gtx.Locale, r.Label)
	}
	headerW := make([]int, len(g.headers))
	headerText := 0
	for i, h := range g.headers {
		var th int
		headerW[i], th = measureText(lt, g.cfg.Font, headerPx, gtx.Locale, h)
		if th > headerText {
			headerText = th
		}
	}
	if headerText == 0 {
		// The header band is reserved even before headers are bound;
		// probe the font for a stable text height.
		_, headerText = measureText(lt, g.cfg.Font, headerPx, gtx.Locale, "Ag")
	}

	m := computeMetrics(width, pad, labelW, labelH, headerW, headerText, g.cols,
		gtx.Dp(g.cfg.CellGap), gtx.Dp(g.cfg.LabelGap), gtx.Dp(g.cfg.HeaderGap),
		g.cfg.LabelPos, g.cfg.HeaderPos)
	m.metric = gtx.Metric
	g.metrics = m
	g.valid = true
}

// measureText shapes s at the given pixel size and returns its width
// and height, the height being the maximum ascent plus descent over
// the shaped glyphs.
func measureText(lt *text.Shaper, f font.Font, sizePx int, lc system.Locale, s string) (w, h int) {
	lt.LayoutString(text.Parameters{
		Font:     f,
		PxPerEm:  fixed.I(sizePx),
		MaxLines: 1,
		MaxWidth: 1e6,
		Locale:   lc,
	}, s)
	var width fixed.Int26_6
	var ascent, descent int
	for {
		gl, ok := lt.NextGlyph()
		if !ok {
			break
		}
		if end := gl.X + gl.Advance; end > width {
			width = end
		}
		if a := gl.Ascent.Ceil(); a > ascent {
			ascent = a
		}
		if d := gl.Descent.Ceil(); d > descent {
			descent = d
		}
	}
	return width.Ceil(), ascent + descent
}

func round(v float32) int {
	return int(v + 0.5)
}
