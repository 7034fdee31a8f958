// SPDX-License-Identifier: Unlicense OR MIT

/*
Package heatgrid implements a contribution-style heatmap grid widget.

A Grid displays a list of labeled rows as bands of colored cells with a
shared set of column headers, in the manner of a calendar activity graph.
Cells holding data are filled with a vertical gradient (or a solid color
when the two gradient endpoints coincide); cells without data use a
separate inactive fill. Callers may override the fill per cell, draw
arbitrary overlay content on cells, and receive clicks resolved to the
exact (row, column, value) that was drawn.

Grid holds only state and configuration; drawing and input happen in
Layout, which must be called from a Gio frame.
*/
package heatgrid

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
)

// Position selects the side of the grid an axis decoration occupies:
// Leading places row labels left of the cells and headers above them,
// Trailing places labels right and headers below.
type Position uint8

const (
	Leading Position = iota
	Trailing
)

// Row is one horizontal band of the grid. Cells maps column index to
// the value bound at that cell; a missing key means the cell is
// inactive. Indices at or beyond the configured column count are kept
// but never drawn.
type Row struct {
	Label string
	Cells map[int]any
}

// ColorFunc resolves an override fill for a cell. It is consulted for
// every cell, including inactive ones, for which value is nil. A false
// second return falls back to the active/inactive fill.
type ColorFunc func(value any) (color.NRGBA, bool)

// CellFunc draws overlay content on a cell that holds data. It is
// invoked after the cell fill is painted, with the cell bounds in
// widget coordinates.
type CellFunc func(gtx layout.Context, bounds image.Rectangle, row, col int, value any)

// ClickFunc reports a completed click on a cell. Value is nil when the
// clicked cell holds no data.
type ClickFunc func(row, col int, value any)

// Config is the visual configuration of a Grid, resolved once at
// construction. Use DefaultConfig as a starting point.
type Config struct {
	// ActiveFrom and ActiveTo are the vertical gradient endpoints for
	// cells holding data. Equal endpoints paint a solid fill.
	ActiveFrom, ActiveTo color.NRGBA
	// InactiveFrom and InactiveTo are the endpoints for empty cells.
	InactiveFrom, InactiveTo color.NRGBA

	Font       font.Font
	CellGap    unit.Dp
	CellRadius unit.Dp

	LabelGap   unit.Dp
	LabelSize  unit.Sp
	LabelColor color.NRGBA
	LabelPos   Position

	HeaderGap   unit.Dp
	HeaderSize  unit.Sp
	HeaderColor color.NRGBA
	HeaderPos   Position

	// Inset is the padding between the widget edge and its content.
	Inset layout.Inset
}

// DefaultConfig returns the documented defaults: a green-toned active
// gradient, a flat light gray inactive fill, 8dp gaps and a 4dp corner
// radius, 14sp labels and 12sp headers.
func DefaultConfig() Config {
	return Config{
		ActiveFrom:   rgb(0x9be9a8),
		ActiveTo:     rgb(0x216e39),
		InactiveFrom: rgb(0xebedf0),
		InactiveTo:   rgb(0xebedf0),
		CellGap:      unit.Dp(8),
		CellRadius:   unit.Dp(4),
		LabelGap:     unit.Dp(8),
		LabelSize:    unit.Sp(14),
		LabelColor:   rgb(0x57606a),
		LabelPos:     Leading,
		HeaderGap:    unit.Dp(8),
		HeaderSize:   unit.Sp(12),
		HeaderColor:  rgb(0x57606a),
		HeaderPos:    Leading,
	}
}

// Grid is a heatmap grid widget. The zero value is not usable; create
// one with New. A Grid owns its row snapshot and headers exclusively:
// SetRows and Bind replace them wholesale and never merge.
type Grid struct {
	cfg Config

	rows    []Row
	headers []string
	cols    int

	colorFn ColorFunc
	cellFn  CellFunc
	clickFn ClickFunc

	metrics metrics
	valid   bool
	laying  bool

	pressed   bool
	pressCell gridCell
}

// New returns a Grid using cfg verbatim.
func New(cfg Config) *Grid {
	return &Grid{cfg: cfg}
}

// SetRows replaces the bound rows. If headers is non-nil it also
// replaces the column headers, and the header count becomes the column
// count; a nil headers keeps the previous headers and count, so data
// can be refreshed without re-specifying the axis.
func (g *Grid) SetRows(rows []Row, headers []string) {
	g.mutate()
	g.rows = rows
	if headers != nil {
		g.headers = headers
		g.cols = len(headers)
	}
	g.valid = false
}

// Bind projects items onto g. Each item contributes one row with
// label(item) and the cells extracted from details(item): the cell
// column for the detail at position p is index(detail) when index is
// non-nil, else p. Negative columns are dropped. Later details mapping
// to an occupied column overwrite it. Headers follow SetRows semantics.
func Bind[T, D any](g *Grid, items []T, label func(T) string, details func(T) []D, index func(D) int, headers []string) {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		r := Row{
			Label: label(it),
			Cells: make(map[int]any),
		}
		for p, d := range details(it) {
			col := p
			if index != nil {
				col = index(d)
			}
			if col < 0 {
				continue
			}
			r.Cells[col] = d
		}
		rows = append(rows, r)
	}
	g.SetRows(rows, headers)
}

// SetColorFunc sets the per-cell fill override. A nil fn restores the
// default active/inactive fills.
func (g *Grid) SetColorFunc(fn ColorFunc) {
	g.mutate()
	g.colorFn = fn
}

// SetCellFunc sets the overlay drawer for cells holding data. A nil fn
// disables overlays.
func (g *Grid) SetCellFunc(fn CellFunc) {
	g.mutate()
	g.cellFn = fn
}

// SetClickFunc sets the click listener. While it is nil the grid does
// not register for pointer input at all, leaving events to enclosing
// containers such as scrollable lists.
func (g *Grid) SetClickFunc(fn ClickFunc) {
	g.mutate()
	g.clickFn = fn
	if fn == nil {
		g.pressed = false
	}
}

// Columns reports the current column count.
func (g *Grid) Columns() int { return g.cols }

// Headers returns the current column headers.
func (g *Grid) Headers() []string { return g.headers }

// Cell returns the value bound at (row, col) and whether the cell
// holds data.
func (g *Grid) Cell(row, col int) (any, bool) {
	if row < 0 || row >= len(g.rows) {
		return nil, false
	}
	v, ok := g.rows[row].Cells[col]
	return v, ok
}

func (g *Grid) SetActiveColors(from, to color.NRGBA) {
	g.mutate()
	g.cfg.ActiveFrom = from
	g.cfg.ActiveTo = to
}

func (g *Grid) SetInactiveColors(from, to color.NRGBA) {
	g.mutate()
	g.cfg.InactiveFrom = from
	g.cfg.InactiveTo = to
}

func (g *Grid) SetCellGap(v unit.Dp) {
	g.mutate()
	if g.cfg.CellGap != v {
		g.cfg.CellGap = v
		g.valid = false
	}
}

func (g *Grid) SetCellRadius(v unit.Dp) {
	g.mutate()
	g.cfg.CellRadius = v
}

func (g *Grid) SetLabelGap(v unit.Dp) {
	g.mutate()
	if g.cfg.LabelGap != v {
		g.cfg.LabelGap = v
		g.valid = false
	}
}

func (g *Grid) SetLabelSize(v unit.Sp) {
	g.mutate()
	if g.cfg.LabelSize != v {
		g.cfg.LabelSize = v
		g.valid = false
	}
}

func (g *Grid) SetLabelColor(c color.NRGBA) {
	g.mutate()
	g.cfg.LabelColor = c
}

func (g *Grid) SetLabelPosition(p Position) {
	g.mutate()
	if g.cfg.LabelPos != p {
		g.cfg.LabelPos = p
		g.valid = false
	}
}

func (g *Grid) SetHeaderGap(v unit.Dp) {
	g.mutate()
	if g.cfg.HeaderGap != v {
		g.cfg.HeaderGap = v
		g.valid = false
	}
}

func (g *Grid) SetHeaderSize(v unit.Sp) {
	g.mutate()
	if g.cfg.HeaderSize != v {
		g.cfg.HeaderSize = v
		g.valid = false
	}
}

func (g *Grid) SetHeaderColor(c color.NRGBA) {
	g.mutate()
	g.cfg.HeaderColor = c
}

func (g *Grid) SetHeaderPosition(p Position) {
	g.mutate()
	if g.cfg.HeaderPos != p {
		g.cfg.HeaderPos = p
		g.valid = false
	}
}

func (g *Grid) SetInset(in layout.Inset) {
	g.mutate()
	if g.cfg.Inset != in {
		g.cfg.Inset = in
		g.valid = false
	}
}

// mutate rejects state changes made from inside an adapter while
// Layout is running; painting must observe one consistent snapshot.
func (g *Grid) mutate() {
	if g.laying {
		panic("heatgrid: Grid mutated from within an adapter during Layout")
	}
}

func rgb(c uint32) color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}
