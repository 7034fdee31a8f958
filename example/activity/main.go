// SPDX-License-Identifier: Unlicense OR MIT

// Command activity shows a week of member activity in a heatgrid,
// with a color ramp over visit counts, overlay markers on busy cells
// and click reporting. An optional TOML theme file recolors the grid
// and is reloaded live when it changes.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/logan0817/heatgrid"
)

type visit struct {
	Day   int // 1-based day of week
	Count int
}

type member struct {
	Name   string
	Visits []visit
}

var members = []member{
	{Name: "Allen", Visits: []visit{{Day: 1, Count: 7000}, {Day: 3, Count: 3000}, {Day: 6, Count: 1200}}},
	{Name: "Beth", Visits: []visit{{Day: 2, Count: 800}, {Day: 4, Count: 5400}, {Day: 5, Count: 6400}}},
	{Name: "Cara", Visits: []visit{{Day: 1, Count: 300}, {Day: 7, Count: 7800}}},
	{Name: "Dmitri", Visits: []visit{{Day: 3, Count: 2100}}},
}

const maxCount = 8000

func main() {
	themePath := flag.String("theme", "", "path to a TOML theme file")
	flag.Parse()

	go func() {
		w := app.NewWindow(
			app.Title("Weekly activity"),
			app.Size(unit.Dp(520), unit.Dp(360)),
		)
		if err := loop(w, *themePath); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, themePath string) error {
	lt := text.NewShaper(text.WithCollection(gofont.Collection()))

	grid := heatgrid.New(heatgrid.DefaultConfig())
	grid.SetInset(layout.UniformInset(unit.Dp(16)))
	heatgrid.Bind(grid, members,
		func(m member) string { return m.Name },
		func(m member) []visit { return m.Visits },
		func(v visit) int { return v.Day - 1 },
		[]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"})
	grid.SetColorFunc(heatColor)
	grid.SetCellFunc(busyMarker)
	grid.SetClickFunc(func(row, col int, value any) {
		log.Printf("clicked %s/%s: %v", members[row].Name, grid.Headers()[col], value)
	})

	themeChanged := make(chan struct{}, 1)
	if themePath != "" {
		applyTheme(grid, themePath)
		stop, err := watchTheme(w, themePath, themeChanged)
		if err != nil {
			return err
		}
		defer stop()
	}

	var ops op.Ops
	for e := range w.Events() {
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			// Theme reloads are applied on the frame thread; the
			// watcher goroutine only signals.
			select {
			case <-themeChanged:
				applyTheme(grid, themePath)
			default:
			}
			gtx := layout.NewContext(&ops, e)
			paint.Fill(gtx.Ops, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			grid.Layout(gtx, lt)
			e.Frame(gtx.Ops)
		}
	}
	return nil
}

// heatColor maps a visit count onto a perceptual green ramp. Cells
// without data fall through to the grid's inactive fill.
func heatColor(value any) (color.NRGBA, bool) {
	v, ok := value.(visit)
	if !ok {
		return color.NRGBA{}, false
	}
	low, _ := colorful.Hex("#c6e48b")
	high, _ := colorful.Hex("#196127")
	t := float64(v.Count) / maxCount
	if t > 1 {
		t = 1
	}
	r, g, b := low.BlendLuv(high, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
}

// busyMarker dots cells whose count crosses the busy threshold.
func busyMarker(gtx layout.Context, bounds image.Rectangle, row, col int, value any) {
	v, ok := value.(visit)
	if !ok || v.Count < 6000 {
		return
	}
	c := bounds.Min.Add(bounds.Max).Div(2)
	r := bounds.Dx() / 8
	dot := image.Rect(c.X-r, c.Y-r, c.X+r, c.Y+r)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, clip.Ellipse(dot).Op(gtx.Ops))
}

type themeFile struct {
	ActiveFrom string `toml:"active_from"`
	ActiveTo   string `toml:"active_to"`
	Inactive   string `toml:"inactive"`
	Text       string `toml:"text"`
}

func applyTheme(g *heatgrid.Grid, path string) {
	var th themeFile
	if _, err := toml.DecodeFile(path, &th); err != nil {
		log.Printf("theme %s: %v", path, err)
		return
	}
	from, ok1 := parseHex(th.ActiveFrom)
	to, ok2 := parseHex(th.ActiveTo)
	if ok1 && ok2 {
		g.SetActiveColors(from, to)
	}
	if c, ok := parseHex(th.Inactive); ok {
		g.SetInactiveColors(c, c)
	}
	if c, ok := parseHex(th.Text); ok {
		g.SetLabelColor(c)
		g.SetHeaderColor(c)
	}
}

func parseHex(s string) (color.NRGBA, bool) {
	if s == "" {
		return color.NRGBA{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		log.Printf("theme color %q: %v", s, err)
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
}

// watchTheme signals themeChanged and wakes the window whenever the
// theme file is rewritten. Watching the directory rather than the file
// survives editors that replace the file on save.
func watchTheme(w *app.Window, path string, themeChanged chan<- struct{}) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	abs, _ := filepath.Abs(path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				evAbs, _ := filepath.Abs(ev.Name)
				if evAbs == abs && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					select {
					case themeChanged <- struct{}{}:
					default:
					}
					w.Invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("theme watch: %v", err)
			}
		}
	}()
	return watcher.Close, nil
}
