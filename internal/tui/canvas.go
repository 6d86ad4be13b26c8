package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/coulomb/internal/core/scene"
)

// paint is the toolkit-free style of a cell; it becomes a tcell.Style on blit.
type paint struct {
	fg      scene.Color
	colored bool
	bold    bool
	reverse bool
}

var (
	plain     = paint{}
	gridPaint = paint{fg: scene.Color{Name: "gray", R: 0x80, G: 0x80, B: 0x80}, colored: true}
)

func colored(c scene.Color) paint { return paint{fg: c, colored: true} }

func (p paint) style() tcell.Style {
	st := tcell.StyleDefault
	if p.colored {
		st = st.Foreground(tcell.NewRGBColor(int32(p.fg.R), int32(p.fg.G), int32(p.fg.B)))
	}
	return st.Bold(p.bold).Reverse(p.reverse)
}

type cell struct {
	ch    rune
	paint paint
}

// canvas is an off-screen cell grid. Drawing outside it is ignored.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	c.clear()
	return c
}

func (c *canvas) clear() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' '}
	}
}

func (c *canvas) set(x, y int, ch rune, p paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{ch: ch, paint: p}
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.cells[y*c.w+x].ch
}

func (c *canvas) paintAt(x, y int) paint {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return plain
	}
	return c.cells[y*c.w+x].paint
}

func (c *canvas) text(x, y int, s string, p paint) {
	for _, r := range s {
		c.set(x, y, r, p)
		x++
	}
}

func (c *canvas) row(y int) string {
	var b strings.Builder
	for x := 0; x < c.w; x++ {
		b.WriteRune(c.at(x, y))
	}
	return b.String()
}

// count reports how many cells hold ch.
func (c *canvas) count(ch rune) int {
	n := 0
	for _, cl := range c.cells {
		if cl.ch == ch {
			n++
		}
	}
	return n
}

// line rasterizes a segment with Bresenham's algorithm, calling plot for every
// cell except the end cell, which is left for the arrow head.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if x0 == x1 && y0 == y1 {
			return
		}
		plot(x0, y0)
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (c *canvas) blit(screen tcell.Screen) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			screen.SetContent(x, y, cl.ch, nil, cl.paint.style())
		}
	}
}
