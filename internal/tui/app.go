// Package tui renders the force diagram in a terminal with tcell. Arrow keys
// pick and move sliders; every change recomputes the field and redraws.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/coulomb/internal/core/events/bus"
	"github.com/zeusync/coulomb/internal/core/field"
	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/observability/log"
	"github.com/zeusync/coulomb/internal/core/scene"
)

const (
	panelWidth = 36
	barWidth   = 20
	// terminal cells are roughly twice as tall as wide
	cellAspect = 2.0
)

type App struct {
	screen tcell.Screen
	loop   *interaction.Loop
	bus    bus.EventBus
	sub    bus.Subscription
	opts   scene.Options
	logger log.Log

	selected int
	scene    scene.Scene
	status   string
	canvas   *canvas
}

// New wires a loop for preset to screen. The caller owns the screen's Init and Fini.
func New(screen tcell.Screen, preset interaction.Preset, opts scene.Options, logger log.Log) (*App, error) {
	if logger == nil {
		logger = log.Nop()
	}
	a := &App{
		screen: screen,
		bus:    bus.New(),
		opts:   opts,
		logger: logger.Named("tui"),
		canvas: newCanvas(0, 0),
	}
	a.loop = interaction.New(preset, a.bus, a.logger)

	sub, err := interaction.Subscribe(a.bus, a.onFrame)
	if err != nil {
		return nil, fmt.Errorf("subscribe renderer: %w", err)
	}
	a.sub = sub
	a.scene = scene.Build(a.loop.Frame(), opts)
	return a, nil
}

func (a *App) Loop() *interaction.Loop { return a.loop }

// Run draws the first frame and processes terminal events until the user quits
// or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.sub.Cancel()

	if _, err := a.loop.Refresh(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
				a.draw()
			}
		}
	}
}

// handleKey applies one key press and reports whether to keep running.
func (a *App) handleKey(key tcell.Key, r rune) bool {
	ids := a.loop.Controls()
	var err error

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.selected = (a.selected + len(ids) - 1) % len(ids)
		a.draw()
	case tcell.KeyDown, tcell.KeyTab:
		a.selected = (a.selected + 1) % len(ids)
		a.draw()
	case tcell.KeyLeft:
		_, err = a.loop.Nudge(ids[a.selected].ID, -1)
	case tcell.KeyRight:
		_, err = a.loop.Nudge(ids[a.selected].ID, 1)
	case tcell.KeyHome:
		_, err = a.loop.Set(ids[a.selected].ID, ids[a.selected].Min)
	case tcell.KeyEnd:
		_, err = a.loop.Set(ids[a.selected].ID, ids[a.selected].Max)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'r', 'R':
			_, err = a.loop.Reset()
		case 'k':
			return a.handleKey(tcell.KeyUp, 0)
		case 'j':
			return a.handleKey(tcell.KeyDown, 0)
		case 'h', '-':
			return a.handleKey(tcell.KeyLeft, 0)
		case 'l', '+':
			return a.handleKey(tcell.KeyRight, 0)
		}
	}

	if err != nil {
		a.logger.Warn("control update failed", log.Error(err))
		a.status = err.Error()
		a.draw()
	}
	return true
}

func (a *App) onFrame(f interaction.Frame) error {
	a.scene = scene.Build(f, a.opts)
	a.status = ""
	a.draw()
	return nil
}

func (a *App) draw() {
	w, h := a.screen.Size()
	if w != a.canvas.w || h != a.canvas.h {
		a.canvas = newCanvas(w, h)
	}
	a.render(a.canvas)
	a.canvas.blit(a.screen)
	a.screen.Show()
}

// render paints the whole UI: the plot on the left, the panel on the right and
// a status line at the bottom.
func (a *App) render(c *canvas) {
	c.clear()
	if c.w <= 0 || c.h <= 0 {
		return
	}

	plotW := c.w - panelWidth - 1
	if plotW < 10 {
		plotW = c.w
	}
	plotH := c.h - 1

	a.renderPlot(c, 0, 0, plotW, plotH)
	if plotW < c.w {
		a.renderPanel(c, plotW+1, 0)
	}

	status := a.status
	if status == "" {
		status = "↑↓ select  ←→ adjust  r reset  q quit"
	}
	c.text(0, c.h-1, status, plain)
}

func (a *App) renderPlot(c *canvas, left, top, width, height int) {
	if width < 8 || height < 6 {
		return
	}
	s := a.scene
	title := truncate(s.Title, width)
	c.text(left+(width-len([]rune(title)))/2, top, title, paint{bold: true})

	// one row for the title, a one-cell frame on each side
	vp := scene.NewViewport(s.Bounds, float64(left+1), float64(top+2), float64(width-2), float64(height-3), cellAspect)
	toCell := func(p mgl64.Vec2) (int, int) {
		x, y := vp.ToScreen(p)
		return int(math.Round(x)), int(math.Round(y))
	}

	x0, y0 := toCell(s.Bounds.Min)
	x1, y1 := toCell(s.Bounds.Max)
	// y grows downwards on screen: Min maps to the bottom-left corner
	inside := func(x, y int) bool { return x > x0 && x < x1 && y > y1 && y < y0 }

	if s.Grid {
		for v := math.Ceil(s.Bounds.Min.X()*2) / 2; v <= s.Bounds.Max.X(); v += 0.5 {
			gx, _ := toCell(mgl64.Vec2{v, 0})
			for gy := y1 + 1; gy < y0; gy += 2 {
				if inside(gx, gy) {
					c.set(gx, gy, '·', gridPaint)
				}
			}
		}
		for v := math.Ceil(s.Bounds.Min.Y()*2) / 2; v <= s.Bounds.Max.Y(); v += 0.5 {
			_, gy := toCell(mgl64.Vec2{0, v})
			for gx := x0 + 1; gx < x1; gx += 2 {
				if inside(gx, gy) {
					c.set(gx, gy, '·', gridPaint)
				}
			}
		}
	}

	for x := x0; x <= x1; x++ {
		c.set(x, y1, '─', plain)
		c.set(x, y0, '─', plain)
	}
	for y := y1; y <= y0; y++ {
		c.set(x0, y, '│', plain)
		c.set(x1, y, '│', plain)
	}
	c.set(x0, y1, '┌', plain)
	c.set(x1, y1, '┐', plain)
	c.set(x0, y0, '└', plain)
	c.set(x1, y0, '┘', plain)

	for _, m := range s.Markers {
		mx, my := toCell(m.Position)
		c.set(mx, my, '●', paint{bold: true})
		lx, ly := toCell(m.LabelAt)
		c.text(lx, ly, m.Label, plain)
	}

	for _, arrow := range s.Arrows {
		ax, ay := toCell(arrow.From)
		bx, by := toCell(arrow.To)
		if ax == bx && ay == by {
			continue
		}
		p := colored(arrow.Color)
		if arrow.Style == field.StyleResultant {
			p.bold = true
		}
		line(ax, ay, bx, by, func(x, y int) {
			if inside(x, y) {
				c.set(x, y, shaft(bx-ax, by-ay), p)
			}
		})
		if inside(bx, by) {
			c.set(bx, by, head(bx-ax, by-ay), p)
		}
	}

	tx, ty := toCell(s.Test)
	c.set(tx, ty, '◆', paint{bold: true})
}

func (a *App) renderPanel(c *canvas, left, top int) {
	y := top
	c.text(left, y, "Controls", paint{bold: true})
	y += 2

	state := a.loop.State()
	for i, ctl := range a.loop.Controls() {
		v, _ := state.Value(ctl.ID)
		marker := "  "
		p := plain
		if i == a.selected {
			marker = "▶ "
			p.reverse = true
		}
		c.text(left, y, marker, plain)
		c.text(left+2, y, fmt.Sprintf("%-22s %6.2f", truncate(ctl.Label, 22), v), p)
		c.text(left+2, y+1, bar(ctl.Fraction(v), barWidth), plain)
		y += 2
	}

	y++
	for _, e := range a.scene.Legend {
		c.set(left, y, '■', colored(e.Color))
		c.text(left+2, y, e.Label, plain)
		y++
	}

	if f := a.scene.Formula; f != nil {
		y++
		c.text(left, y, f.Title, paint{bold: true})
		c.text(left, y+1, f.Equation, plain)
		c.text(left, y+2, f.Constant, plain)
		y += 4
	}

	r := a.scene.Resultant()
	c.text(left, y, scene.ForceReadout(r.Force), plain)
}

// bar draws a slider track with its knob at frac.
func bar(frac float64, width int) string {
	knob := int(math.Round(frac * float64(width-1)))
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == knob:
			b.WriteRune('●')
		case i < knob:
			b.WriteRune('━')
		default:
			b.WriteRune('─')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// shaft picks a line glyph for a segment direction in screen space.
func shaft(dx, dy int) rune {
	switch octant(dx, dy) {
	case 0, 4:
		return '─'
	case 2, 6:
		return '│'
	case 1, 5:
		return '╱'
	default:
		return '╲'
	}
}

// head picks an arrow glyph pointing along (dx, dy) in screen space.
func head(dx, dy int) rune {
	return [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}[octant(dx, dy)]
}

// octant buckets a screen direction into 45° sectors counterclockwise from
// east, correcting for the cell aspect and the downward y axis.
func octant(dx, dy int) int {
	angle := math.Atan2(-float64(dy)*cellAspect, float64(dx))
	o := int(math.Round(angle/(math.Pi/4))) % 8
	if o < 0 {
		o += 8
	}
	return o
}
