// Package desktop is the windowed front-end, drawn with ebiten. Sliders on the
// right panel are dragged with the mouse or moved with the arrow keys.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/zeusync/coulomb/internal/core/events/bus"
	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/observability/log"
	"github.com/zeusync/coulomb/internal/core/scene"
)

const (
	screenWidth  = 1000
	screenHeight = 700

	plotSize   = 660
	plotMargin = 20

	panelLeft    = plotSize + 2*plotMargin + 10
	trackWidth   = 240
	trackTop     = 80
	trackSpacing = 56
	knobRadius   = 7

	headLength = 12.0
	headSpread = 0.45
)

var (
	white     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	gridColor = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	trackGray = color.RGBA{0xa0, 0xa0, 0xa0, 0xff}
	selectBg  = color.RGBA{0xe8, 0xf0, 0xff, 0xff}
	black     = scene.Black.RGBA()
	face      = basicfont.Face7x13
)

type Game struct {
	ctx    context.Context
	loop   *interaction.Loop
	bus    bus.EventBus
	sub    bus.Subscription
	opts   scene.Options
	logger log.Log

	scene    scene.Scene
	viewport scene.Viewport
	tracks   []scene.Track
	selected int
	dragging int
	status   string
}

func New(ctx context.Context, preset interaction.Preset, opts scene.Options, logger log.Log) (*Game, error) {
	if logger == nil {
		logger = log.Nop()
	}
	g := &Game{
		ctx:      ctx,
		bus:      bus.New(),
		opts:     opts,
		logger:   logger.Named("desktop"),
		dragging: -1,
	}
	g.loop = interaction.New(preset, g.bus, g.logger)
	g.viewport = scene.NewViewport(scene.PlotBounds, plotMargin, plotMargin+20, plotSize, plotSize-20, 1)
	g.tracks = scene.Tracks(preset, panelLeft+10, trackTop, trackWidth, trackSpacing)

	sub, err := interaction.Subscribe(g.bus, func(f interaction.Frame) error {
		g.scene = scene.Build(f, g.opts)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe renderer: %w", err)
	}
	g.sub = sub
	g.scene = scene.Build(g.loop.Frame(), opts)
	return g, nil
}

// Run opens the window and blocks until it is closed or ctx is done.
func (g *Game) Run() error {
	defer g.sub.Cancel()

	if _, err := g.loop.Refresh(); err != nil {
		return err
	}
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(g.opts.Title)

	g.logger.Info("window opened", log.String("preset", g.loop.Preset().Name))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var err error
	controls := g.loop.Controls()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.selected = (g.selected + len(controls) - 1) % len(controls)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.selected = (g.selected + 1) % len(controls)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		_, err = g.loop.Nudge(controls[g.selected].ID, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		_, err = g.loop.Nudge(controls[g.selected].ID, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		_, err = g.loop.Reset()
	}
	if err == nil {
		err = g.updateMouse()
	}

	if errors.Is(err, interaction.ErrRenderFailed) {
		return err
	}
	if err != nil {
		g.status = err.Error()
		g.logger.Warn("control update failed", log.Error(err))
	}
	return nil
}

func (g *Game) updateMouse() error {
	mx, my := ebiten.CursorPosition()
	px, py := float64(mx), float64(my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		for i, t := range g.tracks {
			if t.Hit(px, py, knobRadius+3) {
				g.dragging = i
				g.selected = i
				break
			}
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = -1
		return nil
	}
	if g.dragging < 0 {
		return nil
	}

	t := g.tracks[g.dragging]
	v := t.ValueAt(px)
	cur, err := g.loop.State().Value(t.Control.ID)
	if err != nil || cur == v {
		return err
	}
	_, err = g.loop.Set(t.Control.ID, v)
	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(white)
	g.drawPlot(screen)
	g.drawPanel(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func (g *Game) point(p mgl64.Vec2) (float32, float32) {
	x, y := g.viewport.ToScreen(p)
	return float32(x), float32(y)
}

func (g *Game) drawPlot(screen *ebiten.Image) {
	s := g.scene
	drawText(screen, s.Title, plotMargin+plotSize/2-len(s.Title)*7/2, plotMargin+10, black)

	x0, y0 := g.point(s.Bounds.Min)
	x1, y1 := g.point(s.Bounds.Max)

	if s.Grid {
		for v := math.Ceil(s.Bounds.Min.X()*2) / 2; v <= s.Bounds.Max.X(); v += 0.5 {
			gx, _ := g.point(mgl64.Vec2{v, 0})
			vector.StrokeLine(screen, gx, y1, gx, y0, 1, gridColor, false)
		}
		for v := math.Ceil(s.Bounds.Min.Y()*2) / 2; v <= s.Bounds.Max.Y(); v += 0.5 {
			_, gy := g.point(mgl64.Vec2{0, v})
			vector.StrokeLine(screen, x0, gy, x1, gy, 1, gridColor, false)
		}
	}
	vector.StrokeRect(screen, x0, y1, x1-x0, y0-y1, 1, black, false)

	for _, m := range s.Markers {
		mx, my := g.point(m.Position)
		vector.DrawFilledCircle(screen, mx, my, 6, black, true)
		lx, ly := g.point(m.LabelAt)
		drawText(screen, m.Label, int(lx), int(ly), black)
	}

	// arrow widths are fractions of the axes width
	axesWidth := g.viewport.Scale() * s.Bounds.Width()
	for _, a := range s.Arrows {
		ax, ay := g.viewport.ToScreen(a.From)
		bx, by := g.viewport.ToScreen(a.To)
		h1x, h1y, h2x, h2y, ok := scene.ArrowHead(ax, ay, bx, by, headLength, headSpread)
		if !ok {
			continue
		}
		col := a.Color.RGBA()
		width := float32(math.Max(1.5, a.Width*axesWidth))
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, col, true)
		vector.StrokeLine(screen, float32(bx), float32(by), float32(h1x), float32(h1y), width, col, true)
		vector.StrokeLine(screen, float32(bx), float32(by), float32(h2x), float32(h2y), width, col, true)
	}

	tx, ty := g.point(s.Test)
	vector.DrawFilledCircle(screen, tx, ty, 3, black, true)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	state := g.loop.State()
	drawText(screen, "Controls", panelLeft+10, trackTop-40, black)

	for i, t := range g.tracks {
		v, _ := state.Value(t.Control.ID)
		if i == g.selected {
			vector.DrawFilledRect(screen, float32(t.X-8), float32(t.Y-28), float32(t.Width+16), 44, selectBg, false)
		}
		drawText(screen, fmt.Sprintf("%s  %.2f", t.Control.Label, v), int(t.X), int(t.Y-12), black)
		vector.StrokeLine(screen, float32(t.X), float32(t.Y), float32(t.X+t.Width), float32(t.Y), 3, trackGray, false)
		vector.DrawFilledCircle(screen, float32(t.KnobX(v)), float32(t.Y), knobRadius, scene.Blue.RGBA(), true)
	}

	y := trackTop + len(g.tracks)*trackSpacing
	for _, e := range g.scene.Legend {
		vector.DrawFilledRect(screen, panelLeft+10, float32(y-10), 12, 12, e.Color.RGBA(), false)
		drawText(screen, e.Label, panelLeft+30, y, black)
		y += 20
	}

	if f := g.scene.Formula; f != nil {
		y += 10
		vector.StrokeRect(screen, panelLeft+4, float32(y), trackWidth+20, 70, 1, black, false)
		drawText(screen, f.Title, panelLeft+12, y+20, black)
		drawText(screen, f.Equation, panelLeft+12, y+40, black)
		drawText(screen, f.Constant, panelLeft+12, y+60, black)
		y += 90
	}

	r := g.scene.Resultant()
	drawText(screen, scene.ForceReadout(r.Force), panelLeft+10, y, black)
	drawText(screen, "Drag sliders or use arrows, R reset, Esc quit", panelLeft+10, screenHeight-40, black)
	if g.status != "" {
		drawText(screen, g.status, panelLeft+10, screenHeight-20, scene.Red.RGBA())
	}
}

// drawText draws s in the bitmap face, which covers printable ASCII only.
func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(dst, scene.ASCII(s), face, x, y, clr)
}
