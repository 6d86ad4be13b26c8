package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/scene"
)

func newTestApp(t *testing.T, preset interaction.Preset) *App {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)

	a, err := New(screen, preset, scene.DefaultOptions(), nil)
	require.NoError(t, err)
	_, err = a.Loop().Refresh()
	require.NoError(t, err)
	return a
}

const arrowHeads = "→↗↑↖←↙↓↘"

// plotCells leaves out the help line, which shows arrow glyphs too.
func plotCells(c *canvas) []cell {
	return c.cells[:(c.h-1)*c.w]
}

func (c *canvas) contains(s string) bool {
	for y := 0; y < c.h; y++ {
		if strings.Contains(c.row(y), s) {
			return true
		}
	}
	return false
}

func TestRenderDrawsPlotAndPanel(t *testing.T) {
	a := newTestApp(t, interaction.WebPreset())
	c := a.canvas

	assert.Equal(t, 100, c.w)
	assert.Equal(t, 30, c.h)
	assert.Equal(t, 1, c.count('◆'), "one test charge")
	assert.Equal(t, 1, c.count('┌'))
	assert.Equal(t, 1, c.count('┘'))

	for _, label := range []string{"q1", "q2", "q3", "q4", "Controls", "Coulomb's law", "Repulsive"} {
		assert.True(t, c.contains(label), "missing %q", label)
	}
	assert.True(t, c.contains("▶ "), "selected control marker")
	assert.True(t, c.contains("quit"), "help line")
	assert.True(t, c.contains("|F| = 0.000e+00 (display units)"), "resultant readout")
}

func TestRenderDrawsArrowHeads(t *testing.T) {
	a := newTestApp(t, interaction.WebPreset())

	heads := 0
	for _, cl := range plotCells(a.canvas) {
		if strings.ContainsRune(arrowHeads, cl.ch) {
			heads++
		}
	}
	// four diagonal component arrows; the resultant cancels at the origin
	assert.Equal(t, 4, heads)
}

func TestArrowColorsFollowStyle(t *testing.T) {
	a := newTestApp(t, interaction.WebPreset())
	var reds, blues int
	for i, cl := range plotCells(a.canvas) {
		if !strings.ContainsRune(arrowHeads, cl.ch) {
			continue
		}
		switch cl.paint.fg {
		case scene.Red:
			reds++
		case scene.Blue:
			blues++
		default:
			t.Errorf("head at %d has color %v", i, cl.paint.fg)
		}
	}
	assert.Equal(t, 2, reds)
	assert.Equal(t, 2, blues)
}

func TestHandleKeyNavigatesAndAdjusts(t *testing.T) {
	a := newTestApp(t, interaction.WebPreset())

	assert.True(t, a.handleKey(tcell.KeyUp, 0))
	assert.Equal(t, 5, a.selected, "wraps to the last control")
	assert.True(t, a.handleKey(tcell.KeyDown, 0))
	assert.Equal(t, 0, a.selected)

	require.True(t, a.handleKey(tcell.KeyRight, 0))
	assert.InDelta(t, 0.1, a.Loop().State().Position.X(), 1e-12)
	require.True(t, a.handleKey(tcell.KeyRune, 'l'))
	assert.InDelta(t, 0.2, a.Loop().State().Position.X(), 1e-12)
	require.True(t, a.handleKey(tcell.KeyLeft, 0))
	assert.InDelta(t, 0.1, a.Loop().State().Position.X(), 1e-12)

	a.handleKey(tcell.KeyRune, 'j')
	a.handleKey(tcell.KeyRune, 'j')
	require.Equal(t, interaction.ControlQ1, a.Loop().Preset().Controls[a.selected].ID)
	a.handleKey(tcell.KeyEnd, 0)
	assert.Equal(t, 5.0, a.Loop().State().Charges[0])
	a.handleKey(tcell.KeyHome, 0)
	assert.Equal(t, -5.0, a.Loop().State().Charges[0])

	assert.Equal(t, a.Loop().Frame().Revision, a.scene.Revision, "scene follows every frame")
}

func TestHandleKeyResetAndQuit(t *testing.T) {
	a := newTestApp(t, interaction.DesktopPreset())

	a.handleKey(tcell.KeyRight, 0)
	a.handleKey(tcell.KeyRight, 0)
	require.NotEqual(t, a.Loop().Preset().Defaults(), a.Loop().State())

	assert.True(t, a.handleKey(tcell.KeyRune, 'r'))
	assert.Equal(t, a.Loop().Preset().Defaults(), a.Loop().State())

	assert.False(t, a.handleKey(tcell.KeyRune, 'q'))
	assert.False(t, a.handleKey(tcell.KeyEscape, 0))
	assert.False(t, a.handleKey(tcell.KeyCtrlC, 0))
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	defer screen.Fini()

	a, err := New(screen, interaction.WebPreset(), scene.DefaultOptions(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, uint64(1), a.Loop().Frame().Revision)
}

func TestRenderTinyScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(5, 3)
	defer screen.Fini()

	a, err := New(screen, interaction.WebPreset(), scene.DefaultOptions(), nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { a.draw() })
}
