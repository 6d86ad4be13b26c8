package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineStopsBeforeEnd(t *testing.T) {
	var got [][2]int
	line(0, 0, 3, 0, func(x, y int) { got = append(got, [2]int{x, y}) })
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {2, 0}}, got)

	got = nil
	line(2, 2, 2, 2, func(x, y int) { got = append(got, [2]int{x, y}) })
	assert.Empty(t, got)

	got = nil
	line(0, 0, -2, 2, func(x, y int) { got = append(got, [2]int{x, y}) })
	assert.Equal(t, [][2]int{{0, 0}, {-1, 1}}, got)
}

func TestCanvasClipsAndReadsBack(t *testing.T) {
	c := newCanvas(4, 2)
	c.set(-1, 0, 'x', plain)
	c.set(4, 1, 'x', plain)
	assert.Equal(t, 0, c.count('x'))

	c.text(2, 1, "abc", plain)
	assert.Equal(t, "  ab", c.row(1))
	assert.Equal(t, 'a', c.at(2, 1))
	assert.Equal(t, rune(0), c.at(9, 9))
}

func TestGlyphsFollowDirection(t *testing.T) {
	assert.Equal(t, '→', head(1, 0))
	assert.Equal(t, '←', head(-1, 0))
	assert.Equal(t, '↑', head(0, -1))
	assert.Equal(t, '↓', head(0, 1))
	// one row up is two columns of plot distance
	assert.Equal(t, '↗', head(2, -1))
	assert.Equal(t, '↙', head(-2, 1))

	assert.Equal(t, '─', shaft(5, 0))
	assert.Equal(t, '│', shaft(0, 3))
	assert.Equal(t, '╱', shaft(2, -1))
	assert.Equal(t, '╲', shaft(2, 1))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "●────", bar(0, 5))
	assert.Equal(t, "━━●──", bar(0.5, 5))
	assert.Equal(t, "━━━━●", bar(1, 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, "", truncate("abc", 0))
}
