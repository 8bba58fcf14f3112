package render

import "github.com/gdamore/tcell/v2"

// Canvas is the drawing surface handed to entities through spawn refs
// Writes outside the screen are dropped
type Canvas struct {
	screen tcell.Screen
}

func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen}
}

// Screen exposes the underlying tcell screen for event polling
func (c *Canvas) Screen() tcell.Screen {
	return c.screen
}

func (c *Canvas) Size() (int, int) {
	return c.screen.Size()
}

// Clear fills the screen with the default background
func (c *Canvas) Clear() {
	c.screen.Fill(' ', StyleDefault)
}

// Set writes one cell if it lies on screen
func (c *Canvas) Set(x, y int, r rune, style tcell.Style) {
	w, h := c.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// Text writes s left to right starting at x, y
func (c *Canvas) Text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.Set(x, y, r, style)
		x++
	}
}

// Rune returns the rune at x, y; used by tests
func (c *Canvas) Rune(x, y int) rune {
	r, _, _, _ := c.screen.GetContent(x, y)
	return r
}

func (c *Canvas) Show() {
	c.screen.Show()
}
