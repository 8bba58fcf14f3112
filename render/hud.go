package render

import "fmt"

// HUDState is what the status line shows
type HUDState struct {
	Score   int
	Lives   int
	Wave    int
	Enemies int
	Rescued int
	FPS     float64
	Message string
}

// DrawHUD paints the status line on the bottom row
func DrawHUD(c *Canvas, s HUDState) {
	w, h := c.Size()
	if h == 0 {
		return
	}
	y := h - 1
	for x := 0; x < w; x++ {
		c.Set(x, y, ' ', StyleHUD)
	}

	left := fmt.Sprintf(" SCORE %06d  LIVES %d  WAVE %d  ENEMIES %d  RESCUED %d", s.Score, s.Lives, s.Wave, s.Enemies, s.Rescued)
	c.Text(0, y, left, StyleHUD)

	right := fmt.Sprintf("%4.0f fps ", s.FPS)
	c.Text(w-len(right), y, right, StyleHUD)

	if s.Message != "" {
		c.Text((w-len(s.Message))/2, h/2, s.Message, StyleHUDAccent)
	}
}
