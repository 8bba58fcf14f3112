package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfall/director"
)

// Locatable entities appear on the minimap
type Locatable interface {
	Cell() (int, int)
}

// Marker overrides the default minimap dot
type Marker interface {
	MinimapGlyph() (rune, tcell.Style)
}

// Minimap scales entity positions from the world area into a w x h box at x0, y0
type Minimap struct {
	X, Y          int
	Width, Height int
}

// Draw paints the box and one glyph per locatable entity
func (m Minimap) Draw(c *Canvas, worldW, worldH int, entities []director.Entity) {
	if m.Width <= 0 || m.Height <= 0 || worldW <= 0 || worldH <= 0 {
		return
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c.Set(m.X+x, m.Y+y, ' ', StyleMinimap)
		}
	}

	for _, e := range entities {
		loc, ok := e.(Locatable)
		if !ok {
			continue
		}
		wx, wy := loc.Cell()
		if wx < 0 || wy < 0 || wx >= worldW || wy >= worldH {
			continue
		}
		mx := wx * m.Width / worldW
		my := wy * m.Height / worldH

		glyph, style := '·', StyleMinimapDot
		if mk, ok := e.(Marker); ok {
			glyph, style = mk.MinimapGlyph()
		}
		c.Set(m.X+mx, m.Y+my, glyph, style)
	}
}
