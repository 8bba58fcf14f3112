package render

import "github.com/gdamore/tcell/v2"

var (
	StyleDefault    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	StyleShip       = StyleDefault.Foreground(tcell.NewRGBColor(80, 220, 255)).Bold(true)
	StyleEnemy      = StyleDefault.Foreground(tcell.NewRGBColor(255, 80, 80))
	StyleSerpent    = StyleDefault.Foreground(tcell.NewRGBColor(180, 255, 90))
	StyleBullet     = StyleDefault.Foreground(tcell.ColorYellow)
	StyleBomb       = StyleDefault.Foreground(tcell.NewRGBColor(255, 140, 0))
	StylePod        = StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	StyleFloater    = StyleDefault.Foreground(tcell.NewRGBColor(255, 255, 160))
	StyleHUD        = StyleDefault.Foreground(tcell.NewRGBColor(200, 200, 200))
	StyleHUDAccent  = StyleDefault.Foreground(tcell.NewRGBColor(80, 220, 255)).Bold(true)
	StyleMinimap    = StyleDefault.Background(tcell.NewRGBColor(20, 20, 30))
	StyleMinimapDot = StyleMinimap.Foreground(tcell.NewRGBColor(160, 160, 160))
)
