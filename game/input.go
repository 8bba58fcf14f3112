package game

import "github.com/gdamore/tcell/v2"

// Action is a player command decoded from a key
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionFire
)

// KeyAction maps arrows, vi keys, WASD and space
func KeyAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h', 'a':
			return ActionLeft
		case 'l', 'd':
			return ActionRight
		case 'k', 'w':
			return ActionUp
		case 'j', 's':
			return ActionDown
		case ' ':
			return ActionFire
		}
	}
	return ActionNone
}
