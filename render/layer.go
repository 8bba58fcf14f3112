package render

// Draw layers for entity types. Lower values render first
const (
	LayerBackground = iota
	LayerDebris
	LayerPickups
	LayerEnemies
	LayerProjectiles
	LayerPlayer
	LayerEffects
	LayerHUD
)

// Update groups. Lower values update first
const (
	GroupPlayer = iota
	GroupEnemies
	GroupProjectiles
	GroupEffects
)
