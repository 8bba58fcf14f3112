package game

// collide runs after the update pass
// Bullets hit shootables; the ship meets deadly and collectable entities
func (s *Session) collide() {
	d := s.director

	shootable := d.ByGroup(GroupShootable)
	for _, e := range d.ByGroup(GroupProjectile) {
		b, ok := e.(*Bullet)
		if !ok || b.Dead {
			continue
		}
		for _, t := range shootable {
			if tg, ok := t.(target); ok && tg.Hit(b.Shape) {
				b.Kill()
				break
			}
		}
	}

	ship := s.world.Ship
	if ship == nil || ship.Dead {
		return
	}
	if ship.Vulnerable() {
		for _, e := range d.ByGroup(GroupDeadly) {
			if tg, ok := e.(target); ok && tg.Hit(ship.Shape) {
				ship.Damage()
				break
			}
		}
	}
	for _, e := range d.ByGroup(GroupCollectable) {
		if c, ok := e.(collectable); ok {
			c.Collect(ship.Shape)
		}
	}
}
