package director

// Get returns the store of a type, dead entities included until the next prune
// Unknown types yield an empty slice
func (d *Director) Get(name string) []Entity {
	store, ok := d.stores[name]
	if !ok || *store == nil {
		return []Entity{}
	}
	return *store
}

// Count returns the number of live entities of one type
func (d *Director) Count(name string) int {
	store, ok := d.stores[name]
	if !ok {
		return 0
	}
	return countLive(*store)
}

// ByGroup returns live entities of every type in the collision group
func (d *Director) ByGroup(group string) []Entity {
	id, ok := d.groups.lookup(group)
	if !ok {
		return []Entity{}
	}

	out := make([]Entity, 0)
	for _, name := range d.types {
		if !d.records[name].Groups.Has(id) {
			continue
		}
		for _, e := range *d.stores[name] {
			if !isDead(e) {
				out = append(out, e)
			}
		}
	}
	return out
}

// CountByGroups counts live entities whose type is in any of the groups
func (d *Director) CountByGroups(groups ...string) int {
	mask := d.groups.mask(groups)
	if mask == 0 {
		return 0
	}

	n := 0
	for _, name := range d.types {
		if d.records[name].Groups.Intersects(mask) {
			n += countLive(*d.stores[name])
		}
	}
	return n
}

// AllDead reports whether none of the named types has a live entity
func (d *Director) AllDead(names ...string) bool {
	for _, name := range names {
		if d.Count(name) > 0 {
			return false
		}
	}
	return true
}

// AllPrimaryEnemiesDead reports wave completion
func (d *Director) AllPrimaryEnemiesDead() bool {
	for _, name := range d.types {
		if d.records[name].PrimaryEnemy && countLive(*d.stores[name]) > 0 {
			return false
		}
	}
	return true
}

// PrimaryEnemyTypes lists primary-flagged types in registration order
func (d *Director) PrimaryEnemyTypes() []string {
	var out []string
	for _, name := range d.types {
		if d.records[name].PrimaryEnemy {
			out = append(out, name)
		}
	}
	return out
}

// AllByLayer returns live entities in draw order; composites count as one
func (d *Director) AllByLayer() []Entity {
	out := make([]Entity, 0)
	for _, name := range d.DrawOrder() {
		for _, e := range *d.stores[name] {
			if !isDead(e) {
				out = append(out, e)
			}
		}
	}
	return out
}

// AllForMinimap returns live entities in registration order with composites
// replaced by their live children
func (d *Director) AllForMinimap() []Entity {
	out := make([]Entity, 0)
	for _, name := range d.types {
		for _, e := range *d.stores[name] {
			out = appendFlattened(out, e)
		}
	}
	return out
}

func appendFlattened(out []Entity, e Entity) []Entity {
	if isDead(e) {
		return out
	}
	c, ok := e.(Composite)
	if !ok {
		return append(out, e)
	}
	for _, child := range c.All() {
		if child != nil && !isDead(child) {
			out = append(out, child)
		}
	}
	return out
}

func countLive(list []Entity) int {
	n := 0
	for _, e := range list {
		if !isDead(e) {
			n++
		}
	}
	return n
}

// Stats is a point-in-time summary for diagnostics
type Stats struct {
	Types   int
	Live    int
	Spawned uint64
	Pruned  uint64
	PerType map[string]int
}

// Stats counts live entities per type
func (d *Director) Stats() Stats {
	s := Stats{
		Types:   len(d.types),
		Spawned: d.spawned,
		Pruned:  d.pruned,
		PerType: make(map[string]int, len(d.types)),
	}
	for _, name := range d.types {
		n := countLive(*d.stores[name])
		s.PerType[name] = n
		s.Live += n
	}
	return s
}
