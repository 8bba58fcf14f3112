package director

import "go.uber.org/zap"

// Spawn constructs an entity of a registered type and appends it to the store
// Spawnable entities receive refs merged with props; others get props assigned to matching fields
func (d *Director) Spawn(name string, props Props) (Entity, error) {
	rec, ok := d.records[name]
	if !ok {
		return nil, unknownType("spawn", name)
	}

	e := rec.Factory()
	store := d.stores[name]
	*store = append(*store, e)

	if s, ok := e.(Spawnable); ok {
		s.Spawn(d.spawnProps(props))
	} else if len(props) > 0 {
		Assign(e, props)
	}

	d.spawned++
	return e, nil
}

// MustSpawn panics on unknown types
func (d *Director) MustSpawn(name string, props Props) Entity {
	e, err := d.Spawn(name, props)
	if err != nil {
		panic(err)
	}
	return e
}

// Add appends a pre-built entity without invoking factory or Spawn
func (d *Director) Add(name string, e Entity) (Entity, error) {
	store, ok := d.stores[name]
	if !ok {
		return nil, unknownType("add", name)
	}
	*store = append(*store, e)
	return e, nil
}

// Sync adopts an externally owned slice by reference
// Prune and Clear write through the pointer so the owner observes compaction
func (d *Director) Sync(name string, external *[]Entity) error {
	if !d.Has(name) {
		return unknownType("sync", name)
	}
	if external == nil {
		external = new([]Entity)
	}
	d.stores[name] = external
	return nil
}

// Prune drops every entity flagged dead, preserving survivor order
func (d *Director) Prune() {
	if d.prePrune != nil {
		d.prePrune(d)
	}

	total := 0
	for _, name := range d.types {
		total += d.pruneType(name)
	}
	if total > 0 {
		d.log.Debug("pruned entities", zap.Int("count", total))
	}
}

func (d *Director) pruneType(name string) int {
	store, ok := d.stores[name]
	if !ok {
		return 0
	}
	survivors, removed := compact(*store)
	if removed > 0 {
		*store = survivors
		d.pruned += uint64(removed)
	}
	return removed
}

// compact returns the live entities in order and the number removed
// The input is returned unchanged when nothing is dead
func compact(list []Entity) ([]Entity, int) {
	dead := 0
	for _, e := range list {
		if isDead(e) {
			dead++
		}
	}
	if dead == 0 {
		return list, 0
	}

	out := make([]Entity, 0, len(list)-dead)
	for _, e := range list {
		if !isDead(e) {
			out = append(out, e)
		}
	}
	return out, dead
}

// Clear empties every store; registrations and refs are kept
func (d *Director) Clear() {
	for _, store := range d.stores {
		*store = nil
	}
	d.log.Debug("director cleared")
}

// ClearType empties one store; unknown types are ignored
func (d *Director) ClearType(name string) {
	if store, ok := d.stores[name]; ok {
		*store = nil
	}
}
