package director

import (
	"sort"
	"time"
)

func (d *Director) invalidateOrder() {
	d.drawOrder = nil
	d.updateOrder = nil
}

// sortedTypes returns type names ordered by key, ties kept in registration order
func (d *Director) sortedTypes(key func(*TypeRecord) int) []string {
	order := make([]string, len(d.types))
	copy(order, d.types)
	sort.SliceStable(order, func(i, j int) bool {
		return key(d.records[order[i]]) < key(d.records[order[j]])
	})
	return order
}

// DrawOrder returns the cached ascending-layer type order
// The slice is shared with the cache and must not be modified
func (d *Director) DrawOrder() []string {
	if d.drawOrder == nil {
		d.drawOrder = d.sortedTypes(func(r *TypeRecord) int { return r.DrawLayer })
	}
	return d.drawOrder
}

// UpdateOrder returns the cached ascending-group type order
func (d *Director) UpdateOrder() []string {
	if d.updateOrder == nil {
		d.updateOrder = d.sortedTypes(func(r *TypeRecord) int { return r.UpdateGroup })
	}
	return d.updateOrder
}

// UpdateAll prunes, then updates every live entity type by type in update-group order
func (d *Director) UpdateAll(dt time.Duration) {
	d.Prune()
	for _, name := range d.UpdateOrder() {
		d.updateStore(name, dt)
	}
}

// UpdateType prunes and updates a single type
func (d *Director) UpdateType(name string, dt time.Duration) {
	d.pruneType(name)
	d.updateStore(name, dt)
}

// updateStore visits the entities present when the pass starts
// Entities appended during the pass wait for the next frame
func (d *Director) updateStore(name string, dt time.Duration) {
	store, ok := d.stores[name]
	if !ok {
		return
	}
	for _, e := range *store {
		if isDead(e) {
			continue
		}
		switch u := e.(type) {
		case Updatable:
			u.Update(dt)
		case Ticker:
			u.Tick()
		}
	}
}

// DrawAll draws every live entity type by type in layer order
func (d *Director) DrawAll() {
	for _, name := range d.DrawOrder() {
		d.DrawType(name)
	}
}

// DrawLayer draws only the types on one layer
func (d *Director) DrawLayer(layer int) {
	for _, name := range d.DrawOrder() {
		if d.records[name].DrawLayer == layer {
			d.DrawType(name)
		}
	}
}

// DrawType draws the live entities of one type in store order
func (d *Director) DrawType(name string) {
	store, ok := d.stores[name]
	if !ok {
		return
	}
	for _, e := range *store {
		if isDead(e) {
			continue
		}
		if dr, ok := e.(Drawable); ok {
			dr.Draw()
		}
	}
}
