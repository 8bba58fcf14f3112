package director

// GroupID is the interned handle of a collision group tag
type GroupID uint8

// GroupMask is a set of up to 64 collision groups
type GroupMask uint64

const maxGroups = 64

func (m GroupMask) Has(id GroupID) bool {
	return m&(GroupMask(1)<<id) != 0
}

func (m *GroupMask) set(id GroupID) {
	*m |= GroupMask(1) << id
}

// Intersects reports whether any group in other is also in m
func (m GroupMask) Intersects(other GroupMask) bool {
	return m&other != 0
}

// groupTable interns group tags into handles in first-seen order
type groupTable struct {
	ids   map[string]GroupID
	names []string
}

func newGroupTable() groupTable {
	return groupTable{ids: make(map[string]GroupID)}
}

// intern returns the handle for tag, allocating one if needed
func (g *groupTable) intern(tag string) (GroupID, error) {
	if id, ok := g.ids[tag]; ok {
		return id, nil
	}
	if len(g.names) >= maxGroups {
		return 0, ErrTooManyGroups
	}
	id := GroupID(len(g.names))
	g.ids[tag] = id
	g.names = append(g.names, tag)
	return id, nil
}

// lookup never allocates; unseen tags are not members of any type
func (g *groupTable) lookup(tag string) (GroupID, bool) {
	id, ok := g.ids[tag]
	return id, ok
}

// mask builds a mask from the tags already interned, ignoring unknown ones
func (g *groupTable) mask(tags []string) GroupMask {
	var m GroupMask
	for _, tag := range tags {
		if id, ok := g.ids[tag]; ok {
			m.set(id)
		}
	}
	return m
}
