package director

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Props are per-spawn construction parameters
type Props map[string]any

// Refs are session-wide shared references merged into every spawn
type Refs map[string]any

// TypeRecord is the registered metadata and factory of one entity type
type TypeRecord struct {
	Name            string
	Factory         Factory
	DrawLayer       int
	UpdateGroup     int
	CollisionGroups []string
	Groups          GroupMask
	PrimaryEnemy    bool

	index int // registration order for stable sort
}

// PrePruneFunc observes the full store before dead entities are dropped
type PrePruneFunc func(d *Director)

// Options configures a Director
type Options struct {
	// DefaultLayer is used for types that do not declare a draw layer
	DefaultLayer int
	// PrePrune runs once per Prune, before filtering
	PrePrune PrePruneFunc
	Logger   *zap.Logger
}

// Director owns entity lifecycle, ordering and group queries
// Not safe for concurrent use; the frame loop is the only caller
type Director struct {
	records map[string]*TypeRecord
	stores  map[string]*[]Entity
	types   []string // registration order
	groups  groupTable
	refs    Refs

	drawOrder   []string
	updateOrder []string

	defaultLayer int
	prePrune     PrePruneFunc
	log          *zap.Logger

	spawned uint64
	pruned  uint64
}

// New creates an empty Director
func New(opts Options) *Director {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Director{
		records:      make(map[string]*TypeRecord),
		stores:       make(map[string]*[]Entity),
		groups:       newGroupTable(),
		refs:         make(Refs),
		defaultLayer: opts.DefaultLayer,
		prePrune:     opts.PrePrune,
		log:          log,
	}
}

// Register probes each factory once and records its type metadata
// Re-registering a name overwrites metadata but keeps live entities and registration position
func (d *Director) Register(factories ...Factory) error {
	for i, f := range factories {
		if f == nil {
			return errors.Wrapf(ErrInvalidEntityDefinition, "factory %d is nil", i)
		}
		probe := f()
		if probe == nil || probe.Name() == "" {
			return errors.Wrapf(ErrInvalidEntityDefinition, "factory %d produced an unnamed entity", i)
		}
		if err := d.register(probe, f); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register for static type tables
func (d *Director) MustRegister(factories ...Factory) {
	if err := d.Register(factories...); err != nil {
		panic(err)
	}
}

func (d *Director) register(probe Entity, f Factory) error {
	name := probe.Name()
	rec := &TypeRecord{
		Name:      name,
		Factory:   f,
		DrawLayer: d.defaultLayer,
	}
	if l, ok := probe.(Layered); ok {
		rec.DrawLayer = l.DrawLayer()
	}
	if g, ok := probe.(Grouped); ok {
		rec.UpdateGroup = g.UpdateGroup()
	}
	if c, ok := probe.(Collidable); ok {
		tags := c.CollisionGroups()
		rec.CollisionGroups = make([]string, 0, len(tags))
		for _, tag := range tags {
			id, err := d.groups.intern(tag)
			if err != nil {
				return errors.Wrapf(err, "register %q group %q", name, tag)
			}
			rec.Groups.set(id)
			rec.CollisionGroups = append(rec.CollisionGroups, tag)
		}
	}
	if p, ok := probe.(PrimaryEnemy); ok {
		rec.PrimaryEnemy = p.IsPrimaryEnemy()
	}

	if prev, ok := d.records[name]; ok {
		rec.index = prev.index
	} else {
		rec.index = len(d.types)
		d.types = append(d.types, name)
	}
	d.records[name] = rec

	if _, ok := d.stores[name]; !ok {
		store := make([]Entity, 0)
		d.stores[name] = &store
	}

	d.invalidateOrder()

	d.log.Debug("entity type registered",
		zap.String("type", name),
		zap.Int("layer", rec.DrawLayer),
		zap.Int("group", rec.UpdateGroup),
		zap.Strings("collision_groups", rec.CollisionGroups),
		zap.Bool("primary", rec.PrimaryEnemy),
	)
	return nil
}

// Record returns a copy of the metadata for a registered type
func (d *Director) Record(name string) (TypeRecord, bool) {
	rec, ok := d.records[name]
	if !ok {
		return TypeRecord{}, false
	}
	return *rec, true
}

// Has reports whether name is registered
func (d *Director) Has(name string) bool {
	_, ok := d.records[name]
	return ok
}

// Types returns registered type names in registration order
func (d *Director) Types() []string {
	out := make([]string, len(d.types))
	copy(out, d.types)
	return out
}

// SetRefs merges refs into the shared references; later keys win
func (d *Director) SetRefs(refs Refs) {
	for k, v := range refs {
		d.refs[k] = v
	}
}

// Refs returns a copy of the shared references
func (d *Director) Refs() Refs {
	out := make(Refs, len(d.refs))
	for k, v := range d.refs {
		out[k] = v
	}
	return out
}

// SetPrePrune replaces the pre-prune hook; nil disables it
func (d *Director) SetPrePrune(fn PrePruneFunc) {
	d.prePrune = fn
}

// spawnProps merges shared refs with per-spawn props, props winning
func (d *Director) spawnProps(props Props) Props {
	merged := make(Props, len(d.refs)+len(props))
	for k, v := range d.refs {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	return merged
}
