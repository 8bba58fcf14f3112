package wave

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/director"
)

// Director is the subset of the entity director the spawner uses
type Director interface {
	Has(name string) bool
	Spawn(name string, props director.Props) (director.Entity, error)
	AllPrimaryEnemiesDead() bool
}

// Spawner starts waves from a table and reports completion
type Spawner struct {
	table  *Table
	d      Director
	log    *zap.Logger
	number int // 1-based, 0 before the first wave
	active bool
}

func NewSpawner(table *Table, d Director, log *zap.Logger) *Spawner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Spawner{table: table, d: d, log: log}
}

// Validate fails on table types the director does not know
// Run at session start: a missing registration is a configuration bug
func (s *Spawner) Validate() error {
	for _, name := range s.table.Types() {
		if !s.d.Has(name) {
			return errors.Wrapf(director.ErrUnknownEntityType, "wave table type %q", name)
		}
	}
	return nil
}

// Number is the current 1-based wave number
func (s *Spawner) Number() int { return s.number }

// Current returns the table wave for the current number
func (s *Spawner) Current() Wave {
	if s.number == 0 {
		return Wave{}
	}
	return s.table.Waves[(s.number-1)%len(s.table.Waves)]
}

// Next spawns the following wave; past the end of the table waves repeat with scaled counts
func (s *Spawner) Next() error {
	s.number++
	idx := (s.number - 1) % len(s.table.Waves)
	scale := 1 + (s.number-1)/len(s.table.Waves)
	w := s.table.Waves[idx]

	spawned := 0
	for _, e := range w.Spawns {
		n := e.Count * scale
		for i := 0; i < n; i++ {
			if _, err := s.d.Spawn(e.Type, entryProps(e, i)); err != nil {
				return errors.Wrapf(err, "wave %d", s.number)
			}
			spawned++
		}
	}
	s.active = true

	s.log.Info("wave started",
		zap.Int("wave", s.number),
		zap.String("name", w.Name),
		zap.Int("entities", spawned),
	)
	return nil
}

// Done reports that a started wave has no live primary enemies left
func (s *Spawner) Done() bool {
	return s.active && s.d.AllPrimaryEnemiesDead()
}

// Finish marks the current wave complete and returns its bonus
func (s *Spawner) Finish() int {
	if !s.active {
		return 0
	}
	s.active = false
	return s.Current().Bonus
}

// entryProps copies the entry props and offsets fx for the i-th entity
func entryProps(e Entry, i int) director.Props {
	p := make(director.Props, len(e.Props)+1)
	for k, v := range e.Props {
		p[k] = v
	}
	if e.Spread != 0 {
		p["fx"] = toFloat(p["fx"]) + e.Spread*float64(i)
	}
	return p
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}
