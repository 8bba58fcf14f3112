package wave

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTable []byte

// Entry spawns Count entities of Type, offsetting fx by Spread per entity
type Entry struct {
	Type   string         `yaml:"type"`
	Count  int            `yaml:"count"`
	Props  map[string]any `yaml:"props"`
	Spread float64        `yaml:"spread"`
}

type Wave struct {
	Name   string  `yaml:"name"`
	Bonus  int     `yaml:"bonus"`
	Spawns []Entry `yaml:"spawns"`
}

// Table is the ordered list of waves for a session
type Table struct {
	Waves []Wave `yaml:"waves"`
}

// Load reads a table from path; empty path returns the built-in table
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read waves %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("waves %s: %w", path, err)
	}
	return t, nil
}

func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(t.Waves) == 0 {
		return nil, fmt.Errorf("no waves defined")
	}
	for i, w := range t.Waves {
		if len(w.Spawns) == 0 {
			return nil, fmt.Errorf("wave %d %q has no spawns", i, w.Name)
		}
		for j, e := range w.Spawns {
			if e.Type == "" || e.Count <= 0 {
				return nil, fmt.Errorf("wave %d entry %d: type and positive count required", i, j)
			}
		}
	}
	return &t, nil
}

// Default returns the embedded table
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded wave table: %v", err))
	}
	return t
}

// Types lists every entity type referenced, in first-use order
func (t *Table) Types() []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range t.Waves {
		for _, e := range w.Spawns {
			if !seen[e.Type] {
				seen[e.Type] = true
				out = append(out, e.Type)
			}
		}
	}
	return out
}
