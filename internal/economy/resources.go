// Package economy provides the resource registry and scarcity-driven
// market pricing.
package economy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category groups resources by their economic role.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryEnergy    Category = "energy"
	CategoryIndustry  Category = "industry"
	CategoryStrategic Category = "strategic"
	CategoryLuxury    Category = "luxury"
)

// ResourceDef is the static metadata for one resource type.
type ResourceDef struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Category   Category `yaml:"category" json:"category"`
	BaseValue  float64  `yaml:"base_value" json:"base_value"`
	Difficulty float64  `yaml:"difficulty" json:"difficulty"` // production difficulty 0–1
	Decay      float64  `yaml:"decay" json:"decay"`           // per-turn storage decay fraction
	Tradeable  bool     `yaml:"tradeable" json:"tradeable"`
}

// Registry holds resource definitions. Constructed explicitly and passed
// in — never a package-level singleton — so tests can supply isolated
// resource sets.
type Registry struct {
	defs  map[string]ResourceDef
	order []string
}

// NewRegistry builds a registry from definitions. Duplicate ids are an
// error.
func NewRegistry(defs []ResourceDef) (*Registry, error) {
	r := &Registry{defs: make(map[string]ResourceDef, len(defs))}
	for _, d := range defs {
		if _, dup := r.defs[d.ID]; dup {
			return nil, fmt.Errorf("economy: duplicate resource id %q", d.ID)
		}
		r.defs[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r, nil
}

// LoadRegistry reads resource definitions from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource file: %w", err)
	}
	var file struct {
		Resources []ResourceDef `yaml:"resources"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse resource file: %w", err)
	}
	return NewRegistry(file.Resources)
}

// Get returns the definition for a resource id.
func (r *Registry) Get(id string) (ResourceDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// IDs returns resource ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered resources.
func (r *Registry) Len() int { return len(r.defs) }

// DefaultRegistry returns the stock resource set used when no YAML file
// is supplied.
func DefaultRegistry() *Registry {
	r, err := NewRegistry([]ResourceDef{
		{ID: "grain", Name: "Grain", Category: CategoryFood, BaseValue: 8, Difficulty: 0.2, Decay: 0.10, Tradeable: true},
		{ID: "oil", Name: "Oil", Category: CategoryEnergy, BaseValue: 40, Difficulty: 0.6, Decay: 0.0, Tradeable: true},
		{ID: "steel", Name: "Steel", Category: CategoryIndustry, BaseValue: 25, Difficulty: 0.5, Decay: 0.0, Tradeable: true},
		{ID: "rare_earths", Name: "Rare Earths", Category: CategoryStrategic, BaseValue: 90, Difficulty: 0.85, Decay: 0.0, Tradeable: true},
		{ID: "electronics", Name: "Electronics", Category: CategoryIndustry, BaseValue: 60, Difficulty: 0.7, Decay: 0.02, Tradeable: true},
		{ID: "uranium", Name: "Uranium", Category: CategoryStrategic, BaseValue: 150, Difficulty: 0.95, Decay: 0.0, Tradeable: false},
		{ID: "timber", Name: "Timber", Category: CategoryIndustry, BaseValue: 12, Difficulty: 0.3, Decay: 0.05, Tradeable: true},
		{ID: "luxury_goods", Name: "Luxury Goods", Category: CategoryLuxury, BaseValue: 75, Difficulty: 0.55, Decay: 0.03, Tradeable: true},
	})
	if err != nil {
		panic(err) // static table, cannot fail
	}
	return r
}
