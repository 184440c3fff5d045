// Package game provides the core data model: countries, cities, actions,
// deals, and the authoritative per-turn game state.
package game

import (
	"github.com/google/uuid"
)

// CountryID is a unique identifier for a country (UUID string).
type CountryID string

// CityID is a unique identifier for a city.
type CityID string

// GameID is a unique identifier for a game.
type GameID string

// NewCountryID returns a fresh random country identifier.
func NewCountryID() CountryID { return CountryID(uuid.NewString()) }

// NewCityID returns a fresh random city identifier.
func NewCityID() CityID { return CityID(uuid.NewString()) }

// NewGameID returns a fresh random game identifier.
func NewGameID() GameID { return GameID(uuid.NewString()) }

// NeutralRelation is the score assumed for countries with no recorded
// diplomatic history.
const NeutralRelation = 50.0

// Country is the static identity of a participant. Immutable after creation;
// all per-turn numbers live in CountryStats.
type Country struct {
	ID               CountryID `json:"id"`
	Name             string    `json:"name"`
	Color            string    `json:"color"`
	Q                int       `json:"q"` // board position (axial)
	R                int       `json:"r"`
	PlayerControlled bool      `json:"player_controlled"`
}

// CountryStats is the per-country, per-turn mutable record.
type CountryStats struct {
	Population          int64              `json:"population"`
	Budget              float64            `json:"budget"`
	TechnologyLevel     int                `json:"technology_level"`
	InfrastructureLevel int                `json:"infrastructure_level"`
	MilitaryStrength    float64            `json:"military_strength"`
	MilitaryEquipment   map[string]int     `json:"military_equipment"`
	Resources           map[string]float64 `json:"resources"`

	// Directional relation scores 0–100: this country's view of the target.
	DiplomaticRelations map[CountryID]float64 `json:"diplomatic_relations"`

	// Specialization tag, e.g. "industrial", "agricultural".
	ResourceProfile string `json:"resource_profile"`
}

// RelationWith returns this country's relation score toward the target,
// defaulting to neutral when no history exists.
func (s *CountryStats) RelationWith(target CountryID) float64 {
	if s.DiplomaticRelations == nil {
		return NeutralRelation
	}
	if r, ok := s.DiplomaticRelations[target]; ok {
		return r
	}
	return NeutralRelation
}

// Resource returns the held quantity of a resource, zero when absent.
func (s *CountryStats) Resource(id string) float64 {
	return s.Resources[id]
}

// Clone returns a deep copy. State mutations install cloned records so a
// replaced stats value never aliases the previous turn's maps.
func (s *CountryStats) Clone() *CountryStats {
	c := *s
	c.MilitaryEquipment = make(map[string]int, len(s.MilitaryEquipment))
	for k, v := range s.MilitaryEquipment {
		c.MilitaryEquipment[k] = v
	}
	c.Resources = make(map[string]float64, len(s.Resources))
	for k, v := range s.Resources {
		c.Resources[k] = v
	}
	c.DiplomaticRelations = make(map[CountryID]float64, len(s.DiplomaticRelations))
	for k, v := range s.DiplomaticRelations {
		c.DiplomaticRelations[k] = v
	}
	return &c
}

// City is a settlement owned by exactly one country.
type City struct {
	ID          CityID             `json:"id"`
	Name        string             `json:"name"`
	OwnerID     CountryID          `json:"owner_id"`
	Population  int64              `json:"population"`
	Yields      map[string]float64 `json:"yields"` // resource id → per-turn income
	UnderAttack bool               `json:"under_attack"`
}

// StrategicValue scores a city for targeting and defense decisions.
// Derived from population and total yield, never stored.
func (c *City) StrategicValue() float64 {
	yield := 0.0
	for _, q := range c.Yields {
		yield += q
	}
	return float64(c.Population)/1000.0 + yield*2.0
}
