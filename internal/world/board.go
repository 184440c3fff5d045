// Package world generates the opening board: country placement, city
// yields, and resource profiles, all derived from layered simplex noise
// so a seed reproduces the same game.
package world

import (
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/game"
)

// GenConfig holds board generation parameters.
type GenConfig struct {
	Seed             int64 // 0 = random
	Radius           int   // board radius in axial coordinates
	Countries        int
	CitiesPerCountry int
	PlayerCountry    bool // mark the first country player-controlled
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:           20,
		Countries:        6,
		CitiesPerCountry: 2,
	}
}

var countryNames = []string{
	"Veridia", "Kestrel Union", "Altan Republic", "Norvik", "Souther Reach",
	"Ilmara", "Castellane", "Thalor", "Breccia", "Oskara",
}

var profileByCategory = map[economy.Category]string{
	economy.CategoryFood:      "agricultural",
	economy.CategoryEnergy:    "petrostate",
	economy.CategoryIndustry:  "industrial",
	economy.CategoryStrategic: "mineral",
	economy.CategoryLuxury:    "mercantile",
}

// BuildGame generates a complete opening GameState: countries spaced
// around the board, each with cities whose yields come from per-resource
// noise fields, and stats seeded from local richness.
func BuildGame(cfg GenConfig, reg *economy.Registry) *game.GameState {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	// One noise field per resource; sampling position decides local
	// richness.
	fields := make(map[string]opensimplex.Noise, reg.Len())
	for i, id := range reg.IDs() {
		fields[id] = opensimplex.NewNormalized(seed + int64(i)*7)
	}

	state := game.NewGameState(game.NewGameID())

	for i := 0; i < cfg.Countries; i++ {
		// Even angular spacing keeps starting positions fair.
		angle := 2 * math.Pi * float64(i) / float64(cfg.Countries)
		q := int(float64(cfg.Radius) * 0.7 * math.Cos(angle))
		r := int(float64(cfg.Radius) * 0.7 * math.Sin(angle))

		country := &game.Country{
			ID:               game.NewCountryID(),
			Name:             countryNames[i%len(countryNames)],
			Color:            fmt.Sprintf("#%06x", rng.Intn(0xffffff)),
			Q:                q,
			R:                r,
			PlayerControlled: cfg.PlayerCountry && i == 0,
		}

		stats := seedStats(country, fields, reg, rng)
		state.AddCountry(country, stats)

		for c := 0; c < cfg.CitiesPerCountry; c++ {
			city := seedCity(country, c, fields, reg, rng)
			state.AddCity(city)
		}
	}

	return state
}

// seedStats derives opening stats from the noise fields at the country's
// position. The richest local resource sets the country's profile tag.
func seedStats(country *game.Country, fields map[string]opensimplex.Noise, reg *economy.Registry, rng *rand.Rand) *game.CountryStats {
	resources := make(map[string]float64, reg.Len())
	profile := "balanced"
	richest := 0.0

	for _, id := range reg.IDs() {
		richness := fields[id].Eval2(float64(country.Q)*0.1, float64(country.R)*0.1)
		resources[id] = math.Round(richness * 100)
		if richness > richest {
			richest = richness
			if def, ok := reg.Get(id); ok {
				profile = profileByCategory[def.Category]
			}
		}
	}

	return &game.CountryStats{
		Population:          int64(5_000_000 + rng.Intn(20_000_000)),
		Budget:              1000,
		TechnologyLevel:     1 + rng.Intn(3),
		InfrastructureLevel: 1 + rng.Intn(3),
		MilitaryStrength:    400 + float64(rng.Intn(400)),
		MilitaryEquipment:   map[string]int{"infantry": 10 + rng.Intn(20)},
		Resources:           resources,
		DiplomaticRelations: make(map[game.CountryID]float64),
		ResourceProfile:     profile,
	}
}

// seedCity places a city near its country's position and derives yields
// from the same noise fields, so geography and economy agree.
func seedCity(country *game.Country, index int, fields map[string]opensimplex.Noise, reg *economy.Registry, rng *rand.Rand) *game.City {
	q := float64(country.Q + 1 + index)
	r := float64(country.R - index)

	yields := make(map[string]float64)
	for _, id := range reg.IDs() {
		richness := fields[id].Eval2(q*0.1, r*0.1)
		if richness > 0.55 {
			yields[id] = math.Round(richness * 10)
		}
	}

	name := fmt.Sprintf("%s City", country.Name)
	if index > 0 {
		name = fmt.Sprintf("Port %s %d", country.Name, index+1)
	}

	return &game.City{
		ID:         game.NewCityID(),
		Name:       name,
		OwnerID:    country.ID,
		Population: int64(200_000 + rng.Intn(2_000_000)),
		Yields:     yields,
	}
}
