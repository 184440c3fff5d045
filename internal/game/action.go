package game

import "github.com/google/uuid"

// ActionID is a unique identifier for a submitted action.
type ActionID string

// NewActionID returns a fresh random action identifier.
func NewActionID() ActionID { return ActionID(uuid.NewString()) }

// ActionType discriminates the four action families.
type ActionType string

const (
	ActionDiplomacy ActionType = "diplomacy"
	ActionMilitary  ActionType = "military"
	ActionEconomic  ActionType = "economic"
	ActionResearch  ActionType = "research"
)

// ActionStatus is the lifecycle state of an action. Terminal once it
// leaves pending.
type ActionStatus string

const (
	StatusPending  ActionStatus = "pending"
	StatusExecuted ActionStatus = "executed"
	StatusFailed   ActionStatus = "failed"
)

// GameAction is the unit of play. Exactly one payload pointer is set,
// matching Type — a tagged union, so resolver dispatch is exhaustive.
// Human submissions and AI decisions both produce this same value.
type GameAction struct {
	ID        ActionID     `json:"id"`
	CountryID CountryID    `json:"country_id"`
	Type      ActionType   `json:"type"`
	Status    ActionStatus `json:"status"`
	Turn      int          `json:"turn"`

	Research       *ResearchPayload       `json:"research,omitempty"`
	Infrastructure *InfrastructurePayload `json:"infrastructure,omitempty"`
	Trade          *TradePayload          `json:"trade,omitempty"`
	Buildup        *BuildupPayload        `json:"buildup,omitempty"`
	Attack         *AttackPayload         `json:"attack,omitempty"`
	Relations      *RelationsPayload      `json:"relations,omitempty"`
}

// ResearchPayload advances the technology level.
type ResearchPayload struct {
	Field string `json:"field,omitempty"` // flavor only, does not affect pricing
}

// InfrastructurePayload advances the infrastructure level.
type InfrastructurePayload struct{}

// TradePayload buys or sells a resource on the black market.
type TradePayload struct {
	Resource string  `json:"resource"`
	Quantity float64 `json:"quantity"`
	Sell     bool    `json:"sell"`
}

// BuildupPayload expands military strength and equipment.
type BuildupPayload struct {
	Equipment string `json:"equipment"`
	Units     int    `json:"units"`
}

// AttackPayload commits a fraction of military strength against a city.
type AttackPayload struct {
	Target        CountryID `json:"target"`
	City          CityID    `json:"city"`
	AllocationPct float64   `json:"allocation_pct"` // 0–100, fraction of total strength

	// LiveResolution resolves combat synchronously instead of queueing it
	// for end-of-turn resolution.
	LiveResolution bool `json:"live_resolution,omitempty"`
}

// RelationsPayload spends budget to improve standing with a target country.
type RelationsPayload struct {
	Target CountryID `json:"target"`
	Boost  float64   `json:"boost"` // relation points sought, typically 5–15
}

// NewAction builds a pending action for the given turn. The caller sets
// exactly one payload field.
func NewAction(country CountryID, t ActionType, turn int) *GameAction {
	return &GameAction{
		ID:        NewActionID(),
		CountryID: country,
		Type:      t,
		Status:    StatusPending,
		Turn:      turn,
	}
}
