package game

import "github.com/google/uuid"

// DealID is a unique identifier for a deal.
type DealID string

// NewDealID returns a fresh random deal identifier.
func NewDealID() DealID { return DealID(uuid.NewString()) }

// DealStatus is the lifecycle state of an agreement.
type DealStatus string

const (
	DealDraft     DealStatus = "draft"
	DealProposed  DealStatus = "proposed"
	DealAccepted  DealStatus = "accepted"
	DealRejected  DealStatus = "rejected"
	DealActive    DealStatus = "active"
	DealCompleted DealStatus = "completed"
	DealViolated  DealStatus = "violated"
)

// CommitmentKind discriminates what a deal party promises to hand over.
type CommitmentKind string

const (
	CommitResource CommitmentKind = "resource"
	CommitBudget   CommitmentKind = "budget"
	CommitCity     CommitmentKind = "city"
)

// Commitment is one typed obligation within a deal, owed by From to the
// other party each turn the deal is active.
type Commitment struct {
	Kind     CommitmentKind `json:"kind"`
	From     CountryID      `json:"from"`
	Resource string         `json:"resource,omitempty"`
	Quantity float64        `json:"quantity,omitempty"`
	Budget   float64        `json:"budget,omitempty"`
	City     CityID         `json:"city,omitempty"`
}

// Deal is a multi-turn agreement between a proposing and a receiving country.
type Deal struct {
	ID          DealID       `json:"id"`
	Proposer    CountryID    `json:"proposer"`
	Receiver    CountryID    `json:"receiver"`
	Commitments []Commitment `json:"commitments"`
	Status      DealStatus   `json:"status"`
	CreatedTurn int          `json:"created_turn"`

	// ExpiryTurn, when set, is the turn on which the deal stops running.
	ExpiryTurn *int `json:"expiry_turn,omitempty"`
}

// Expired reports whether the deal's expiry turn has been reached.
func (d *Deal) Expired(turn int) bool {
	return d.ExpiryTurn != nil && turn >= *d.ExpiryTurn
}
