package economy

// Scarcity-driven pricing. The market price of a resource rises as global
// stock falls relative to a per-resource reference level; black-market
// buy/sell prices hang off the market price at a fixed premium/discount
// and ignore the scarcity display tier entirely.

const (
	// referenceStockPerUnit is the global stock at which a resource
	// trades at exactly its base value, scaled by production difficulty.
	referenceStock = 1000.0

	blackMarketBuyPremium  = 1.5
	blackMarketSellDiscount = 0.6

	// Price bounds relative to base value.
	priceFloorRatio   = 0.25
	priceCeilingRatio = 6.0
)

// ScarcityLevel is the display tier for a resource's availability. Used
// only for presentation; pricing never reads it.
type ScarcityLevel string

const (
	ScarcityAbundant ScarcityLevel = "abundant" // green
	ScarcityNormal   ScarcityLevel = "normal"   // yellow
	ScarcityShort    ScarcityLevel = "short"    // orange
	ScarcityCritical ScarcityLevel = "critical" // red
)

// Market computes prices from the registry's static metadata and a live
// view of global stock per resource.
type Market struct {
	registry *Registry

	// GlobalStock is the sum of all countries' holdings plus city yields
	// placed on the market this turn.
	GlobalStock map[string]float64
}

// NewMarket creates a market over a registry with empty stock.
func NewMarket(reg *Registry) *Market {
	return &Market{
		registry: reg,
		GlobalStock: make(map[string]float64),
	}
}

// SetStock replaces the recorded global stock for a resource.
func (m *Market) SetStock(resource string, qty float64) {
	m.GlobalStock[resource] = qty
}

// AddStock adjusts the recorded global stock for a resource, clamping
// at zero.
func (m *Market) AddStock(resource string, delta float64) {
	next := m.GlobalStock[resource] + delta
	if next < 0 {
		next = 0
	}
	m.GlobalStock[resource] = next
}

// Price returns the current market price for a resource: base value
// scaled inversely with available global stock. Scarce resources cost
// more; gluts push the price toward the floor. Unknown resources price
// at zero.
func (m *Market) Price(resource string) float64 {
	def, ok := m.registry.Get(resource)
	if !ok {
		return 0
	}

	// Harder-to-produce resources have a lower reference stock, so the
	// same absolute shortage bites harder.
	ref := referenceStock * (1.0 - def.Difficulty*0.5)
	stock := m.GlobalStock[resource]
	if stock < 1 {
		stock = 1
	}

	price := def.BaseValue * (ref / stock)

	floor := def.BaseValue * priceFloorRatio
	ceiling := def.BaseValue * priceCeilingRatio
	if price < floor {
		price = floor
	}
	if price > ceiling {
		price = ceiling
	}
	return price
}

// Scarcity returns the display tier for a resource's current stock.
func (m *Market) Scarcity(resource string) ScarcityLevel {
	def, ok := m.registry.Get(resource)
	if !ok {
		return ScarcityNormal
	}
	ref := referenceStock * (1.0 - def.Difficulty*0.5)
	ratio := m.GlobalStock[resource] / ref
	switch {
	case ratio >= 1.5:
		return ScarcityAbundant
	case ratio >= 0.6:
		return ScarcityNormal
	case ratio >= 0.25:
		return ScarcityShort
	default:
		return ScarcityCritical
	}
}

// BlackMarketBuy returns the price a country pays per unit when buying
// outside official channels. Untradeable resources are still available
// here — that is the point of the black market — at the same premium.
func (m *Market) BlackMarketBuy(resource string) float64 {
	return m.Price(resource) * blackMarketBuyPremium
}

// BlackMarketSell returns the price a country receives per unit when
// dumping stock on the black market.
func (m *Market) BlackMarketSell(resource string) float64 {
	return m.Price(resource) * blackMarketSellDiscount
}

// ApplyDecay reduces a holdings map in place by each resource's storage
// decay rate. Returns total quantity lost across all resources.
func (m *Market) ApplyDecay(holdings map[string]float64) float64 {
	lost := 0.0
	for id, qty := range holdings {
		def, ok := m.registry.Get(id)
		if !ok || def.Decay <= 0 || qty <= 0 {
			continue
		}
		loss := qty * def.Decay
		holdings[id] = qty - loss
		lost += loss
	}
	return lost
}
