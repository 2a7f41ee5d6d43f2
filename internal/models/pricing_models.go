package models

// PricingMethod tells how a base price was derived.
type PricingMethod string

const (
	PricingFixedRoute PricingMethod = "fixed-route"
	PricingPerKm      PricingMethod = "per-km"
)

// FixedRoute is a named corridor with flat prices per vehicle type, overriding
// distance-based pricing. From/To hold normalized location synonyms; a route
// also matches when the endpoints are swapped (return legs use the same price).
type FixedRoute struct {
	ID          string                  `json:"id"`
	From        []string                `json:"from"`
	To          []string                `json:"to"`
	Prices      map[VehicleType]float64 `json:"prices"` // must cover every vehicle type
	Description string                  `json:"description"`
}

// AddOn is an optional flat-fee service attached to a booking.
type AddOn struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"` // CHF
}

// AddOnCharge is a resolved add-on on a price calculation.
type AddOnCharge struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// BreakdownItem is one display line of a price calculation.
type BreakdownItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// PriceCalculation is the result of pricing a trip. Subtotal always equals
// BasePrice + AddOnsTotal exactly; callers round only for display.
type PriceCalculation struct {
	BasePrice     float64         `json:"base_price"`
	PricingMethod PricingMethod   `json:"pricing_method"`
	FixedRoute    *FixedRoute     `json:"fixed_route,omitempty"`
	DistanceKm    float64         `json:"distance_km,omitempty"`  // per-km only
	PerKmRate     float64         `json:"per_km_rate,omitempty"`  // per-km only
	AddOns        []AddOnCharge   `json:"add_ons"`
	AddOnsTotal   float64         `json:"add_ons_total"`
	Subtotal      float64         `json:"subtotal"`
	Currency      string          `json:"currency"` // always "CHF"
	Breakdown     []BreakdownItem `json:"breakdown"`
}
