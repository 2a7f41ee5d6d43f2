// Package pricing computes trip prices: fixed-route lookup first, per-km
// fallback, plus flat-fee add-ons.
package pricing

import (
	"fmt"
	"strings"

	"limo-booking/internal/catalog"
	"limo-booking/internal/models"
)

// ServiceInterface defines the contract for the pricing engine.
type ServiceInterface interface {
	CalculatePrice(req Request) (*models.PriceCalculation, error)
	FindFixedRoute(from, to string) *models.FixedRoute
}

// Request carries the inputs for one price calculation.
type Request struct {
	From           string
	To             string
	Vehicle        models.Vehicle
	DistanceKm     float64  // required when no fixed route matches
	SelectedAddOns []string // add-on ids; unknown ids are silently dropped
}

// Service implements the pricing engine over the static catalog.
type Service struct {
	catalog *catalog.Catalog
}

// NewService creates a new pricing service.
func NewService(cat *catalog.Catalog) *Service {
	return &Service{catalog: cat}
}

// normalizeLocation lowercases, trims, strips everything except letters
// (including the umlauts ä/ö/ü), digits, and whitespace, then collapses
// whitespace runs to a single space. Matching is exact on the result.
func normalizeLocation(location string) string {
	lower := strings.ToLower(strings.TrimSpace(location))
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'ä' || r == 'ö' || r == 'ü':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func matchesAny(synonyms []string, normalized string) bool {
	for _, s := range synonyms {
		if normalizeLocation(s) == normalized {
			return true
		}
	}
	return false
}

// FindFixedRoute returns the fixed route covering the trip, or nil. The
// forward direction is checked first, then the swapped direction so return
// legs use the same fixed price.
func (s *Service) FindFixedRoute(from, to string) *models.FixedRoute {
	nFrom := normalizeLocation(from)
	nTo := normalizeLocation(to)

	routes := s.catalog.FixedRoutes()
	for i := range routes {
		if matchesAny(routes[i].From, nFrom) && matchesAny(routes[i].To, nTo) {
			return &routes[i]
		}
	}
	for i := range routes {
		if matchesAny(routes[i].To, nFrom) && matchesAny(routes[i].From, nTo) {
			return &routes[i]
		}
	}
	return nil
}

// CalculatePrice prices a trip for one vehicle. It is a pure function of the
// static tables: no side effects, deterministic for identical inputs.
func (s *Service) CalculatePrice(req Request) (*models.PriceCalculation, error) {
	fixedRoute := s.FindFixedRoute(req.From, req.To)

	var basePrice float64
	var method models.PricingMethod
	var breakdown []models.BreakdownItem

	if fixedRoute != nil {
		basePrice = fixedRoute.Prices[req.Vehicle.Type]
		method = models.PricingFixedRoute
		breakdown = append(breakdown, models.BreakdownItem{
			Label:  fixedRoute.Description,
			Amount: basePrice,
		})
	} else {
		if req.DistanceKm <= 0 {
			return nil, models.ErrDistanceRequired
		}
		basePrice = req.DistanceKm * req.Vehicle.PerKmRate
		method = models.PricingPerKm
		breakdown = append(breakdown, models.BreakdownItem{
			Label:  fmt.Sprintf("Distance: %.1f km × %.2f CHF/km", req.DistanceKm, req.Vehicle.PerKmRate),
			Amount: basePrice,
		})
	}

	var addOns []models.AddOnCharge
	var addOnsTotal float64
	for _, id := range req.SelectedAddOns {
		addon := s.catalog.AddOnByID(id)
		if addon == nil {
			continue // unknown ids are dropped, not an error
		}
		addOns = append(addOns, models.AddOnCharge{ID: addon.ID, Name: addon.Name, Price: addon.Price})
		addOnsTotal += addon.Price
		breakdown = append(breakdown, models.BreakdownItem{Label: addon.Name, Amount: addon.Price})
	}

	calc := &models.PriceCalculation{
		BasePrice:     basePrice,
		PricingMethod: method,
		FixedRoute:    fixedRoute,
		AddOns:        addOns,
		AddOnsTotal:   addOnsTotal,
		Subtotal:      basePrice + addOnsTotal,
		Currency:      "CHF",
		Breakdown:     breakdown,
	}
	if method == models.PricingPerKm {
		calc.DistanceKm = req.DistanceKm
		calc.PerKmRate = req.Vehicle.PerKmRate
	}
	return calc, nil
}
