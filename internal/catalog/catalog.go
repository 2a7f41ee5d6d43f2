// Package catalog holds the static fleet, fixed-route, and add-on tables.
// The tables are immutable configuration built once at startup and injected
// into the engine services, so the engines stay pure and testable.
package catalog

import "limo-booking/internal/models"

// Catalog bundles the three static tables.
type Catalog struct {
	vehicles    []models.Vehicle
	fixedRoutes []models.FixedRoute
	addOns      []models.AddOn
}

// New builds a catalog from explicit tables. Tests inject small fixtures here.
func New(vehicles []models.Vehicle, routes []models.FixedRoute, addOns []models.AddOn) *Catalog {
	return &Catalog{vehicles: vehicles, fixedRoutes: routes, addOns: addOns}
}

// Default returns the production catalog: the three-vehicle fleet, the fixed
// airport corridors, and the bookable add-ons.
func Default() *Catalog {
	return New(fleet, fixedRoutes, addOns)
}

// Vehicles returns the full fleet.
func (c *Catalog) Vehicles() []models.Vehicle {
	return c.vehicles
}

// VehicleByID returns the vehicle with the given id, or nil when unknown.
func (c *Catalog) VehicleByID(id string) *models.Vehicle {
	for i := range c.vehicles {
		if c.vehicles[i].ID == id {
			return &c.vehicles[i]
		}
	}
	return nil
}

// VehicleByType returns the first vehicle of the given type, or nil.
func (c *Catalog) VehicleByType(t models.VehicleType) *models.Vehicle {
	for i := range c.vehicles {
		if c.vehicles[i].Type == t {
			return &c.vehicles[i]
		}
	}
	return nil
}

// VehiclesForPassengerCount returns every vehicle whose capacity range covers
// the passenger count.
func (c *Catalog) VehiclesForPassengerCount(n int) []models.Vehicle {
	var out []models.Vehicle
	for _, v := range c.vehicles {
		if v.CanAccommodate(n) {
			out = append(out, v)
		}
	}
	return out
}

// VehicleCanAccommodate reports whether the vehicle exists and fits the
// passenger count. Unknown ids are simply not accommodating.
func (c *Catalog) VehicleCanAccommodate(id string, n int) bool {
	v := c.VehicleByID(id)
	if v == nil {
		return false
	}
	return v.CanAccommodate(n)
}

// FixedRoutes returns the fixed-route table.
func (c *Catalog) FixedRoutes() []models.FixedRoute {
	return c.fixedRoutes
}

// AddOns returns the bookable add-ons.
func (c *Catalog) AddOns() []models.AddOn {
	return c.addOns
}

// AddOnByID returns the add-on with the given id, or nil when unknown.
func (c *Catalog) AddOnByID(id string) *models.AddOn {
	for i := range c.addOns {
		if c.addOns[i].ID == id {
			return &c.addOns[i]
		}
	}
	return nil
}
