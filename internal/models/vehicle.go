package models

// VehicleType enumerates the three vehicle classes in the fleet.
type VehicleType string

const (
	VehicleStandard VehicleType = "standard"
	VehiclePremium  VehicleType = "premium"
	VehicleVan      VehicleType = "van"
)

// Vehicle is an immutable fleet catalog entry, defined at process start.
type Vehicle struct {
	ID          string      `json:"id"`
	Type        VehicleType `json:"type"`
	Name        string      `json:"name"`
	ClassName   string      `json:"class_name"` // Mercedes class
	CapacityMin int         `json:"capacity_min"`
	CapacityMax int         `json:"capacity_max"`
	PerKmRate   float64     `json:"per_km_rate"` // CHF per kilometer
	Description string      `json:"description"`
	Features    []string    `json:"features"`
}

// CanAccommodate reports whether the vehicle fits the passenger count.
func (v Vehicle) CanAccommodate(passengerCount int) bool {
	return passengerCount >= v.CapacityMin && passengerCount <= v.CapacityMax
}
