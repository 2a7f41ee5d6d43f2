package catalog

import "limo-booking/internal/models"

// The fleet: only these 3 vehicles exist.
var fleet = []models.Vehicle{
	{
		ID:          "vehicle-standard-eclass",
		Type:        models.VehicleStandard,
		Name:        "Standard",
		ClassName:   "Mercedes E-Class",
		CapacityMin: 1,
		CapacityMax: 3,
		PerKmRate:   4.20,
		Description: "Elegant and comfortable for up to 3 passengers",
		Features:    []string{"Leather seats", "Climate control", "Wi-Fi"},
	},
	{
		ID:          "vehicle-premium-sclass",
		Type:        models.VehiclePremium,
		Name:        "Premium",
		ClassName:   "Mercedes S-Class",
		CapacityMin: 1,
		CapacityMax: 3,
		PerKmRate:   5.00,
		Description: "Ultimate luxury for up to 3 passengers",
		Features:    []string{"Premium leather", "Massage seats", "Champagne bar", "Wi-Fi"},
	},
	{
		ID:          "vehicle-van-vclass",
		Type:        models.VehicleVan,
		Name:        "Van",
		ClassName:   "Mercedes V-Class",
		CapacityMin: 1,
		CapacityMax: 7,
		PerKmRate:   4.50,
		Description: "Spacious luxury for up to 7 passengers",
		Features:    []string{"Spacious interior", "Captain seats", "Extra luggage space", "Wi-Fi"},
	},
}

// Fixed-price corridors with location synonyms. These override per-km pricing
// when both endpoints match; every vehicle type must have a price entry.
var fixedRoutes = []models.FixedRoute{
	{
		ID:   "zrh-zurich-city",
		From: []string{"zürich airport", "zrh", "zurich airport", "zürich flughafen", "zurich flughafen"},
		To:   []string{"zürich city", "zurich city", "zurich stadt", "zürich stadt", "zurich", "zürich"},
		Prices: map[models.VehicleType]float64{
			models.VehicleStandard: 80,
			models.VehiclePremium:  100,
			models.VehicleVan:      90,
		},
		Description: "Zürich Airport → Zürich City",
	},
	{
		ID:   "zrh-basel-city",
		From: []string{"zürich airport", "zrh", "zurich airport", "zürich flughafen", "zurich flughafen"},
		To:   []string{"basel city", "basel stadt", "basel", "bsl"},
		Prices: map[models.VehicleType]float64{
			models.VehicleStandard: 420,
			models.VehiclePremium:  500,
			models.VehicleVan:      450,
		},
		Description: "Zürich Airport → Basel City",
	},
	{
		ID:   "zrh-stmoritz",
		From: []string{"zürich airport", "zrh", "zurich airport", "zürich flughafen", "zurich flughafen"},
		To:   []string{"st. moritz", "st moritz", "saint moritz", "stmoritz"},
		Prices: map[models.VehicleType]float64{
			models.VehicleStandard: 800,
			models.VehiclePremium:  1000,
			models.VehicleVan:      1000,
		},
		Description: "Zürich Airport → St. Moritz",
	},
}

var addOns = []models.AddOn{
	{
		ID:          "vip-meet-inside",
		Name:        "VIP Service",
		Description: "Airport meet-and-greet inside the terminal (chauffeur enters the terminal to pick you up)",
		Price:       100,
	},
}
