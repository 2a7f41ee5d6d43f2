package models

import "time"

// Booking is a persisted limousine booking.
type Booking struct {
	ID               string        `json:"id"`
	BookingReference string        `json:"booking_reference"` // EL-YYYYMMDD-XXXX
	From             string        `json:"from"`
	To               string        `json:"to"`
	PickupDate       string        `json:"pickup_date"` // YYYY-MM-DD
	PickupTime       string        `json:"pickup_time"` // HH:MM
	Passengers       int           `json:"passengers"`
	VehicleID        string        `json:"vehicle_id"`
	VehicleLabel     string        `json:"vehicle_label"`
	DistanceKm       float64       `json:"distance_km,omitempty"`
	DurationMinutes  int           `json:"duration_minutes"`
	PricingMethod    PricingMethod `json:"pricing_method"`
	BasePrice        float64       `json:"base_price"`
	AddOns           []string      `json:"add_ons"` // add-on ids
	AddOnsTotal      float64       `json:"add_ons_total"`
	TotalPrice       float64       `json:"total_price"`
	Currency         string        `json:"currency"`
	CustomerName     string        `json:"customer_name"`
	CustomerEmail    string        `json:"customer_email"`
	CustomerPhone    string        `json:"customer_phone"`
	FlightNumber     string        `json:"flight_number,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	StripeSessionID  string        `json:"stripe_session_id,omitempty"`
	Status           BookingStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Record projects the booking onto the shape the availability checker consumes.
func (b *Booking) Record() BookingRecord {
	return BookingRecord{
		ID:                b.ID,
		VehicleID:         b.VehicleID,
		PickupDate:        b.PickupDate,
		PickupTime:        b.PickupTime,
		EstimatedDuration: b.DurationMinutes,
		Status:            b.Status,
	}
}

// QuoteRequest asks for priced vehicle options for a trip.
type QuoteRequest struct {
	From           string   `json:"from" validate:"required"`
	To             string   `json:"to" validate:"required"`
	PickupDate     string   `json:"pickup_date" validate:"required"`
	PickupTime     string   `json:"pickup_time" validate:"required"`
	Passengers     int      `json:"passengers" validate:"required,min=1,max=7"`
	DistanceKm     float64  `json:"distance_km,omitempty" validate:"omitempty,gt=0"`
	SelectedAddOns []string `json:"selected_add_ons,omitempty"`
	FromLat        float64  `json:"from_lat,omitempty"`
	FromLng        float64  `json:"from_lng,omitempty"`
	ToLat          float64  `json:"to_lat,omitempty"`
	ToLng          float64  `json:"to_lng,omitempty"`
}

// VehicleQuote is one bookable option returned to the client.
type VehicleQuote struct {
	QuoteID         string           `json:"quote_id"`
	Vehicle         Vehicle          `json:"vehicle"`
	Price           PriceCalculation `json:"price"`
	DistanceKm      float64          `json:"distance_km,omitempty"`
	DurationMinutes int              `json:"duration_minutes"`
}

// QuoteResponse bundles the bookable options for a trip request.
type QuoteResponse struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Date     string         `json:"date"`
	Time     string         `json:"time"`
	Vehicles []VehicleQuote `json:"vehicles"`
}

// CreateBookingRequest turns a previously issued quote into a pending booking.
type CreateBookingRequest struct {
	QuoteID       string `json:"quote_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required,min=2"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=5"`
	FlightNumber  string `json:"flight_number,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// CheckoutRequest starts a Stripe Checkout session for a pending booking.
type CheckoutRequest struct {
	SuccessURL string `json:"success_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
}

// CheckoutResponse carries the hosted payment page the client redirects to.
type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CancellationResponse reports the refund applied to a cancelled booking.
type CancellationResponse struct {
	Booking *Booking           `json:"booking"`
	Refund  CancellationRefund `json:"refund"`
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	Status    BookingStatus `json:"status,omitempty"`
	StartDate string        `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate   string        `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
}
