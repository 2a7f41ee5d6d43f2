package models

// BookingStatus enumerates the booking lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingRecord is the slice of a booking the availability checker needs.
// Callers pass snapshots in; the checker never touches the store.
type BookingRecord struct {
	ID                string        `json:"id"`
	VehicleID         string        `json:"vehicle_id"`
	PickupDate        string        `json:"pickup_date"` // YYYY-MM-DD
	PickupTime        string        `json:"pickup_time"` // HH:MM
	EstimatedDuration int           `json:"estimated_duration"` // minutes
	Status            BookingStatus `json:"status"`
}

// ClosedSlot is an admin-defined unavailability window. An empty VehicleID
// applies the slot to all vehicles.
type ClosedSlot struct {
	ID        string `json:"id"`
	VehicleID string `json:"vehicle_id,omitempty"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Reason    string `json:"reason,omitempty"`
}

// AvailabilityResult reports whether a vehicle can take a requested window,
// and which booking or closed slot blocked it when it cannot.
type AvailabilityResult struct {
	Available          bool           `json:"available"`
	Reason             string         `json:"reason,omitempty"`
	ConflictingBooking *BookingRecord `json:"conflicting_booking,omitempty"`
	ConflictingSlot    *ClosedSlot    `json:"conflicting_slot,omitempty"`
}

// AdvanceNoticeResult reports whether a pickup satisfies the minimum notice.
type AdvanceNoticeResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
