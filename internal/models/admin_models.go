package models

// ClosedSlotRequest creates or updates a closed slot. Validated before any
// write is accepted.
type ClosedSlotRequest struct {
	VehicleID string `json:"vehicle_id,omitempty"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Reason    string `json:"reason,omitempty"`
}

// ClosedSlotUpdate is a partial update of an existing closed slot. Nil fields
// keep their current value; the merged result is re-validated before any write.
type ClosedSlotUpdate struct {
	VehicleID *string `json:"vehicle_id,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// DelayConfigUpdate is a partial update of the flight-delay configuration.
// Nil fields keep their current value.
type DelayConfigUpdate struct {
	Enabled            *bool            `json:"enabled,omitempty"`
	FreeWaitingMinutes *int             `json:"free_waiting_minutes,omitempty"`
	ChargeType         *DelayChargeType `json:"charge_type,omitempty"`
	FixedAmount        *float64         `json:"fixed_amount,omitempty"`
	PerIntervalAmount  *float64         `json:"per_interval_amount,omitempty"`
	IntervalMinutes    *int             `json:"interval_minutes,omitempty"`
}

// UpdateBookingStatusRequest moves a booking through its lifecycle.
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// LoginRequest authenticates the ops dashboard.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the admin JWT.
type LoginResponse struct {
	Token string `json:"token"`
}

// BookingStats is the ops dashboard summary report.
type BookingStats struct {
	TotalBookings       int     `json:"total_bookings"`
	PendingBookings     int     `json:"pending_bookings"`
	ConfirmedBookings   int     `json:"confirmed_bookings"`
	CompletedBookings   int     `json:"completed_bookings"`
	CancelledBookings   int     `json:"cancelled_bookings"`
	TotalRevenue        float64 `json:"total_revenue"`
	AverageBookingValue float64 `json:"average_booking_value"`
}
