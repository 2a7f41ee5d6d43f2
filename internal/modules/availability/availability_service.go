// Package availability decides whether a vehicle can take a requested time
// window, given booking snapshots and admin-defined closed slots.
package availability

import (
	"fmt"
	"math"
	"time"

	"limo-booking/internal/models"
)

const (
	// bufferMinutes is the turnaround margin applied around booking windows
	// before overlap comparison.
	bufferMinutes = 30

	averageSpeedKmh     = 60
	tripBufferMinutes   = 15
	minimumAdvanceHours = 2
)

// ServiceInterface defines the contract for the availability checker.
type ServiceInterface interface {
	IsVehicleAvailable(req CheckRequest) models.AvailabilityResult
	AvailableVehicles(req VehiclesRequest) []models.Vehicle
	EstimateTripDuration(distanceKm float64) int
	MeetsMinimumAdvanceNotice(date, pickupTime string, now time.Time) models.AdvanceNoticeResult
	IsDateTimeInPast(date, pickupTime string, now time.Time) bool
}

// CheckRequest asks whether one vehicle is free for a window.
type CheckRequest struct {
	VehicleID         string
	Date              string // YYYY-MM-DD
	Time              string // HH:MM
	EstimatedDuration int    // minutes
	ExistingBookings  []models.BookingRecord
	ClosedSlots       []models.ClosedSlot
	ExcludeBookingID  string // set when re-checking a booking being modified
}

// VehiclesRequest asks for every vehicle that can take a trip.
type VehiclesRequest struct {
	Vehicles          []models.Vehicle
	Date              string
	Time              string
	EstimatedDuration int
	PassengerCount    int
	ExistingBookings  []models.BookingRecord
	ClosedSlots       []models.ClosedSlot
}

// Service implements the availability checks. It is stateless; callers pass
// booking and closed-slot snapshots in.
type Service struct{}

// NewService creates a new availability service.
func NewService() *Service {
	return &Service{}
}

// toTimestamp combines a YYYY-MM-DD date and HH:MM time into a local time.
func toTimestamp(date, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// overlaps tests half-open interval overlap: touching endpoints do not count.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// IsVehicleAvailable checks the requested window against existing bookings
// (with the turnaround buffer on both windows) and then against closed slots
// (unbuffered: closed slots are hard business-hour boundaries).
func (s *Service) IsVehicleAvailable(req CheckRequest) models.AvailabilityResult {
	requestStart := toTimestamp(req.Date, req.Time)
	requestEnd := requestStart.Add(time.Duration(req.EstimatedDuration) * time.Minute)

	buffer := bufferMinutes * time.Minute
	bufferedStart := requestStart.Add(-buffer)
	bufferedEnd := requestEnd.Add(buffer)

	for i := range req.ExistingBookings {
		booking := &req.ExistingBookings[i]
		if req.ExcludeBookingID != "" && booking.ID == req.ExcludeBookingID {
			continue
		}
		if booking.Status == models.BookingCancelled {
			continue
		}
		if booking.VehicleID != req.VehicleID {
			continue
		}
		if booking.PickupDate != req.Date {
			continue
		}

		bookingStart := toTimestamp(booking.PickupDate, booking.PickupTime)
		bookingEnd := bookingStart.Add(time.Duration(booking.EstimatedDuration) * time.Minute)
		if overlaps(bufferedStart, bufferedEnd, bookingStart.Add(-buffer), bookingEnd.Add(buffer)) {
			return models.AvailabilityResult{
				Available:          false,
				Reason:             "Vehicle is already booked for an overlapping time",
				ConflictingBooking: booking,
			}
		}
	}

	for i := range req.ClosedSlots {
		slot := &req.ClosedSlots[i]
		if slot.VehicleID != "" && slot.VehicleID != req.VehicleID {
			continue
		}
		if slot.Date != req.Date {
			continue
		}

		slotStart := toTimestamp(slot.Date, slot.StartTime)
		slotEnd := toTimestamp(slot.Date, slot.EndTime)
		if overlaps(requestStart, requestEnd, slotStart, slotEnd) {
			reason := slot.Reason
			if reason == "" {
				reason = "This time slot is not available"
			}
			return models.AvailabilityResult{
				Available:       false,
				Reason:          reason,
				ConflictingSlot: slot,
			}
		}
	}

	return models.AvailabilityResult{Available: true}
}

// AvailableVehicles filters the vehicle list first by capacity, then by the
// availability check.
func (s *Service) AvailableVehicles(req VehiclesRequest) []models.Vehicle {
	var out []models.Vehicle
	for _, v := range req.Vehicles {
		if !v.CanAccommodate(req.PassengerCount) {
			continue
		}
		result := s.IsVehicleAvailable(CheckRequest{
			VehicleID:         v.ID,
			Date:              req.Date,
			Time:              req.Time,
			EstimatedDuration: req.EstimatedDuration,
			ExistingBookings:  req.ExistingBookings,
			ClosedSlots:       req.ClosedSlots,
		})
		if result.Available {
			out = append(out, v)
		}
	}
	return out
}

// EstimateTripDuration converts a distance into a trip duration in minutes,
// assuming 60 km/h average speed plus a fixed 15-minute buffer.
func (s *Service) EstimateTripDuration(distanceKm float64) int {
	durationMinutes := int(math.Ceil(distanceKm / averageSpeedKmh * 60))
	return durationMinutes + tripBufferMinutes
}

// MeetsMinimumAdvanceNotice checks the 2-hour minimum notice. A zero now uses
// the wall clock.
func (s *Service) MeetsMinimumAdvanceNotice(date, pickupTime string, now time.Time) models.AdvanceNoticeResult {
	if now.IsZero() {
		now = time.Now()
	}
	pickup := toTimestamp(date, pickupTime)
	if pickup.Before(now.Add(minimumAdvanceHours * time.Hour)) {
		return models.AdvanceNoticeResult{
			Valid:  false,
			Reason: fmt.Sprintf("Bookings require at least %d hours advance notice", minimumAdvanceHours),
		}
	}
	return models.AdvanceNoticeResult{Valid: true}
}

// IsDateTimeInPast reports whether the pickup moment has already passed.
func (s *Service) IsDateTimeInPast(date, pickupTime string, now time.Time) bool {
	if now.IsZero() {
		now = time.Now()
	}
	return toTimestamp(date, pickupTime).Before(now)
}
