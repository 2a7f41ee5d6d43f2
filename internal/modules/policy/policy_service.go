// Package policy implements the cancellation-refund and flight-delay
// surcharge rules.
package policy

import (
	"fmt"
	"math"
	"time"

	"limo-booking/internal/models"
)

// ServiceInterface defines the contract for the policy calculator.
type ServiceInterface interface {
	CalculateCancellationRefund(totalAmount float64, cancellationTime, pickupDateTime time.Time) models.CancellationRefund
	CalculateFlightDelaySurcharge(delayMinutes int, cfg models.FlightDelayConfig) models.DelaySurcharge
}

// DefaultDelayConfig is the shipped flight-delay policy: first 60 minutes
// free, then CHF 50 per started 30-minute interval. Admins can override it.
func DefaultDelayConfig() models.FlightDelayConfig {
	return models.FlightDelayConfig{
		Enabled:            true,
		FreeWaitingMinutes: 60,
		ChargeType:         models.DelayChargePerInterval,
		PerIntervalAmount:  50,
		IntervalMinutes:    30,
	}
}

// Service implements the policy calculations. Both are pure functions.
type Service struct{}

// NewService creates a new policy service.
func NewService() *Service {
	return &Service{}
}

// CalculateCancellationRefund applies the tiered cancellation policy.
// Exactly 48 hours before pickup is still a free cancellation; exactly 24
// hours falls into the grace period, not the late tier.
func (s *Service) CalculateCancellationRefund(totalAmount float64, cancellationTime, pickupDateTime time.Time) models.CancellationRefund {
	hoursUntilPickup := pickupDateTime.Sub(cancellationTime).Hours()

	if hoursUntilPickup >= 48 {
		return models.CancellationRefund{
			RefundPercentage: 100,
			RefundAmount:     totalAmount,
			CancellationFee:  0,
			Reason:           "Free cancellation (≥48 hours before pickup)",
		}
	}

	if hoursUntilPickup < 24 {
		return models.CancellationRefund{
			RefundPercentage: 50,
			RefundAmount:     totalAmount * 0.5,
			CancellationFee:  totalAmount * 0.5,
			Reason:           "Late cancellation (<24 hours): 50% cancellation fee applies",
		}
	}

	return models.CancellationRefund{
		RefundPercentage: 100,
		RefundAmount:     totalAmount,
		CancellationFee:  0,
		Reason:           "Free cancellation (24-48 hours before pickup)",
	}
}

// CalculateFlightDelaySurcharge charges delay minutes beyond the free waiting
// window. Per-interval charging rounds partial intervals up.
func (s *Service) CalculateFlightDelaySurcharge(delayMinutes int, cfg models.FlightDelayConfig) models.DelaySurcharge {
	if !cfg.Enabled {
		return models.DelaySurcharge{Surcharge: 0, Reason: "Delay charges disabled"}
	}

	excessMinutes := delayMinutes - cfg.FreeWaitingMinutes
	if excessMinutes <= 0 {
		return models.DelaySurcharge{
			Surcharge: 0,
			Reason:    fmt.Sprintf("Free waiting time (%d minutes)", cfg.FreeWaitingMinutes),
		}
	}

	if cfg.ChargeType == models.DelayChargeFixed {
		return models.DelaySurcharge{
			Surcharge: cfg.FixedAmount,
			Reason:    fmt.Sprintf("Fixed delay charge for %d minutes delay", delayMinutes),
		}
	}

	intervalMinutes := cfg.IntervalMinutes
	if intervalMinutes <= 0 {
		intervalMinutes = 30
	}
	intervals := int(math.Ceil(float64(excessMinutes) / float64(intervalMinutes)))
	return models.DelaySurcharge{
		Surcharge: float64(intervals) * cfg.PerIntervalAmount,
		Reason:    fmt.Sprintf("Delay charge: %d × %d min intervals", intervals, intervalMinutes),
		Intervals: intervals,
	}
}
