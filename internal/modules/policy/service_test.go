package policy

import (
	"testing"
	"time"

	"limo-booking/internal/models"
)

func TestCalculateCancellationRefund(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		pickup      time.Time
		wantPercent int
		wantRefund  float64
		wantFee     float64
	}{
		{"five days ahead", now.Add(120 * time.Hour), 100, 1000, 0},
		{"exactly 48 hours", now.Add(48 * time.Hour), 100, 1000, 0},
		{"grace period upper edge", now.Add(47*time.Hour + 59*time.Minute), 100, 1000, 0},
		{"exactly 24 hours", now.Add(24 * time.Hour), 100, 1000, 0},
		{"just under 24 hours", now.Add(23*time.Hour + 59*time.Minute), 50, 500, 500},
		{"one hour before pickup", now.Add(time.Hour), 50, 500, 500},
	}
	s := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.CalculateCancellationRefund(1000, now, tt.pickup)
			if got.RefundPercentage != tt.wantPercent {
				t.Errorf("RefundPercentage = %d; want %d", got.RefundPercentage, tt.wantPercent)
			}
			if got.RefundAmount != tt.wantRefund {
				t.Errorf("RefundAmount = %.2f; want %.2f", got.RefundAmount, tt.wantRefund)
			}
			if got.CancellationFee != tt.wantFee {
				t.Errorf("CancellationFee = %.2f; want %.2f", got.CancellationFee, tt.wantFee)
			}
			if got.Reason == "" {
				t.Error("missing reason")
			}
		})
	}
}

func TestCalculateFlightDelaySurcharge_PerInterval(t *testing.T) {
	s := NewService()
	cfg := DefaultDelayConfig()

	tests := []struct {
		name          string
		delayMinutes  int
		wantSurcharge float64
		wantIntervals int
	}{
		{"no delay", 0, 0, 0},
		{"within free window", 45, 0, 0},
		{"exactly free window", 60, 0, 0},
		{"one minute over", 61, 50, 1},
		{"full first interval", 90, 50, 1},
		{"partial second interval charged in full", 91, 100, 2},
		{"three intervals", 150, 150, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.CalculateFlightDelaySurcharge(tt.delayMinutes, cfg)
			if got.Surcharge != tt.wantSurcharge {
				t.Errorf("Surcharge = %.2f; want %.2f", got.Surcharge, tt.wantSurcharge)
			}
			if got.Intervals != tt.wantIntervals {
				t.Errorf("Intervals = %d; want %d", got.Intervals, tt.wantIntervals)
			}
		})
	}
}

func TestCalculateFlightDelaySurcharge_Fixed(t *testing.T) {
	s := NewService()
	cfg := models.FlightDelayConfig{
		Enabled:            true,
		FreeWaitingMinutes: 30,
		ChargeType:         models.DelayChargeFixed,
		FixedAmount:        80,
	}

	// Flat amount regardless of how far over the free window.
	for _, delay := range []int{31, 90, 300} {
		got := s.CalculateFlightDelaySurcharge(delay, cfg)
		if got.Surcharge != 80 {
			t.Errorf("delay %d: Surcharge = %.2f; want 80", delay, got.Surcharge)
		}
	}

	got := s.CalculateFlightDelaySurcharge(30, cfg)
	if got.Surcharge != 0 {
		t.Errorf("delay at free window edge: Surcharge = %.2f; want 0", got.Surcharge)
	}
}

func TestCalculateFlightDelaySurcharge_Disabled(t *testing.T) {
	s := NewService()
	cfg := DefaultDelayConfig()
	cfg.Enabled = false

	got := s.CalculateFlightDelaySurcharge(500, cfg)
	if got.Surcharge != 0 {
		t.Errorf("Surcharge = %.2f; want 0 when disabled", got.Surcharge)
	}
	if got.Reason != "Delay charges disabled" {
		t.Errorf("Reason = %q", got.Reason)
	}
}
