package models

// DelayChargeType selects how delay surcharges accrue past the free window.
type DelayChargeType string

const (
	DelayChargeFixed       DelayChargeType = "fixed"
	DelayChargePerInterval DelayChargeType = "per-interval"
)

// FlightDelayConfig is the admin-editable surcharge policy for delayed flights.
type FlightDelayConfig struct {
	Enabled            bool            `json:"enabled"`
	FreeWaitingMinutes int             `json:"free_waiting_minutes"`
	ChargeType         DelayChargeType `json:"charge_type"`
	FixedAmount        float64         `json:"fixed_amount,omitempty"`        // CHF, fixed charge type
	PerIntervalAmount  float64         `json:"per_interval_amount,omitempty"` // CHF per interval
	IntervalMinutes    int             `json:"interval_minutes,omitempty"`
}

// CancellationRefund is the outcome of applying the cancellation policy.
type CancellationRefund struct {
	RefundPercentage int     `json:"refund_percentage"`
	RefundAmount     float64 `json:"refund_amount"`
	CancellationFee  float64 `json:"cancellation_fee"`
	Reason           string  `json:"reason"`
}

// DelaySurcharge is the outcome of applying the flight-delay policy.
type DelaySurcharge struct {
	Surcharge float64 `json:"surcharge"`
	Reason    string  `json:"reason"`
	Intervals int     `json:"intervals,omitempty"`
}

// ValidationResult is returned by admin-config validation so the dashboard can
// render inline messages without a control-flow exception.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidOK returns a passing validation result.
func ValidOK() ValidationResult { return ValidationResult{Valid: true} }

// Invalid returns a failing validation result with a user-facing message.
func Invalid(msg string) ValidationResult { return ValidationResult{Valid: false, Error: msg} }
