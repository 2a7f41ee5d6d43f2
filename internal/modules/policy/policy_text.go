package policy

// Customer-facing policy summaries used in confirmation emails and the
// checkout terms section.

const CancellationSummary = "Free cancellation up to 48 hours before pickup"

var CancellationDetails = []string{
	"Cancel free of charge if you cancel ≥48 hours before your scheduled pickup time",
	"Cancellations between 24-48 hours before pickup: Free cancellation (grace period)",
	"Cancellations <24 hours before pickup: 50% cancellation fee applies",
	"To cancel, contact us by phone or email with your booking reference",
	"Refunds are processed within 5-7 business days",
}

const PaymentSummary = "Pay on website (Stripe)"

const FlightDelaySummary = "First 60 minutes of delay are free"

var FlightDelayDetails = []string{
	"We track your flight and adjust pickup time automatically",
	"First 60 minutes of delay: No additional charge",
	"After 60 minutes: Delay surcharge applies",
	"Delay charge: CHF 50 per 30-minute interval (or part thereof)",
	"You will be notified of any delay charges before confirming",
}

var TermsSummary = []string{
	"Bookings require at least 2 hours advance notice",
	"Free cancellation up to 48 hours before pickup",
	"50% cancellation fee if cancelled less than 24 hours before pickup",
	"Flight delays: First 60 minutes free, then CHF 50 per 30 minutes",
	"Passenger count must match vehicle capacity",
	"Additional stops may incur extra charges",
	"Smoking is not permitted in any vehicle",
}
