package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"limo-booking/internal/catalog"
	"limo-booking/internal/invoice"
	"limo-booking/internal/models"
	"limo-booking/internal/modules/availability"
	"limo-booking/internal/modules/policy"
	"limo-booking/internal/modules/pricing"
	"limo-booking/internal/modules/routing"
)

// Payment limits enforced before calling the provider (Stripe rejects
// anything under CHF 0.50; the cap guards against fat-finger amounts).
const minChargeCHF = 0.50

// ServiceInterface defines the contract for the booking service.
type ServiceInterface interface {
	Quote(ctx context.Context, req models.QuoteRequest) (*models.QuoteResponse, error)
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	StartCheckout(ctx context.Context, bookingID string, req models.CheckoutRequest) (*models.CheckoutResponse, error)
	FinalizeBooking(ctx context.Context, sessionID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string, cancellationTime time.Time) (*models.CancellationResponse, error)
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error)
	SendPickupReminders(ctx context.Context, date string) (int, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error)
}

// ClosedSlotSource supplies the admin-defined closed slots the availability
// checker consumes.
type ClosedSlotSource interface {
	ClosedSlotsForDate(ctx context.Context, date string) ([]models.ClosedSlot, error)
}

// PaymentServiceInterface is the slice of the payment provider the booking
// flow uses.
type PaymentServiceInterface interface {
	CreateCheckoutSession(booking *models.Booking, successURL, cancelURL string) (*models.CheckoutResponse, error)
	GetSessionPaymentStatus(sessionID string) (bool, error)
}

// EmailServiceInterface is the slice of the mailer the booking flow uses.
type EmailServiceInterface interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking, invoiceText string) error
	SendOpsAlert(ctx context.Context, booking *models.Booking) error
	SendCancellationNotice(ctx context.Context, booking *models.Booking, refund models.CancellationRefund) error
	SendPickupReminder(ctx context.Context, booking *models.Booking) error
}

// Service implements the booking lifecycle around the pure engines.
type Service struct {
	repo         RepositoryInterface
	quotes       QuoteCacheInterface
	catalog      *catalog.Catalog
	pricing      pricing.ServiceInterface
	availability availability.ServiceInterface
	policy       policy.ServiceInterface
	routing      routing.ServiceInterface
	closedSlots  ClosedSlotSource
	payment      PaymentServiceInterface
	email        EmailServiceInterface
	maxChargeCHF float64
}

// NewService creates a new booking service.
func NewService(
	repo RepositoryInterface,
	quotes QuoteCacheInterface,
	cat *catalog.Catalog,
	pricingSvc pricing.ServiceInterface,
	availabilitySvc availability.ServiceInterface,
	policySvc policy.ServiceInterface,
	routingSvc routing.ServiceInterface,
	closedSlots ClosedSlotSource,
	paymentSvc PaymentServiceInterface,
	emailSvc EmailServiceInterface,
	maxChargeCHF float64,
) *Service {
	return &Service{
		repo:         repo,
		quotes:       quotes,
		catalog:      cat,
		pricing:      pricingSvc,
		availability: availabilitySvc,
		policy:       policySvc,
		routing:      routingSvc,
		closedSlots:  closedSlots,
		payment:      paymentSvc,
		email:        emailSvc,
		maxChargeCHF: maxChargeCHF,
	}
}

// snapshot loads the booking records and closed slots for one pickup date.
func (s *Service) snapshot(ctx context.Context, date string) ([]models.BookingRecord, []models.ClosedSlot, error) {
	bookings, err := s.repo.ListForDate(ctx, date)
	if err != nil {
		return nil, nil, fmt.Errorf("service.snapshot: %w", err)
	}
	records := make([]models.BookingRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, b.Record())
	}

	slots, err := s.closedSlots.ClosedSlotsForDate(ctx, date)
	if err != nil {
		return nil, nil, fmt.Errorf("service.snapshot: %w", err)
	}
	return records, slots, nil
}

// resolveTrip determines distance and duration for a quote request. A fixed
// route needs no distance for pricing; per-km trips resolve it from the
// request or the routing backend.
func (s *Service) resolveTrip(ctx context.Context, req models.QuoteRequest) (distanceKm float64, durationMinutes int) {
	distanceKm = req.DistanceKm
	if distanceKm <= 0 && (req.FromLat != 0 || req.FromLng != 0) && (req.ToLat != 0 || req.ToLng != 0) {
		info, err := s.routing.Route(ctx,
			routing.Point{Lat: req.FromLat, Lng: req.FromLng},
			routing.Point{Lat: req.ToLat, Lng: req.ToLng})
		if err == nil {
			distanceKm = info.DistanceKm
			durationMinutes = info.DurationMinutes
		}
	}
	if durationMinutes == 0 {
		if distanceKm > 0 {
			durationMinutes = s.availability.EstimateTripDuration(distanceKm)
		} else {
			// Fixed-route trip with no coordinates: block a standard window.
			durationMinutes = 60
		}
	}
	return distanceKm, durationMinutes
}

// Quote prices every vehicle that can take the trip and caches each option.
func (s *Service) Quote(ctx context.Context, req models.QuoteRequest) (*models.QuoteResponse, error) {
	distanceKm, durationMinutes := s.resolveTrip(ctx, req)

	records, slots, err := s.snapshot(ctx, req.PickupDate)
	if err != nil {
		return nil, err
	}

	candidates := s.availability.AvailableVehicles(availability.VehiclesRequest{
		Vehicles:          s.catalog.Vehicles(),
		Date:              req.PickupDate,
		Time:              req.PickupTime,
		EstimatedDuration: durationMinutes,
		PassengerCount:    req.Passengers,
		ExistingBookings:  records,
		ClosedSlots:       slots,
	})

	resp := &models.QuoteResponse{
		From: req.From,
		To:   req.To,
		Date: req.PickupDate,
		Time: req.PickupTime,
	}
	for _, v := range candidates {
		calc, err := s.pricing.CalculatePrice(pricing.Request{
			From:           req.From,
			To:             req.To,
			Vehicle:        v,
			DistanceKm:     distanceKm,
			SelectedAddOns: req.SelectedAddOns,
		})
		if err != nil {
			// No fixed route and no usable distance: the whole trip is
			// unpriceable, not just this vehicle.
			return nil, err
		}

		quote := CachedQuote{
			QuoteID:         uuid.NewString(),
			From:            req.From,
			To:              req.To,
			PickupDate:      req.PickupDate,
			PickupTime:      req.PickupTime,
			Passengers:      req.Passengers,
			VehicleID:       v.ID,
			VehicleLabel:    v.Name + " (" + v.ClassName + ")",
			DistanceKm:      distanceKm,
			DurationMinutes: durationMinutes,
			Price:           *calc,
		}
		if err := s.quotes.Put(ctx, quote); err != nil {
			return nil, fmt.Errorf("service.Quote: %w", err)
		}

		resp.Vehicles = append(resp.Vehicles, models.VehicleQuote{
			QuoteID:         quote.QuoteID,
			Vehicle:         v,
			Price:           *calc,
			DistanceKm:      distanceKm,
			DurationMinutes: durationMinutes,
		})
	}
	return resp, nil
}

// newBookingReference builds the customer-facing reference, e.g.
// EL-20260310-7F3A.
func newBookingReference(pickupDate string) string {
	compact := strings.ReplaceAll(pickupDate, "-", "")
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("EL-%s-%s", compact, suffix)
}

// CreateBooking turns a cached quote into a pending booking. Advance notice
// and availability are re-validated; the quote may be minutes old.
func (s *Service) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	quote, err := s.quotes.Get(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}

	if notice := s.availability.MeetsMinimumAdvanceNotice(quote.PickupDate, quote.PickupTime, time.Time{}); !notice.Valid {
		return nil, models.ErrInsufficientNotice
	}

	records, slots, err := s.snapshot(ctx, quote.PickupDate)
	if err != nil {
		return nil, err
	}
	result := s.availability.IsVehicleAvailable(availability.CheckRequest{
		VehicleID:         quote.VehicleID,
		Date:              quote.PickupDate,
		Time:              quote.PickupTime,
		EstimatedDuration: quote.DurationMinutes,
		ExistingBookings:  records,
		ClosedSlots:       slots,
	})
	if !result.Available {
		return nil, models.ErrVehicleUnavailable
	}

	addOnIDs := make([]string, 0, len(quote.Price.AddOns))
	for _, a := range quote.Price.AddOns {
		addOnIDs = append(addOnIDs, a.ID)
	}

	b := &models.Booking{
		ID:               uuid.NewString(),
		BookingReference: newBookingReference(quote.PickupDate),
		From:             quote.From,
		To:               quote.To,
		PickupDate:       quote.PickupDate,
		PickupTime:       quote.PickupTime,
		Passengers:       quote.Passengers,
		VehicleID:        quote.VehicleID,
		VehicleLabel:     quote.VehicleLabel,
		DistanceKm:       quote.DistanceKm,
		DurationMinutes:  quote.DurationMinutes,
		PricingMethod:    quote.Price.PricingMethod,
		BasePrice:        quote.Price.BasePrice,
		AddOns:           addOnIDs,
		AddOnsTotal:      quote.Price.AddOnsTotal,
		TotalPrice:       quote.Price.Subtotal,
		Currency:         quote.Price.Currency,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		FlightNumber:     req.FlightNumber,
		Notes:            req.Notes,
		Status:           models.BookingPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("service.CreateBooking: %w", err)
	}

	if err := s.quotes.Delete(ctx, req.QuoteID); err != nil {
		log.Printf("warning: failed to drop consumed quote %s: %v", req.QuoteID, err)
	}
	return b, nil
}

// StartCheckout opens a Stripe Checkout session for a pending booking after
// enforcing the chargeable-amount window.
func (s *Service) StartCheckout(ctx context.Context, bookingID string, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingPending {
		return nil, models.ErrInvalidStatusTransition
	}
	if b.TotalPrice < minChargeCHF {
		return nil, models.ErrAmountBelowMinimum
	}
	if s.maxChargeCHF > 0 && b.TotalPrice > s.maxChargeCHF {
		return nil, models.ErrAmountAboveMaximum
	}

	checkout, err := s.payment.CreateCheckoutSession(b, req.SuccessURL, req.CancelURL)
	if err != nil {
		return nil, fmt.Errorf("service.StartCheckout: %w", err)
	}
	if err := s.repo.SetStripeSession(ctx, b.ID, checkout.SessionID); err != nil {
		return nil, fmt.Errorf("service.StartCheckout: %w", err)
	}
	return checkout, nil
}

// FinalizeBooking confirms a booking once its checkout session is paid and
// dispatches the confirmation mails. Email failures are logged, never rolled
// back: the payment already went through.
func (s *Service) FinalizeBooking(ctx context.Context, sessionID string) (*models.Booking, error) {
	b, err := s.repo.FindByStripeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BookingConfirmed {
		// Success URL reloads must not resend the emails.
		return b, nil
	}
	paid, err := s.payment.GetSessionPaymentStatus(sessionID)
	if err != nil {
		return nil, fmt.Errorf("service.FinalizeBooking: %w", err)
	}
	if !paid {
		return nil, models.ErrForbidden
	}

	updated, err := s.UpdateStatus(ctx, b.ID, models.BookingConfirmed)
	if err != nil {
		return nil, err
	}

	invoiceText := invoice.FormatText(invoice.GenerateLineItems(s.invoiceParams(updated)))
	if err := s.email.SendBookingConfirmation(ctx, updated, invoiceText); err != nil {
		log.Printf("warning: confirmation email for %s failed: %v", updated.BookingReference, err)
	}
	if err := s.email.SendOpsAlert(ctx, updated); err != nil {
		log.Printf("warning: ops alert for %s failed: %v", updated.BookingReference, err)
	}
	return updated, nil
}

// invoiceParams rebuilds the invoice inputs from a stored booking.
func (s *Service) invoiceParams(b *models.Booking) invoice.Params {
	desc := fmt.Sprintf("%s → %s", b.From, b.To)
	if b.PricingMethod == models.PricingPerKm {
		if v := s.catalog.VehicleByID(b.VehicleID); v != nil {
			desc = fmt.Sprintf("Distance: %.1f km × %.2f CHF/km", b.DistanceKm, v.PerKmRate)
		}
	}

	var addOnLines []invoice.AddOnLine
	for _, id := range b.AddOns {
		if addon := s.catalog.AddOnByID(id); addon != nil {
			addOnLines = append(addOnLines, invoice.AddOnLine{Name: addon.Name, Price: addon.Price})
		}
	}
	return invoice.Params{
		BasePrice:            b.BasePrice,
		BasePriceDescription: desc,
		AddOns:               addOnLines,
	}
}

// CancelBooking applies the cancellation policy and moves the booking to
// cancelled. The refund itself is executed out of band (5-7 business days).
func (s *Service) CancelBooking(ctx context.Context, bookingID string, cancellationTime time.Time) (*models.CancellationResponse, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
		return nil, models.ErrBookingNotCancellable
	}
	if cancellationTime.IsZero() {
		cancellationTime = time.Now()
	}

	pickup, err := time.ParseInLocation("2006-01-02 15:04", b.PickupDate+" "+b.PickupTime, time.Local)
	if err != nil {
		return nil, fmt.Errorf("service.CancelBooking: bad pickup timestamp: %w", err)
	}
	refund := s.policy.CalculateCancellationRefund(b.TotalPrice, cancellationTime, pickup)

	updated, err := s.UpdateStatus(ctx, b.ID, models.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if err := s.email.SendCancellationNotice(ctx, updated, refund); err != nil {
		log.Printf("warning: cancellation email for %s failed: %v", updated.BookingReference, err)
	}
	return &models.CancellationResponse{Booking: updated, Refund: refund}, nil
}

// canTransition encodes the booking lifecycle: pending → confirmed|cancelled,
// confirmed → completed|cancelled, terminal states stay put.
func canTransition(from, to models.BookingStatus) bool {
	switch from {
	case models.BookingPending:
		return to == models.BookingConfirmed || to == models.BookingCancelled
	case models.BookingConfirmed:
		return to == models.BookingCompleted || to == models.BookingCancelled
	default:
		return false
	}
}

// UpdateStatus moves a booking through its lifecycle, rejecting transitions
// the lifecycle does not allow.
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == status {
		return b, nil
	}
	if !canTransition(b.Status, status) {
		return nil, models.ErrInvalidStatusTransition
	}
	if err := s.repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, fmt.Errorf("service.UpdateStatus: %w", err)
	}
	b.Status = status
	return b, nil
}

// SendPickupReminders mails the day-before reminder to every confirmed
// booking on the given pickup date and reports how many went out. Individual
// send failures are logged and skipped so one bad address does not block the
// rest of the day's reminders.
func (s *Service) SendPickupReminders(ctx context.Context, date string) (int, error) {
	bookings, err := s.repo.ListForDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("service.SendPickupReminders: %w", err)
	}

	sent := 0
	for _, b := range bookings {
		if b.Status != models.BookingConfirmed {
			continue
		}
		if err := s.email.SendPickupReminder(ctx, b); err != nil {
			log.Printf("warning: pickup reminder for %s failed: %v", b.BookingReference, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// GetBooking returns one booking by id.
func (s *Service) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.repo.FindByID(ctx, bookingID)
}

// GetBookingByReference returns one booking by customer-facing reference.
func (s *Service) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return s.repo.FindByReference(ctx, reference)
}

// ListBookings returns bookings matching the filter, newest first.
func (s *Service) ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	return s.repo.List(ctx, filter)
}
