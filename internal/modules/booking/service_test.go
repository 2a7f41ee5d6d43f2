package booking

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"limo-booking/internal/catalog"
	"limo-booking/internal/models"
	"limo-booking/internal/modules/availability"
	"limo-booking/internal/modules/policy"
	"limo-booking/internal/modules/pricing"
	"limo-booking/internal/modules/routing"
)

// fakeRepo is an in-memory RepositoryInterface.
type fakeRepo struct {
	bookings map[string]*models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeRepo) Create(_ context.Context, b *models.Booking) error {
	for _, existing := range f.bookings {
		if existing.BookingReference == b.BookingReference {
			return models.ErrConflict
		}
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copy := *b
	return &copy, nil
}

func (f *fakeRepo) FindByReference(_ context.Context, reference string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.BookingReference == reference {
			copy := *b
			return &copy, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRepo) FindByStripeSession(_ context.Context, sessionID string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.StripeSessionID == sessionID {
			copy := *b
			return &copy, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRepo) ListForDate(_ context.Context, date string) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.PickupDate == date {
			copy := *b
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(_ context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		copy := *b
		out = append(out, &copy)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status models.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return models.ErrNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeRepo) SetStripeSession(_ context.Context, id, sessionID string) error {
	b, ok := f.bookings[id]
	if !ok {
		return models.ErrNotFound
	}
	b.StripeSessionID = sessionID
	return nil
}

// fakeQuoteCache is an in-memory QuoteCacheInterface.
type fakeQuoteCache struct {
	quotes map[string]CachedQuote
}

func newFakeQuoteCache() *fakeQuoteCache {
	return &fakeQuoteCache{quotes: make(map[string]CachedQuote)}
}

func (f *fakeQuoteCache) Put(_ context.Context, q CachedQuote) error {
	f.quotes[q.QuoteID] = q
	return nil
}

func (f *fakeQuoteCache) Get(_ context.Context, id string) (*CachedQuote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, models.ErrQuoteExpired
	}
	return &q, nil
}

func (f *fakeQuoteCache) Delete(_ context.Context, id string) error {
	delete(f.quotes, id)
	return nil
}

type fakeClosedSlots struct {
	slots []models.ClosedSlot
}

func (f *fakeClosedSlots) ClosedSlotsForDate(_ context.Context, date string) ([]models.ClosedSlot, error) {
	var out []models.ClosedSlot
	for _, s := range f.slots {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakePayment struct {
	paid        bool
	sessionErr  error
	lastBooking *models.Booking
}

func (f *fakePayment) CreateCheckoutSession(b *models.Booking, successURL, cancelURL string) (*models.CheckoutResponse, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	f.lastBooking = b
	return &models.CheckoutResponse{URL: "https://checkout.example/" + b.ID, SessionID: "cs_test_" + b.ID}, nil
}

func (f *fakePayment) GetSessionPaymentStatus(string) (bool, error) {
	return f.paid, nil
}

type fakeEmail struct {
	confirmations  int
	opsAlerts      int
	cancellations  int
	reminders      []string // booking references
	lastInvoice    string
	confirmationEr error
	reminderErr    error
}

func (f *fakeEmail) SendBookingConfirmation(_ context.Context, _ *models.Booking, invoiceText string) error {
	f.confirmations++
	f.lastInvoice = invoiceText
	return f.confirmationEr
}

func (f *fakeEmail) SendOpsAlert(_ context.Context, _ *models.Booking) error {
	f.opsAlerts++
	return nil
}

func (f *fakeEmail) SendCancellationNotice(_ context.Context, _ *models.Booking, _ models.CancellationRefund) error {
	f.cancellations++
	return nil
}

func (f *fakeEmail) SendPickupReminder(_ context.Context, b *models.Booking) error {
	if f.reminderErr != nil {
		return f.reminderErr
	}
	f.reminders = append(f.reminders, b.BookingReference)
	return nil
}

type fixture struct {
	svc     *Service
	repo    *fakeRepo
	quotes  *fakeQuoteCache
	slots   *fakeClosedSlots
	payment *fakePayment
	email   *fakeEmail
}

func newFixture() *fixture {
	f := &fixture{
		repo:    newFakeRepo(),
		quotes:  newFakeQuoteCache(),
		slots:   &fakeClosedSlots{},
		payment: &fakePayment{paid: true},
		email:   &fakeEmail{},
	}
	f.svc = NewService(
		f.repo,
		f.quotes,
		catalog.Default(),
		pricing.NewService(catalog.Default()),
		availability.NewService(),
		policy.NewService(),
		routing.NewService(),
		f.slots,
		f.payment,
		f.email,
		15000,
	)
	return f
}

// futureDate returns a pickup date far enough out to clear the advance-notice
// check regardless of when the tests run.
func futureDate() string {
	return time.Now().AddDate(0, 0, 30).Format("2006-01-02")
}

func TestQuoteFixedRouteAllVehicles(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Quote(context.Background(), models.QuoteRequest{
		From:       "Zurich Airport",
		To:         "Zurich City",
		PickupDate: futureDate(),
		PickupTime: "10:00",
		Passengers: 2,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if len(resp.Vehicles) != 3 {
		t.Fatalf("expected 3 vehicle options, got %d", len(resp.Vehicles))
	}

	want := map[models.VehicleType]float64{
		models.VehicleStandard: 80,
		models.VehiclePremium:  100,
		models.VehicleVan:      90,
	}
	for _, vq := range resp.Vehicles {
		if got := vq.Price.Subtotal; got != want[vq.Vehicle.Type] {
			t.Errorf("%s: subtotal = %.2f, want %.2f", vq.Vehicle.Type, got, want[vq.Vehicle.Type])
		}
		if _, err := f.quotes.Get(context.Background(), vq.QuoteID); err != nil {
			t.Errorf("%s: quote %s not cached", vq.Vehicle.Type, vq.QuoteID)
		}
	}
}

func TestQuoteCapacityFilter(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Quote(context.Background(), models.QuoteRequest{
		From:       "Zurich Airport",
		To:         "Zurich City",
		PickupDate: futureDate(),
		PickupTime: "10:00",
		Passengers: 5,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if len(resp.Vehicles) != 1 || resp.Vehicles[0].Vehicle.Type != models.VehicleVan {
		t.Fatalf("expected only the van for 5 passengers, got %+v", resp.Vehicles)
	}
}

func TestQuoteDistanceRequired(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Quote(context.Background(), models.QuoteRequest{
		From:       "Bern",
		To:         "Lugano",
		PickupDate: futureDate(),
		PickupTime: "10:00",
		Passengers: 2,
	})
	if !errors.Is(err, models.ErrDistanceRequired) {
		t.Fatalf("expected ErrDistanceRequired, got %v", err)
	}
}

func cachedQuote(f *fixture, date, clock string) CachedQuote {
	q := CachedQuote{
		QuoteID:         "q-1",
		From:            "Zurich Airport",
		To:              "Zurich City",
		PickupDate:      date,
		PickupTime:      clock,
		Passengers:      2,
		VehicleID:       "vehicle-standard-eclass",
		VehicleLabel:    "Standard (Mercedes E-Class)",
		DurationMinutes: 60,
		Price: models.PriceCalculation{
			BasePrice:     80,
			PricingMethod: models.PricingFixedRoute,
			Subtotal:      80,
			Currency:      "CHF",
		},
	}
	f.quotes.Put(context.Background(), q)
	return q
}

func createReq() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		QuoteID:       "q-1",
		CustomerName:  "Anna Keller",
		CustomerEmail: "anna@example.ch",
		CustomerPhone: "+41791234567",
	}
}

func TestCreateBookingFromQuote(t *testing.T) {
	f := newFixture()
	date := futureDate()
	cachedQuote(f, date, "10:00")

	b, err := f.svc.CreateBooking(context.Background(), createReq())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if b.Status != models.BookingPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.TotalPrice != 80 {
		t.Errorf("total = %.2f, want 80", b.TotalPrice)
	}

	refPattern := regexp.MustCompile(`^EL-\d{8}-[0-9A-F]{4}$`)
	if !refPattern.MatchString(b.BookingReference) {
		t.Errorf("reference %q does not match EL-YYYYMMDD-XXXX", b.BookingReference)
	}
	if !strings.Contains(b.BookingReference, strings.ReplaceAll(date, "-", "")) {
		t.Errorf("reference %q does not embed pickup date %s", b.BookingReference, date)
	}

	if _, err := f.quotes.Get(context.Background(), "q-1"); !errors.Is(err, models.ErrQuoteExpired) {
		t.Error("consumed quote should have been dropped from the cache")
	}
}

func TestCreateBookingQuoteExpired(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateBooking(context.Background(), createReq())
	if !errors.Is(err, models.ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired, got %v", err)
	}
}

func TestCreateBookingInsufficientNotice(t *testing.T) {
	f := newFixture()
	cachedQuote(f, "2020-01-01", "10:00")

	_, err := f.svc.CreateBooking(context.Background(), createReq())
	if !errors.Is(err, models.ErrInsufficientNotice) {
		t.Fatalf("expected ErrInsufficientNotice, got %v", err)
	}
}

func TestCreateBookingVehicleTaken(t *testing.T) {
	f := newFixture()
	date := futureDate()
	cachedQuote(f, date, "10:00")

	f.repo.bookings["existing"] = &models.Booking{
		ID:              "existing",
		VehicleID:       "vehicle-standard-eclass",
		PickupDate:      date,
		PickupTime:      "10:30",
		DurationMinutes: 60,
		Status:          models.BookingConfirmed,
	}

	_, err := f.svc.CreateBooking(context.Background(), createReq())
	if !errors.Is(err, models.ErrVehicleUnavailable) {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}
}

func TestCreateBookingBlockedBySlot(t *testing.T) {
	f := newFixture()
	date := futureDate()
	cachedQuote(f, date, "10:00")
	f.slots.slots = []models.ClosedSlot{
		{Date: date, StartTime: "09:00", EndTime: "12:00", Reason: "Fleet maintenance"},
	}

	_, err := f.svc.CreateBooking(context.Background(), createReq())
	if !errors.Is(err, models.ErrVehicleUnavailable) {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}
}

func seedBooking(f *fixture, status models.BookingStatus, total float64, date, clock string) *models.Booking {
	b := &models.Booking{
		ID:               "b-1",
		BookingReference: "EL-20300501-AAAA",
		From:             "Zurich Airport",
		To:               "Zurich City",
		PickupDate:       date,
		PickupTime:       clock,
		Passengers:       2,
		VehicleID:        "vehicle-standard-eclass",
		VehicleLabel:     "Standard (Mercedes E-Class)",
		DurationMinutes:  60,
		PricingMethod:    models.PricingFixedRoute,
		BasePrice:        total,
		TotalPrice:       total,
		Currency:         "CHF",
		CustomerEmail:    "anna@example.ch",
		Status:           status,
	}
	f.repo.bookings[b.ID] = b
	return b
}

func TestStartCheckout(t *testing.T) {
	f := newFixture()
	seedBooking(f, models.BookingPending, 80, futureDate(), "10:00")

	checkout, err := f.svc.StartCheckout(context.Background(), "b-1", models.CheckoutRequest{
		SuccessURL: "https://example.ch/done",
		CancelURL:  "https://example.ch/cancel",
	})
	if err != nil {
		t.Fatalf("StartCheckout: %v", err)
	}
	if checkout.SessionID == "" || checkout.URL == "" {
		t.Fatalf("incomplete checkout response: %+v", checkout)
	}
	if f.repo.bookings["b-1"].StripeSessionID != checkout.SessionID {
		t.Error("session id not persisted on the booking")
	}
}

func TestStartCheckoutRejectsAmounts(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		wantErr error
	}{
		{"below Stripe minimum", 0.40, models.ErrAmountBelowMinimum},
		{"above configured cap", 15001, models.ErrAmountAboveMaximum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			seedBooking(f, models.BookingPending, tt.total, futureDate(), "10:00")

			_, err := f.svc.StartCheckout(context.Background(), "b-1", models.CheckoutRequest{
				SuccessURL: "https://example.ch/done",
				CancelURL:  "https://example.ch/cancel",
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestStartCheckoutNonPending(t *testing.T) {
	f := newFixture()
	seedBooking(f, models.BookingConfirmed, 80, futureDate(), "10:00")

	_, err := f.svc.StartCheckout(context.Background(), "b-1", models.CheckoutRequest{
		SuccessURL: "https://example.ch/done",
		CancelURL:  "https://example.ch/cancel",
	})
	if !errors.Is(err, models.ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestFinalizeBookingConfirmsAndMails(t *testing.T) {
	f := newFixture()
	b := seedBooking(f, models.BookingPending, 80, futureDate(), "10:00")
	b.StripeSessionID = "cs_test_1"

	got, err := f.svc.FinalizeBooking(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("FinalizeBooking: %v", err)
	}
	if got.Status != models.BookingConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
	if f.email.confirmations != 1 || f.email.opsAlerts != 1 {
		t.Errorf("emails sent = %d/%d, want 1/1", f.email.confirmations, f.email.opsAlerts)
	}
	if !strings.Contains(f.email.lastInvoice, "Total") || !strings.Contains(f.email.lastInvoice, "80.00 CHF") {
		t.Errorf("invoice text missing total:\n%s", f.email.lastInvoice)
	}
}

func TestFinalizeBookingIdempotent(t *testing.T) {
	f := newFixture()
	b := seedBooking(f, models.BookingPending, 80, futureDate(), "10:00")
	b.StripeSessionID = "cs_test_1"

	if _, err := f.svc.FinalizeBooking(context.Background(), "cs_test_1"); err != nil {
		t.Fatalf("FinalizeBooking: %v", err)
	}
	if _, err := f.svc.FinalizeBooking(context.Background(), "cs_test_1"); err != nil {
		t.Fatalf("second FinalizeBooking: %v", err)
	}
	if f.email.confirmations != 1 {
		t.Errorf("confirmations = %d, want 1 (reloads must not resend)", f.email.confirmations)
	}
}

func TestFinalizeBookingUnpaid(t *testing.T) {
	f := newFixture()
	f.payment.paid = false
	b := seedBooking(f, models.BookingPending, 80, futureDate(), "10:00")
	b.StripeSessionID = "cs_test_1"

	_, err := f.svc.FinalizeBooking(context.Background(), "cs_test_1")
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.repo.bookings["b-1"].Status != models.BookingPending {
		t.Error("booking must stay pending when the session is unpaid")
	}
}

func TestFinalizeBookingEmailFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.email.confirmationEr = errors.New("ses throttled")
	b := seedBooking(f, models.BookingPending, 80, futureDate(), "10:00")
	b.StripeSessionID = "cs_test_1"

	got, err := f.svc.FinalizeBooking(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("FinalizeBooking: %v", err)
	}
	if got.Status != models.BookingConfirmed {
		t.Error("booking must confirm even when the confirmation email fails")
	}
}

func TestCancelBookingRefundTiers(t *testing.T) {
	pickup := "2030-05-01"
	pickupAt, _ := time.ParseInLocation("2006-01-02 15:04", pickup+" 10:00", time.Local)

	tests := []struct {
		name        string
		cancelAt    time.Time
		wantPercent int
		wantRefund  float64
	}{
		{"three days ahead", pickupAt.Add(-72 * time.Hour), 100, 200},
		{"inside grace period", pickupAt.Add(-30 * time.Hour), 100, 200},
		{"under 24 hours", pickupAt.Add(-10 * time.Hour), 50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			seedBooking(f, models.BookingConfirmed, 200, pickup, "10:00")

			resp, err := f.svc.CancelBooking(context.Background(), "b-1", tt.cancelAt)
			if err != nil {
				t.Fatalf("CancelBooking: %v", err)
			}
			if resp.Refund.RefundPercentage != tt.wantPercent {
				t.Errorf("refund = %d%%, want %d%%", resp.Refund.RefundPercentage, tt.wantPercent)
			}
			if resp.Refund.RefundAmount != tt.wantRefund {
				t.Errorf("refund amount = %.2f, want %.2f", resp.Refund.RefundAmount, tt.wantRefund)
			}
			if resp.Booking.Status != models.BookingCancelled {
				t.Errorf("status = %s, want cancelled", resp.Booking.Status)
			}
			if f.email.cancellations != 1 {
				t.Errorf("cancellation notices = %d, want 1", f.email.cancellations)
			}
		})
	}
}

func TestCancelBookingNotCancellable(t *testing.T) {
	for _, status := range []models.BookingStatus{models.BookingCompleted, models.BookingCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			seedBooking(f, status, 200, "2030-05-01", "10:00")

			_, err := f.svc.CancelBooking(context.Background(), "b-1", time.Now())
			if !errors.Is(err, models.ErrBookingNotCancellable) {
				t.Fatalf("expected ErrBookingNotCancellable, got %v", err)
			}
		})
	}
}

func TestSendPickupReminders(t *testing.T) {
	f := newFixture()
	date := "2030-05-01"
	f.repo.bookings["b-1"] = &models.Booking{
		ID: "b-1", BookingReference: "EL-20300501-AAAA",
		PickupDate: date, Status: models.BookingConfirmed,
	}
	f.repo.bookings["b-2"] = &models.Booking{
		ID: "b-2", BookingReference: "EL-20300501-BBBB",
		PickupDate: date, Status: models.BookingPending,
	}
	f.repo.bookings["b-3"] = &models.Booking{
		ID: "b-3", BookingReference: "EL-20300501-CCCC",
		PickupDate: date, Status: models.BookingCancelled,
	}
	f.repo.bookings["b-4"] = &models.Booking{
		ID: "b-4", BookingReference: "EL-20300502-DDDD",
		PickupDate: "2030-05-02", Status: models.BookingConfirmed,
	}

	sent, err := f.svc.SendPickupReminders(context.Background(), date)
	if err != nil {
		t.Fatalf("SendPickupReminders: %v", err)
	}
	if sent != 1 {
		t.Errorf("sent = %d, want 1 (only confirmed bookings on the date)", sent)
	}
	if len(f.email.reminders) != 1 || f.email.reminders[0] != "EL-20300501-AAAA" {
		t.Errorf("reminders went to %v, want only EL-20300501-AAAA", f.email.reminders)
	}
}

func TestSendPickupRemindersSkipsFailures(t *testing.T) {
	f := newFixture()
	f.email.reminderErr = errors.New("ses throttled")
	f.repo.bookings["b-1"] = &models.Booking{
		ID: "b-1", BookingReference: "EL-20300501-AAAA",
		PickupDate: "2030-05-01", Status: models.BookingConfirmed,
	}

	sent, err := f.svc.SendPickupReminders(context.Background(), "2030-05-01")
	if err != nil {
		t.Fatalf("SendPickupReminders: %v", err)
	}
	if sent != 0 {
		t.Errorf("sent = %d, want 0 when every send fails", sent)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to models.BookingStatus
		ok       bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingCompleted, true},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingCancelled, models.BookingConfirmed, false},
		{models.BookingCompleted, models.BookingCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			f := newFixture()
			seedBooking(f, tt.from, 200, "2030-05-01", "10:00")

			_, err := f.svc.UpdateStatus(context.Background(), "b-1", tt.to)
			if tt.ok && err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
			if !tt.ok && !errors.Is(err, models.ErrInvalidStatusTransition) {
				t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
			}
		})
	}
}
