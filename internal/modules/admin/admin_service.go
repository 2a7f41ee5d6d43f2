package admin

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"limo-booking/internal/models"
	"limo-booking/internal/modules/booking"
	"limo-booking/internal/modules/policy"
)

const tokenLifetime = 24 * time.Hour

// ServiceInterface defines the contract for the ops dashboard service.
type ServiceInterface interface {
	Login(password string) (*models.LoginResponse, error)

	ValidateClosedSlot(req models.ClosedSlotRequest) models.ValidationResult
	CreateClosedSlot(ctx context.Context, req models.ClosedSlotRequest) (*models.ClosedSlot, error)
	ListClosedSlots(ctx context.Context) ([]models.ClosedSlot, error)
	UpdateClosedSlot(ctx context.Context, id string, update models.ClosedSlotUpdate) (*models.ClosedSlot, error)
	DeleteClosedSlot(ctx context.Context, id string) error

	DelayConfig(ctx context.Context) (models.FlightDelayConfig, error)
	ValidateDelayConfigUpdate(update models.DelayConfigUpdate) models.ValidationResult
	UpdateDelayConfig(ctx context.Context, update models.DelayConfigUpdate) (models.FlightDelayConfig, error)
	ResetDelayConfig(ctx context.Context) (models.FlightDelayConfig, error)

	ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error)
	BookingStats(ctx context.Context, filter models.BookingFilter) (*models.BookingStats, error)
	DispatchPickupReminders(ctx context.Context, date string) (int, error)
}

// Service implements the ops dashboard operations.
type Service struct {
	repo            RepositoryInterface
	bookings        booking.ServiceInterface
	jwtSecret       string
	opsPasswordHash string
}

// NewService creates a new admin service.
func NewService(repo RepositoryInterface, bookings booking.ServiceInterface, jwtSecret, opsPasswordHash string) *Service {
	return &Service{
		repo:            repo,
		bookings:        bookings,
		jwtSecret:       jwtSecret,
		opsPasswordHash: opsPasswordHash,
	}
}

// Login checks the ops password against its stored bcrypt hash and issues a
// short-lived admin token.
func (s *Service) Login(password string) (*models.LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.opsPasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("service.Login: sign token: %w", err)
	}
	return &models.LoginResponse{Token: signed}, nil
}

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// clockMinutes converts an HH:MM string to minutes since midnight. The caller
// has already checked the shape.
func clockMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// ValidateClosedSlot checks a closed-slot request without touching the store.
func (s *Service) ValidateClosedSlot(req models.ClosedSlotRequest) models.ValidationResult {
	if !datePattern.MatchString(req.Date) {
		return models.Invalid("Date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return models.Invalid("Date is not a valid calendar date")
	}
	if !timePattern.MatchString(req.StartTime) || !timePattern.MatchString(req.EndTime) {
		return models.Invalid("Times must be in HH:MM format")
	}
	start, end := clockMinutes(req.StartTime), clockMinutes(req.EndTime)
	if start >= 24*60 || end > 24*60 {
		return models.Invalid("Times must be within a single day")
	}
	if start >= end {
		return models.Invalid("Start time must be before end time")
	}
	return models.ValidOK()
}

// CreateClosedSlot validates and stores a new unavailability window.
func (s *Service) CreateClosedSlot(ctx context.Context, req models.ClosedSlotRequest) (*models.ClosedSlot, error) {
	if result := s.ValidateClosedSlot(req); !result.Valid {
		return nil, fmt.Errorf("%s: %w", result.Error, models.ErrInvalidInput)
	}

	slot := &models.ClosedSlot{
		ID:        uuid.NewString(),
		VehicleID: req.VehicleID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}
	if err := s.repo.CreateClosedSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("service.CreateClosedSlot: %w", err)
	}
	return slot, nil
}

// ListClosedSlots returns every stored closed slot.
func (s *Service) ListClosedSlots(ctx context.Context) ([]models.ClosedSlot, error) {
	return s.repo.ListClosedSlots(ctx)
}

// UpdateClosedSlot merges a partial update into an existing slot, re-validates
// the merged window, and persists it.
func (s *Service) UpdateClosedSlot(ctx context.Context, id string, update models.ClosedSlotUpdate) (*models.ClosedSlot, error) {
	slot, err := s.repo.GetClosedSlot(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.VehicleID != nil {
		slot.VehicleID = *update.VehicleID
	}
	if update.Date != nil {
		slot.Date = *update.Date
	}
	if update.StartTime != nil {
		slot.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		slot.EndTime = *update.EndTime
	}
	if update.Reason != nil {
		slot.Reason = *update.Reason
	}

	merged := models.ClosedSlotRequest{
		VehicleID: slot.VehicleID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Reason:    slot.Reason,
	}
	if result := s.ValidateClosedSlot(merged); !result.Valid {
		return nil, fmt.Errorf("%s: %w", result.Error, models.ErrInvalidInput)
	}

	if err := s.repo.UpdateClosedSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("service.UpdateClosedSlot: %w", err)
	}
	return slot, nil
}

// DeleteClosedSlot removes a closed slot.
func (s *Service) DeleteClosedSlot(ctx context.Context, id string) error {
	return s.repo.DeleteClosedSlot(ctx, id)
}

// DelayConfig returns the stored flight-delay policy, or the shipped default
// when none has been saved yet.
func (s *Service) DelayConfig(ctx context.Context) (models.FlightDelayConfig, error) {
	cfg, err := s.repo.GetDelayConfig(ctx)
	if err != nil {
		if err == models.ErrNotFound {
			return policy.DefaultDelayConfig(), nil
		}
		return models.FlightDelayConfig{}, fmt.Errorf("service.DelayConfig: %w", err)
	}
	return *cfg, nil
}

// ValidateDelayConfigUpdate checks a partial update without applying it.
func (s *Service) ValidateDelayConfigUpdate(update models.DelayConfigUpdate) models.ValidationResult {
	if update.FreeWaitingMinutes != nil && *update.FreeWaitingMinutes < 0 {
		return models.Invalid("Free waiting minutes cannot be negative")
	}
	if update.ChargeType != nil &&
		*update.ChargeType != models.DelayChargeFixed && *update.ChargeType != models.DelayChargePerInterval {
		return models.Invalid("Charge type must be fixed or per-interval")
	}
	if update.FixedAmount != nil && *update.FixedAmount < 0 {
		return models.Invalid("Fixed amount cannot be negative")
	}
	if update.PerIntervalAmount != nil && *update.PerIntervalAmount < 0 {
		return models.Invalid("Per-interval amount cannot be negative")
	}
	if update.IntervalMinutes != nil && *update.IntervalMinutes <= 0 {
		return models.Invalid("Interval minutes must be positive")
	}
	return models.ValidOK()
}

// UpdateDelayConfig merges a partial update into the current configuration and
// persists the result.
func (s *Service) UpdateDelayConfig(ctx context.Context, update models.DelayConfigUpdate) (models.FlightDelayConfig, error) {
	if result := s.ValidateDelayConfigUpdate(update); !result.Valid {
		return models.FlightDelayConfig{}, fmt.Errorf("%s: %w", result.Error, models.ErrInvalidInput)
	}

	cfg, err := s.DelayConfig(ctx)
	if err != nil {
		return models.FlightDelayConfig{}, err
	}

	if update.Enabled != nil {
		cfg.Enabled = *update.Enabled
	}
	if update.FreeWaitingMinutes != nil {
		cfg.FreeWaitingMinutes = *update.FreeWaitingMinutes
	}
	if update.ChargeType != nil {
		cfg.ChargeType = *update.ChargeType
	}
	if update.FixedAmount != nil {
		cfg.FixedAmount = *update.FixedAmount
	}
	if update.PerIntervalAmount != nil {
		cfg.PerIntervalAmount = *update.PerIntervalAmount
	}
	if update.IntervalMinutes != nil {
		cfg.IntervalMinutes = *update.IntervalMinutes
	}

	if err := s.repo.SaveDelayConfig(ctx, cfg); err != nil {
		return models.FlightDelayConfig{}, fmt.Errorf("service.UpdateDelayConfig: %w", err)
	}
	return cfg, nil
}

// ResetDelayConfig restores and persists the shipped default policy.
func (s *Service) ResetDelayConfig(ctx context.Context) (models.FlightDelayConfig, error) {
	cfg := policy.DefaultDelayConfig()
	if err := s.repo.SaveDelayConfig(ctx, cfg); err != nil {
		return models.FlightDelayConfig{}, fmt.Errorf("service.ResetDelayConfig: %w", err)
	}
	return cfg, nil
}

// ListBookings proxies the booking listing for the dashboard.
func (s *Service) ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	return s.bookings.ListBookings(ctx, filter)
}

// UpdateBookingStatus moves a booking through its lifecycle; the booking
// service enforces the allowed transitions.
func (s *Service) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	return s.bookings.UpdateStatus(ctx, bookingID, status)
}

// DispatchPickupReminders triggers the day-before reminder mails for every
// confirmed booking on the given date. Exposed as an ops action so the
// operator (or an external scheduler hitting the endpoint) decides when the
// daily batch goes out.
func (s *Service) DispatchPickupReminders(ctx context.Context, date string) (int, error) {
	if !datePattern.MatchString(date) {
		return 0, fmt.Errorf("date must be in YYYY-MM-DD format: %w", models.ErrInvalidInput)
	}
	return s.bookings.SendPickupReminders(ctx, date)
}

// BookingStats aggregates the dashboard summary. Cancelled bookings do not
// count toward revenue.
func (s *Service) BookingStats(ctx context.Context, filter models.BookingFilter) (*models.BookingStats, error) {
	bookings, err := s.bookings.ListBookings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.BookingStats: %w", err)
	}

	stats := &models.BookingStats{TotalBookings: len(bookings)}
	revenueCount := 0
	for _, b := range bookings {
		switch b.Status {
		case models.BookingPending:
			stats.PendingBookings++
		case models.BookingConfirmed:
			stats.ConfirmedBookings++
		case models.BookingCompleted:
			stats.CompletedBookings++
		case models.BookingCancelled:
			stats.CancelledBookings++
		}
		if b.Status == models.BookingConfirmed || b.Status == models.BookingCompleted {
			stats.TotalRevenue += b.TotalPrice
			revenueCount++
		}
	}
	if revenueCount > 0 {
		stats.AverageBookingValue = stats.TotalRevenue / float64(revenueCount)
	}
	return stats, nil
}
