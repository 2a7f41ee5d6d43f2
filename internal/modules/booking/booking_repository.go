package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"limo-booking/internal/models"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// RepositoryInterface defines the contract for booking persistence.
type RepositoryInterface interface {
	Create(ctx context.Context, b *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByReference(ctx context.Context, reference string) (*models.Booking, error)
	FindByStripeSession(ctx context.Context, sessionID string) (*models.Booking, error)
	ListForDate(ctx context.Context, date string) ([]*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	SetStripeSession(ctx context.Context, id, sessionID string) error
}

// Repository implements RepositoryInterface over PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new booking repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const bookingColumns = `id, booking_reference, from_location, to_location, pickup_date,
	pickup_time, passengers, vehicle_id, vehicle_label, distance_km, duration_minutes,
	pricing_method, base_price, add_ons, add_ons_total, total_price, currency,
	customer_name, customer_email, customer_phone, flight_number, notes,
	stripe_session_id, status, created_at, updated_at`

// Create inserts a new booking. A duplicate booking reference surfaces as
// ErrConflict.
func (r *Repository) Create(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_reference, from_location, to_location, pickup_date,
			pickup_time, passengers, vehicle_id, vehicle_label, distance_km, duration_minutes,
			pricing_method, base_price, add_ons, add_ons_total, total_price, currency,
			customer_name, customer_email, customer_phone, flight_number, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		b.ID, b.BookingReference, b.From, b.To, b.PickupDate,
		b.PickupTime, b.Passengers, b.VehicleID, b.VehicleLabel, b.DistanceKm, b.DurationMinutes,
		b.PricingMethod, b.BasePrice, b.AddOns, b.AddOnsTotal, b.TotalPrice, b.Currency,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.FlightNumber, b.Notes, b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrConflict
		}
		return fmt.Errorf("repository.Create: %w", err)
	}
	return nil
}

// FindByID returns a single booking by primary key.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRow(ctx, query, id))
}

// FindByReference returns a booking by its customer-facing reference.
func (r *Repository) FindByReference(ctx context.Context, reference string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_reference = $1`
	return r.scanBooking(r.db.QueryRow(ctx, query, reference))
}

// FindByStripeSession returns the booking tied to a checkout session.
func (r *Repository) FindByStripeSession(ctx context.Context, sessionID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE stripe_session_id = $1`
	return r.scanBooking(r.db.QueryRow(ctx, query, sessionID))
}

// ListForDate returns every booking on the given pickup date, cancelled ones
// included; the availability checker filters those itself.
func (r *Repository) ListForDate(ctx context.Context, date string) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE pickup_date = $1 ORDER BY pickup_time`
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("repository.ListForDate: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// List returns bookings matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Status != "" {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, filter.Status)
	}
	if filter.StartDate != "" {
		n++
		query += fmt.Sprintf(" AND pickup_date >= $%d", n)
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		n++
		query += fmt.Sprintf(" AND pickup_date <= $%d", n)
		args = append(args, filter.EndDate)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// UpdateStatus sets the booking status. The transition guard lives in the
// service; the repository only rejects unknown ids.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetStripeSession attaches the checkout session id to a booking.
func (r *Repository) SetStripeSession(ctx context.Context, id, sessionID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET stripe_session_id = $1, updated_at = now() WHERE id = $2`, sessionID, id)
	if err != nil {
		return fmt.Errorf("repository.SetStripeSession: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.BookingReference, &b.From, &b.To, &b.PickupDate,
		&b.PickupTime, &b.Passengers, &b.VehicleID, &b.VehicleLabel, &b.DistanceKm, &b.DurationMinutes,
		&b.PricingMethod, &b.BasePrice, &b.AddOns, &b.AddOnsTotal, &b.TotalPrice, &b.Currency,
		&b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.FlightNumber, &b.Notes,
		&b.StripeSessionID, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	return &b, nil
}

func (r *Repository) collect(rows pgx.Rows) ([]*models.Booking, error) {
	var out []*models.Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
