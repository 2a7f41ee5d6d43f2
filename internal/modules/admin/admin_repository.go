package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"limo-booking/internal/models"
)

// RepositoryInterface defines the contract for admin persistence: closed
// slots and the flight-delay configuration.
type RepositoryInterface interface {
	CreateClosedSlot(ctx context.Context, slot *models.ClosedSlot) error
	GetClosedSlot(ctx context.Context, id string) (*models.ClosedSlot, error)
	ListClosedSlots(ctx context.Context) ([]models.ClosedSlot, error)
	ClosedSlotsForDate(ctx context.Context, date string) ([]models.ClosedSlot, error)
	UpdateClosedSlot(ctx context.Context, slot *models.ClosedSlot) error
	DeleteClosedSlot(ctx context.Context, id string) error
	GetDelayConfig(ctx context.Context) (*models.FlightDelayConfig, error)
	SaveDelayConfig(ctx context.Context, cfg models.FlightDelayConfig) error
}

// Repository implements RepositoryInterface over PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new admin repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// CreateClosedSlot inserts a new unavailability window.
func (r *Repository) CreateClosedSlot(ctx context.Context, slot *models.ClosedSlot) error {
	query := `
		INSERT INTO closed_slots (id, vehicle_id, slot_date, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		slot.ID, slot.VehicleID, slot.Date, slot.StartTime, slot.EndTime, slot.Reason)
	if err != nil {
		return fmt.Errorf("repository.CreateClosedSlot: %w", err)
	}
	return nil
}

const closedSlotColumns = `id, vehicle_id, slot_date, start_time, end_time, reason`

// GetClosedSlot returns a single closed slot by id.
func (r *Repository) GetClosedSlot(ctx context.Context, id string) (*models.ClosedSlot, error) {
	query := `SELECT ` + closedSlotColumns + ` FROM closed_slots WHERE id = $1`

	var s models.ClosedSlot
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.VehicleID, &s.Date, &s.StartTime, &s.EndTime, &s.Reason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.GetClosedSlot: %w", err)
	}
	return &s, nil
}

// UpdateClosedSlot overwrites a stored closed slot.
func (r *Repository) UpdateClosedSlot(ctx context.Context, slot *models.ClosedSlot) error {
	query := `
		UPDATE closed_slots
		SET vehicle_id = $1, slot_date = $2, start_time = $3, end_time = $4, reason = $5
		WHERE id = $6`
	tag, err := r.db.Exec(ctx, query,
		slot.VehicleID, slot.Date, slot.StartTime, slot.EndTime, slot.Reason, slot.ID)
	if err != nil {
		return fmt.Errorf("repository.UpdateClosedSlot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListClosedSlots returns every closed slot, soonest first.
func (r *Repository) ListClosedSlots(ctx context.Context) ([]models.ClosedSlot, error) {
	query := `SELECT ` + closedSlotColumns + ` FROM closed_slots ORDER BY slot_date, start_time`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListClosedSlots: %w", err)
	}
	defer rows.Close()
	return collectSlots(rows)
}

// ClosedSlotsForDate returns the closed slots on one date. The booking flow
// reads availability through this method as well.
func (r *Repository) ClosedSlotsForDate(ctx context.Context, date string) ([]models.ClosedSlot, error) {
	query := `SELECT ` + closedSlotColumns + ` FROM closed_slots WHERE slot_date = $1 ORDER BY start_time`
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("repository.ClosedSlotsForDate: %w", err)
	}
	defer rows.Close()
	return collectSlots(rows)
}

// DeleteClosedSlot removes a closed slot by id.
func (r *Repository) DeleteClosedSlot(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM closed_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteClosedSlot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetDelayConfig loads the single stored flight-delay configuration. A missing
// row surfaces as ErrNotFound; callers fall back to the default policy.
func (r *Repository) GetDelayConfig(ctx context.Context) (*models.FlightDelayConfig, error) {
	query := `
		SELECT enabled, free_waiting_minutes, charge_type, fixed_amount, per_interval_amount, interval_minutes
		FROM delay_config WHERE id = 1`

	var cfg models.FlightDelayConfig
	err := r.db.QueryRow(ctx, query).Scan(
		&cfg.Enabled, &cfg.FreeWaitingMinutes, &cfg.ChargeType,
		&cfg.FixedAmount, &cfg.PerIntervalAmount, &cfg.IntervalMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.GetDelayConfig: %w", err)
	}
	return &cfg, nil
}

// SaveDelayConfig upserts the flight-delay configuration singleton row.
func (r *Repository) SaveDelayConfig(ctx context.Context, cfg models.FlightDelayConfig) error {
	query := `
		INSERT INTO delay_config (id, enabled, free_waiting_minutes, charge_type, fixed_amount, per_interval_amount, interval_minutes)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			free_waiting_minutes = EXCLUDED.free_waiting_minutes,
			charge_type = EXCLUDED.charge_type,
			fixed_amount = EXCLUDED.fixed_amount,
			per_interval_amount = EXCLUDED.per_interval_amount,
			interval_minutes = EXCLUDED.interval_minutes`
	_, err := r.db.Exec(ctx, query,
		cfg.Enabled, cfg.FreeWaitingMinutes, cfg.ChargeType,
		cfg.FixedAmount, cfg.PerIntervalAmount, cfg.IntervalMinutes)
	if err != nil {
		return fmt.Errorf("repository.SaveDelayConfig: %w", err)
	}
	return nil
}

func collectSlots(rows pgx.Rows) ([]models.ClosedSlot, error) {
	var out []models.ClosedSlot
	for rows.Next() {
		var s models.ClosedSlot
		if err := rows.Scan(&s.ID, &s.VehicleID, &s.Date, &s.StartTime, &s.EndTime, &s.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan closed slot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
