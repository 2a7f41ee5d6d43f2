package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"limo-booking/internal/models"
)

// Quotes are short-lived: prices and availability may drift, so a stale
// quote must not turn into a booking.
const quoteTTL = 30 * time.Minute

// CachedQuote is the priced option a client can turn into a booking.
type CachedQuote struct {
	QuoteID         string                  `json:"quote_id"`
	From            string                  `json:"from"`
	To              string                  `json:"to"`
	PickupDate      string                  `json:"pickup_date"`
	PickupTime      string                  `json:"pickup_time"`
	Passengers      int                     `json:"passengers"`
	VehicleID       string                  `json:"vehicle_id"`
	VehicleLabel    string                  `json:"vehicle_label"`
	DistanceKm      float64                 `json:"distance_km"`
	DurationMinutes int                     `json:"duration_minutes"`
	Price           models.PriceCalculation `json:"price"`
}

// QuoteCacheInterface stores quotes between the quote and booking steps.
type QuoteCacheInterface interface {
	Put(ctx context.Context, quote CachedQuote) error
	Get(ctx context.Context, quoteID string) (*CachedQuote, error)
	Delete(ctx context.Context, quoteID string) error
}

// QuoteCache implements QuoteCacheInterface on Redis so quotes survive
// instance restarts and are shared across replicas.
type QuoteCache struct {
	rdb *redis.Client
}

// NewQuoteCache creates a Redis-backed quote cache.
func NewQuoteCache(rdb *redis.Client) *QuoteCache {
	return &QuoteCache{rdb: rdb}
}

func quoteKey(id string) string { return "quote:" + id }

// Put stores the quote under its id with the standard TTL.
func (c *QuoteCache) Put(ctx context.Context, quote CachedQuote) error {
	payload, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("quotecache.Put: marshal: %w", err)
	}
	if err := c.rdb.Set(ctx, quoteKey(quote.QuoteID), payload, quoteTTL).Err(); err != nil {
		return fmt.Errorf("quotecache.Put: %w", err)
	}
	return nil
}

// Get returns the cached quote, or ErrQuoteExpired when it is gone.
func (c *QuoteCache) Get(ctx context.Context, quoteID string) (*CachedQuote, error) {
	payload, err := c.rdb.Get(ctx, quoteKey(quoteID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrQuoteExpired
		}
		return nil, fmt.Errorf("quotecache.Get: %w", err)
	}
	var quote CachedQuote
	if err := json.Unmarshal(payload, &quote); err != nil {
		return nil, fmt.Errorf("quotecache.Get: unmarshal: %w", err)
	}
	return &quote, nil
}

// Delete drops a consumed quote so it cannot be booked twice.
func (c *QuoteCache) Delete(ctx context.Context, quoteID string) error {
	if err := c.rdb.Del(ctx, quoteKey(quoteID)).Err(); err != nil {
		return fmt.Errorf("quotecache.Delete: %w", err)
	}
	return nil
}
