// Package payment wraps Stripe Checkout for booking payments.
package payment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"limo-booking/internal/models"
)

// Stripe metadata values must be strings, max 500 chars each.
const metadataValueLimit = 500

// ServiceInterface defines the contract for the payment provider.
type ServiceInterface interface {
	CreateCheckoutSession(booking *models.Booking, successURL, cancelURL string) (*models.CheckoutResponse, error)
	GetSessionPaymentStatus(sessionID string) (paid bool, err error)
}

// StripeService implements ServiceInterface against the Stripe API.
type StripeService struct {
	api         *client.API
	productName string
}

// NewStripeService creates a Stripe-backed payment service.
func NewStripeService(secretKey string) *StripeService {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeService{api: api, productName: "Elegant Limo – Transfer"}
}

// Centimes converts a CHF amount to Stripe minor units (1 CHF = 100 centimes).
func Centimes(chf float64) int64 {
	return int64(math.Round(chf * 100))
}

func truncate(s string) string {
	if len(s) > metadataValueLimit {
		return s[:metadataValueLimit]
	}
	return s
}

// bookingMetadata flattens the booking into the Stripe metadata bundle used
// to finalize the booking on checkout success.
func bookingMetadata(b *models.Booking) map[string]string {
	addOns, _ := json.Marshal(b.AddOns)
	return map[string]string{
		"id":                truncate(b.ID),
		"booking_reference": truncate(b.BookingReference),
		"from":              truncate(b.From),
		"to":                truncate(b.To),
		"date":              truncate(b.PickupDate),
		"time":              truncate(b.PickupTime),
		"passengers":        strconv.Itoa(b.Passengers),
		"vehicle_id":        truncate(b.VehicleID),
		"vehicle_label":     truncate(b.VehicleLabel),
		"total_price":       strconv.FormatFloat(b.TotalPrice, 'f', 2, 64),
		"customer_name":     truncate(b.CustomerName),
		"customer_email":    truncate(b.CustomerEmail),
		"customer_phone":    truncate(b.CustomerPhone),
		"add_ons":           truncate(string(addOns)),
	}
}

// CreateCheckoutSession opens a hosted Stripe Checkout page for the booking
// subtotal, in centimes, with the booking flattened into session metadata.
func (s *StripeService) CreateCheckoutSession(booking *models.Booking, successURL, cancelURL string) (*models.CheckoutResponse, error) {
	description := fmt.Sprintf("%s → %s • %s %s. Cancellation: free ≥48h before pickup; <24h before pickup: 50%% cancellation fee applies.",
		truncateTo(booking.From, 80), truncateTo(booking.To, 80), booking.PickupDate, booking.PickupTime)

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(successURL),
		CancelURL:          stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("chf"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(s.productName),
						Description: stripe.String(truncate(description)),
					},
					UnitAmount: stripe.Int64(Centimes(booking.TotalPrice)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if booking.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(booking.CustomerEmail)
	}
	for k, v := range bookingMetadata(booking) {
		params.AddMetadata(k, v)
	}

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment.CreateCheckoutSession: %w", err)
	}

	return &models.CheckoutResponse{URL: session.URL, SessionID: session.ID}, nil
}

// GetSessionPaymentStatus reports whether the checkout session has been paid.
func (s *StripeService) GetSessionPaymentStatus(sessionID string) (bool, error) {
	session, err := s.api.CheckoutSessions.Get(sessionID, nil)
	if err != nil {
		return false, fmt.Errorf("payment.GetSessionPaymentStatus: %w", err)
	}
	return session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}

func truncateTo(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
