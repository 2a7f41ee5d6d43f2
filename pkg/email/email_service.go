// Package email sends transactional booking mail through AWS SESv2.
// Send failures are reported to the caller for logging only; a failed email
// never rolls back a booking.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"limo-booking/internal/models"
	"limo-booking/internal/modules/policy"
)

// ServiceInterface defines the contract for the transactional mailer.
type ServiceInterface interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking, invoiceText string) error
	SendOpsAlert(ctx context.Context, booking *models.Booking) error
	SendCancellationNotice(ctx context.Context, booking *models.Booking, refund models.CancellationRefund) error
	SendPickupReminder(ctx context.Context, booking *models.Booking) error
}

// sesClient is the slice of the SESv2 client the service uses; tests fake it.
type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Service implements ServiceInterface over SESv2.
type Service struct {
	client      sesClient
	senderEmail string
	senderName  string
	adminEmail  string
}

// NewService builds the mailer from the ambient AWS configuration.
func NewService(ctx context.Context, region, senderEmail, senderName, adminEmail string) (*Service, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("email.NewService: load aws config: %w", err)
	}
	return &Service{
		client:      sesv2.NewFromConfig(cfg),
		senderEmail: senderEmail,
		senderName:  senderName,
		adminEmail:  adminEmail,
	}, nil
}

func (s *Service) send(ctx context.Context, to, subject, body string) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail)),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body:    &types.Body{Text: &types.Content{Data: aws.String(body)}},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("email.send to %s: %w", to, err)
	}
	return nil
}

// SendBookingConfirmation mails the customer their confirmed booking together
// with the rendered invoice.
func (s *Service) SendBookingConfirmation(ctx context.Context, b *models.Booking, invoiceText string) error {
	subject := fmt.Sprintf("Booking confirmed – %s", b.BookingReference)
	body := confirmationBody(b, invoiceText)
	return s.send(ctx, b.CustomerEmail, subject, body)
}

// SendOpsAlert mails the operations inbox about a new confirmed booking.
func (s *Service) SendOpsAlert(ctx context.Context, b *models.Booking) error {
	subject := fmt.Sprintf("New booking: %s", b.BookingReference)
	return s.send(ctx, s.adminEmail, subject, opsAlertBody(b))
}

// SendCancellationNotice mails the customer the refund outcome.
func (s *Service) SendCancellationNotice(ctx context.Context, b *models.Booking, refund models.CancellationRefund) error {
	subject := fmt.Sprintf("Booking cancelled – %s", b.BookingReference)
	return s.send(ctx, b.CustomerEmail, subject, cancellationBody(b, refund))
}

// SendPickupReminder mails the customer the day-before pickup summary.
func (s *Service) SendPickupReminder(ctx context.Context, b *models.Booking) error {
	subject := fmt.Sprintf("Pickup reminder – %s", b.BookingReference)
	return s.send(ctx, b.CustomerEmail, subject, reminderBody(b))
}

// reminderBody summarizes everything the customer needs the day before:
// reference, vehicle, window, route, passengers, add-ons, price, payment
// method, and the cancellation terms.
func reminderBody(b *models.Booking) string {
	addOnsText := "None"
	if len(b.AddOns) > 0 {
		addOnsText = strings.Join(b.AddOns, ", ")
	}

	var w strings.Builder
	fmt.Fprintf(&w, "Dear %s,\n\nYour pickup is scheduled for tomorrow.\n\n", b.CustomerName)
	fmt.Fprintf(&w, "Booking: %s\n", b.BookingReference)
	fmt.Fprintf(&w, "Vehicle: %s\n", b.VehicleLabel)
	fmt.Fprintf(&w, "Pickup: %s at %s\n", b.PickupDate, b.PickupTime)
	fmt.Fprintf(&w, "From: %s\n", b.From)
	fmt.Fprintf(&w, "To: %s\n", b.To)
	fmt.Fprintf(&w, "Passengers: %d\n", b.Passengers)
	fmt.Fprintf(&w, "Add-ons: %s\n", addOnsText)
	fmt.Fprintf(&w, "Total: CHF %.2f\n", b.TotalPrice)
	fmt.Fprintf(&w, "Payment: %s\n", policy.PaymentSummary)
	fmt.Fprintf(&w, "Cancellation: %s\n", policy.CancellationSummary)
	w.WriteString("\nBest regards,\nElegant Limo Switzerland\n")
	return w.String()
}

func confirmationBody(b *models.Booking, invoiceText string) string {
	var w strings.Builder
	fmt.Fprintf(&w, "Dear %s,\n\n", b.CustomerName)
	fmt.Fprintf(&w, "Thank you for booking with Elegant Limo Switzerland.\n\n")
	fmt.Fprintf(&w, "Your booking %s is confirmed.\n\n", b.BookingReference)
	fmt.Fprintf(&w, "Pickup: %s at %s\n", b.PickupDate, b.PickupTime)
	fmt.Fprintf(&w, "From: %s\n", b.From)
	fmt.Fprintf(&w, "To: %s\n", b.To)
	fmt.Fprintf(&w, "Vehicle: %s\n", b.VehicleLabel)
	fmt.Fprintf(&w, "Passengers: %d\n", b.Passengers)
	fmt.Fprintf(&w, "Total: CHF %.2f\n\n", b.TotalPrice)
	w.WriteString(invoiceText)
	w.WriteString("\nFor questions or changes, reply to this email with your booking reference.\n\nBest regards,\nElegant Limo Switzerland\n")
	return w.String()
}

func opsAlertBody(b *models.Booking) string {
	var w strings.Builder
	fmt.Fprintf(&w, "Booking Reference: %s\n", b.BookingReference)
	fmt.Fprintf(&w, "From: %s\n", b.From)
	fmt.Fprintf(&w, "To: %s\n", b.To)
	fmt.Fprintf(&w, "Date: %s %s\n", b.PickupDate, b.PickupTime)
	fmt.Fprintf(&w, "Passengers: %d\n", b.Passengers)
	fmt.Fprintf(&w, "Vehicle: %s\n", b.VehicleLabel)
	fmt.Fprintf(&w, "Total Price: CHF %.2f\n", b.TotalPrice)
	fmt.Fprintf(&w, "Customer: %s <%s> %s\n", b.CustomerName, b.CustomerEmail, b.CustomerPhone)
	if len(b.AddOns) > 0 {
		fmt.Fprintf(&w, "Add-ons: %s\n", strings.Join(b.AddOns, ", "))
	} else {
		w.WriteString("Add-ons: None\n")
	}
	if b.FlightNumber != "" {
		fmt.Fprintf(&w, "Flight: %s\n", b.FlightNumber)
	}
	if b.Notes != "" {
		fmt.Fprintf(&w, "Notes: %s\n", b.Notes)
	}
	return w.String()
}

func cancellationBody(b *models.Booking, refund models.CancellationRefund) string {
	var w strings.Builder
	fmt.Fprintf(&w, "Dear %s,\n\n", b.CustomerName)
	fmt.Fprintf(&w, "Your booking %s has been cancelled.\n\n", b.BookingReference)
	fmt.Fprintf(&w, "%s\n", refund.Reason)
	fmt.Fprintf(&w, "Refund: CHF %.2f (%d%%)\n", refund.RefundAmount, refund.RefundPercentage)
	if refund.CancellationFee > 0 {
		fmt.Fprintf(&w, "Cancellation fee: CHF %.2f\n", refund.CancellationFee)
	}
	w.WriteString("\nRefunds are processed within 5-7 business days.\n\nBest regards,\nElegant Limo Switzerland\n")
	return w.String()
}
