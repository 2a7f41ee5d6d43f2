package models

import "errors"

var ErrNotFound = errors.New("requested resource not found")
var ErrForbidden = errors.New("user does not have permission to access this resource")
var ErrConflict = errors.New("resource conflict, item already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidInput = errors.New("invalid input")

// ErrDistanceRequired indicates per-km pricing was requested without a positive
// distance and no fixed route matched the trip endpoints. The only hard error
// the pricing engine raises: without a distance it cannot produce a price.
var ErrDistanceRequired = errors.New("distance is required for non-fixed routes")

// ErrQuoteExpired indicates the quote the client selected is no longer cached.
var ErrQuoteExpired = errors.New("quote expired or not found")

var ErrVehicleUnavailable = errors.New("vehicle is not available for the requested time")
var ErrInsufficientNotice = errors.New("bookings require at least 2 hours advance notice")
var ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")
var ErrInvalidStatusTransition = errors.New("booking status transition not allowed")
var ErrAmountBelowMinimum = errors.New("amount is below the minimum chargeable amount")
var ErrAmountAboveMaximum = errors.New("amount exceeds the maximum chargeable amount")

// ErrorResponse is the JSON error body returned by all handlers.
type ErrorResponse struct {
	Message string `json:"message"`
}
