package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"limo-booking/internal/catalog"
	"limo-booking/internal/models"
	"limo-booking/internal/modules/policy"
)

// Handler handles HTTP requests for quotes and bookings.
type Handler struct {
	svc      ServiceInterface
	catalog  *catalog.Catalog
	validate *validator.Validate // For request body validation
}

// NewHandler creates a new booking handler.
func NewHandler(svc ServiceInterface, cat *catalog.Catalog) *Handler {
	return &Handler{
		svc:      svc,
		catalog:  cat,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the public booking API.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/vehicles", h.ListVehicles)
	g.GET("/add-ons", h.ListAddOns)
	g.GET("/policies", h.GetPolicies)

	g.POST("/quotes", h.CreateQuote)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings/:id", h.GetBooking)
	g.GET("/bookings/reference/:reference", h.GetBookingByReference)
	g.POST("/bookings/:id/checkout", h.StartCheckout)
	g.GET("/bookings/checkout/complete", h.CompleteCheckout)
	g.POST("/bookings/:id/cancel", h.CancelBooking)
}

// ListVehicles returns the bookable fleet.
func (h *Handler) ListVehicles(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Vehicles())
}

// ListAddOns returns the bookable extras.
func (h *Handler) ListAddOns(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.AddOns())
}

// GetPolicies returns the customer-facing policy texts.
func (h *Handler) GetPolicies(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"cancellation": map[string]any{
			"summary": policy.CancellationSummary,
			"details": policy.CancellationDetails,
		},
		"flight_delay": map[string]any{
			"summary": policy.FlightDelaySummary,
			"details": policy.FlightDelayDetails,
		},
		"terms": policy.TermsSummary,
	})
}

func (h *Handler) CreateQuote(c echo.Context) error {
	var req models.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	resp, err := h.svc.Quote(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrDistanceRequired) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.CreateQuote: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create quote"})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	b, err := h.svc.CreateBooking(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrQuoteExpired):
			return c.JSON(http.StatusGone, models.ErrorResponse{Message: "Quote expired, please request a new one"})
		case errors.Is(err, models.ErrInsufficientNotice):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: err.Error()})
		case errors.Is(err, models.ErrVehicleUnavailable):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Vehicle is no longer available for this time"})
		case errors.Is(err, models.ErrConflict):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Booking already exists"})
		}
		c.Logger().Error("Handler.CreateBooking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create booking"})
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBooking(c echo.Context) error {
	b, err := h.svc.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		}
		c.Logger().Error("Handler.GetBooking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) GetBookingByReference(c echo.Context) error {
	b, err := h.svc.GetBookingByReference(c.Request().Context(), c.Param("reference"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		}
		c.Logger().Error("Handler.GetBookingByReference: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) StartCheckout(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	checkout, err := h.svc.StartCheckout(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		case errors.Is(err, models.ErrInvalidStatusTransition):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Booking is not awaiting payment"})
		case errors.Is(err, models.ErrAmountBelowMinimum), errors.Is(err, models.ErrAmountAboveMaximum):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.StartCheckout: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to start checkout"})
	}
	return c.JSON(http.StatusOK, checkout)
}

// CompleteCheckout is the success redirect target: it verifies the session
// was paid and confirms the booking.
func (h *Handler) CompleteCheckout(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "session_id is required"})
	}

	b, err := h.svc.FinalizeBooking(c.Request().Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found for this session"})
		case errors.Is(err, models.ErrForbidden):
			return c.JSON(http.StatusPaymentRequired, models.ErrorResponse{Message: "Payment has not completed"})
		}
		c.Logger().Error("Handler.CompleteCheckout: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to finalize booking"})
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) CancelBooking(c echo.Context) error {
	resp, err := h.svc.CancelBooking(c.Request().Context(), c.Param("id"), time.Time{})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		case errors.Is(err, models.ErrBookingNotCancellable):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Booking can no longer be cancelled"})
		}
		c.Logger().Error("Handler.CancelBooking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to cancel booking"})
	}
	return c.JSON(http.StatusOK, resp)
}
