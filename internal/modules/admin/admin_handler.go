package admin

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"limo-booking/internal/models"
)

// Handler handles HTTP requests for the ops dashboard.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate // For request body validation
}

// NewHandler creates a new admin handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the admin API. Everything except login sits behind
// the JWT middleware.
func (h *Handler) RegisterRoutes(g *echo.Group, jwtSecret string) {
	g.POST("/login", h.Login)

	protected := g.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(jwtSecret),
	}))
	protected.GET("/bookings", h.ListBookings)
	protected.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
	protected.GET("/stats", h.BookingStats)
	protected.POST("/reminders", h.DispatchPickupReminders)

	protected.GET("/closed-slots", h.ListClosedSlots)
	protected.POST("/closed-slots", h.CreateClosedSlot)
	protected.PATCH("/closed-slots/:id", h.UpdateClosedSlot)
	protected.DELETE("/closed-slots/:id", h.DeleteClosedSlot)

	protected.GET("/delay-config", h.GetDelayConfig)
	protected.PATCH("/delay-config", h.UpdateDelayConfig)
	protected.POST("/delay-config/reset", h.ResetDelayConfig)
}

func (h *Handler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	resp, err := h.svc.Login(req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid credentials"})
		}
		c.Logger().Error("Handler.Login: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to log in"})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListBookings(c echo.Context) error {
	filter := models.BookingFilter{
		Status:    models.BookingStatus(c.QueryParam("status")),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	bookings, err := h.svc.ListBookings(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Error("Handler.ListBookings: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list bookings"})
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) UpdateBookingStatus(c echo.Context) error {
	var req models.UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	b, err := h.svc.UpdateBookingStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		case errors.Is(err, models.ErrInvalidStatusTransition):
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Status transition not allowed"})
		}
		c.Logger().Error("Handler.UpdateBookingStatus: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update booking status"})
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) BookingStats(c echo.Context) error {
	filter := models.BookingFilter{
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	stats, err := h.svc.BookingStats(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Error("Handler.BookingStats: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to compute stats"})
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) DispatchPickupReminders(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "date is required"})
	}

	sent, err := h.svc.DispatchPickupReminders(c.Request().Context(), date)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.DispatchPickupReminders: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to dispatch reminders"})
	}
	return c.JSON(http.StatusOK, map[string]any{"date": date, "sent": sent})
}

func (h *Handler) ListClosedSlots(c echo.Context) error {
	slots, err := h.svc.ListClosedSlots(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListClosedSlots: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list closed slots"})
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) CreateClosedSlot(c echo.Context) error {
	var req models.ClosedSlotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	slot, err := h.svc.CreateClosedSlot(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.CreateClosedSlot: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create closed slot"})
	}
	return c.JSON(http.StatusCreated, slot)
}

func (h *Handler) UpdateClosedSlot(c echo.Context) error {
	var update models.ClosedSlotUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}

	slot, err := h.svc.UpdateClosedSlot(c.Request().Context(), c.Param("id"), update)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Closed slot not found"})
		case errors.Is(err, models.ErrInvalidInput):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.UpdateClosedSlot: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update closed slot"})
	}
	return c.JSON(http.StatusOK, slot)
}

func (h *Handler) DeleteClosedSlot(c echo.Context) error {
	if err := h.svc.DeleteClosedSlot(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Closed slot not found"})
		}
		c.Logger().Error("Handler.DeleteClosedSlot: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete closed slot"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetDelayConfig(c echo.Context) error {
	cfg, err := h.svc.DelayConfig(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.GetDelayConfig: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to load delay config"})
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *Handler) ResetDelayConfig(c echo.Context) error {
	cfg, err := h.svc.ResetDelayConfig(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ResetDelayConfig: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to reset delay config"})
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateDelayConfig(c echo.Context) error {
	var update models.DelayConfigUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}

	cfg, err := h.svc.UpdateDelayConfig(c.Request().Context(), update)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.UpdateDelayConfig: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update delay config"})
	}
	return c.JSON(http.StatusOK, cfg)
}
