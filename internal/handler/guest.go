package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Masozee/ladapala-sub001/internal/model"
	"github.com/Masozee/ladapala-sub001/internal/repository"
)

// GuestHandler implements the guest directory.
type GuestHandler struct {
	Guests       *repository.GuestRepo
	Reservations *repository.ReservationRepo
}

// NewGuestHandler constructs a GuestHandler.
func NewGuestHandler(guests *repository.GuestRepo, reservations *repository.ReservationRepo) *GuestHandler {
	if guests == nil || reservations == nil {
		panic("nil repository passed to NewGuestHandler")
	}
	return &GuestHandler{Guests: guests, Reservations: reservations}
}

type createGuestReq struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	IDNumber string `json:"id_number"`
	VIP      bool   `json:"is_vip"`
}

// CreateGuest handles POST /v1/guests.
func (h *GuestHandler) CreateGuest(c echo.Context) error {
	var req createGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	g := &model.Guest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		IDNumber: req.IDNumber,
		VIP:      req.VIP,
	}
	if err := h.Guests.Create(c.Request().Context(), g); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// point the caller at the existing profile so the front
			// desk can book against it instead of retyping
			if existing, lookupErr := h.Guests.GetByEmail(c.Request().Context(), req.Email); lookupErr == nil {
				return c.JSON(http.StatusConflict, echo.Map{
					"error":    "email already registered",
					"guest_id": existing.ID,
				})
			}
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create guest"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"guest": g})
}

// GetGuest handles GET /v1/guests/:id.
func (h *GuestHandler) GetGuest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	g, err := h.Guests.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"guest": g})
}

// SearchGuests handles GET /v1/guests?q=.
func (h *GuestHandler) SearchGuests(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}
	items, err := h.Guests.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type vipReq struct {
	VIP bool `json:"is_vip"`
}

// SetVIP handles PATCH /v1/guests/:id/vip.  The flag only affects
// reservations priced after the change; existing totals stay as
// quoted.
func (h *GuestHandler) SetVIP(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req vipReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Guests.SetVIP(c.Request().Context(), id, req.VIP); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update guest"})
	}
	return c.JSON(http.StatusOK, echo.Map{"guest_id": id, "is_vip": req.VIP})
}

// ListGuestReservations handles GET /v1/guests/:id/reservations.
func (h *GuestHandler) ListGuestReservations(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	items, err := h.Reservations.ListByGuest(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
