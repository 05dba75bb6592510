package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Masozee/ladapala-sub001/internal/model"
	"github.com/Masozee/ladapala-sub001/internal/repository"
)

// RoomHandler implements room and room-type administration.  Listing
// endpoints sit behind the response cache; mutations do not.
type RoomHandler struct {
	Rooms     *repository.RoomRepo
	RoomTypes *repository.RoomTypeRepo
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *repository.RoomRepo, roomTypes *repository.RoomTypeRepo) *RoomHandler {
	if rooms == nil || roomTypes == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, RoomTypes: roomTypes}
}

// ListRooms handles GET /v1/rooms?status=AVAILABLE and the front-desk
// exact lookup GET /v1/rooms?number=101.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	if number := c.QueryParam("number"); number != "" {
		room, err := h.Rooms.GetByNumber(c.Request().Context(), number)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.JSON(http.StatusOK, echo.Map{"items": []model.Room{}})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": []model.Room{room}})
	}
	status := model.RoomStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	items, err := h.Rooms.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetRoom handles GET /v1/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": room})
}

type createRoomReq struct {
	Number     string `json:"number" validate:"required"`
	Floor      int    `json:"floor" validate:"min=0"`
	RoomTypeID uint64 `json:"room_type_id" validate:"required"`
	Price      string `json:"price"`
}

// CreateRoom handles POST /v1/rooms.  New rooms start AVAILABLE.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	room := &model.Room{
		Number:     req.Number,
		Floor:      req.Floor,
		Status:     model.RoomAvailable,
		RoomTypeID: req.RoomTypeID,
	}
	if req.Price != "" {
		p, err := decimal.NewFromString(req.Price)
		if err != nil || p.IsNegative() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
		}
		room.Price = &p
	}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": room})
}

type roomStatusReq struct {
	Status string `json:"status" validate:"required"`
}

// UpdateRoomStatus handles PATCH /v1/rooms/:id/status for manual
// maintenance flags.  OCCUPIED is reserved for the check-in
// transition and cannot be set here.
func (h *RoomHandler) UpdateRoomStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	status := model.RoomStatus(req.Status)
	if !status.Valid() || status == model.RoomOccupied {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if err := h.Rooms.UpdateStatus(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room_id": id, "status": status})
}

// ListRoomTypes handles GET /v1/room-types.
func (h *RoomHandler) ListRoomTypes(c echo.Context) error {
	items, err := h.RoomTypes.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room types"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type createRoomTypeReq struct {
	Name         string `json:"name" validate:"required"`
	BasePrice    string `json:"base_price" validate:"required"`
	MaxOccupancy int    `json:"max_occupancy" validate:"required,min=1"`
	Amenities    string `json:"amenities"`
}

// CreateRoomType handles POST /v1/room-types.
func (h *RoomHandler) CreateRoomType(c echo.Context) error {
	var req createRoomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	price, err := decimal.NewFromString(req.BasePrice)
	if err != nil || price.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid base_price"})
	}
	rt := &model.RoomType{
		Name:         req.Name,
		BasePrice:    price,
		MaxOccupancy: req.MaxOccupancy,
		Amenities:    req.Amenities,
	}
	if err := h.RoomTypes.Create(c.Request().Context(), rt); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room type already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room type"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": rt})
}
