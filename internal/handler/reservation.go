package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Masozee/ladapala-sub001/internal/booking"
	"github.com/Masozee/ladapala-sub001/internal/model"
	"github.com/Masozee/ladapala-sub001/internal/pricing"
	"github.com/Masozee/ladapala-sub001/internal/repository"
)

// FrontDeskHandler groups the repositories behind the reservation
// lifecycle: booking, confirmation, check-in, check-out, cancellation
// and the guest folio.  Every state-changing method runs inside one
// transaction: the reservation row is locked, booking.Transition
// decides the outcome, and the returned side effects are applied
// before commit.
type FrontDeskHandler struct {
	Rooms        *repository.RoomRepo
	RoomTypes    *repository.RoomTypeRepo
	Guests       *repository.GuestRepo
	Reservations *repository.ReservationRepo
	CheckIns     *repository.CheckInRepo
	Charges      *repository.ChargeRepo
	Payments     *repository.PaymentRepo
	Housekeeping *repository.HousekeepingRepo
	Discounts    pricing.DiscountStrategy
}

// NewFrontDeskHandler constructs a FrontDeskHandler.  All repositories
// must be non-nil; Discounts may be nil to use the default strategy.
func NewFrontDeskHandler(rooms *repository.RoomRepo, roomTypes *repository.RoomTypeRepo,
	guests *repository.GuestRepo, reservations *repository.ReservationRepo,
	checkIns *repository.CheckInRepo, charges *repository.ChargeRepo,
	payments *repository.PaymentRepo, housekeeping *repository.HousekeepingRepo,
	discounts pricing.DiscountStrategy) *FrontDeskHandler {
	if rooms == nil || roomTypes == nil || guests == nil || reservations == nil ||
		checkIns == nil || charges == nil || payments == nil || housekeeping == nil {
		panic("nil repository passed to NewFrontDeskHandler")
	}
	return &FrontDeskHandler{
		Rooms:        rooms,
		RoomTypes:    roomTypes,
		Guests:       guests,
		Reservations: reservations,
		CheckIns:     checkIns,
		Charges:      charges,
		Payments:     payments,
		Housekeeping: housekeeping,
		Discounts:    discounts,
	}
}

type createReservationReq struct {
	GuestID         uint64  `json:"guest_id" validate:"required"`
	RoomID          *uint64 `json:"room_id"`
	RoomTypeID      uint64  `json:"room_type_id" validate:"required"`
	CheckInDate     string  `json:"check_in_date" validate:"required"`
	CheckOutDate    string  `json:"check_out_date" validate:"required"`
	Adults          int     `json:"adults" validate:"required,min=1"`
	Children        int     `json:"children" validate:"min=0"`
	SpecialRequests string  `json:"special_requests"`
	// Direct marks walk-in/direct bookings, which skip PENDING and
	// start life CONFIRMED.
	Direct bool `json:"direct"`
}

// CreateReservation handles POST /v1/reservations.  The room row is
// locked before the overlap query runs, so two concurrent bookings for
// the same room and dates serialize and the second one is rejected.
func (h *FrontDeskHandler) CreateReservation(c echo.Context) error {
	uid, err := staffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in_date must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_date must be YYYY-MM-DD"})
	}
	if err := booking.ValidateStayDates(checkIn, checkOut); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	guest, err := h.Guests.GetByID(ctx, req.GuestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	roomType, err := h.RoomTypes.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	nightlyRate := roomType.BasePrice
	if req.RoomID != nil {
		room, err := h.Rooms.LockByIDTx(ctx, tx, *req.RoomID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		overlap, err := h.Reservations.HasOverlapTx(ctx, tx, room.ID, checkIn, checkOut)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
		}
		if overlap {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": repository.ErrRoomUnavailable.Error()})
		}
		nightlyRate = room.NightlyRate(roomType)
	}

	quote := pricing.BuildQuote(nightlyRate, booking.Nights(checkIn, checkOut), guest.VIP, nil)
	status := booking.StatusPending
	if req.Direct {
		status = booking.StatusConfirmed
	}
	res := &model.Reservation{
		Number:          "RSV-" + uuid.NewString(),
		GuestID:         guest.ID,
		RoomID:          req.RoomID,
		RoomTypeID:      roomType.ID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Adults:          req.Adults,
		Children:        req.Children,
		Status:          status,
		VIPDiscount:     quote.VIPDiscount,
		TotalAmount:     quote.GrandTotal,
		SpecialRequests: req.SpecialRequests,
		CreatedBy:       uid,
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusCreated, echo.Map{
		"reservation": res,
		"quote":       quote,
	})
}

// transition runs one lifecycle event inside a transaction and applies
// its side effects.  The extra func hooks let check-in and check-out
// contribute their event-specific work while sharing the locking,
// gating and commit plumbing.
func (h *FrontDeskHandler) transition(c echo.Context, ev booking.Event,
	apply func(ctx echo.Context, tx *sql.Tx, res model.Reservation, effects []booking.SideEffect) (echo.Map, error)) error {
	resID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.LockByIDTx(ctx, tx, resID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	next, effects, err := booking.Transition(res.Status, ev)
	if err != nil {
		var te *booking.TransitionError
		if errors.As(err, &te) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": te.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transition failed"})
	}

	var extra echo.Map
	if apply != nil {
		extra, err = apply(c, tx, res, effects)
		if err != nil {
			if errors.Is(err, errResponded) {
				// apply has already written the HTTP response; the
				// deferred rollback undoes any partial work
				return nil
			}
			return err
		}
	}
	if err := h.Reservations.UpdateStatusTx(ctx, tx, res.ID, next); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	out := echo.Map{"reservation_id": res.ID, "status": next}
	for k, v := range extra {
		out[k] = v
	}
	return c.JSON(http.StatusOK, out)
}

// errResponded marks an apply hook failure after it has written its
// own response, so transition stops without writing a second one.
var errResponded = errors.New("response already written")

// ConfirmReservation handles POST /v1/reservations/:id/confirm.
func (h *FrontDeskHandler) ConfirmReservation(c echo.Context) error {
	return h.transition(c, booking.EventConfirm, nil)
}

type checkInReq struct {
	Deposit string `json:"deposit"`
}

// CheckInReservation handles POST /v1/reservations/:id/check-in.
// Permitted only from CONFIRMED: records the actual check-in time on
// the CheckIn row and flips the room to OCCUPIED.
func (h *FrontDeskHandler) CheckInReservation(c echo.Context) error {
	uid, err := staffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	deposit := decimal.Zero
	if req.Deposit != "" {
		d, err := decimal.NewFromString(req.Deposit)
		if err != nil || d.IsNegative() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deposit"})
		}
		deposit = d
	}

	return h.transition(c, booking.EventCheckIn,
		func(c echo.Context, tx *sql.Tx, res model.Reservation, effects []booking.SideEffect) (echo.Map, error) {
			ctx := c.Request().Context()
			if res.RoomID == nil {
				_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation has no room assigned"})
				return nil, errResponded
			}
			now := time.Now().UTC()
			for _, eff := range effects {
				switch eff {
				case booking.EffectCreateCheckIn:
					if err := h.CheckIns.UpsertCheckInTx(ctx, tx, res.ID, now, deposit, uid); err != nil {
						_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record check-in"})
						return nil, errResponded
					}
				case booking.EffectRoomOccupied:
					if err := h.Rooms.UpdateStatusTx(ctx, tx, *res.RoomID, model.RoomOccupied); err != nil {
						_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
						return nil, errResponded
					}
				}
			}
			return echo.Map{"checked_in_at": now.Format(time.RFC3339)}, nil
		})
}

// CheckOutReservation handles POST /v1/reservations/:id/check-out.
// Permitted only from CHECKED_IN: stamps the actual checkout time,
// charges a late fee past the noon cutoff, flips the room to
// MAINTENANCE, creates exactly one CHECKOUT_CLEANING task and credits
// loyalty points.  The cleaning-task insert is guarded, so a retried
// checkout never duplicates it.
func (h *FrontDeskHandler) CheckOutReservation(c echo.Context) error {
	uid, err := staffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return h.transition(c, booking.EventCheckOut,
		func(c echo.Context, tx *sql.Tx, res model.Reservation, effects []booking.SideEffect) (echo.Map, error) {
			ctx := c.Request().Context()
			if res.RoomID == nil {
				_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation has no room assigned"})
				return nil, errResponded
			}
			room, err := h.Rooms.LockByIDTx(ctx, tx, *res.RoomID)
			if err != nil {
				_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
				return nil, errResponded
			}
			roomType, err := h.RoomTypes.GetByID(ctx, res.RoomTypeID)
			if err != nil {
				_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
				return nil, errResponded
			}
			nightlyRate := room.NightlyRate(roomType)

			now := time.Now().UTC()
			late := booking.IsLateCheckout(now, res.CheckOutDate)
			var lateFee *decimal.Decimal
			if late {
				fee := pricing.LateCheckoutFee(nightlyRate)
				lateFee = &fee
			}

			for _, eff := range effects {
				switch eff {
				case booking.EffectRecordCheckout:
					if err := h.CheckIns.RecordCheckoutTx(ctx, tx, res.ID, now, lateFee, uid); err != nil {
						_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record checkout"})
						return nil, errResponded
					}
					if lateFee != nil {
						charge := &model.AdditionalCharge{
							ReservationID: res.ID,
							Description:   "Late checkout fee",
							Quantity:      1,
							UnitAmount:    *lateFee,
						}
						if err := h.Charges.CreateTx(ctx, tx, charge); err != nil {
							_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add late fee"})
							return nil, errResponded
						}
						if err := h.Reservations.UpdateTotalTx(ctx, tx, res.ID, res.TotalAmount.Add(*lateFee)); err != nil {
							_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update total"})
							return nil, errResponded
						}
					}
				case booking.EffectRoomMaintenance:
					if err := h.Rooms.UpdateStatusTx(ctx, tx, room.ID, model.RoomMaintenance); err != nil {
						_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
						return nil, errResponded
					}
				case booking.EffectCreateCleaningTask:
					if err := h.Housekeeping.CreateCheckoutTaskTx(ctx, tx, room.ID, res.ID); err != nil {
						_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create cleaning task"})
						return nil, errResponded
					}
				case booking.EffectCreditLoyalty:
					subtotal := nightlyRate.Mul(decimal.NewFromInt(int64(booking.Nights(res.CheckInDate, res.CheckOutDate))))
					if err := h.Guests.AddLoyaltyPointsTx(ctx, tx, res.GuestID, pricing.LoyaltyPoints(subtotal)); err != nil {
						_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to credit loyalty points"})
						return nil, errResponded
					}
				}
			}
			out := echo.Map{
				"checked_out_at":   now.Format(time.RFC3339),
				"is_late_checkout": late,
			}
			if lateFee != nil {
				out["late_checkout_fee"] = lateFee
			}
			return out, nil
		})
}

// CancelReservation handles POST /v1/reservations/:id/cancel.
// Permitted from PENDING or CONFIRMED.  The room row is not touched:
// its status can belong to a different stay, and the overlap query
// ignores CANCELLED rows so the dates are rebookable either way.
func (h *FrontDeskHandler) CancelReservation(c echo.Context) error {
	return h.transition(c, booking.EventCancel, nil)
}

// NoShowReservation handles POST /v1/reservations/:id/no-show.
func (h *FrontDeskHandler) NoShowReservation(c echo.Context) error {
	return h.transition(c, booking.EventNoShow, nil)
}

type assignRoomReq struct {
	RoomID uint64 `json:"room_id" validate:"required"`
}

// AssignRoom handles POST /v1/reservations/:id/assign-room.  A booking
// taken against a room type alone gets its concrete room here, any
// time before check-in.  The room is locked and the overlap check
// rerun exactly as at booking time, and the stay is repriced at the
// assigned room's rate.
func (h *FrontDeskHandler) AssignRoom(c echo.Context) error {
	resID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req assignRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.LockByIDTx(ctx, tx, resID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !res.Status.RoomAssignable() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room can no longer be assigned"})
	}
	if res.RoomID != nil && *res.RoomID == req.RoomID {
		return c.JSON(http.StatusOK, echo.Map{"reservation_id": res.ID, "room_id": req.RoomID})
	}
	room, err := h.Rooms.LockByIDTx(ctx, tx, req.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if room.RoomTypeID != res.RoomTypeID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room is not of the reserved type"})
	}
	overlap, err := h.Reservations.HasOverlapTx(ctx, tx, room.ID, res.CheckInDate, res.CheckOutDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}
	if overlap {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": repository.ErrRoomUnavailable.Error()})
	}
	roomType, err := h.RoomTypes.GetByID(ctx, res.RoomTypeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	charges, err := h.Charges.ListByReservation(ctx, resID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load charges"})
	}
	quote := pricing.BuildQuote(room.NightlyRate(roomType),
		booking.Nights(res.CheckInDate, res.CheckOutDate),
		res.VIPDiscount.IsPositive(), repository.PricingCharges(charges))
	if err := h.Reservations.AssignRoomTx(ctx, tx, resID, room.ID, quote.VIPDiscount, quote.GrandTotal); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to assign room"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"reservation_id": res.ID,
		"room_id":        room.ID,
		"quote":          quote,
	})
}

// GetReservation handles GET /v1/reservations/:id.  It returns the
// reservation plus its folio: charges, payments, the itemized quote
// rebuilt from current rows, the expected payment after discounts, and
// whether the stay is fully paid.
func (h *FrontDeskHandler) GetReservation(c echo.Context) error {
	resID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, resID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	charges, err := h.Charges.ListByReservation(ctx, resID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load charges"})
	}
	payments, err := h.Payments.ListByReservation(ctx, resID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payments"})
	}
	paid, vouchers, err := h.Payments.CompletedTotals(ctx, resID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payment totals"})
	}

	roomType, err := h.RoomTypes.GetByID(ctx, res.RoomTypeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	nightlyRate := roomType.BasePrice
	if res.RoomID != nil {
		room, err := h.Rooms.GetByID(ctx, *res.RoomID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		nightlyRate = room.NightlyRate(roomType)
	}
	quote := pricing.BuildQuote(nightlyRate,
		booking.Nights(res.CheckInDate, res.CheckOutDate),
		res.VIPDiscount.IsPositive(), repository.PricingCharges(charges))

	expected := pricing.ExpectedPayment(h.Discounts, res.TotalAmount, vouchers)
	return c.JSON(http.StatusOK, echo.Map{
		"reservation":             res,
		"charges":                 charges,
		"payments":                payments,
		"quote":                   quote,
		"grand_total":             res.TotalAmount,
		"expected_payment_amount": expected,
		"paid_total":              paid,
		"is_fully_paid":           pricing.IsFullyPaid(paid, expected),
	})
}

// ListReservations handles GET /v1/reservations?status=CONFIRMED.  It
// backs the arrivals and departures boards.
func (h *FrontDeskHandler) ListReservations(c echo.Context) error {
	status := booking.Status(c.QueryParam("status"))
	if !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or missing status"})
	}
	items, err := h.Reservations.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AddCharge handles POST /v1/reservations/:id/charges.  Charges added
// after booking raise the grand total immediately.
func (h *FrontDeskHandler) AddCharge(c echo.Context) error {
	resID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req struct {
		Description string `json:"description" validate:"required"`
		Quantity    int64  `json:"quantity" validate:"required,min=1"`
		UnitAmount  string `json:"unit_amount" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	unit, err := decimal.NewFromString(req.UnitAmount)
	if err != nil || unit.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit_amount"})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := h.Reservations.LockByIDTx(ctx, tx, resID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.Status.Terminal() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot add charges to a settled reservation"})
	}
	charge := &model.AdditionalCharge{
		ReservationID: resID,
		Description:   req.Description,
		Quantity:      req.Quantity,
		UnitAmount:    unit,
	}
	if err := h.Charges.CreateTx(ctx, tx, charge); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add charge"})
	}
	if err := h.Reservations.UpdateTotalTx(ctx, tx, resID, res.TotalAmount.Add(charge.UnitAmount.Mul(decimal.NewFromInt(charge.Quantity)))); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update total"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusCreated, echo.Map{"charge": charge})
}
