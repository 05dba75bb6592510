package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Masozee/ladapala-sub001/internal/booking"
	"github.com/Masozee/ladapala-sub001/internal/model"
	"github.com/Masozee/ladapala-sub001/internal/queue"
	"github.com/Masozee/ladapala-sub001/internal/repository"
	publisher "github.com/Masozee/ladapala-sub001/internal/service"
)

// PaymentHandler implements payment creation, completion and refunds.
// Completing a payment publishes a payment.completed event for the
// invoice sender; a publish failure is logged and reported but never
// rolls back the already-completed payment.
type PaymentHandler struct {
	Payments     *repository.PaymentRepo
	Reservations *repository.ReservationRepo
	Guests       *repository.GuestRepo
	Sessions     *repository.CashierSessionRepo
}

// NewPaymentHandler constructs a PaymentHandler.  All dependencies
// must be non-nil.
func NewPaymentHandler(payments *repository.PaymentRepo, reservations *repository.ReservationRepo,
	guests *repository.GuestRepo, sessions *repository.CashierSessionRepo) *PaymentHandler {
	if payments == nil || reservations == nil || guests == nil || sessions == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: payments, Reservations: reservations, Guests: guests, Sessions: sessions}
}

type createPaymentReq struct {
	ReservationID uint64 `json:"reservation_id" validate:"required"`
	Method        string `json:"method" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	VoucherAmount string `json:"voucher_amount"`
	Reference     string `json:"reference"`
}

// CreatePayment handles POST /v1/payments.  The payment starts
// PENDING and, when the cashier has an open session, is attributed to
// it so it lands in that session's settlement.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	uid, err := staffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	method := model.PaymentMethod(req.Method)
	if !method.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment method"})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid amount"})
	}
	voucher := decimal.Zero
	if req.VoucherAmount != "" {
		voucher, err = decimal.NewFromString(req.VoucherAmount)
		if err != nil || voucher.IsNegative() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid voucher_amount"})
		}
	}

	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.Status == booking.StatusCancelled || res.Status == booking.StatusNoShow {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation is not payable"})
	}

	p := &model.Payment{
		ReservationID: res.ID,
		Method:        method,
		Amount:        amount,
		VoucherAmount: voucher,
		Reference:     req.Reference,
		CreatedBy:     uid,
	}
	// attribute to the cashier's open session when there is one
	if sess, err := h.Sessions.GetOpenByCashier(ctx, uid); err == nil {
		p.SessionID = &sess.ID
	} else if !errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Payments.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create payment"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"payment": p})
}

// CompletePayment handles POST /v1/payments/:id/complete.  Completion
// is guarded at the database so retrying cannot complete twice.  The
// payment.completed event is published after commit; on failure the
// payment stays COMPLETED and the failure is only reported.
func (h *PaymentHandler) CompletePayment(c echo.Context) error {
	payID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	ctx := c.Request().Context()
	now := time.Now().UTC()
	if err := h.Payments.Complete(ctx, payID, now); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment is not pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to complete payment"})
	}

	p, err := h.Payments.GetByID(ctx, payID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payment"})
	}
	res, err := h.Reservations.GetByID(ctx, p.ReservationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	guest, err := h.Guests.GetByID(ctx, res.GuestID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load guest"})
	}

	ev := queue.PaymentCompletedEvent{
		PaymentID:         p.ID,
		ReservationID:     res.ID,
		ReservationNumber: res.Number,
		GuestID:           guest.ID,
		GuestEmail:        guest.Email,
		Method:            string(p.Method),
		Amount:            p.Amount.String(),
		CompletedAt:       now.Format(time.RFC3339),
	}
	published := true
	if err := publisher.PublishPaymentCompleted(ctx, ev); err != nil {
		// the payment stays COMPLETED; the invoice can be resent later
		logrus.WithError(err).WithField("payment_id", p.ID).
			Warn("payment.completed publish failed")
		published = false
	}
	return c.JSON(http.StatusOK, echo.Map{
		"payment":         p,
		"event_published": published,
	})
}

// RefundPayment handles POST /v1/payments/:id/refund.
func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	payID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	if err := h.Payments.Refund(c.Request().Context(), payID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "only completed payments can be refunded"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to refund payment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"payment_id": payID, "status": model.PaymentRefunded})
}
