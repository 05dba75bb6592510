package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Masozee/ladapala-sub001/internal/model"
	"github.com/Masozee/ladapala-sub001/internal/repository"
	"github.com/Masozee/ladapala-sub001/internal/settlement"
)

// CashierHandler implements opening and closing cashier sessions.  The
// one-open-session rule lives in the database schema; closing runs in
// a transaction that locks the session, checks that every reservation
// paid during it is settled, and persists the settlement snapshot.
type CashierHandler struct {
	Sessions     *repository.CashierSessionRepo
	Payments     *repository.PaymentRepo
	Reservations *repository.ReservationRepo
}

// NewCashierHandler constructs a CashierHandler.  All dependencies
// must be non-nil.
func NewCashierHandler(sessions *repository.CashierSessionRepo, payments *repository.PaymentRepo,
	reservations *repository.ReservationRepo) *CashierHandler {
	if sessions == nil || payments == nil || reservations == nil {
		panic("nil repository passed to NewCashierHandler")
	}
	return &CashierHandler{Sessions: sessions, Payments: payments, Reservations: reservations}
}

type openSessionReq struct {
	Branch      string `json:"branch" validate:"required"`
	Shift       string `json:"shift" validate:"required"`
	OpeningCash string `json:"opening_cash" validate:"required"`
}

// OpenSession handles POST /v1/cashier-sessions.  A cashier with a
// session still OPEN gets a 400; the database enforces the rule, so
// concurrent opens cannot both succeed.
func (h *CashierHandler) OpenSession(c echo.Context) error {
	uid, err := staffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req openSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	shift := model.ShiftType(req.Shift)
	if !shift.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shift"})
	}
	opening, err := decimal.NewFromString(req.OpeningCash)
	if err != nil || opening.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid opening_cash"})
	}

	s := &model.CashierSession{
		Reference:   uuid.NewString(),
		CashierID:   uid,
		Branch:      req.Branch,
		Shift:       shift,
		OpeningCash: opening,
	}
	if err := h.Sessions.Open(c.Request().Context(), s); err != nil {
		if errors.Is(err, repository.ErrSessionAlreadyOpen) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to open session"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"session": s})
}

type closeSessionReq struct {
	ActualCash string `json:"actual_cash" validate:"required"`
}

// CloseSession handles POST /v1/cashier-sessions/:id/close.  It
// refuses to close while any reservation paid in the session is not
// yet settled, returning the full list of offenders.  A cash
// discrepancy beyond the threshold is flagged and logged but does not
// block the close.
func (h *CashierHandler) CloseSession(c echo.Context) error {
	uid, err := staffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var req closeSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	actual, err := decimal.NewFromString(req.ActualCash)
	if err != nil || actual.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid actual_cash"})
	}

	ctx := c.Request().Context()
	tx, err := h.Sessions.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	sess, err := h.Sessions.LockOpenTx(ctx, tx, sessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "session already closed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if sess.CashierID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	unsettled, err := h.Reservations.ListUnsettledBySessionTx(ctx, tx, sessID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check open orders"})
	}
	if len(unsettled) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":     "session has unsettled reservations",
			"unsettled": unsettled,
		})
	}

	lines, err := h.Payments.SettlementLinesTx(ctx, tx, sessID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payments"})
	}
	st := settlement.Calculate(sess.OpeningCash, actual, lines)
	snapshot, err := json.Marshal(st)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to encode settlement"})
	}
	now := time.Now().UTC()
	if err := h.Sessions.CloseTx(ctx, tx, sessID, st, snapshot, now); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "session already closed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to close session"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	if st.Flagged {
		logrus.WithFields(logrus.Fields{
			"session_id": sessID,
			"cashier_id": uid,
			"difference": st.Difference.String(),
		}).Warn("cash discrepancy over threshold")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"session_id": sessID,
		"closed_at":  now.Format(time.RFC3339),
		"settlement": st,
	})
}

// GetSession handles GET /v1/cashier-sessions/:id.
func (h *CashierHandler) GetSession(c echo.Context) error {
	sessID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	sess, err := h.Sessions.GetByID(c.Request().Context(), sessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"session": sess})
}
