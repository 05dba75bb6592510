package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Masozee/ladapala-sub001/internal/model"
	"github.com/Masozee/ladapala-sub001/internal/settlement"
)

// PaymentRepo provides persistence for payments.  A payment is
// associated with the cashier session it was taken in; the session
// groups payments for settlement but does not own them.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentCols = `id, reservation_id, session_id, method, status, amount,
	voucher_amount, reference, completed_at, created_by, created_at`

func scanPayment(row interface{ Scan(...any) error }) (model.Payment, error) {
	var p model.Payment
	var sessionID sql.NullInt64
	var completedAt sql.NullTime
	err := row.Scan(&p.ID, &p.ReservationID, &sessionID, &p.Method, &p.Status,
		&p.Amount, &p.VoucherAmount, &p.Reference, &completedAt, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return model.Payment{}, err
	}
	if sessionID.Valid {
		id := uint64(sessionID.Int64)
		p.SessionID = &id
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	return p, nil
}

// Create inserts a PENDING payment and returns its ID.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	var sessionID any
	if p.SessionID != nil {
		sessionID = *p.SessionID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (reservation_id, session_id, method, status, amount, voucher_amount, reference, created_by)
		 VALUES (?, ?, ?, 'PENDING', ?, ?, ?, ?)`,
		p.ReservationID, sessionID, p.Method, p.Amount, p.VoucherAmount, p.Reference, p.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	p.Status = model.PaymentPending
	return nil
}

// GetByID returns a payment by primary key.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (model.Payment, error) {
	return scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE id = ?`, id))
}

// Complete marks a PENDING payment COMPLETED and stamps the time.  The
// guarded WHERE makes completion idempotent-safe: a second attempt
// affects zero rows and reports ErrConflict instead of re-completing.
func (r *PaymentRepo) Complete(ctx context.Context, id uint64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = 'COMPLETED', completed_at = ? WHERE id = ? AND status = 'PENDING'`,
		at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// Refund marks a COMPLETED payment REFUNDED.  Refund is the only
// mutation allowed on a completed payment.
func (r *PaymentRepo) Refund(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = 'REFUNDED' WHERE id = ? AND status = 'COMPLETED'`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// ListByReservation returns a reservation's payments in insertion order.
func (r *PaymentRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE reservation_id = ? ORDER BY id`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CompletedTotals returns the sum of COMPLETED payment amounts and of
// their recorded voucher amounts for a reservation.  Feeds the
// fully-paid check: completed total vs. expected payment.
func (r *PaymentRepo) CompletedTotals(ctx context.Context, reservationID uint64) (paid, vouchers decimal.Decimal, err error) {
	const q = `SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(voucher_amount), 0)
	           FROM payments WHERE reservation_id = ? AND status = 'COMPLETED'`
	err = r.db.QueryRowContext(ctx, q, reservationID).Scan(&paid, &vouchers)
	return paid, vouchers, err
}

// SettlementLinesTx loads the COMPLETED payments of a session as
// settlement input, inside the closing transaction.
func (r *PaymentRepo) SettlementLinesTx(ctx context.Context, tx *sql.Tx, sessionID uint64) ([]settlement.PaymentLine, error) {
	const q = `SELECT method, amount FROM payments
	           WHERE session_id = ? AND status = 'COMPLETED' ORDER BY id`
	rows, err := tx.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]settlement.PaymentLine, 0)
	for rows.Next() {
		var l settlement.PaymentLine
		if err := rows.Scan(&l.Method, &l.Amount); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
