package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Masozee/ladapala-sub001/internal/model"
)

// CheckInRepo persists the one-to-one check-in record of a
// reservation.  Created at check-in, updated exactly once at checkout.
type CheckInRepo struct {
	db *sql.DB
}

// NewCheckInRepo returns a new CheckInRepo bound to the given database.
func NewCheckInRepo(db *sql.DB) *CheckInRepo { return &CheckInRepo{db: db} }

// UpsertCheckInTx records the actual check-in time.  The unique key on
// reservation_id makes a retried check-in update the existing row
// instead of duplicating it.
func (r *CheckInRepo) UpsertCheckInTx(ctx context.Context, tx *sql.Tx, reservationID uint64, at time.Time, deposit decimal.Decimal, staffID uint64) error {
	const q = `INSERT INTO check_ins (reservation_id, actual_check_in_at, deposit_collected, performed_by)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE actual_check_in_at = VALUES(actual_check_in_at),
	                                   deposit_collected  = VALUES(deposit_collected)`
	_, err := tx.ExecContext(ctx, q, reservationID, at, deposit, staffID)
	return err
}

// RecordCheckoutTx stamps the actual checkout time and the late fee
// (nil when the guest left before the cutoff).
func (r *CheckInRepo) RecordCheckoutTx(ctx context.Context, tx *sql.Tx, reservationID uint64, at time.Time, lateFee *decimal.Decimal, staffID uint64) error {
	var fee any
	if lateFee != nil {
		fee = *lateFee
	}
	const q = `UPDATE check_ins
	           SET actual_check_out_at = ?, late_checkout_fee = ?, checkout_recorded_by = ?
	           WHERE reservation_id = ?`
	res, err := tx.ExecContext(ctx, q, at, fee, staffID, reservationID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetByReservation returns the check-in record for a reservation.
func (r *CheckInRepo) GetByReservation(ctx context.Context, reservationID uint64) (model.CheckIn, error) {
	var ci model.CheckIn
	var out sql.NullTime
	var fee decimal.NullDecimal
	var recordedBy sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reservation_id, actual_check_in_at, actual_check_out_at,
		        deposit_collected, late_checkout_fee, performed_by, checkout_recorded_by
		 FROM check_ins WHERE reservation_id = ?`, reservationID).
		Scan(&ci.ID, &ci.ReservationID, &ci.ActualCheckInAt, &out,
			&ci.DepositCollected, &fee, &ci.PerformedBy, &recordedBy)
	if err != nil {
		return model.CheckIn{}, err
	}
	if out.Valid {
		t := out.Time
		ci.ActualCheckOutAt = &t
	}
	if fee.Valid {
		f := fee.Decimal
		ci.LateCheckoutFee = &f
	}
	if recordedBy.Valid {
		id := uint64(recordedBy.Int64)
		ci.CheckoutRecordedBy = &id
	}
	return ci, nil
}
