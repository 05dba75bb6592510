package repository

import (
	"context"
	"database/sql"

	"github.com/Masozee/ladapala-sub001/internal/model"
	"github.com/Masozee/ladapala-sub001/internal/pricing"
)

// ChargeRepo persists additional charges attached to reservations.
type ChargeRepo struct {
	db *sql.DB
}

// NewChargeRepo returns a new ChargeRepo bound to the given database.
func NewChargeRepo(db *sql.DB) *ChargeRepo { return &ChargeRepo{db: db} }

// CreateTx inserts a charge inside the caller's transaction, used by
// checkout to add the late checkout fee atomically with the
// transition.
func (r *ChargeRepo) CreateTx(ctx context.Context, tx *sql.Tx, c *model.AdditionalCharge) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO additional_charges (reservation_id, description, quantity, unit_amount)
		 VALUES (?, ?, ?, ?)`,
		c.ReservationID, c.Description, c.Quantity, c.UnitAmount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// ListByReservation returns a reservation's charges in insertion order.
func (r *ChargeRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]model.AdditionalCharge, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reservation_id, description, quantity, unit_amount, created_at
		 FROM additional_charges WHERE reservation_id = ? ORDER BY id`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AdditionalCharge, 0)
	for rows.Next() {
		var c model.AdditionalCharge
		if err := rows.Scan(&c.ID, &c.ReservationID, &c.Description,
			&c.Quantity, &c.UnitAmount, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// PricingCharges converts stored rows into the pricing package's
// charge values.
func PricingCharges(charges []model.AdditionalCharge) []pricing.Charge {
	out := make([]pricing.Charge, 0, len(charges))
	for _, c := range charges {
		out = append(out, pricing.Charge{
			Description: c.Description,
			Quantity:    c.Quantity,
			UnitAmount:  c.UnitAmount,
		})
	}
	return out
}
