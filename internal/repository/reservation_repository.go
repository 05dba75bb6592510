package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Masozee/ladapala-sub001/internal/booking"
	"github.com/Masozee/ladapala-sub001/internal/model"
)

// ReservationRepo provides persistence for reservations and their
// one-to-one check-in records.  The availability query and the insert
// both run inside the caller's transaction, after the room row has
// been locked, so overlapping bookings cannot slip past each other.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationCols = `id, number, guest_id, room_id, room_type_id,
	check_in_date, check_out_date, adults, children, status,
	vip_discount, total_amount, special_requests, created_by, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var res model.Reservation
	var roomID sql.NullInt64
	err := row.Scan(&res.ID, &res.Number, &res.GuestID, &roomID, &res.RoomTypeID,
		&res.CheckInDate, &res.CheckOutDate, &res.Adults, &res.Children, &res.Status,
		&res.VIPDiscount, &res.TotalAmount, &res.SpecialRequests, &res.CreatedBy,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	if roomID.Valid {
		id := uint64(roomID.Int64)
		res.RoomID = &id
	}
	return res, nil
}

// HasOverlapTx reports whether a non-cancelled reservation for the
// room overlaps [checkIn, checkOut).  CANCELLED and NO_SHOW rows are
// excluded so their dates can be rebooked.  Runs inside the booking
// transaction with the room row already locked.
func (r *ReservationRepo) HasOverlapTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	const q = `SELECT EXISTS (
	               SELECT 1 FROM reservations
	               WHERE room_id = ?
	                 AND status NOT IN ('CANCELLED', 'NO_SHOW')
	                 AND check_in_date < ?
	                 AND check_out_date > ?)`
	var exists bool
	err := tx.QueryRowContext(ctx, q, roomID, checkOut, checkIn).Scan(&exists)
	return exists, err
}

// CreateTx inserts a reservation within the caller's transaction and
// populates the generated ID and timestamps on the record.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	var roomID any
	if res.RoomID != nil {
		roomID = *res.RoomID
	}
	const q = `INSERT INTO reservations
	           (number, guest_id, room_id, room_type_id, check_in_date, check_out_date,
	            adults, children, status, vip_discount, total_amount, special_requests, created_by)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.Number, res.GuestID, roomID, res.RoomTypeID, res.CheckInDate, res.CheckOutDate,
		res.Adults, res.Children, res.Status, res.VIPDiscount, res.TotalAmount,
		res.SpecialRequests, res.CreatedBy)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// GetByID returns a reservation by primary key.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	return scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id))
}

// LockByIDTx loads a reservation with a row lock so a status
// transition reads and writes the status atomically.  Retrying a
// failed transition therefore cannot double-apply side effects.
func (r *ReservationRepo) LockByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	return scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ? FOR UPDATE`, id))
}

// UpdateStatusTx writes the status decided by booking.Transition.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status booking.Status) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	return err
}

// AssignRoomTx sets the concrete room on a reservation together with
// the repriced discount and total.  Runs inside the caller's
// transaction with both the reservation and the room row locked.
func (r *ReservationRepo) AssignRoomTx(ctx context.Context, tx *sql.Tx, id, roomID uint64, vipDiscount, total decimal.Decimal) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reservations SET room_id = ?, vip_discount = ?, total_amount = ? WHERE id = ?`,
		roomID, vipDiscount, total, id)
	return err
}

// UpdateTotalTx rewrites the stored grand total, used when late
// checkout fees or additional charges reprice the stay.
func (r *ReservationRepo) UpdateTotalTx(ctx context.Context, tx *sql.Tx, id uint64, total decimal.Decimal) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reservations SET total_amount = ? WHERE id = ?`, total, id)
	return err
}

// ListByGuest returns a guest's reservations, newest first.
func (r *ReservationRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE guest_id = ? ORDER BY created_at DESC`,
		guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListByStatus returns reservations in a given status, oldest first,
// for the front-desk arrivals/departures boards.
func (r *ReservationRepo) ListByStatus(ctx context.Context, status booking.Status) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE status = ? ORDER BY check_in_date`,
		status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// UnsettledItem identifies a reservation blocking a session close.
type UnsettledItem struct {
	ReservationID uint64         `json:"reservation_id"`
	Number        string         `json:"number"`
	Status        booking.Status `json:"status"`
}

// ListUnsettledBySessionTx returns every reservation that has a
// payment in the session and is not settled per booking.Settled.  A
// non-empty result refuses the close.
func (r *ReservationRepo) ListUnsettledBySessionTx(ctx context.Context, tx *sql.Tx, sessionID uint64) ([]UnsettledItem, error) {
	settled := booking.SettledStatuses()
	ph := make([]string, len(settled))
	args := []any{sessionID}
	for i, s := range settled {
		ph[i] = "?"
		args = append(args, string(s))
	}
	q := `SELECT DISTINCT res.id, res.number, res.status
	      FROM payments p
	      JOIN reservations res ON res.id = p.reservation_id
	      WHERE p.session_id = ?
	        AND res.status NOT IN (` + strings.Join(ph, ", ") + `)
	      ORDER BY res.id`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]UnsettledItem, 0)
	for rows.Next() {
		var it UnsettledItem
		if err := rows.Scan(&it.ReservationID, &it.Number, &it.Status); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
