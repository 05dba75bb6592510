package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/Masozee/ladapala-sub001/internal/model"
)

// RoomRepo provides persistence for rooms.  Status flips that belong
// to a reservation transition run through the Tx variants inside the
// handler's transaction, so the room and the reservation always change
// together.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *RoomRepo) DB() *sql.DB { return r.db }

const roomCols = `id, number, floor, status, room_type_id, price, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var rm model.Room
	var price decimal.NullDecimal
	err := row.Scan(&rm.ID, &rm.Number, &rm.Floor, &rm.Status, &rm.RoomTypeID,
		&price, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return model.Room{}, err
	}
	if price.Valid {
		p := price.Decimal
		rm.Price = &p
	}
	return rm, nil
}

// GetByID returns a room by primary key.  sql.ErrNoRows when absent.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE id = ?`, id))
}

// GetByNumber returns a room by its unique room number.
func (r *RoomRepo) GetByNumber(ctx context.Context, number string) (model.Room, error) {
	return scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE number = ?`, number))
}

// LockByIDTx loads a room with a row lock held until the transaction
// ends.  The booking flow locks the room before running the overlap
// query so two concurrent bookings for the same room serialize instead
// of both passing the availability check.
func (r *RoomRepo) LockByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Room, error) {
	return scanRoom(tx.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE id = ? FOR UPDATE`, id))
}

// List returns all rooms ordered by floor then number, optionally
// filtered by status.
func (r *RoomRepo) List(ctx context.Context, status model.RoomStatus) ([]model.Room, error) {
	q := `SELECT ` + roomCols + ` FROM rooms`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY floor, number`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// Create inserts a room and returns its ID.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	var price any
	if rm.Price != nil {
		price = *rm.Price
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (number, floor, status, room_type_id, price) VALUES (?, ?, ?, ?, ?)`,
		rm.Number, rm.Floor, rm.Status, rm.RoomTypeID, price)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// UpdateStatus flips a room's status outside any reservation
// transition (manual maintenance flags, housekeeping completion).
func (r *RoomRepo) UpdateStatus(ctx context.Context, id uint64, status model.RoomStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET status = ? WHERE id = ?`, status, id)
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

// ReleaseAfterCleaning returns a room to AVAILABLE only while it still
// sits in MAINTENANCE, and reports whether the flip happened.  On a
// same-day turnover the next guest can be checked in before the
// cleaning task closes; the OCCUPIED room is then left untouched.
func (r *RoomRepo) ReleaseAfterCleaning(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET status = ? WHERE id = ? AND status = ?`,
		model.RoomAvailable, id, model.RoomMaintenance)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateStatusTx flips a room's status inside a reservation
// transition's transaction.
func (r *RoomRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.RoomStatus) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE rooms SET status = ? WHERE id = ?`, status, id)
	return err
}
