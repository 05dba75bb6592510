package repository

import (
	"context"
	"database/sql"

	"github.com/Masozee/ladapala-sub001/internal/model"
)

// RoomTypeRepo provides persistence for room types.  Reference data:
// created once, read by pricing whenever a reservation has no room
// assigned yet.
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo returns a new RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

// GetByID returns a room type by primary key.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (model.RoomType, error) {
	var rt model.RoomType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, base_price, max_occupancy, amenities, created_at
		 FROM room_types WHERE id = ?`, id).
		Scan(&rt.ID, &rt.Name, &rt.BasePrice, &rt.MaxOccupancy, &rt.Amenities, &rt.CreatedAt)
	return rt, err
}

// List returns all room types ordered by base price.
func (r *RoomTypeRepo) List(ctx context.Context) ([]model.RoomType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, base_price, max_occupancy, amenities, created_at
		 FROM room_types ORDER BY base_price`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RoomType, 0)
	for rows.Next() {
		var rt model.RoomType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.BasePrice, &rt.MaxOccupancy,
			&rt.Amenities, &rt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Create inserts a room type and returns its ID.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO room_types (name, base_price, max_occupancy, amenities) VALUES (?, ?, ?, ?)`,
		rt.Name, rt.BasePrice, rt.MaxOccupancy, rt.Amenities)
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
	rt.ID = uint64(id)
	return nil
}
