package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masozee/ladapala-sub001/internal/model"
)

// GuestRepo provides persistence for guests.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestCols = `id, full_name, email, phone, id_number, is_vip, loyalty_points, created_at, updated_at`

func scanGuest(row interface{ Scan(...any) error }) (model.Guest, error) {
	var g model.Guest
	err := row.Scan(&g.ID, &g.FullName, &g.Email, &g.Phone, &g.IDNumber,
		&g.VIP, &g.LoyaltyPoints, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// GetByID returns a guest by primary key.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (model.Guest, error) {
	return scanGuest(r.db.QueryRowContext(ctx,
		`SELECT `+guestCols+` FROM guests WHERE id = ?`, id))
}

// GetByEmail returns a guest by normalized email.
func (r *GuestRepo) GetByEmail(ctx context.Context, email string) (model.Guest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanGuest(r.db.QueryRowContext(ctx,
		`SELECT `+guestCols+` FROM guests WHERE email = ?`, email))
}

// Search returns guests whose name or email matches the query,
// newest first, capped at 50 rows.
func (r *GuestRepo) Search(ctx context.Context, q string) ([]model.Guest, error) {
	like := "%" + strings.TrimSpace(q) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+guestCols+` FROM guests
		 WHERE full_name LIKE ? OR email LIKE ?
		 ORDER BY created_at DESC LIMIT 50`, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Create inserts a guest and returns its ID.  Email is normalized to
// lower case; a duplicate email maps to ErrConflict.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO guests (full_name, email, phone, id_number, is_vip) VALUES (?, ?, ?, ?, ?)`,
		g.FullName, g.Email, g.Phone, g.IDNumber, g.VIP)
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
	g.ID = uint64(id)
	return nil
}

// SetVIP flips the VIP flag.  Already-priced reservations are not
// recalculated; the discount is captured at booking time.
func (r *GuestRepo) SetVIP(ctx context.Context, id uint64, vip bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE guests SET is_vip = ? WHERE id = ?`, vip, id)
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

// AddLoyaltyPointsTx credits points to a guest inside the checkout
// transaction.
func (r *GuestRepo) AddLoyaltyPointsTx(ctx context.Context, tx *sql.Tx, id uint64, points int) error {
	if points <= 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE guests SET loyalty_points = loyalty_points + ? WHERE id = ?`, points, id)
	return err
}
