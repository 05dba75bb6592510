package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masozee/ladapala-sub001/internal/model"
)

// HousekeepingRepo provides persistence for housekeeping tasks.
type HousekeepingRepo struct {
	db *sql.DB
}

// NewHousekeepingRepo returns a new HousekeepingRepo bound to the given database.
func NewHousekeepingRepo(db *sql.DB) *HousekeepingRepo { return &HousekeepingRepo{db: db} }

const taskCols = `id, room_id, reservation_id, complaint_ref, type, status, priority,
	notes, completed_by, created_at, completed_at`

func scanTask(row interface{ Scan(...any) error }) (model.HousekeepingTask, error) {
	var t model.HousekeepingTask
	var resID, completedBy sql.NullInt64
	var complaintRef sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(&t.ID, &t.RoomID, &resID, &complaintRef, &t.Type, &t.Status,
		&t.Priority, &t.Notes, &completedBy, &t.CreatedAt, &completedAt)
	if err != nil {
		return model.HousekeepingTask{}, err
	}
	if resID.Valid {
		id := uint64(resID.Int64)
		t.ReservationID = &id
	}
	if complaintRef.Valid {
		ref := complaintRef.String
		t.ComplaintRef = &ref
	}
	if completedBy.Valid {
		id := uint64(completedBy.Int64)
		t.CompletedBy = &id
	}
	if completedAt.Valid {
		at := completedAt.Time
		t.CompletedAt = &at
	}
	return t, nil
}

// CreateCheckoutTaskTx creates the CHECKOUT_CLEANING task for a
// reservation inside the checkout transaction.  The INSERT ... SELECT
// guard keeps the operation idempotent: a retried checkout finds the
// existing task and inserts nothing, so exactly one task exists per
// checkout.
func (r *HousekeepingRepo) CreateCheckoutTaskTx(ctx context.Context, tx *sql.Tx, roomID, reservationID uint64) error {
	const q = `INSERT INTO housekeeping_tasks (room_id, reservation_id, type, status, priority, notes)
	           SELECT ?, ?, 'CHECKOUT_CLEANING', 'OPEN', 1, ''
	           WHERE NOT EXISTS (
	               SELECT 1 FROM housekeeping_tasks
	               WHERE reservation_id = ? AND type = 'CHECKOUT_CLEANING')`
	_, err := tx.ExecContext(ctx, q, roomID, reservationID, reservationID)
	return err
}

// CreateComplaintTask creates a task originating from a guest
// complaint.  The unique key on complaint_ref guarantees a complaint
// never spawns two tasks; a duplicate maps to ErrDuplicateTask.
func (r *HousekeepingRepo) CreateComplaintTask(ctx context.Context, t *model.HousekeepingTask) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO housekeeping_tasks (room_id, complaint_ref, type, status, priority, notes)
		 VALUES (?, ?, ?, 'OPEN', ?, ?)`,
		t.RoomID, t.ComplaintRef, t.Type, t.Priority, t.Notes)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateTask
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	t.Status = model.TaskOpen
	return nil
}

// ListOpen returns tasks not yet DONE, most urgent first.
func (r *HousekeepingRepo) ListOpen(ctx context.Context) ([]model.HousekeepingTask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskCols+` FROM housekeeping_tasks
		 WHERE status <> 'DONE' ORDER BY priority DESC, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.HousekeepingTask, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Complete marks a task DONE and stamps who finished it and when.
func (r *HousekeepingRepo) Complete(ctx context.Context, id, staffID uint64, at time.Time) (model.HousekeepingTask, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE housekeeping_tasks SET status = 'DONE', completed_by = ?, completed_at = ?
		 WHERE id = ? AND status <> 'DONE'`, staffID, at, id)
	if err != nil {
		return model.HousekeepingTask{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.HousekeepingTask{}, err
	}
	if n == 0 {
		return model.HousekeepingTask{}, ErrConflict
	}
	return scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskCols+` FROM housekeeping_tasks WHERE id = ?`, id))
}
