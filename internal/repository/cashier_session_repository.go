package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Masozee/ladapala-sub001/internal/model"
	"github.com/Masozee/ladapala-sub001/internal/settlement"
)

// CashierSessionRepo provides persistence for cashier sessions.  The
// one-open-session-per-cashier rule is a database unique key, not a
// pre-check, so two concurrent opens cannot both succeed.
type CashierSessionRepo struct {
	db *sql.DB
}

// NewCashierSessionRepo returns a new CashierSessionRepo bound to the given database.
func NewCashierSessionRepo(db *sql.DB) *CashierSessionRepo { return &CashierSessionRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *CashierSessionRepo) DB() *sql.DB { return r.db }

const sessionCols = `id, reference, cashier_id, branch, shift, status, opening_cash,
	expected_cash, actual_cash, cash_difference, settlement_snapshot, flagged, opened_at, closed_at`

func scanSession(row interface{ Scan(...any) error }) (model.CashierSession, error) {
	var s model.CashierSession
	var expected, actual, diff decimal.NullDecimal
	var snapshot sql.NullString
	var closedAt sql.NullTime
	err := row.Scan(&s.ID, &s.Reference, &s.CashierID, &s.Branch, &s.Shift, &s.Status,
		&s.OpeningCash, &expected, &actual, &diff, &snapshot, &s.Flagged, &s.OpenedAt, &closedAt)
	if err != nil {
		return model.CashierSession{}, err
	}
	if expected.Valid {
		v := expected.Decimal
		s.ExpectedCash = &v
	}
	if actual.Valid {
		v := actual.Decimal
		s.ActualCash = &v
	}
	if diff.Valid {
		v := diff.Decimal
		s.Difference = &v
	}
	if snapshot.Valid {
		s.Snapshot = []byte(snapshot.String)
	}
	if closedAt.Valid {
		t := closedAt.Time
		s.ClosedAt = &t
	}
	return s, nil
}

// Open inserts an OPEN session for the cashier.  The unique key on
// (cashier_id, open_flag) rejects a second open with a duplicate-key
// error, mapped to ErrSessionAlreadyOpen.
func (r *CashierSessionRepo) Open(ctx context.Context, s *model.CashierSession) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cashier_sessions (reference, cashier_id, branch, shift, status, opening_cash)
		 VALUES (?, ?, ?, ?, 'OPEN', ?)`,
		s.Reference, s.CashierID, s.Branch, s.Shift, s.OpeningCash)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSessionAlreadyOpen
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.Status = model.SessionOpen
	return nil
}

// GetByID returns a session by primary key.
func (r *CashierSessionRepo) GetByID(ctx context.Context, id uint64) (model.CashierSession, error) {
	return scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionCols+` FROM cashier_sessions WHERE id = ?`, id))
}

// GetOpenByCashier returns the cashier's OPEN session if one exists.
func (r *CashierSessionRepo) GetOpenByCashier(ctx context.Context, cashierID uint64) (model.CashierSession, error) {
	return scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionCols+` FROM cashier_sessions WHERE cashier_id = ? AND status = 'OPEN'`,
		cashierID))
}

// LockOpenTx loads a session FOR UPDATE and verifies it is still OPEN.
// Closing happens exactly once: a concurrent close blocks here and
// then sees CLOSED.
func (r *CashierSessionRepo) LockOpenTx(ctx context.Context, tx *sql.Tx, id uint64) (model.CashierSession, error) {
	s, err := scanSession(tx.QueryRowContext(ctx,
		`SELECT `+sessionCols+` FROM cashier_sessions WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		return model.CashierSession{}, err
	}
	if s.Status != model.SessionOpen {
		return model.CashierSession{}, ErrConflict
	}
	return s, nil
}

// CloseTx persists the settlement outcome and marks the session
// CLOSED.  snapshot is the JSON-encoded settlement.Settlement.
func (r *CashierSessionRepo) CloseTx(ctx context.Context, tx *sql.Tx, id uint64, st settlement.Settlement, snapshot []byte, at time.Time) error {
	const q = `UPDATE cashier_sessions
	           SET status = 'CLOSED', expected_cash = ?, actual_cash = ?, cash_difference = ?,
	               settlement_snapshot = ?, flagged = ?, closed_at = ?
	           WHERE id = ? AND status = 'OPEN'`
	res, err := tx.ExecContext(ctx, q,
		st.ExpectedCash, st.ActualCash, st.Difference, snapshot, st.Flagged, at, id)
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
