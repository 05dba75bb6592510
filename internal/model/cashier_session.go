package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus enumerates a cashier session's lifecycle.  A session
// closes exactly once.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// ShiftType labels which shift a session covers.
type ShiftType string

const (
	ShiftMorning   ShiftType = "MORNING"
	ShiftAfternoon ShiftType = "AFTERNOON"
	ShiftNight     ShiftType = "NIGHT"
)

// Valid reports whether s is a known shift type.
func (s ShiftType) Valid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftNight:
		return true
	}
	return false
}

// CashierSession mirrors the `cashier_sessions` table.  At most one
// OPEN session may exist per cashier; the table enforces this with a
// unique key over (cashier_id, open_flag) where open_flag is a
// generated column that is 1 while OPEN and NULL otherwise, so the
// constraint holds under concurrent opens.
type CashierSession struct {
	ID           uint64           // cashier_sessions.id
	Reference    string           // cashier_sessions.reference (uuid)
	CashierID    uint64           // cashier_sessions.cashier_id (staff user)
	Branch       string           // cashier_sessions.branch
	Shift        ShiftType        // cashier_sessions.shift
	Status       SessionStatus    // cashier_sessions.status
	OpeningCash  decimal.Decimal  // cashier_sessions.opening_cash
	ExpectedCash *decimal.Decimal // cashier_sessions.expected_cash (set at close)
	ActualCash   *decimal.Decimal // cashier_sessions.actual_cash (operator-entered at close)
	Difference   *decimal.Decimal // cashier_sessions.cash_difference (set at close)
	Snapshot     []byte           // cashier_sessions.settlement_snapshot (JSON)
	Flagged      bool             // cashier_sessions.flagged (discrepancy over threshold)
	OpenedAt     time.Time        // cashier_sessions.opened_at
	ClosedAt     *time.Time       // cashier_sessions.closed_at (nullable)
}
