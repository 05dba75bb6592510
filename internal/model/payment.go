package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how a payment was taken.  Only CASH moves
// money through the drawer and counts toward a session's expected cash.
type PaymentMethod string

const (
	PayCash          PaymentMethod = "CASH"
	PayCard          PaymentMethod = "CARD"
	PayCreditCard    PaymentMethod = "CREDIT_CARD"
	PayMobile        PaymentMethod = "MOBILE"
	PayDigitalWallet PaymentMethod = "DIGITAL_WALLET"
	PayBankTransfer  PaymentMethod = "BANK_TRANSFER"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayCard, PayCreditCard, PayMobile, PayDigitalWallet, PayBankTransfer:
		return true
	}
	return false
}

// PaymentStatus enumerates a payment's lifecycle.  A COMPLETED payment
// is immutable except for the refund flow.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Payment mirrors the `payments` table.  SessionID associates the
// payment with the cashier session it was taken in; the session does
// not own the row (no cascade).
type Payment struct {
	ID            uint64          // payments.id
	ReservationID uint64          // payments.reservation_id
	SessionID     *uint64         // payments.session_id (nullable)
	Method        PaymentMethod   // payments.method
	Status        PaymentStatus   // payments.status
	Amount        decimal.Decimal // payments.amount
	VoucherAmount decimal.Decimal // payments.voucher_amount (discount recorded on the payment)
	Reference     string          // payments.reference (external ref / receipt no)
	CompletedAt   *time.Time      // payments.completed_at (nullable)
	CreatedBy     uint64          // payments.created_by (staff user)
	CreatedAt     time.Time       // payments.created_at
}
