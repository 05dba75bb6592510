// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentCompletedEvent is published when a payment is marked COMPLETED.
// It carries enough for the invoice sender to build the guest's receipt
// without querying the primary database.
type PaymentCompletedEvent struct {
	PaymentID         uint64 `json:"payment_id"`
	ReservationID     uint64 `json:"reservation_id"`
	ReservationNumber string `json:"reservation_number"`
	GuestID           uint64 `json:"guest_id"`
	GuestEmail        string `json:"guest_email"`
	Method            string `json:"method"`
	Amount            string `json:"amount"`
	CompletedAt       string `json:"completed_at"`
}
