package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Masozee/ladapala-sub001/internal/booking"
)

// Reservation mirrors the `reservations` table.  Invariants: the stay
// is a half-open interval (check_out_date > check_in_date), and no two
// non-cancelled reservations for the same room may overlap.  Status
// changes go through booking.Transition; nothing writes the column
// directly.
//
// Fields:
//  ID              – primary key identifier.
//  Number          – unique human-facing reservation number.
//  GuestID         – guest the stay belongs to.
//  RoomID          – assigned room (nullable until assignment).
//  RoomTypeID      – requested room type.
//  CheckInDate     – first night, midnight UTC.
//  CheckOutDate    – departure date, midnight UTC (exclusive).
//  Adults          – adult headcount.
//  Children        – child headcount.
//  Status          – booking.Status value.
//  VIPDiscount     – pre-tax discount captured at booking time.
//  TotalAmount     – grand total including tax and charges.
//  SpecialRequests – free text from the guest.
//  CreatedBy       – staff user who created the booking.
type Reservation struct {
	ID              uint64          // reservations.id
	Number          string          // reservations.number
	GuestID         uint64          // reservations.guest_id
	RoomID          *uint64         // reservations.room_id (nullable)
	RoomTypeID      uint64          // reservations.room_type_id
	CheckInDate     time.Time       // reservations.check_in_date
	CheckOutDate    time.Time       // reservations.check_out_date
	Adults          int             // reservations.adults
	Children        int             // reservations.children
	Status          booking.Status  // reservations.status
	VIPDiscount     decimal.Decimal // reservations.vip_discount
	TotalAmount     decimal.Decimal // reservations.total_amount
	SpecialRequests string          // reservations.special_requests
	CreatedBy       uint64          // reservations.created_by (staff user)
	CreatedAt       time.Time       // reservations.created_at
	UpdatedAt       time.Time       // reservations.updated_at
}

// AdditionalCharge mirrors the `additional_charges` table: ad-hoc
// charges (minibar, laundry, late checkout) priced into the grand
// total as quantity × unit amount.
type AdditionalCharge struct {
	ID            uint64          // additional_charges.id
	ReservationID uint64          // additional_charges.reservation_id
	Description   string          // additional_charges.description
	Quantity      int64           // additional_charges.quantity
	UnitAmount    decimal.Decimal // additional_charges.unit_amount
	CreatedAt     time.Time       // additional_charges.created_at
}

// CheckIn mirrors the `check_ins` table.  One-to-one with its
// reservation (cascade delete); created at check-in and updated once
// at checkout.
type CheckIn struct {
	ID                 uint64           // check_ins.id
	ReservationID      uint64           // check_ins.reservation_id (unique)
	ActualCheckInAt    time.Time        // check_ins.actual_check_in_at
	ActualCheckOutAt   *time.Time       // check_ins.actual_check_out_at (nullable)
	DepositCollected   decimal.Decimal  // check_ins.deposit_collected
	LateCheckoutFee    *decimal.Decimal // check_ins.late_checkout_fee (nullable)
	PerformedBy        uint64           // check_ins.performed_by (staff user)
	CheckoutRecordedBy *uint64          // check_ins.checkout_recorded_by (nullable)
}
