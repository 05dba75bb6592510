// Package booking holds the pure domain rules of the reservation
// lifecycle: the status machine, the date-range availability predicate
// and the late-checkout cutoff.  Nothing in this package touches the
// database; repositories and handlers call into it and apply the
// returned side effects themselves.
package booking

import "fmt"

// Status enumerates the states a reservation can be in.  CHECKED_OUT,
// CANCELLED and NO_SHOW are terminal.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusCheckedIn,
	StatusCheckedOut, StatusCancelled, StatusNoShow,
}

// Valid reports whether s is one of the known reservation statuses.
func (s Status) Valid() bool {
	for _, k := range allStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Settled reports whether s counts as settled for cashier-session
// closing purposes.  A session may only close when every reservation
// paid during it is settled.
func (s Status) Settled() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// SettledStatuses lists every status Settled reports true for.
// Queries that filter on settled reservations build their IN clause
// from this list rather than repeating it.
func SettledStatuses() []Status {
	out := make([]Status, 0, 2)
	for _, s := range allStatuses {
		if s.Settled() {
			out = append(out, s)
		}
	}
	return out
}

// RoomAssignable reports whether a concrete room may still be assigned
// or changed in status s.  Once the guest checks in the room is fixed.
func (s Status) RoomAssignable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Event names a requested transition on a reservation.
type Event string

const (
	EventConfirm  Event = "CONFIRM"
	EventCheckIn  Event = "CHECK_IN"
	EventCheckOut Event = "CHECK_OUT"
	EventCancel   Event = "CANCEL"
	EventNoShow   Event = "NO_SHOW"
)

// SideEffect names a mutation the caller must apply after a successful
// transition.  Effects are returned in application order.
type SideEffect string

const (
	// EffectCreateCheckIn records the actual check-in timestamp on the
	// reservation's CheckIn row, creating it if absent.
	EffectCreateCheckIn SideEffect = "CREATE_CHECK_IN"
	// EffectRoomOccupied flips the assigned room to OCCUPIED.
	EffectRoomOccupied SideEffect = "ROOM_OCCUPIED"
	// EffectRecordCheckout stamps the actual checkout time and any late
	// checkout fee on the CheckIn row.
	EffectRecordCheckout SideEffect = "RECORD_CHECKOUT"
	// EffectRoomMaintenance flips the room to MAINTENANCE; it needs
	// cleaning before it can be sold again.
	EffectRoomMaintenance SideEffect = "ROOM_MAINTENANCE"
	// EffectCreateCleaningTask creates exactly one CHECKOUT_CLEANING
	// housekeeping task for the room.
	EffectCreateCleaningTask SideEffect = "CREATE_CLEANING_TASK"
	// EffectCreditLoyalty credits loyalty points to the guest for the
	// completed stay.
	EffectCreditLoyalty SideEffect = "CREDIT_LOYALTY"
)

// TransitionError is returned when an event is not legal from the
// current status.  Handlers translate it into a 400 response.
type TransitionError struct {
	From  Status
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a reservation in status %s", e.Event, e.From)
}

// Transition is the single place that decides whether an event is legal
// from the current status.  On success it returns the next status and
// the side effects the caller must apply; otherwise a *TransitionError.
func Transition(current Status, ev Event) (Status, []SideEffect, error) {
	switch ev {
	case EventConfirm:
		if current == StatusPending {
			return StatusConfirmed, nil, nil
		}
	case EventCheckIn:
		if current == StatusConfirmed {
			return StatusCheckedIn, []SideEffect{EffectCreateCheckIn, EffectRoomOccupied}, nil
		}
	case EventCheckOut:
		if current == StatusCheckedIn {
			return StatusCheckedOut, []SideEffect{
				EffectRecordCheckout,
				EffectRoomMaintenance,
				EffectCreateCleaningTask,
				EffectCreditLoyalty,
			}, nil
		}
	case EventCancel:
		// no room effect: the room's status belongs to whatever stay is
		// physically in it, and the overlap query already ignores
		// CANCELLED and NO_SHOW rows so the dates become rebookable
		if current == StatusPending || current == StatusConfirmed {
			return StatusCancelled, nil, nil
		}
	case EventNoShow:
		if current == StatusConfirmed {
			return StatusNoShow, nil, nil
		}
	}
	return current, nil, &TransitionError{From: current, Event: ev}
}
