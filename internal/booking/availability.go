package booking

import (
	"errors"
	"time"
)

// ErrInvalidStay is returned when the checkout date is not strictly
// after the check-in date.  Zero-night stays are rejected here before
// any availability query runs.
var ErrInvalidStay = errors.New("check_out_date must be after check_in_date")

// LateCheckoutHour is the hour of day (on the checkout date) after
// which a departure counts as a late checkout.
const LateCheckoutHour = 12

// ValidateStayDates enforces check_out > check_in.  Dates are compared
// at day granularity; callers pass midnight-normalized times.
func ValidateStayDates(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return ErrInvalidStay
	}
	return nil
}

// Nights returns the number of nights between the two dates.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// RangesOverlap implements the half-open interval overlap test used by
// the availability checker: [aStart, aEnd) overlaps [bStart, bEnd) iff
// aStart < bEnd && bStart < aEnd.  Back-to-back stays sharing a
// boundary date do not overlap, so a room can turn over same-day.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// IsLateCheckout reports whether the actual departure time falls after
// the noon cutoff on the scheduled checkout date.  Both times are
// evaluated in the actual departure's location.
func IsLateCheckout(actual time.Time, checkOutDate time.Time) bool {
	cutoff := time.Date(checkOutDate.Year(), checkOutDate.Month(), checkOutDate.Day(),
		LateCheckoutHour, 0, 0, 0, actual.Location())
	return actual.After(cutoff)
}
