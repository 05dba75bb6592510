// Package pricing computes reservation totals.  All money values are
// shopspring decimals; nothing here rounds until a final amount is
// produced, and results are rounded to two places to match the
// DECIMAL(12,2) columns they are stored in.
package pricing

import "github.com/shopspring/decimal"

var (
	// taxRate is the fixed 11% VAT applied to the discounted room
	// subtotal.  It is deliberately not configurable per deployment.
	taxRate = decimal.NewFromFloat(0.11)
	// vipRate is the 10% pre-tax discount for guests flagged VIP at
	// booking time.  VIP status changes later do not reprice the stay.
	vipRate = decimal.NewFromFloat(0.10)
)

// Charge is one additional charge row attached to a reservation
// (minibar, laundry, late checkout fee and so on).
type Charge struct {
	Description string
	Quantity    int64
	UnitAmount  decimal.Decimal
}

// Total returns quantity × unit amount for the charge.
func (c Charge) Total() decimal.Decimal {
	return c.UnitAmount.Mul(decimal.NewFromInt(c.Quantity))
}

// Quote is the itemized result of pricing a reservation.  GrandTotal =
// (RoomSubtotal − VIPDiscount) + Tax + ChargesTotal.
type Quote struct {
	Nights       int
	NightlyRate  decimal.Decimal
	RoomSubtotal decimal.Decimal
	VIPDiscount  decimal.Decimal
	Tax          decimal.Decimal
	ChargesTotal decimal.Decimal
	GrandTotal   decimal.Decimal
}

// BuildQuote prices a stay.  nightlyRate is the assigned room's current
// price or, when no room is assigned yet, the room type's base price;
// the caller resolves which.  The same inputs always produce the same
// quote.
func BuildQuote(nightlyRate decimal.Decimal, nights int, vip bool, charges []Charge) Quote {
	q := Quote{Nights: nights, NightlyRate: nightlyRate}
	q.RoomSubtotal = nightlyRate.Mul(decimal.NewFromInt(int64(nights)))
	if vip {
		q.VIPDiscount = q.RoomSubtotal.Mul(vipRate).Round(2)
	} else {
		q.VIPDiscount = decimal.Zero
	}
	taxable := q.RoomSubtotal.Sub(q.VIPDiscount)
	q.Tax = taxable.Mul(taxRate).Round(2)
	q.ChargesTotal = decimal.Zero
	for _, c := range charges {
		q.ChargesTotal = q.ChargesTotal.Add(c.Total())
	}
	q.GrandTotal = taxable.Add(q.Tax).Add(q.ChargesTotal).Round(2)
	return q
}

// LateCheckoutFee is charged when a guest departs after the noon
// cutoff: half of one night at the reservation's nightly rate.
func LateCheckoutFee(nightlyRate decimal.Decimal) decimal.Decimal {
	return nightlyRate.Div(decimal.NewFromInt(2)).Round(2)
}

// LoyaltyPoints converts a completed stay's room subtotal into loyalty
// points: one point per full 10,000 spent on the room.
func LoyaltyPoints(roomSubtotal decimal.Decimal) int {
	pts := roomSubtotal.Div(decimal.NewFromInt(10000)).IntPart()
	if pts < 0 {
		return 0
	}
	return int(pts)
}

// IsFullyPaid compares the sum of COMPLETED payments against the
// expected payment amount, not the raw grand total, so discounts must
// already be applied for the comparison to be meaningful.
func IsFullyPaid(completedTotal, expectedPayment decimal.Decimal) bool {
	return completedTotal.GreaterThanOrEqual(expectedPayment)
}
