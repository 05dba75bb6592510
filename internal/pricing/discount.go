package pricing

import "github.com/shopspring/decimal"

// DiscountStrategy turns a grand total plus the voucher amounts
// recorded against a reservation's completed payments into the amount
// the guest is actually expected to pay.  The subtraction is a
// strategy rather than a fixed formula because voucher and loyalty
// redemption are only partially wired in the upstream business rules.
type DiscountStrategy interface {
	ExpectedPayment(grandTotal, voucherTotal decimal.Decimal) decimal.Decimal
}

// VoucherDiscount is the default strategy: subtract recorded voucher
// amounts from the grand total, floored at zero.
type VoucherDiscount struct{}

func (VoucherDiscount) ExpectedPayment(grandTotal, voucherTotal decimal.Decimal) decimal.Decimal {
	expected := grandTotal.Sub(voucherTotal)
	if expected.IsNegative() {
		return decimal.Zero
	}
	return expected
}

// ExpectedPayment applies the strategy, defaulting to VoucherDiscount
// when none is supplied.
func ExpectedPayment(s DiscountStrategy, grandTotal, voucherTotal decimal.Decimal) decimal.Decimal {
	if s == nil {
		s = VoucherDiscount{}
	}
	return s.ExpectedPayment(grandTotal, voucherTotal)
}
