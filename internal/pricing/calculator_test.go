package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildQuote(t *testing.T) {
	tests := []struct {
		name        string
		nightlyRate string
		nights      int
		vip         bool
		charges     []Charge
		wantSub     string
		wantVIP     string
		wantTax     string
		wantCharges string
		wantGrand   string
	}{
		{
			name:        "two nights no extras",
			nightlyRate: "500000",
			nights:      2,
			wantSub:     "1000000",
			wantVIP:     "0",
			wantTax:     "110000",
			wantCharges: "0",
			wantGrand:   "1110000",
		},
		{
			name:        "vip discount is pre tax",
			nightlyRate: "500000",
			nights:      2,
			vip:         true,
			wantSub:     "1000000",
			wantVIP:     "100000",
			wantTax:     "99000",
			wantCharges: "0",
			wantGrand:   "999000",
		},
		{
			name:        "charges excluded from tax base",
			nightlyRate: "300000",
			nights:      1,
			charges: []Charge{
				{Description: "minibar", Quantity: 2, UnitAmount: dec("45000")},
				{Description: "laundry", Quantity: 1, UnitAmount: dec("60000")},
			},
			wantSub:     "300000",
			wantVIP:     "0",
			wantTax:     "33000",
			wantCharges: "150000",
			wantGrand:   "483000",
		},
		{
			name:        "fractional rate rounds to two places",
			nightlyRate: "333333.33",
			nights:      3,
			wantSub:     "999999.99",
			wantVIP:     "0",
			wantTax:     "110000",
			wantCharges: "0",
			wantGrand:   "1109999.99",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildQuote(dec(tt.nightlyRate), tt.nights, tt.vip, tt.charges)
			check := func(field string, got, want decimal.Decimal) {
				if !got.Equal(want) {
					t.Errorf("%s = %s, want %s", field, got, want)
				}
			}
			check("RoomSubtotal", q.RoomSubtotal, dec(tt.wantSub))
			check("VIPDiscount", q.VIPDiscount, dec(tt.wantVIP))
			check("Tax", q.Tax, dec(tt.wantTax))
			check("ChargesTotal", q.ChargesTotal, dec(tt.wantCharges))
			check("GrandTotal", q.GrandTotal, dec(tt.wantGrand))
		})
	}
}

func TestBuildQuoteDeterministic(t *testing.T) {
	charges := []Charge{{Description: "spa", Quantity: 1, UnitAmount: dec("250000")}}
	a := BuildQuote(dec("750000"), 4, true, charges)
	b := BuildQuote(dec("750000"), 4, true, charges)
	if !a.GrandTotal.Equal(b.GrandTotal) || !a.Tax.Equal(b.Tax) || !a.VIPDiscount.Equal(b.VIPDiscount) {
		t.Errorf("same inputs produced different quotes: %+v vs %+v", a, b)
	}
}

func TestLateCheckoutFee(t *testing.T) {
	tests := []struct {
		rate string
		want string
	}{
		{"500000", "250000"},
		{"333333", "166666.5"},
		{"0", "0"},
	}
	for _, tt := range tests {
		if got := LateCheckoutFee(dec(tt.rate)); !got.Equal(dec(tt.want)) {
			t.Errorf("LateCheckoutFee(%s) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestLoyaltyPoints(t *testing.T) {
	tests := []struct {
		subtotal string
		want     int
	}{
		{"1000000", 100},
		{"999999", 99},
		{"10000", 1},
		{"9999", 0},
		{"0", 0},
	}
	for _, tt := range tests {
		if got := LoyaltyPoints(dec(tt.subtotal)); got != tt.want {
			t.Errorf("LoyaltyPoints(%s) = %d, want %d", tt.subtotal, got, tt.want)
		}
	}
}

func TestExpectedPaymentAndFullyPaid(t *testing.T) {
	grand := dec("1110000")
	expected := ExpectedPayment(nil, grand, dec("110000"))
	if !expected.Equal(dec("1000000")) {
		t.Fatalf("ExpectedPayment = %s, want 1000000", expected)
	}
	if IsFullyPaid(dec("999999"), expected) {
		t.Error("IsFullyPaid true below expected amount")
	}
	if !IsFullyPaid(dec("1000000"), expected) {
		t.Error("IsFullyPaid false at exactly the expected amount")
	}

	// vouchers can never push the expected payment below zero
	if got := ExpectedPayment(nil, dec("50000"), dec("80000")); !got.Equal(decimal.Zero) {
		t.Errorf("ExpectedPayment floored = %s, want 0", got)
	}
}
