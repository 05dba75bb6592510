package settlement

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

func TestCalculateGroupsByMethod(t *testing.T) {
	payments := []PaymentLine{
		{Method: "CASH", Amount: dec("250000")},
		{Method: "CARD", Amount: dec("80000")},
		{Method: "CASH", Amount: dec("100000")},
		{Method: "MOBILE", Amount: dec("45000")},
	}
	s := Calculate(dec("100000"), dec("450000"), payments)

	if s.Transactions != 4 {
		t.Errorf("Transactions = %d, want 4", s.Transactions)
	}
	if !s.TotalRevenue.Equal(dec("475000")) {
		t.Errorf("TotalRevenue = %s, want 475000", s.TotalRevenue)
	}
	// expected cash = opening float + cash payments only
	if !s.ExpectedCash.Equal(dec("450000")) {
		t.Errorf("ExpectedCash = %s, want 450000", s.ExpectedCash)
	}
	if !s.Difference.Equal(decimal.Zero) {
		t.Errorf("Difference = %s, want 0", s.Difference)
	}
	if s.Flagged {
		t.Error("balanced drawer was flagged")
	}

	want := []struct {
		method string
		total  string
		count  int
	}{
		{"CARD", "80000", 1},
		{"CASH", "350000", 2},
		{"MOBILE", "45000", 1},
	}
	if len(s.Methods) != len(want) {
		t.Fatalf("Methods = %v, want %d entries", s.Methods, len(want))
	}
	for i, w := range want {
		got := s.Methods[i]
		if got.Method != w.method || !got.Total.Equal(dec(w.total)) || got.Count != w.count {
			t.Errorf("Methods[%d] = {%s %s %d}, want {%s %s %d}",
				i, got.Method, got.Total, got.Count, w.method, w.total, w.count)
		}
	}
}

func TestCalculateDiscrepancyFlag(t *testing.T) {
	payments := []PaymentLine{{Method: "CASH", Amount: dec("250000")}}
	tests := []struct {
		name       string
		actualCash string
		wantDiff   string
		wantFlag   bool
	}{
		{"exact", "350000", "0", false},
		{"short within threshold", "349500", "-500", false},
		{"short at threshold", "349000", "-1000", false},
		{"short past threshold", "348999", "-1001", true},
		{"over past threshold", "351500", "1500", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Calculate(dec("100000"), dec(tt.actualCash), payments)
			if !s.Difference.Equal(dec(tt.wantDiff)) {
				t.Errorf("Difference = %s, want %s", s.Difference, tt.wantDiff)
			}
			if s.Flagged != tt.wantFlag {
				t.Errorf("Flagged = %v, want %v", s.Flagged, tt.wantFlag)
			}
		})
	}
}

func TestCalculateEmptySession(t *testing.T) {
	s := Calculate(dec("200000"), dec("200000"), nil)
	if s.Transactions != 0 || len(s.Methods) != 0 {
		t.Errorf("empty session produced %d transactions, %d methods", s.Transactions, len(s.Methods))
	}
	if !s.ExpectedCash.Equal(dec("200000")) {
		t.Errorf("ExpectedCash = %s, want opening float", s.ExpectedCash)
	}
	if s.Flagged {
		t.Error("empty balanced session was flagged")
	}
}
