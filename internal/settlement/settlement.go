// Package settlement reconciles a cashier session at close time.  It
// is pure arithmetic over the COMPLETED payments attributed to the
// session; loading those payments and persisting the result is the
// repository's job.
package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DiscrepancyThreshold is the absolute cash difference above which a
// closing is flagged for audit.  Flagged closings still succeed; the
// discrepancy is recorded, not blocking.
var DiscrepancyThreshold = decimal.NewFromInt(1000)

// PaymentLine is one completed payment inside the session.
type PaymentLine struct {
	Method string
	Amount decimal.Decimal
}

// MethodTotal aggregates the session's payments for one method.
type MethodTotal struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
}

// Settlement is the snapshot persisted on the session when it closes.
type Settlement struct {
	OpeningCash  decimal.Decimal `json:"opening_cash"`
	ExpectedCash decimal.Decimal `json:"expected_cash"`
	ActualCash   decimal.Decimal `json:"actual_cash"`
	Difference   decimal.Decimal `json:"cash_difference"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Transactions int             `json:"transactions"`
	Methods      []MethodTotal   `json:"methods"`
	Flagged      bool            `json:"flagged"`
}

// isCash reports whether a payment method moves physical cash through
// the drawer.  Only such payments count toward expected cash.
func isCash(method string) bool {
	return method == "CASH"
}

// Calculate reconciles a session: groups payments by method, derives
// expected cash from the opening float plus cash takings, and compares
// it to the operator-entered actual cash.  Method groups are sorted by
// name so the persisted snapshot is deterministic.
func Calculate(openingCash, actualCash decimal.Decimal, payments []PaymentLine) Settlement {
	byMethod := make(map[string]*MethodTotal)
	s := Settlement{
		OpeningCash:  openingCash,
		ActualCash:   actualCash,
		ExpectedCash: openingCash,
		TotalRevenue: decimal.Zero,
	}
	for _, p := range payments {
		mt, ok := byMethod[p.Method]
		if !ok {
			mt = &MethodTotal{Method: p.Method, Total: decimal.Zero}
			byMethod[p.Method] = mt
		}
		mt.Total = mt.Total.Add(p.Amount)
		mt.Count++
		s.TotalRevenue = s.TotalRevenue.Add(p.Amount)
		s.Transactions++
		if isCash(p.Method) {
			s.ExpectedCash = s.ExpectedCash.Add(p.Amount)
		}
	}
	names := make([]string, 0, len(byMethod))
	for m := range byMethod {
		names = append(names, m)
	}
	sort.Strings(names)
	s.Methods = make([]MethodTotal, 0, len(names))
	for _, m := range names {
		s.Methods = append(s.Methods, *byMethod[m])
	}
	s.Difference = actualCash.Sub(s.ExpectedCash)
	s.Flagged = s.Difference.Abs().GreaterThan(DiscrepancyThreshold)
	return s
}
