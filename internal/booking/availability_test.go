package booking

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidateStayDates(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{"one night", "2025-06-01", "2025-06-02", false},
		{"week", "2025-06-01", "2025-06-08", false},
		{"zero nights", "2025-06-01", "2025-06-01", true},
		{"checkout before checkin", "2025-06-03", "2025-06-01", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStayDates(day(tt.checkIn), day(tt.checkOut))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStayDates(%s, %s) error = %v, wantErr %v",
					tt.checkIn, tt.checkOut, err, tt.wantErr)
			}
		})
	}
}

func TestNights(t *testing.T) {
	if got := Nights(day("2025-06-01"), day("2025-06-04")); got != 3 {
		t.Errorf("Nights = %d, want 3", got)
	}
	if got := Nights(day("2025-06-01"), day("2025-06-02")); got != 1 {
		t.Errorf("Nights = %d, want 1", got)
	}
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"nested", "2025-06-01", "2025-06-10", "2025-06-03", "2025-06-05", true},
		{"partial overlap", "2025-06-01", "2025-06-03", "2025-06-02", "2025-06-04", true},
		{"identical", "2025-06-01", "2025-06-03", "2025-06-01", "2025-06-03", true},
		{"back to back same day", "2025-06-01", "2025-06-03", "2025-06-03", "2025-06-05", false},
		{"back to back reversed", "2025-06-03", "2025-06-05", "2025-06-01", "2025-06-03", false},
		{"disjoint", "2025-06-01", "2025-06-02", "2025-06-10", "2025-06-12", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			if got != tt.want {
				t.Errorf("RangesOverlap = %v, want %v", got, tt.want)
			}
			// overlap is symmetric
			if rev := RangesOverlap(day(tt.bStart), day(tt.bEnd), day(tt.aStart), day(tt.aEnd)); rev != got {
				t.Errorf("RangesOverlap not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestIsLateCheckout(t *testing.T) {
	checkOutDate := day("2025-06-03")
	tests := []struct {
		name   string
		actual time.Time
		want   bool
	}{
		{"morning departure", time.Date(2025, 6, 3, 9, 30, 0, 0, time.UTC), false},
		{"exactly noon", time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC), false},
		{"one second past noon", time.Date(2025, 6, 3, 12, 0, 1, 0, time.UTC), true},
		{"evening departure", time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC), true},
		{"next day", time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLateCheckout(tt.actual, checkOutDate); got != tt.want {
				t.Errorf("IsLateCheckout(%v) = %v, want %v", tt.actual, got, tt.want)
			}
		})
	}
}
