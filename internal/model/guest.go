package model

import "time"

// Guest mirrors the `guests` table.  Created on first booking or ahead
// of it.  LoyaltyPoints are credited by completed stays; the VIP flag
// grants a pre-tax discount captured at booking time.
type Guest struct {
	ID            uint64    // guests.id
	FullName      string    // guests.full_name
	Email         string    // guests.email
	Phone         string    // guests.phone
	IDNumber      string    // guests.id_number (passport / national ID)
	VIP           bool      // guests.is_vip
	LoyaltyPoints int       // guests.loyalty_points
	CreatedAt     time.Time // guests.created_at
	UpdatedAt     time.Time // guests.updated_at
}
