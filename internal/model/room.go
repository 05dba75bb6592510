package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomStatus enumerates the operational state of a room.  Check-in and
// check-out transitions flip it between OCCUPIED and MAINTENANCE;
// housekeeping and the front desk flip the rest manually.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomReserved    RoomStatus = "RESERVED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomCleaning    RoomStatus = "CLEANING"
	RoomOutOfOrder  RoomStatus = "OUT_OF_ORDER"
)

// Valid reports whether s is a known room status.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomReserved,
		RoomMaintenance, RoomCleaning, RoomOutOfOrder:
		return true
	}
	return false
}

// Room mirrors the `rooms` table.  A room's status must reflect at
// most one active (CHECKED_IN) reservation at a time.  Price overrides
// the room type's base price when set.
type Room struct {
	ID         uint64           // rooms.id
	Number     string           // rooms.number (unique per property)
	Floor      int              // rooms.floor
	Status     RoomStatus       // rooms.status
	RoomTypeID uint64           // rooms.room_type_id
	Price      *decimal.Decimal // rooms.price (nullable; overrides base price)
	CreatedAt  time.Time        // rooms.created_at
	UpdatedAt  time.Time        // rooms.updated_at
}

// RoomType mirrors the `room_types` table.  Reference data: rarely
// mutated after creation.
type RoomType struct {
	ID           uint64          // room_types.id
	Name         string          // room_types.name
	BasePrice    decimal.Decimal // room_types.base_price (per night)
	MaxOccupancy int             // room_types.max_occupancy
	Amenities    string          // room_types.amenities (free text)
	CreatedAt    time.Time       // room_types.created_at
}

// NightlyRate resolves the rate used for pricing: the room's own price
// when set, otherwise the room type's base price.
func (r Room) NightlyRate(rt RoomType) decimal.Decimal {
	if r.Price != nil {
		return *r.Price
	}
	return rt.BasePrice
}
