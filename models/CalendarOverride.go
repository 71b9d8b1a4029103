package models

import (
	"time"

	"gorm.io/gorm"
)

// CalendarOverride is a single-day, per-room record independent of any
// reservation: a manual block and/or a one-off nightly price. At most one
// row exists per (room, date); writes are upserts keyed on that pair.
//
// A blocked day can coincide with an active reservation. The engine keeps
// both facts and surfaces both flags from the calendar aggregator; it is
// up to the operator-facing layer to flag the collision.
type CalendarOverride struct {
	gorm.Model
	RoomID        uint      `json:"roomID" gorm:"not null;uniqueIndex:idx_overrides_room_date"`
	Date          time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_overrides_room_date"`
	IsBlocked     bool      `json:"isBlocked" gorm:"default:false;index"`
	Reason        string    `json:"reason"`
	PriceOverride *float64  `json:"priceOverride,omitempty"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}
