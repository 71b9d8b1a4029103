package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReservationStatus is a closed set. Values arriving from clients must go
// through ParseReservationStatus; anything outside the set is rejected there.
type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "PENDING"
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationCancelled  ReservationStatus = "CANCELLED"
)

// ActiveStatuses are the statuses that occupy a room on the calendar.
var ActiveStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationCheckedIn,
}

func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch status := ReservationStatus(s); status {
	case ReservationPending, ReservationConfirmed, ReservationCheckedIn,
		ReservationCheckedOut, ReservationCancelled:
		return status, nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// IsActive reports whether the reservation occupies its room.
func (s ReservationStatus) IsActive() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCheckedOut || s == ReservationCancelled
}

// Reservation occupies one room for the half-open date interval
// [CheckInDate, CheckOutDate). Status changes only through the
// reservation service; rows are never hard-deleted except by Remove.
type Reservation struct {
	gorm.Model
	RoomID       uint              `json:"roomID" gorm:"not null;index:idx_reservations_room_dates"`
	PropertyID   uint              `json:"propertyID" gorm:"not null;index"`
	GuestID      uint              `json:"guestID"`
	GuestName    string            `json:"guestName"`
	GuestPhone   string            `json:"guestPhone"`
	NumGuests    int               `json:"numGuests"`
	CheckInDate  time.Time         `json:"checkInDate" gorm:"type:date;not null;index:idx_reservations_room_dates"`
	CheckOutDate time.Time         `json:"checkOutDate" gorm:"type:date;not null"`
	Status       ReservationStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	TotalPrice   float64           `json:"totalPrice"`
	AmountPaid   float64           `json:"amountPaid"`
	Note         string            `json:"note"`
	Details      datatypes.JSON    `json:"details,omitempty"` // free-form guest details (id numbers, plate, ...)

	// Relationships
	Room  *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Guest *User `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}

// Nights returns the number of room-nights the reservation spans.
func (r *Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}
