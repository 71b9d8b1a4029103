package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
)

// Domain errors returned by the reservation, calendar and override services.
// Routes translate these into HTTP statuses; nothing here is retried.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ConflictError reports an interval overlap on a room. ReservationIDs names
// the colliding reservations when the overlap was found by the conflict
// query; it is empty when the database exclusion constraint caught a racing
// writer first.
type ConflictError struct {
	RoomID         uint
	CheckInDate    time.Time
	CheckOutDate   time.Time
	ReservationIDs []uint
}

func (e *ConflictError) Error() string {
	if len(e.ReservationIDs) == 0 {
		return fmt.Sprintf("room %d is already reserved between %s and %s",
			e.RoomID, e.CheckInDate.Format("2006-01-02"), e.CheckOutDate.Format("2006-01-02"))
	}
	ids := make([]string, len(e.ReservationIDs))
	for i, id := range e.ReservationIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("room %d is already reserved between %s and %s by reservation(s) %s",
		e.RoomID, e.CheckInDate.Format("2006-01-02"), e.CheckOutDate.Format("2006-01-02"),
		strings.Join(ids, ", "))
}

type InvalidStateTransitionError struct {
	ReservationID uint
	From          models.ReservationStatus
	Attempted     string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s reservation %d while it is %s",
		e.Attempted, e.ReservationID, e.From)
}
