package services

import (
	"context"
	"time"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

// Overlaps reports whether the half-open day intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries do not overlap, so a
// check-out and a check-in on the same day is a valid turnover.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ConflictChecker decides whether a candidate interval collides with any
// reservation in the active set on the same room. It scans linearly; per-room
// reservation counts are small enough that an interval tree would be noise.
// The database exclusion constraint remains the authoritative guard either way.
type ConflictChecker struct {
	reservations ReservationRepository
}

func NewConflictChecker(reservations ReservationRepository) *ConflictChecker {
	return &ConflictChecker{reservations: reservations}
}

// CheckConflict returns nil when [checkIn, checkOut) is free on the room.
// excludeID skips one reservation, so an update is not compared against its
// own prior interval; pass 0 on create.
func (c *ConflictChecker) CheckConflict(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) error {
	checkIn = utils.DateOnly(checkIn)
	checkOut = utils.DateOnly(checkOut)

	if !checkOut.After(checkIn) {
		return newValidationError("checkOutDate must be after checkInDate")
	}

	overlapping, err := c.reservations.ActiveOverlapping(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if len(overlapping) == 0 {
		return nil
	}

	ids := make([]uint, len(overlapping))
	for i, r := range overlapping {
		ids[i] = r.ID
	}
	return &ConflictError{
		RoomID:         roomID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		ReservationIDs: ids,
	}
}

// activeReservationsOverlap is the predicate the repositories implement in
// SQL; fakes use it directly so both paths agree on the boundary semantics.
func activeReservationsOverlap(r *models.Reservation, roomID uint, checkIn, checkOut time.Time) bool {
	return r.RoomID == roomID && r.Status.IsActive() &&
		Overlaps(r.CheckInDate, r.CheckOutDate, checkIn, checkOut)
}
