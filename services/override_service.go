package services

import (
	"context"
	"time"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

// OverrideService manages manual per-day calendar overrides: maintenance
// blocks and one-off nightly prices. Overrides live beside reservations, not
// inside them; blocking a day says nothing about whether a reservation also
// occupies it.
type OverrideService struct {
	rooms     RoomRepository
	overrides OverrideRepository
}

func NewOverrideService(rooms RoomRepository, overrides OverrideRepository) *OverrideService {
	return &OverrideService{rooms: rooms, overrides: overrides}
}

// BlockRoom marks every day in [startDate, endDate], both ends inclusive, as
// blocked. All rows land in one transaction; a mid-batch failure leaves
// nothing applied. Returns the number of days written.
func (s *OverrideService) BlockRoom(ctx context.Context, roomID uint, startDate, endDate time.Time, reason string) (int, error) {
	days := utils.DaysInclusive(startDate, endDate)
	if len(days) == 0 {
		return 0, newValidationError("endDate must not be before startDate")
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return 0, err
	}

	rows := make([]models.CalendarOverride, len(days))
	for i, day := range days {
		rows[i] = models.CalendarOverride{
			RoomID:    room.ID,
			Date:      day,
			IsBlocked: true,
			Reason:    reason,
		}
	}

	if err := s.overrides.UpsertBlocks(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// UnblockRoom deletes blocked override rows in the inclusive range. Rows that
// only carry a price override are untouched. Returns how many rows went away.
func (s *OverrideService) UnblockRoom(ctx context.Context, roomID uint, startDate, endDate time.Time) (int64, error) {
	start := utils.DateOnly(startDate)
	end := utils.DateOnly(endDate)
	if end.Before(start) {
		return 0, newValidationError("endDate must not be before startDate")
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return 0, err
	}

	return s.overrides.DeleteBlocked(ctx, room.ID, start, end)
}

// SetSpecialPrice upserts the nightly price for a single day without touching
// the blocked flag.
func (s *OverrideService) SetSpecialPrice(ctx context.Context, roomID uint, date time.Time, price float64) error {
	if price < 0 {
		return newValidationError("price must not be negative")
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}

	return s.overrides.UpsertPrice(ctx, room.ID, utils.DateOnly(date), price)
}

// ForRoom lists override rows for the room in the inclusive range.
func (s *OverrideService) ForRoom(ctx context.Context, roomID uint, startDate, endDate time.Time) ([]models.CalendarOverride, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return s.overrides.ForRoom(ctx, room.ID, utils.DateOnly(startDate), utils.DateOnly(endDate))
}
