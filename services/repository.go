package services

import (
	"context"
	"time"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
)

// Repositories abstract the Postgres stores so the engine can be exercised
// against in-memory fakes. The gorm implementations live in storage/.

type ReservationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	// ActiveOverlapping returns reservations in the active set on roomID whose
	// [check_in, check_out) interval overlaps [checkIn, checkOut), skipping
	// excludeID (0 means exclude nothing).
	ActiveOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error)
	// ActiveInRange returns active reservations for the property satisfying
	// check_in_date < end AND check_out_date > start.
	ActiveInRange(ctx context.Context, propertyID uint, start, end time.Time) ([]models.Reservation, error)
	ByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error)
	ByGuest(ctx context.Context, guestID uint) ([]models.Reservation, error)
	// Create and Save must uphold the no-overlap invariant atomically against
	// concurrent writers, returning *ConflictError when the write loses.
	Create(ctx context.Context, reservation *models.Reservation) error
	Save(ctx context.Context, reservation *models.Reservation) error
	// HardDelete removes the row entirely; the id and interval cease to exist.
	HardDelete(ctx context.Context, id uint) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	ByProperty(ctx context.Context, propertyID uint) ([]models.Room, error)
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Property, error)
}

type OverrideRepository interface {
	// UpsertBlocks writes all rows in one transaction, updating is_blocked and
	// reason on (room_id, date) collision and leaving price_override alone.
	UpsertBlocks(ctx context.Context, overrides []models.CalendarOverride) error
	// DeleteBlocked removes override rows with is_blocked = true in the
	// inclusive range and returns how many were removed. Price-only rows stay.
	DeleteBlocked(ctx context.Context, roomID uint, start, end time.Time) (int64, error)
	// UpsertPrice sets price_override for a single day without touching
	// is_blocked or reason.
	UpsertPrice(ctx context.Context, roomID uint, date time.Time, price float64) error
	ForRoom(ctx context.Context, roomID uint, start, end time.Time) ([]models.CalendarOverride, error)
	ForRooms(ctx context.Context, roomIDs []uint, start, end time.Time) ([]models.CalendarOverride, error)
}
