package storage

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
)

// OverrideStore implements services.OverrideRepository. Rows are unique per
// (room_id, date); every write is an upsert keyed on that pair.
type OverrideStore struct {
	db *gorm.DB
}

func NewOverrideStore(db *gorm.DB) *OverrideStore {
	return &OverrideStore{db: db}
}

// UpsertBlocks writes the whole batch in one transaction. Existing rows keep
// their price_override; only the block flag and reason change.
func (s *OverrideStore) UpsertBlocks(ctx context.Context, overrides []models.CalendarOverride) error {
	if len(overrides) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_blocked", "reason", "updated_at"}),
		}).Create(&overrides).Error
	})
}

// DeleteBlocked removes blocked rows for good. Overrides are operational
// state, not history; a soft-deleted row would keep holding the (room_id,
// date) slot and swallow the next upsert for that day.
func (s *OverrideStore) DeleteBlocked(ctx context.Context, roomID uint, start, end time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Unscoped().
		Where("room_id = ? AND date >= ? AND date <= ? AND is_blocked = ?", roomID, start, end, true).
		Delete(&models.CalendarOverride{})
	return result.RowsAffected, result.Error
}

func (s *OverrideStore) UpsertPrice(ctx context.Context, roomID uint, date time.Time, price float64) error {
	override := models.CalendarOverride{
		RoomID:        roomID,
		Date:          date,
		PriceOverride: &price,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_override", "updated_at"}),
	}).Create(&override).Error
}

func (s *OverrideStore) ForRoom(ctx context.Context, roomID uint, start, end time.Time) ([]models.CalendarOverride, error) {
	var overrides []models.CalendarOverride
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND date >= ? AND date <= ?", roomID, start, end).
		Order("date ASC").
		Find(&overrides).Error
	return overrides, err
}

func (s *OverrideStore) ForRooms(ctx context.Context, roomIDs []uint, start, end time.Time) ([]models.CalendarOverride, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var overrides []models.CalendarOverride
	err := s.db.WithContext(ctx).
		Where("room_id IN ? AND date >= ? AND date <= ?", roomIDs, start, end).
		Order("room_id ASC, date ASC").
		Find(&overrides).Error
	return overrides, err
}
