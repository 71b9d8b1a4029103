package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
	"github.com/ZhuChiYu/RoomEase-sub000/services"
)

// ReservationStore is the Postgres-backed services.ReservationRepository.
type ReservationStore struct {
	db *gorm.DB
}

func NewReservationStore(db *gorm.DB) *ReservationStore {
	return &ReservationStore{db: db}
}

func (s *ReservationStore) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.WithContext(ctx).Preload("Room").Preload("Guest").First(&reservation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &services.NotFoundError{Resource: "reservation", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationStore) ActiveOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	query := s.db.WithContext(ctx).
		Where("room_id = ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
			roomID, models.ActiveStatuses, checkOut, checkIn)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Order("check_in_date ASC").Find(&reservations).Error
	return reservations, err
}

func (s *ReservationStore) ActiveInRange(ctx context.Context, propertyID uint, start, end time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.WithContext(ctx).
		Where("property_id = ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
			propertyID, models.ActiveStatuses, end, start).
		Order("check_in_date ASC").
		Find(&reservations).Error
	return reservations, err
}

func (s *ReservationStore) ByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.WithContext(ctx).
		Preload("Room").Preload("Guest").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

func (s *ReservationStore) ByGuest(ctx context.Context, guestID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.WithContext(ctx).
		Preload("Room").
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

// Create inserts inside a transaction so the conflict re-check and the write
// are one unit. A reservations_no_overlap violation means a concurrent writer
// took the interval between the service's check and ours; that surfaces as
// the same ConflictError the checker would have produced.
func (s *ReservationStore) Create(ctx context.Context, reservation *models.Reservation) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(reservation).Error
	})
	return s.translateConflict(err, reservation)
}

func (s *ReservationStore) Save(ctx context.Context, reservation *models.Reservation) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(reservation).Error
	})
	return s.translateConflict(err, reservation)
}

func (s *ReservationStore) HardDelete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Unscoped().Delete(&models.Reservation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &services.NotFoundError{Resource: "reservation", ID: id}
	}
	return nil
}

func (s *ReservationStore) translateConflict(err error, reservation *models.Reservation) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "reservations_no_overlap") {
		return &services.ConflictError{
			RoomID:       reservation.RoomID,
			CheckInDate:  reservation.CheckInDate,
			CheckOutDate: reservation.CheckOutDate,
		}
	}
	return err
}
