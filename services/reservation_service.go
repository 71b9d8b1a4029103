package services

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

// allowedTransitions is the exhaustive lifecycle table. CHECKED_OUT and
// CANCELLED have no outgoing edges; anything not listed here fails with
// InvalidStateTransitionError.
var allowedTransitions = map[models.ReservationStatus]map[models.ReservationStatus]bool{
	models.ReservationPending: {
		models.ReservationConfirmed: true,
		models.ReservationCheckedIn: true,
		models.ReservationCancelled: true,
	},
	models.ReservationConfirmed: {
		models.ReservationCheckedIn: true,
		models.ReservationCancelled: true,
	},
	models.ReservationCheckedIn: {
		models.ReservationCheckedOut: true,
		models.ReservationCancelled:  true,
	},
	models.ReservationCheckedOut: {},
	models.ReservationCancelled:  {},
}

// CanTransition reports whether the lifecycle table has an edge from -> to.
func CanTransition(from, to models.ReservationStatus) bool {
	return allowedTransitions[from][to]
}

type CreateReservationInput struct {
	RoomID       uint
	CheckInDate  time.Time
	CheckOutDate time.Time
	GuestID      uint
	GuestName    string
	GuestPhone   string
	NumGuests    int
	TotalPrice   float64
	AmountPaid   float64
	Note         string
	Details      datatypes.JSON
}

type UpdateReservationInput struct {
	RoomID       *uint
	CheckInDate  *time.Time
	CheckOutDate *time.Time
	GuestName    *string
	GuestPhone   *string
	NumGuests    *int
	TotalPrice   *float64
	AmountPaid   *float64
	Note         *string
	Details      datatypes.JSON
}

// ReservationService owns the reservation lifecycle. Every interval-affecting
// write goes through the conflict checker first, and the repository's
// exclusion constraint backstops racing writers.
type ReservationService struct {
	reservations ReservationRepository
	rooms        RoomRepository
	checker      *ConflictChecker
	events       EventPublisher
}

func NewReservationService(reservations ReservationRepository, rooms RoomRepository, events EventPublisher) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		checker:      NewConflictChecker(reservations),
		events:       events,
	}
}

// Create validates dates, checks the room is free and persists a PENDING
// reservation. Either the row lands with the invariant upheld or nothing is
// written.
func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput) (*models.Reservation, error) {
	checkIn := utils.DateOnly(input.CheckInDate)
	checkOut := utils.DateOnly(input.CheckOutDate)

	if !checkOut.After(checkIn) {
		return nil, newValidationError("checkOutDate must be after checkInDate")
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	if err := s.checker.CheckConflict(ctx, room.ID, checkIn, checkOut, 0); err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		RoomID:       room.ID,
		PropertyID:   room.PropertyID,
		GuestID:      input.GuestID,
		GuestName:    input.GuestName,
		GuestPhone:   input.GuestPhone,
		NumGuests:    input.NumGuests,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       models.ReservationPending,
		TotalPrice:   input.TotalPrice,
		AmountPaid:   input.AmountPaid,
		Note:         input.Note,
		Details:      input.Details,
	}

	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.publish("created", reservation)
	return reservation, nil
}

// Update applies a partial update. A date or room change is a reschedule: it
// is only allowed while the reservation is active, is re-checked against the
// new interval excluding the reservation itself, and lands in the same write
// as the rest of the changes.
func (s *ReservationService) Update(ctx context.Context, id uint, input UpdateReservationInput) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	checkIn := reservation.CheckInDate
	checkOut := reservation.CheckOutDate
	roomID := reservation.RoomID
	propertyID := reservation.PropertyID

	if input.CheckInDate != nil {
		checkIn = utils.DateOnly(*input.CheckInDate)
	}
	if input.CheckOutDate != nil {
		checkOut = utils.DateOnly(*input.CheckOutDate)
	}
	if input.RoomID != nil && *input.RoomID != reservation.RoomID {
		room, err := s.rooms.GetByID(ctx, *input.RoomID)
		if err != nil {
			return nil, err
		}
		roomID = room.ID
		propertyID = room.PropertyID
	}

	intervalChanged := roomID != reservation.RoomID ||
		!checkIn.Equal(reservation.CheckInDate) ||
		!checkOut.Equal(reservation.CheckOutDate)

	if intervalChanged {
		if !reservation.Status.IsActive() {
			return nil, &InvalidStateTransitionError{
				ReservationID: reservation.ID,
				From:          reservation.Status,
				Attempted:     "reschedule",
			}
		}
		if err := s.checker.CheckConflict(ctx, roomID, checkIn, checkOut, reservation.ID); err != nil {
			return nil, err
		}
	}

	reservation.RoomID = roomID
	reservation.PropertyID = propertyID
	reservation.CheckInDate = checkIn
	reservation.CheckOutDate = checkOut
	if input.GuestName != nil {
		reservation.GuestName = *input.GuestName
	}
	if input.GuestPhone != nil {
		reservation.GuestPhone = *input.GuestPhone
	}
	if input.NumGuests != nil {
		reservation.NumGuests = *input.NumGuests
	}
	if input.TotalPrice != nil {
		reservation.TotalPrice = *input.TotalPrice
	}
	if input.AmountPaid != nil {
		reservation.AmountPaid = *input.AmountPaid
	}
	if input.Note != nil {
		reservation.Note = *input.Note
	}
	if input.Details != nil {
		reservation.Details = input.Details
	}

	if err := s.reservations.Save(ctx, reservation); err != nil {
		return nil, err
	}

	s.publish("updated", reservation)
	return reservation, nil
}

func (s *ReservationService) Confirm(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationConfirmed, "confirm", "confirmed")
}

func (s *ReservationService) CheckIn(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationCheckedIn, "check in", "checked_in")
}

func (s *ReservationService) CheckOut(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationCheckedOut, "check out", "checked_out")
}

func (s *ReservationService) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ReservationCancelled, "cancel", "cancelled")
}

func (s *ReservationService) transition(ctx context.Context, id uint, target models.ReservationStatus, action, eventType string) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(reservation.Status, target) {
		return nil, &InvalidStateTransitionError{
			ReservationID: reservation.ID,
			From:          reservation.Status,
			Attempted:     action,
		}
	}

	reservation.Status = target
	if err := s.reservations.Save(ctx, reservation); err != nil {
		return nil, err
	}

	s.publish(eventType, reservation)
	return reservation, nil
}

// Remove hard-deletes the reservation. This is destructive bookkeeping, not a
// lifecycle transition; prefer Cancel for anything a guest should see. Only
// the owning guest may remove; anyone else gets not-found rather than a hint
// the reservation exists.
func (s *ReservationService) Remove(ctx context.Context, id, guestID uint) error {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation.GuestID != guestID {
		return &NotFoundError{Resource: "reservation", ID: id}
	}

	if err := s.reservations.HardDelete(ctx, reservation.ID); err != nil {
		return err
	}

	s.publish("removed", reservation)
	return nil
}

// Validate is the dry-run conflict check used by clients before presenting a
// booking form. It never writes.
func (s *ReservationService) Validate(ctx context.Context, roomID uint, checkIn, checkOut time.Time) error {
	if !utils.DateOnly(checkOut).After(utils.DateOnly(checkIn)) {
		return newValidationError("checkOutDate must be after checkInDate")
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return err
	}
	return s.checker.CheckConflict(ctx, roomID, checkIn, checkOut, 0)
}

func (s *ReservationService) ByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error) {
	return s.reservations.ByProperty(ctx, propertyID)
}

func (s *ReservationService) ByGuest(ctx context.Context, guestID uint) ([]models.Reservation, error) {
	return s.reservations.ByGuest(ctx, guestID)
}

func (s *ReservationService) publish(eventType string, r *models.Reservation) {
	if s.events == nil {
		return
	}

	event := ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		PropertyID:    r.PropertyID,
		GuestID:       r.GuestID,
		Status:        r.Status,
		CheckInDate:   r.CheckInDate,
		CheckOutDate:  r.CheckOutDate,
		OccurredAt:    time.Now().UTC(),
	}

	// Fire and forget; the request context may be gone by the time the
	// publish lands.
	go s.events.PublishReservationEvent(context.Background(), event)
}
