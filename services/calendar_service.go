package services

import (
	"context"
	"time"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

// CalendarData is the raw projection for a property and date range: every
// room, the active reservations overlapping the range, and the override rows
// inside it. Clients expand this into a grid themselves or ask for DayGrid.
type CalendarData struct {
	PropertyID   uint                      `json:"propertyID"`
	StartDate    time.Time                 `json:"startDate"`
	EndDate      time.Time                 `json:"endDate"`
	Rooms        []models.Room             `json:"rooms"`
	Reservations []models.Reservation      `json:"reservations"`
	Overrides    []models.CalendarOverride `json:"overrides"`
}

// RoomDateStatus is one cell of the expanded calendar grid. Occupied and
// Blocked are independent: an operator can block a room that already holds a
// reservation, and the engine reports both rather than picking a winner.
type RoomDateStatus struct {
	RoomID        uint      `json:"roomID"`
	Date          time.Time `json:"date"`
	Occupied      bool      `json:"occupied"`
	ReservationID uint      `json:"reservationID,omitempty"`
	Blocked       bool      `json:"blocked"`
	Reason        string    `json:"reason,omitempty"`
	PriceOverride *float64  `json:"priceOverride,omitempty"`
}

// CalendarService is the read side of the engine. It never mutates anything.
type CalendarService struct {
	properties   PropertyRepository
	rooms        RoomRepository
	reservations ReservationRepository
	overrides    OverrideRepository
}

func NewCalendarService(properties PropertyRepository, rooms RoomRepository, reservations ReservationRepository, overrides OverrideRepository) *CalendarService {
	return &CalendarService{
		properties:   properties,
		rooms:        rooms,
		reservations: reservations,
		overrides:    overrides,
	}
}

// GetCalendar fetches the projection for [startDate, endDate). Reservations
// are matched half-open (checkInDate < end AND checkOutDate > start, active
// set only); overrides are single-day rows matched inclusively on both ends.
func (s *CalendarService) GetCalendar(ctx context.Context, propertyID uint, startDate, endDate time.Time) (*CalendarData, error) {
	start := utils.DateOnly(startDate)
	end := utils.DateOnly(endDate)

	if !end.After(start) {
		return nil, newValidationError("endDate must be after startDate")
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ByProperty(ctx, property.ID)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservations.ActiveInRange(ctx, property.ID, start, end)
	if err != nil {
		return nil, err
	}

	roomIDs := make([]uint, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	overrides, err := s.overrides.ForRooms(ctx, roomIDs, start, end)
	if err != nil {
		return nil, err
	}

	return &CalendarData{
		PropertyID:   property.ID,
		StartDate:    start,
		EndDate:      end,
		Rooms:        rooms,
		Reservations: reservations,
		Overrides:    overrides,
	}, nil
}

// DayGrid returns the fully expanded per-room, per-day grid for the range.
func (s *CalendarService) DayGrid(ctx context.Context, propertyID uint, startDate, endDate time.Time) ([]RoomDateStatus, error) {
	data, err := s.GetCalendar(ctx, propertyID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return BuildDayGrid(data.Rooms, data.Reservations, data.Overrides, data.StartDate, data.EndDate), nil
}

// DeriveRoomDateStatus computes the status of one room on one day from
// already-fetched reservations and overrides. Pure; recomputed on every call
// and never persisted.
func DeriveRoomDateStatus(roomID uint, date time.Time, reservations []models.Reservation, overrides []models.CalendarOverride) RoomDateStatus {
	day := utils.DateOnly(date)
	status := RoomDateStatus{RoomID: roomID, Date: day}

	for i := range reservations {
		r := &reservations[i]
		if activeReservationsOverlap(r, roomID, day, day.AddDate(0, 0, 1)) {
			status.Occupied = true
			status.ReservationID = r.ID
			break
		}
	}

	for i := range overrides {
		o := &overrides[i]
		if o.RoomID != roomID || !utils.DateOnly(o.Date).Equal(day) {
			continue
		}
		if o.IsBlocked {
			status.Blocked = true
			status.Reason = o.Reason
		}
		if o.PriceOverride != nil {
			status.PriceOverride = o.PriceOverride
		}
		break
	}

	return status
}

// BuildDayGrid expands rooms x days over [start, end) into grid cells, one
// per room-night, ordered by room then date.
func BuildDayGrid(rooms []models.Room, reservations []models.Reservation, overrides []models.CalendarOverride, start, end time.Time) []RoomDateStatus {
	start = utils.DateOnly(start)
	end = utils.DateOnly(end)

	var grid []RoomDateStatus
	for _, room := range rooms {
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			grid = append(grid, DeriveRoomDateStatus(room.ID, d, reservations, overrides))
		}
	}
	return grid
}
