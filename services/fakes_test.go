package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
	"github.com/ZhuChiYu/RoomEase-sub000/utils"
)

// fakeStore is an in-memory stand-in for the Postgres stores. Create and Save
// re-check the no-overlap invariant under the mutex, the same way the
// reservations_no_overlap exclusion constraint rejects a racing writer.
type fakeStore struct {
	mu            sync.Mutex
	nextID        uint
	reservations  map[uint]*models.Reservation
	rooms         map[uint]*models.Room
	properties    map[uint]*models.Property
	overrides     map[string]*models.CalendarOverride
	overrideCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reservations: make(map[uint]*models.Reservation),
		rooms:        make(map[uint]*models.Room),
		properties:   make(map[uint]*models.Property),
		overrides:    make(map[string]*models.CalendarOverride),
	}
}

func (f *fakeStore) addProperty(id uint, name string) {
	f.properties[id] = &models.Property{Model: gormModel(id), Name: name}
}

func (f *fakeStore) addRoom(id, propertyID uint, name string) {
	f.rooms[id] = &models.Room{Model: gormModel(id), PropertyID: propertyID, Name: name}
}

func (f *fakeStore) seedReservation(roomID, propertyID uint, checkIn, checkOut time.Time, status models.ReservationStatus) *models.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r := &models.Reservation{
		Model:        gormModel(f.nextID),
		RoomID:       roomID,
		PropertyID:   propertyID,
		CheckInDate:  utils.DateOnly(checkIn),
		CheckOutDate: utils.DateOnly(checkOut),
		Status:       status,
	}
	f.reservations[r.ID] = r
	return cloneReservation(r)
}

// --- ReservationRepository ---

func (f *fakeStore) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, &NotFoundError{Resource: "reservation", ID: id}
	}
	return cloneReservation(r), nil
}

func (f *fakeStore) ActiveOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeOverlappingLocked(roomID, checkIn, checkOut, excludeID), nil
}

func (f *fakeStore) activeOverlappingLocked(roomID uint, checkIn, checkOut time.Time, excludeID uint) []models.Reservation {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.ID == excludeID {
			continue
		}
		if activeReservationsOverlap(r, roomID, checkIn, checkOut) {
			out = append(out, *cloneReservation(r))
		}
	}
	return out
}

func (f *fakeStore) ActiveInRange(ctx context.Context, propertyID uint, start, end time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.PropertyID == propertyID && r.Status.IsActive() &&
			r.CheckInDate.Before(end) && r.CheckOutDate.After(start) {
			out = append(out, *cloneReservation(r))
		}
	}
	return out, nil
}

func (f *fakeStore) ByProperty(ctx context.Context, propertyID uint) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.PropertyID == propertyID {
			out = append(out, *cloneReservation(r))
		}
	}
	return out, nil
}

func (f *fakeStore) ByGuest(ctx context.Context, guestID uint) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.GuestID == guestID {
			out = append(out, *cloneReservation(r))
		}
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, reservation *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reservation.Status.IsActive() {
		if overlapping := f.activeOverlappingLocked(reservation.RoomID, reservation.CheckInDate, reservation.CheckOutDate, 0); len(overlapping) > 0 {
			return &ConflictError{
				RoomID:       reservation.RoomID,
				CheckInDate:  reservation.CheckInDate,
				CheckOutDate: reservation.CheckOutDate,
			}
		}
	}
	f.nextID++
	reservation.ID = f.nextID
	f.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (f *fakeStore) Save(ctx context.Context, reservation *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reservations[reservation.ID]; !ok {
		return &NotFoundError{Resource: "reservation", ID: reservation.ID}
	}
	if reservation.Status.IsActive() {
		if overlapping := f.activeOverlappingLocked(reservation.RoomID, reservation.CheckInDate, reservation.CheckOutDate, reservation.ID); len(overlapping) > 0 {
			return &ConflictError{
				RoomID:       reservation.RoomID,
				CheckInDate:  reservation.CheckInDate,
				CheckOutDate: reservation.CheckOutDate,
			}
		}
	}
	f.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (f *fakeStore) HardDelete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reservations[id]; !ok {
		return &NotFoundError{Resource: "reservation", ID: id}
	}
	delete(f.reservations, id)
	return nil
}

// --- RoomRepository / PropertyRepository ---

func (f *fakeStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return nil, &NotFoundError{Resource: "room", ID: id}
	}
	copy := *room
	return &copy, nil
}

func (f *fakeStore) RoomsByProperty(ctx context.Context, propertyID uint) ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Room
	for _, room := range f.rooms {
		if room.PropertyID == propertyID {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (f *fakeStore) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	property, ok := f.properties[id]
	if !ok {
		return nil, &NotFoundError{Resource: "property", ID: id}
	}
	copy := *property
	return &copy, nil
}

// fakeRooms and fakeProperties adapt fakeStore to the narrow repository
// interfaces without clashing method names.
type fakeRooms struct{ *fakeStore }

func (f fakeRooms) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	return f.GetRoom(ctx, id)
}

func (f fakeRooms) ByProperty(ctx context.Context, propertyID uint) ([]models.Room, error) {
	return f.RoomsByProperty(ctx, propertyID)
}

type fakeProperties struct{ *fakeStore }

func (f fakeProperties) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	return f.GetProperty(ctx, id)
}

// --- OverrideRepository ---

type fakeOverrides struct{ *fakeStore }

func overrideKey(roomID uint, date time.Time) string {
	return fmt.Sprintf("%d|%s", roomID, date.Format("2006-01-02"))
}

func (f fakeOverrides) UpsertBlocks(ctx context.Context, overrides []models.CalendarOverride) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrideCalls++
	for _, o := range overrides {
		key := overrideKey(o.RoomID, o.Date)
		if existing, ok := f.overrides[key]; ok {
			existing.IsBlocked = o.IsBlocked
			existing.Reason = o.Reason
			continue
		}
		f.nextID++
		row := o
		row.ID = f.nextID
		f.overrides[key] = &row
	}
	return nil
}

func (f fakeOverrides) DeleteBlocked(ctx context.Context, roomID uint, start, end time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for key, o := range f.overrides {
		if o.RoomID == roomID && o.IsBlocked && !o.Date.Before(start) && !o.Date.After(end) {
			delete(f.overrides, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f fakeOverrides) UpsertPrice(ctx context.Context, roomID uint, date time.Time, price float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := overrideKey(roomID, date)
	if existing, ok := f.overrides[key]; ok {
		existing.PriceOverride = &price
		return nil
	}
	f.nextID++
	f.overrides[key] = &models.CalendarOverride{
		Model:         gormModel(f.nextID),
		RoomID:        roomID,
		Date:          date,
		PriceOverride: &price,
	}
	return nil
}

func (f fakeOverrides) ForRoom(ctx context.Context, roomID uint, start, end time.Time) ([]models.CalendarOverride, error) {
	return f.ForRooms(ctx, []uint{roomID}, start, end)
}

func (f fakeOverrides) ForRooms(ctx context.Context, roomIDs []uint, start, end time.Time) ([]models.CalendarOverride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CalendarOverride
	for _, o := range f.overrides {
		for _, roomID := range roomIDs {
			if o.RoomID == roomID && !o.Date.Before(start) && !o.Date.After(end) {
				out = append(out, *o)
				break
			}
		}
	}
	return out, nil
}

// --- helpers ---

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func cloneReservation(r *models.Reservation) *models.Reservation {
	copy := *r
	return &copy
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
