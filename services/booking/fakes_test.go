package booking

import (
	"context"
	"sync"
	"time"

	availabilityRepo "bookhive/database/repository/availability"
	bookingRepo "bookhive/database/repository/booking"
	profileRepo "bookhive/database/repository/profile"
	userRepo "bookhive/database/repository/user"
	"bookhive/models"
	"bookhive/utils"
)

// In-memory repositories for exercising the service without a database.
// The slot fake guards its counters with a mutex so the concurrency tests
// see the same reserve atomicity the conditional update gives in production.

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.AvailabilitySlot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*models.AvailabilitySlot)}
}

func slotKey(profileID string, date time.Time, timeSlot string) string {
	return profileID + "|" + utils.FormatDate(date) + "|" + timeSlot
}

func (r *fakeSlotRepo) add(s models.AvailabilitySlot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.IsAvailable = s.BookedCount < s.MaxCapacity
	cp := s
	r.slots[slotKey(s.ProfileID, s.Date, s.TimeSlot)] = &cp
}

func (r *fakeSlotRepo) CreateMany(_ context.Context, slots []models.AvailabilitySlot) error {
	for _, s := range slots {
		r.add(s)
	}
	return nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, slotID string) (*models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.ID == slotID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, availabilityRepo.ErrNotFound
}

func (r *fakeSlotRepo) GetByProfileDateSlot(_ context.Context, profileID string, date time.Time, timeSlot string) (*models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotKey(profileID, date, timeSlot)]
	if !ok {
		return nil, availabilityRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) GetByProfileAndDate(_ context.Context, profileID string, date time.Time) ([]models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilitySlot
	for _, s := range r.slots {
		if s.ProfileID == profileID && utils.SameDate(s.Date, date) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) GetByProfileDateRange(_ context.Context, profileID string, start, end time.Time) ([]models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilitySlot
	for _, s := range r.slots {
		if s.ProfileID == profileID && !s.Date.Before(start) && !s.Date.After(end) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) UpdateCapacity(_ context.Context, slotID string, newCapacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.ID == slotID {
			s.MaxCapacity = newCapacity
			s.IsAvailable = s.BookedCount < s.MaxCapacity
			return nil
		}
	}
	return availabilityRepo.ErrNotFound
}

func (r *fakeSlotRepo) Reserve(_ context.Context, profileID string, date time.Time, timeSlot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotKey(profileID, date, timeSlot)]
	if !ok {
		return availabilityRepo.ErrNotFound
	}
	if s.BookedCount >= s.MaxCapacity {
		return availabilityRepo.ErrCapacityExhausted
	}
	s.BookedCount++
	s.IsAvailable = s.BookedCount < s.MaxCapacity
	return nil
}

func (r *fakeSlotRepo) Release(_ context.Context, profileID string, date time.Time, timeSlot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotKey(profileID, date, timeSlot)]
	if !ok {
		return availabilityRepo.ErrNotFound
	}
	if s.BookedCount > 0 {
		s.BookedCount--
	}
	s.IsAvailable = s.BookedCount < s.MaxCapacity
	return nil
}

func (r *fakeSlotRepo) DeleteByID(_ context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, s := range r.slots {
		if s.ID == slotID {
			delete(r.slots, k)
			return nil
		}
	}
	return availabilityRepo.ErrNotFound
}

func (r *fakeSlotRepo) DeleteByProfileAndDate(_ context.Context, profileID string, date time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, s := range r.slots {
		if s.ProfileID == profileID && utils.SameDate(s.Date, date) {
			delete(r.slots, k)
			n++
		}
	}
	return n, nil
}

func (r *fakeSlotRepo) EnsureIndexes(context.Context) error { return nil }

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	notes    []models.BookingNote
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Insert(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByRef(_ context.Context, bookingRef string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingRef == bookingRef {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByProfile(_ context.Context, profileID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProfileID == profileID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatusIfCurrent(_ context.Context, bookingID string, from, to models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeBookingRepo) UpdateSchedule(_ context.Context, bookingID string, newDate time.Time, newTimeSlot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.BookingDate = newDate
	b.TimeSlot = newTimeSlot
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeBookingRepo) RefExists(_ context.Context, bookingRef string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingRef == bookingRef {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) CountActiveForUserSlot(_ context.Context, userID, profileID string, date time.Time, timeSlot string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.UserID == userID && b.ProfileID == profileID &&
			utils.SameDate(b.BookingDate, date) && b.TimeSlot == timeSlot &&
			b.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CountConfirmedForSlot(_ context.Context, profileID string, date time.Time, timeSlot string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.ProfileID == profileID && utils.SameDate(b.BookingDate, date) &&
			b.TimeSlot == timeSlot && b.Status == models.StatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) DatesWithActiveBookings(_ context.Context, profileID string, dates []time.Time) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []time.Time
	for _, d := range dates {
		for _, b := range r.bookings {
			if b.ProfileID == profileID && utils.SameDate(b.BookingDate, d) && b.Status.IsActive() {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListConfirmedForDate(_ context.Context, date time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if utils.SameDate(b.BookingDate, date) && b.Status == models.StatusConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) AddNote(_ context.Context, note *models.BookingNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, *note)
	return nil
}

func (r *fakeBookingRepo) ListNotes(_ context.Context, bookingID string) ([]models.BookingNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookingNote
	for _, n := range r.notes {
		if n.BookingID == bookingID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) EnsureIndexes(context.Context) error { return nil }

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func newFakeProfileRepo(profiles ...*models.Profile) *fakeProfileRepo {
	m := make(map[string]*models.Profile, len(profiles))
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &fakeProfileRepo{profiles: m}
}

func (r *fakeProfileRepo) GetByID(_ context.Context, profileID string) (*models.Profile, error) {
	p, ok := r.profiles[profileID]
	if !ok {
		return nil, profileRepo.ErrNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) GetByOwnerID(_ context.Context, ownerID string) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.OwnerID == ownerID {
			return p, nil
		}
	}
	return nil, profileRepo.ErrNotFound
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	m := make(map[string]*models.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return u, nil
}

type fakeNotifier struct {
	mu          sync.Mutex
	created     []string
	rescheduled []string
	reminded    []string
}

func (n *fakeNotifier) NotifyOwnerNewBooking(_ context.Context, b *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b.ID)
	return nil
}

func (n *fakeNotifier) NotifyReschedule(_ context.Context, b *models.Booking, _ time.Time, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rescheduled = append(n.rescheduled, b.ID)
	return nil
}

func (n *fakeNotifier) NotifyReminder(_ context.Context, b *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reminded = append(n.reminded, b.ID)
	return nil
}
