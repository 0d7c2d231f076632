package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/masud-rana44/the-wild-oasis/internal/domain"
	bookingDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/booking"
	cabinDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/cabin"
	guestDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/guest"
)

// memBookingRepo is an in-memory bookingDomain.Repository with the same
// observable behavior as the GORM implementation, including the
// total-price recomputation on extras changes.
type memBookingRepo struct {
	mu       sync.Mutex
	pageSize int
	bookings map[uuid.UUID]bookingDomain.Booking
	cabins   map[uuid.UUID]cabinDomain.Cabin
	guests   map[uuid.UUID]guestDomain.Guest
}

func newMemBookingRepo(pageSize int) *memBookingRepo {
	return &memBookingRepo{
		pageSize: pageSize,
		bookings: make(map[uuid.UUID]bookingDomain.Booking),
		cabins:   make(map[uuid.UUID]cabinDomain.Cabin),
		guests:   make(map[uuid.UUID]guestDomain.Guest),
	}
}

func (r *memBookingRepo) addCabin(cb cabinDomain.Cabin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cabins[cb.ID] = cb
}

func (r *memBookingRepo) addGuest(g guestDomain.Guest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guests[g.ID] = g
}

func (r *memBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

func (r *memBookingRepo) List(_ context.Context, query bookingDomain.ListQuery) ([]bookingDomain.Summary, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []bookingDomain.Booking
	for _, bk := range r.bookings {
		if query.Filter != nil && string(bk.Status) != query.Filter.Value {
			continue
		}
		rows = append(rows, bk)
	}
	sortBookings(rows, query.Sort)

	total := int64(len(rows))
	if query.Page > 0 {
		offset := (query.Page - 1) * r.pageSize
		if offset >= len(rows) {
			rows = nil
		} else {
			end := offset + r.pageSize
			if end > len(rows) {
				end = len(rows)
			}
			rows = rows[offset:end]
		}
	}

	summaries := make([]bookingDomain.Summary, 0, len(rows))
	for _, bk := range rows {
		summaries = append(summaries, bookingDomain.Summary{
			ID:            bk.ID,
			CreatedAt:     bk.CreatedAt,
			StartDate:     bk.StartDate,
			EndDate:       bk.EndDate,
			NumNights:     bk.NumNights,
			NumGuests:     bk.NumGuests,
			Status:        bk.Status,
			TotalPrice:    bk.TotalPrice,
			CabinName:     r.cabins[bk.CabinID].Name,
			GuestFullName: r.guests[bk.GuestID].FullName,
			GuestEmail:    r.guests[bk.GuestID].Email,
		})
	}
	return summaries, total, nil
}

func sortBookings(rows []bookingDomain.Booking, s *bookingDomain.Sort) {
	field := bookingDomain.SortFieldCreatedAt
	direction := bookingDomain.SortAscending
	if s != nil {
		field = s.Field
		direction = s.Direction
	}
	sort.SliceStable(rows, func(i, j int) bool {
		var less bool
		switch field {
		case bookingDomain.SortFieldStartDate:
			less = rows[i].StartDate.Before(rows[j].StartDate)
		case bookingDomain.SortFieldTotalPrice:
			less = rows[i].TotalPrice < rows[j].TotalPrice
		default:
			less = rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		if direction == bookingDomain.SortDescending {
			return !less
		}
		return less
	})
}

func (r *memBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	if cb, ok := r.cabins[bk.CabinID]; ok {
		cbCopy := cb
		bk.Cabin = &cbCopy
	}
	if g, ok := r.guests[bk.GuestID]; ok {
		gCopy := g
		bk.Guest = &gCopy
	}
	return &bk, nil
}

func (r *memBookingRepo) Create(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID] = *bk
	return nil
}

func (r *memBookingRepo) Update(ctx context.Context, id uuid.UUID, patch bookingDomain.Patch) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	bk, ok := r.bookings[id]
	if !ok {
		r.mu.Unlock()
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	if patch.Status != nil {
		bk.Status = *patch.Status
	}
	if patch.ExtrasPrice != nil {
		bk.ExtrasPrice = *patch.ExtrasPrice
		bk.TotalPrice = bk.CabinPrice + *patch.ExtrasPrice
	}
	if patch.HasBreakfast != nil {
		bk.HasBreakfast = *patch.HasBreakfast
	}
	if patch.IsPaid != nil {
		bk.IsPaid = *patch.IsPaid
	}
	if patch.Observations != nil {
		bk.Observations = *patch.Observations
	}
	if patch.NumGuests != nil {
		bk.NumGuests = *patch.NumGuests
	}
	r.bookings[id] = bk
	r.mu.Unlock()
	return r.FindByID(ctx, id)
}

func (r *memBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return domain.NewNotFoundError("booking", id.String())
	}
	delete(r.bookings, id)
	return nil
}

func (r *memBookingRepo) FindCreatedBetween(_ context.Context, from, to time.Time) ([]bookingDomain.Revenue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var revenues []bookingDomain.Revenue
	for _, bk := range r.bookings {
		if bk.CreatedAt.Before(from) || bk.CreatedAt.After(to) {
			continue
		}
		revenues = append(revenues, bookingDomain.Revenue{
			CreatedAt:   bk.CreatedAt,
			TotalPrice:  bk.TotalPrice,
			ExtrasPrice: bk.ExtrasPrice,
		})
	}
	return revenues, nil
}

func (r *memBookingRepo) FindStaysBetween(_ context.Context, from, to time.Time) ([]bookingDomain.Stay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stays []bookingDomain.Stay
	for _, bk := range r.bookings {
		if bk.StartDate.Before(from) || bk.StartDate.After(to) {
			continue
		}
		stays = append(stays, bookingDomain.Stay{
			Booking:       bk,
			GuestFullName: r.guests[bk.GuestID].FullName,
		})
	}
	return stays, nil
}

func (r *memBookingRepo) FindTodayActivity(_ context.Context, today time.Time) ([]bookingDomain.TodayActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []bookingDomain.Booking
	for _, bk := range r.bookings {
		arriving := bk.Status == bookingDomain.StatusUnconfirmed && bk.StartDate.Equal(today)
		departing := bk.Status == bookingDomain.StatusCheckedIn && bk.EndDate.Equal(today)
		if arriving || departing {
			rows = append(rows, bk)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })

	activities := make([]bookingDomain.TodayActivity, 0, len(rows))
	for _, bk := range rows {
		g := r.guests[bk.GuestID]
		activities = append(activities, bookingDomain.TodayActivity{
			ID:               bk.ID,
			CreatedAt:        bk.CreatedAt,
			StartDate:        bk.StartDate,
			EndDate:          bk.EndDate,
			NumNights:        bk.NumNights,
			NumGuests:        bk.NumGuests,
			Status:           bk.Status,
			GuestFullName:    g.FullName,
			GuestNationality: g.Nationality,
			GuestCountryFlag: g.CountryFlag,
		})
	}
	return activities, nil
}

// memCabinRepo is an in-memory cabinDomain.Repository.
type memCabinRepo struct {
	cabins []cabinDomain.Cabin
	err    error
}

func (r *memCabinRepo) FindByName(_ context.Context, name string) ([]cabinDomain.Cabin, error) {
	if r.err != nil {
		return nil, r.err
	}
	var matches []cabinDomain.Cabin
	for _, cb := range r.cabins {
		if cb.Name == name {
			matches = append(matches, cb)
		}
	}
	return matches, nil
}

// memGuestRepo is an in-memory guestDomain.Repository enforcing the
// unique email constraint. racing simulates another process owning the
// email: the first insert for it fails with a conflict and the record
// becomes visible, mirroring a lost unique-index race.
type memGuestRepo struct {
	mu      sync.Mutex
	guests  []guestDomain.Guest
	findErr error
	racing  *guestDomain.Guest
	creates int
}

func (r *memGuestRepo) FindByEmail(_ context.Context, email string) ([]guestDomain.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var matches []guestDomain.Guest
	for _, g := range r.guests {
		if g.Email == email {
			matches = append(matches, g)
		}
	}
	return matches, nil
}

func (r *memGuestRepo) Create(_ context.Context, g *guestDomain.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.racing != nil && r.racing.Email == g.Email {
		r.guests = append(r.guests, *r.racing)
		r.racing = nil
		return domain.NewConflictError("a guest with this email already exists")
	}
	for _, existing := range r.guests {
		if existing.Email == g.Email {
			return domain.NewConflictError("a guest with this email already exists")
		}
	}
	r.guests = append(r.guests, *g)
	return nil
}

func (r *memGuestRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.guests)
}
