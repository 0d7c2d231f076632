package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/masud-rana44/the-wild-oasis/internal/domain"
	bookingDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/booking"
	cabinDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/cabin"
	guestDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/guest"
	"github.com/masud-rana44/the-wild-oasis/internal/events"
)

// GuestInput holds the candidate guest record supplied with a new
// booking. Email is the identity key used for deduplication.
type GuestInput struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Nationality string `json:"nationality"`
	CountryFlag string `json:"country_flag"`
}

// NewBookingInput holds the caller-supplied booking fields. Prices and
// foreign keys are derived during creation.
type NewBookingInput struct {
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	NumNights    int       `json:"num_nights" binding:"required"`
	NumGuests    int       `json:"num_guests" binding:"required"`
	ExtrasPrice  float64   `json:"extras_price"`
	HasBreakfast bool      `json:"has_breakfast"`
	Observations string    `json:"observations"`
}

// CreateBookingRequest holds the data needed to create a new booking.
// The cabin is identified by its human-facing name.
type CreateBookingRequest struct {
	CabinName string          `json:"cabin_name" binding:"required"`
	Guest     GuestInput      `json:"guest" binding:"required"`
	Booking   NewBookingInput `json:"booking" binding:"required"`
}

// UpdateBookingRequest is the HTTP-facing shape of a partial booking
// update.
type UpdateBookingRequest struct {
	Status       *string  `json:"status"`
	ExtrasPrice  *float64 `json:"extras_price"`
	HasBreakfast *bool    `json:"has_breakfast"`
	IsPaid       *bool    `json:"is_paid"`
	Observations *string  `json:"observations"`
	NumGuests    *int     `json:"num_guests"`
}

// BookingService is the facade the presentation layer calls for every
// booking read and write.
type BookingService struct {
	bookings bookingDomain.Repository
	cabins   cabinDomain.Repository
	resolver *GuestResolver
	producer *events.Producer
	pageSize int
	log      *zap.Logger
}

// NewBookingService creates a new BookingService. producer may be nil
// when event publishing is disabled.
func NewBookingService(
	bookings bookingDomain.Repository,
	cabins cabinDomain.Repository,
	resolver *GuestResolver,
	producer *events.Producer,
	pageSize int,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		cabins:   cabins,
		resolver: resolver,
		producer: producer,
		pageSize: pageSize,
		log:      log,
	}
}

// ListBookings retrieves one page of booking summaries (or the full set
// when the query carries no page) plus the total matching count.
func (s *BookingService) ListBookings(ctx context.Context, query bookingDomain.ListQuery) (*domain.PaginatedResult[bookingDomain.Summary], error) {
	summaries, total, err := s.bookings.List(ctx, query)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(summaries, total, query.Page, s.pageSize)
	return &result, nil
}

// GetBooking retrieves a single booking fully expanded with its cabin
// and guest.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	return s.bookings.FindByID(ctx, id)
}

// CreateBooking orchestrates the creation workflow: cabin lookup by
// name, guest resolution, price derivation, insert. Validation happens
// before any write, so a failed lookup leaves no partial side effects.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*bookingDomain.Booking, error) {
	cabins, err := s.cabins.FindByName(ctx, req.CabinName)
	if err != nil {
		return nil, err
	}
	if len(cabins) == 0 {
		return nil, domain.NewValidationError("no cabin found with this name")
	}
	if len(cabins) > 1 {
		// The name carries a unique index; more than one match means the
		// catalog is inconsistent. Refuse rather than pick one.
		return nil, domain.NewValidationError("more than one cabin has this name")
	}
	cb := cabins[0]

	data := bookingDomain.NewBookingData{
		StartDate:    bookingDomain.NormalizeDate(req.Booking.StartDate),
		EndDate:      bookingDomain.NormalizeDate(req.Booking.EndDate),
		NumNights:    req.Booking.NumNights,
		NumGuests:    req.Booking.NumGuests,
		ExtrasPrice:  req.Booking.ExtrasPrice,
		HasBreakfast: req.Booking.HasBreakfast,
		Observations: req.Booking.Observations,
	}
	if err := data.Validate(cb.MaxCapacity); err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, guestDomain.Guest{
		FullName:    req.Guest.FullName,
		Email:       req.Guest.Email,
		Nationality: req.Guest.Nationality,
		CountryFlag: req.Guest.CountryFlag,
	})
	if err != nil {
		return nil, err
	}

	bk := &bookingDomain.Booking{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		StartDate:    data.StartDate,
		EndDate:      data.EndDate,
		NumNights:    data.NumNights,
		NumGuests:    data.NumGuests,
		Status:       bookingDomain.StatusUnconfirmed,
		CabinPrice:   bookingDomain.CabinPrice(cb.RegularPrice, cb.Discount, data.NumNights),
		ExtrasPrice:  data.ExtrasPrice,
		TotalPrice:   bookingDomain.TotalPrice(cb.RegularPrice, cb.Discount, data.NumNights, data.ExtrasPrice),
		HasBreakfast: data.HasBreakfast,
		Observations: data.Observations,
		CabinID:      cb.ID,
		GuestID:      resolved.ID,
	}

	if err := s.bookings.Create(ctx, bk); err != nil {
		// The resolved guest is not rolled back here; a guest record
		// without bookings is an accepted orphan-record risk.
		return nil, err
	}

	s.publishBookingEvent(ctx, events.BookingCreated, bk)
	return bk, nil
}

// UpdateBooking applies a partial field update to exactly one booking
// and returns the updated record. Status changes are checked against
// the forward-only transition table before storage is touched.
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*bookingDomain.Booking, error) {
	patch := bookingDomain.Patch{
		ExtrasPrice:  req.ExtrasPrice,
		HasBreakfast: req.HasBreakfast,
		IsPaid:       req.IsPaid,
		Observations: req.Observations,
		NumGuests:    req.NumGuests,
	}

	if req.Status != nil {
		target, err := bookingDomain.ParseStatus(*req.Status)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		patch.Status = &target
	}
	if req.NumGuests != nil && *req.NumGuests < 1 {
		return nil, domain.NewValidationError("booking must have at least one guest")
	}

	if patch.Status != nil {
		current, err := s.bookings.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !current.Status.CanTransitionTo(*patch.Status) {
			return nil, domain.NewValidationError(fmt.Sprintf(
				"booking status cannot change from %s to %s", current.Status, *patch.Status,
			))
		}
	}

	return s.bookings.Update(ctx, id, patch)
}

// CheckIn transitions an unconfirmed booking to checked-in and marks it
// paid. A non-nil extrasPrice adds breakfast, replacing the booking's
// extras; the repository keeps the price-sum invariant by recomputing
// the total from the stored cabin price.
func (s *BookingService) CheckIn(ctx context.Context, id uuid.UUID, extrasPrice *float64) (*bookingDomain.Booking, error) {
	status := string(bookingDomain.StatusCheckedIn)
	paid := true
	req := UpdateBookingRequest{
		Status: &status,
		IsPaid: &paid,
	}
	if extrasPrice != nil {
		breakfast := true
		req.HasBreakfast = &breakfast
		req.ExtrasPrice = extrasPrice
	}

	bk, err := s.UpdateBooking(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.publishBookingEvent(ctx, events.BookingCheckedIn, bk)
	return bk, nil
}

// CheckOut transitions a checked-in booking to checked-out.
func (s *BookingService) CheckOut(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	status := string(bookingDomain.StatusCheckedOut)
	bk, err := s.UpdateBooking(ctx, id, UpdateBookingRequest{Status: &status})
	if err != nil {
		return nil, err
	}
	s.publishBookingEvent(ctx, events.BookingCheckedOut, bk)
	return bk, nil
}

// DeleteBooking permanently removes one booking. Who may delete is
// enforced by the storage service's access-control layer.
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.publishBookingEvent(ctx, events.BookingDeleted, bk)
	return nil
}

// GetBookingsAfterDate returns the revenue projection of bookings
// created between since and the end of today.
func (s *BookingService) GetBookingsAfterDate(ctx context.Context, since time.Time) ([]bookingDomain.Revenue, error) {
	return s.bookings.FindCreatedBetween(ctx, since, bookingDomain.EndOfToday())
}

// GetStaysAfterDate returns full booking rows with the guest name for
// stays starting between since and today.
func (s *BookingService) GetStaysAfterDate(ctx context.Context, since time.Time) ([]bookingDomain.Stay, error) {
	return s.bookings.FindStaysBetween(ctx, bookingDomain.NormalizeDate(since), bookingDomain.Today())
}

// GetStaysTodayActivity returns the bookings with a check-in or
// check-out event today, ordered by creation time.
func (s *BookingService) GetStaysTodayActivity(ctx context.Context) ([]bookingDomain.TodayActivity, error) {
	return s.bookings.FindTodayActivity(ctx, bookingDomain.Today())
}

// publishBookingEvent publishes a lifecycle event best-effort: a
// publish failure is logged and never fails the operation.
func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	if s.producer == nil {
		return
	}

	evt, err := events.NewEvent("the-wild-oasis", eventType, events.BookingEvent{
		BookingID:  bk.ID,
		GuestID:    bk.GuestID,
		CabinID:    bk.CabinID,
		Status:     string(bk.Status),
		TotalPrice: bk.TotalPrice,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("failed to create booking event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.Publish(ctx, events.TopicBookingEvents, bk.ID.String(), evt); err != nil {
		s.log.Error("failed to publish booking event",
			zap.String("event_type", eventType),
			zap.String("booking_id", bk.ID.String()),
			zap.Error(err),
		)
	}
}
