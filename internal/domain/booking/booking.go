package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/masud-rana44/the-wild-oasis/internal/domain"
	"github.com/masud-rana44/the-wild-oasis/internal/domain/cabin"
	"github.com/masud-rana44/the-wild-oasis/internal/domain/guest"
)

// Booking is a reservation of one cabin by one guest for a date range.
// CabinPrice and TotalPrice are derived at creation time from the cabin's
// rate and frozen thereafter; TotalPrice always equals
// CabinPrice + ExtrasPrice.
type Booking struct {
	ID           uuid.UUID    `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	NumNights    int          `json:"num_nights"`
	NumGuests    int          `json:"num_guests"`
	Status       Status       `json:"status"`
	CabinPrice   float64      `json:"cabin_price"`
	ExtrasPrice  float64      `json:"extras_price"`
	TotalPrice   float64      `json:"total_price"`
	HasBreakfast bool         `json:"has_breakfast"`
	IsPaid       bool         `json:"is_paid"`
	Observations string       `json:"observations,omitempty"`
	CabinID      uuid.UUID    `json:"cabin_id"`
	GuestID      uuid.UUID    `json:"guest_id"`
	Cabin        *cabin.Cabin `json:"cabin,omitempty"`
	Guest        *guest.Guest `json:"guest,omitempty"`
}

// Summary is the narrow row returned by list queries: booking columns
// joined with the cabin name and the guest's name and email.
type Summary struct {
	ID            uuid.UUID `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	NumNights     int       `json:"num_nights"`
	NumGuests     int       `json:"num_guests"`
	Status        Status    `json:"status"`
	TotalPrice    float64   `json:"total_price"`
	CabinName     string    `json:"cabin_name"`
	GuestFullName string    `json:"guest_full_name"`
	GuestEmail    string    `json:"guest_email"`
}

// Revenue is the reporting projection for bookings created in a period.
type Revenue struct {
	CreatedAt   time.Time `json:"created_at"`
	TotalPrice  float64   `json:"total_price"`
	ExtrasPrice float64   `json:"extras_price"`
}

// Stay is a full booking row with the guest's name attached, used by the
// recent-stays report.
type Stay struct {
	Booking
	GuestFullName string `json:"guest_full_name"`
}

// TodayActivity is a booking whose stay starts or ends today: either an
// unconfirmed booking arriving today or a checked-in booking departing
// today.
type TodayActivity struct {
	ID               uuid.UUID `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	NumNights        int       `json:"num_nights"`
	NumGuests        int       `json:"num_guests"`
	Status           Status    `json:"status"`
	GuestFullName    string    `json:"guest_full_name"`
	GuestNationality string    `json:"guest_nationality"`
	GuestCountryFlag string    `json:"guest_country_flag"`
}

// NewBookingData holds the caller-supplied fields for a booking to be
// created. Prices and foreign keys are derived during creation and are
// deliberately absent.
type NewBookingData struct {
	StartDate    time.Time
	EndDate      time.Time
	NumNights    int
	NumGuests    int
	ExtrasPrice  float64
	HasBreakfast bool
	Observations string
}

// Validate checks the date range, the derived night count and the guest
// count against the cabin's capacity.
func (d NewBookingData) Validate(maxCapacity int) error {
	if !d.EndDate.After(d.StartDate) {
		return domain.NewValidationError("end date must be after start date")
	}
	if d.NumNights != NightsBetween(d.StartDate, d.EndDate) {
		return domain.NewValidationError("number of nights does not match the date range")
	}
	if d.NumGuests < 1 {
		return domain.NewValidationError("booking must have at least one guest")
	}
	if d.NumGuests > maxCapacity {
		return domain.NewValidationError("number of guests exceeds the cabin's capacity")
	}
	return nil
}

// Patch holds a partial update of a booking. Nil fields are left
// untouched. An ExtrasPrice change also moves TotalPrice so the
// price-sum invariant holds; a Status change is validated against the
// transition table before it reaches storage.
type Patch struct {
	Status       *Status
	ExtrasPrice  *float64
	HasBreakfast *bool
	IsPaid       *bool
	Observations *string
	NumGuests    *int
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.ExtrasPrice == nil && p.HasBreakfast == nil &&
		p.IsPaid == nil && p.Observations == nil && p.NumGuests == nil
}
