package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for bookings.
type Repository interface {
	// List retrieves booking summary rows matching the query together
	// with the total count unaffected by pagination.
	List(ctx context.Context, query ListQuery) ([]Summary, int64, error)

	// FindByID retrieves one booking fully expanded with its cabin and guest.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Create persists a new booking.
	Create(ctx context.Context, bk *Booking) error

	// Update applies a partial update to exactly one booking and returns
	// the updated record.
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Booking, error)

	// Delete removes exactly one booking by identity.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindCreatedBetween returns the revenue projection of bookings whose
	// creation timestamp lies in [from, to].
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Revenue, error)

	// FindStaysBetween returns full booking rows with the guest name for
	// stays whose start date lies in [from, to].
	FindStaysBetween(ctx context.Context, from, to time.Time) ([]Stay, error)

	// FindTodayActivity returns bookings with a check-in or check-out
	// event on the given date, ordered by creation time. The predicate is
	// pushed to storage so the full booking history is never retrieved.
	FindTodayActivity(ctx context.Context, today time.Time) ([]TodayActivity, error)
}
