package application

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/masud-rana44/the-wild-oasis/internal/domain"
	guestDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/guest"
)

// GuestResolver maps a guest identity, keyed by email, to a stable guest
// record: an existing guest with the email is reused, otherwise the
// candidate is inserted.
//
// Lookup-then-insert is a check-then-act sequence, so two concurrent
// resolutions of the same new email could both insert. The resolver
// serializes resolutions per email, and the unique index on
// guests.email catches inserts racing from other processes; on a
// conflict the existing record is fetched and reused.
type GuestResolver struct {
	guests guestDomain.Repository
	log    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGuestResolver creates a new GuestResolver.
func NewGuestResolver(guests guestDomain.Repository, log *zap.Logger) *GuestResolver {
	return &GuestResolver{
		guests: guests,
		log:    log,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Resolve returns the guest record for the candidate's email, creating
// it if absent. Every lookup failure surfaces; none is swallowed.
func (r *GuestResolver) Resolve(ctx context.Context, candidate guestDomain.Guest) (guestDomain.Guest, error) {
	if candidate.Email == "" {
		return guestDomain.Guest{}, domain.NewValidationError("guest email is required")
	}

	unlock := r.lockEmail(candidate.Email)
	defer unlock()

	existing, err := r.guests.FindByEmail(ctx, candidate.Email)
	if err != nil {
		return guestDomain.Guest{}, err
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	candidate.ID = uuid.New()
	if err := r.guests.Create(ctx, &candidate); err != nil {
		if domain.IsConflict(err) {
			// Another process inserted the same email between our lookup
			// and insert; reuse its record.
			r.log.Warn("guest insert raced with another writer, reusing existing record",
				zap.String("guest_id", candidate.ID.String()),
			)
			return r.findExisting(ctx, candidate.Email)
		}
		return guestDomain.Guest{}, err
	}
	return candidate, nil
}

func (r *GuestResolver) findExisting(ctx context.Context, email string) (guestDomain.Guest, error) {
	existing, err := r.guests.FindByEmail(ctx, email)
	if err != nil {
		return guestDomain.Guest{}, err
	}
	if len(existing) == 0 {
		return guestDomain.Guest{}, domain.NewStorageError("guest could not be created", nil)
	}
	return existing[0], nil
}

// lockEmail acquires the per-email mutex, creating it on first use.
func (r *GuestResolver) lockEmail(email string) func() {
	r.mu.Lock()
	lock, ok := r.locks[email]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[email] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
