package guest

import "context"

// Repository defines the persistence contract for guests.
type Repository interface {
	// FindByEmail retrieves every guest with the given email, oldest
	// first.
	FindByEmail(ctx context.Context, email string) ([]Guest, error)

	// Create persists a new guest, filling in its generated identity.
	Create(ctx context.Context, g *Guest) error
}
