package cabin

import "context"

// Repository defines the persistence contract for cabins.
type Repository interface {
	// FindByName retrieves every cabin with the given name. Name carries
	// a unique index, so more than one match signals inconsistent data;
	// the caller decides how to treat it.
	FindByName(ctx context.Context, name string) ([]Cabin, error)
}
