package cabin

import "github.com/google/uuid"

// Cabin is a rentable unit with a nightly rate and an optional discount.
// Name is unique and serves as the human-facing lookup key during
// booking creation.
type Cabin struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	MaxCapacity  int       `json:"max_capacity"`
	RegularPrice float64   `json:"regular_price"`
	Discount     float64   `json:"discount"`
	Image        string    `json:"image,omitempty"`
	Description  string    `json:"description,omitempty"`
}
