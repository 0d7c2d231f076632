package guest

import "github.com/google/uuid"

// Guest is a person who has stayed or will stay at the property. Email
// is the natural deduplication key: at most one guest record should
// exist per email.
type Guest struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Nationality string    `json:"nationality,omitempty"`
	CountryFlag string    `json:"country_flag,omitempty"`
}
