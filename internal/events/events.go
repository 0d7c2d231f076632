package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents is the topic booking lifecycle events are published to.
const TopicBookingEvents = "booking.events"

// Booking lifecycle event types.
const (
	BookingCreated    = "booking.created"
	BookingCheckedIn  = "booking.checked_in"
	BookingCheckedOut = "booking.checked_out"
	BookingDeleted    = "booking.deleted"
)

// Event is the envelope every published message uses.
type Event struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewEvent creates an event envelope with the payload serialized to JSON.
func NewEvent(source, eventType string, data interface{}) (Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return Event{
		ID:     uuid.New().String(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   payload,
	}, nil
}

// ParseData unmarshals the event payload into v.
func (e Event) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// BookingEvent is the payload of every booking lifecycle event.
type BookingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	GuestID    uuid.UUID `json:"guest_id"`
	CabinID    uuid.UUID `json:"cabin_id"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}
