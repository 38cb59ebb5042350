package domain

import (
	"context"
	"fmt"
	"time"
)

// Event is a dated milestone shown on the age card.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventRepository is the port for event persistence.
type EventRepository interface {
	AddEvent(ctx context.Context, e Event) error
	ListEvents(ctx context.Context) ([]Event, error)
	// DeleteEvent reports whether an event with the given id was removed.
	DeleteEvent(ctx context.Context, id string) (bool, error)
}

var eventLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseEventTime parses an event date given as YYYY-MM-DD, a datetime-local
// value or RFC 3339. Values without a zone are read as UTC.
func ParseEventTime(s string) (time.Time, error) {
	for _, layout := range eventLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q is not an ISO date", ErrValidation, s)
}
