package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"dashboard/internal/domain"
)

// EventService encapsulates the milestone events use cases.
type EventService struct {
	repo  domain.EventRepository
	clock Clock
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(repo domain.EventRepository, clock Clock) *EventService {
	if clock == nil {
		clock = RealClock{}
	}
	return &EventService{repo: repo, clock: clock}
}

// NewEvent is the input for EventService.Create.
type NewEvent struct {
	Title       string
	Description string
	Date        string
}

// Create validates and stores a new event with a fresh id.
func (s *EventService) Create(ctx context.Context, in NewEvent) (*domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if _, err := domain.ParseEventTime(date); err != nil {
		return nil, err
	}

	e := domain.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Date:        date,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.AddEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("add event: %w", err)
	}
	return &e, nil
}

// List returns all events ordered by date, oldest first.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	items, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return eventTime(items[i]).Before(eventTime(items[j]))
	})
	return items, nil
}

// Delete removes the event with the given id.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	ok, err := s.repo.DeleteEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if !ok {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Unparseable dates sort after every valid one.
func eventTime(e domain.Event) time.Time {
	t, err := domain.ParseEventTime(e.Date)
	if err != nil {
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return t
}
