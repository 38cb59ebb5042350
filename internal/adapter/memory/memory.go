// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sync"

	"dashboard/internal/domain"
)

// DB implements an in-memory database storage. Items are kept newest first,
// the order a pushed-to-head list returns them in.
type DB struct {
	mu           sync.Mutex
	events       []domain.Event
	measurements []domain.Measurement
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.EventRepository = (*DB)(nil)
var _ domain.MeasurementRepository = (*DB)(nil)

// --- EventRepository ---

// AddEvent stores an event.
func (db *DB) AddEvent(ctx context.Context, e domain.Event) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.events = append([]domain.Event{e}, db.events...)
	return nil
}

// ListEvents returns a copy of every stored event.
func (db *DB) ListEvents(ctx context.Context) ([]domain.Event, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Event, len(db.events))
	copy(result, db.events)
	return result, nil
}

// DeleteEvent removes the event with the given id.
func (db *DB) DeleteEvent(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.events {
		if e.ID == id {
			db.events = append(db.events[:i], db.events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// --- MeasurementRepository ---

// AddMeasurement stores a measurement.
func (db *DB) AddMeasurement(ctx context.Context, m domain.Measurement) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.measurements = append([]domain.Measurement{m}, db.measurements...)
	return nil
}

// ListMeasurements returns a copy of every stored measurement.
func (db *DB) ListMeasurements(ctx context.Context) ([]domain.Measurement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Measurement, len(db.measurements))
	copy(result, db.measurements)
	return result, nil
}

// DeleteMeasurement removes the measurement with the given id.
func (db *DB) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, m := range db.measurements {
		if m.ID == id {
			db.measurements = append(db.measurements[:i], db.measurements[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
