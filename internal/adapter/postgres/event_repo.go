package postgres

import (
	"context"
	"fmt"

	"dashboard/internal/domain"
)

var _ domain.EventRepository = (*DB)(nil)

// AddEvent inserts a new event.
func (d *DB) AddEvent(ctx context.Context, e domain.Event) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO events(id, title, description, date, created_at) VALUES($1, $2, $3, $4, $5);",
		e.ID, e.Title, e.Description, e.Date, e.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ListEvents returns all events, most recently created first.
func (d *DB) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, title, description, date, created_at FROM events ORDER BY created_at DESC;")
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteEvent removes the event with the given id.
func (d *DB) DeleteEvent(ctx context.Context, id string) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM events WHERE id=$1;", id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
