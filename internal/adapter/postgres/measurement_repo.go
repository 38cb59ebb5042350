package postgres

import (
	"context"
	"fmt"

	"dashboard/internal/domain"
)

var _ domain.MeasurementRepository = (*DB)(nil)

// AddMeasurement inserts a new measurement.
func (d *DB) AddMeasurement(ctx context.Context, m domain.Measurement) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO measurements(id, weight, height, bmi, date, notes, created_at) VALUES($1, $2, $3, $4, $5, $6, $7);",
		m.ID, m.Weight, m.Height, m.BMI, m.Date, m.Notes, m.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert measurement: %w", err)
	}
	return nil
}

// ListMeasurements returns all measurements, most recently created first.
func (d *DB) ListMeasurements(ctx context.Context) ([]domain.Measurement, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, weight, height, bmi, date, notes, created_at FROM measurements ORDER BY created_at DESC;")
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer rows.Close()

	out := []domain.Measurement{}
	for rows.Next() {
		var m domain.Measurement
		if err := rows.Scan(&m.ID, &m.Weight, &m.Height, &m.BMI, &m.Date, &m.Notes, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMeasurement removes the measurement with the given id.
func (d *DB) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM measurements WHERE id=$1;", id)
	if err != nil {
		return false, fmt.Errorf("delete measurement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
