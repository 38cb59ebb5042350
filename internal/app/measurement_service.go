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

// MeasurementService encapsulates weight and height tracking use cases.
type MeasurementService struct {
	repo  domain.MeasurementRepository
	clock Clock
}

// NewMeasurementService creates a MeasurementService backed by the given repository.
func NewMeasurementService(repo domain.MeasurementRepository, clock Clock) *MeasurementService {
	if clock == nil {
		clock = RealClock{}
	}
	return &MeasurementService{repo: repo, clock: clock}
}

// NewMeasurement is the input for MeasurementService.Record. Unit applies to
// Weight and defaults to kg; Height is always centimetres.
type NewMeasurement struct {
	Weight float64
	Unit   string
	Height float64
	Date   string
	Notes  string
}

// Record validates a reading, converts the weight to kg, computes the BMI
// and stores it.
func (s *MeasurementService) Record(ctx context.Context, in NewMeasurement) (*domain.Measurement, error) {
	unit := in.Unit
	if unit == "" {
		unit = domain.UnitKg
	}
	if !domain.ValidWeightUnit(unit) {
		return nil, fmt.Errorf("%w: unit must be \"kg\" or \"lb\"", domain.ErrValidation)
	}
	if in.Weight <= 0 || in.Height <= 0 {
		return nil, fmt.Errorf("%w: weight and height must be positive numbers", domain.ErrValidation)
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if _, err := domain.ParseEventTime(date); err != nil {
		return nil, err
	}

	weightKg := domain.ConvertWeight(in.Weight, unit, domain.UnitKg)
	m := domain.Measurement{
		ID:        uuid.NewString(),
		Weight:    weightKg,
		Height:    in.Height,
		BMI:       domain.BMI(weightKg, in.Height),
		Date:      date,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.AddMeasurement(ctx, m); err != nil {
		return nil, fmt.Errorf("add measurement: %w", err)
	}
	return &m, nil
}

// List returns all measurements, most recent date first.
func (s *MeasurementService) List(ctx context.Context) ([]domain.Measurement, error) {
	items, err := s.repo.ListMeasurements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return measurementTime(items[i]).After(measurementTime(items[j]))
	})
	return items, nil
}

// Delete removes the measurement with the given id.
func (s *MeasurementService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	ok, err := s.repo.DeleteMeasurement(ctx, id)
	if err != nil {
		return fmt.Errorf("delete measurement: %w", err)
	}
	if !ok {
		return fmt.Errorf("measurement %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Unparseable dates sort as the oldest.
func measurementTime(m domain.Measurement) time.Time {
	t, err := domain.ParseEventTime(m.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
