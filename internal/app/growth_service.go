package app

import (
	"context"
	"fmt"

	"dashboard/internal/domain"
)

// GrowthService builds chart series from stored measurements.
type GrowthService struct {
	measurements *MeasurementService
}

// NewGrowthService creates a GrowthService reading through the measurement service.
func NewGrowthService(ms *MeasurementService) *GrowthService {
	return &GrowthService{measurements: ms}
}

// GrowthPoint is one measurement in the growth chart.
type GrowthPoint struct {
	Date   string           `json:"date"`
	Weight float64          `json:"weight"`
	Unit   string           `json:"unit"`
	Height float64          `json:"height"`
	BMI    float64          `json:"bmi"`
	Status domain.BMIStatus `json:"status"`
}

// Series returns measurements oldest first with weights converted to unit.
func (s *GrowthService) Series(ctx context.Context, unit string) ([]GrowthPoint, error) {
	if !domain.ValidWeightUnit(unit) {
		return nil, fmt.Errorf("%w: unit must be \"kg\" or \"lb\"", domain.ErrValidation)
	}
	items, err := s.measurements.List(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]GrowthPoint, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		m := items[i]
		points = append(points, GrowthPoint{
			Date:   m.Date,
			Weight: domain.ConvertWeight(m.Weight, domain.UnitKg, unit),
			Unit:   unit,
			Height: m.Height,
			BMI:    m.BMI,
			Status: domain.ClassifyBMI(m.BMI),
		})
	}
	return points, nil
}
