package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard/internal/app"
	"dashboard/internal/domain"
)

func newGrowth(items []domain.Measurement) *app.GrowthService {
	repo := &mockMeasurementRepo{
		listFn: func(_ context.Context) ([]domain.Measurement, error) {
			out := make([]domain.Measurement, len(items))
			copy(out, items)
			return out, nil
		},
	}
	return app.NewGrowthService(app.NewMeasurementService(repo, nil))
}

func TestGrowthSeries_BadUnit(t *testing.T) {
	_, err := newGrowth(nil).Series(context.Background(), "stones")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestGrowthSeries_OldestFirst(t *testing.T) {
	svc := newGrowth([]domain.Measurement{
		{ID: "b", Weight: 5, Height: 58, BMI: 14.86, Date: "2025-09-06"},
		{ID: "a", Weight: 3.5, Height: 50, BMI: 14, Date: "2025-07-06"},
	})
	points, err := svc.Series(context.Background(), "kg")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2025-07-06", points[0].Date)
	assert.Equal(t, 3.5, points[0].Weight)
	assert.Equal(t, domain.BMINormal, points[0].Status)
	assert.Equal(t, "2025-09-06", points[1].Date)
}

func TestGrowthSeries_ConvertUnit(t *testing.T) {
	svc := newGrowth([]domain.Measurement{{Weight: 10, Height: 75, BMI: 17.78, Date: "2026-07-06"}})
	points, err := svc.Series(context.Background(), "lb")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "lb", points[0].Unit)
	assert.InDelta(t, 22.046, points[0].Weight, 0.001)
}

func TestGrowthSeries_Empty(t *testing.T) {
	points, err := newGrowth(nil).Series(context.Background(), "kg")
	require.NoError(t, err)
	assert.Empty(t, points)
}
