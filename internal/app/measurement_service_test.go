package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard/internal/app"
	"dashboard/internal/domain"
)

func TestRecordMeasurement_Validation(t *testing.T) {
	svc := app.NewMeasurementService(&mockMeasurementRepo{}, fixedClock{t: fixedNow})

	tests := []struct {
		name string
		in   app.NewMeasurement
	}{
		{"zero weight", app.NewMeasurement{Weight: 0, Height: 50, Date: "2025-08-01"}},
		{"negative height", app.NewMeasurement{Weight: 4, Height: -1, Date: "2025-08-01"}},
		{"bad unit", app.NewMeasurement{Weight: 4, Unit: "stone", Height: 50, Date: "2025-08-01"}},
		{"missing date", app.NewMeasurement{Weight: 4, Height: 50}},
		{"bad date", app.NewMeasurement{Weight: 4, Height: 50, Date: "yesterday"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.in)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRecordMeasurement_Success(t *testing.T) {
	var stored domain.Measurement
	repo := &mockMeasurementRepo{
		addFn: func(_ context.Context, m domain.Measurement) error {
			stored = m
			return nil
		},
	}
	svc := app.NewMeasurementService(repo, fixedClock{t: fixedNow})

	got, err := svc.Record(context.Background(), app.NewMeasurement{
		Weight: 4.0, Height: 50, Date: "2025-08-01", Notes: " pediatrician ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, 4.0, got.Weight)
	assert.Equal(t, 16.0, got.BMI)
	assert.Equal(t, "pediatrician", got.Notes)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, *got, stored)
}

func TestRecordMeasurement_ConvertsPounds(t *testing.T) {
	svc := app.NewMeasurementService(&mockMeasurementRepo{}, nil)
	got, err := svc.Record(context.Background(), app.NewMeasurement{
		Weight: 11.0231131, Unit: "lb", Height: 60, Date: "2025-10-01",
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got.Weight, 0.0001)
	assert.Equal(t, 13.89, got.BMI)
}

func TestRecordMeasurement_RepoError(t *testing.T) {
	repo := &mockMeasurementRepo{
		addFn: func(_ context.Context, _ domain.Measurement) error { return errors.New("db down") },
	}
	svc := app.NewMeasurementService(repo, nil)
	_, err := svc.Record(context.Background(), app.NewMeasurement{Weight: 4, Height: 50, Date: "2025-08-01"})
	require.Error(t, err)
}

func TestListMeasurements_NewestFirst(t *testing.T) {
	repo := &mockMeasurementRepo{
		listFn: func(_ context.Context) ([]domain.Measurement, error) {
			return []domain.Measurement{
				{ID: "1", Date: "2025-07-06"},
				{ID: "3", Date: "2025-09-06"},
				{ID: "2", Date: "2025-08-06"},
			}, nil
		},
	}
	svc := app.NewMeasurementService(repo, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, "1", got[2].ID)
}

func TestDeleteMeasurement(t *testing.T) {
	repo := &mockMeasurementRepo{
		deleteFn: func(_ context.Context, id string) (bool, error) {
			if id == "boom" {
				return false, errors.New("db down")
			}
			return id == "known", nil
		},
	}
	svc := app.NewMeasurementService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), "known"))
	require.ErrorIs(t, svc.Delete(context.Background(), "missing"), domain.ErrNotFound)

	err := svc.Delete(context.Background(), "boom")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
