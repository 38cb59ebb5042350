package domain

import (
	"context"
	"math"
	"time"
)

// Measurement is a single weight and height reading.
type Measurement struct {
	ID        string    `json:"id"`
	Weight    float64   `json:"weight"` // kg
	Height    float64   `json:"height"` // cm
	BMI       float64   `json:"bmi"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeasurementRepository is the port for measurement persistence.
type MeasurementRepository interface {
	AddMeasurement(ctx context.Context, m Measurement) error
	ListMeasurements(ctx context.Context) ([]Measurement, error)
	// DeleteMeasurement reports whether a measurement with the given id was removed.
	DeleteMeasurement(ctx context.Context, id string) (bool, error)
}

// BMI returns weight (kg) over height (cm, converted to m) squared, rounded
// to two decimals.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*100) / 100
}

// BMIStatus is a coarse infant BMI band.
type BMIStatus string

const (
	BMIUnderweight BMIStatus = "underweight"
	BMINormal      BMIStatus = "normal"
	BMIOverweight  BMIStatus = "overweight"
	BMIObese       BMIStatus = "obese"
)

// ClassifyBMI maps a BMI value to the simplified bands used for small children.
func ClassifyBMI(bmi float64) BMIStatus {
	switch {
	case bmi < 14:
		return BMIUnderweight
	case bmi < 18:
		return BMINormal
	case bmi < 21:
		return BMIOverweight
	default:
		return BMIObese
	}
}
