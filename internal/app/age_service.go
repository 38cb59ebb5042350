// Package app holds the application services and business logic.
package app

import (
	"fmt"
	"time"

	"dashboard/internal/domain"
)

// AgeSummary is everything the age card shows for one reference instant.
type AgeSummary struct {
	Label             string              `json:"label"`
	BirthDate         string              `json:"birthDate"`
	Today             string              `json:"today"`
	Elapsed           domain.Elapsed      `json:"elapsed"`
	Upcoming          domain.Upcoming     `json:"upcoming"`
	NextMonthiversary domain.CalendarDate `json:"nextMonthiversary"`
	NextBirthday      domain.CalendarDate `json:"nextBirthday"`
	Stats             domain.Stats        `json:"stats"`
}

// AgeService computes the age card for a configured birth date.
type AgeService struct {
	birthISO string
	birth    domain.CalendarDate
	label    string
	clock    Clock
}

// NewAgeService validates birthISO up front so a misconfigured birth date
// fails at startup rather than on every request.
func NewAgeService(birthISO, label string, clock Clock) (*AgeService, error) {
	birth, err := domain.ParseCivilDate(birthISO)
	if err != nil {
		return nil, fmt.Errorf("birth date: %w", err)
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &AgeService{birthISO: birthISO, birth: birth, label: label, clock: clock}, nil
}

// BirthDate returns the configured birth date.
func (s *AgeService) BirthDate() domain.CalendarDate {
	return s.birth
}

// Label returns the display name of the child.
func (s *AgeService) Label() string {
	return s.label
}

// Summary returns the age card at ref, or at the service clock's current
// time when ref is zero.
func (s *AgeService) Summary(ref time.Time) (AgeSummary, error) {
	if ref.IsZero() {
		ref = s.clock.Now()
	}
	elapsed, err := domain.ComputeElapsed(s.birthISO, ref)
	if err != nil {
		return AgeSummary{}, err
	}
	upcoming, err := domain.ComputeUpcoming(s.birthISO, ref)
	if err != nil {
		return AgeSummary{}, err
	}
	stats, err := domain.ComputeStats(s.birthISO, ref)
	if err != nil {
		return AgeSummary{}, err
	}
	today := domain.CivilDateOf(ref)
	return AgeSummary{
		Label:             s.label,
		BirthDate:         s.birth.String(),
		Today:             today.String(),
		Elapsed:           elapsed,
		Upcoming:          upcoming,
		NextMonthiversary: domain.NextMonthiversary(s.birth, today),
		NextBirthday:      domain.NextBirthday(s.birth, today),
		Stats:             stats,
	}, nil
}
