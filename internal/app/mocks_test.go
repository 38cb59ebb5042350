package app_test

import (
	"context"
	"sync"
	"time"

	"dashboard/internal/domain"
)

var fixedNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type mockEventRepo struct {
	addFn    func(ctx context.Context, e domain.Event) error
	listFn   func(ctx context.Context) ([]domain.Event, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockEventRepo) AddEvent(ctx context.Context, e domain.Event) error {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	return nil
}

func (m *mockEventRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockEventRepo) DeleteEvent(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

type mockMeasurementRepo struct {
	addFn    func(ctx context.Context, m domain.Measurement) error
	listFn   func(ctx context.Context) ([]domain.Measurement, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockMeasurementRepo) AddMeasurement(ctx context.Context, x domain.Measurement) error {
	if m.addFn != nil {
		return m.addFn(ctx, x)
	}
	return nil
}

func (m *mockMeasurementRepo) ListMeasurements(ctx context.Context) ([]domain.Measurement, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockMeasurementRepo) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

type mockQuoteSource struct {
	mu      sync.Mutex
	calls   map[string]int
	fetchFn func(ctx context.Context, pair string) (domain.PairPrice, error)
}

func (m *mockQuoteSource) FetchQuote(ctx context.Context, pair string) (domain.PairPrice, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[pair]++
	m.mu.Unlock()
	if m.fetchFn != nil {
		return m.fetchFn(ctx, pair)
	}
	return domain.PairPrice{}, nil
}

func (m *mockQuoteSource) count(pair string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[pair]
}

type recordingObserver struct {
	mu      sync.Mutex
	results []error
}

func (o *recordingObserver) QuoteFetched(_ string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, err)
}
