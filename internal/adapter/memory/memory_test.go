package memory

import (
	"context"
	"sync"
	"testing"

	"dashboard/internal/domain"
)

func TestEventRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	if err := db.AddEvent(ctx, domain.Event{ID: "a", Title: "First smile", Date: "2025-08-01"}); err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	_ = db.AddEvent(ctx, domain.Event{ID: "b", Title: "First tooth", Date: "2026-01-10"})

	events, err := db.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "b" {
		t.Errorf("expected newest first, got %s", events[0].ID)
	}

	// Mutating the copy must not leak into the store.
	events[0].Title = "changed"
	again, _ := db.ListEvents(ctx)
	if again[0].Title != "First tooth" {
		t.Error("ListEvents returned shared backing array")
	}

	ok, err := db.DeleteEvent(ctx, "a")
	if err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if !ok {
		t.Error("expected true")
	}
	ok, _ = db.DeleteEvent(ctx, "a")
	if ok {
		t.Error("expected false for already deleted id")
	}

	events, _ = db.ListEvents(ctx)
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}

func TestMeasurementRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	m := domain.Measurement{ID: "m1", Weight: 4.2, Height: 52, BMI: 15.53, Date: "2025-08-06"}
	if err := db.AddMeasurement(ctx, m); err != nil {
		t.Fatalf("AddMeasurement: %v", err)
	}

	items, err := db.ListMeasurements(ctx)
	if err != nil {
		t.Fatalf("ListMeasurements: %v", err)
	}
	if len(items) != 1 || items[0] != m {
		t.Fatalf("unexpected items: %v", items)
	}

	ok, err := db.DeleteMeasurement(ctx, "m1")
	if err != nil || !ok {
		t.Fatalf("DeleteMeasurement: ok=%v err=%v", ok, err)
	}
	ok, _ = db.DeleteMeasurement(ctx, "missing")
	if ok {
		t.Error("expected false for unknown id")
	}
}

func TestConcurrentAccess(t *testing.T) {
	db := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = db.AddMeasurement(ctx, domain.Measurement{Weight: 4, Height: 50})
			_, _ = db.ListMeasurements(ctx)
		}()
	}
	wg.Wait()

	items, _ := db.ListMeasurements(ctx)
	if len(items) != 50 {
		t.Errorf("expected 50 items, got %d", len(items))
	}
}
