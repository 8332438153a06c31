package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/store"
)

func TestEventRepoRoundTrip(t *testing.T) {
	repo := NewEventRepo(store.NewMemory())
	ctx := context.Background()

	if _, err := repo.Get(ctx, "evt-1"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("get absent: got %v, want ErrEventNotFound", err)
	}

	event := &model.Event{
		ID:      "evt-1",
		Title:   "Summer Gala",
		Date:    "2026-07-01T20:00",
		OwnerID: "alice",
		Tables: []model.Table{
			{ID: "t1", Name: "Stol 1", Status: model.TableReserved,
				Reservation: &model.Reservation{FirstName: "Mira", Password: "pw", TicketSerials: []int{1, 2, 3, 4}}},
		},
		MinTicketSerial: 1000,
		MaxTicketSerial: 9999,
	}
	if err := repo.Put(ctx, event); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.Get(ctx, "evt-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Summer Gala" || got.OwnerID != "alice" {
		t.Errorf("decoded event mismatch: %+v", got)
	}
	tbl := got.FindTable("t1")
	if tbl == nil || tbl.Reservation == nil {
		t.Fatal("nested reservation lost in the round trip")
	}
	if !tbl.Reservation.Verified() {
		t.Errorf("serials lost: %v", tbl.Reservation.TicketSerials)
	}

	if err := repo.Delete(ctx, "evt-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "evt-1"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("get after delete: got %v, want ErrEventNotFound", err)
	}
}

func TestEventRepoList(t *testing.T) {
	repo := NewEventRepo(store.NewMemory())
	ctx := context.Background()

	for _, id := range []string{"evt-b", "evt-a"} {
		if err := repo.Put(ctx, &model.Event{ID: id, Title: id, Tables: []model.Table{}}); err != nil {
			t.Fatal(err)
		}
	}
	events, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 || events[0].ID != "evt-a" || events[1].ID != "evt-b" {
		t.Errorf("unexpected order: %v, %v", events[0].ID, events[1].ID)
	}
}

func TestEventRepoSubscribe(t *testing.T) {
	mem := store.NewMemory()
	repo := NewEventRepo(mem)
	ctx := context.Background()

	if err := repo.Put(ctx, &model.Event{ID: "evt-1", Title: "First", Tables: []model.Table{}}); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var lastCount int
	err := repo.Subscribe(ctx, func(events []*model.Event) {
		mu.Lock()
		lastCount = len(events)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := repo.Put(ctx, &model.Event{ID: "evt-2", Title: "Second", Tables: []model.Table{}}); err != nil {
		t.Fatal(err)
	}
	if err := mem.Close(); err != nil { // drain notifications
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if lastCount != 2 {
		t.Errorf("final snapshot carried %d events, want 2", lastCount)
	}
}
