package service

import (
	"context"
	"errors"
	"testing"

	"github.com/citywave/table-reservation/internal/model"
)

func validEventForm() EventForm {
	return EventForm{
		Title:           "Summer Gala",
		Date:            "2026-07-01T20:00",
		Description:     "Open air",
		MinTicketSerial: 1000,
		MaxTicketSerial: 9999,
	}
}

func TestEventCreate(t *testing.T) {
	repo := newEventRepo(t)
	svc := NewEventService(repo)
	alice := &model.AdminAccount{ID: "adm-1", Username: "alice"}

	event, err := svc.Create(context.Background(), alice, validEventForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.ID == "" {
		t.Error("event id not assigned")
	}
	if event.OwnerID != "alice" {
		t.Errorf("owner = %q, want alice", event.OwnerID)
	}
	if event.IsHidden {
		t.Error("new events start visible")
	}
	if event.Tables == nil || len(event.Tables) != 0 {
		t.Errorf("new events start with an empty table list, got %v", event.Tables)
	}

	if _, err := repo.Get(context.Background(), event.ID); err != nil {
		t.Errorf("event not persisted: %v", err)
	}
}

func TestEventCreateValidation(t *testing.T) {
	repo := newEventRepo(t)
	svc := NewEventService(repo)
	alice := &model.AdminAccount{Username: "alice"}

	tests := []struct {
		name   string
		mutate func(*EventForm)
	}{
		{"missing title", func(f *EventForm) { f.Title = " " }},
		{"missing date", func(f *EventForm) { f.Date = "" }},
		{"inverted serial range", func(f *EventForm) { f.MinTicketSerial = 10; f.MaxTicketSerial = 5 }},
		{"too many floor plans", func(f *EventForm) { f.FloorPlanImages = []string{"a", "b", "c"} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validEventForm()
			tc.mutate(&form)
			if _, err := svc.Create(context.Background(), alice, form); !errors.Is(err, ErrMalformedInput) {
				t.Errorf("got %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestEventUpdateMetadataPreservesIdentity(t *testing.T) {
	repo := newEventRepo(t)
	svc := NewEventService(repo)
	alice := &model.AdminAccount{Username: "alice"}

	seedEvent(t, repo, model.Table{ID: "t1", Name: "Stol 1", Status: model.TableReserved,
		Reservation: &model.Reservation{FirstName: "Mira", Password: "pw"}})

	form := validEventForm()
	form.Title = "Renamed Gala"
	form.MinTicketSerial = 1
	form.MaxTicketSerial = 10

	updated, err := svc.UpdateMetadata(context.Background(), alice, "evt-1", form)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed Gala" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.ID != "evt-1" || updated.OwnerID != "alice" {
		t.Errorf("identity changed: id=%q owner=%q", updated.ID, updated.OwnerID)
	}
	// Shrinking the range never re-validates recorded reservations.
	if got := updated.FindTable("t1"); got == nil || got.Status != model.TableReserved {
		t.Error("table list must survive metadata updates")
	}
}

func TestEventOwnershipGates(t *testing.T) {
	repo := newEventRepo(t)
	svc := NewEventService(repo)
	seedEvent(t, repo) // owned by alice

	bob := &model.AdminAccount{Username: "bob"}
	main := &model.AdminAccount{Username: "boss", IsMain: true}

	if _, err := svc.UpdateMetadata(context.Background(), bob, "evt-1", validEventForm()); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("update by non-owner: got %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.SetVisibility(context.Background(), bob, "evt-1", true); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("visibility by non-owner: got %v, want ErrPermissionDenied", err)
	}
	if err := svc.Delete(context.Background(), bob, []string{"evt-1"}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("delete by non-owner: got %v, want ErrPermissionDenied", err)
	}

	// The main admin passes every gate.
	if _, err := svc.SetVisibility(context.Background(), main, "evt-1", true); err != nil {
		t.Errorf("visibility by main admin: %v", err)
	}
	event, _ := repo.Get(context.Background(), "evt-1")
	if !event.IsHidden {
		t.Error("hidden flag not persisted")
	}
}

func TestEventDeleteBatch(t *testing.T) {
	repo := newEventRepo(t)
	svc := NewEventService(repo)
	alice := &model.AdminAccount{Username: "alice"}

	seedEvent(t, repo)
	other := &model.Event{ID: "evt-2", Title: "Other", Date: "2026-08-01", OwnerID: "alice", Tables: []model.Table{}}
	if err := repo.Put(context.Background(), other); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), alice, []string{"evt-1", "evt-2"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if events, _ := repo.List(context.Background()); len(events) != 0 {
		t.Errorf("%d events left, want 0", len(events))
	}
}

func TestTableLifecycleManagement(t *testing.T) {
	repo := newEventRepo(t)
	svc := NewEventService(repo)
	alice := &model.AdminAccount{Username: "alice"}
	seedEvent(t, repo)

	table, err := svc.CreateTable(context.Background(), alice, "evt-1", "VIP 1")
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	if table.Status != model.TableFree {
		t.Errorf("new table status = %q, want FREE", table.Status)
	}

	if _, err := svc.CreateTable(context.Background(), alice, "evt-1", "  "); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("blank name: got %v, want ErrMalformedInput", err)
	}

	if err := svc.DeleteTable(context.Background(), alice, "evt-1", table.ID); err != nil {
		t.Fatalf("delete table: %v", err)
	}
	if err := svc.DeleteTable(context.Background(), alice, "evt-1", table.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}

func TestDeleteReservedTableRefused(t *testing.T) {
	repo := newEventRepo(t)
	svc := NewEventService(repo)
	alice := &model.AdminAccount{Username: "alice"}
	seedEvent(t, repo, model.Table{ID: "t1", Name: "Stol 1", Status: model.TableReserved,
		Reservation: &model.Reservation{FirstName: "Mira", Password: "pw"}})

	if err := svc.DeleteTable(context.Background(), alice, "evt-1", "t1"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("got %v, want ErrInvalidState", err)
	}
	// The reservation is intact afterwards.
	event, _ := repo.Get(context.Background(), "evt-1")
	if got := event.FindTable("t1"); got == nil || got.Reservation == nil {
		t.Error("reserved table was dropped")
	}
}
