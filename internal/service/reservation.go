package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/queue"
	"github.com/citywave/table-reservation/internal/repository"
)

// LifecyclePublisher pushes table state changes to the message broker.
// Publishing is best-effort: the reservation flow never fails because the
// broker is down.
type LifecyclePublisher interface {
	PublishTableLifecycle(ctx context.Context, ev queue.TableLifecycleEvent) error
}

// ReservationForm is the structured guest input captured by a single
// reserve action. All four fields are required.
type ReservationForm struct {
	FirstName string
	LastName  string
	Phone     string
	Password  string
}

// ReservationService owns every transition of the table state machine.
//
// Concurrency: the event document is the unit of optimistic concurrency
// and the store is last-writer-wins, so each transition reloads the event
// and re-checks its guard inside a per-event critical section immediately
// before the write. Within one process that makes two racing reserve calls
// on the same table resolve to exactly one winner; across processes the
// window narrows to the store's write latency, an accepted best-effort
// model for human-scale contention.
type ReservationService struct {
	Events    *repository.EventRepo
	Publisher LifecyclePublisher // may be nil

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReservationService constructs a ReservationService. The publisher may
// be nil when no broker is configured.
func NewReservationService(events *repository.EventRepo, pub LifecyclePublisher) *ReservationService {
	if events == nil {
		panic("nil event repository passed to NewReservationService")
	}
	return &ReservationService{Events: events, Publisher: pub, locks: make(map[string]*sync.Mutex)}
}

// lockEvent returns the commit mutex for one event id, creating it on
// first use. Locks are never removed; the event population is small.
func (s *ReservationService) lockEvent(eventID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[eventID] = l
	}
	return l
}

// Reserve claims a FREE table for a guest. The guard (table still FREE) is
// re-checked against the freshest stored state right before the write; a
// lost race surfaces as ErrInvalidState, which callers present as "table
// already taken".
func (s *ReservationService) Reserve(ctx context.Context, eventID, tableID string, form ReservationForm) (*model.Table, error) {
	if strings.TrimSpace(form.FirstName) == "" || strings.TrimSpace(form.LastName) == "" ||
		strings.TrimSpace(form.Phone) == "" || form.Password == "" {
		return nil, fmt.Errorf("%w: all reservation fields are required", ErrMalformedInput)
	}

	l := s.lockEvent(eventID)
	l.Lock()
	defer l.Unlock()

	event, table, err := s.loadTable(ctx, eventID, tableID)
	if err != nil {
		return nil, err
	}
	if table.Status != model.TableFree {
		return nil, fmt.Errorf("%w: table %s is already taken", ErrInvalidState, tableID)
	}
	table.Reserve(&model.Reservation{
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Phone:         form.Phone,
		Password:      form.Password,
		ReservedAt:    time.Now().UTC(),
		TicketSerials: []int{},
	})
	if err := s.Events.Put(ctx, event); err != nil {
		return nil, err
	}
	s.publish(ctx, queue.ActionReserved, event, table)
	cp := *table
	return &cp, nil
}

// SubmitSerials records the guest's ticket serial numbers. Exactly
// RequiredSerialCount integers must parse from the raw input and each must
// fall inside the event's configured range. Requires the reservation
// password; a mismatch and a not-reserved table are indistinguishable to
// the caller.
func (s *ReservationService) SubmitSerials(ctx context.Context, eventID, tableID, password, rawSerials string) (*model.Table, error) {
	l := s.lockEvent(eventID)
	l.Lock()
	defer l.Unlock()

	event, table, err := s.loadTable(ctx, eventID, tableID)
	if err != nil {
		return nil, err
	}
	if err := guestAuthorized(table, password); err != nil {
		return nil, err
	}
	serials := model.ParseSerials(rawSerials)
	if len(serials) != model.RequiredSerialCount {
		return nil, fmt.Errorf("%w: exactly %d serial numbers are required", ErrMalformedInput, model.RequiredSerialCount)
	}
	for _, n := range serials {
		if !event.SerialInRange(n) {
			return nil, &RangeError{Serial: n, Min: event.MinTicketSerial, Max: event.MaxTicketSerial}
		}
	}
	table.Reservation.TicketSerials = serials
	if err := s.Events.Put(ctx, event); err != nil {
		return nil, err
	}
	s.publish(ctx, queue.ActionSerialsSubmitted, event, table)
	cp := *table
	return &cp, nil
}

// Cancel releases a table on the guest's request, proven by the
// reservation password. The table returns to FREE with no residual
// reservation data.
func (s *ReservationService) Cancel(ctx context.Context, eventID, tableID, password string) error {
	l := s.lockEvent(eventID)
	l.Lock()
	defer l.Unlock()

	event, table, err := s.loadTable(ctx, eventID, tableID)
	if err != nil {
		return err
	}
	if err := guestAuthorized(table, password); err != nil {
		return err
	}
	guest := guestName(table)
	table.Free()
	if err := s.Events.Put(ctx, event); err != nil {
		return err
	}
	s.publishNamed(ctx, queue.ActionCanceled, event, table, guest)
	return nil
}

// Release frees a reserved table on behalf of an admin. Only the owning
// admin (or the main admin) may release; no password check applies.
func (s *ReservationService) Release(ctx context.Context, admin *model.AdminAccount, eventID, tableID string) error {
	l := s.lockEvent(eventID)
	l.Lock()
	defer l.Unlock()

	event, table, err := s.loadTable(ctx, eventID, tableID)
	if err != nil {
		return err
	}
	if !admin.Owns(event) {
		return fmt.Errorf("%w: %s does not own event %s", ErrPermissionDenied, admin.Username, eventID)
	}
	if table.Status != model.TableReserved {
		return fmt.Errorf("%w: table %s is not reserved", ErrInvalidState, tableID)
	}
	guest := guestName(table)
	table.Free()
	if err := s.Events.Put(ctx, event); err != nil {
		return err
	}
	s.publishNamed(ctx, queue.ActionReleased, event, table, guest)
	return nil
}

// loadTable fetches the freshest event and locates the table. Both absences
// map to ErrNotFound.
func (s *ReservationService) loadTable(ctx context.Context, eventID, tableID string) (*model.Event, *model.Table, error) {
	event, err := s.Events.Get(ctx, eventID)
	if errors.Is(err, repository.ErrEventNotFound) {
		return nil, nil, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	if err != nil {
		return nil, nil, err
	}
	table := event.FindTable(tableID)
	if table == nil {
		return nil, nil, fmt.Errorf("%w: table %s", ErrNotFound, tableID)
	}
	return event, table, nil
}

// guestAuthorized gates guest actions on a reserved table. A table that is
// not reserved and a wrong password produce the identical error so callers
// cannot tell whether a guess was close.
func guestAuthorized(table *model.Table, password string) error {
	if table.Status != model.TableReserved || table.Reservation == nil {
		return ErrInvalidCredential
	}
	if table.Reservation.Password != password {
		return ErrInvalidCredential
	}
	return nil
}

// guestName captures the reservation holder's name before the reservation
// is cleared, for the lifecycle event.
func guestName(table *model.Table) string {
	if table.Reservation == nil {
		return ""
	}
	return strings.TrimSpace(table.Reservation.FirstName + " " + table.Reservation.LastName)
}

// publish sends a lifecycle event naming the current reservation holder.
func (s *ReservationService) publish(ctx context.Context, action string, event *model.Event, table *model.Table) {
	s.publishNamed(ctx, action, event, table, guestName(table))
}

// publishNamed sends a lifecycle event with an explicit guest name. Errors
// are logged and swallowed: the broker is an observer, not a participant.
func (s *ReservationService) publishNamed(ctx context.Context, action string, event *model.Event, table *model.Table, guest string) {
	if s.Publisher == nil {
		return
	}
	ev := queue.TableLifecycleEvent{
		Action:     action,
		EventID:    event.ID,
		EventTitle: event.Title,
		TableID:    table.ID,
		TableName:  table.Name,
		GuestName:  guest,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Publisher.PublishTableLifecycle(ctx, ev); err != nil {
		log.Printf("reservation: publish %s event failed: %v", action, err)
	}
}
