package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/queue"
	"github.com/citywave/table-reservation/internal/repository"
)

// DefaultReservationTTLDays is how long an unverified reservation survives
// before the sweep reclaims its table.
const DefaultReservationTTLDays = 5

// SweepExpired reclaims stale unverified reservations on one event: any
// RESERVED table older than ttlDays whose serial set is incomplete goes
// back to FREE. All qualifying tables are collapsed into a single write.
// The sweep runs when an event is viewed, not on a timer, so an expired
// reservation on an unviewed event stays reserved until the next view.
// Re-running it with no intervening change is a no-op because the guard
// requires RESERVED. Returns the number of tables reclaimed.
func (s *ReservationService) SweepExpired(ctx context.Context, eventID string, ttlDays int) (int, error) {
	if ttlDays <= 0 {
		ttlDays = DefaultReservationTTLDays
	}

	l := s.lockEvent(eventID)
	l.Lock()
	defer l.Unlock()

	event, err := s.Events.Get(ctx, eventID)
	if errors.Is(err, repository.ErrEventNotFound) {
		return 0, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	maxAge := time.Duration(ttlDays) * 24 * time.Hour
	var expired []model.Table
	for i := range event.Tables {
		t := &event.Tables[i]
		if t.Status != model.TableReserved || t.Reservation == nil {
			continue
		}
		if t.Reservation.Verified() {
			continue
		}
		if now.Sub(t.Reservation.ReservedAt) <= maxAge {
			continue
		}
		snapshot := *t
		snapshot.Reservation = t.Reservation
		expired = append(expired, snapshot)
		t.Free()
	}
	if len(expired) == 0 {
		return 0, nil
	}
	if err := s.Events.Put(ctx, event); err != nil {
		return 0, err
	}
	for i := range expired {
		s.publishNamed(ctx, queue.ActionExpired, event, &expired[i], guestName(&expired[i]))
	}
	return len(expired), nil
}
