package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/store"
)

// eventsCollection names the document collection holding events.
const eventsCollection = "events"

// EventRepo provides data access to the events collection. Every write
// replaces the whole event document; the store guarantees last-writer-wins
// per document and nothing more, so callers serialize their own
// read-modify-write cycles where the outcome matters.
type EventRepo struct {
	s store.Store
}

// NewEventRepo returns a new EventRepo bound to the provided store.
func NewEventRepo(s store.Store) *EventRepo { return &EventRepo{s: s} }

// List returns all events ordered by document id.
func (r *EventRepo) List(ctx context.Context) ([]*model.Event, error) {
	docs, err := r.s.List(ctx, eventsCollection)
	if err != nil {
		return nil, err
	}
	events := make([]*model.Event, 0, len(docs))
	for _, d := range docs {
		var e model.Event
		if err := json.Unmarshal(d.Data, &e); err != nil {
			return nil, fmt.Errorf("decode event %s: %w", d.ID, err)
		}
		events = append(events, &e)
	}
	return events, nil
}

// Get loads one event by id. Returns ErrEventNotFound when absent.
func (r *EventRepo) Get(ctx context.Context, id string) (*model.Event, error) {
	doc, err := r.s.Get(ctx, eventsCollection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	var e model.Event
	if err := json.Unmarshal(doc.Data, &e); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", id, err)
	}
	return &e, nil
}

// Put upserts the whole event document.
func (r *EventRepo) Put(ctx context.Context, e *model.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", e.ID, err)
	}
	return r.s.Upsert(ctx, eventsCollection, e.ID, data)
}

// Delete removes the event document. Deleting an absent id is a no-op.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	return r.s.Remove(ctx, eventsCollection, id)
}

// Subscribe invokes fn with the decoded full event list after every change
// to the collection, and once immediately with the current contents.
// Documents that fail to decode are skipped so one corrupt record cannot
// silence the feed.
func (r *EventRepo) Subscribe(ctx context.Context, fn func([]*model.Event)) error {
	return r.s.SubscribeAll(ctx, eventsCollection, func(docs []store.Document) {
		events := make([]*model.Event, 0, len(docs))
		for _, d := range docs {
			var e model.Event
			if err := json.Unmarshal(d.Data, &e); err != nil {
				continue
			}
			events = append(events, &e)
		}
		fn(events)
	})
}
