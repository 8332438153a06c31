// Package store defines the document persistence contract shared by the
// repositories. Records live in named collections ("events", "admins") and
// are raw JSON documents keyed by a string id. The store never offers
// multi-document transactions; callers model every mutation as a
// read-modify-write of one whole document and accept last-writer-wins.
package store

import (
	"context"
	"errors"
)

// Document is a single stored record: its id within the collection and the
// serialized JSON body.
type Document struct {
	ID   string
	Data []byte
}

// ChangeFunc receives the complete latest contents of a collection every
// time the collection changes. Delivery is asynchronous and at-least-once;
// subscribers must tolerate being handed the same snapshot twice.
type ChangeFunc func(docs []Document)

// Store is the persistence collaborator. Both implementations (in-memory
// and MySQL-backed) satisfy it.
type Store interface {
	// List returns every document in the collection.
	List(ctx context.Context, collection string) ([]Document, error)
	// Get returns one document by id or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Upsert creates or replaces the document and notifies subscribers.
	Upsert(ctx context.Context, collection, id string, data []byte) error
	// Remove deletes the document and notifies subscribers. Removing an
	// absent id is not an error.
	Remove(ctx context.Context, collection, id string) error
	// SubscribeAll registers a callback invoked with the full collection
	// contents after every change. The callback also fires once with the
	// current contents at registration time.
	SubscribeAll(ctx context.Context, collection string, fn ChangeFunc) error
	// Close releases connections and stops notification delivery.
	Close() error
}

// ErrNotFound is returned by Get when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// ErrUnavailable wraps connectivity failures of the backing store. Callers
// do not retry: reservation writes are not safely idempotent to replay.
var ErrUnavailable = errors.New("store unavailable")
