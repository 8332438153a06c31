package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// changeChannel is the Redis pub/sub channel prefix used to fan document
// changes out to every running instance. The payload is the collection name.
const changeChannel = "store:changed:"

// MySQL persists documents in a single JSON-column table and notifies
// subscribers of changes through Redis pub/sub, so observers in other
// processes see the latest collection contents shortly after each write.
// When the Redis client is nil the store still works; notifications are
// then delivered only to subscribers in the same process.
type MySQL struct {
	db  *sql.DB
	rdb *redis.Client

	mu     sync.Mutex
	subs   map[string][]ChangeFunc
	pubsub map[string]*redis.PubSub
	cancel context.CancelFunc
	ctx    context.Context
	wg     sync.WaitGroup
}

var _ Store = (*MySQL)(nil)

// NewMySQL wraps an open database handle. rdb may be nil.
func NewMySQL(db *sql.DB, rdb *redis.Client) *MySQL {
	ctx, cancel := context.WithCancel(context.Background())
	return &MySQL{
		db:     db,
		rdb:    rdb,
		subs:   make(map[string][]ChangeFunc),
		pubsub: make(map[string]*redis.PubSub),
		ctx:    ctx,
		cancel: cancel,
	}
}

// List returns every document in the collection ordered by id.
func (s *MySQL) List(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, doc FROM documents WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()
	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return docs, nil
}

// Get returns one document or ErrNotFound.
func (s *MySQL) Get(ctx context.Context, collection, id string) (Document, error) {
	var d Document
	d.ID = id
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&d.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return d, nil
}

// Upsert writes the document (insert or replace) and announces the change.
func (s *MySQL) Upsert(ctx context.Context, collection, id string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE doc = VALUES(doc)`,
		collection, id, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.announce(ctx, collection)
	return nil
}

// Remove deletes the document; deleting an absent id is not an error but
// still announces no change.
func (s *MySQL) Remove(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.announce(ctx, collection)
	}
	return nil
}

// SubscribeAll registers fn for the collection and delivers the current
// contents once. The first subscriber per collection also starts the Redis
// listener that relays changes made by other processes.
func (s *MySQL) SubscribeAll(ctx context.Context, collection string, fn ChangeFunc) error {
	s.mu.Lock()
	s.subs[collection] = append(s.subs[collection], fn)
	if s.rdb != nil {
		if _, ok := s.pubsub[collection]; !ok {
			ps := s.rdb.Subscribe(s.ctx, changeChannel+collection)
			s.pubsub[collection] = ps
			s.wg.Add(1)
			go s.relay(collection, ps)
		}
	}
	s.mu.Unlock()

	docs, err := s.List(ctx, collection)
	if err != nil {
		return err
	}
	fn(docs)
	return nil
}

// Close stops the Redis listeners and waits for them to exit.
func (s *MySQL) Close() error {
	s.cancel()
	s.mu.Lock()
	for _, ps := range s.pubsub {
		_ = ps.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

// announce publishes the change through Redis when available; the local
// dispatch covers both the no-Redis case and the publishing process itself,
// which would otherwise wait a round trip for its own notification.
func (s *MySQL) announce(ctx context.Context, collection string) {
	if s.rdb != nil {
		if err := s.rdb.Publish(ctx, changeChannel+collection, collection).Err(); err != nil {
			log.Printf("store: publish change for %q failed: %v", collection, err)
		}
	}
	s.dispatch(collection)
}

// relay forwards Redis change messages to local subscribers until Close.
func (s *MySQL) relay(collection string, ps *redis.PubSub) {
	defer s.wg.Done()
	ch := ps.Channel()
	for {
		select {
		case <-s.ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			s.dispatch(collection)
		}
	}
}

// dispatch re-reads the collection and hands the snapshot to every local
// subscriber. Errors are logged, not propagated; the next change will
// deliver a fresh snapshot anyway.
func (s *MySQL) dispatch(collection string) {
	docs, err := s.List(s.ctx, collection)
	if err != nil {
		log.Printf("store: list %q for dispatch failed: %v", collection, err)
		return
	}
	s.mu.Lock()
	subs := append([]ChangeFunc(nil), s.subs[collection]...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(docs)
	}
}
