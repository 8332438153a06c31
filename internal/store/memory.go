package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Store used by tests and by local runs without a
// database. All state is guarded by one mutex; snapshots handed to
// subscribers are deep copies so observers can never see a half-applied
// write.
type Memory struct {
	mu   sync.Mutex
	data map[string]map[string][]byte
	subs map[string][]ChangeFunc
	wg   sync.WaitGroup
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]map[string][]byte),
		subs: make(map[string][]ChangeFunc),
	}
}

// List returns a sorted-by-id snapshot of the collection.
func (m *Memory) List(ctx context.Context, collection string) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(collection), nil
}

// Get returns one document or ErrNotFound.
func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	coll, ok := m.data[collection]
	if !ok {
		return Document{}, ErrNotFound
	}
	raw, ok := coll[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return Document{ID: id, Data: cp}, nil
}

// Upsert stores the document and fans the new collection snapshot out to
// subscribers on a separate goroutine.
func (m *Memory) Upsert(ctx context.Context, collection, id string, data []byte) error {
	m.mu.Lock()
	coll, ok := m.data[collection]
	if !ok {
		coll = make(map[string][]byte)
		m.data[collection] = coll
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	coll[id] = cp
	m.notifyLocked(collection)
	m.mu.Unlock()
	return nil
}

// Remove deletes the document if present; deleting an absent id is a no-op
// that still produces no notification.
func (m *Memory) Remove(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	coll, ok := m.data[collection]
	if !ok {
		return nil
	}
	if _, ok := coll[id]; !ok {
		return nil
	}
	delete(coll, id)
	m.notifyLocked(collection)
	return nil
}

// SubscribeAll registers fn and immediately delivers the current contents.
func (m *Memory) SubscribeAll(ctx context.Context, collection string, fn ChangeFunc) error {
	m.mu.Lock()
	m.subs[collection] = append(m.subs[collection], fn)
	snap := m.snapshotLocked(collection)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		fn(snap)
	}()
	m.mu.Unlock()
	return nil
}

// Close waits for in-flight notifications to drain.
func (m *Memory) Close() error {
	m.wg.Wait()
	return nil
}

// snapshotLocked copies the collection into a deterministic id-sorted slice.
// Callers must hold m.mu.
func (m *Memory) snapshotLocked(collection string) []Document {
	coll := m.data[collection]
	docs := make([]Document, 0, len(coll))
	for id, raw := range coll {
		cp := make([]byte, len(raw))
		copy(cp, raw)
		docs = append(docs, Document{ID: id, Data: cp})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

// notifyLocked schedules delivery of the latest snapshot to every
// subscriber of the collection. Callers must hold m.mu.
func (m *Memory) notifyLocked(collection string) {
	subs := m.subs[collection]
	if len(subs) == 0 {
		return
	}
	snap := m.snapshotLocked(collection)
	for _, fn := range subs {
		fn := fn
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			fn(snap)
		}()
	}
}
