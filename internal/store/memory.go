package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DaanHessen/aos-loader/internal/settings"
)

// MemoryOptions is an in-process Options backend. Values are kept encoded so
// callers never share maps with the store.
type MemoryOptions struct {
	mu        sync.Mutex
	values    map[string][]byte
	revisions []memRevision
	now       func() time.Time
}

type memRevision struct {
	id   uuid.UUID
	name string
	raw  []byte
	at   time.Time
}

func NewMemoryOptions() *MemoryOptions {
	return &MemoryOptions{values: map[string][]byte{}, now: time.Now}
}

// Put stores raw bytes under name without validation, as a foreign writer
// sharing the backend could.
func (m *MemoryOptions) Put(name string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = append([]byte(nil), raw...)
}

func (m *MemoryOptions) Get(_ context.Context, name string) (settings.Record, bool, error) {
	m.mu.Lock()
	raw, ok := m.values[name]
	m.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		return nil, true, err
	}
	return rec, true, nil
}

func (m *MemoryOptions) Set(_ context.Context, name string, rec settings.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return wrap(err, "encode option")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = b
	m.revisions = append(m.revisions, memRevision{id: uuid.New(), name: name, raw: b, at: m.now()})
	return nil
}

func (m *MemoryOptions) Revisions(_ context.Context, name string, limit int) ([]Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Revision
	for i := len(m.revisions) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		r := m.revisions[i]
		if r.name != name {
			continue
		}
		rec, _ := decodeRecord(r.raw)
		out = append(out, Revision{ID: r.id, Name: r.name, Record: rec, CreatedAt: r.at})
	}
	return out, nil
}
