package store

import (
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryCollection is an in-memory Collection used in tests and local
// development. Documents are held as raw JSON so reads always return
// independent copies.
type MemoryCollection[T any, PT Doc[T]] struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

func NewMemoryCollection[T any, PT Doc[T]]() *MemoryCollection[T, PT] {
	return &MemoryCollection[T, PT]{
		docs: make(map[string]json.RawMessage),
	}
}

func (c *MemoryCollection[T, PT]) Get(id string) (PT, error) {
	c.mu.RLock()
	raw, ok := c.docs[id]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeRaw[T, PT](raw)
}

func (c *MemoryCollection[T, PT]) Create(doc PT) (PT, error) {
	if doc.GetID() == "" {
		doc.SetID(uuid.NewString())
	}
	now := time.Now().UTC()
	doc.SetCreatedAt(now)
	doc.SetUpdatedAt(now)

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.docs[doc.GetID()] = raw
	c.mu.Unlock()
	return doc, nil
}

func (c *MemoryCollection[T, PT]) Update(doc PT) (PT, error) {
	doc.SetUpdatedAt(time.Now().UTC())

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[doc.GetID()]; !ok {
		return nil, ErrNotFound
	}
	c.docs[doc.GetID()] = raw
	return doc, nil
}

func (c *MemoryCollection[T, PT]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return ErrNotFound
	}
	delete(c.docs, id)
	return nil
}

func (c *MemoryCollection[T, PT]) FindByField(field string, value any) ([]PT, error) {
	want, err := normalizeJSON(value)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]PT, 0)
	for _, raw := range c.docs {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		if !reflect.DeepEqual(fields[field], want) {
			continue
		}
		rec, err := decodeRaw[T, PT](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *MemoryCollection[T, PT]) List() ([]PT, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]PT, 0, len(c.docs))
	for _, raw := range c.docs {
		rec, err := decodeRaw[T, PT](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeRaw[T any, PT Doc[T]](raw json.RawMessage) (PT, error) {
	rec := PT(new(T))
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// normalizeJSON round-trips a value through JSON so comparisons use the same
// representation as the stored documents.
func normalizeJSON(value any) (any, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
