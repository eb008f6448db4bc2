// Package store provides a generic document-collection abstraction over a
// shared document database. Each collection holds one record type; records are
// persisted as JSON documents keyed by opaque string identifiers.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no document matches the requested identifier.
var ErrNotFound = errors.New("document not found")

// Document is the base every stored record embeds.
type Document struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Document) GetID() string           { return d.ID }
func (d *Document) SetID(id string)         { d.ID = id }
func (d *Document) SetCreatedAt(t time.Time) { d.CreatedAt = t }
func (d *Document) SetUpdatedAt(t time.Time) { d.UpdatedAt = t }

// Record is implemented by every document type (via embedding Document).
type Record interface {
	GetID() string
	SetID(id string)
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
}

// Doc constrains PT to be a pointer to T that satisfies Record.
type Doc[T any] interface {
	*T
	Record
}

// Collection is the per-collection view of the document store. Implementations
// own identifier generation and timestamp bookkeeping; everything else about a
// document's shape belongs to the record type.
//
// FindByField matches on exact equality of a top-level JSON field. List returns
// every document in the collection; callers that need richer predicates (for
// example array membership) filter in memory, mirroring the upstream store's
// capabilities.
type Collection[T any, PT Doc[T]] interface {
	Get(id string) (PT, error)
	Create(doc PT) (PT, error)
	Update(doc PT) (PT, error)
	Delete(id string) error
	FindByField(field string, value any) ([]PT, error)
	List() ([]PT, error)
}
