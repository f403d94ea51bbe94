package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("hook record not found")
	ErrAlreadyExists = errors.New("hook record already exists")
)

// HookRecord is the local record of a webhook created at the platform.
// The secret authenticates publish requests claiming this webhook's id and
// is never serialized outward.
type HookRecord struct {
	ID      string    `json:"id"`
	Secret  string    `json:"-"`
	Created time.Time `json:"created"`
}

type HookStore interface {
	List(ctx context.Context) ([]HookRecord, error)

	// Get returns the record for id.
	// Returns ErrNotFound if no live record exists.
	Get(ctx context.Context, id string) (HookRecord, error)

	// Insert stores a new record.
	// Returns ErrAlreadyExists if a live record with the same id exists.
	Insert(ctx context.Context, record HookRecord) error

	// Delete removes the record for id. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error
}
