package repository

import (
	"context"

	"github.com/vocabloom/vocabloom/internal/entity"
)

// KeyValue is the durable persistence collaborator: a minimal key-value
// contract the vocabulary collection is serialized through. Timestamps
// inside stored values must round-trip exactly.
type KeyValue interface {
	// Get returns the stored value for key; ok is false when absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set durably stores value under key before returning.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key; removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// VocabRepository abstracts persistence for the tracked vocabulary
// collection to keep usecases storage agnostic.
type VocabRepository interface {
	// Load reads the full collection. A missing collection yields an
	// empty slice; unreadable data yields an error wrapping
	// entity.ErrStorageCorrupt.
	Load(ctx context.Context) ([]entity.VocabItem, error)
	// Save durably commits the full collection.
	Save(ctx context.Context, items []entity.VocabItem) error
	// Clear removes the persisted collection.
	Clear(ctx context.Context) error
}
