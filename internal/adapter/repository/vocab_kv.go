// Package repository implements the vocabulary repository on top of the
// key-value persistence contract: the full item collection is serialized
// as one JSON document under a single key.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vocabloom/vocabloom/internal/entity"
	"github.com/vocabloom/vocabloom/internal/repository"
)

// CollectionKey is the key the serialized vocabulary lives under.
const CollectionKey = "vocabulary/items"

type vocabKVRepository struct {
	kv  repository.KeyValue
	key string
}

// NewVocabRepository binds the vocabulary collection to a key-value store.
func NewVocabRepository(kv repository.KeyValue) repository.VocabRepository {
	return &vocabKVRepository{kv: kv, key: CollectionKey}
}

func (r *vocabKVRepository) Load(ctx context.Context) ([]entity.VocabItem, error) {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageCorrupt, err)
	}
	if !ok {
		return []entity.VocabItem{}, nil
	}

	var items []entity.VocabItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode collection: %v", entity.ErrStorageCorrupt, err)
	}
	return items, nil
}

func (r *vocabKVRepository) Save(ctx context.Context, items []entity.VocabItem) error {
	// Stable on-disk order keeps exports and diffs reproducible.
	sorted := append([]entity.VocabItem(nil), items...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FirstEncountered.Equal(sorted[j].FirstEncountered) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].FirstEncountered.Before(sorted[j].FirstEncountered)
	})

	raw, err := json.Marshal(sorted)
	if err != nil {
		return fmt.Errorf("%w: encode collection: %v", entity.ErrStorageWrite, err)
	}
	if err := r.kv.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageWrite, err)
	}
	return nil
}

func (r *vocabKVRepository) Clear(ctx context.Context) error {
	if err := r.kv.Remove(ctx, r.key); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageWrite, err)
	}
	return nil
}
