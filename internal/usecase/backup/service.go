// Package backup moves the vocabulary collection in and out of a
// versioned JSON envelope, for transfer between devices and for plain
// backups of the learner's progress.
package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vocabloom/vocabloom/internal/entity"
	"github.com/vocabloom/vocabloom/internal/repository"
)

const formatVersion = 1

var (
	ErrUnsupportedVersion = errors.New("backup: unsupported format version")
	ErrChecksumMismatch   = errors.New("backup: checksum mismatch")
)

// Envelope is the on-the-wire backup format. Checksum covers the
// serialized Items array so tampering or truncation is detected before
// anything touches the store.
type Envelope struct {
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exported_at"`
	Checksum   string             `json:"checksum"`
	Items      []entity.VocabItem `json:"items"`
}

// Service exports and imports the persisted vocabulary collection.
type Service struct {
	repo  repository.VocabRepository
	clock func() time.Time
}

func NewService(repo repository.VocabRepository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// Export writes the full collection as a JSON envelope and returns the
// number of exported items.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load collection: %w", err)
	}

	checksum, err := itemsChecksum(items)
	if err != nil {
		return 0, err
	}

	env := Envelope{
		Version:    formatVersion,
		ExportedAt: s.clock().UTC(),
		Checksum:   checksum,
		Items:      items,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return 0, fmt.Errorf("encode envelope: %w", err)
	}
	return len(items), nil
}

// Import reads an envelope and merges it into the store. With replace
// set the imported collection wins wholesale; otherwise items already
// tracked (by case-insensitive surface form) are kept and only unknown
// words are added. Returns the number of items applied.
func (s *Service) Import(ctx context.Context, r io.Reader, replace bool) (int, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return 0, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Version != formatVersion {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	checksum, err := itemsChecksum(env.Items)
	if err != nil {
		return 0, err
	}
	if checksum != env.Checksum {
		return 0, ErrChecksumMismatch
	}

	if replace {
		if err := s.repo.Save(ctx, env.Items); err != nil {
			return 0, err
		}
		return len(env.Items), nil
	}

	existing, err := s.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load collection: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for i := range existing {
		seen[existing[i].Key()] = true
	}

	merged := existing
	applied := 0
	for i := range env.Items {
		item := env.Items[i]
		if seen[item.Key()] {
			continue
		}
		seen[item.Key()] = true
		merged = append(merged, item)
		applied++
	}
	if applied == 0 {
		return 0, nil
	}
	if err := s.repo.Save(ctx, merged); err != nil {
		return 0, err
	}
	return applied, nil
}

func itemsChecksum(items []entity.VocabItem) (string, error) {
	if items == nil {
		items = []entity.VocabItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("checksum items: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
