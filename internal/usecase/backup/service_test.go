package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vocabloom/vocabloom/internal/adapter/kvstore"
	adapter "github.com/vocabloom/vocabloom/internal/adapter/repository"
	"github.com/vocabloom/vocabloom/internal/entity"
	"github.com/vocabloom/vocabloom/internal/repository"
)

var exportedAt = time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, seed []entity.VocabItem) (*Service, repository.VocabRepository) {
	t.Helper()
	repo := adapter.NewVocabRepository(kvstore.NewMemory())
	if len(seed) > 0 {
		if err := repo.Save(context.Background(), seed); err != nil {
			t.Fatalf("seed save failed: %v", err)
		}
	}
	svc := NewService(repo)
	svc.clock = func() time.Time { return exportedAt }
	return svc, repo
}

func seedItems() []entity.VocabItem {
	first := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
	return []entity.VocabItem{
		{
			ID: "w1", Word: "Hund", Translation: "dog",
			FirstEncountered: first, LastPracticed: first, PracticeCount: 2,
			Proficiency: entity.ProficiencyLearning,
			Schedule: entity.ScheduleState{
				EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2,
				NextReview: first.AddDate(0, 0, 6),
			},
		},
		{
			ID: "w2", Word: "Katze", Translation: "cat",
			FirstEncountered: first.Add(time.Hour), LastPracticed: first.Add(time.Hour),
			PracticeCount: 1, Proficiency: entity.ProficiencyNew,
			Schedule: entity.ScheduleState{
				EaseFactor: 2.5, IntervalDays: 1, Repetitions: 0,
				NextReview: first.Add(25 * time.Hour),
			},
		},
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, seedItems())

	var buf bytes.Buffer
	count, err := svc.Export(ctx, &buf)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 exported items, got %d", count)
	}

	target, targetRepo := newTestService(t, nil)
	applied, err := target.Import(ctx, &buf, false)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 applied items, got %d", applied)
	}

	restored, err := targetRepo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(restored) != 2 {
		t.Fatalf("expected 2 restored items, got %d", len(restored))
	}
	if restored[0].Word != "Hund" || !restored[0].Schedule.NextReview.Equal(seedItems()[0].Schedule.NextReview) {
		t.Errorf("restored item drifted: %+v", restored[0])
	}
}

func TestImportMergeKeepsExistingWords(t *testing.T) {
	ctx := context.Background()
	source, _ := newTestService(t, seedItems())

	var buf bytes.Buffer
	if _, err := source.Export(ctx, &buf); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	local := seedItems()[0]
	local.ID = "local-1"
	local.Word = "HUND" // same surface form, different case
	local.PracticeCount = 9
	target, targetRepo := newTestService(t, []entity.VocabItem{local})

	applied, err := target.Import(ctx, &buf, false)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected only Katze applied, got %d", applied)
	}

	items, _ := targetRepo.Load(ctx)
	if len(items) != 2 {
		t.Fatalf("expected 2 items after merge, got %d", len(items))
	}
	for _, item := range items {
		if item.Key() == "hund" && item.PracticeCount != 9 {
			t.Errorf("merge overwrote the local item: %+v", item)
		}
	}
}

func TestImportReplaceOverwrites(t *testing.T) {
	ctx := context.Background()
	source, _ := newTestService(t, seedItems())

	var buf bytes.Buffer
	if _, err := source.Export(ctx, &buf); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	extra := seedItems()[0]
	extra.ID = "stale"
	extra.Word = "Vogel"
	target, targetRepo := newTestService(t, []entity.VocabItem{extra})

	if _, err := target.Import(ctx, &buf, true); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	items, _ := targetRepo.Load(ctx)
	if len(items) != 2 {
		t.Fatalf("expected replaced collection of 2, got %d", len(items))
	}
	for _, item := range items {
		if item.Word == "Vogel" {
			t.Error("replace import kept a stale local item")
		}
	}
}

func TestImportRejectsUnsupportedVersion(t *testing.T) {
	svc, _ := newTestService(t, nil)
	payload := `{"version": 99, "checksum": "", "items": []}`
	if _, err := svc.Import(context.Background(), strings.NewReader(payload), false); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestImportRejectsChecksumMismatch(t *testing.T) {
	ctx := context.Background()
	source, _ := newTestService(t, seedItems())

	var buf bytes.Buffer
	if _, err := source.Export(ctx, &buf); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	env.Items[0].PracticeCount = 1000 // tamper
	tampered, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal tampered envelope: %v", err)
	}

	target, _ := newTestService(t, nil)
	if _, err := target.Import(ctx, bytes.NewReader(tampered), false); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}
}
