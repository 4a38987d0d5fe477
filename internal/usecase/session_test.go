package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vocabloom/vocabloom/internal/entity"
)

func startTestSession(t *testing.T, words ...string) (*ReviewSession, *vocabUsecase, *fakeVocabRepo) {
	t.Helper()
	uc, repo := newTestUsecase(t, nil, fixedNow)
	ctx := context.Background()

	items := make([]entity.VocabItem, 0, len(words))
	for _, w := range words {
		item, err := uc.AddOrReinforce(ctx, entity.Candidate{Word: w, Translation: w})
		if err != nil {
			t.Fatalf("add %q failed: %v", w, err)
		}
		items = append(items, *item)
	}

	session, err := NewSession(uc, items)
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	session.clock = func() time.Time { return fixedNow }
	return session, uc, repo
}

func TestNewSessionRejectsEmptyInput(t *testing.T) {
	uc, _ := newTestUsecase(t, nil, fixedNow)
	if _, err := NewSession(uc, nil); !errors.Is(err, entity.ErrEmptySession) {
		t.Errorf("expected ErrEmptySession, got %v", err)
	}
	if _, err := NewSession(uc, []entity.VocabItem{}); !errors.Is(err, entity.ErrEmptySession) {
		t.Errorf("expected ErrEmptySession, got %v", err)
	}
}

func TestSessionCompletenessOverReviewAndSkip(t *testing.T) {
	session, _, _ := startTestSession(t, "eins", "zwei", "drei", "vier")
	ctx := context.Background()

	if session.IsComplete() {
		t.Fatal("fresh session must not be complete")
	}
	if session.Remaining() != 4 {
		t.Fatalf("expected 4 remaining, got %d", session.Remaining())
	}

	if _, err := session.Review(ctx, entity.OutcomeGood); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if err := session.Skip(); err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	if _, err := session.Review(ctx, entity.OutcomeFail); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if session.IsComplete() {
		t.Fatal("session complete one position early")
	}
	if _, err := session.Review(ctx, entity.OutcomeEasy); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if !session.IsComplete() {
		t.Fatal("expected session complete after N calls")
	}
	if _, err := session.Review(ctx, entity.OutcomeGood); !errors.Is(err, entity.ErrSessionComplete) {
		t.Errorf("expected ErrSessionComplete, got %v", err)
	}
	if err := session.Skip(); !errors.Is(err, entity.ErrSessionComplete) {
		t.Errorf("expected ErrSessionComplete on skip, got %v", err)
	}

	stats := session.Summary()
	if stats.TotalGraded+stats.Skipped != session.Size() {
		t.Errorf("graded %d + skipped %d must equal session size %d",
			stats.TotalGraded, stats.Skipped, session.Size())
	}
}

func TestSessionSummaryCounts(t *testing.T) {
	session, _, _ := startTestSession(t, "a", "b", "c", "d", "e")
	ctx := context.Background()

	if _, err := session.Review(ctx, entity.OutcomeGood); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if _, err := session.Review(ctx, entity.OutcomeFail); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if _, err := session.Review(ctx, entity.OutcomeEasy); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if err := session.Skip(); err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	if _, err := session.Review(ctx, entity.OutcomeMastered); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	stats := session.Summary()
	if stats.TotalGraded != 4 {
		t.Errorf("expected 4 graded, got %d", stats.TotalGraded)
	}
	if stats.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", stats.Skipped)
	}
	if stats.PerOutcome[entity.OutcomeGood] != 1 ||
		stats.PerOutcome[entity.OutcomeFail] != 1 ||
		stats.PerOutcome[entity.OutcomeEasy] != 1 ||
		stats.PerOutcome[entity.OutcomeMastered] != 1 {
		t.Errorf("unexpected per-outcome counts: %+v", stats.PerOutcome)
	}
	if stats.Accuracy != 0.75 {
		t.Errorf("expected accuracy 0.75 (3/4 successes), got %v", stats.Accuracy)
	}
}

func TestSessionMasteredRoutesToOverride(t *testing.T) {
	session, uc, _ := startTestSession(t, "Meister")
	ctx := context.Background()

	current, ok := session.Current()
	if !ok {
		t.Fatal("expected a current item")
	}

	updated, err := session.Review(ctx, entity.OutcomeMastered)
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if updated.Proficiency != entity.ProficiencyMastered {
		t.Errorf("expected mastered, got %q", updated.Proficiency)
	}
	if !updated.Schedule.NextReview.Equal(fixedNow.AddDate(0, 0, 365)) {
		t.Errorf("expected long-horizon next review, got %v", updated.Schedule.NextReview)
	}

	stored, err := uc.Get(ctx, current.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Schedule.LastQuality != nil {
		t.Error("mastered override must not record a graded quality")
	}
	if !session.IsComplete() {
		t.Error("single-item session must be complete after the override")
	}
}

func TestSessionMasteredDoesNotSkipFollowingItem(t *testing.T) {
	session, _, _ := startTestSession(t, "erste", "zweite")
	ctx := context.Background()

	if _, err := session.Review(ctx, entity.OutcomeMastered); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	current, ok := session.Current()
	if !ok {
		t.Fatal("expected a following item")
	}
	if current.Word != "zweite" {
		t.Errorf("mastered removal skipped the next item: got %q", current.Word)
	}
	if session.Remaining() != 1 {
		t.Errorf("expected 1 remaining, got %d", session.Remaining())
	}
}

func TestSessionReviewErrorLeavesPositionUnadvanced(t *testing.T) {
	session, _, repo := startTestSession(t, "eins", "zwei")
	ctx := context.Background()

	repo.failSave = true
	if _, err := session.Review(ctx, entity.OutcomeGood); !errors.Is(err, entity.ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite, got %v", err)
	}

	current, ok := session.Current()
	if !ok || current.Word != "eins" {
		t.Errorf("failed review must leave the position unadvanced, current=%+v", current)
	}
	stats := session.Summary()
	if stats.TotalGraded != 0 {
		t.Errorf("failed review must not be counted, got %d graded", stats.TotalGraded)
	}

	// The caller may retry the same item once the store recovers.
	repo.failSave = false
	if _, err := session.Review(ctx, entity.OutcomeGood); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	current, _ = session.Current()
	if current == nil || current.Word != "zwei" {
		t.Errorf("expected to advance to zwei after retry, got %+v", current)
	}
}

func TestSessionSnapshotIsImmutable(t *testing.T) {
	uc, _ := newTestUsecase(t, nil, fixedNow)
	ctx := context.Background()

	item, _ := uc.AddOrReinforce(ctx, entity.Candidate{Word: "fest", Translation: "firm"})
	input := []entity.VocabItem{*item}

	session, err := NewSession(uc, input)
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}

	input[0].Word = "mutated"
	current, _ := session.Current()
	if current.Word != "fest" {
		t.Errorf("session snapshot aliased caller slice: %q", current.Word)
	}
}
