package usecase

import (
	"context"
	"time"

	"github.com/vocabloom/vocabloom/internal/entity"
)

// ReviewSession is a bounded walk over a fixed snapshot of items for one
// sitting. It owns per-outcome counters and delegates every scheduling
// decision to the vocabulary usecase; it is ephemeral and never
// persisted.
type ReviewSession struct {
	store VocabUsecase
	clock func() time.Time

	items     []entity.VocabItem
	pos       int
	counts    map[entity.Outcome]int
	skipped   int
	startedAt time.Time
}

// NewSession starts a session over the given items. The slice is copied
// into an immutable snapshot; an empty input is rejected and callers
// must choose their own fallback item set first.
func NewSession(store VocabUsecase, items []entity.VocabItem) (*ReviewSession, error) {
	if len(items) == 0 {
		return nil, entity.ErrEmptySession
	}
	s := &ReviewSession{
		store:  store,
		clock:  time.Now,
		items:  append([]entity.VocabItem(nil), items...),
		counts: make(map[entity.Outcome]int),
	}
	s.startedAt = s.clock()
	return s, nil
}

// Current returns the item at the session position, or false when the
// session is complete.
func (s *ReviewSession) Current() (*entity.VocabItem, bool) {
	if s.IsComplete() {
		return nil, false
	}
	copy := s.items[s.pos]
	return &copy, true
}

// Review grades the current item with the given outcome and advances by
// exactly one position. OutcomeMastered routes through the mastered
// override, every other outcome through a graded scheduler update. On
// error the position is left unadvanced so the caller can retry or skip
// explicitly; the learner's answer is never silently dropped.
func (s *ReviewSession) Review(ctx context.Context, outcome entity.Outcome) (*entity.VocabItem, error) {
	if s.IsComplete() {
		return nil, entity.ErrSessionComplete
	}

	item := s.items[s.pos]
	var (
		updated *entity.VocabItem
		err     error
	)
	if quality, graded := outcome.Quality(); graded {
		updated, err = s.store.ApplyReview(ctx, item.ID, quality)
	} else {
		updated, err = s.store.MarkMastered(ctx, item.ID)
	}
	if err != nil {
		return nil, err
	}

	s.record(outcome)
	s.pos++
	return updated, nil
}

// Skip advances past the current item without grading it. Skips count as
// incomplete outcomes in the summary, never as successes or failures.
func (s *ReviewSession) Skip() error {
	if s.IsComplete() {
		return entity.ErrSessionComplete
	}
	s.skipped++
	s.pos++
	return nil
}

// IsComplete reports whether every item in the snapshot was handled.
func (s *ReviewSession) IsComplete() bool {
	return s.pos >= len(s.items)
}

// Remaining returns the number of items not yet handled.
func (s *ReviewSession) Remaining() int {
	return len(s.items) - s.pos
}

// Size returns the fixed length of the session snapshot.
func (s *ReviewSession) Size() int {
	return len(s.items)
}

// Summary aggregates session results. Callable at any point and
// authoritative once the session is complete.
func (s *ReviewSession) Summary() entity.SessionStats {
	stats := entity.SessionStats{
		Skipped:    s.skipped,
		PerOutcome: make(map[entity.Outcome]int, len(s.counts)),
		Elapsed:    s.clock().Sub(s.startedAt),
	}

	successes := 0
	for outcome, n := range s.counts {
		stats.PerOutcome[outcome] = n
		stats.TotalGraded += n
		if outcome.Success() {
			successes += n
		}
	}
	if stats.TotalGraded > 0 {
		stats.Accuracy = float64(successes) / float64(stats.TotalGraded)
	}
	return stats
}

// record is the single reducer behind the per-outcome counters.
func (s *ReviewSession) record(outcome entity.Outcome) {
	s.counts[outcome]++
}
