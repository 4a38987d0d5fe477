package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/vocabloom/vocabloom/internal/entity"
	"github.com/vocabloom/vocabloom/internal/repository"
	"github.com/vocabloom/vocabloom/internal/scheduler"
)

// masteredHorizonDays is the review horizon applied by the explicit
// mastered override: long enough to retire the item from active review.
const masteredHorizonDays = 365

// VocabUsecase is the authoritative, persisted vocabulary collection:
// dedup by case-insensitive surface form, scheduling updates, due
// queries. Intended for a single owner; every mutation durably commits
// before returning.
type VocabUsecase interface {
	AddOrReinforce(ctx context.Context, cand entity.Candidate) (*entity.VocabItem, error)
	ApplyReview(ctx context.Context, id string, quality int) (*entity.VocabItem, error)
	MarkMastered(ctx context.Context, id string) (*entity.VocabItem, error)
	Get(ctx context.Context, id string) (*entity.VocabItem, error)
	FindByWord(ctx context.Context, word string) (*entity.VocabItem, error)
	List(ctx context.Context) ([]entity.VocabItem, error)
	DueItems(ctx context.Context, asOf time.Time) ([]entity.VocabItem, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// NewVocabUsecase loads the persisted collection and wires the
// repository with default behaviour. When the stored data is unreadable
// the returned usecase starts from an empty collection and the load
// error (wrapping entity.ErrStorageCorrupt) is returned alongside it so
// the caller can warn the user; the usecase itself remains usable.
func NewVocabUsecase(ctx context.Context, repo repository.VocabRepository) (VocabUsecase, error) {
	u := &vocabUsecase{
		repo:   repo,
		clock:  time.Now,
		items:  make(map[string]*entity.VocabItem),
		byWord: make(map[string]string),
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		return u, err
	}
	for i := range loaded {
		item := loaded[i]
		u.items[item.ID] = &item
		u.byWord[item.Key()] = item.ID
	}
	return u, nil
}

type vocabUsecase struct {
	repo  repository.VocabRepository
	clock func() time.Time

	items  map[string]*entity.VocabItem // by id
	byWord map[string]string            // normalized word -> id
}

func (u *vocabUsecase) AddOrReinforce(ctx context.Context, cand entity.Candidate) (*entity.VocabItem, error) {
	word := strings.TrimSpace(cand.Word)
	translation := strings.TrimSpace(cand.Translation)
	if word == "" || translation == "" {
		return nil, entity.ErrInvalidCandidate
	}

	now := u.clock()
	key := entity.NormalizeWordToken(word)

	if id, ok := u.byWord[key]; ok {
		// Passive re-encounter: practice metadata only, never the schedule.
		updated := *u.items[id]
		updated.PracticeCount++
		updated.LastPracticed = now
		updated.Translation = translation
		if cand.Context != "" {
			updated.Context = cand.Context
		}
		if cand.PartOfSpeech != "" {
			updated.PartOfSpeech = cand.PartOfSpeech
		}
		return u.commit(ctx, &updated)
	}

	item := entity.VocabItem{
		ID:               uuid.NewString(),
		Word:             word,
		Translation:      translation,
		Context:          cand.Context,
		PartOfSpeech:     cand.PartOfSpeech,
		FirstEncountered: now,
		LastPracticed:    now,
		PracticeCount:    1,
		Proficiency:      entity.ProficiencyNew,
		Schedule:         scheduler.NewState(now),
	}
	return u.commit(ctx, &item)
}

func (u *vocabUsecase) ApplyReview(ctx context.Context, id string, quality int) (*entity.VocabItem, error) {
	cur, ok := u.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrWordNotFound, id)
	}

	now := u.clock()
	next, err := scheduler.Next(quality, cur.Schedule, now)
	if err != nil {
		return nil, err
	}

	updated := *cur
	updated.Schedule = next
	updated.Proficiency = scheduler.Classify(next)
	updated.PracticeCount++
	updated.LastPracticed = now
	return u.commit(ctx, &updated)
}

func (u *vocabUsecase) MarkMastered(ctx context.Context, id string) (*entity.VocabItem, error) {
	cur, ok := u.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrWordNotFound, id)
	}

	now := u.clock()
	updated := *cur
	updated.Proficiency = entity.ProficiencyMastered
	updated.Schedule.Repetitions++
	updated.Schedule.NextReview = now.AddDate(0, 0, masteredHorizonDays)
	updated.PracticeCount++
	updated.LastPracticed = now
	return u.commit(ctx, &updated)
}

func (u *vocabUsecase) Get(ctx context.Context, id string) (*entity.VocabItem, error) {
	item, ok := u.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrWordNotFound, id)
	}
	copy := *item
	return &copy, nil
}

// FindByWord looks an item up by case-insensitive surface form.
// Returns nil without error when the word is not tracked.
func (u *vocabUsecase) FindByWord(ctx context.Context, word string) (*entity.VocabItem, error) {
	id, ok := u.byWord[entity.NormalizeWordToken(word)]
	if !ok {
		return nil, nil
	}
	copy := *u.items[id]
	return &copy, nil
}

func (u *vocabUsecase) List(ctx context.Context) ([]entity.VocabItem, error) {
	items := u.snapshot()
	sort.Slice(items, func(i, j int) bool {
		if items[i].FirstEncountered.Equal(items[j].FirstEncountered) {
			return items[i].ID < items[j].ID
		}
		return items[i].FirstEncountered.Before(items[j].FirstEncountered)
	})
	return items, nil
}

// DueItems returns the items whose next review is at or before asOf,
// ascending by next review date. Evaluated fresh on every call.
func (u *vocabUsecase) DueItems(ctx context.Context, asOf time.Time) ([]entity.VocabItem, error) {
	due := lo.Filter(u.snapshot(), func(item entity.VocabItem, _ int) bool {
		return !item.Schedule.NextReview.After(asOf)
	})
	sort.Slice(due, func(i, j int) bool {
		if due[i].Schedule.NextReview.Equal(due[j].Schedule.NextReview) {
			return due[i].ID < due[j].ID
		}
		return due[i].Schedule.NextReview.Before(due[j].Schedule.NextReview)
	})
	return due, nil
}

func (u *vocabUsecase) Delete(ctx context.Context, id string) error {
	cur, ok := u.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", entity.ErrWordNotFound, id)
	}

	delete(u.items, id)
	delete(u.byWord, cur.Key())
	if err := u.persist(ctx); err != nil {
		// Failed write: restore the entry so memory and disk agree.
		u.items[id] = cur
		u.byWord[cur.Key()] = id
		return err
	}
	return nil
}

func (u *vocabUsecase) Clear(ctx context.Context) error {
	if err := u.repo.Clear(ctx); err != nil {
		return err
	}
	u.items = make(map[string]*entity.VocabItem)
	u.byWord = make(map[string]string)
	return nil
}

// commit installs the updated item and persists the collection. On a
// failed write the previous in-memory state is restored so a caller
// never observes a state the backing store does not hold.
func (u *vocabUsecase) commit(ctx context.Context, updated *entity.VocabItem) (*entity.VocabItem, error) {
	prev, existed := u.items[updated.ID]

	u.items[updated.ID] = updated
	u.byWord[updated.Key()] = updated.ID

	if err := u.persist(ctx); err != nil {
		if existed {
			u.items[updated.ID] = prev
			u.byWord[prev.Key()] = prev.ID
		} else {
			delete(u.items, updated.ID)
			delete(u.byWord, updated.Key())
		}
		return nil, err
	}

	copy := *updated
	return &copy, nil
}

func (u *vocabUsecase) persist(ctx context.Context) error {
	return u.repo.Save(ctx, u.snapshot())
}

func (u *vocabUsecase) snapshot() []entity.VocabItem {
	return lo.Map(lo.Values(u.items), func(item *entity.VocabItem, _ int) entity.VocabItem {
		return *item
	})
}
