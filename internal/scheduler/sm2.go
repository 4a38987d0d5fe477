// Package scheduler implements the SM-2 derived spaced-repetition
// algorithm as pure functions over entity.ScheduleState. Time is always
// an explicit parameter so every computation is deterministic.
package scheduler

import (
	"math"
	"time"

	"github.com/vocabloom/vocabloom/internal/entity"
)

const (
	// MinEaseFactor is the hard floor of the SM-2 ease factor.
	MinEaseFactor = 1.3
	// InitialEaseFactor seeds newly tracked items.
	InitialEaseFactor = 2.5
	// InitialIntervalDays is the interval assigned at creation and after
	// the first successful review.
	InitialIntervalDays = 1

	passThreshold      = 3
	failEasePenalty    = 0.2
	secondIntervalDays = 6
)

// NewState returns the schedule state for a freshly tracked item:
// one repetition-free day out from now.
func NewState(now time.Time) entity.ScheduleState {
	return entity.ScheduleState{
		EaseFactor:   InitialEaseFactor,
		IntervalDays: InitialIntervalDays,
		Repetitions:  0,
		NextReview:   now.AddDate(0, 0, InitialIntervalDays),
	}
}

// Next computes the schedule state following a graded review.
//
// quality < 3 is a failed recall: repetitions reset to zero, the interval
// collapses back to one day and the ease factor takes a flat penalty.
// quality >= 3 grows the interval: the first two successes use the fixed
// 1-day and 6-day steps, later ones multiply by the updated ease factor.
// The ease factor never drops below MinEaseFactor in either branch.
//
// Quality outside [0, 5] is a caller error and is rejected, not clamped;
// UI layers own the mapping of their actions onto this scale.
func Next(quality int, cur entity.ScheduleState, now time.Time) (entity.ScheduleState, error) {
	if quality < 0 || quality > 5 {
		return entity.ScheduleState{}, entity.ErrInvalidQuality
	}

	next := cur
	q := quality
	next.LastQuality = &q

	if quality < passThreshold {
		next.Repetitions = 0
		next.IntervalDays = 1
		next.EaseFactor = math.Max(MinEaseFactor, cur.EaseFactor-failEasePenalty)
	} else {
		// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
		delta := 0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02)
		next.EaseFactor = math.Max(MinEaseFactor, cur.EaseFactor+delta)

		switch cur.Repetitions {
		case 0:
			next.IntervalDays = InitialIntervalDays
		case 1:
			next.IntervalDays = secondIntervalDays
		default:
			next.IntervalDays = int(math.Round(float64(cur.IntervalDays) * next.EaseFactor))
		}
		next.Repetitions = cur.Repetitions + 1
	}

	// Calendar-day arithmetic: the interval is rounded, never the date.
	next.NextReview = now.AddDate(0, 0, next.IntervalDays)
	return next, nil
}
