package entity

import (
	"fmt"
	"strings"
	"time"
)

// Outcome is the typed result of presenting one item during a review
// session. UI button schemes map onto this enum; the enum carries the
// one canonical mapping to the 0-5 quality scale.
type Outcome int

const (
	OutcomeFail Outcome = iota
	OutcomeHard
	OutcomeGood
	OutcomeEasy
	// OutcomeMastered retires the item from active review via the
	// long-horizon override instead of a graded quality.
	OutcomeMastered
)

var outcomeNames = map[Outcome]string{
	OutcomeFail:     "fail",
	OutcomeHard:     "hard",
	OutcomeGood:     "good",
	OutcomeEasy:     "easy",
	OutcomeMastered: "mastered",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Quality returns the 0-5 recall quality for graded outcomes. The second
// return is false for OutcomeMastered, which bypasses the scheduler.
func (o Outcome) Quality() (int, bool) {
	switch o {
	case OutcomeFail:
		return 0, true
	case OutcomeHard:
		return 3, true
	case OutcomeGood:
		return 4, true
	case OutcomeEasy:
		return 5, true
	default:
		return 0, false
	}
}

// Success reports whether the outcome counts as a successful recall.
func (o Outcome) Success() bool {
	return o != OutcomeFail
}

// ParseOutcome converts a user-supplied token into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail", "again", "forgot":
		return OutcomeFail, nil
	case "hard":
		return OutcomeHard, nil
	case "good", "remembered":
		return OutcomeGood, nil
	case "easy":
		return OutcomeEasy, nil
	case "mastered", "master":
		return OutcomeMastered, nil
	default:
		return 0, fmt.Errorf("%w: unknown outcome %q", ErrInvalidOutcome, s)
	}
}

// Outcomes lists all valid outcomes in presentation order.
func Outcomes() []Outcome {
	return []Outcome{OutcomeFail, OutcomeHard, OutcomeGood, OutcomeEasy, OutcomeMastered}
}

// SessionStats aggregates the results of one review sitting.
type SessionStats struct {
	TotalGraded int
	Skipped     int
	PerOutcome  map[Outcome]int
	Accuracy    float64
	Elapsed     time.Duration
}
