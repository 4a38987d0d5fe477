package entity

import (
	"strings"
	"time"
)

// Proficiency is the coarse, user-facing learning stage of a tracked word.
// It is derived from the repetition count after every graded review; the
// only direct assignment is the explicit mastered override.
type Proficiency string

const (
	ProficiencyNew      Proficiency = "new"
	ProficiencyLearning Proficiency = "learning"
	ProficiencyFamiliar Proficiency = "familiar"
	ProficiencyMastered Proficiency = "mastered"
)

// ScheduleState holds the spaced-repetition state of a single vocab item.
type ScheduleState struct {
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	NextReview   time.Time `json:"next_review"`
	LastQuality  *int      `json:"last_quality,omitempty"`
}

// VocabItem is a persistently tracked learning unit: one distinct
// case-insensitive surface form of the learned language.
type VocabItem struct {
	ID               string        `json:"id"`
	Word             string        `json:"word"`
	Translation      string        `json:"translation"`
	Context          string        `json:"context,omitempty"`
	PartOfSpeech     string        `json:"part_of_speech,omitempty"`
	FirstEncountered time.Time     `json:"first_encountered"`
	LastPracticed    time.Time     `json:"last_practiced"`
	PracticeCount    int           `json:"practice_count"`
	Proficiency      Proficiency   `json:"proficiency"`
	Schedule         ScheduleState `json:"schedule"`
}

// Key returns the dedup key for the item: the normalized surface form.
func (v *VocabItem) Key() string {
	return NormalizeWordToken(v.Word)
}

// Candidate is the shape produced by the extraction collaborator for a
// word encountered in conversation or text.
type Candidate struct {
	Word         string `json:"word"`
	Translation  string `json:"translation"`
	Context      string `json:"context,omitempty"`
	PartOfSpeech string `json:"part_of_speech,omitempty"`
}

// NormalizeWordToken lowercases and trims a surface form for
// case-insensitive lookup. Empty after trimming means invalid input.
func NormalizeWordToken(word string) string {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}
