package entity

import "errors"

// Domain errors for vocabulary items and review sessions.
var (
	ErrInvalidQuality   = errors.New("quality must be between 0 and 5")
	ErrInvalidOutcome   = errors.New("invalid review outcome")
	ErrInvalidCandidate = errors.New("candidate requires a word and a translation")
	ErrWordNotFound     = errors.New("vocab item not found")
	ErrEmptySession     = errors.New("review session requires at least one item")
	ErrSessionComplete  = errors.New("review session already complete")
	ErrStorageCorrupt   = errors.New("stored vocabulary could not be read")
	ErrStorageWrite     = errors.New("stored vocabulary could not be written")
)
