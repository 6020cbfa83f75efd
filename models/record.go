package models

import (
	"time"
)

// LearningRecord is the per-vocabulary-item learning state synchronized
// across a user's devices. One record exists per (Word, Language) pair
// within an account; the pair forms the record key used by merge logic.
//
// Counters (ReviewCount, CorrectCount, IncorrectCount) are monotonic:
// they only grow on any single device, which is what makes the max-based
// merge rule safe. TotalStudyTime accumulates disjoint study sessions, so
// it is summed rather than maxed during merge.
type LearningRecord struct {
	// Word is the vocabulary item itself, e.g. "run".
	Word string `json:"word"`

	// Language is the locale the word belongs to, e.g. "en".
	Language string `json:"language"`

	// Mastery is the learning score in the range [0, 100].
	Mastery int `json:"mastery"`

	// ReviewCount is the total number of times the word was reviewed.
	ReviewCount int `json:"reviewCount"`

	// CorrectCount is the number of correct answers.
	CorrectCount int `json:"correctCount"`

	// IncorrectCount is the number of incorrect answers.
	IncorrectCount int `json:"incorrectCount"`

	// IntervalDays is the current spaced-repetition interval in days.
	IntervalDays int `json:"intervalDays"`

	// EaseFactor is the spaced-repetition ease factor (SM-2 style).
	EaseFactor float64 `json:"easeFactor"`

	// LastReviewDate is when the word was last reviewed on any device.
	LastReviewDate time.Time `json:"lastReviewDate"`

	// NextReviewDate is when the word is next due for review.
	NextReviewDate time.Time `json:"nextReviewDate"`

	// TotalStudyTime is the cumulative study time in seconds.
	TotalStudyTime int64 `json:"totalStudyTime"`

	// AverageResponseTime is the mean answer latency in milliseconds.
	AverageResponseTime float64 `json:"averageResponseTime"`

	// Confidence is the user's self-assessed confidence, 1–5.
	Confidence int `json:"confidence"`

	// Notes holds free-text user notes attached to the word.
	Notes string `json:"notes,omitempty"`

	// Tags is the set of user-assigned tags. Order is not significant.
	Tags []string `json:"tags,omitempty"`
}

// Key returns the identity of the record within an account's record set.
// Two records with the same key describe the same vocabulary item and are
// subject to field-level merging.
func (r LearningRecord) Key() string {
	return r.Word + "/" + r.Language
}

// Valid reports whether the record carries the minimum required identity.
// Records without a word are malformed and are skipped during merge.
func (r LearningRecord) Valid() bool {
	return r.Word != ""
}
