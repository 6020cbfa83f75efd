package models

import "time"

// MaxSearchHistory caps the merged dictionary-search history kept in a
// snapshot. Entries beyond the cap are dropped, oldest first.
const MaxSearchHistory = 100

// SearchEntry is one dictionary lookup recorded on a device. History is
// merged as a set keyed by (Term, Timestamp) so the same lookup synced
// from two devices is not duplicated.
type SearchEntry struct {
	Term      string    `json:"term"`
	Language  string    `json:"language,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
