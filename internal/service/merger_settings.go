package service

import (
	"sort"

	"github.com/lexisync/lexisync/models"
)

// mergeSettings applies the group-wise shallow merge: for each top-level
// group present in the incoming payload, stored fields are overwritten
// by any fields present (non-nil) on the incoming side; groups absent in
// the incoming payload are preserved unchanged. Theme and locale are
// plain last-writer-wins scalars inside the appearance group.
func mergeSettings(stored, incoming *models.SettingsRecord) *models.SettingsRecord {
	if incoming == nil {
		return stored
	}
	if stored == nil {
		return incoming
	}

	merged := &models.SettingsRecord{
		Notifications: mergeNotificationSettings(stored.Notifications, incoming.Notifications),
		Learning:      mergeLearningSettings(stored.Learning, incoming.Learning),
		Privacy:       mergePrivacySettings(stored.Privacy, incoming.Privacy),
		Appearance:    mergeAppearanceSettings(stored.Appearance, incoming.Appearance),
	}

	return merged
}

func mergeNotificationSettings(stored, incoming *models.NotificationSettings) *models.NotificationSettings {
	if incoming == nil {
		return stored
	}
	if stored == nil {
		return incoming
	}

	merged := *stored
	if incoming.Enabled != nil {
		merged.Enabled = incoming.Enabled
	}
	if incoming.DailyReminder != nil {
		merged.DailyReminder = incoming.DailyReminder
	}
	if incoming.ReminderTime != nil {
		merged.ReminderTime = incoming.ReminderTime
	}
	if incoming.StreakAlerts != nil {
		merged.StreakAlerts = incoming.StreakAlerts
	}
	return &merged
}

func mergeLearningSettings(stored, incoming *models.LearningSettings) *models.LearningSettings {
	if incoming == nil {
		return stored
	}
	if stored == nil {
		return incoming
	}

	merged := *stored
	if incoming.NewWordsPerDay != nil {
		merged.NewWordsPerDay = incoming.NewWordsPerDay
	}
	if incoming.ReviewBatchSize != nil {
		merged.ReviewBatchSize = incoming.ReviewBatchSize
	}
	if incoming.AutoPlayAudio != nil {
		merged.AutoPlayAudio = incoming.AutoPlayAudio
	}
	if incoming.DifficultyPreset != nil {
		merged.DifficultyPreset = incoming.DifficultyPreset
	}
	return &merged
}

func mergePrivacySettings(stored, incoming *models.PrivacySettings) *models.PrivacySettings {
	if incoming == nil {
		return stored
	}
	if stored == nil {
		return incoming
	}

	merged := *stored
	if incoming.ShareProgress != nil {
		merged.ShareProgress = incoming.ShareProgress
	}
	if incoming.AnalyticsOptIn != nil {
		merged.AnalyticsOptIn = incoming.AnalyticsOptIn
	}
	return &merged
}

func mergeAppearanceSettings(stored, incoming *models.AppearanceSettings) *models.AppearanceSettings {
	if incoming == nil {
		return stored
	}
	if stored == nil {
		return incoming
	}

	// last writer wins for both scalars
	merged := *stored
	if incoming.Theme != nil {
		merged.Theme = incoming.Theme
	}
	if incoming.Locale != nil {
		merged.Locale = incoming.Locale
	}
	return &merged
}

// mergeSearchHistory unions the two histories keyed by (term, timestamp),
// newest first, capped at [models.MaxSearchHistory] entries.
func mergeSearchHistory(stored, incoming []models.SearchEntry) []models.SearchEntry {
	if len(stored) == 0 && len(incoming) == 0 {
		return nil
	}

	type historyKey struct {
		term string
		ts   int64
	}

	seen := make(map[historyKey]struct{}, len(stored)+len(incoming))
	merged := make([]models.SearchEntry, 0, len(stored)+len(incoming))

	for _, entry := range append(append([]models.SearchEntry(nil), stored...), incoming...) {
		key := historyKey{term: entry.Term, ts: entry.Timestamp.UnixNano()}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, entry)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	if len(merged) > models.MaxSearchHistory {
		merged = merged[:models.MaxSearchHistory]
	}

	return merged
}
