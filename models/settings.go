package models

// SettingsRecord holds the user preference groups synchronized alongside
// learning data. One SettingsRecord exists per account.
//
// Groups are pointers so that an uploading device can omit groups it did
// not touch: a nil group means "no opinion", and the stored group is
// preserved unchanged during merge. Fields inside a group are pointers
// for the same reason — only fields present in the incoming payload
// overwrite the stored values (group-wise shallow merge).
type SettingsRecord struct {
	Notifications *NotificationSettings `json:"notifications,omitempty"`
	Learning      *LearningSettings     `json:"learning,omitempty"`
	Privacy       *PrivacySettings      `json:"privacy,omitempty"`
	Appearance    *AppearanceSettings   `json:"appearance,omitempty"`
}

// NotificationSettings controls reminder and push behaviour.
type NotificationSettings struct {
	Enabled       *bool   `json:"enabled,omitempty"`
	DailyReminder *bool   `json:"dailyReminder,omitempty"`
	ReminderTime  *string `json:"reminderTime,omitempty"` // "HH:MM", device-local
	StreakAlerts  *bool   `json:"streakAlerts,omitempty"`
}

// LearningSettings tunes the spaced-repetition flow.
type LearningSettings struct {
	NewWordsPerDay   *int    `json:"newWordsPerDay,omitempty"`
	ReviewBatchSize  *int    `json:"reviewBatchSize,omitempty"`
	AutoPlayAudio    *bool   `json:"autoPlayAudio,omitempty"`
	DifficultyPreset *string `json:"difficultyPreset,omitempty"`
}

// PrivacySettings controls data-sharing preferences.
type PrivacySettings struct {
	ShareProgress  *bool `json:"shareProgress,omitempty"`
	AnalyticsOptIn *bool `json:"analyticsOptIn,omitempty"`
}

// AppearanceSettings holds the theme and locale scalars. Both are
// last-writer-wins during merge.
type AppearanceSettings struct {
	Theme  *string `json:"theme,omitempty"`
	Locale *string `json:"locale,omitempty"`
}
