package models

import "time"

// UploadRequest is the body of POST /api/sync/upload. Exactly one payload
// mode is used per call: a structured delta (Records / Settings /
// SearchHistory) or an opaque full-state snapshot (Snapshot). The two
// modes are distinguished by which fields are populated.
type UploadRequest struct {
	// Records is the structured delta of learning records.
	Records []LearningRecord `json:"records,omitempty"`

	// Settings carries preference-group changes, if any.
	Settings *SettingsRecord `json:"settings,omitempty"`

	// SearchHistory carries new dictionary lookups, if any.
	SearchHistory []SearchEntry `json:"searchHistory,omitempty"`

	// Snapshot is the base64 opaque blob for full-state uploads. When
	// set, the structured fields above must be empty.
	Snapshot string `json:"snapshot,omitempty"`

	// Device identifies the uploading client.
	Device DeviceMeta `json:"device"`

	// Timestamp is the device-reported upload time.
	Timestamp time.Time `json:"timestamp"`

	// Version is the snapshot version the device believes is current.
	// The store corrects stale declarations (see UploadResponse.Version).
	Version int64 `json:"version"`
}

// Structured reports whether the request carries a structured delta
// rather than an opaque blob.
func (r *UploadRequest) Structured() bool {
	return r.Snapshot == ""
}

// Empty reports whether the request carries no payload at all.
func (r *UploadRequest) Empty() bool {
	return r.Snapshot == "" && len(r.Records) == 0 && r.Settings == nil && len(r.SearchHistory) == 0
}

// UploadResponse is the result of an upload. Version is authoritative: it
// may differ from the declared version when the store corrected a stale
// declaration.
type UploadResponse struct {
	Success   bool             `json:"success"`
	Version   int64            `json:"version"`
	Conflicts []ConflictReport `json:"conflicts,omitempty"`

	// Skipped lists keys of malformed records dropped from the batch.
	Skipped []string `json:"skipped,omitempty"`
}

// DownloadResponse is the body of GET /api/sync/download.
type DownloadResponse struct {
	Records       []LearningRecord `json:"records"`
	Settings      *SettingsRecord  `json:"settings,omitempty"`
	SearchHistory []SearchEntry    `json:"searchHistory,omitempty"`

	// Snapshot is set instead of the structured fields when the latest
	// snapshot is an opaque encrypted blob.
	Snapshot string `json:"snapshot,omitempty"`

	Version      int64     `json:"version"`
	LastModified time.Time `json:"lastModified"`
}

// ForceSyncResponse is the union of upload and download results returned
// by POST /api/sync/force.
type ForceSyncResponse struct {
	Upload   UploadResponse   `json:"upload"`
	Download DownloadResponse `json:"download"`
}

// ResolveRequest is the body of POST /api/sync/resolve-conflicts.
type ResolveRequest struct {
	Conflicts  []ConflictReport   `json:"conflicts"`
	Resolution ResolutionStrategy `json:"resolution"`
}

// ResolveResponse reports how many conflicts were settled and the version
// of the snapshot the resolutions were folded into.
type ResolveResponse struct {
	Success  bool  `json:"success"`
	Resolved int   `json:"resolved"`
	Version  int64 `json:"version"`
}

// StatusResponse is the body of GET /api/sync/status.
type StatusResponse struct {
	// LastSyncTime is the most recent sync completed by any of the
	// account's devices; zero when the account has never synced.
	LastSyncTime time.Time `json:"lastSyncTime"`

	// HasUnsyncedData is a heuristic: true when any snapshot history
	// exists for the account.
	HasUnsyncedData bool `json:"hasUnsyncedData"`

	Conflicts []ConflictReport `json:"conflicts"`
	Version   int64            `json:"version"`
}

// HistoryResponse is the paginated body of GET /api/sync/history.
type HistoryResponse struct {
	Snapshots []SnapshotMeta `json:"snapshots"`
	Page      int            `json:"page"`
	Limit     int            `json:"limit"`
	Total     int            `json:"total"`
}

// CleanupResponse is the body of DELETE /api/sync/cleanup.
type CleanupResponse struct {
	// DeletedCount is the total number of removed rows: stale inactive
	// devices plus pruned snapshot versions.
	DeletedCount int `json:"deletedCount"`
}

// DeviceListResponse is the body of GET /api/sync/devices.
type DeviceListResponse struct {
	Devices []DeviceRecord `json:"devices"`
	Length  int            `json:"length"`
}
