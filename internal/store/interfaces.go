package store

import (
	"context"
	"time"

	"github.com/lexisync/lexisync/models"
)

// SnapshotStore persists an account's versioned snapshot lineage.
//
// Snapshots are append-only: Append never mutates an existing version in
// place, so the history remains available for conflict auditing until
// pruned past the retention window.
type SnapshotStore interface {
	// Append writes a new snapshot and returns the assigned version.
	// When declaredVersion is stale (<= the current version), the store
	// silently assigns current+1 instead of rejecting the write; the
	// corrected version is the return value. The write either fully
	// succeeds (new version visible) or fully fails.
	Append(ctx context.Context, accountID string, payload models.Envelope, dataTypes []string, declaredVersion int64, modified time.Time) (int64, error)

	// Latest returns the highest-version snapshot for the account. An
	// account with no history gets a well-formed empty snapshot
	// (version 0, no records) rather than an error.
	Latest(ctx context.Context, accountID string) (models.SyncSnapshot, error)

	// History returns snapshot metadata ordered by version descending,
	// along with the total snapshot count for pagination.
	History(ctx context.Context, accountID string, limit, offset uint64) ([]models.SnapshotMeta, int, error)

	// Prune deletes versions beyond the keep newest ones and returns
	// how many rows were removed.
	Prune(ctx context.Context, accountID string, keep int) (int, error)
}

// DeviceRegistry tracks per-account device identities and sync telemetry.
type DeviceRegistry interface {
	// Touch upserts the device record: created on first sight, otherwise
	// lastSyncTime/dataTypes are refreshed, syncCount incremented, the
	// uploaded byte count added, and the device implicitly reactivated.
	Touch(ctx context.Context, accountID string, meta models.DeviceMeta, dataTypes []string, dataSize int64, syncTime time.Time) error

	// List returns all device records for the account, most recently
	// synced first.
	List(ctx context.Context, accountID string) ([]models.DeviceRecord, error)

	// Deactivate flags the device inactive without deleting it.
	// Returns [ErrDeviceNotFound] when the device does not exist.
	Deactivate(ctx context.Context, accountID, deviceID string) error

	// CleanupInactive permanently deletes devices that are both inactive
	// and last synced before the threshold. Active devices are never
	// auto-deleted regardless of age. Returns the number removed.
	CleanupInactive(ctx context.Context, accountID string, threshold time.Time) (int, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
