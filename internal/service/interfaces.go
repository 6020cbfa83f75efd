package service

import (
	"context"

	"github.com/lexisync/lexisync/internal/workers"
	"github.com/lexisync/lexisync/models"
)

// RecordMerger performs field-level conflict detection and deterministic
// merging of structured learning payloads. Merge is a pure function of
// its inputs: no storage, no clock, no side effects — applying it twice
// to the same pair yields the same result.
type RecordMerger interface {
	// Merge combines the stored (remote) payload with an incoming
	// (local) device payload. Conflicting pairs are reported but still
	// merged; detection never blocks the merge.
	Merge(stored, incoming *models.StructuredPayload) MergeResult

	// MergeRecordPair applies the field-merge policy to a single record
	// pair. Used by conflict resolution with the "merge" strategy.
	MergeRecordPair(stored, incoming models.LearningRecord) models.LearningRecord
}

// MergeResult is the outcome of merging two structured payloads.
type MergeResult struct {
	// Payload is the deterministic merged payload with recomputed
	// aggregates and open conflicts folded in.
	Payload *models.StructuredPayload

	// Conflicts lists the record pairs flagged by conflict detection.
	Conflicts []models.ConflictReport

	// Skipped identifies malformed incoming records dropped from the
	// batch. The merge proceeds with the remaining valid records.
	Skipped []string
}

// SyncService is the top-level orchestrator of the sync engine. Each
// operation drives one session through its state machine, composing the
// snapshot store, the device registry, the merger, and the encryption
// codec.
type SyncService interface {
	Upload(ctx context.Context, accountID string, req *models.UploadRequest) (models.UploadResponse, error)
	Download(ctx context.Context, accountID string) (models.DownloadResponse, error)
	ForceSync(ctx context.Context, accountID string, req *models.UploadRequest) (models.ForceSyncResponse, error)
	ResolveConflicts(ctx context.Context, accountID string, req *models.ResolveRequest) (models.ResolveResponse, error)
	Status(ctx context.Context, accountID string) (models.StatusResponse, error)
	History(ctx context.Context, accountID string, page, limit int) (models.HistoryResponse, error)
	Cleanup(ctx context.Context, accountID string, thresholdDays int) (models.CleanupResponse, error)
	Devices(ctx context.Context, accountID string) (models.DeviceListResponse, error)
	DeactivateDevice(ctx context.Context, accountID, deviceID string) error
}

// PruneScheduler hands best-effort prune jobs to the background worker.
// Satisfied by [workers.PruneWorker].
type PruneScheduler interface {
	Schedule(job workers.PruneJob) bool
}
