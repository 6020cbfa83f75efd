package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/crypto"
	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/internal/store"
	"github.com/lexisync/lexisync/internal/validators"
	"github.com/lexisync/lexisync/internal/workers"
	"github.com/lexisync/lexisync/models"
)

// syncService is the concrete implementation of [SyncService]. All
// collaborators are injected at construction; the service itself is
// stateless and safe for concurrent use — per-account serialization is
// achieved by the store's optimistic version assignment, not by locks.
type syncService struct {
	snapshots store.SnapshotStore
	devices   store.DeviceRegistry
	merger    RecordMerger
	codec     crypto.Codec
	pruner    PruneScheduler
	validator validators.Validator

	retention      int
	inactivityDays int

	logger *logger.Logger
}

// NewSyncService constructs a [SyncService] with the given collaborators
// and the retention/inactivity policies from cfg.
func NewSyncService(
	snapshots store.SnapshotStore,
	devices store.DeviceRegistry,
	merger RecordMerger,
	codec crypto.Codec,
	pruner PruneScheduler,
	cfg config.App,
	logger *logger.Logger,
) SyncService {
	return &syncService{
		snapshots:      snapshots,
		devices:        devices,
		merger:         merger,
		codec:          codec,
		pruner:         pruner,
		validator:      validators.NewSyncRequestValidator(),
		retention:      cfg.SnapshotRetention,
		inactivityDays: cfg.DeviceInactivityDays,
		logger:         logger,
	}
}

// Upload implements [SyncService].
//
// The session walks Idle → Uploading (validation) → Merging →
// Persisting → Done. Structured deltas merge against the latest
// structured snapshot; opaque blobs are sealed by the codec and replace
// the snapshot wholesale (field merge is impossible inside ciphertext).
// The device touch after a successful append is best-effort: a failure
// is logged, never turned into an upload error, because the snapshot —
// the data that matters — is already durable.
func (s *syncService) Upload(ctx context.Context, accountID string, req *models.UploadRequest) (models.UploadResponse, error) {
	log := logger.FromContext(ctx)
	session := newSyncSession(accountID, log)

	session.transition(stateUploading)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.UploadResponse{}, session.fail(err)
	}

	syncTime := req.Timestamp
	if syncTime.IsZero() {
		syncTime = time.Now().UTC()
	}

	session.transition(stateMerging)
	latest, err := s.snapshots.Latest(ctx, accountID)
	if err != nil {
		return models.UploadResponse{}, session.fail(err)
	}

	var (
		envelope  models.Envelope
		dataTypes []string
		conflicts []models.ConflictReport
		skipped   []string
	)

	if req.Structured() {
		stored := latest.Payload.Structured
		if latest.Payload.Kind != models.KindStructured {
			// The lineage currently holds an opaque blob the engine
			// cannot merge into; the structured delta starts a fresh
			// structured payload (snapshot-level last writer wins).
			stored = nil
		}

		result := s.merger.Merge(stored, &models.StructuredPayload{
			Records:       req.Records,
			Settings:      req.Settings,
			SearchHistory: req.SearchHistory,
		})

		envelope = models.Envelope{Kind: models.KindStructured, Structured: result.Payload}
		dataTypes = structuredDataTypes(result.Payload)
		conflicts = result.Conflicts
		skipped = result.Skipped
	} else {
		blob, decodeErr := base64.StdEncoding.DecodeString(req.Snapshot)
		if decodeErr != nil {
			return models.UploadResponse{}, session.fail(fmt.Errorf("%w: %w", validators.ErrBadSnapshot, decodeErr))
		}

		sealed, sealErr := s.codec.Seal(blob)
		if sealErr != nil {
			return models.UploadResponse{}, session.fail(sealErr)
		}

		envelope = models.Envelope{Kind: models.KindEncrypted, Blob: string(sealed)}
		dataTypes = []string{models.DataTypeBlob}
	}

	session.transition(statePersisting)
	version, err := s.snapshots.Append(ctx, accountID, envelope, dataTypes, req.Version, syncTime)
	if err != nil {
		return models.UploadResponse{}, session.fail(err)
	}

	// Best-effort, idempotent; a lost touch self-heals on the next sync.
	if touchErr := s.devices.Touch(ctx, accountID, req.Device, dataTypes, payloadBytes(req), syncTime); touchErr != nil {
		log.Warn().
			Err(touchErr).
			Str("func", "syncService.Upload").
			Str("account_id", accountID).
			Str("device_id", req.Device.DeviceID).
			Msg("device touch failed after successful snapshot write")
	}

	// Fire-and-forget retention maintenance; must not block the response.
	s.pruner.Schedule(workers.PruneJob{AccountID: accountID, Keep: s.retention})

	session.transition(stateDone)
	return models.UploadResponse{
		Success:   true,
		Version:   version,
		Conflicts: conflicts,
		Skipped:   skipped,
	}, nil
}

// Download implements [SyncService]. Latest snapshot, decrypted when the
// lineage holds an opaque blob. An account with no history downloads the
// version-0 empty snapshot.
func (s *syncService) Download(ctx context.Context, accountID string) (models.DownloadResponse, error) {
	log := logger.FromContext(ctx)
	session := newSyncSession(accountID, log)

	session.transition(stateDownloading)
	latest, err := s.snapshots.Latest(ctx, accountID)
	if err != nil {
		return models.DownloadResponse{}, session.fail(err)
	}

	resp := models.DownloadResponse{
		Version:      latest.Version,
		LastModified: latest.LastModified,
	}

	switch latest.Payload.Kind {
	case models.KindEncrypted:
		blob, openErr := s.codec.Open([]byte(latest.Payload.Blob))
		if openErr != nil {
			return models.DownloadResponse{}, session.fail(openErr)
		}
		resp.Snapshot = base64.StdEncoding.EncodeToString(blob)

	default:
		payload := latest.Payload.Structured
		if payload == nil {
			payload = &models.StructuredPayload{}
		}
		resp.Records = payload.Records
		if resp.Records == nil {
			resp.Records = []models.LearningRecord{}
		}
		resp.Settings = payload.Settings
		resp.SearchHistory = payload.SearchHistory
	}

	session.transition(stateDone)
	return resp, nil
}

// ForceSync implements [SyncService]: Upload then Download in sequence.
// A failed upload aborts the whole operation; the download half never
// runs against state the upload did not produce.
func (s *syncService) ForceSync(ctx context.Context, accountID string, req *models.UploadRequest) (models.ForceSyncResponse, error) {
	upload, err := s.Upload(ctx, accountID, req)
	if err != nil {
		return models.ForceSyncResponse{}, err
	}

	download, err := s.Download(ctx, accountID)
	if err != nil {
		return models.ForceSyncResponse{}, err
	}

	return models.ForceSyncResponse{Upload: upload, Download: download}, nil
}

// ResolveConflicts implements [SyncService]. The named strategy settles
// each reported conflict against the latest structured snapshot, the
// settled reports are removed from the open set, aggregates are
// recomputed, and the result is appended as a new version.
func (s *syncService) ResolveConflicts(ctx context.Context, accountID string, req *models.ResolveRequest) (models.ResolveResponse, error) {
	log := logger.FromContext(ctx)
	session := newSyncSession(accountID, log)

	session.transition(stateMerging)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.ResolveResponse{}, session.fail(err)
	}

	latest, err := s.snapshots.Latest(ctx, accountID)
	if err != nil {
		return models.ResolveResponse{}, session.fail(err)
	}
	if latest.Payload.Kind != models.KindStructured || latest.Payload.Structured == nil {
		return models.ResolveResponse{}, session.fail(ErrStructuredSnapshotRequired)
	}

	payload := latest.Payload.Structured
	resolved := 0

	for _, conflict := range req.Conflicts {
		pos := recordPosition(payload.Records, conflict.Key)

		var chosen models.LearningRecord
		switch req.Resolution {
		case models.ResolveLocal:
			chosen = conflict.Local
		case models.ResolveRemote:
			chosen = conflict.Remote
		case models.ResolveMerge:
			chosen = s.merger.MergeRecordPair(conflict.Remote, conflict.Local)
		case models.ResolveManual:
			// Caller supplies resolved values out of band; the stored
			// record stays as it is, but the report is closed.
			payload.Conflicts = removeConflict(payload.Conflicts, conflict.Key)
			resolved++
			continue
		}

		if pos >= 0 {
			payload.Records[pos] = chosen
		} else {
			payload.Records = append(payload.Records, chosen)
		}
		payload.Conflicts = removeConflict(payload.Conflicts, conflict.Key)
		resolved++
	}

	payload.TotalWords = len(payload.Records)
	payload.AverageMastery = averageMastery(payload.Records)

	session.transition(statePersisting)
	version, err := s.snapshots.Append(ctx, accountID,
		models.Envelope{Kind: models.KindStructured, Structured: payload},
		structuredDataTypes(payload),
		latest.Version+1,
		time.Now().UTC(),
	)
	if err != nil {
		return models.ResolveResponse{}, session.fail(err)
	}

	s.pruner.Schedule(workers.PruneJob{AccountID: accountID, Keep: s.retention})

	session.transition(stateDone)
	return models.ResolveResponse{Success: true, Resolved: resolved, Version: version}, nil
}

// Status implements [SyncService].
func (s *syncService) Status(ctx context.Context, accountID string) (models.StatusResponse, error) {
	latest, err := s.snapshots.Latest(ctx, accountID)
	if err != nil {
		return models.StatusResponse{}, err
	}

	devices, err := s.devices.List(ctx, accountID)
	if err != nil {
		return models.StatusResponse{}, err
	}

	resp := models.StatusResponse{
		// Heuristic per the engine contract: any history on file means
		// the account may hold data a device has not yet pulled.
		HasUnsyncedData: latest.Version > 0,
		Version:         latest.Version,
		Conflicts:       []models.ConflictReport{},
	}

	for _, device := range devices {
		if device.LastSyncTime.After(resp.LastSyncTime) {
			resp.LastSyncTime = device.LastSyncTime
		}
	}

	if latest.Payload.Kind == models.KindStructured && latest.Payload.Structured != nil {
		if open := latest.Payload.Structured.Conflicts; len(open) > 0 {
			resp.Conflicts = open
		}
	}

	return resp, nil
}

// History implements [SyncService]. Pages are 1-based; limit defaults to
// 20 and is capped at 100.
func (s *syncService) History(ctx context.Context, accountID string, page, limit int) (models.HistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := uint64((page - 1) * limit)

	metas, total, err := s.snapshots.History(ctx, accountID, uint64(limit), offset)
	if err != nil {
		return models.HistoryResponse{}, err
	}

	return models.HistoryResponse{
		Snapshots: metas,
		Page:      page,
		Limit:     limit,
		Total:     total,
	}, nil
}

// Cleanup implements [SyncService]: removes devices that are inactive
// and stale past the threshold, and prunes the snapshot lineage to the
// retention window. Unlike the post-upload prune this one is synchronous
// — the caller asked for maintenance and gets the count back.
func (s *syncService) Cleanup(ctx context.Context, accountID string, thresholdDays int) (models.CleanupResponse, error) {
	if thresholdDays < 1 {
		thresholdDays = s.inactivityDays
	}

	threshold := time.Now().UTC().AddDate(0, 0, -thresholdDays)

	removedDevices, err := s.devices.CleanupInactive(ctx, accountID, threshold)
	if err != nil {
		return models.CleanupResponse{}, err
	}

	prunedSnapshots, err := s.snapshots.Prune(ctx, accountID, s.retention)
	if err != nil {
		return models.CleanupResponse{}, err
	}

	return models.CleanupResponse{DeletedCount: removedDevices + prunedSnapshots}, nil
}

// Devices implements [SyncService].
func (s *syncService) Devices(ctx context.Context, accountID string) (models.DeviceListResponse, error) {
	devices, err := s.devices.List(ctx, accountID)
	if err != nil {
		return models.DeviceListResponse{}, err
	}

	return models.DeviceListResponse{Devices: devices, Length: len(devices)}, nil
}

// DeactivateDevice implements [SyncService].
func (s *syncService) DeactivateDevice(ctx context.Context, accountID, deviceID string) error {
	return s.devices.Deactivate(ctx, accountID, deviceID)
}

// structuredDataTypes declares which record kinds a payload carries.
func structuredDataTypes(payload *models.StructuredPayload) []string {
	types := make([]string, 0, 3)
	if len(payload.Records) > 0 {
		types = append(types, models.DataTypeRecords)
	}
	if payload.Settings != nil {
		types = append(types, models.DataTypeSettings)
	}
	if len(payload.SearchHistory) > 0 {
		types = append(types, models.DataTypeSearchHistory)
	}
	return types
}

// payloadBytes estimates the uploaded payload size for device telemetry.
func payloadBytes(req *models.UploadRequest) int64 {
	if !req.Structured() {
		return int64(len(req.Snapshot))
	}

	var size int64
	for _, rec := range req.Records {
		size += int64(len(rec.Word) + len(rec.Notes) + 64)
	}
	size += int64(len(req.SearchHistory)) * 32
	if req.Settings != nil {
		size += 128
	}
	return size
}

// recordPosition finds the index of key in records, or -1.
func recordPosition(records []models.LearningRecord, key string) int {
	for i, rec := range records {
		if rec.Key() == key {
			return i
		}
	}
	return -1
}

// removeConflict drops the report for key from the open set.
func removeConflict(open []models.ConflictReport, key string) []models.ConflictReport {
	filtered := open[:0]
	for _, c := range open {
		if c.Key != key {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
