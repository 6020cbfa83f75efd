// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LexiSync Authors

package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/internal/store"
	"github.com/lexisync/lexisync/internal/validators"
	"github.com/lexisync/lexisync/internal/workers"
	"github.com/lexisync/lexisync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.SnapshotStore
// ─────────────────────────────────────────────

type mockSnapshotStore struct {
	appendFn  func(ctx context.Context, accountID string, payload models.Envelope, dataTypes []string, declaredVersion int64, modified time.Time) (int64, error)
	latestFn  func(ctx context.Context, accountID string) (models.SyncSnapshot, error)
	historyFn func(ctx context.Context, accountID string, limit, offset uint64) ([]models.SnapshotMeta, int, error)
	pruneFn   func(ctx context.Context, accountID string, keep int) (int, error)
}

func (m *mockSnapshotStore) Append(ctx context.Context, accountID string, payload models.Envelope, dataTypes []string, declaredVersion int64, modified time.Time) (int64, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, accountID, payload, dataTypes, declaredVersion, modified)
	}
	return declaredVersion, nil
}

func (m *mockSnapshotStore) Latest(ctx context.Context, accountID string) (models.SyncSnapshot, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, accountID)
	}
	return models.EmptySnapshot(accountID), nil
}

func (m *mockSnapshotStore) History(ctx context.Context, accountID string, limit, offset uint64) ([]models.SnapshotMeta, int, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, accountID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockSnapshotStore) Prune(ctx context.Context, accountID string, keep int) (int, error) {
	if m.pruneFn != nil {
		return m.pruneFn(ctx, accountID, keep)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.DeviceRegistry
// ─────────────────────────────────────────────

type mockDeviceRegistry struct {
	touchFn      func(ctx context.Context, accountID string, meta models.DeviceMeta, dataTypes []string, dataSize int64, syncTime time.Time) error
	listFn       func(ctx context.Context, accountID string) ([]models.DeviceRecord, error)
	deactivateFn func(ctx context.Context, accountID, deviceID string) error
	cleanupFn    func(ctx context.Context, accountID string, threshold time.Time) (int, error)
}

func (m *mockDeviceRegistry) Touch(ctx context.Context, accountID string, meta models.DeviceMeta, dataTypes []string, dataSize int64, syncTime time.Time) error {
	if m.touchFn != nil {
		return m.touchFn(ctx, accountID, meta, dataTypes, dataSize, syncTime)
	}
	return nil
}

func (m *mockDeviceRegistry) List(ctx context.Context, accountID string) ([]models.DeviceRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockDeviceRegistry) Deactivate(ctx context.Context, accountID, deviceID string) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, accountID, deviceID)
	}
	return nil
}

func (m *mockDeviceRegistry) CleanupInactive(ctx context.Context, accountID string, threshold time.Time) (int, error) {
	if m.cleanupFn != nil {
		return m.cleanupFn(ctx, accountID, threshold)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: crypto.Codec and PruneScheduler
// ─────────────────────────────────────────────

type mockCodec struct {
	sealFn func(plaintext []byte) ([]byte, error)
	openFn func(envelope []byte) ([]byte, error)
}

func (m *mockCodec) Seal(plaintext []byte) ([]byte, error) {
	if m.sealFn != nil {
		return m.sealFn(plaintext)
	}
	return append([]byte("sealed:"), plaintext...), nil
}

func (m *mockCodec) Open(envelope []byte) ([]byte, error) {
	if m.openFn != nil {
		return m.openFn(envelope)
	}
	return envelope, nil
}

type mockScheduler struct {
	jobs []workers.PruneJob
}

func (m *mockScheduler) Schedule(job workers.PruneJob) bool {
	m.jobs = append(m.jobs, job)
	return true
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

const testAccount = "acc-1"

func newTestSyncService(snapshots store.SnapshotStore, devices store.DeviceRegistry) (*syncService, *mockScheduler) {
	scheduler := &mockScheduler{}
	svc := NewSyncService(
		snapshots,
		devices,
		NewRecordMerger(logger.Nop()),
		&mockCodec{},
		scheduler,
		config.App{SnapshotRetention: 5, DeviceInactivityDays: 90},
		logger.Nop(),
	).(*syncService)
	return svc, scheduler
}

func uploadRequest(records ...models.LearningRecord) *models.UploadRequest {
	return &models.UploadRequest{
		Records:   records,
		Device:    models.DeviceMeta{DeviceID: "dev-1", DeviceType: "ios"},
		Timestamp: baseReview,
		Version:   1,
	}
}

var errStore = errors.New("storage unavailable")

// ─────────────────────────────────────────────
// Upload
// ─────────────────────────────────────────────

func TestSyncService_Upload_FirstStructuredUpload(t *testing.T) {
	var appended models.Envelope
	snapshots := &mockSnapshotStore{
		appendFn: func(_ context.Context, _ string, payload models.Envelope, dataTypes []string, declared int64, _ time.Time) (int64, error) {
			appended = payload
			assert.Equal(t, []string{models.DataTypeRecords}, dataTypes)
			return declared, nil
		},
	}
	touched := false
	devices := &mockDeviceRegistry{
		touchFn: func(_ context.Context, _ string, meta models.DeviceMeta, _ []string, _ int64, _ time.Time) error {
			touched = true
			assert.Equal(t, "dev-1", meta.DeviceID)
			return nil
		},
	}

	svc, scheduler := newTestSyncService(snapshots, devices)

	resp, err := svc.Upload(context.Background(), testAccount, uploadRequest(record("run", 2, 30, baseReview)))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.Version)
	assert.Empty(t, resp.Conflicts)

	assert.Equal(t, models.KindStructured, appended.Kind)
	require.NotNil(t, appended.Structured)
	assert.Len(t, appended.Structured.Records, 1)

	assert.True(t, touched)
	require.Len(t, scheduler.jobs, 1)
	assert.Equal(t, workers.PruneJob{AccountID: testAccount, Keep: 5}, scheduler.jobs[0])
}

func TestSyncService_Upload_MergesAgainstStoredSnapshot(t *testing.T) {
	stored := models.SyncSnapshot{
		AccountID: testAccount,
		Version:   3,
		Payload: models.Envelope{
			Kind: models.KindStructured,
			Structured: &models.StructuredPayload{
				Records: []models.LearningRecord{record("run", 3, 40, baseReview)},
			},
		},
	}
	snapshots := &mockSnapshotStore{
		latestFn: func(_ context.Context, _ string) (models.SyncSnapshot, error) {
			return stored, nil
		},
		appendFn: func(_ context.Context, _ string, payload models.Envelope, _ []string, declared int64, _ time.Time) (int64, error) {
			require.Len(t, payload.Structured.Records, 1)
			assert.Equal(t, 5, payload.Structured.Records[0].ReviewCount)
			return declared, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	req := uploadRequest(record("run", 5, 60, baseReview.Add(30*time.Minute)))
	req.Version = 4

	resp, err := svc.Upload(context.Background(), testAccount, req)

	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1, "concurrent review within the window is flagged")
	assert.Equal(t, "run/en", resp.Conflicts[0].Key)
}

// A stale declared version is corrected by the store; the caller gets the
// corrected value back, never an error.
func TestSyncService_Upload_StaleVersionCorrected(t *testing.T) {
	snapshots := &mockSnapshotStore{
		appendFn: func(_ context.Context, _ string, _ models.Envelope, _ []string, declared int64, _ time.Time) (int64, error) {
			assert.Equal(t, int64(2), declared)
			return 6, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	req := uploadRequest(record("run", 1, 10, baseReview))
	req.Version = 2

	resp, err := svc.Upload(context.Background(), testAccount, req)

	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.Version)
}

func TestSyncService_Upload_BlobSealedByCodec(t *testing.T) {
	plaintext := []byte("opaque client state")

	var appended models.Envelope
	snapshots := &mockSnapshotStore{
		appendFn: func(_ context.Context, _ string, payload models.Envelope, dataTypes []string, declared int64, _ time.Time) (int64, error) {
			appended = payload
			assert.Equal(t, []string{models.DataTypeBlob}, dataTypes)
			return declared, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	req := &models.UploadRequest{
		Snapshot: base64.StdEncoding.EncodeToString(plaintext),
		Device:   models.DeviceMeta{DeviceID: "dev-1"},
		Version:  1,
	}

	resp, err := svc.Upload(context.Background(), testAccount, req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, models.KindEncrypted, appended.Kind)
	assert.Equal(t, "sealed:opaque client state", appended.Blob)
}

func TestSyncService_Upload_Validation(t *testing.T) {
	svc, _ := newTestSyncService(&mockSnapshotStore{}, &mockDeviceRegistry{})

	tests := []struct {
		name    string
		req     *models.UploadRequest
		wantErr error
	}{
		{
			name:    "missing device",
			req:     &models.UploadRequest{Records: []models.LearningRecord{record("run", 1, 10, baseReview)}},
			wantErr: validators.ErrNoDevice,
		},
		{
			name:    "empty payload",
			req:     &models.UploadRequest{Device: models.DeviceMeta{DeviceID: "dev-1"}},
			wantErr: validators.ErrNoPayload,
		},
		{
			name: "mixed modes",
			req: &models.UploadRequest{
				Device:   models.DeviceMeta{DeviceID: "dev-1"},
				Snapshot: "YWJj",
				Records:  []models.LearningRecord{record("run", 1, 10, baseReview)},
			},
			wantErr: validators.ErrMixedPayload,
		},
		{
			name: "undecodable blob",
			req: &models.UploadRequest{
				Device:   models.DeviceMeta{DeviceID: "dev-1"},
				Snapshot: "not-base64!!!",
			},
			wantErr: validators.ErrBadSnapshot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), testAccount, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSyncService_Upload_DeviceTouchFailureIsNotFatal(t *testing.T) {
	devices := &mockDeviceRegistry{
		touchFn: func(context.Context, string, models.DeviceMeta, []string, int64, time.Time) error {
			return errStore
		},
	}

	svc, _ := newTestSyncService(&mockSnapshotStore{}, devices)

	resp, err := svc.Upload(context.Background(), testAccount, uploadRequest(record("run", 1, 10, baseReview)))

	require.NoError(t, err, "snapshot is durable; a failed touch must not fail the upload")
	assert.True(t, resp.Success)
}

func TestSyncService_Upload_AppendErrorPropagates(t *testing.T) {
	snapshots := &mockSnapshotStore{
		appendFn: func(context.Context, string, models.Envelope, []string, int64, time.Time) (int64, error) {
			return 0, errStore
		},
	}

	svc, scheduler := newTestSyncService(snapshots, &mockDeviceRegistry{})

	_, err := svc.Upload(context.Background(), testAccount, uploadRequest(record("run", 1, 10, baseReview)))

	assert.ErrorIs(t, err, errStore)
	assert.Empty(t, scheduler.jobs, "no prune scheduled for a failed write")
}

// ─────────────────────────────────────────────
// Download
// ─────────────────────────────────────────────

func TestSyncService_Download_EmptyAccount(t *testing.T) {
	svc, _ := newTestSyncService(&mockSnapshotStore{}, &mockDeviceRegistry{})

	resp, err := svc.Download(context.Background(), testAccount)

	require.NoError(t, err)
	assert.Zero(t, resp.Version)
	assert.NotNil(t, resp.Records)
	assert.Empty(t, resp.Records)
	assert.Empty(t, resp.Snapshot)
}

func TestSyncService_Download_DecryptsBlobSnapshot(t *testing.T) {
	snapshots := &mockSnapshotStore{
		latestFn: func(_ context.Context, accountID string) (models.SyncSnapshot, error) {
			return models.SyncSnapshot{
				AccountID: accountID,
				Version:   2,
				Payload:   models.Envelope{Kind: models.KindEncrypted, Blob: "opaque client state"},
			}, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	resp, err := svc.Download(context.Background(), testAccount)

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Version)
	// mockCodec.Open is identity, so the response carries the blob back
	// base64-encoded.
	decoded, decodeErr := base64.StdEncoding.DecodeString(resp.Snapshot)
	require.NoError(t, decodeErr)
	assert.Equal(t, "opaque client state", string(decoded))
	assert.Empty(t, resp.Records)
}

func TestSyncService_Download_CorruptBlobFailsClosed(t *testing.T) {
	snapshots := &mockSnapshotStore{
		latestFn: func(_ context.Context, accountID string) (models.SyncSnapshot, error) {
			return models.SyncSnapshot{
				AccountID: accountID,
				Version:   2,
				Payload:   models.Envelope{Kind: models.KindEncrypted, Blob: "tampered"},
			}, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})
	svc.codec = &mockCodec{openFn: func([]byte) ([]byte, error) { return nil, errStore }}

	_, err := svc.Download(context.Background(), testAccount)

	assert.ErrorIs(t, err, errStore)
}

// ─────────────────────────────────────────────
// ForceSync
// ─────────────────────────────────────────────

func TestSyncService_ForceSync_UploadThenDownload(t *testing.T) {
	current := models.EmptySnapshot(testAccount)
	snapshots := &mockSnapshotStore{
		latestFn: func(context.Context, string) (models.SyncSnapshot, error) {
			return current, nil
		},
		appendFn: func(_ context.Context, _ string, payload models.Envelope, _ []string, declared int64, modified time.Time) (int64, error) {
			current = models.SyncSnapshot{
				AccountID:    testAccount,
				Version:      declared,
				Payload:      payload,
				LastModified: modified,
			}
			return declared, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	resp, err := svc.ForceSync(context.Background(), testAccount, uploadRequest(record("run", 2, 30, baseReview)))

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Upload.Version)
	assert.Equal(t, int64(1), resp.Download.Version, "download sees the just-uploaded state")
	require.Len(t, resp.Download.Records, 1)
	assert.Equal(t, "run", resp.Download.Records[0].Word)
}

func TestSyncService_ForceSync_AbortsOnUploadFailure(t *testing.T) {
	latestCalls := 0
	snapshots := &mockSnapshotStore{
		latestFn: func(context.Context, string) (models.SyncSnapshot, error) {
			latestCalls++
			return models.EmptySnapshot(testAccount), nil
		},
		appendFn: func(context.Context, string, models.Envelope, []string, int64, time.Time) (int64, error) {
			return 0, errStore
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	_, err := svc.ForceSync(context.Background(), testAccount, uploadRequest(record("run", 1, 10, baseReview)))

	assert.ErrorIs(t, err, errStore)
	assert.Equal(t, 1, latestCalls, "download half never runs after a failed upload")
}

// ─────────────────────────────────────────────
// ResolveConflicts
// ─────────────────────────────────────────────

func structuredSnapshotWithConflict() models.SyncSnapshot {
	local := record("run", 5, 60, baseReview.Add(30*time.Minute))
	remote := record("run", 3, 40, baseReview)

	return models.SyncSnapshot{
		AccountID: testAccount,
		Version:   4,
		Payload: models.Envelope{
			Kind: models.KindStructured,
			Structured: &models.StructuredPayload{
				Records: []models.LearningRecord{remote},
				Conflicts: []models.ConflictReport{{
					Key:    "run/en",
					Local:  local,
					Remote: remote,
					Kind:   models.ConflictConcurrentReview,
				}},
			},
		},
	}
}

func TestSyncService_ResolveConflicts_Strategies(t *testing.T) {
	tests := []struct {
		name       string
		strategy   models.ResolutionStrategy
		wantReview int
		wantWord   bool // record still present with chosen values
	}{
		{"local wins", models.ResolveLocal, 5, true},
		{"remote wins", models.ResolveRemote, 3, true},
		{"field merge", models.ResolveMerge, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := structuredSnapshotWithConflict()
			var appended models.Envelope
			snapshots := &mockSnapshotStore{
				latestFn: func(context.Context, string) (models.SyncSnapshot, error) {
					return snap, nil
				},
				appendFn: func(_ context.Context, _ string, payload models.Envelope, _ []string, declared int64, _ time.Time) (int64, error) {
					appended = payload
					assert.Equal(t, int64(5), declared)
					return declared, nil
				},
			}

			svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

			resp, err := svc.ResolveConflicts(context.Background(), testAccount, &models.ResolveRequest{
				Conflicts:  snap.Payload.Structured.Conflicts,
				Resolution: tt.strategy,
			})

			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Equal(t, 1, resp.Resolved)
			assert.Equal(t, int64(5), resp.Version)

			require.NotNil(t, appended.Structured)
			assert.Empty(t, appended.Structured.Conflicts, "settled report is closed")
			require.Len(t, appended.Structured.Records, 1)
			assert.Equal(t, tt.wantReview, appended.Structured.Records[0].ReviewCount)
		})
	}
}

func TestSyncService_ResolveConflicts_ManualClosesWithoutRewrite(t *testing.T) {
	snap := structuredSnapshotWithConflict()
	var appended models.Envelope
	snapshots := &mockSnapshotStore{
		latestFn: func(context.Context, string) (models.SyncSnapshot, error) { return snap, nil },
		appendFn: func(_ context.Context, _ string, payload models.Envelope, _ []string, declared int64, _ time.Time) (int64, error) {
			appended = payload
			return declared, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	resp, err := svc.ResolveConflicts(context.Background(), testAccount, &models.ResolveRequest{
		Conflicts:  snap.Payload.Structured.Conflicts,
		Resolution: models.ResolveManual,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Resolved)
	assert.Empty(t, appended.Structured.Conflicts)
	// Stored record untouched under the manual strategy.
	assert.Equal(t, 3, appended.Structured.Records[0].ReviewCount)
}

func TestSyncService_ResolveConflicts_Validation(t *testing.T) {
	svc, _ := newTestSyncService(&mockSnapshotStore{}, &mockDeviceRegistry{})

	_, err := svc.ResolveConflicts(context.Background(), testAccount, &models.ResolveRequest{
		Resolution: models.ResolveLocal,
	})
	assert.ErrorIs(t, err, validators.ErrNoConflicts)

	_, err = svc.ResolveConflicts(context.Background(), testAccount, &models.ResolveRequest{
		Conflicts:  []models.ConflictReport{{Key: "run/en"}},
		Resolution: "coin-flip",
	})
	assert.ErrorIs(t, err, validators.ErrUnknownStrategy)
}

func TestSyncService_ResolveConflicts_RequiresStructuredSnapshot(t *testing.T) {
	snapshots := &mockSnapshotStore{
		latestFn: func(_ context.Context, accountID string) (models.SyncSnapshot, error) {
			return models.SyncSnapshot{
				AccountID: accountID,
				Version:   1,
				Payload:   models.Envelope{Kind: models.KindEncrypted, Blob: "opaque"},
			}, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	_, err := svc.ResolveConflicts(context.Background(), testAccount, &models.ResolveRequest{
		Conflicts:  []models.ConflictReport{{Key: "run/en"}},
		Resolution: models.ResolveLocal,
	})

	assert.ErrorIs(t, err, ErrStructuredSnapshotRequired)
}

// ─────────────────────────────────────────────
// Status / History / Cleanup / Devices
// ─────────────────────────────────────────────

func TestSyncService_Status(t *testing.T) {
	snap := structuredSnapshotWithConflict()
	snapshots := &mockSnapshotStore{
		latestFn: func(context.Context, string) (models.SyncSnapshot, error) { return snap, nil },
	}
	devices := &mockDeviceRegistry{
		listFn: func(context.Context, string) ([]models.DeviceRecord, error) {
			return []models.DeviceRecord{
				{DeviceID: "dev-1", LastSyncTime: baseReview},
				{DeviceID: "dev-2", LastSyncTime: baseReview.Add(time.Hour)},
			}, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, devices)

	resp, err := svc.Status(context.Background(), testAccount)

	require.NoError(t, err)
	assert.True(t, resp.HasUnsyncedData)
	assert.Equal(t, int64(4), resp.Version)
	assert.Equal(t, baseReview.Add(time.Hour), resp.LastSyncTime)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "run/en", resp.Conflicts[0].Key)
}

func TestSyncService_Status_EmptyAccount(t *testing.T) {
	svc, _ := newTestSyncService(&mockSnapshotStore{}, &mockDeviceRegistry{})

	resp, err := svc.Status(context.Background(), testAccount)

	require.NoError(t, err)
	assert.False(t, resp.HasUnsyncedData)
	assert.Zero(t, resp.Version)
	assert.True(t, resp.LastSyncTime.IsZero())
	assert.NotNil(t, resp.Conflicts)
	assert.Empty(t, resp.Conflicts)
}

func TestSyncService_History_PaginationNormalized(t *testing.T) {
	snapshots := &mockSnapshotStore{
		historyFn: func(_ context.Context, _ string, limit, offset uint64) ([]models.SnapshotMeta, int, error) {
			assert.Equal(t, uint64(20), limit, "limit defaults to 20")
			assert.Equal(t, uint64(0), offset, "page defaults to 1")
			return []models.SnapshotMeta{{Version: 2}, {Version: 1}}, 2, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	resp, err := svc.History(context.Background(), testAccount, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Snapshots, 2)
}

func TestSyncService_History_LimitCapped(t *testing.T) {
	snapshots := &mockSnapshotStore{
		historyFn: func(_ context.Context, _ string, limit, offset uint64) ([]models.SnapshotMeta, int, error) {
			assert.Equal(t, uint64(100), limit)
			assert.Equal(t, uint64(200), offset)
			return nil, 0, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, &mockDeviceRegistry{})

	_, err := svc.History(context.Background(), testAccount, 3, 500)
	require.NoError(t, err)
}

func TestSyncService_Cleanup_SumsDevicesAndSnapshots(t *testing.T) {
	devices := &mockDeviceRegistry{
		cleanupFn: func(_ context.Context, _ string, threshold time.Time) (int, error) {
			assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -30), threshold, time.Minute)
			return 2, nil
		},
	}
	snapshots := &mockSnapshotStore{
		pruneFn: func(_ context.Context, _ string, keep int) (int, error) {
			assert.Equal(t, 5, keep)
			return 3, nil
		},
	}

	svc, _ := newTestSyncService(snapshots, devices)

	resp, err := svc.Cleanup(context.Background(), testAccount, 30)

	require.NoError(t, err)
	assert.Equal(t, 5, resp.DeletedCount)
}

func TestSyncService_Cleanup_DefaultThreshold(t *testing.T) {
	devices := &mockDeviceRegistry{
		cleanupFn: func(_ context.Context, _ string, threshold time.Time) (int, error) {
			assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -90), threshold, time.Minute)
			return 0, nil
		},
	}

	svc, _ := newTestSyncService(&mockSnapshotStore{}, devices)

	_, err := svc.Cleanup(context.Background(), testAccount, 0)
	require.NoError(t, err)
}

func TestSyncService_Devices(t *testing.T) {
	devices := &mockDeviceRegistry{
		listFn: func(context.Context, string) ([]models.DeviceRecord, error) {
			return []models.DeviceRecord{{DeviceID: "dev-1"}, {DeviceID: "dev-2"}}, nil
		},
	}

	svc, _ := newTestSyncService(&mockSnapshotStore{}, devices)

	resp, err := svc.Devices(context.Background(), testAccount)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Length)
	assert.Len(t, resp.Devices, 2)
}

func TestSyncService_DeactivateDevice_NotFound(t *testing.T) {
	devices := &mockDeviceRegistry{
		deactivateFn: func(context.Context, string, string) error {
			return store.ErrDeviceNotFound
		},
	}

	svc, _ := newTestSyncService(&mockSnapshotStore{}, devices)

	err := svc.DeactivateDevice(context.Background(), testAccount, "ghost")
	assert.ErrorIs(t, err, store.ErrDeviceNotFound)
}
