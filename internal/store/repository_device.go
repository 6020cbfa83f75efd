package store

import (
	"context"
	"fmt"
	"time"

	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/models"
)

// deviceRepository is the PostgreSQL-backed implementation of
// [DeviceRegistry]. Device rows live in the "sync_devices" table keyed
// by (account_id, device_id).
type deviceRepository struct {
	*DB
	logger *logger.Logger
}

// NewDeviceRepository constructs a [DeviceRegistry] backed by the
// provided database connection and logger.
func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRegistry {
	return &deviceRepository{
		DB:     db,
		logger: logger,
	}
}

// Touch implements [DeviceRegistry]. Creation and refresh are one
// explicit upsert statement, and the operation is idempotent for a given
// sync time, which lets the orchestrator retry a lost device update
// after a successful snapshot write without double-counting risk beyond
// the sync counter.
func (d *deviceRepository) Touch(ctx context.Context, accountID string, meta models.DeviceMeta, dataTypes []string, dataSize int64, syncTime time.Time) error {
	log := logger.FromContext(ctx)

	_, err := d.DB.ExecContext(ctx, touchDevice,
		accountID,
		meta.DeviceID,
		meta.DeviceName,
		meta.DeviceType,
		syncTime,
		dataSize,
		jsonColumn[[]string]{val: dataTypes},
	)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.Touch").
			Str("account_id", accountID).
			Str("device_id", meta.DeviceID).
			Msg("failed to upsert device record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// List implements [DeviceRegistry].
func (d *deviceRepository) List(ctx context.Context, accountID string) ([]models.DeviceRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDevicesQuery(accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.List").
			Str("account_id", accountID).
			Msg("failed to query device records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	devices := make([]models.DeviceRecord, 0, 8)

	for rows.Next() {
		var (
			device    models.DeviceRecord
			dataTypes jsonColumn[[]string]
		)

		if scanErr := rows.Scan(
			&device.AccountID,
			&device.DeviceID,
			&device.DeviceName,
			&device.DeviceType,
			&device.LastSyncTime,
			&device.SyncCount,
			&device.DataSize,
			&dataTypes,
			&device.IsActive,
			&device.DeactivatedAt,
			&device.CreatedAt,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", "deviceRepository.List").
				Str("account_id", accountID).
				Msg("failed to scan device row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		device.DataTypes = dataTypes.val
		devices = append(devices, device)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return devices, nil
}

// Deactivate implements [DeviceRegistry].
func (d *deviceRepository) Deactivate(ctx context.Context, accountID, deviceID string) error {
	log := logger.FromContext(ctx)

	result, err := d.DB.ExecContext(ctx, deactivateDevice, accountID, deviceID)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.Deactivate").
			Str("account_id", accountID).
			Str("device_id", deviceID).
			Msg("failed to deactivate device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

// CleanupInactive implements [DeviceRegistry]. Only rows that are both
// inactive and stale are deleted; the is_active guard in the statement
// means active devices survive regardless of age.
func (d *deviceRepository) CleanupInactive(ctx context.Context, accountID string, threshold time.Time) (int, error) {
	log := logger.FromContext(ctx)

	result, err := d.DB.ExecContext(ctx, cleanupInactiveDevices, accountID, threshold)
	if err != nil {
		log.Err(err).
			Str("func", "deviceRepository.CleanupInactive").
			Str("account_id", accountID).
			Time("threshold", threshold).
			Msg("failed to cleanup inactive devices")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if removed > 0 {
		log.Info().
			Str("func", "deviceRepository.CleanupInactive").
			Str("account_id", accountID).
			Int64("removed", removed).
			Msg("removed stale inactive devices")
	}

	return int(removed), nil
}
